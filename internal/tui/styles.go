package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sellerdash/sellertray/internal/domain"
	"github.com/sellerdash/sellertray/internal/store"
)

// styles holds all lipgloss styles used by the tray. Closed enums map to
// styles through complete lookup tables so a new enum value fails loudly in
// tests rather than rendering unstyled.
type styles struct {
	header     lipgloss.Style
	badge      lipgloss.Style
	groupLabel lipgloss.Style
	cursor     lipgloss.Style
	unread     lipgloss.Style
	read       lipgloss.Style
	footer     lipgloss.Style
	toast      lipgloss.Style
	errorLine  lipgloss.Style
	searchBox  lipgloss.Style

	typeStyles   map[domain.Type]lipgloss.Style
	statusStyles map[domain.Status]lipgloss.Style
	stateStyles  map[store.PageState]lipgloss.Style
	connStyles   map[bool]lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("57")).
			Padding(0, 1),
		badge: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("160")).
			Padding(0, 1),
		groupLabel: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginTop(1),
		cursor: lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("250")),
		unread: lipgloss.NewStyle().
			Bold(true),
		read: lipgloss.NewStyle().
			Faint(true),
		footer: lipgloss.NewStyle().
			Faint(true),
		toast: lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("28")).
			Padding(0, 1),
		errorLine: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),
		searchBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1),

		typeStyles: map[domain.Type]lipgloss.Style{
			domain.TypeSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("40")),
			domain.TypeError:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
			domain.TypeWarn:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			domain.TypeInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("45")),
		},
		statusStyles: map[domain.Status]lipgloss.Style{
			domain.StatusUnread: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
			domain.StatusRead:   lipgloss.NewStyle().Faint(true),
		},
		stateStyles: map[store.PageState]lipgloss.Style{
			store.StateIdle:        lipgloss.NewStyle().Faint(true),
			store.StateLoading:     lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
			store.StateLoaded:      lipgloss.NewStyle().Foreground(lipgloss.Color("40")),
			store.StateLoadingMore: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
			store.StateErrored:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		},
		connStyles: map[bool]lipgloss.Style{
			true:  lipgloss.NewStyle().Foreground(lipgloss.Color("40")),
			false: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		},
	}
}

// typeStyle returns the style for a notification type, falling back to the
// info style for values outside the closed enum.
func (s styles) typeStyle(t domain.Type) lipgloss.Style {
	if style, ok := s.typeStyles[t]; ok {
		return style
	}
	return s.typeStyles[domain.TypeInfo]
}

// statusStyle returns the style for a read status.
func (s styles) statusStyle(status domain.Status) lipgloss.Style {
	if style, ok := s.statusStyles[status]; ok {
		return style
	}
	return s.statusStyles[domain.StatusRead]
}

// stateStyle returns the style for a page state.
func (s styles) stateStyle(state store.PageState) lipgloss.Style {
	if style, ok := s.stateStyles[state]; ok {
		return style
	}
	return s.stateStyles[store.StateIdle]
}

// typeIcon maps each notification type to its tray glyph.
var typeIcon = map[domain.Type]string{
	domain.TypeSuccess: "✓",
	domain.TypeError:   "✗",
	domain.TypeWarn:    "!",
	domain.TypeInfo:    "i",
}

func iconFor(t domain.Type) string {
	if icon, ok := typeIcon[t]; ok {
		return icon
	}
	return typeIcon[domain.TypeInfo]
}
