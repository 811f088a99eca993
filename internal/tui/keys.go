package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all tray key bindings.
type keyMap struct {
	Up            key.Binding
	Down          key.Binding
	MarkRead      key.Binding
	MarkAllRead   key.Binding
	LoadMore      key.Binding
	Refresh       key.Binding
	Reconnect     key.Binding
	Search        key.Binding
	ClearSearch   key.Binding
	UnreadFirst   key.Binding
	SortOrder     key.Binding
	StatusCycle   key.Binding
	TypeCycle     key.Binding
	ResolvedCycle key.Binding
	Help          key.Binding
	Quit          key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		MarkRead: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "mark read"),
		),
		MarkAllRead: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "mark all read"),
		),
		LoadMore: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "more"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Reconnect: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reconnect"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		ClearSearch: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear"),
		),
		UnreadFirst: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "unread first"),
		),
		SortOrder: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "sort order"),
		),
		StatusCycle: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "status filter"),
		),
		TypeCycle: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "type filter"),
		),
		ResolvedCycle: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "resolved filter"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.MarkRead, k.Search, k.Quit}
}

// FullHelp returns all bindings for the expanded help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.MarkRead, k.MarkAllRead, k.LoadMore},
		{k.Search, k.ClearSearch, k.UnreadFirst, k.SortOrder, k.StatusCycle, k.TypeCycle, k.ResolvedCycle},
		{k.Refresh, k.Reconnect, k.Help, k.Quit},
	}
}
