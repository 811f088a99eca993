package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sellerdash/sellertray/internal/domain"
	"github.com/sellerdash/sellertray/internal/errors"
	"github.com/sellerdash/sellertray/internal/store"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if m.searching {
		b.WriteString(m.styles.searchBox.Render(m.searchInput.View()))
		b.WriteString("\n")
	}

	b.WriteString(m.renderBody())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

// renderHeader shows the title, unread badge, connection state, and fetch
// state.
func (m *Model) renderHeader() string {
	parts := []string{
		m.styles.header.Render("sellertray"),
	}

	if m.snapshot.UnreadCount > 0 {
		parts = append(parts, m.styles.badge.Render(fmt.Sprintf("%d unread", m.snapshot.UnreadCount)))
	}

	conn := "● offline"
	if m.connected {
		conn = "● live"
	}
	parts = append(parts, m.styles.connStyles[m.connected].Render(conn))

	parts = append(parts, m.styles.stateStyle(m.snapshot.State).Render(stateLabel(m.snapshot.State)))

	if !m.view.Filter.IsEmpty() || m.view.Search != "" {
		parts = append(parts, m.styles.footer.Render(m.filterSummary()))
	}

	return lipgloss.JoinHorizontal(lipgloss.Center, joinSpaced(parts)...)
}

// renderBody shows the day-grouped notification list with the cursor.
func (m *Model) renderBody() string {
	if len(m.flat) == 0 {
		return m.styles.footer.Render(m.emptyMessage())
	}

	var b strings.Builder
	row := 0
	for _, group := range m.groups.Groups {
		label := fmt.Sprintf("%s (%d)", group.Label, group.Count)
		b.WriteString(m.styles.groupLabel.Render(label))
		b.WriteString("\n")

		for _, n := range group.Notifications {
			b.WriteString(m.renderRow(n, row == m.cursor))
			b.WriteString("\n")
			row++
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderRow renders one notification line.
func (m *Model) renderRow(n domain.Notification, selected bool) string {
	icon := m.styles.typeStyle(n.Type).Render(iconFor(n.Type))

	title := n.Title
	if n.ASIN != "" {
		title += " [" + n.ASIN + "]"
	}

	var line string
	if n.IsRead() {
		line = m.styles.read.Render(title)
	} else {
		line = m.styles.unread.Render(title)
	}

	timeStr := m.styles.footer.Render(n.CreatedAt.Format("15:04"))
	marker := " "
	if !n.IsRead() {
		marker = m.styles.statusStyle(n.Status).Render("•")
	}

	rendered := fmt.Sprintf("%s %s %s %s", marker, icon, line, timeStr)
	if selected {
		return m.styles.cursor.Render("> " + rendered)
	}
	return "  " + rendered
}

// renderFooter shows the toast, the last error, and key help.
func (m *Model) renderFooter() string {
	var b strings.Builder

	if m.toast != nil {
		b.WriteString(m.styles.toast.Render(fmt.Sprintf("%s %s", iconFor(m.toast.Level), m.toast.Title)))
		b.WriteString("\n")
	}
	if latest, ok := m.msgs.GetLatest(); ok {
		b.WriteString(m.renderMessage(latest))
		b.WriteString("\n")
	}

	if m.snapshot.HasMore() {
		b.WriteString(m.styles.footer.Render(fmt.Sprintf("page %d/%d, press m for more",
			m.snapshot.CurrentPage, m.snapshot.TotalPages)))
		b.WriteString("\n")
	}

	if m.showHelp {
		b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	} else {
		b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	}
	return b.String()
}

// renderMessage renders one footer line from the message log.
func (m *Model) renderMessage(msg errors.Message) string {
	switch msg.Type {
	case errors.MessageTypeError:
		return m.styles.errorLine.Render("error: " + msg.Text)
	case errors.MessageTypeWarning:
		return m.styles.errorLine.Render("warning: " + msg.Text)
	default:
		return m.styles.footer.Render(msg.Text)
	}
}

// emptyMessage explains an empty list relative to the active filters.
func (m *Model) emptyMessage() string {
	switch {
	case m.snapshot.State == store.StateLoading:
		return "loading notifications..."
	case m.view.Search != "":
		return fmt.Sprintf("no notifications match %q", m.view.Search)
	case !m.view.Filter.IsEmpty():
		return "no notifications match the active filters"
	default:
		return "no notifications"
	}
}

// filterSummary renders the active filter and search criteria compactly.
func (m *Model) filterSummary() string {
	parts := []string{}
	if m.view.Filter.Status != "" && m.view.Filter.Status != domain.StatusFilterAll {
		parts = append(parts, "status="+m.view.Filter.Status)
	}
	if m.view.Filter.Type != "" {
		parts = append(parts, "type="+m.view.Filter.Type.String())
	}
	if m.view.Filter.Resolved != "" && m.view.Filter.Resolved != domain.ResolvedFilterAll {
		parts = append(parts, "resolved="+m.view.Filter.Resolved)
	}
	if m.view.Search != "" {
		parts = append(parts, fmt.Sprintf("search=%q", m.view.Search))
	}
	return strings.Join(parts, " ")
}

// stateLabel maps each page state to its header text.
var pageStateLabels = map[store.PageState]string{
	store.StateIdle:        "",
	store.StateLoading:     "loading",
	store.StateLoaded:      "",
	store.StateLoadingMore: "loading more",
	store.StateErrored:     "fetch failed",
}

func stateLabel(state store.PageState) string {
	if label, ok := pageStateLabels[state]; ok {
		return label
	}
	return ""
}

// joinSpaced interleaves single spaces between non-empty parts.
func joinSpaced(parts []string) []string {
	out := make([]string, 0, len(parts)*2)
	for _, p := range parts {
		if p == "" {
			continue
		}
		if len(out) > 0 {
			out = append(out, " ")
		}
		out = append(out, p)
	}
	return out
}
