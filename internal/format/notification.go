package format

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/sellerdash/sellertray/internal/domain"
)

const displayDateFormat = "2006-01-02 15:04"

// unreadMarker flags unread notifications in line-oriented output.
func unreadMarker(n domain.Notification) string {
	if n.IsRead() {
		return " "
	}
	return "*"
}

// SimpleFormatter formats notifications one per line with date, type, and title.
type SimpleFormatter struct{}

// NewSimpleFormatter creates a new SimpleFormatter.
func NewSimpleFormatter() *SimpleFormatter {
	return &SimpleFormatter{}
}

// FormatNotifications formats notifications in simple format.
func (f *SimpleFormatter) FormatNotifications(notifications []domain.Notification, writer io.Writer) error {
	for _, n := range notifications {
		displayTitle := n.Title
		if len(displayTitle) > 50 {
			displayTitle = displayTitle[:47] + "..."
		}
		_, err := fmt.Fprintf(writer, "%s %-16s  %-7s  %s\n",
			unreadMarker(n), n.CreatedAt.Format(displayDateFormat), n.Type.String(), displayTitle)
		if err != nil {
			return err
		}
	}
	return nil
}

// FormatGroups formats day-grouped notifications in simple format.
func (f *SimpleFormatter) FormatGroups(groups domain.DayGroupResult, writer io.Writer) error {
	return writeGroups(f, groups, writer)
}

// CompactFormatter formats notifications with title only, one per line.
type CompactFormatter struct{}

// NewCompactFormatter creates a new CompactFormatter.
func NewCompactFormatter() *CompactFormatter {
	return &CompactFormatter{}
}

// FormatNotifications formats notifications in compact format.
func (f *CompactFormatter) FormatNotifications(notifications []domain.Notification, writer io.Writer) error {
	for _, n := range notifications {
		displayTitle := n.Title
		if len(displayTitle) > 60 {
			displayTitle = displayTitle[:57] + "..."
		}
		_, err := fmt.Fprintln(writer, displayTitle)
		if err != nil {
			return err
		}
	}
	return nil
}

// FormatGroups formats day-grouped notifications in compact format.
func (f *CompactFormatter) FormatGroups(groups domain.DayGroupResult, writer io.Writer) error {
	return writeGroups(f, groups, writer)
}

// JSONFormatter formats notifications as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// FormatNotifications formats notifications as JSON.
func (f *JSONFormatter) FormatNotifications(notifications []domain.Notification, writer io.Writer) error {
	data, err := json.MarshalIndent(notifications, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal notifications to JSON: %w", err)
	}
	if _, err := writer.Write(data); err != nil {
		return err
	}
	_, err = fmt.Fprintln(writer)
	return err
}

// FormatGroups formats day-grouped notifications as JSON.
func (f *JSONFormatter) FormatGroups(groups domain.DayGroupResult, writer io.Writer) error {
	data, err := json.MarshalIndent(groups, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal group result to JSON: %w", err)
	}
	if _, err := writer.Write(data); err != nil {
		return err
	}
	_, err = fmt.Fprintln(writer)
	return err
}

// GroupCountFormatter formats only group headers with counts.
type GroupCountFormatter struct {
	formatter Formatter
}

// NewGroupCountFormatter creates a new GroupCountFormatter.
func NewGroupCountFormatter(formatter Formatter) *GroupCountFormatter {
	return &GroupCountFormatter{formatter: formatter}
}

// FormatNotifications is not applicable for GroupCountFormatter.
func (f *GroupCountFormatter) FormatNotifications(notifications []domain.Notification, writer io.Writer) error {
	return fmt.Errorf("formatNotifications not supported for GroupCountFormatter")
}

// FormatGroups formats only group headers.
func (f *GroupCountFormatter) FormatGroups(groups domain.DayGroupResult, writer io.Writer) error {
	for _, group := range groups.Groups {
		_, err := fmt.Fprintf(writer, "Group: %s (%d unread, %d total)\n",
			group.Label, group.UnreadCount, group.Count)
		if err != nil {
			return err
		}
	}
	return nil
}

// writeGroups prints each day group's header followed by its notifications
// through the given formatter.
func writeGroups(f Formatter, groups domain.DayGroupResult, writer io.Writer) error {
	for _, group := range groups.Groups {
		_, err := fmt.Fprintf(writer, "=== %s (%d) ===\n", group.Label, group.Count)
		if err != nil {
			return err
		}
		if err := f.FormatNotifications(group.Notifications, writer); err != nil {
			return err
		}
	}
	return nil
}
