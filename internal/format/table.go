package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/sellerdash/sellertray/internal/colors"
	"github.com/sellerdash/sellertray/internal/domain"
)

// TableConfig holds configuration for table formatting.
type TableConfig struct {
	// ShowHeaders determines whether to show column headers.
	ShowHeaders bool

	// HeaderColor is the color to use for headers.
	HeaderColor string

	// ColumnWidths defines the width for each column.
	ColumnWidths map[string]int

	// ColumnAlignments defines the alignment for each column (left, right, center).
	ColumnAlignments map[string]string
}

// DefaultTableConfig returns a default table configuration.
func DefaultTableConfig() *TableConfig {
	return &TableConfig{
		ShowHeaders: true,
		HeaderColor: colors.Blue,
		ColumnWidths: map[string]int{
			"Date":        16,
			"Type":        7,
			"Status":      6,
			"Title":       32,
			"ASIN":        10,
			"Marketplace": 14,
		},
		ColumnAlignments: map[string]string{
			"Date":   "left",
			"Type":   "left",
			"Status": "left",
		},
	}
}

// TableColumn represents a column in a table.
type TableColumn struct {
	// Name is the column name displayed in the header.
	Name string

	// Width is the column width in characters.
	Width int

	// Alignment is the text alignment (left, right, center).
	Alignment string

	// Extractor extracts the value from a notification.
	Extractor func(domain.Notification) string
}

// TableFormatter renders notifications as a fixed-width table.
type TableFormatter struct {
	config  *TableConfig
	columns []TableColumn
}

// NewTableFormatter creates a TableFormatter with default columns.
func NewTableFormatter() *TableFormatter {
	config := DefaultTableConfig()
	columns := []TableColumn{
		{
			Name:      "Date",
			Width:     config.ColumnWidths["Date"],
			Alignment: config.ColumnAlignments["Date"],
			Extractor: func(n domain.Notification) string {
				return formatString(n.CreatedAt.Format(displayDateFormat), config.ColumnWidths["Date"], config.ColumnAlignments["Date"])
			},
		},
		{
			Name:      "Type",
			Width:     config.ColumnWidths["Type"],
			Alignment: config.ColumnAlignments["Type"],
			Extractor: func(n domain.Notification) string {
				return formatString(n.Type.String(), config.ColumnWidths["Type"], config.ColumnAlignments["Type"])
			},
		},
		{
			Name:      "Status",
			Width:     config.ColumnWidths["Status"],
			Alignment: config.ColumnAlignments["Status"],
			Extractor: func(n domain.Notification) string {
				return formatString(n.Status.String(), config.ColumnWidths["Status"], config.ColumnAlignments["Status"])
			},
		},
		{
			Name:  "Title",
			Width: config.ColumnWidths["Title"],
			Extractor: func(n domain.Notification) string {
				return truncateString(n.Title, config.ColumnWidths["Title"])
			},
		},
		{
			Name:  "ASIN",
			Width: config.ColumnWidths["ASIN"],
			Extractor: func(n domain.Notification) string {
				return formatString(n.ASIN, config.ColumnWidths["ASIN"], "left")
			},
		},
	}
	return &TableFormatter{
		config:  config,
		columns: columns,
	}
}

// WithColumns adds custom columns to the formatter.
func (f *TableFormatter) WithColumns(columns ...TableColumn) *TableFormatter {
	f.columns = append(f.columns, columns...)
	return f
}

// FormatNotifications formats notifications in table format.
func (f *TableFormatter) FormatNotifications(notifications []domain.Notification, writer io.Writer) error {
	if len(notifications) == 0 {
		return nil
	}

	if f.config.ShowHeaders {
		if err := f.writeHeader(writer); err != nil {
			return err
		}
	}

	if err := f.writeSeparator(writer); err != nil {
		return err
	}

	for _, n := range notifications {
		if err := f.writeRow(n, writer); err != nil {
			return err
		}
	}

	return nil
}

// FormatGroups formats day-grouped notifications in table format.
func (f *TableFormatter) FormatGroups(groups domain.DayGroupResult, writer io.Writer) error {
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

// writeHeader writes the table header.
func (f *TableFormatter) writeHeader(writer io.Writer) error {
	reset := colors.Reset
	for i, col := range f.columns {
		header := formatString(col.Name, col.Width, "left")
		if i == 0 {
			_, err := fmt.Fprintf(writer, "%s%s%s", f.config.HeaderColor, header, reset)
			if err != nil {
				return err
			}
		} else {
			_, err := fmt.Fprintf(writer, "  %s", header)
			if err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(writer)
	return err
}

// writeSeparator writes the table separator.
func (f *TableFormatter) writeSeparator(writer io.Writer) error {
	reset := colors.Reset
	for i, col := range f.columns {
		separator := makeSeparator(col.Width)
		if i == 0 {
			_, err := fmt.Fprintf(writer, "%s%s%s", f.config.HeaderColor, separator, reset)
			if err != nil {
				return err
			}
		} else {
			_, err := fmt.Fprintf(writer, "  %s", separator)
			if err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(writer)
	return err
}

// writeRow writes a single table row.
func (f *TableFormatter) writeRow(notification domain.Notification, writer io.Writer) error {
	for i, col := range f.columns {
		value := col.Extractor(notification)
		if i > 0 {
			_, err := fmt.Fprintf(writer, "  %s", value)
			if err != nil {
				return err
			}
		} else {
			_, err := fmt.Fprintf(writer, "%s", value)
			if err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(writer)
	return err
}

// formatString formats a string with the specified width and alignment.
func formatString(s string, width int, alignment string) string {
	if len(s) >= width {
		return s[:width]
	}

	switch alignment {
	case "right":
		return strings.Repeat(" ", width-len(s)) + s
	case "center":
		left := (width - len(s)) / 2
		right := width - len(s) - left
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
	default: // left
		return s + strings.Repeat(" ", width-len(s))
	}
}

// truncateString truncates a string to the specified width, adding "..." if truncated.
func truncateString(s string, width int) string {
	if len(s) <= width {
		return s + strings.Repeat(" ", width-len(s))
	}
	if width < 3 {
		return s[:width]
	}
	return s[:width-3] + "..."
}

// makeSeparator creates a separator line of the specified width.
func makeSeparator(width int) string {
	return strings.Repeat("-", width)
}
