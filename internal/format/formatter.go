// Package format provides output formatting for CLI commands. It includes
// formatters for different output styles and notification display.
package format

import (
	"io"

	"github.com/sellerdash/sellertray/internal/domain"
)

// Formatter defines the interface for output formatters.
type Formatter interface {
	// FormatNotifications formats a slice of notifications and writes to the writer.
	FormatNotifications(notifications []domain.Notification, writer io.Writer) error

	// FormatGroups formats day-grouped notifications and writes to the writer.
	FormatGroups(groups domain.DayGroupResult, writer io.Writer) error
}

// FormatterType represents the type of formatter to use.
type FormatterType string

const (
	// FormatterTypeSimple displays one line per notification with date, type, and title.
	FormatterTypeSimple FormatterType = "simple"

	// FormatterTypeCompact displays only titles, one per line.
	FormatterTypeCompact FormatterType = "compact"

	// FormatterTypeTable displays notifications in a table format with headers.
	FormatterTypeTable FormatterType = "table"

	// FormatterTypeJSON displays notifications in JSON format.
	FormatterTypeJSON FormatterType = "json"
)

// NewFormatter creates a new formatter of the specified type.
func NewFormatter(formatterType FormatterType) Formatter {
	switch formatterType {
	case FormatterTypeCompact:
		return NewCompactFormatter()
	case FormatterTypeTable:
		return NewTableFormatter()
	case FormatterTypeJSON:
		return NewJSONFormatter()
	default:
		return NewSimpleFormatter()
	}
}

// GetFormatter resolves a format name to a formatter, optionally wrapping it
// so only group headers are printed.
func GetFormatter(format string, groupCount bool) Formatter {
	formatterType := FormatterType(format)

	valid := false
	for _, ft := range []FormatterType{
		FormatterTypeSimple,
		FormatterTypeCompact,
		FormatterTypeTable,
		FormatterTypeJSON,
	} {
		if ft == formatterType {
			valid = true
			break
		}
	}
	if !valid {
		formatterType = FormatterTypeSimple
	}

	if groupCount {
		return NewGroupCountFormatter(NewFormatter(formatterType))
	}
	return NewFormatter(formatterType)
}
