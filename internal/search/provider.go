// Package search provides a unified search abstraction for filtering
// notifications. It supports multiple search strategies (substring, regex,
// token-based) through a common Provider interface, eliminating duplicate
// search logic between CLI and TUI.
package search

import (
	"fmt"

	"github.com/sellerdash/sellertray/internal/domain"
)

// Provider defines the interface for search providers.
// Implementations can use different strategies (substring, regex, token-based,
// etc.) to match notifications against search queries.
type Provider interface {
	// Match returns true if the notification matches the search query.
	Match(notif domain.Notification, query string) bool

	// Name returns the provider name for identification and debugging.
	Name() string
}

// Options holds configuration options for creating search providers.
type Options struct {
	CaseInsensitive bool     // If true, searches ignore case sensitivity
	Fields          []string // Fields to search in (default: title, message, asin)
}

// DefaultOptions returns the default search options.
func DefaultOptions() Options {
	return Options{
		CaseInsensitive: true,
		Fields:          []string{"title", "message", "asin"},
	}
}

// Option is a function that modifies search options.
type Option func(*Options)

// WithCaseInsensitive sets case-insensitive search.
func WithCaseInsensitive(enabled bool) Option {
	return func(o *Options) {
		o.CaseInsensitive = enabled
	}
}

// WithFields sets the fields to search in.
// Valid fields: "title", "message", "asin", "marketplace", "source", "type",
// "status".
func WithFields(fields []string) Option {
	return func(o *Options) {
		o.Fields = fields
	}
}

// applyOptions applies the given options to the options struct.
func applyOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// fieldValue extracts the value of a named search field from a notification.
// Unknown fields yield an empty string and never match.
func fieldValue(notif domain.Notification, field string) string {
	switch field {
	case "title":
		return notif.Title
	case "message":
		return notif.Message
	case "asin":
		return notif.ASIN
	case "marketplace":
		return notif.MarketplaceID
	case "source":
		return notif.Source
	case "type":
		return notif.Type.String()
	case "status":
		return notif.Status.String()
	default:
		return ""
	}
}

// NewProvider creates a provider by strategy name: "substring", "regex", or
// "token".
func NewProvider(strategy string, opts ...Option) (Provider, error) {
	switch strategy {
	case "", "substring":
		return NewSubstringProvider(opts...), nil
	case "regex":
		return NewRegexProvider(opts...), nil
	case "token":
		return NewTokenProvider(opts...), nil
	default:
		return nil, fmt.Errorf("unknown search strategy: %s", strategy)
	}
}
