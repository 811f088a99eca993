package search

import (
	"strings"

	"github.com/sellerdash/sellertray/internal/domain"
)

// SubstringProvider provides substring-based search.
// Matches if any configured field contains the query as a substring.
type SubstringProvider struct {
	opts Options
}

// NewSubstringProvider creates a new substring search provider.
func NewSubstringProvider(opts ...Option) Provider {
	return &SubstringProvider{
		opts: applyOptions(opts),
	}
}

// Match returns true if any configured field contains the query substring.
func (p *SubstringProvider) Match(notif domain.Notification, query string) bool {
	if query == "" {
		return true
	}

	searchQuery := query
	if p.opts.CaseInsensitive {
		searchQuery = strings.ToLower(query)
	}

	for _, field := range p.opts.Fields {
		value := fieldValue(notif, field)
		if value == "" {
			continue
		}

		if p.opts.CaseInsensitive {
			value = strings.ToLower(value)
		}

		if strings.Contains(value, searchQuery) {
			return true
		}
	}

	return false
}

// Name returns the provider name.
func (p *SubstringProvider) Name() string {
	return "substring"
}
