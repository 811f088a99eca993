// Package domain provides the domain layer for notifications.
// It contains business logic, value objects, and domain services.
package domain

import (
	"fmt"
	"strings"
)

// Status filter constants. The zero value means no filtering.
const (
	StatusFilterAll    = "all"
	StatusFilterUnread = "unread"
	StatusFilterRead   = "read"
)

// Resolved filter constants.
const (
	ResolvedFilterAll        = "all"
	ResolvedFilterResolved   = "resolved"
	ResolvedFilterUnresolved = "unresolved"
)

// Filter holds filter criteria for notifications. Filters combine with AND;
// each defaults to "all" which matches everything.
type Filter struct {
	Status        string // "all", "unread", or "read"
	Type          Type   // empty means all types
	Resolved      string // "all", "resolved", or "unresolved"
	MarketplaceID string
}

// FilterOptions holds filter parameters similar to CLI options.
type FilterOptions struct {
	Status        string
	Type          string
	Resolved      string
	MarketplaceID string
}

// ToFilter converts FilterOptions to a Filter struct.
func (fo FilterOptions) ToFilter() (Filter, error) {
	var typ Type
	var err error

	if fo.Type != "" && fo.Type != "all" {
		typ, err = ParseType(fo.Type)
		if err != nil {
			return Filter{}, err
		}
	}

	status := fo.Status
	switch status {
	case "", StatusFilterAll, StatusFilterUnread, StatusFilterRead:
	default:
		return Filter{}, fmt.Errorf("invalid status filter: %s", fo.Status)
	}

	resolved := fo.Resolved
	switch resolved {
	case "", ResolvedFilterAll, ResolvedFilterResolved, ResolvedFilterUnresolved:
	default:
		return Filter{}, fmt.Errorf("invalid resolved filter: %s", fo.Resolved)
	}

	return Filter{
		Status:        status,
		Type:          typ,
		Resolved:      resolved,
		MarketplaceID: fo.MarketplaceID,
	}, nil
}

// IsEmpty returns true if the filter has no criteria set.
func (f Filter) IsEmpty() bool {
	return (f.Status == "" || f.Status == StatusFilterAll) &&
		f.Type == "" &&
		(f.Resolved == "" || f.Resolved == ResolvedFilterAll) &&
		f.MarketplaceID == ""
}

// Matches checks if the notification matches the given filter criteria.
func (n *Notification) Matches(filter Filter) bool {
	if filter.Type != "" && n.Type != filter.Type {
		return false
	}
	switch filter.Status {
	case StatusFilterUnread:
		if n.IsRead() {
			return false
		}
	case StatusFilterRead:
		if !n.IsRead() {
			return false
		}
	}
	switch filter.Resolved {
	case ResolvedFilterResolved:
		if !n.IsResolved() {
			return false
		}
	case ResolvedFilterUnresolved:
		if n.IsResolved() {
			return false
		}
	}
	if filter.MarketplaceID != "" && n.MarketplaceID != filter.MarketplaceID {
		return false
	}
	return true
}

// FilterNotifications filters a slice of notifications based on the given
// filter. Returns a new slice containing only matching notifications.
func FilterNotifications(notifs []Notification, filter Filter) []Notification {
	if filter.IsEmpty() {
		return notifs
	}

	result := make([]Notification, 0, len(notifs))
	for _, n := range notifs {
		if n.Matches(filter) {
			result = append(result, n)
		}
	}
	return result
}

// FilterByType filters notifications by type.
func FilterByType(notifs []Notification, typ string) []Notification {
	if typ == "" || typ == "all" {
		return notifs
	}
	return FilterNotifications(notifs, Filter{Type: Type(typ)})
}

// FilterByStatus filters notifications by read status.
func FilterByStatus(notifs []Notification, status string) []Notification {
	if status == "" || status == StatusFilterAll {
		return notifs
	}
	return FilterNotifications(notifs, Filter{Status: status})
}

// FilterByResolved filters notifications by resolved state.
func FilterByResolved(notifs []Notification, resolved string) []Notification {
	if resolved == "" || resolved == ResolvedFilterAll {
		return notifs
	}
	return FilterNotifications(notifs, Filter{Resolved: resolved})
}

// SearchNotifications filters notifications by a case-insensitive substring
// match across title, message, and ASIN (OR across fields).
func SearchNotifications(notifs []Notification, query string) []Notification {
	if query == "" {
		return notifs
	}

	searchQuery := strings.ToLower(query)

	result := make([]Notification, 0)
	for _, n := range notifs {
		text := strings.ToLower(n.Title + " " + n.Message + " " + n.ASIN)
		if strings.Contains(text, searchQuery) {
			result = append(result, n)
		}
	}
	return result
}
