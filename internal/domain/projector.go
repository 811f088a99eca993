// Package domain provides the domain layer for notifications.
// It contains business logic, value objects, and domain services.
package domain

import (
	"time"
)

// MatchFunc decides whether a notification matches a search query. It allows
// callers to plug in alternative search strategies; when nil, the default
// case-insensitive substring search is used.
type MatchFunc func(n Notification, query string) bool

// View holds the presentation-side projection criteria: filters, search
// query, and ordering. It is owned by the caller and passed by value on every
// projection.
type View struct {
	Filter      Filter
	Search      string
	Order       SortOrder
	UnreadFirst bool
	Match       MatchFunc
}

// DefaultView returns a view with no filtering and newest-first ordering.
func DefaultView() View {
	return View{
		Filter: Filter{
			Status:   StatusFilterAll,
			Resolved: ResolvedFilterAll,
		},
		Order: DefaultSortOrder(),
	}
}

// Project transforms a raw notification list into a filtered, sorted,
// day-grouped view model. The transformation is pure: the input slice is
// never mutated and identical inputs produce identical output.
func Project(notifs []Notification, view View, now time.Time) DayGroupResult {
	if now.IsZero() {
		now = time.Now()
	}

	filtered := FilterNotifications(notifs, view.Filter)
	filtered = applySearch(filtered, view)

	var sorted []Notification
	if view.UnreadFirst {
		sorted = SortWithUnreadFirst(filtered, view.Order)
	} else {
		sorted = SortNotifications(filtered, view.Order)
	}

	return GroupByDay(sorted, now)
}

// applySearch filters by the view's search query using the configured match
// function.
func applySearch(notifs []Notification, view View) []Notification {
	if view.Search == "" {
		return notifs
	}

	if view.Match == nil {
		return SearchNotifications(notifs, view.Search)
	}

	result := make([]Notification, 0, len(notifs))
	for _, n := range notifs {
		if view.Match(n, view.Search) {
			result = append(result, n)
		}
	}
	return result
}
