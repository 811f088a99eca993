// Package domain provides the domain layer for notifications.
// It contains business logic, value objects, and domain services.
package domain

import (
	"time"
)

// Day group labels for recent days. Older days are labeled with the
// formatted calendar date.
const (
	DayLabelToday     = "Today"
	DayLabelYesterday = "Yesterday"
)

// dayLabelFormat renders older days as e.g. "January 2".
const dayLabelFormat = "January 2"

// DayGroup represents a bucket of notifications sharing the same calendar day
// in local time.
type DayGroup struct {
	Key           string // canonical YYYY-MM-DD day key
	Label         string // "Today", "Yesterday", or a formatted date
	Count         int
	UnreadCount   int
	Notifications []Notification
}

// DayGroupResult represents the result of grouping notifications by day.
// Groups appear in first-seen order of the input sequence, so a sorted input
// yields groups ordered by the same direction.
type DayGroupResult struct {
	Groups      []DayGroup
	TotalCount  int
	TotalUnread int
}

// GroupByDay groups notifications by calendar day relative to now, using
// local-timezone day boundaries. The input order is preserved within each
// group and determines group order.
func GroupByDay(notifs []Notification, now time.Time) DayGroupResult {
	result := DayGroupResult{
		Groups:      []DayGroup{},
		TotalCount:  len(notifs),
		TotalUnread: CountUnread(notifs),
	}

	if len(notifs) == 0 {
		return result
	}

	index := make(map[string]int)

	for _, n := range notifs {
		local := n.CreatedAt.In(now.Location())
		key := local.Format("2006-01-02")

		i, ok := index[key]
		if !ok {
			i = len(result.Groups)
			index[key] = i
			result.Groups = append(result.Groups, DayGroup{
				Key:   key,
				Label: DayLabel(local, now),
			})
		}

		result.Groups[i].Notifications = append(result.Groups[i].Notifications, n)
		result.Groups[i].Count++
		if !n.IsRead() {
			result.Groups[i].UnreadCount++
		}
	}

	return result
}

// DayLabel returns the display label for the calendar day of t relative to
// now: "Today", "Yesterday", or a formatted date for anything older.
func DayLabel(t, now time.Time) string {
	day := truncateToDay(t.In(now.Location()))
	today := truncateToDay(now)

	switch {
	case day.Equal(today):
		return DayLabelToday
	case day.Equal(today.AddDate(0, 0, -1)):
		return DayLabelYesterday
	default:
		return day.Format(dayLabelFormat)
	}
}

// truncateToDay drops the time-of-day component in t's location.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// CountUnread counts unread notifications in a slice.
func CountUnread(notifs []Notification) int {
	count := 0
	for _, n := range notifs {
		if !n.IsRead() {
			count++
		}
	}
	return count
}
