// Package domain provides the domain layer for notifications.
// It contains business logic, value objects, and domain services.
package domain

import (
	"fmt"
	"sort"
)

// SortOrder specifies the sort direction for CreatedAt ordering.
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// IsValid checks if the sort order is valid.
func (s SortOrder) IsValid() bool {
	switch s {
	case SortOrderAsc, SortOrderDesc:
		return true
	default:
		return false
	}
}

// String returns the string representation of the sort order.
func (s SortOrder) String() string {
	return string(s)
}

// SortNotifications sorts notifications by CreatedAt in the given order.
// The sort is stable: notifications with equal timestamps keep their relative
// input order. Returns a new sorted slice without modifying the original.
func SortNotifications(notifs []Notification, order SortOrder) []Notification {
	if len(notifs) == 0 {
		return notifs
	}

	if !order.IsValid() {
		order = SortOrderDesc
	}

	sorted := make([]Notification, len(notifs))
	copy(sorted, notifs)

	sort.SliceStable(sorted, func(i, j int) bool {
		if order == SortOrderAsc {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		}
		return sorted[j].CreatedAt.Before(sorted[i].CreatedAt)
	})

	return sorted
}

// SortWithUnreadFirst partitions notifications into unread and read groups,
// sorts each group by CreatedAt in the given order, and recombines them with
// unread first. Returns a new slice without modifying the original.
func SortWithUnreadFirst(notifs []Notification, order SortOrder) []Notification {
	if len(notifs) == 0 {
		return notifs
	}

	unread := make([]Notification, 0, len(notifs))
	read := make([]Notification, 0, len(notifs))

	for _, n := range notifs {
		if n.IsRead() {
			read = append(read, n)
		} else {
			unread = append(unread, n)
		}
	}

	result := make([]Notification, 0, len(notifs))
	result = append(result, SortNotifications(unread, order)...)
	result = append(result, SortNotifications(read, order)...)

	return result
}

// DefaultSortOrder returns the default sort order (newest first).
func DefaultSortOrder() SortOrder {
	return SortOrderDesc
}

// ParseSortOrder parses a string into a SortOrder.
func ParseSortOrder(order string) (SortOrder, error) {
	o := SortOrder(order)
	if !o.IsValid() {
		return "", fmt.Errorf("invalid sort order: %s", order)
	}
	return o, nil
}
