package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func notifAt(id string, createdAt time.Time) Notification {
	return Notification{ID: id, Type: TypeInfo, Status: StatusUnread, CreatedAt: createdAt}
}

func TestSortNotifications(t *testing.T) {
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	notifs := []Notification{
		notifAt("n2", base.Add(2*time.Hour)),
		notifAt("n1", base.Add(1*time.Hour)),
		notifAt("n3", base.Add(3*time.Hour)),
	}

	asc := SortNotifications(notifs, SortOrderAsc)
	require.Len(t, asc, 3)
	assert.Equal(t, []string{"n1", "n2", "n3"}, idsOf(asc))

	desc := SortNotifications(notifs, SortOrderDesc)
	assert.Equal(t, []string{"n3", "n2", "n1"}, idsOf(desc))

	// Original slice is untouched.
	assert.Equal(t, []string{"n2", "n1", "n3"}, idsOf(notifs))
}

func TestSortNotifications_StableOnEqualTimestamps(t *testing.T) {
	ts := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	notifs := []Notification{
		notifAt("n1", ts),
		notifAt("n2", ts),
		notifAt("n3", ts),
	}

	for _, order := range []SortOrder{SortOrderAsc, SortOrderDesc} {
		got := SortNotifications(notifs, order)
		assert.Equal(t, []string{"n1", "n2", "n3"}, idsOf(got), "order %s", order)
	}
}

func TestSortNotifications_InvalidOrderDefaultsToDesc(t *testing.T) {
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	notifs := []Notification{
		notifAt("old", base),
		notifAt("new", base.Add(time.Hour)),
	}

	got := SortNotifications(notifs, SortOrder("sideways"))
	assert.Equal(t, []string{"new", "old"}, idsOf(got))
}

func TestSortWithUnreadFirst(t *testing.T) {
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	read := notifAt("r1", base.Add(5*time.Hour))
	read.Status = StatusRead
	notifs := []Notification{
		read,
		notifAt("u1", base.Add(1*time.Hour)),
		notifAt("u2", base.Add(2*time.Hour)),
	}

	got := SortWithUnreadFirst(notifs, SortOrderDesc)
	assert.Equal(t, []string{"u2", "u1", "r1"}, idsOf(got))

	got = SortWithUnreadFirst(notifs, SortOrderAsc)
	assert.Equal(t, []string{"u1", "u2", "r1"}, idsOf(got))
}

func TestParseSortOrder(t *testing.T) {
	order, err := ParseSortOrder("asc")
	require.NoError(t, err)
	assert.Equal(t, SortOrderAsc, order)

	_, err = ParseSortOrder("upwards")
	assert.Error(t, err)
}

func idsOf(notifs []Notification) []string {
	ids := make([]string, 0, len(notifs))
	for _, n := range notifs {
		ids = append(ids, n.ID)
	}
	return ids
}
