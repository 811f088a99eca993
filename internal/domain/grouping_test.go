package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayLabel(t *testing.T) {
	now := time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"same day", time.Date(2026, 9, 1, 0, 30, 0, 0, time.UTC), "Today"},
		{"previous day", time.Date(2026, 8, 31, 23, 59, 0, 0, time.UTC), "Yesterday"},
		{"ten days ago", time.Date(2026, 8, 22, 12, 0, 0, 0, time.UTC), "August 22"},
		{"previous year", time.Date(2025, 12, 31, 12, 0, 0, 0, time.UTC), "December 31"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DayLabel(tt.at, now))
		})
	}
}

func TestGroupByDay(t *testing.T) {
	now := time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC)
	today := notifAt("t1", now.Add(-1*time.Hour))
	yesterday := notifAt("y1", now.AddDate(0, 0, -1))
	older := notifAt("o1", now.AddDate(0, 0, -10))
	olderRead := notifAt("o2", now.AddDate(0, 0, -10).Add(time.Hour))
	olderRead.Status = StatusRead

	// Newest-first input: group order must follow first-seen order.
	result := GroupByDay([]Notification{today, yesterday, olderRead, older}, now)

	require.Len(t, result.Groups, 3)
	assert.Equal(t, "Today", result.Groups[0].Label)
	assert.Equal(t, "Yesterday", result.Groups[1].Label)
	assert.Equal(t, "August 22", result.Groups[2].Label)

	assert.Equal(t, []string{"t1"}, idsOf(result.Groups[0].Notifications))
	assert.Equal(t, []string{"y1"}, idsOf(result.Groups[1].Notifications))
	assert.Equal(t, []string{"o2", "o1"}, idsOf(result.Groups[2].Notifications))

	assert.Equal(t, 4, result.TotalCount)
	assert.Equal(t, 3, result.TotalUnread)
	assert.Equal(t, 2, result.Groups[2].Count)
	assert.Equal(t, 1, result.Groups[2].UnreadCount)
}

func TestGroupByDay_AscendingInputYieldsOldestGroupFirst(t *testing.T) {
	now := time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC)
	notifs := []Notification{
		notifAt("o1", now.AddDate(0, 0, -10)),
		notifAt("y1", now.AddDate(0, 0, -1)),
		notifAt("t1", now.Add(-time.Hour)),
	}

	result := GroupByDay(notifs, now)
	require.Len(t, result.Groups, 3)
	assert.Equal(t, "August 22", result.Groups[0].Label)
	assert.Equal(t, "Yesterday", result.Groups[1].Label)
	assert.Equal(t, "Today", result.Groups[2].Label)
}

func TestGroupByDay_Empty(t *testing.T) {
	result := GroupByDay(nil, time.Now())
	assert.Empty(t, result.Groups)
	assert.Equal(t, 0, result.TotalCount)
	assert.Equal(t, 0, result.TotalUnread)
}

func TestCountUnread(t *testing.T) {
	read := notifAt("r1", time.Now())
	read.Status = StatusRead
	notifs := []Notification{
		notifAt("u1", time.Now()),
		read,
		notifAt("u2", time.Now()),
	}
	assert.Equal(t, 2, CountUnread(notifs))
}
