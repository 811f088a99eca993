// Package tui implements the interactive notification tray shell.
package tui

import (
	"github.com/sellerdash/sellertray/internal/domain"
	"github.com/sellerdash/sellertray/internal/notifier"
	"github.com/sellerdash/sellertray/internal/store"
)

// SnapshotMsg is sent when the store state changes.
type SnapshotMsg struct {
	Snapshot store.Snapshot
}

// PushMsg is sent when a live notification arrives over the event channel.
type PushMsg struct {
	Notification domain.Notification
}

// ConnStateMsg is sent when the event channel connects or drops.
type ConnStateMsg struct {
	Connected bool
	Reason    string
}

// ReconnectFailedMsg is sent when automatic reconnection gave up.
type ReconnectFailedMsg struct{}

// ToastMsg is sent when a transient message is raised.
type ToastMsg struct {
	Toast notifier.Toast
}

// ToastExpiredMsg clears a displayed toast after its display window.
type ToastExpiredMsg struct {
	ID string
}

// SearchDebouncedMsg applies a search query after the input has settled.
type SearchDebouncedMsg struct {
	Query string
}

// UnreadPollMsg triggers the periodic unread-count backstop refresh.
type UnreadPollMsg struct{}

// MutationFailedMsg is sent when a backend mutation was rejected.
type MutationFailedMsg struct {
	Err error
}
