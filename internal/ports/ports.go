// Package ports defines application boundary interfaces used by core services.
package ports

import (
	"context"

	"github.com/sellerdash/sellertray/internal/domain"
)

// PageQuery holds the server-side filter criteria for a page fetch.
// Search and resolved filtering are applied client-side on top of the fetched
// page; the backend only filters by type, status, and marketplace scope.
type PageQuery struct {
	Page           int
	Limit          int
	Type           string
	Status         string
	MarketplaceIDs []string
}

// PageResult is the authoritative backend response for a page fetch.
type PageResult struct {
	Data        []domain.Notification
	TotalUnread int
	TotalRead   int
	CurrentPage int
	TotalPages  int
	TotalItems  int
}

// Backend defines the pull and mutation operations the notification store
// needs from the remote service.
type Backend interface {
	FetchPage(ctx context.Context, query PageQuery) (PageResult, error)
	FetchUnread(ctx context.Context) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
	DeleteRead(ctx context.Context) error
	DeleteAll(ctx context.Context) error
}

// EventChannel defines the live event surface consumed by the store and the
// presentation shell. Connection failures are reported through the registered
// observers, never as errors from these methods.
type EventChannel interface {
	Connect()
	Disconnect()
	Reconnect()
	Connected() bool
	OnNotification(handler func(domain.Notification))
	OnConnect(handler func())
	OnDisconnect(handler func(reason string))
	OnConnectError(handler func(err error))
	OnReconnect(handler func(attempt int))
	OnReconnectFailed(handler func())
}

// Toaster defines the cross-cutting transient-message surface. Any layer may
// raise a toast without threading callbacks through intermediate layers.
type Toaster interface {
	Notify(level domain.Type, title, message string)
}
