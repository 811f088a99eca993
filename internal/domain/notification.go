// Package domain provides the domain layer for notifications.
// It contains business logic, value objects, and domain services.
package domain

import (
	"fmt"
	"time"
)

// Notification represents a single notification delivered by the backend,
// either through a page fetch or a live channel event.
type Notification struct {
	ID            string    `json:"id"`
	Type          Type      `json:"type"`
	Status        Status    `json:"status"`
	Title         string    `json:"title"`
	Message       string    `json:"message"`
	CreatedAt     time.Time `json:"createdAt"`
	ASIN          string    `json:"asin,omitempty"`
	MarketplaceID string    `json:"marketplaceId,omitempty"`
	Source        string    `json:"source,omitempty"`
	Resolved      *bool     `json:"resolved,omitempty"`
}

// Status represents the read state of a notification.
type Status string

const (
	StatusUnread Status = "unread"
	StatusRead   Status = "read"
)

// IsValid checks if the notification status is valid.
func (s Status) IsValid() bool {
	switch s {
	case StatusUnread, StatusRead:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// Type represents the severity type of a notification.
type Type string

const (
	TypeSuccess Type = "success"
	TypeError   Type = "error"
	TypeWarn    Type = "warn"
	TypeInfo    Type = "info"
)

// IsValid checks if the notification type is valid.
func (t Type) IsValid() bool {
	switch t {
	case TypeSuccess, TypeError, TypeWarn, TypeInfo:
		return true
	default:
		return false
	}
}

// String returns the string representation of the type.
func (t Type) String() string {
	return string(t)
}

// IsRead reports whether the notification has been read.
func (n *Notification) IsRead() bool {
	return n.Status == StatusRead
}

// IsResolved reports whether the notification carries a resolved marker set
// to true. A missing marker counts as unresolved.
func (n *Notification) IsResolved() bool {
	return n.Resolved != nil && *n.Resolved
}

// MarkRead flips the notification to read. Read state never transitions back
// to unread on the client.
func (n *Notification) MarkRead() *Notification {
	n.Status = StatusRead
	return n
}

// Validate validates the notification and returns an error if invalid.
func (n *Notification) Validate() error {
	if n.ID == "" {
		return fmt.Errorf("notification id cannot be empty")
	}

	if !n.Type.IsValid() {
		return fmt.Errorf("invalid notification type: %s", n.Type)
	}

	if !n.Status.IsValid() {
		return fmt.Errorf("invalid notification status: %s", n.Status)
	}

	if n.CreatedAt.IsZero() {
		return fmt.Errorf("notification timestamp cannot be zero")
	}

	return nil
}

// NewNotification creates a new notification with validation.
func NewNotification(id string, typ Type, status Status, title, message string, createdAt time.Time) (*Notification, error) {
	notif := &Notification{
		ID:        id,
		Type:      typ,
		Status:    status,
		Title:     title,
		Message:   message,
		CreatedAt: createdAt,
	}

	if err := notif.Validate(); err != nil {
		return nil, err
	}

	return notif, nil
}

// ParseType parses a string into a Type.
func ParseType(typ string) (Type, error) {
	t := Type(typ)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid notification type: %s", typ)
	}
	return t, nil
}

// ParseStatus parses a string into a Status.
func ParseStatus(status string) (Status, error) {
	s := Status(status)
	if !s.IsValid() {
		return "", fmt.Errorf("invalid notification status: %s", status)
	}
	return s, nil
}
