package app

import (
	"context"
	"fmt"

	"github.com/sellerdash/sellertray/internal/colors"
	"github.com/sellerdash/sellertray/internal/hooks"
	"github.com/sellerdash/sellertray/internal/ports"
)

// MarkReadUseCase coordinates mark-read behavior.
type MarkReadUseCase struct {
	backend ports.Backend
}

// NewMarkReadUseCase creates a new mark-read use-case.
func NewMarkReadUseCase(backend ports.Backend) *MarkReadUseCase {
	if backend == nil {
		panic("NewMarkReadUseCase: backend dependency cannot be nil")
	}
	return &MarkReadUseCase{backend: backend}
}

// Execute marks a single notification as read on the backend.
func (u *MarkReadUseCase) Execute(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("mark-read: notification id is required")
	}
	if err := u.backend.MarkRead(ctx, id); err != nil {
		return fmt.Errorf("mark-read: %w", err)
	}

	colors.Success(fmt.Sprintf("Notification %s marked as read", id))
	_ = hooks.Run(hooks.PointMarkedRead, "NOTIFICATION_ID="+id)
	return nil
}
