package app

import (
	"context"
	"fmt"

	"github.com/sellerdash/sellertray/internal/colors"
	"github.com/sellerdash/sellertray/internal/ports"
)

// MarkAllReadUseCase coordinates mark-all-read behavior.
type MarkAllReadUseCase struct {
	backend ports.Backend
}

// NewMarkAllReadUseCase creates a new mark-all-read use-case.
func NewMarkAllReadUseCase(backend ports.Backend) *MarkAllReadUseCase {
	if backend == nil {
		panic("NewMarkAllReadUseCase: backend dependency cannot be nil")
	}
	return &MarkAllReadUseCase{backend: backend}
}

// Execute marks every notification as read on the backend.
func (u *MarkAllReadUseCase) Execute(ctx context.Context) error {
	if err := u.backend.MarkAllRead(ctx); err != nil {
		return fmt.Errorf("mark-all-read: %w", err)
	}

	colors.Success("All notifications marked as read")
	return nil
}
