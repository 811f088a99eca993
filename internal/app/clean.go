package app

import (
	"context"
	"fmt"

	"github.com/sellerdash/sellertray/internal/colors"
	"github.com/sellerdash/sellertray/internal/ports"
)

// CleanOptions holds parameters for clean behavior.
type CleanOptions struct {
	// All deletes every notification instead of only read ones.
	All bool
}

// CleanUseCase coordinates deletion of notifications.
type CleanUseCase struct {
	backend ports.Backend
}

// NewCleanUseCase creates a new clean use-case.
func NewCleanUseCase(backend ports.Backend) *CleanUseCase {
	if backend == nil {
		panic("NewCleanUseCase: backend dependency cannot be nil")
	}
	return &CleanUseCase{backend: backend}
}

// Execute deletes read notifications, or all notifications with All set.
func (u *CleanUseCase) Execute(ctx context.Context, opts CleanOptions) error {
	if opts.All {
		if err := u.backend.DeleteAll(ctx); err != nil {
			return fmt.Errorf("clean: %w", err)
		}
		colors.Success("All notifications deleted")
		return nil
	}

	if err := u.backend.DeleteRead(ctx); err != nil {
		return fmt.Errorf("clean: %w", err)
	}
	colors.Success("Read notifications deleted")
	return nil
}
