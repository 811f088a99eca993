/*
Copyright © 2026 Sellerdash <eng@sellerdash.io>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sellerdash/sellertray/internal/app"
	"github.com/sellerdash/sellertray/internal/ports"
)

// NewMarkAllReadCmd creates the mark-all-read command with explicit
// dependencies.
func NewMarkAllReadCmd(backend ports.Backend) *cobra.Command {
	if backend == nil {
		panic("NewMarkAllReadCmd: backend dependency cannot be nil")
	}

	markAllReadCmd := &cobra.Command{
		Use:   "mark-all-read",
		Short: "Mark every notification as read",
		Long: `Mark every notification as read.

USAGE:
    sellertray mark-all-read

OPTIONS:
    -h, --help           Show this help`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			useCase := app.NewMarkAllReadUseCase(backend)
			return useCase.Execute(cmd.Context())
		},
	}

	return markAllReadCmd
}

// markAllReadCmd represents the mark-all-read command
var markAllReadCmd = NewMarkAllReadCmd(newBackend())

func init() {
	rootCmd.AddCommand(markAllReadCmd)
}
