/*
Copyright © 2026 Sellerdash <eng@sellerdash.io>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sellerdash/sellertray/internal/app"
	"github.com/sellerdash/sellertray/internal/ports"
)

// NewMarkReadCmd creates the mark-read command with explicit dependencies.
func NewMarkReadCmd(backend ports.Backend) *cobra.Command {
	if backend == nil {
		panic("NewMarkReadCmd: backend dependency cannot be nil")
	}

	markReadCmd := &cobra.Command{
		Use:   "mark-read <id>",
		Short: "Mark a notification as read",
		Long: `Mark a notification as read by ID.

USAGE:
    sellertray mark-read <id>

OPTIONS:
    -h, --help           Show this help`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			useCase := app.NewMarkReadUseCase(backend)
			return useCase.Execute(cmd.Context(), args[0])
		},
	}

	return markReadCmd
}

// markReadCmd represents the mark-read command
var markReadCmd = NewMarkReadCmd(newBackend())

func init() {
	rootCmd.AddCommand(markReadCmd)
}
