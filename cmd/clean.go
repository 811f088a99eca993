/*
Copyright © 2026 Sellerdash <eng@sellerdash.io>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sellerdash/sellertray/internal/app"
	"github.com/sellerdash/sellertray/internal/ports"
)

// NewCleanCmd creates the clean command with explicit dependencies.
func NewCleanCmd(backend ports.Backend) *cobra.Command {
	if backend == nil {
		panic("NewCleanCmd: backend dependency cannot be nil")
	}

	var cleanAll bool

	cleanCmd := &cobra.Command{
		Use:   "clean",
		Short: "Delete read notifications",
		Long: `Delete read notifications, or every notification with --all.

USAGE:
    sellertray clean [OPTIONS]

OPTIONS:
    --all                Delete all notifications, not just read ones
    -h, --help           Show this help`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			useCase := app.NewCleanUseCase(backend)
			return useCase.Execute(cmd.Context(), app.CleanOptions{All: cleanAll})
		},
	}

	cleanCmd.Flags().BoolVar(&cleanAll, "all", false, "Delete all notifications, not just read ones")

	return cleanCmd
}

// cleanCmd represents the clean command
var cleanCmd = NewCleanCmd(newBackend())

func init() {
	rootCmd.AddCommand(cleanCmd)
}
