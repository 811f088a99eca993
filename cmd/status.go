/*
Copyright © 2026 Sellerdash <eng@sellerdash.io>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sellerdash/sellertray/internal/app"
	"github.com/sellerdash/sellertray/internal/ports"
)

const statusCommandLong = `Show aggregate notification state for status lines and scripting.

USAGE:
    sellertray status [OPTIONS]

OPTIONS:
    --mode <mode>        Output shape: summary (default), types, marketplaces, count, json
    --template <tpl>     Render a custom template, e.g. "{{unread-count}} unread"
    --preset <name>      Render a named preset: compact, detailed, json, count-only,
                         severity, connection
    -h, --help           Show this help

TEMPLATE VARIABLES:
    {{unread-count}} {{read-count}} {{total-count}}
    {{success-count}} {{error-count}} {{warn-count}} {{info-count}}
    {{latest-title}} {{latest-message}} {{has-unread}} {{connected}}
    {{highest-severity}} {{marketplace-list}}`

// NewStatusCmd creates the status command with explicit dependencies.
func NewStatusCmd(backend ports.Backend) *cobra.Command {
	if backend == nil {
		panic("NewStatusCmd: backend dependency cannot be nil")
	}

	var statusMode string
	var statusTemplate string
	var statusPreset string

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show aggregate notification state",
		Long:  statusCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			useCase := app.NewStatusUseCase(backend)
			return useCase.Execute(cmd.Context(), app.StatusOptions{
				Mode:     statusMode,
				Template: statusTemplate,
				Preset:   statusPreset,
			}, os.Stdout)
		},
	}

	statusCmd.Flags().StringVar(&statusMode, "mode", "summary", "Output shape: summary, types, marketplaces, count, json")
	statusCmd.Flags().StringVar(&statusTemplate, "template", "", "Render a custom template")
	statusCmd.Flags().StringVar(&statusPreset, "preset", "", "Render a named template preset")

	return statusCmd
}

// statusCmd represents the status command
var statusCmd = NewStatusCmd(newBackend())

func init() {
	rootCmd.AddCommand(statusCmd)
}
