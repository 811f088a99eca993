/*
Copyright © 2026 Sellerdash <eng@sellerdash.io>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sellerdash/sellertray/internal/app"
	"github.com/sellerdash/sellertray/internal/config"
	"github.com/sellerdash/sellertray/internal/ports"
)

const followCommandLong = `Stream live notifications to the terminal.

USAGE:
    sellertray follow [OPTIONS]

OPTIONS:
    --type <type>          Show only one type: success, error, warn, info
    --marketplace <id>     Show only one marketplace
    --hooks                Fire the notification-received hook for each event
    -h, --help             Show this help`

// NewFollowCmd creates the follow command with explicit dependencies.
func NewFollowCmd(channel ports.EventChannel) *cobra.Command {
	if channel == nil {
		panic("NewFollowCmd: channel dependency cannot be nil")
	}

	var followType string
	var followMarketplace string
	var followHooks bool

	followCmd := &cobra.Command{
		Use:   "follow",
		Short: "Stream live notifications in real-time",
		Long:  followCommandLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			useCase := app.NewFollowUseCase(channel)
			return useCase.Execute(cmd.Context(), app.FollowOptions{
				Type:        followType,
				Marketplace: followMarketplace,
				RunHooks:    followHooks || config.GetBool("hooks_enabled", true),
			})
		},
	}

	followCmd.Flags().StringVar(&followType, "type", "", "Show only one type: success, error, warn, info")
	followCmd.Flags().StringVar(&followMarketplace, "marketplace", "", "Show only one marketplace")
	followCmd.Flags().BoolVar(&followHooks, "hooks", false, "Fire the notification-received hook for each event")

	return followCmd
}

// followCmd represents the follow command
var followCmd = NewFollowCmd(newChannel())

func init() {
	rootCmd.AddCommand(followCmd)
}
