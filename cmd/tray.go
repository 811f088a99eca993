/*
Copyright © 2026 Sellerdash <eng@sellerdash.io>
*/
package cmd

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sellerdash/sellertray/internal/config"
	"github.com/sellerdash/sellertray/internal/notifier"
	"github.com/sellerdash/sellertray/internal/tui"
)

// trayCmd represents the tray command. It is also the root command's default
// action.
var trayCmd = &cobra.Command{
	Use:   "tray",
	Short: "Open the interactive notification tray",
	Long: `Open the interactive notification tray.

USAGE:
    sellertray tray

KEY BINDINGS:
    j/k or arrows  Move up/down in the list
    enter          Mark selected notification read
    a              Mark all read
    m              Load more (next page)
    r              Refresh
    R              Reconnect the live channel
    /              Search title, message, and ASIN
    esc            Clear search
    u              Toggle unread-first ordering
    o              Toggle sort order
    s              Cycle status filter
    t              Cycle type filter
    v              Cycle resolved filter
    ?              Toggle help
    q              Quit`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTray()
	},
}

func init() {
	rootCmd.AddCommand(trayCmd)
}

func runTray() error {
	backend := newBackend()
	eventChannel := newChannel()

	model := tui.New(tui.Options{
		Store:              newStore(backend),
		Channel:            eventChannel,
		Toasts:             notifier.New(),
		SearchProvider:     newSearchProvider(),
		SearchDebounce:     time.Duration(config.GetInt("debounce_ms", 300)) * time.Millisecond,
		UnreadPollInterval: time.Duration(config.GetInt("unread_poll_seconds", 60)) * time.Second,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tray: %w", err)
	}
	return nil
}
