/*
Copyright © 2026 Sellerdash <eng@sellerdash.io>
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sellerdash/sellertray/internal/config"
	"github.com/sellerdash/sellertray/internal/errors"
	"github.com/sellerdash/sellertray/internal/logging"
	"github.com/sellerdash/sellertray/internal/version"
)

// rootCmd represents the base command. Running sellertray without a
// subcommand opens the interactive tray.
var rootCmd = &cobra.Command{
	Use:           "sellertray",
	Short:         "A marketplace notification tray for your terminal.",
	Long:          `A marketplace notification tray for your terminal.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		if err := logging.InitGlobal(); err != nil {
			// Logging failures must never block the CLI.
			fmt.Fprintf(cmd.ErrOrStderr(), "sellertray: logging disabled: %v\n", err)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logging.ShutdownGlobal()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTray()
	},
}

// errorHandler reports command failures on the CLI surface.
var errorHandler errors.ErrorHandler = errors.NewDefaultCLIHandler()

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		errorHandler.Error(err.Error())
	}
	return err
}

func init() {
	rootCmd.Version = version.String()

	// Hide the completion command
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		printHelpText(cmd)
	})
}

func printHelpText(cmd *cobra.Command) {
	commandOrder := []string{
		"tray",
		"list",
		"follow",
		"mark-read",
		"mark-all-read",
		"clean",
		"status",
		"version",
	}

	var cmdLines []string
	for _, name := range commandOrder {
		var found *cobra.Command
		for _, c := range cmd.Commands() {
			if c.Name() == name {
				found = c
				break
			}
		}
		if found == nil {
			continue
		}
		cmdLines = append(cmdLines, fmt.Sprintf("    %-16s %s", found.Use, found.Short))
	}

	helpText := fmt.Sprintf(`sellertray v%s

A marketplace notification tray for your terminal.

USAGE:
    sellertray [COMMAND] [OPTIONS]

Running sellertray without a command opens the interactive tray.

COMMANDS:
%s

OPTIONS:
    -h, --help      Show help message
`, version.Version, strings.Join(cmdLines, "\n"))
	fmt.Print(helpText)
}
