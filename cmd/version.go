/*
Copyright © 2026 Sellerdash <eng@sellerdash.io>
*/
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sellerdash/sellertray/internal/version"
)

// versionOutputWriter is the writer used by PrintVersion. Can be changed for
// testing.
var versionOutputWriter io.Writer = os.Stdout

// PrintVersion writes the version line.
func PrintVersion() {
	fmt.Fprintf(versionOutputWriter, "sellertray v%s\n", version.String())
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `Show version information.

USAGE:
    sellertray version

OPTIONS:
    -h, --help           Show this help`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		PrintVersion()
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
