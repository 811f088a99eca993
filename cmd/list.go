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

const listCommandLong = `List notifications with filters and formats.

USAGE:
    sellertray list [OPTIONS]

OPTIONS:
    --status <status>      Filter by read status: all, unread, read
    --type <type>          Filter by type: success, error, warn, info
    --resolved <state>     Filter by resolved state: all, resolved, unresolved
    --marketplace <id>     Filter by marketplace ID (e.g., ATVPDKIKX0DER)
    --search <pattern>     Search title, message, and ASIN
    --regex                Use regex search with --search
    --sort <order>         Sort by creation time: asc, desc (default: desc)
    --unread-first         List unread notifications before read ones
    --grouped              Group output by day (Today, Yesterday, ...)
    --group-count          Show only per-day counts
    --page <n>             Page to fetch (default: 1)
    --limit <n>            Page size (default: 20)
    --format <format>      Output format: simple (default), compact, table, json
    -h, --help             Show this help`

// NewListCmd creates the list command with explicit dependencies.
func NewListCmd(backend ports.Backend) *cobra.Command {
	if backend == nil {
		panic("NewListCmd: backend dependency cannot be nil")
	}

	var listStatus string
	var listType string
	var listResolved string
	var listMarketplace string
	var listSearch string
	var listRegex bool
	var listSort string
	var listUnreadFirst bool
	var listGrouped bool
	var listGroupCount bool
	var listPage int
	var listLimit int
	var listFormat string

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications with filters and formats",
		Long:  listCommandLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			useCase := app.NewListUseCase(backend)
			opts := app.ListOptions{
				Status:      listStatus,
				Type:        listType,
				Resolved:    listResolved,
				Marketplace: listMarketplace,
				Search:      listSearch,
				Regex:       listRegex,
				SortOrder:   listSort,
				UnreadFirst: listUnreadFirst,
				Grouped:     listGrouped,
				GroupCount:  listGroupCount,
				Format:      listFormat,
				Page:        listPage,
				Limit:       listLimit,
			}
			if opts.Search != "" && !opts.Regex {
				opts.SearchProvider = newSearchProvider()
			}
			return useCase.Execute(cmd.Context(), opts, os.Stdout)
		},
	}

	flags := listCmd.Flags()
	flags.StringVar(&listStatus, "status", "", "Filter by read status: all, unread, read")
	flags.StringVar(&listType, "type", "", "Filter by type: success, error, warn, info")
	flags.StringVar(&listResolved, "resolved", "", "Filter by resolved state: all, resolved, unresolved")
	flags.StringVar(&listMarketplace, "marketplace", "", "Filter by marketplace ID")
	flags.StringVar(&listSearch, "search", "", "Search title, message, and ASIN")
	flags.BoolVar(&listRegex, "regex", false, "Use regex search with --search")
	flags.StringVar(&listSort, "sort", "", "Sort by creation time: asc, desc")
	flags.BoolVar(&listUnreadFirst, "unread-first", false, "List unread notifications first")
	flags.BoolVar(&listGrouped, "grouped", false, "Group output by day")
	flags.BoolVar(&listGroupCount, "group-count", false, "Show only per-day counts")
	flags.IntVar(&listPage, "page", 1, "Page to fetch")
	flags.IntVar(&listLimit, "limit", 0, "Page size")
	flags.StringVar(&listFormat, "format", "simple", "Output format: simple, compact, table, json")

	return listCmd
}

// listCmd represents the list command
var listCmd = NewListCmd(newBackend())

func init() {
	rootCmd.AddCommand(listCmd)
}
