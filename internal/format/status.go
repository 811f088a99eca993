package format

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/sellerdash/sellertray/internal/domain"
)

// CountsByType returns per-type counts for the given notifications. Unknown
// types are counted as info.
func CountsByType(notifications []domain.Notification) (success, errorCount, warn, info int) {
	for _, n := range notifications {
		switch n.Type {
		case domain.TypeSuccess:
			success++
		case domain.TypeError:
			errorCount++
		case domain.TypeWarn:
			warn++
		case domain.TypeInfo:
			info++
		default:
			info++
		}
	}
	return success, errorCount, warn, info
}

// CountsByMarketplace returns a map of marketplace ID to notification count.
// Notifications without a marketplace are grouped under "-".
func CountsByMarketplace(notifications []domain.Notification) map[string]int {
	counts := make(map[string]int)
	for _, n := range notifications {
		key := n.MarketplaceID
		if key == "" {
			key = "-"
		}
		counts[key]++
	}
	return counts
}

// FormatSummary writes a summary of notification counts to the writer.
// If unread is 0, writes "No unread notifications" instead.
func FormatSummary(w io.Writer, unread int, success, errorCount, warn, info int) error {
	if unread == 0 {
		_, err := fmt.Fprintf(w, "No unread notifications\n")
		return err
	}
	_, err := fmt.Fprintf(w, "Unread notifications: %d\n", unread)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "  success: %d, error: %d, warn: %d, info: %d\n",
		success, errorCount, warn, info)
	return err
}

// FormatTypes writes type counts in key:value format, one per line.
func FormatTypes(w io.Writer, success, errorCount, warn, info int) error {
	_, err := fmt.Fprintf(w, "success:%d\nerror:%d\nwarn:%d\ninfo:%d\n",
		success, errorCount, warn, info)
	return err
}

// FormatMarketplaces writes marketplace counts in id:count format, one per
// line, sorted alphabetically for deterministic output.
func FormatMarketplaces(w io.Writer, counts map[string]int) error {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		_, err := fmt.Fprintf(w, "%s:%d\n", key, counts[key])
		if err != nil {
			return err
		}
	}
	return nil
}

// StatusData holds aggregated status information for JSON output.
type StatusData struct {
	Unread       int            `json:"unread"`
	Read         int            `json:"read"`
	Success      int            `json:"success"`
	Error        int            `json:"error"`
	Warn         int            `json:"warn"`
	Info         int            `json:"info"`
	Connected    bool           `json:"connected"`
	Marketplaces map[string]int `json:"marketplaces"`
}

// FormatJSON writes status data as JSON to the writer.
func FormatJSON(w io.Writer, data StatusData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
