package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sellerdash/sellertray/internal/domain"
	"github.com/sellerdash/sellertray/internal/format"
	"github.com/sellerdash/sellertray/internal/formatter"
	"github.com/sellerdash/sellertray/internal/ports"
)

// StatusOptions holds parameters for status output.
type StatusOptions struct {
	// Mode selects the output shape: summary, types, marketplaces, count, json.
	Mode string
	// Template renders a custom template instead of a fixed mode.
	Template string
	// Preset renders a named template preset instead of a fixed mode.
	Preset string
	// Connected reports the event channel state in JSON output.
	Connected bool
}

// StatusUseCase reports aggregate notification state for status lines and
// scripting.
type StatusUseCase struct {
	backend ports.Backend
}

// NewStatusUseCase creates a new status use-case.
func NewStatusUseCase(backend ports.Backend) *StatusUseCase {
	if backend == nil {
		panic("NewStatusUseCase: backend dependency cannot be nil")
	}
	return &StatusUseCase{backend: backend}
}

// Execute fetches the unread feed and writes the requested aggregate view.
func (u *StatusUseCase) Execute(ctx context.Context, opts StatusOptions, w io.Writer) error {
	unread, err := u.backend.FetchUnread(ctx)
	if err != nil {
		return fmt.Errorf("status: %w", err)
	}

	if opts.Template != "" || opts.Preset != "" {
		return u.renderTemplate(unread, opts, w)
	}

	success, errorCount, warn, info := format.CountsByType(unread)

	switch opts.Mode {
	case "", "summary":
		return format.FormatSummary(w, len(unread), success, errorCount, warn, info)
	case "types":
		return format.FormatTypes(w, success, errorCount, warn, info)
	case "marketplaces":
		return format.FormatMarketplaces(w, format.CountsByMarketplace(unread))
	case "count":
		_, err := fmt.Fprintf(w, "%d\n", len(unread))
		return err
	case "json":
		return format.FormatJSON(w, format.StatusData{
			Unread:       len(unread),
			Success:      success,
			Error:        errorCount,
			Warn:         warn,
			Info:         info,
			Connected:    opts.Connected,
			Marketplaces: format.CountsByMarketplace(unread),
		})
	default:
		return fmt.Errorf("status: unknown mode %q", opts.Mode)
	}
}

// renderTemplate substitutes the unread aggregates into a user template or a
// named preset.
func (u *StatusUseCase) renderTemplate(unread []domain.Notification, opts StatusOptions, w io.Writer) error {
	template := opts.Template
	if template == "" {
		preset, err := formatter.NewPresetRegistry().Get(opts.Preset)
		if err != nil {
			return fmt.Errorf("status: %w", err)
		}
		template = preset.Template
	}

	ctx := buildVariableContext(unread, opts.Connected)
	rendered, err := formatter.NewTemplateEngine().Substitute(template, ctx)
	if err != nil {
		return fmt.Errorf("status: %w", err)
	}
	_, err = fmt.Fprintln(w, rendered)
	return err
}

// buildVariableContext aggregates the unread feed into template variables.
func buildVariableContext(unread []domain.Notification, connected bool) formatter.VariableContext {
	success, errorCount, warn, info := format.CountsByType(unread)

	ctx := formatter.VariableContext{
		UnreadCount:     len(unread),
		TotalCount:      len(unread),
		SuccessCount:    success,
		ErrorCount:      errorCount,
		WarnCount:       warn,
		InfoCount:       info,
		HasUnread:       len(unread) > 0,
		Connected:       connected,
		HighestSeverity: highestSeverity(unread),
	}

	if len(unread) > 0 {
		ctx.LatestTitle = unread[0].Title
		ctx.LatestMessage = unread[0].Message
	}

	marketplaces := make([]string, 0)
	seen := make(map[string]bool)
	for _, n := range unread {
		if n.MarketplaceID == "" || seen[n.MarketplaceID] {
			continue
		}
		seen[n.MarketplaceID] = true
		marketplaces = append(marketplaces, n.MarketplaceID)
	}
	ctx.MarketplaceList = strings.Join(marketplaces, ",")

	return ctx
}

// highestSeverity returns the most severe type present, error > warn >
// success > info.
func highestSeverity(notifs []domain.Notification) domain.Type {
	rank := map[domain.Type]int{
		domain.TypeError:   1,
		domain.TypeWarn:    2,
		domain.TypeSuccess: 3,
		domain.TypeInfo:    4,
	}
	best := domain.TypeInfo
	bestRank := 4
	for _, n := range notifs {
		if r, ok := rank[n.Type]; ok && r < bestRank {
			best = n.Type
			bestRank = r
		}
	}
	return best
}
