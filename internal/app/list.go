// Package app contains the CLI use-cases. Each use-case coordinates domain
// logic, backend calls, and output formatting for one command.
package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sellerdash/sellertray/internal/colors"
	"github.com/sellerdash/sellertray/internal/domain"
	"github.com/sellerdash/sellertray/internal/format"
	"github.com/sellerdash/sellertray/internal/ports"
	"github.com/sellerdash/sellertray/internal/search"
)

// ListOptions holds all filter and output parameters for listing notifications.
type ListOptions struct {
	Status         string
	Type           string
	Resolved       string
	Marketplace    string
	Search         string
	Regex          bool
	SortOrder      string
	UnreadFirst    bool
	Grouped        bool
	GroupCount     bool
	Format         string
	Page           int
	Limit          int
	SearchProvider search.Provider
	Now            time.Time
}

// ListUseCase coordinates list notifications behavior.
type ListUseCase struct {
	backend ports.Backend
}

// NewListUseCase creates a new list use-case.
func NewListUseCase(backend ports.Backend) *ListUseCase {
	if backend == nil {
		panic("NewListUseCase: backend dependency cannot be nil")
	}
	return &ListUseCase{backend: backend}
}

// Execute prints notifications according to the provided options.
func (u *ListUseCase) Execute(ctx context.Context, opts ListOptions, w io.Writer) error {
	page := opts.Page
	if page < 1 {
		page = 1
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}

	query := ports.PageQuery{
		Page:   page,
		Limit:  limit,
		Type:   opts.Type,
		Status: opts.Status,
	}
	if opts.Marketplace != "" {
		query.MarketplaceIDs = []string{opts.Marketplace}
	}

	result, err := u.backend.FetchPage(ctx, query)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}

	view, err := u.buildView(opts)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	groups := domain.Project(result.Data, view, now)

	if groups.TotalCount == 0 {
		_, _ = fmt.Fprintf(w, "%s%s%s\n", colors.Blue, "No notifications found", colors.Reset)
		return nil
	}

	formatter := format.GetFormatter(opts.Format, opts.GroupCount)
	if opts.Grouped || opts.GroupCount {
		if err := formatter.FormatGroups(groups, w); err != nil {
			return fmt.Errorf("list: formatting error: %w", err)
		}
		return nil
	}

	flat := make([]domain.Notification, 0, groups.TotalCount)
	for _, group := range groups.Groups {
		flat = append(flat, group.Notifications...)
	}
	if err := formatter.FormatNotifications(flat, w); err != nil {
		return fmt.Errorf("list: formatting error: %w", err)
	}
	return nil
}

// buildView translates CLI options into a domain projection view.
func (u *ListUseCase) buildView(opts ListOptions) (domain.View, error) {
	filter, err := domain.FilterOptions{
		Status:        opts.Status,
		Type:          opts.Type,
		Resolved:      opts.Resolved,
		MarketplaceID: opts.Marketplace,
	}.ToFilter()
	if err != nil {
		return domain.View{}, err
	}

	view := domain.DefaultView()
	view.Filter = filter
	view.Search = opts.Search
	view.UnreadFirst = opts.UnreadFirst
	if opts.SortOrder != "" {
		order, err := domain.ParseSortOrder(opts.SortOrder)
		if err != nil {
			return domain.View{}, err
		}
		view.Order = order
	}

	if provider := u.searchProvider(opts); provider != nil {
		view.Match = provider.Match
	}
	return view, nil
}

func (u *ListUseCase) searchProvider(opts ListOptions) search.Provider {
	if opts.SearchProvider != nil {
		return opts.SearchProvider
	}
	if opts.Search == "" {
		return nil
	}
	if opts.Regex {
		return search.NewRegexProvider()
	}
	return search.NewSubstringProvider()
}
