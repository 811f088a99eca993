// Package store holds the in-memory notification working set. It reconciles
// pull responses from the backend with live pushed events and exposes a
// consistent snapshot to the presentation layer.
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sellerdash/sellertray/internal/domain"
	"github.com/sellerdash/sellertray/internal/logging"
	"github.com/sellerdash/sellertray/internal/ports"
)

// DefaultPageLimit is the page size requested from the backend.
const DefaultPageLimit = 20

// DefaultItemsCap bounds the in-memory working set. Older items fall off the
// tail; the aggregate counters stay authoritative.
const DefaultItemsCap = 100

// PageState tracks the fetch lifecycle of the working set.
type PageState string

const (
	StateIdle        PageState = "idle"
	StateLoading     PageState = "loading"
	StateLoaded      PageState = "loaded"
	StateLoadingMore PageState = "loadingMore"
	StateErrored     PageState = "errored"
)

// ErrMutationFailed wraps backend mutation failures surfaced after an
// optimistic local update was kept.
var ErrMutationFailed = errors.New("backend mutation failed")

// MergePolicy decides which copy survives when a pulled notification collides
// with one already held in memory.
type MergePolicy interface {
	Merge(existing, pulled domain.Notification) domain.Notification
	Name() string
}

type pullWins struct{}

func (pullWins) Merge(_, pulled domain.Notification) domain.Notification { return pulled }
func (pullWins) Name() string                                            { return "pull-wins" }

// PullWins resolves merge collisions in favor of the freshly pulled copy.
// The backend is the source of truth for anything it has already persisted.
func PullWins() MergePolicy { return pullWins{} }

// Options configures a Store.
type Options struct {
	// PageLimit is the page size for backend fetches.
	PageLimit int
	// ItemsCap bounds how many notifications are kept in memory.
	ItemsCap int
	// Merge resolves pull/working-set collisions. Defaults to PullWins.
	Merge MergePolicy
	// RollbackOnFailure restores the previous read state when an optimistic
	// mark-read is rejected by the backend. When false the local flip is
	// kept and the next pull reconciles.
	RollbackOnFailure bool
	// Query narrows backend fetches to a server-side filter scope.
	Query QueryScope
	// Logger receives store diagnostics.
	Logger logging.Logger
}

// QueryScope is the server-side filter applied to every page fetch.
type QueryScope struct {
	Type           string
	Status         string
	MarketplaceIDs []string
}

// Snapshot is a point-in-time copy of the working set, safe to hold across
// store mutations.
type Snapshot struct {
	Items       []domain.Notification
	UnreadCount int
	ReadCount   int
	CurrentPage int
	TotalPages  int
	TotalItems  int
	State       PageState
	Err         error
}

// HasMore reports whether another page can be fetched.
func (s Snapshot) HasMore() bool {
	return s.CurrentPage < s.TotalPages
}

// Store is the single owner of notification state. All methods are safe for
// concurrent use; backend calls happen outside the lock so a slow network
// never blocks snapshot readers.
type Store struct {
	backend ports.Backend
	opts    Options

	mu          sync.Mutex
	items       []domain.Notification
	unreadCount int
	readCount   int
	currentPage int
	totalPages  int
	totalItems  int
	state       PageState
	lastErr     error
	fetchSeq    uint64
	unreadSeq   uint64

	subsMu      sync.RWMutex
	subscribers []func()
}

// New creates a store backed by the given backend.
func New(backend ports.Backend, opts Options) *Store {
	if opts.PageLimit <= 0 {
		opts.PageLimit = DefaultPageLimit
	}
	if opts.ItemsCap <= 0 {
		opts.ItemsCap = DefaultItemsCap
	}
	if opts.Merge == nil {
		opts.Merge = PullWins()
	}
	if opts.Logger == nil {
		opts.Logger = logging.GetGlobal()
	}
	return &Store{
		backend: backend,
		opts:    opts,
		state:   StateIdle,
	}
}

// Subscribe registers a callback fired after every state change. The callback
// runs on the mutating goroutine and must not call back into the store's
// mutation methods.
func (s *Store) Subscribe(fn func()) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Snapshot returns a copy of the current working set.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]domain.Notification, len(s.items))
	copy(items, s.items)
	return Snapshot{
		Items:       items,
		UnreadCount: s.unreadCount,
		ReadCount:   s.readCount,
		CurrentPage: s.currentPage,
		TotalPages:  s.totalPages,
		TotalItems:  s.totalItems,
		State:       s.state,
		Err:         s.lastErr,
	}
}

// Fetch loads the first page, replacing the working set.
func (s *Store) Fetch(ctx context.Context) error {
	return s.fetchPage(ctx, 1)
}

// FetchNextPage loads the page after the current one and merges it into the
// working set. Requests beyond the known last page are a no-op.
func (s *Store) FetchNextPage(ctx context.Context) error {
	s.mu.Lock()
	next := s.currentPage + 1
	s.mu.Unlock()
	return s.fetchPage(ctx, next)
}

// fetchPage runs one backend page fetch guarded by a sequence token. Only the
// response for the most recently issued fetch applies; anything older is
// discarded so out-of-order responses cannot clobber newer state.
func (s *Store) fetchPage(ctx context.Context, page int) error {
	s.mu.Lock()
	if page < 1 || (s.totalPages > 0 && page > s.totalPages) {
		s.mu.Unlock()
		return nil
	}
	s.fetchSeq++
	token := s.fetchSeq
	if page == 1 {
		s.state = StateLoading
	} else {
		s.state = StateLoadingMore
	}
	query := ports.PageQuery{
		Page:           page,
		Limit:          s.opts.PageLimit,
		Type:           s.opts.Query.Type,
		Status:         s.opts.Query.Status,
		MarketplaceIDs: s.opts.Query.MarketplaceIDs,
	}
	s.mu.Unlock()
	s.notify()

	result, err := s.backend.FetchPage(ctx, query)

	s.mu.Lock()
	if token != s.fetchSeq {
		// A newer fetch superseded this one while it was in flight.
		s.mu.Unlock()
		s.opts.Logger.Debug("discarding stale page response", "page", page)
		return nil
	}
	if err != nil {
		s.state = StateErrored
		s.lastErr = err
		s.mu.Unlock()
		s.notify()
		// The page fetch failed but the badge can still be refreshed
		// independently.
		s.scheduleUnreadRefresh()
		return err
	}

	if page == 1 {
		s.items = append(s.items[:0], result.Data...)
	} else {
		s.mergePage(result.Data)
	}
	s.capItems()
	s.unreadCount = result.TotalUnread
	s.readCount = result.TotalRead
	s.currentPage = result.CurrentPage
	s.totalPages = result.TotalPages
	s.totalItems = result.TotalItems
	s.state = StateLoaded
	s.lastErr = nil
	s.mu.Unlock()
	s.notify()
	return nil
}

// mergePage appends pulled notifications, resolving ID collisions through the
// merge policy. Mutex must be held.
func (s *Store) mergePage(pulled []domain.Notification) {
	index := make(map[string]int, len(s.items))
	for i, item := range s.items {
		index[item.ID] = i
	}
	for _, notif := range pulled {
		if i, ok := index[notif.ID]; ok {
			s.items[i] = s.opts.Merge.Merge(s.items[i], notif)
			continue
		}
		s.items = append(s.items, notif)
		index[notif.ID] = len(s.items) - 1
	}
}

// capItems drops the oldest tail entries beyond the cap. Mutex must be held.
func (s *Store) capItems() {
	if len(s.items) > s.opts.ItemsCap {
		s.items = s.items[:s.opts.ItemsCap]
	}
}

// IngestPush folds a live pushed notification into the working set. New items
// are prepended and bump the aggregate counters; an ID already present is
// updated in place without touching the counters, so redelivered events are
// idempotent.
func (s *Store) IngestPush(notif domain.Notification) {
	if notif.ID == "" {
		s.opts.Logger.Warn("ignoring pushed notification without id")
		return
	}
	if notif.CreatedAt.IsZero() {
		notif.CreatedAt = time.Now()
	}

	s.mu.Lock()
	replaced := false
	for i, item := range s.items {
		if item.ID == notif.ID {
			s.items[i] = notif
			replaced = true
			break
		}
	}
	if !replaced {
		// Items outside the fetch scope stay off the page but still count.
		if s.matchesScope(notif) {
			s.items = append([]domain.Notification{notif}, s.items...)
			s.capItems()
		}
		s.totalItems++
		if notif.IsRead() {
			s.readCount++
		} else {
			s.unreadCount++
		}
	}
	s.mu.Unlock()
	s.notify()
	if !replaced {
		s.scheduleUnreadRefresh()
	}
}

// matchesScope reports whether a pushed notification belongs on the page
// under the configured server-side filter scope. Mutex must be held.
func (s *Store) matchesScope(notif domain.Notification) bool {
	q := s.opts.Query
	if q.Type != "" && q.Type != "all" && notif.Type.String() != q.Type {
		return false
	}
	if q.Status != "" && q.Status != "all" && notif.Status.String() != q.Status {
		return false
	}
	if len(q.MarketplaceIDs) > 0 {
		found := false
		for _, id := range q.MarketplaceIDs {
			if notif.MarketplaceID == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// MarkRead optimistically flips a notification to read, then confirms with the
// backend. On rejection the local flip is kept unless RollbackOnFailure is
// set; either way the error is returned for surfacing.
func (s *Store) MarkRead(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := -1
	for i, item := range s.items {
		if item.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return nil
	}
	if s.items[idx].IsRead() {
		s.mu.Unlock()
		return nil
	}
	previous := s.items[idx]
	removed := false
	s.items[idx].MarkRead()
	s.unreadCount--
	s.readCount++
	if s.opts.Query.Status == domain.StatusFilterUnread {
		// A read item no longer belongs on an unread-only page.
		s.items = append(s.items[:idx], s.items[idx+1:]...)
		removed = true
	}
	s.mu.Unlock()
	s.notify()

	if err := s.backend.MarkRead(ctx, id); err != nil {
		s.opts.Logger.Warn("mark read rejected", "id", id, "rollback", s.opts.RollbackOnFailure, "error", err)
		if s.opts.RollbackOnFailure {
			s.mu.Lock()
			if removed {
				pos := idx
				if pos > len(s.items) {
					pos = len(s.items)
				}
				tail := append([]domain.Notification{previous}, s.items[pos:]...)
				s.items = append(s.items[:pos], tail...)
				s.unreadCount++
				s.readCount--
			} else {
				for i := range s.items {
					if s.items[i].ID == id {
						s.items[i] = previous
						s.unreadCount++
						s.readCount--
						break
					}
				}
			}
			s.mu.Unlock()
			s.notify()
		}
		return errors.Join(ErrMutationFailed, err)
	}
	return nil
}

// MarkAllRead optimistically flips every notification to read, then confirms
// with the backend.
func (s *Store) MarkAllRead(ctx context.Context) error {
	s.mu.Lock()
	previous := make([]domain.Notification, len(s.items))
	copy(previous, s.items)
	prevUnread, prevRead := s.unreadCount, s.readCount
	for i := range s.items {
		s.items[i].MarkRead()
	}
	s.readCount += s.unreadCount
	s.unreadCount = 0
	if s.opts.Query.Status == domain.StatusFilterUnread {
		s.items = s.items[:0]
	}
	s.mu.Unlock()
	s.notify()

	if err := s.backend.MarkAllRead(ctx); err != nil {
		s.opts.Logger.Warn("mark all read rejected", "rollback", s.opts.RollbackOnFailure, "error", err)
		if s.opts.RollbackOnFailure {
			s.mu.Lock()
			s.items = previous
			s.unreadCount, s.readCount = prevUnread, prevRead
			s.mu.Unlock()
			s.notify()
		}
		s.scheduleUnreadRefresh()
		return errors.Join(ErrMutationFailed, err)
	}
	s.scheduleUnreadRefresh()
	return nil
}

// DeleteRead removes all read notifications on the backend, then re-fetches
// the first page so the working set reflects the authoritative result.
func (s *Store) DeleteRead(ctx context.Context) error {
	if err := s.backend.DeleteRead(ctx); err != nil {
		return err
	}
	s.resetPagination()
	return s.fetchPage(ctx, 1)
}

// DeleteAll removes every notification on the backend, then re-fetches.
func (s *Store) DeleteAll(ctx context.Context) error {
	if err := s.backend.DeleteAll(ctx); err != nil {
		return err
	}
	s.resetPagination()
	return s.fetchPage(ctx, 1)
}

// resetPagination clears the pagination bound so the follow-up fetch is not
// rejected by a stale totalPages of zero rows.
func (s *Store) resetPagination() {
	s.mu.Lock()
	s.currentPage = 0
	s.totalPages = 0
	s.mu.Unlock()
}

// RefreshUnreadCount re-derives the unread counter from the backend's
// unread feed. Used as a periodic backstop against missed push events.
// Refreshes carry a sequence token like page fetches do, so a slow response
// cannot clobber the result of a refresh issued after it.
func (s *Store) RefreshUnreadCount(ctx context.Context) error {
	token := s.nextUnreadToken()
	unread, err := s.backend.FetchUnread(ctx)
	if err != nil {
		return err
	}
	s.applyUnreadCount(token, len(unread))
	return nil
}

// scheduleUnreadRefresh kicks off an authoritative unread refresh in the
// background. Failures are logged and swallowed; the next refresh corrects
// the badge.
func (s *Store) scheduleUnreadRefresh() {
	token := s.nextUnreadToken()
	go func() {
		unread, err := s.backend.FetchUnread(context.Background())
		if err != nil {
			s.opts.Logger.Warn("unread count refresh failed", "error", err)
			return
		}
		s.applyUnreadCount(token, len(unread))
	}()
}

func (s *Store) nextUnreadToken() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unreadSeq++
	return s.unreadSeq
}

// applyUnreadCount commits a refresh result unless a newer refresh has been
// issued since.
func (s *Store) applyUnreadCount(token uint64, count int) {
	s.mu.Lock()
	if token != s.unreadSeq {
		s.mu.Unlock()
		return
	}
	s.unreadCount = count
	s.mu.Unlock()
	s.notify()
}

func (s *Store) notify() {
	s.subsMu.RLock()
	subs := s.subscribers
	s.subsMu.RUnlock()
	for _, fn := range subs {
		fn()
	}
}
