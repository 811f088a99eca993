package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellerdash/sellertray/internal/domain"
	"github.com/sellerdash/sellertray/internal/ports"
)

// fakeBackend serves canned page results and records mutations.
type fakeBackend struct {
	mu           sync.Mutex
	pages        map[int]ports.PageResult
	unread       []domain.Notification
	unreadCalls  int
	markReadErr  error
	markAllErr   error
	markedRead   []string
	markedAll    bool
	deletedRead  bool
	deletedAll   bool
	fetchedQuery ports.PageQuery
}

func (b *fakeBackend) FetchPage(_ context.Context, query ports.PageQuery) (ports.PageResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fetchedQuery = query
	result, ok := b.pages[query.Page]
	if !ok {
		return ports.PageResult{}, fmt.Errorf("no page %d", query.Page)
	}
	return result, nil
}

func (b *fakeBackend) FetchUnread(_ context.Context) ([]domain.Notification, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.unreadCalls++
	return b.unread, nil
}

func (b *fakeBackend) unreadCallCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.unreadCalls
}

func (b *fakeBackend) MarkRead(_ context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.markReadErr != nil {
		return b.markReadErr
	}
	b.markedRead = append(b.markedRead, id)
	return nil
}

func (b *fakeBackend) MarkAllRead(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.markAllErr != nil {
		return b.markAllErr
	}
	b.markedAll = true
	return nil
}

func (b *fakeBackend) DeleteRead(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deletedRead = true
	return nil
}

func (b *fakeBackend) DeleteAll(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deletedAll = true
	return nil
}

func notif(id string, status domain.Status, age time.Duration) domain.Notification {
	return domain.Notification{
		ID:        id,
		Type:      domain.TypeInfo,
		Status:    status,
		Title:     "title " + id,
		Message:   "message " + id,
		CreatedAt: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC).Add(-age),
	}
}

func pageOf(page, totalPages int, totalUnread, totalRead int, items ...domain.Notification) ports.PageResult {
	return ports.PageResult{
		Data:        items,
		TotalUnread: totalUnread,
		TotalRead:   totalRead,
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  totalUnread + totalRead,
	}
}

// unreadOf builds an authoritative unread feed of n notifications for the
// fake backend. Tests that trigger a background unread refresh keep this in
// step with the expected counter so the refresh never moves the badge.
func unreadOf(n int) []domain.Notification {
	out := make([]domain.Notification, n)
	for i := range out {
		out[i] = notif(fmt.Sprintf("u%d", i), domain.StatusUnread, 0)
	}
	return out
}

func ids(items []domain.Notification) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func TestFetchReplacesWorkingSet(t *testing.T) {
	backend := &fakeBackend{pages: map[int]ports.PageResult{
		1: pageOf(1, 2, 3, 1, notif("n1", domain.StatusUnread, 0), notif("n2", domain.StatusRead, time.Hour)),
	}}
	s := New(backend, Options{})

	require.NoError(t, s.Fetch(context.Background()))

	snap := s.Snapshot()
	assert.Equal(t, []string{"n1", "n2"}, ids(snap.Items))
	assert.Equal(t, 3, snap.UnreadCount)
	assert.Equal(t, 1, snap.ReadCount)
	assert.Equal(t, 1, snap.CurrentPage)
	assert.Equal(t, 2, snap.TotalPages)
	assert.Equal(t, StateLoaded, snap.State)
	assert.True(t, snap.HasMore())

	// A second fetch replaces rather than accumulates.
	require.NoError(t, s.Fetch(context.Background()))
	assert.Len(t, s.Snapshot().Items, 2)
}

func TestFetchNextPageMergesWithPullWins(t *testing.T) {
	backend := &fakeBackend{pages: map[int]ports.PageResult{
		1: pageOf(1, 2, 2, 0, notif("n1", domain.StatusUnread, 0), notif("n2", domain.StatusUnread, time.Hour)),
		2: pageOf(2, 2, 1, 2, notif("n2", domain.StatusRead, time.Hour), notif("n3", domain.StatusRead, 2*time.Hour)),
	}}
	s := New(backend, Options{})

	require.NoError(t, s.Fetch(context.Background()))
	require.NoError(t, s.FetchNextPage(context.Background()))

	snap := s.Snapshot()
	assert.Equal(t, []string{"n1", "n2", "n3"}, ids(snap.Items))
	// Pulled copy of n2 wins over the stale working-set copy.
	assert.Equal(t, domain.StatusRead, snap.Items[1].Status)
	assert.Equal(t, 2, snap.CurrentPage)
	assert.False(t, snap.HasMore())
}

func TestFetchNextPageBeyondLastIsNoop(t *testing.T) {
	backend := &fakeBackend{pages: map[int]ports.PageResult{
		1: pageOf(1, 1, 1, 0, notif("n1", domain.StatusUnread, 0)),
	}}
	s := New(backend, Options{})
	require.NoError(t, s.Fetch(context.Background()))

	before := s.Snapshot()
	require.NoError(t, s.FetchNextPage(context.Background()))
	after := s.Snapshot()

	assert.Equal(t, before.CurrentPage, after.CurrentPage)
	assert.Equal(t, ids(before.Items), ids(after.Items))
	assert.Equal(t, StateLoaded, after.State)
}

func TestFetchErrorSetsErroredState(t *testing.T) {
	backend := &fakeBackend{pages: map[int]ports.PageResult{}}
	s := New(backend, Options{})

	err := s.Fetch(context.Background())
	require.Error(t, err)

	snap := s.Snapshot()
	assert.Equal(t, StateErrored, snap.State)
	assert.Error(t, snap.Err)
	assert.Empty(t, snap.Items)
}

func TestIngestPushPrependsAndBumpsCounters(t *testing.T) {
	backend := &fakeBackend{
		pages: map[int]ports.PageResult{
			1: pageOf(1, 1, 1, 1, notif("n1", domain.StatusUnread, time.Hour), notif("n2", domain.StatusRead, 2*time.Hour)),
		},
		unread: unreadOf(2),
	}
	s := New(backend, Options{})
	require.NoError(t, s.Fetch(context.Background()))

	s.IngestPush(notif("live1", domain.StatusUnread, 0))

	snap := s.Snapshot()
	assert.Equal(t, []string{"live1", "n1", "n2"}, ids(snap.Items))
	assert.Equal(t, 2, snap.UnreadCount)
	assert.Equal(t, 3, snap.TotalItems)
}

func TestIngestPushDuplicateIsIdempotent(t *testing.T) {
	s := New(&fakeBackend{unread: unreadOf(1)}, Options{})

	pushed := notif("live1", domain.StatusUnread, 0)
	s.IngestPush(pushed)
	s.IngestPush(pushed)
	s.IngestPush(pushed)

	snap := s.Snapshot()
	assert.Len(t, snap.Items, 1)
	assert.Equal(t, 1, snap.UnreadCount)
	assert.Equal(t, 1, snap.TotalItems)
}

func TestIngestPushDuplicateUpdatesInPlace(t *testing.T) {
	s := New(&fakeBackend{unread: unreadOf(1)}, Options{})

	s.IngestPush(notif("live1", domain.StatusUnread, 0))
	updated := notif("live1", domain.StatusRead, 0)
	updated.Title = "updated title"
	s.IngestPush(updated)

	snap := s.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "updated title", snap.Items[0].Title)
	// Counters are untouched by a redelivery.
	assert.Equal(t, 1, snap.UnreadCount)
	assert.Equal(t, 1, snap.TotalItems)
}

func TestIngestPushIgnoresMissingID(t *testing.T) {
	s := New(&fakeBackend{}, Options{})
	s.IngestPush(domain.Notification{Title: "no id"})
	assert.Empty(t, s.Snapshot().Items)
}

func TestIngestPushOutsideScopeCountsButStaysOffPage(t *testing.T) {
	s := New(&fakeBackend{unread: unreadOf(1)}, Options{Query: QueryScope{Status: domain.StatusFilterUnread}})

	s.IngestPush(notif("r1", domain.StatusRead, 0))

	snap := s.Snapshot()
	assert.Empty(t, snap.Items)
	assert.Equal(t, 1, snap.ReadCount)
	assert.Equal(t, 1, snap.TotalItems)

	s.IngestPush(notif("u1", domain.StatusUnread, 0))
	assert.Equal(t, []string{"u1"}, ids(s.Snapshot().Items))
	require.Eventually(t, func() bool {
		return s.Snapshot().UnreadCount == 1
	}, time.Second, 5*time.Millisecond)
}

func TestIngestPushRespectsMarketplaceScope(t *testing.T) {
	s := New(&fakeBackend{unread: unreadOf(1)}, Options{Query: QueryScope{MarketplaceIDs: []string{"ATVPDKIKX0DER"}}})

	other := notif("m1", domain.StatusUnread, 0)
	other.MarketplaceID = "A1PA6795UKMFR9"
	s.IngestPush(other)

	snap := s.Snapshot()
	assert.Empty(t, snap.Items)
	assert.Equal(t, 1, snap.UnreadCount)
}

func TestMarkReadRemovesItemUnderUnreadScope(t *testing.T) {
	backend := &fakeBackend{pages: map[int]ports.PageResult{
		1: pageOf(1, 1, 2, 0, notif("n1", domain.StatusUnread, 0), notif("n2", domain.StatusUnread, time.Hour)),
	}}
	s := New(backend, Options{Query: QueryScope{Status: domain.StatusFilterUnread}})
	require.NoError(t, s.Fetch(context.Background()))

	require.NoError(t, s.MarkRead(context.Background(), "n1"))

	snap := s.Snapshot()
	assert.Equal(t, []string{"n2"}, ids(snap.Items))
	assert.Equal(t, 1, snap.UnreadCount)
}

func TestMarkAllReadClearsUnreadScopedPage(t *testing.T) {
	backend := &fakeBackend{pages: map[int]ports.PageResult{
		1: pageOf(1, 1, 2, 0, notif("n1", domain.StatusUnread, 0), notif("n2", domain.StatusUnread, time.Hour)),
	}}
	s := New(backend, Options{Query: QueryScope{Status: domain.StatusFilterUnread}})
	require.NoError(t, s.Fetch(context.Background()))

	require.NoError(t, s.MarkAllRead(context.Background()))

	snap := s.Snapshot()
	assert.Empty(t, snap.Items)
	assert.Equal(t, 0, snap.UnreadCount)
	assert.Equal(t, 2, snap.ReadCount)
}

func TestItemsCapDropsOldestTail(t *testing.T) {
	s := New(&fakeBackend{unread: unreadOf(8)}, Options{ItemsCap: 5})

	for i := 0; i < 8; i++ {
		s.IngestPush(notif(fmt.Sprintf("n%d", i), domain.StatusUnread, 0))
	}

	snap := s.Snapshot()
	assert.Len(t, snap.Items, 5)
	assert.Equal(t, []string{"n7", "n6", "n5", "n4", "n3"}, ids(snap.Items))
	assert.Equal(t, 8, snap.TotalItems)
	// Counters track everything seen, not just the displayed window.
	require.Eventually(t, func() bool {
		return s.Snapshot().UnreadCount == 8
	}, time.Second, 5*time.Millisecond)
}

func TestMarkReadOptimistic(t *testing.T) {
	backend := &fakeBackend{pages: map[int]ports.PageResult{
		1: pageOf(1, 1, 2, 0, notif("n1", domain.StatusUnread, 0), notif("n2", domain.StatusUnread, time.Hour)),
	}}
	s := New(backend, Options{})
	require.NoError(t, s.Fetch(context.Background()))

	require.NoError(t, s.MarkRead(context.Background(), "n1"))

	snap := s.Snapshot()
	assert.Equal(t, domain.StatusRead, snap.Items[0].Status)
	assert.Equal(t, 1, snap.UnreadCount)
	assert.Equal(t, 1, snap.ReadCount)
	assert.Equal(t, []string{"n1"}, backend.markedRead)

	// Marking an already-read item is a no-op and hits no endpoint.
	require.NoError(t, s.MarkRead(context.Background(), "n1"))
	assert.Equal(t, []string{"n1"}, backend.markedRead)
}

func TestMarkReadFailureKeepsLocalFlipByDefault(t *testing.T) {
	backend := &fakeBackend{
		pages: map[int]ports.PageResult{
			1: pageOf(1, 1, 1, 0, notif("n1", domain.StatusUnread, 0)),
		},
		markReadErr: errors.New("503"),
	}
	s := New(backend, Options{})
	require.NoError(t, s.Fetch(context.Background()))

	err := s.MarkRead(context.Background(), "n1")
	require.ErrorIs(t, err, ErrMutationFailed)

	snap := s.Snapshot()
	assert.Equal(t, domain.StatusRead, snap.Items[0].Status)
	assert.Equal(t, 0, snap.UnreadCount)
}

func TestMarkReadFailureRollsBackWhenConfigured(t *testing.T) {
	backend := &fakeBackend{
		pages: map[int]ports.PageResult{
			1: pageOf(1, 1, 1, 0, notif("n1", domain.StatusUnread, 0)),
		},
		markReadErr: errors.New("503"),
	}
	s := New(backend, Options{RollbackOnFailure: true})
	require.NoError(t, s.Fetch(context.Background()))

	err := s.MarkRead(context.Background(), "n1")
	require.ErrorIs(t, err, ErrMutationFailed)

	snap := s.Snapshot()
	assert.Equal(t, domain.StatusUnread, snap.Items[0].Status)
	assert.Equal(t, 1, snap.UnreadCount)
	assert.Equal(t, 0, snap.ReadCount)
}

func TestMarkReadRollbackRestoresUnreadScopedItem(t *testing.T) {
	backend := &fakeBackend{
		pages: map[int]ports.PageResult{
			1: pageOf(1, 1, 2, 0, notif("n1", domain.StatusUnread, 0), notif("n2", domain.StatusUnread, time.Hour)),
		},
		markReadErr: errors.New("503"),
	}
	s := New(backend, Options{
		RollbackOnFailure: true,
		Query:             QueryScope{Status: domain.StatusFilterUnread},
	})
	require.NoError(t, s.Fetch(context.Background()))

	err := s.MarkRead(context.Background(), "n1")
	require.ErrorIs(t, err, ErrMutationFailed)

	// The optimistic flip dropped n1 from the unread-only page; the rollback
	// must put it back where it was, counters included.
	snap := s.Snapshot()
	assert.Equal(t, []string{"n1", "n2"}, ids(snap.Items))
	assert.Equal(t, domain.StatusUnread, snap.Items[0].Status)
	assert.Equal(t, 2, snap.UnreadCount)
	assert.Equal(t, 0, snap.ReadCount)
}

func TestMarkReadUnknownIDIsNoop(t *testing.T) {
	backend := &fakeBackend{}
	s := New(backend, Options{})
	require.NoError(t, s.MarkRead(context.Background(), "ghost"))
	assert.Empty(t, backend.markedRead)
}

func TestMarkAllRead(t *testing.T) {
	backend := &fakeBackend{pages: map[int]ports.PageResult{
		1: pageOf(1, 1, 2, 1,
			notif("n1", domain.StatusUnread, 0),
			notif("n2", domain.StatusUnread, time.Hour),
			notif("n3", domain.StatusRead, 2*time.Hour)),
	}}
	s := New(backend, Options{})
	require.NoError(t, s.Fetch(context.Background()))

	require.NoError(t, s.MarkAllRead(context.Background()))

	snap := s.Snapshot()
	for _, item := range snap.Items {
		assert.True(t, item.IsRead())
	}
	assert.Equal(t, 0, snap.UnreadCount)
	assert.Equal(t, 3, snap.ReadCount)
	assert.True(t, backend.markedAll)
}

func TestMarkAllReadFailureRollsBackWhenConfigured(t *testing.T) {
	backend := &fakeBackend{
		pages: map[int]ports.PageResult{
			1: pageOf(1, 1, 2, 1,
				notif("n1", domain.StatusUnread, 0),
				notif("n2", domain.StatusRead, time.Hour),
				notif("n3", domain.StatusUnread, 2*time.Hour)),
		},
		markAllErr: errors.New("503"),
		unread:     unreadOf(2),
	}
	s := New(backend, Options{RollbackOnFailure: true})
	require.NoError(t, s.Fetch(context.Background()))

	err := s.MarkAllRead(context.Background())
	require.ErrorIs(t, err, ErrMutationFailed)

	snap := s.Snapshot()
	assert.Equal(t, domain.StatusUnread, snap.Items[0].Status)
	assert.Equal(t, domain.StatusRead, snap.Items[1].Status)
	assert.Equal(t, domain.StatusUnread, snap.Items[2].Status)
	assert.Equal(t, 2, snap.UnreadCount)
	assert.Equal(t, 1, snap.ReadCount)
}

func TestFetchFailureRefreshesUnreadCount(t *testing.T) {
	backend := &fakeBackend{unread: unreadOf(3)}
	s := New(backend, Options{})

	require.Error(t, s.Fetch(context.Background()))

	// The page fetch failed but the badge is refreshed independently.
	require.Eventually(t, func() bool {
		return s.Snapshot().UnreadCount == 3
	}, time.Second, 5*time.Millisecond)
	assert.Greater(t, backend.unreadCallCount(), 0)
}

func TestIngestPushSchedulesUnreadRefresh(t *testing.T) {
	backend := &fakeBackend{unread: unreadOf(2)}
	s := New(backend, Options{})

	s.IngestPush(notif("live1", domain.StatusUnread, 0))

	// The local bump says one unread; the authoritative feed says two and
	// wins once the background refresh lands.
	require.Eventually(t, func() bool {
		return s.Snapshot().UnreadCount == 2
	}, time.Second, 5*time.Millisecond)
	assert.Greater(t, backend.unreadCallCount(), 0)
}

func TestMarkAllReadRefreshesUnreadEvenOnFailure(t *testing.T) {
	backend := &fakeBackend{
		pages: map[int]ports.PageResult{
			1: pageOf(1, 1, 2, 0, notif("n1", domain.StatusUnread, 0), notif("n2", domain.StatusUnread, time.Hour)),
		},
		markAllErr: errors.New("503"),
		unread:     unreadOf(2),
	}
	s := New(backend, Options{})
	require.NoError(t, s.Fetch(context.Background()))

	err := s.MarkAllRead(context.Background())
	require.ErrorIs(t, err, ErrMutationFailed)

	// Without rollback the optimistic zeroing sticks locally until the
	// follow-up refresh restores the authoritative count.
	require.Eventually(t, func() bool {
		return s.Snapshot().UnreadCount == 2
	}, time.Second, 5*time.Millisecond)
	assert.Greater(t, backend.unreadCallCount(), 0)
}

func TestDeleteReadRefetches(t *testing.T) {
	backend := &fakeBackend{pages: map[int]ports.PageResult{
		1: pageOf(1, 1, 1, 0, notif("n1", domain.StatusUnread, 0)),
	}}
	s := New(backend, Options{})
	require.NoError(t, s.Fetch(context.Background()))

	require.NoError(t, s.DeleteRead(context.Background()))

	assert.True(t, backend.deletedRead)
	snap := s.Snapshot()
	assert.Equal(t, []string{"n1"}, ids(snap.Items))
	assert.Equal(t, StateLoaded, snap.State)
}

func TestDeleteAllRefetchesEmpty(t *testing.T) {
	backend := &fakeBackend{pages: map[int]ports.PageResult{
		1: pageOf(1, 1, 2, 0, notif("n1", domain.StatusUnread, 0), notif("n2", domain.StatusUnread, time.Hour)),
	}}
	s := New(backend, Options{})
	require.NoError(t, s.Fetch(context.Background()))

	backend.mu.Lock()
	backend.pages[1] = pageOf(1, 0, 0, 0)
	backend.mu.Unlock()

	require.NoError(t, s.DeleteAll(context.Background()))

	assert.True(t, backend.deletedAll)
	snap := s.Snapshot()
	assert.Empty(t, snap.Items)
	assert.Equal(t, 0, snap.UnreadCount)
	assert.Equal(t, 0, snap.TotalItems)
}

func TestRefreshUnreadCount(t *testing.T) {
	backend := &fakeBackend{unread: []domain.Notification{
		notif("n1", domain.StatusUnread, 0),
		notif("n2", domain.StatusUnread, time.Hour),
		notif("n3", domain.StatusUnread, 2*time.Hour),
	}}
	s := New(backend, Options{})

	require.NoError(t, s.RefreshUnreadCount(context.Background()))
	assert.Equal(t, 3, s.Snapshot().UnreadCount)
}

func TestQueryScopeForwardedToBackend(t *testing.T) {
	backend := &fakeBackend{pages: map[int]ports.PageResult{1: pageOf(1, 1, 0, 0)}}
	s := New(backend, Options{
		PageLimit: 50,
		Query: QueryScope{
			Type:           "error",
			Status:         "unread",
			MarketplaceIDs: []string{"ATVPDKIKX0DER"},
		},
	})

	require.NoError(t, s.Fetch(context.Background()))

	backend.mu.Lock()
	query := backend.fetchedQuery
	backend.mu.Unlock()
	assert.Equal(t, 50, query.Limit)
	assert.Equal(t, "error", query.Type)
	assert.Equal(t, "unread", query.Status)
	assert.Equal(t, []string{"ATVPDKIKX0DER"}, query.MarketplaceIDs)
}

func TestSubscribeFiresOnChange(t *testing.T) {
	backend := &fakeBackend{pages: map[int]ports.PageResult{1: pageOf(1, 1, 0, 0)}}
	s := New(backend, Options{})

	var mu sync.Mutex
	var fired int
	s.Subscribe(func() {
		mu.Lock()
		fired++
		mu.Unlock()
	})

	require.NoError(t, s.Fetch(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	assert.Greater(t, fired, 0)
}

// blockingCall lets a test hold a page fetch in flight and release it later.
type blockingCall struct {
	page  int
	reply chan ports.PageResult
}

type blockingBackend struct {
	fakeBackend
	calls chan blockingCall
}

func (b *blockingBackend) FetchPage(_ context.Context, query ports.PageQuery) (ports.PageResult, error) {
	call := blockingCall{page: query.Page, reply: make(chan ports.PageResult)}
	b.calls <- call
	return <-call.reply, nil
}

func TestStaleFetchResponseIsDiscarded(t *testing.T) {
	backend := &blockingBackend{calls: make(chan blockingCall, 2)}
	s := New(backend, Options{})

	done := make(chan error, 2)
	go func() { done <- s.Fetch(context.Background()) }()
	first := <-backend.calls
	go func() { done <- s.Fetch(context.Background()) }()
	second := <-backend.calls

	// The newer fetch completes first.
	second.reply <- pageOf(1, 1, 1, 0, notif("fresh", domain.StatusUnread, 0))
	require.NoError(t, <-done)
	assert.Equal(t, []string{"fresh"}, ids(s.Snapshot().Items))

	// The older in-flight response arrives late and must not clobber state.
	first.reply <- pageOf(1, 1, 1, 0, notif("stale", domain.StatusUnread, time.Hour))
	require.NoError(t, <-done)

	snap := s.Snapshot()
	assert.Equal(t, []string{"fresh"}, ids(snap.Items))
	assert.Equal(t, StateLoaded, snap.State)
}
