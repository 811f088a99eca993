package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sellerdash/sellertray/internal/debounce"
	"github.com/sellerdash/sellertray/internal/domain"
	"github.com/sellerdash/sellertray/internal/errors"
	"github.com/sellerdash/sellertray/internal/logging"
	"github.com/sellerdash/sellertray/internal/notifier"
	"github.com/sellerdash/sellertray/internal/ports"
	"github.com/sellerdash/sellertray/internal/search"
	"github.com/sellerdash/sellertray/internal/store"
)

// DefaultToastDuration is how long a toast stays visible.
const DefaultToastDuration = 4 * time.Second

// DefaultUnreadPollInterval is the period of the unread-count backstop poll.
const DefaultUnreadPollInterval = 60 * time.Second

// statusFilterCycle is the order the status filter key steps through.
var statusFilterCycle = []string{
	domain.StatusFilterAll,
	domain.StatusFilterUnread,
	domain.StatusFilterRead,
}

// typeFilterCycle is the order the type filter key steps through. The empty
// value means all types.
var typeFilterCycle = []domain.Type{
	"",
	domain.TypeError,
	domain.TypeWarn,
	domain.TypeSuccess,
	domain.TypeInfo,
}

// resolvedFilterCycle is the order the resolved filter key steps through.
var resolvedFilterCycle = []string{
	domain.ResolvedFilterAll,
	domain.ResolvedFilterUnresolved,
	domain.ResolvedFilterResolved,
}

// Options configures the tray model.
type Options struct {
	Store   *store.Store
	Channel ports.EventChannel
	Toasts  *notifier.Service

	// SearchProvider overrides the default substring matcher.
	SearchProvider search.Provider
	// SearchDebounce is the quiet period before a typed query applies.
	SearchDebounce time.Duration
	// UnreadPollInterval is the unread-count backstop period. Zero disables
	// polling.
	UnreadPollInterval time.Duration
	// ToastDuration overrides how long toasts stay visible.
	ToastDuration time.Duration
	// Now overrides the clock used for day grouping.
	Now func() time.Time
}

// Model is the bubbletea model for the notification tray.
type Model struct {
	store   *store.Store
	channel ports.EventChannel
	toasts  *notifier.Service

	keys   keyMap
	styles styles
	help   help.Model

	searchInput    textinput.Model
	searchDebounce *debounce.Debouncer

	view     domain.View
	snapshot store.Snapshot
	groups   domain.DayGroupResult
	flat     []domain.Notification

	cursor    int
	connected bool
	searching bool
	showHelp  bool
	quitting  bool

	toast         *notifier.Toast
	toastDuration time.Duration
	pollInterval  time.Duration
	msgs          *errors.TUIHandler

	width  int
	height int

	// events carries adapter callbacks and debounced queries into the
	// bubbletea loop.
	events chan tea.Msg
	now    func() time.Time
}

// New creates a tray model and wires the event channel and toast service
// into the bubbletea message loop.
func New(opts Options) *Model {
	if opts.Store == nil {
		panic("tui.New: store dependency cannot be nil")
	}
	if opts.Channel == nil {
		panic("tui.New: channel dependency cannot be nil")
	}
	if opts.Toasts == nil {
		opts.Toasts = notifier.New()
	}
	if opts.SearchDebounce <= 0 {
		opts.SearchDebounce = 300 * time.Millisecond
	}
	if opts.ToastDuration <= 0 {
		opts.ToastDuration = DefaultToastDuration
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	input := textinput.New()
	input.Placeholder = "search title, message, or ASIN"
	input.CharLimit = 120

	view := domain.DefaultView()
	view.UnreadFirst = true
	if opts.SearchProvider != nil {
		view.Match = opts.SearchProvider.Match
	}

	m := &Model{
		store:          opts.Store,
		channel:        opts.Channel,
		toasts:         opts.Toasts,
		keys:           defaultKeyMap(),
		styles:         defaultStyles(),
		help:           help.New(),
		searchInput:    input,
		searchDebounce: debounce.New(opts.SearchDebounce),
		view:           view,
		msgs:           errors.NewTUIHandler(nil),
		toastDuration:  opts.ToastDuration,
		pollInterval:   opts.UnreadPollInterval,
		events:         make(chan tea.Msg, 128),
		now:            opts.Now,
	}

	m.wireChannel()
	m.toasts.Subscribe(func(t notifier.Toast) {
		m.send(ToastMsg{Toast: t})
	})

	return m
}

// wireChannel translates event-channel callbacks into bubbletea messages.
func (m *Model) wireChannel() {
	m.channel.OnNotification(func(n domain.Notification) {
		m.send(PushMsg{Notification: n})
	})
	m.channel.OnConnect(func() {
		m.send(ConnStateMsg{Connected: true})
	})
	m.channel.OnDisconnect(func(reason string) {
		m.send(ConnStateMsg{Connected: false, Reason: reason})
	})
	m.channel.OnReconnectFailed(func() {
		m.send(ReconnectFailedMsg{})
	})
}

// send enqueues a message for the bubbletea loop without ever blocking the
// caller; the channel reader must not stall on a slow terminal.
func (m *Model) send(msg tea.Msg) {
	select {
	case m.events <- msg:
	default:
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.connectCmd(),
		m.fetchCmd(),
		m.waitForEvent(),
	}
	if m.pollInterval > 0 {
		cmds = append(cmds, m.unreadPollTick())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case SnapshotMsg:
		m.snapshot = msg.Snapshot
		if msg.Snapshot.Err != nil {
			m.msgs.Error(msg.Snapshot.Err.Error())
		} else {
			m.msgs.Clear()
		}
		m.reproject()
		return m, nil

	case PushMsg:
		m.store.IngestPush(msg.Notification)
		m.snapshot = m.store.Snapshot()
		m.reproject()
		m.toasts.Notify(msg.Notification.Type, msg.Notification.Title, msg.Notification.Message)
		return m, m.waitForEvent()

	case ConnStateMsg:
		m.connected = msg.Connected
		return m, m.waitForEvent()

	case ReconnectFailedMsg:
		m.connected = false
		m.toasts.Notify(domain.TypeError, "Connection lost", "reconnection failed, press R to retry")
		return m, m.waitForEvent()

	case ToastMsg:
		toast := msg.Toast
		m.toast = &toast
		return m, tea.Batch(m.waitForEvent(), m.toastExpireCmd(toast.ID))

	case ToastExpiredMsg:
		if m.toast != nil && m.toast.ID == msg.ID {
			m.toast = nil
		}
		return m, nil

	case SearchDebouncedMsg:
		m.view.Search = msg.Query
		m.reproject()
		return m, m.waitForEvent()

	case UnreadPollMsg:
		return m, tea.Batch(m.refreshUnreadCmd(), m.unreadPollTick())

	case MutationFailedMsg:
		m.msgs.Error(msg.Err.Error())
		m.snapshot = m.store.Snapshot()
		m.reproject()
		return m, nil
	}

	return m, nil
}

// handleKey routes key presses, giving search input priority while active.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		switch {
		case key.Matches(msg, m.keys.ClearSearch):
			m.searching = false
			m.searchInput.Blur()
			m.searchInput.SetValue("")
			m.view.Search = ""
			m.reproject()
			return m, nil
		case msg.Type == tea.KeyEnter:
			m.searching = false
			m.searchInput.Blur()
			return m, nil
		}

		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		query := m.searchInput.Value()
		m.searchDebounce.Trigger(func() {
			m.send(SearchDebouncedMsg{Query: query})
		})
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.channel.Disconnect()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.flat)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.MarkRead):
		if m.cursor < len(m.flat) {
			return m, m.markReadCmd(m.flat[m.cursor].ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.MarkAllRead):
		return m, m.markAllReadCmd()

	case key.Matches(msg, m.keys.LoadMore):
		if m.snapshot.HasMore() {
			return m, m.loadMoreCmd()
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.fetchCmd()

	case key.Matches(msg, m.keys.Reconnect):
		m.channel.Reconnect()
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.ClearSearch):
		m.searchInput.SetValue("")
		m.view.Search = ""
		m.reproject()
		return m, nil

	case key.Matches(msg, m.keys.UnreadFirst):
		m.view.UnreadFirst = !m.view.UnreadFirst
		m.reproject()
		return m, nil

	case key.Matches(msg, m.keys.SortOrder):
		if m.view.Order == domain.SortOrderDesc {
			m.view.Order = domain.SortOrderAsc
		} else {
			m.view.Order = domain.SortOrderDesc
		}
		m.reproject()
		return m, nil

	case key.Matches(msg, m.keys.StatusCycle):
		m.view.Filter.Status = nextInCycle(statusFilterCycle, m.view.Filter.Status)
		m.reproject()
		return m, nil

	case key.Matches(msg, m.keys.TypeCycle):
		m.view.Filter.Type = nextInCycle(typeFilterCycle, m.view.Filter.Type)
		m.reproject()
		return m, nil

	case key.Matches(msg, m.keys.ResolvedCycle):
		m.view.Filter.Resolved = nextInCycle(resolvedFilterCycle, m.view.Filter.Resolved)
		m.reproject()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	}

	return m, nil
}

// reproject rebuilds the grouped view model from the current snapshot and
// clamps the cursor to the new flattened length.
func (m *Model) reproject() {
	m.groups = domain.Project(m.snapshot.Items, m.view, m.now())

	m.flat = m.flat[:0]
	for _, group := range m.groups.Groups {
		m.flat = append(m.flat, group.Notifications...)
	}

	if m.cursor >= len(m.flat) {
		m.cursor = len(m.flat) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// nextInCycle returns the element after current, wrapping around. Unknown
// values reset to the first element.
func nextInCycle[T comparable](cycle []T, current T) T {
	for i, v := range cycle {
		if v == current {
			return cycle[(i+1)%len(cycle)]
		}
	}
	return cycle[0]
}

// Snapshot exposes the last seen store snapshot.
func (m *Model) Snapshot() store.Snapshot {
	return m.snapshot
}

// connectCmd starts the event channel.
func (m *Model) connectCmd() tea.Cmd {
	return func() tea.Msg {
		m.channel.Connect()
		return nil
	}
}

// fetchCmd loads the first page and reports the resulting snapshot.
func (m *Model) fetchCmd() tea.Cmd {
	return func() tea.Msg {
		_ = m.store.Fetch(context.Background())
		return SnapshotMsg{Snapshot: m.store.Snapshot()}
	}
}

// loadMoreCmd fetches the next page.
func (m *Model) loadMoreCmd() tea.Cmd {
	return func() tea.Msg {
		_ = m.store.FetchNextPage(context.Background())
		return SnapshotMsg{Snapshot: m.store.Snapshot()}
	}
}

// markReadCmd optimistically marks one notification read.
func (m *Model) markReadCmd(id string) tea.Cmd {
	return func() tea.Msg {
		if err := m.store.MarkRead(context.Background(), id); err != nil {
			return MutationFailedMsg{Err: err}
		}
		return SnapshotMsg{Snapshot: m.store.Snapshot()}
	}
}

// markAllReadCmd optimistically marks everything read.
func (m *Model) markAllReadCmd() tea.Cmd {
	return func() tea.Msg {
		if err := m.store.MarkAllRead(context.Background()); err != nil {
			return MutationFailedMsg{Err: err}
		}
		return SnapshotMsg{Snapshot: m.store.Snapshot()}
	}
}

// refreshUnreadCmd re-derives the unread badge from the backend. Failures
// are logged and swallowed; the next poll tick tries again.
func (m *Model) refreshUnreadCmd() tea.Cmd {
	return func() tea.Msg {
		if err := m.store.RefreshUnreadCount(context.Background()); err != nil {
			logging.GetGlobal().Warn("unread count refresh failed", "error", err)
		}
		return SnapshotMsg{Snapshot: m.store.Snapshot()}
	}
}

// waitForEvent delivers the next channel callback or debounced query.
func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return <-m.events
	}
}

// toastExpireCmd clears the toast after its display window.
func (m *Model) toastExpireCmd(id string) tea.Cmd {
	return tea.Tick(m.toastDuration, func(time.Time) tea.Msg {
		return ToastExpiredMsg{ID: id}
	})
}

// unreadPollTick schedules the next unread-count backstop poll.
func (m *Model) unreadPollTick() tea.Cmd {
	return tea.Tick(m.pollInterval, func(time.Time) tea.Msg {
		return UnreadPollMsg{}
	})
}
