// Package channel maintains the live event connection to the notification
// backend. It wraps a single long-lived websocket and translates connection
// lifecycle and inbound messages into a small typed callback surface.
package channel

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/sellerdash/sellertray/internal/domain"
	"github.com/sellerdash/sellertray/internal/logging"
	"github.com/sellerdash/sellertray/internal/ports"
)

// EventNewNotification is the inbound event carrying a single notification.
const EventNewNotification = "new-notification"

// Default reconnection policy. Delays double per attempt within the
// [MinDelay, MaxDelay] window.
const (
	DefaultMaxAttempts = 10
	DefaultMinDelay    = 500 * time.Millisecond
	DefaultMaxDelay    = 10 * time.Second
)

// Options configures an Adapter.
type Options struct {
	// MaxAttempts caps automatic reconnection attempts before the adapter
	// gives up and waits for an explicit Reconnect call.
	MaxAttempts int
	// MinDelay is the backoff delay before the first retry.
	MinDelay time.Duration
	// MaxDelay caps the backoff delay.
	MaxDelay time.Duration
	// Header carries extra handshake headers (auth).
	Header http.Header
	// Dialer overrides the websocket dialer.
	Dialer *websocket.Dialer
	// Logger receives adapter diagnostics.
	Logger logging.Logger
}

// envelope is the wire shape of every inbound event.
type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Adapter owns the websocket connection. It guarantees at most one active
// underlying connection at a time; calling Connect while connected is a
// no-op. Connection errors never propagate to callers, only to observers.
type Adapter struct {
	url  string
	opts Options

	mu         sync.Mutex
	conn       *websocket.Conn
	connected  bool
	connecting bool
	closed     bool // explicit Disconnect; suppresses auto-reconnect
	gen        int  // connection generation, invalidates stale read loops

	handlersMu        sync.RWMutex
	onNotification    []func(domain.Notification)
	onConnect         []func()
	onDisconnect      []func(reason string)
	onConnectError    []func(err error)
	onReconnect       []func(attempt int)
	onReconnectFailed []func()
}

var _ ports.EventChannel = (*Adapter)(nil)

// NewAdapter creates an adapter for the given websocket URL.
func NewAdapter(url string, opts Options) *Adapter {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	if opts.MinDelay <= 0 {
		opts.MinDelay = DefaultMinDelay
	}
	if opts.MaxDelay < opts.MinDelay {
		opts.MaxDelay = DefaultMaxDelay
	}
	if opts.Dialer == nil {
		opts.Dialer = websocket.DefaultDialer
	}
	if opts.Logger == nil {
		opts.Logger = logging.GetGlobal()
	}
	return &Adapter{url: url, opts: opts}
}

// OnNotification registers a handler for inbound notifications. Multiple
// handlers are allowed; each receives every event.
func (a *Adapter) OnNotification(handler func(domain.Notification)) {
	a.handlersMu.Lock()
	defer a.handlersMu.Unlock()
	a.onNotification = append(a.onNotification, handler)
}

// OnConnect registers a connection-established observer.
func (a *Adapter) OnConnect(handler func()) {
	a.handlersMu.Lock()
	defer a.handlersMu.Unlock()
	a.onConnect = append(a.onConnect, handler)
}

// OnDisconnect registers a connection-lost observer.
func (a *Adapter) OnDisconnect(handler func(reason string)) {
	a.handlersMu.Lock()
	defer a.handlersMu.Unlock()
	a.onDisconnect = append(a.onDisconnect, handler)
}

// OnConnectError registers an observer for failed connection attempts.
func (a *Adapter) OnConnectError(handler func(err error)) {
	a.handlersMu.Lock()
	defer a.handlersMu.Unlock()
	a.onConnectError = append(a.onConnectError, handler)
}

// OnReconnect registers an observer fired before each automatic retry with
// the 1-based attempt number.
func (a *Adapter) OnReconnect(handler func(attempt int)) {
	a.handlersMu.Lock()
	defer a.handlersMu.Unlock()
	a.onReconnect = append(a.onReconnect, handler)
}

// OnReconnectFailed registers an observer for reconnection exhaustion. After
// it fires the adapter stays down until Reconnect is called.
func (a *Adapter) OnReconnectFailed(handler func()) {
	a.handlersMu.Lock()
	defer a.handlersMu.Unlock()
	a.onReconnectFailed = append(a.onReconnectFailed, handler)
}

// Connected reports whether the underlying connection is established.
func (a *Adapter) Connected() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.connected
}

// Connect establishes the channel if not already connecting or connected.
// It returns immediately; progress is reported through observers.
func (a *Adapter) Connect() {
	a.mu.Lock()
	if a.connected || a.connecting {
		a.mu.Unlock()
		return
	}
	a.connecting = true
	a.closed = false
	a.mu.Unlock()

	go a.connectLoop()
}

// Disconnect closes the connection and suppresses automatic reconnection
// until Reconnect or Connect is called.
func (a *Adapter) Disconnect() {
	a.mu.Lock()
	a.closed = true
	a.gen++
	conn := a.conn
	a.conn = nil
	wasConnected := a.connected
	a.connected = false
	a.connecting = false
	a.mu.Unlock()

	if conn != nil {
		_ = conn.Close()
	}
	if wasConnected {
		a.fireDisconnect("client disconnect")
	}
}

// Reconnect restarts the connection, resetting the retry budget. Used for a
// user-triggered reconnect after exhaustion or an explicit Disconnect.
func (a *Adapter) Reconnect() {
	a.mu.Lock()
	if a.connected || a.connecting {
		a.mu.Unlock()
		return
	}
	a.connecting = true
	a.closed = false
	a.mu.Unlock()

	go a.connectLoop()
}

// connectLoop dials until success or retry exhaustion. The first attempt
// happens immediately; each retry is announced via OnReconnect and delayed by
// capped exponential backoff.
func (a *Adapter) connectLoop() {
	for attempt := 1; attempt <= a.opts.MaxAttempts; attempt++ {
		if a.isClosed() {
			a.setIdle()
			return
		}

		if attempt > 1 {
			a.fireReconnect(attempt - 1)
			time.Sleep(a.backoff(attempt - 1))
			if a.isClosed() {
				a.setIdle()
				return
			}
		}

		conn, resp, err := a.opts.Dialer.Dial(a.url, a.opts.Header)
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}
		if err != nil {
			a.opts.Logger.Warn("event channel dial failed", "url", a.url, "attempt", attempt, "error", err)
			a.fireConnectError(err)
			continue
		}

		a.mu.Lock()
		if a.closed {
			a.mu.Unlock()
			_ = conn.Close()
			a.setIdle()
			return
		}
		a.conn = conn
		a.connected = true
		a.connecting = false
		a.gen++
		gen := a.gen
		a.mu.Unlock()

		a.opts.Logger.Info("event channel connected", "url", a.url, "attempt", attempt)
		a.fireConnect()
		go a.readLoop(conn, gen)
		return
	}

	a.opts.Logger.Error("event channel reconnection exhausted", "url", a.url, "attempts", a.opts.MaxAttempts)
	a.setIdle()
	a.fireReconnectFailed()
}

// readLoop consumes inbound frames until the connection drops. A dropped
// connection triggers automatic reconnection unless the adapter was closed
// explicitly.
func (a *Adapter) readLoop(conn *websocket.Conn, gen int) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			a.mu.Lock()
			stale := a.gen != gen
			closed := a.closed
			if !stale {
				a.connected = false
				a.conn = nil
			}
			a.mu.Unlock()

			if stale || closed {
				return
			}

			a.opts.Logger.Warn("event channel lost", "url", a.url, "error", err)
			a.fireDisconnect(err.Error())

			a.mu.Lock()
			a.connecting = true
			a.mu.Unlock()
			go a.connectLoop()
			return
		}

		a.dispatch(data)
	}
}

// dispatch parses an inbound frame and fans it out to handlers. Payloads
// failing minimal shape validation are dropped with a logged warning.
func (a *Adapter) dispatch(data []byte) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		a.opts.Logger.Warn("dropping malformed event frame", "error", err)
		return
	}

	switch env.Event {
	case EventNewNotification:
		var notif domain.Notification
		if err := json.Unmarshal(env.Data, &notif); err != nil {
			a.opts.Logger.Warn("dropping malformed notification payload", "error", err)
			return
		}
		if notif.ID == "" {
			a.opts.Logger.Warn("dropping notification without id")
			return
		}
		a.fireNotification(notif)
	default:
		a.opts.Logger.Debug("ignoring unknown event", "event", env.Event)
	}
}

// backoff returns the delay before the given 1-based retry, doubling from
// MinDelay and capped at MaxDelay.
func (a *Adapter) backoff(retry int) time.Duration {
	delay := a.opts.MinDelay
	for i := 1; i < retry; i++ {
		delay *= 2
		if delay >= a.opts.MaxDelay {
			return a.opts.MaxDelay
		}
	}
	if delay > a.opts.MaxDelay {
		return a.opts.MaxDelay
	}
	return delay
}

func (a *Adapter) isClosed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.closed
}

func (a *Adapter) setIdle() {
	a.mu.Lock()
	a.connecting = false
	a.mu.Unlock()
}

func (a *Adapter) fireNotification(n domain.Notification) {
	a.handlersMu.RLock()
	handlers := a.onNotification
	a.handlersMu.RUnlock()
	for _, h := range handlers {
		h(n)
	}
}

func (a *Adapter) fireConnect() {
	a.handlersMu.RLock()
	handlers := a.onConnect
	a.handlersMu.RUnlock()
	for _, h := range handlers {
		h()
	}
}

func (a *Adapter) fireDisconnect(reason string) {
	a.handlersMu.RLock()
	handlers := a.onDisconnect
	a.handlersMu.RUnlock()
	for _, h := range handlers {
		h(reason)
	}
}

func (a *Adapter) fireConnectError(err error) {
	a.handlersMu.RLock()
	handlers := a.onConnectError
	a.handlersMu.RUnlock()
	for _, h := range handlers {
		h(err)
	}
}

func (a *Adapter) fireReconnect(attempt int) {
	a.handlersMu.RLock()
	handlers := a.onReconnect
	a.handlersMu.RUnlock()
	for _, h := range handlers {
		h(attempt)
	}
}

func (a *Adapter) fireReconnectFailed() {
	a.handlersMu.RLock()
	handlers := a.onReconnectFailed
	a.handlersMu.RUnlock()
	for _, h := range handlers {
		h()
	}
}
