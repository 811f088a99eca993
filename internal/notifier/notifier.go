// Package notifier provides the transient toast service. Any layer can raise
// a toast without holding a reference to the presentation shell.
package notifier

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sellerdash/sellertray/internal/domain"
	"github.com/sellerdash/sellertray/internal/ports"
)

// DefaultMaxPending bounds the toast queue. When full, the oldest pending
// toast is dropped so a burst never grows memory without bound.
const DefaultMaxPending = 20

// Toast is a transient message raised for the user.
type Toast struct {
	ID        string
	Level     domain.Type
	Title     string
	Message   string
	CreatedAt time.Time
}

// Service queues toasts and fans them out to subscribers. It implements
// ports.Toaster.
type Service struct {
	mu         sync.Mutex
	pending    []Toast
	maxPending int
	nextSub    int
	subs       map[int]func(Toast)
	now        func() time.Time
}

var _ ports.Toaster = (*Service)(nil)

// Option configures a Service.
type Option func(*Service)

// WithMaxPending overrides the pending-queue bound.
func WithMaxPending(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxPending = n
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New creates a toast service.
func New(opts ...Option) *Service {
	s := &Service{
		maxPending: DefaultMaxPending,
		subs:       make(map[int]func(Toast)),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Notify raises a toast. Invalid levels degrade to info rather than being
// dropped; a toast the user cannot categorize is still worth showing.
func (s *Service) Notify(level domain.Type, title, message string) {
	if !level.IsValid() {
		level = domain.TypeInfo
	}
	toast := Toast{
		ID:        uuid.NewString(),
		Level:     level,
		Title:     title,
		Message:   message,
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	s.pending = append(s.pending, toast)
	if len(s.pending) > s.maxPending {
		s.pending = s.pending[len(s.pending)-s.maxPending:]
	}
	subs := make([]func(Toast), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(toast)
	}
}

// Subscribe registers a toast handler and returns an unsubscribe function.
func (s *Service) Subscribe(fn func(Toast)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Drain returns all pending toasts and clears the queue. Used by the shell
// to pick up toasts raised before it subscribed.
func (s *Service) Drain() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	drained := s.pending
	s.pending = nil
	return drained
}

// Pending returns the number of queued toasts.
func (s *Service) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
