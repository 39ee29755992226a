// Package memory keeps the roster and the clock log in process memory.
// It backs STORE_DRIVER=memory for local runs and the handler tests.
package memory

import (
	"sync"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/clock"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/google/uuid"
)

type Option func(*Store)

// WithClock replaces the clock used to stamp events.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

type Store struct {
	mu        sync.RWMutex
	employees map[string]employee.Employee
	events    []clock.ClockEvent
	lastStamp time.Time
	now       func() time.Time
	watchers  map[chan struct{}]struct{}
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		employees: make(map[string]employee.Employee),
		now:       time.Now,
		watchers:  make(map[chan struct{}]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// stamp returns a strictly increasing timestamp. Callers hold s.mu.
func (s *Store) stamp() time.Time {
	ts := s.now()
	if !ts.After(s.lastStamp) {
		ts = s.lastStamp.Add(time.Nanosecond)
	}
	s.lastStamp = ts
	return ts
}

// changed wakes every watcher. Callers hold s.mu.
func (s *Store) changed() {
	for ch := range s.watchers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
