package memory

import (
	"context"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/report"
)

type snapshotSource struct {
	store *Store
}

func NewSnapshotSource(store *Store) report.SnapshotSource {
	return &snapshotSource{store: store}
}

// Watch implements report.SnapshotSource.
func (s *snapshotSource) Watch(ctx context.Context) (<-chan report.Snapshot, error) {
	wake := make(chan struct{}, 1)
	wake <- struct{}{}

	s.store.mu.Lock()
	s.store.watchers[wake] = struct{}{}
	s.store.mu.Unlock()

	out := make(chan report.Snapshot)
	go func() {
		defer close(out)
		defer func() {
			s.store.mu.Lock()
			delete(s.store.watchers, wake)
			s.store.mu.Unlock()
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case <-wake:
			}

			snap := s.store.snapshot()
			select {
			case out <- snap:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

func (s *Store) snapshot() report.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return report.Snapshot{
		Employees: s.rosterLocked(),
		Events:    s.eventsLocked(),
		ReadAt:    time.Now(),
	}
}
