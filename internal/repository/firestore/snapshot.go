package firestore

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/clock"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/report"
)

type snapshotSource struct {
	store *Store
}

// NewSnapshotSource returns a source backed by two realtime listeners, one on
// the roster and one on the time logs.
func NewSnapshotSource(store *Store) report.SnapshotSource {
	return &snapshotSource{store: store}
}

type listenerUpdate struct {
	employees []employee.Employee
	events    []clock.ClockEvent
	err       error
}

// Watch implements report.SnapshotSource. Nothing is emitted until both
// listeners have delivered once; after that every update of either emits a
// combined snapshot. The channel closes when ctx ends or a listener fails.
func (s *snapshotSource) Watch(ctx context.Context) (<-chan report.Snapshot, error) {
	ctx, cancel := context.WithCancel(ctx)

	roster := s.store.employees().Snapshots(ctx)
	logs := s.store.timeLogs().OrderBy("timestamp", firestore.Desc).Snapshots(ctx)

	updates := make(chan listenerUpdate)
	go listenRoster(ctx, roster, updates)
	go listenTimeLogs(ctx, logs, updates)

	out := make(chan report.Snapshot)
	go func() {
		defer close(out)
		defer cancel()

		var (
			employees     []employee.Employee
			events        []clock.ClockEvent
			haveEmployees bool
			haveEvents    bool
		)

		for {
			var update listenerUpdate
			select {
			case <-ctx.Done():
				return
			case update = <-updates:
			}

			if update.err != nil {
				slog.Error("Firestore listener failed", "error", update.err)
				return
			}
			if update.employees != nil {
				employees, haveEmployees = update.employees, true
			}
			if update.events != nil {
				events, haveEvents = update.events, true
			}
			if !haveEmployees || !haveEvents {
				continue
			}

			select {
			case out <- report.Snapshot{Employees: employees, Events: events, ReadAt: time.Now()}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

func listenRoster(ctx context.Context, it *firestore.QuerySnapshotIterator, updates chan<- listenerUpdate) {
	defer it.Stop()
	for {
		qs, err := it.Next()
		var update listenerUpdate
		if err == nil {
			docs, getErr := qs.Documents.GetAll()
			if getErr == nil {
				update.employees, getErr = decodeEmployees(docs)
			}
			err = getErr
		}
		update.err = err

		select {
		case updates <- update:
		case <-ctx.Done():
			return
		}
		if err != nil {
			return
		}
	}
}

func listenTimeLogs(ctx context.Context, it *firestore.QuerySnapshotIterator, updates chan<- listenerUpdate) {
	defer it.Stop()
	for {
		qs, err := it.Next()
		var update listenerUpdate
		if err == nil {
			docs, getErr := qs.Documents.GetAll()
			if getErr == nil {
				update.events, getErr = decodeEvents(docs)
			}
			err = getErr
		}
		update.err = err

		select {
		case updates <- update:
		case <-ctx.Done():
			return
		}
		if err != nil {
			return
		}
	}
}
