package report

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/clock"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/sse"
)

const (
	// LiveTopic is the hub topic carrying the rendered hours report.
	LiveTopic = "hours-report"
	// LiveEvent is the SSE event name of a report update.
	LiveEvent = "report"

	resubscribeDelay = 2 * time.Second
)

// LiveFeed recomputes the hours report from scratch on every snapshot and
// publishes it to the hub. It holds no state between snapshots.
type LiveFeed struct {
	source       report.SnapshotSource
	hub          *sse.Hub
	employeeRepo employee.EmployeeRepository
	eventRepo    clock.EventRepository
	renderer     Renderer

	mu         sync.Mutex
	lastReadAt time.Time
}

func NewLiveFeed(
	source report.SnapshotSource,
	hub *sse.Hub,
	employeeRepo employee.EmployeeRepository,
	eventRepo clock.EventRepository,
	loc *time.Location,
) *LiveFeed {
	return &LiveFeed{
		source:       source,
		hub:          hub,
		employeeRepo: employeeRepo,
		eventRepo:    eventRepo,
		renderer:     NewRenderer(loc),
	}
}

// Run consumes snapshots until ctx is done, subscribing again whenever the source gives up.
func (f *LiveFeed) Run(ctx context.Context) {
	for {
		snapshots, err := f.source.Watch(ctx)
		if err != nil {
			slog.Error("Snapshot watch failed", "error", err)
		} else {
			for snap := range snapshots {
				f.Publish(snap)
			}
		}

		select {
		case <-ctx.Done():
			slog.Info("Live report feed stopped")
			return
		case <-time.After(resubscribeDelay):
			slog.Warn("Snapshot source closed, subscribing again")
		}
	}
}

// Refresh reloads a snapshot straight from the repositories and publishes it.
func (f *LiveFeed) Refresh(ctx context.Context) error {
	snap, err := LoadSnapshot(ctx, f.employeeRepo, f.eventRepo)
	if err != nil {
		return err
	}
	f.Publish(snap)
	return nil
}

// Publish aggregates one snapshot and pushes the rendered report to subscribers.
// A snapshot read no later than the last published one is dropped, so a slow
// resync cannot replace a newer report.
func (f *LiveFeed) Publish(snap report.Snapshot) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.lastReadAt.IsZero() && !snap.ReadAt.After(f.lastReadAt) {
		slog.Debug("Stale snapshot dropped", "read_at", snap.ReadAt, "last_read_at", f.lastReadAt)
		return false
	}
	f.lastReadAt = snap.ReadAt

	rendered := f.renderer.Render(Aggregate(snap.Employees, snap.Events), snap.ReadAt)
	f.hub.Publish(sse.Event{
		Topic: LiveTopic,
		Event: LiveEvent,
		Data:  rendered,
	})
	slog.Debug("Hours report published",
		"employees", len(snap.Employees),
		"events", len(snap.Events),
		"subscribers", f.hub.SubscriberCount(LiveTopic),
	)
	return true
}

// Subscribe returns a channel of report events, starting with the latest one.
func (f *LiveFeed) Subscribe() (chan sse.Event, func()) {
	return f.hub.Subscribe(LiveTopic)
}
