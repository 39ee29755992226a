package postgresql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	coalesceWindow = 100 * time.Millisecond
	minReconnect   = 500 * time.Millisecond
	maxReconnect   = 30 * time.Second
)

type snapshotSourceImpl struct {
	db *database.DB
}

// NewSnapshotSource returns a source that LISTENs on the change channel and
// reloads the roster and clock log after every notification.
func NewSnapshotSource(db *database.DB) report.SnapshotSource {
	return &snapshotSourceImpl{db: db}
}

// Watch implements report.SnapshotSource.
func (s *snapshotSourceImpl) Watch(ctx context.Context) (<-chan report.Snapshot, error) {
	conn, err := s.listen(ctx)
	if err != nil {
		return nil, err
	}

	out := make(chan report.Snapshot)
	go func() {
		defer close(out)
		backoff := minReconnect

		for {
			if conn != nil {
				err := s.stream(ctx, conn, out)
				conn.Release()
				conn = nil
				if ctx.Err() != nil {
					return
				}
				slog.Warn("Change listener interrupted", "error", err)
				backoff = minReconnect
			}

			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}

			conn, err = s.listen(ctx)
			if err != nil {
				slog.Error("Failed to re-establish change listener", "error", err, "retry_in", backoff)
				backoff = min(backoff*2, maxReconnect)
			}
		}
	}()

	return out, nil
}

// listen acquires a dedicated connection and subscribes it to the change channel.
func (s *snapshotSourceImpl) listen(ctx context.Context) (*pgxpool.Conn, error) {
	conn, err := s.db.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire listener connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{database.ChangeChannel}.Sanitize()); err != nil {
		conn.Release()
		return nil, fmt.Errorf("failed to listen on %s: %w", database.ChangeChannel, err)
	}

	return conn, nil
}

// stream emits one snapshot straight away, then one per burst of notifications.
// It returns when the connection fails or ctx is done.
func (s *snapshotSourceImpl) stream(ctx context.Context, conn *pgxpool.Conn, out chan<- report.Snapshot) error {
	for {
		snap, err := s.load(ctx)
		if err != nil {
			return err
		}

		select {
		case out <- snap:
		case <-ctx.Done():
			return ctx.Err()
		}

		if _, err := conn.Conn().WaitForNotification(ctx); err != nil {
			return err
		}
		if err := drainNotifications(ctx, conn); err != nil {
			return err
		}
	}
}

// drainNotifications swallows notifications arriving within the coalesce window.
func drainNotifications(ctx context.Context, conn *pgxpool.Conn) error {
	for {
		waitCtx, cancel := context.WithTimeout(ctx, coalesceWindow)
		_, err := conn.Conn().WaitForNotification(waitCtx)
		cancel()
		if err == nil {
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil
		}
		return err
	}
}

// load reads the roster and the clock log from one consistent database snapshot.
func (s *snapshotSourceImpl) load(ctx context.Context) (report.Snapshot, error) {
	var snap report.Snapshot
	readAt := time.Now()

	err := WithTransaction(ctx, s.db, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	}, func(txCtx context.Context) error {
		employees, err := NewEmployeeRepository(s.db).List(txCtx)
		if err != nil {
			return err
		}
		events, err := NewEventRepository(s.db).List(txCtx)
		if err != nil {
			return err
		}

		snap = report.Snapshot{
			Employees: employees,
			Events:    events,
			ReadAt:    readAt,
		}
		return nil
	})
	if err != nil {
		return report.Snapshot{}, fmt.Errorf("failed to load snapshot: %w", err)
	}

	return snap, nil
}
