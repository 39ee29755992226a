// Package repository opens the roster and clock-log store selected by STORE_DRIVER.
package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/config"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/clock"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/repository/firestore"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/repository/memory"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/repository/postgresql"
)

// Stores bundles the repositories of one backend.
type Stores struct {
	Employees employee.EmployeeRepository
	Events    clock.EventRepository
	Snapshots report.SnapshotSource

	close func()
}

// Close releases the backend connection.
func (s *Stores) Close() {
	if s.close != nil {
		s.close()
	}
}

// Options tune Open.
type Options struct {
	// Migrate applies pending Postgres migrations before the store is used.
	Migrate bool
}

// Open connects to the backend named by cfg.App.StoreDriver.
func Open(ctx context.Context, cfg *config.Config, opts Options) (*Stores, error) {
	switch cfg.App.StoreDriver {
	case config.StoreDriverPostgres:
		dsn := cfg.DatabaseURL()
		if opts.Migrate {
			if err := database.MigrateUp(dsn); err != nil {
				return nil, fmt.Errorf("failed to migrate database: %w", err)
			}
		}

		db, err := database.NewPostgreSQLDB(ctx, dsn)
		if err != nil {
			return nil, err
		}
		slog.Info("Connected to PostgreSQL", "host", cfg.Database.Host, "database", cfg.Database.Name)

		return &Stores{
			Employees: postgresql.NewEmployeeRepository(db),
			Events:    postgresql.NewEventRepository(db),
			Snapshots: postgresql.NewSnapshotSource(db),
			close:     db.Close,
		}, nil

	case config.StoreDriverFirestore:
		store, err := firestore.NewStore(ctx, firestore.Config{
			ProjectID:       cfg.Firestore.ProjectID,
			CredentialsFile: cfg.Firestore.CredentialsFile,
			AppID:           cfg.Firestore.AppID,
		})
		if err != nil {
			return nil, err
		}
		slog.Info("Connected to Firestore", "project", cfg.Firestore.ProjectID, "app_id", cfg.Firestore.AppID)

		return &Stores{
			Employees: firestore.NewEmployeeRepository(store),
			Events:    firestore.NewEventRepository(store),
			Snapshots: firestore.NewSnapshotSource(store),
			close: func() {
				if err := store.Close(); err != nil {
					slog.Error("Failed to close firestore client", "error", err)
				}
			},
		}, nil

	case config.StoreDriverMemory:
		slog.Warn("Using in-memory store, data is lost on restart")
		store := memory.NewStore()
		return &Stores{
			Employees: memory.NewEmployeeRepository(store),
			Events:    memory.NewEventRepository(store),
			Snapshots: memory.NewSnapshotSource(store),
		}, nil
	}

	return nil, fmt.Errorf("unknown store driver %q", cfg.App.StoreDriver)
}
