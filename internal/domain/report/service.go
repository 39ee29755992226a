package report

import (
	"context"
	"io"
)

// ReportService builds the worked-hours report from the current roster and clock log
type ReportService interface {
	// GetHoursReport returns one rendered summary per roster entry, in roster order
	GetHoursReport(ctx context.Context) (HoursReportResponse, error)

	// ExportHoursReport writes the same report as an XLSX workbook
	ExportHoursReport(ctx context.Context, w io.Writer) error
}

// SnapshotSource delivers full snapshots of the roster and clock log whenever either changes.
// The channel is closed once ctx is done.
type SnapshotSource interface {
	Watch(ctx context.Context) (<-chan Snapshot, error)
}
