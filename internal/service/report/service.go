package report

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/clock"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/report"
)

type ReportServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	eventRepo    clock.EventRepository
	renderer     Renderer
	now          func() time.Time
}

func NewReportService(employeeRepo employee.EmployeeRepository, eventRepo clock.EventRepository, loc *time.Location) report.ReportService {
	return &ReportServiceImpl{
		employeeRepo: employeeRepo,
		eventRepo:    eventRepo,
		renderer:     NewRenderer(loc),
		now:          time.Now,
	}
}

// GetHoursReport implements report.ReportService.
func (s *ReportServiceImpl) GetHoursReport(ctx context.Context) (report.HoursReportResponse, error) {
	snap, err := LoadSnapshot(ctx, s.employeeRepo, s.eventRepo)
	if err != nil {
		return report.HoursReportResponse{}, err
	}

	return s.renderer.Render(Aggregate(snap.Employees, snap.Events), s.now()), nil
}

// ExportHoursReport implements report.ReportService.
func (s *ReportServiceImpl) ExportHoursReport(ctx context.Context, w io.Writer) error {
	rep, err := s.GetHoursReport(ctx)
	if err != nil {
		return err
	}
	return WriteWorkbook(w, rep)
}

// LoadSnapshot reads the roster and the clock log from the repositories.
// The two reads are separate, so a write landing between them shows up in
// the next snapshot rather than this one. ReadAt is taken before the reads so
// a snapshot never claims to be newer than the data it holds.
func LoadSnapshot(ctx context.Context, employeeRepo employee.EmployeeRepository, eventRepo clock.EventRepository) (report.Snapshot, error) {
	readAt := time.Now()

	employees, err := employeeRepo.List(ctx)
	if err != nil {
		return report.Snapshot{}, fmt.Errorf("failed to list employees: %w", err)
	}

	events, err := eventRepo.List(ctx)
	if err != nil {
		return report.Snapshot{}, fmt.Errorf("failed to list clock events: %w", err)
	}

	return report.Snapshot{
		Employees: employees,
		Events:    events,
		ReadAt:    readAt,
	}, nil
}
