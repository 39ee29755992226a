package report

import (
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/report"
	"github.com/shopspring/decimal"
)

const (
	dateLayout      = "2006-01-02"
	timeLayout      = "15:04"
	timestampLayout = "2006-01-02 15:04:05"
)

// Renderer formats reports as local wall-clock values.
type Renderer struct {
	loc *time.Location
}

func NewRenderer(loc *time.Location) Renderer {
	if loc == nil {
		loc = time.Local
	}
	return Renderer{loc: loc}
}

// FormatHours renders an hour amount with two decimals.
func FormatHours(hours float64) string {
	return decimal.NewFromFloat(hours).StringFixed(2)
}

func (r Renderer) Render(reports []report.EmployeeReport, generatedAt time.Time) report.HoursReportResponse {
	employees := make([]report.EmployeeReportResponse, 0, len(reports))
	for _, rep := range reports {
		employees = append(employees, r.renderEmployee(rep))
	}

	return report.HoursReportResponse{
		GeneratedAt: generatedAt.In(r.loc).Format(time.RFC3339),
		Timezone:    r.loc.String(),
		Employees:   employees,
	}
}

func (r Renderer) renderEmployee(rep report.EmployeeReport) report.EmployeeReportResponse {
	shifts := make([]report.ShiftResponse, 0, len(rep.Shifts))
	for _, s := range rep.Shifts {
		shifts = append(shifts, r.renderShift(s))
	}

	// newest first, like the raw log view
	events := make([]report.EventResponse, 0, len(rep.Events))
	for i := len(rep.Events) - 1; i >= 0; i-- {
		e := rep.Events[i]
		ts := ""
		if !e.Timestamp.IsZero() {
			ts = e.Timestamp.In(r.loc).Format(timestampLayout)
		}
		events = append(events, report.EventResponse{
			ID:           e.ID,
			EmployeeName: e.EmployeeName,
			Type:         string(e.Type),
			Timestamp:    ts,
		})
	}

	return report.EmployeeReportResponse{
		EmployeeID: rep.Employee.ID,
		Name:       rep.Employee.Name,
		TotalHours: rep.TotalHours,
		Total:      FormatHours(rep.TotalHours),
		Shifts:     shifts,
		Events:     events,
	}
}

func (r Renderer) renderShift(s report.Shift) report.ShiftResponse {
	in := s.ClockIn.In(r.loc)
	return report.ShiftResponse{
		Date:          in.Format(dateLayout),
		ClockIn:       in.Format(timeLayout),
		ClockOut:      s.ClockOut.In(r.loc).Format(timeLayout),
		DurationHours: s.DurationHours,
		Hours:         FormatHours(s.DurationHours),
	}
}
