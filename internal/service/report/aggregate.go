package report

import (
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/clock"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/report"
)

// Aggregate builds one report per roster entry, in roster order.
// Events whose employee id is not on the roster (for example after a
// deletion) belong to no report.
func Aggregate(employees []employee.Employee, events []clock.ClockEvent) []report.EmployeeReport {
	byEmployee := make(map[string][]clock.ClockEvent, len(employees))
	for _, emp := range employees {
		byEmployee[emp.ID] = nil
	}
	for _, event := range events {
		if _, onRoster := byEmployee[event.EmployeeID]; onRoster {
			byEmployee[event.EmployeeID] = append(byEmployee[event.EmployeeID], event)
		}
	}

	reports := make([]report.EmployeeReport, 0, len(employees))
	for _, emp := range employees {
		own := byEmployee[emp.ID]
		shifts, total := ReconstructShifts(own)
		reports = append(reports, report.EmployeeReport{
			Employee:   emp,
			Events:     sortedEvents(own),
			Shifts:     shifts,
			TotalHours: total,
		})
	}

	return reports
}
