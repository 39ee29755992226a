package report

import (
	"bytes"
	"testing"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteWorkbook(t *testing.T) {
	rep := report.HoursReportResponse{
		Employees: []report.EmployeeReportResponse{
			{
				Name:  "Ana",
				Total: "7.50",
				Shifts: []report.ShiftResponse{
					{Date: "2026-03-02", ClockIn: "09:00", ClockOut: "12:00", Hours: "3.00"},
					{Date: "2026-03-02", ClockIn: "13:00", ClockOut: "17:30", Hours: "4.50"},
				},
			},
			{Name: "Luis", Total: "0.00"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, rep))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "Shifts"}, f.GetSheetList())

	summary, err := f.GetRows("Summary")
	require.NoError(t, err)
	require.Len(t, summary, 3)
	assert.Equal(t, []string{"Employee", "Shifts", "Total Hours"}, summary[0])
	assert.Equal(t, []string{"Ana", "2", "7.50"}, summary[1])
	assert.Equal(t, []string{"Luis", "0", "0.00"}, summary[2])

	shifts, err := f.GetRows("Shifts")
	require.NoError(t, err)
	require.Len(t, shifts, 3)
	assert.Equal(t, []string{"Ana", "2026-03-02", "13:00", "17:30", "4.50"}, shifts[2])
}
