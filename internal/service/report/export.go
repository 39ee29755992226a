package report

import (
	"fmt"
	"io"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	shiftsSheet  = "Shifts"
)

// WriteWorkbook writes a rendered report as an XLSX workbook with a
// per-employee summary sheet and a flat sheet of every shift.
func WriteWorkbook(w io.Writer, rep report.HoursReportResponse) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(shiftsSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	if err := setRow(f, summarySheet, 1, "Employee", "Shifts", "Total Hours"); err != nil {
		return err
	}
	for i, emp := range rep.Employees {
		if err := setRow(f, summarySheet, i+2, emp.Name, len(emp.Shifts), emp.Total); err != nil {
			return err
		}
	}

	if err := setRow(f, shiftsSheet, 1, "Employee", "Date", "Clock In", "Clock Out", "Hours"); err != nil {
		return err
	}
	row := 2
	for _, emp := range rep.Employees {
		for _, s := range emp.Shifts {
			if err := setRow(f, shiftsSheet, row, emp.Name, s.Date, s.ClockIn, s.ClockOut, s.Hours); err != nil {
				return err
			}
			row++
		}
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values ...interface{}) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("failed to set cell %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}
