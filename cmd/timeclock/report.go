package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/repository"
	reportService "github.com/cmlabs-hris/timeclock-backend-go/internal/service/report"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("28")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	nameStyle   = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the worked-hours report from the configured store",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		loc, err := cfg.Location()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		ctx := context.Background()
		stores, err := repository.Open(ctx, cfg, repository.Options{})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
			os.Exit(1)
		}
		defer stores.Close()

		svc := reportService.NewReportService(stores.Employees, stores.Events, loc)

		if path, _ := cmd.Flags().GetString("export"); path != "" {
			if err := exportReport(ctx, svc, path); err != nil {
				fmt.Fprintf(os.Stderr, "Error exporting report: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Report written to %s\n", path)
			return
		}

		resp, err := svc.GetHoursReport(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error building report: %v\n", err)
			os.Exit(1)
		}

		withEvents, _ := cmd.Flags().GetBool("events")
		fmt.Println(renderReport(resp, withEvents))
	},
}

func exportReport(ctx context.Context, svc report.ReportService, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := svc.ExportHoursReport(ctx, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// renderReport prints one block per employee: a title line and a shift table.
func renderReport(resp report.HoursReportResponse, withEvents bool) string {
	if len(resp.Employees) == 0 {
		return dimStyle.Render("No employees registered.")
	}

	var b strings.Builder
	b.WriteString(dimStyle.Render(fmt.Sprintf("Generated %s (%s)", resp.GeneratedAt, resp.Timezone)))
	b.WriteString("\n\n")

	for i, emp := range resp.Employees {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(nameStyle.Render(emp.Name))
		b.WriteString(fmt.Sprintf("  total %s h\n", emp.Total))

		if len(emp.Shifts) == 0 {
			b.WriteString(dimStyle.Render("  no completed shifts"))
			b.WriteString("\n")
		} else {
			b.WriteString(shiftTable(emp.Shifts))
			b.WriteString("\n")
		}

		if withEvents && len(emp.Events) > 0 {
			b.WriteString(eventTable(emp.Events))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func shiftTable(shifts []report.ShiftResponse) string {
	rows := make([][]string, 0, len(shifts))
	for _, s := range shifts {
		rows = append(rows, []string{s.Date, s.ClockIn, s.ClockOut, s.Hours})
	}
	return newTable([]string{"Date", "In", "Out", "Hours"}, rows)
}

func eventTable(events []report.EventResponse) string {
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, []string{e.Timestamp, e.Type, e.EmployeeName})
	}
	return newTable([]string{"Timestamp", "Type", "Recorded as"}, rows)
}

func newTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.Render()
}
