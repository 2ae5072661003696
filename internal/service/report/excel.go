package report

import (
	"bytes"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	summarySheet    = "Summary"
)

// renderSummary writes one row per employee: identity, per-status day counts,
// then worked, leave and overtime totals.
func renderSummary(summary report.SummaryReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	title := "Attendance summary " + summary.StartDate + " to " + summary.EndDate
	if err := f.SetCellValue(summarySheet, "A1", title); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(summarySheet, "A2", "Report "+summary.ReportID+", generated "+summary.GeneratedAt); err != nil {
		return nil, err
	}

	headers := []string{"Employee ID", "Days"}
	for _, s := range attendance.StatusValues {
		headers = append(headers, attendance.Status(s).Label())
	}
	headers = append(headers, "Worked minutes", "Leave hours", "Overtime hours", "Weighted overtime hours")

	const headerRow = 4
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, headerRow)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(summarySheet, cell, h); err != nil {
			return nil, err
		}
	}
	first, _ := excelize.CoordinatesToCellName(1, headerRow)
	last, _ := excelize.CoordinatesToCellName(len(headers), headerRow)
	if err := f.SetCellStyle(summarySheet, first, last, headerStyle); err != nil {
		return nil, err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	if err := f.SetColWidth(summarySheet, "A", lastCol, 16); err != nil {
		return nil, err
	}

	for r, emp := range summary.Employees {
		values := []interface{}{emp.EmployeeID, emp.Days}
		for _, s := range attendance.StatusValues {
			values = append(values, emp.StatusCounts[s])
		}
		values = append(values, emp.WorkedMinutes, emp.LeaveHours, emp.OvertimeHours, emp.WeightedOvertimeHours)

		for c, v := range values {
			cell, err := excelize.CoordinatesToCellName(c+1, headerRow+1+r)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(summarySheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf := new(bytes.Buffer)
	if _, err := f.WriteTo(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
