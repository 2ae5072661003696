package report

import "context"

// ReportService defines the interface for report generation
type ReportService interface {
	StatusHistogram(ctx context.Context, req RangeRequest) (StatusHistogramResponse, error)

	WorkedMinutes(ctx context.Context, req WorkedMinutesRequest) (WorkedMinutesResponse, error)

	ApprovedLeaveHours(ctx context.Context, req LeaveHoursRequest) (LeaveHoursResponse, error)

	ApprovedOvertimeHours(ctx context.Context, req OvertimeHoursRequest) (OvertimeHoursResponse, error)

	// EmployeeSummary folds every source into one row per employee
	EmployeeSummary(ctx context.Context, req RangeRequest) (SummaryReport, error)

	// ExportSummary renders EmployeeSummary as an .xlsx workbook
	ExportSummary(ctx context.Context, req RangeRequest) (Export, error)
}
