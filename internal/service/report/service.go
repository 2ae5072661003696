package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/overtime"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/clock"
	"github.com/google/uuid"
)

type ReportServiceImpl struct {
	reportRepo   report.ReportRepository
	recordRepo   attendance.RecordRepository
	leaveRepo    leave.ApplicationRepository
	overtimeRepo overtime.ApplicationRepository
	clock        clock.Clock
}

func NewReportService(
	reportRepo report.ReportRepository,
	recordRepo attendance.RecordRepository,
	leaveRepo leave.ApplicationRepository,
	overtimeRepo overtime.ApplicationRepository,
	clk clock.Clock,
) report.ReportService {
	return &ReportServiceImpl{
		reportRepo:   reportRepo,
		recordRepo:   recordRepo,
		leaveRepo:    leaveRepo,
		overtimeRepo: overtimeRepo,
		clock:        clk,
	}
}

// StatusHistogram implements report.ReportService.
func (s *ReportServiceImpl) StatusHistogram(ctx context.Context, req report.RangeRequest) (report.StatusHistogramResponse, error) {
	if err := req.Validate(); err != nil {
		return report.StatusHistogramResponse{}, err
	}

	counts, err := s.reportRepo.CountByStatus(ctx, req.EmployeeID, req.From, req.To)
	if err != nil {
		return report.StatusHistogramResponse{}, fmt.Errorf("failed to count records by status: %w", err)
	}

	resp := report.StatusHistogramResponse{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Counts:    make([]report.StatusCount, 0, len(attendance.StatusValues)),
	}
	for _, v := range attendance.StatusValues {
		status := attendance.Status(v)
		resp.Counts = append(resp.Counts, report.StatusCount{
			Status: v,
			Label:  status.Label(),
			Color:  status.Color(),
			Count:  counts[v],
		})
		resp.Total += counts[v]
	}
	return resp, nil
}

// WorkedMinutes implements report.ReportService.
func (s *ReportServiceImpl) WorkedMinutes(ctx context.Context, req report.WorkedMinutesRequest) (report.WorkedMinutesResponse, error) {
	if err := req.Validate(); err != nil {
		return report.WorkedMinutesResponse{}, err
	}

	records, err := s.recordRepo.ListBetween(ctx, req.EmployeeID, req.From, req.To)
	if err != nil {
		return report.WorkedMinutesResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	minutes, skipped := report.WorkedMinutes(records)
	employeeID := *req.EmployeeID
	return report.WorkedMinutesResponse{
		EmployeeID:     employeeID,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		TotalMinutes:   minutes[employeeID],
		SkippedRecords: skipped[employeeID],
	}, nil
}

// ApprovedLeaveHours implements report.ReportService.
func (s *ReportServiceImpl) ApprovedLeaveHours(ctx context.Context, req report.LeaveHoursRequest) (report.LeaveHoursResponse, error) {
	if err := req.Validate(); err != nil {
		return report.LeaveHoursResponse{}, err
	}

	yearStart := time.Date(req.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
	apps, err := s.leaveRepo.ListApprovedBetween(ctx, &req.EmployeeID, yearStart, yearStart.AddDate(1, 0, 0))
	if err != nil {
		return report.LeaveHoursResponse{}, fmt.Errorf("failed to list approved leave: %w", err)
	}

	return report.LeaveHoursResponse{
		EmployeeID: req.EmployeeID,
		LeaveType:  req.LeaveType,
		Year:       req.Year,
		Hours:      report.ApprovedLeaveHours(apps, leave.Type(req.LeaveType), req.Year),
	}, nil
}

// ApprovedOvertimeHours implements report.ReportService.
func (s *ReportServiceImpl) ApprovedOvertimeHours(ctx context.Context, req report.OvertimeHoursRequest) (report.OvertimeHoursResponse, error) {
	if err := req.Validate(); err != nil {
		return report.OvertimeHoursResponse{}, err
	}

	apps, err := s.overtimeRepo.ListApprovedBetween(ctx, req.EmployeeID, req.From, req.To)
	if err != nil {
		return report.OvertimeHoursResponse{}, fmt.Errorf("failed to list approved overtime: %w", err)
	}

	hours, weighted := report.ApprovedOvertimeHours(apps, req.From, req.To)
	return report.OvertimeHoursResponse{
		EmployeeID:    *req.EmployeeID,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Hours:         hours,
		WeightedHours: weighted,
	}, nil
}

// EmployeeSummary implements report.ReportService.
func (s *ReportServiceImpl) EmployeeSummary(ctx context.Context, req report.RangeRequest) (report.SummaryReport, error) {
	if err := req.Validate(); err != nil {
		return report.SummaryReport{}, err
	}

	records, err := s.recordRepo.ListBetween(ctx, req.EmployeeID, req.From, req.To)
	if err != nil {
		return report.SummaryReport{}, fmt.Errorf("failed to list attendance records: %w", err)
	}
	leaves, err := s.leaveRepo.ListApprovedBetween(ctx, req.EmployeeID, req.From, req.To.AddDate(0, 0, 1))
	if err != nil {
		return report.SummaryReport{}, fmt.Errorf("failed to list approved leave: %w", err)
	}
	overtimes, err := s.overtimeRepo.ListApprovedBetween(ctx, req.EmployeeID, req.From, req.To)
	if err != nil {
		return report.SummaryReport{}, fmt.Errorf("failed to list approved overtime: %w", err)
	}

	summary := report.SummaryReport{
		ReportID:    uuid.NewString(),
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		GeneratedAt: s.clock.Now().Format(time.RFC3339),
		Employees:   report.Summarize(records, leaves, overtimes, req.From, req.To),
	}

	slog.Info("employee summary generated",
		"report_id", summary.ReportID,
		"start_date", summary.StartDate,
		"end_date", summary.EndDate,
		"employees", len(summary.Employees),
	)
	return summary, nil
}

// ExportSummary implements report.ReportService.
func (s *ReportServiceImpl) ExportSummary(ctx context.Context, req report.RangeRequest) (report.Export, error) {
	summary, err := s.EmployeeSummary(ctx, req)
	if err != nil {
		return report.Export{}, err
	}

	content, err := renderSummary(summary)
	if err != nil {
		slog.Error("failed to render summary workbook", "report_id", summary.ReportID, "error", err)
		return report.Export{}, fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}

	return report.Export{
		FileName:    fmt.Sprintf("attendance-summary_%s_%s.xlsx", summary.StartDate, summary.EndDate),
		ContentType: xlsxContentType,
		Content:     content,
	}, nil
}
