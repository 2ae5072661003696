package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	StatusHistogram(w http.ResponseWriter, r *http.Request)
	WorkedMinutes(w http.ResponseWriter, r *http.Request)
	LeaveHours(w http.ResponseWriter, r *http.Request)
	OvertimeHours(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &ReportHandlerImpl{
		reportService: reportService,
	}
}

func rangeRequest(r *http.Request) report.RangeRequest {
	return report.RangeRequest{
		EmployeeID: queryInt64(r, "employee_id"),
		StartDate:  r.URL.Query().Get("start_date"),
		EndDate:    r.URL.Query().Get("end_date"),
	}
}

// StatusHistogram implements ReportHandler.
func (h *ReportHandlerImpl) StatusHistogram(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.StatusHistogram(r.Context(), rangeRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// WorkedMinutes implements ReportHandler.
func (h *ReportHandlerImpl) WorkedMinutes(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.WorkedMinutes(r.Context(), report.WorkedMinutesRequest{RangeRequest: rangeRequest(r)})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// LeaveHours implements ReportHandler.
func (h *ReportHandlerImpl) LeaveHours(w http.ResponseWriter, r *http.Request) {
	req := report.LeaveHoursRequest{
		LeaveType: r.URL.Query().Get("leave_type"),
	}
	if id := queryInt64(r, "employee_id"); id != nil {
		req.EmployeeID = *id
	}
	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			response.BadRequest(w, "year must be a number", nil)
			return
		}
		req.Year = year
	}

	result, err := h.reportService.ApprovedLeaveHours(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// OvertimeHours implements ReportHandler.
func (h *ReportHandlerImpl) OvertimeHours(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.ApprovedOvertimeHours(r.Context(), report.OvertimeHoursRequest{RangeRequest: rangeRequest(r)})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Summary implements ReportHandler.
func (h *ReportHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.EmployeeSummary(r.Context(), rangeRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Export implements ReportHandler.
func (h *ReportHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	export, err := h.reportService.ExportSummary(r.Context(), rangeRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, export.FileName, export.ContentType, export.Content)
}
