package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	Patch(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.Service
}

func NewAttendanceHandler(attendanceService attendance.Service) AttendanceHandler {
	return &AttendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// CheckIn implements AttendanceHandler.
func (a *AttendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	employeeID, err := middleware.EmployeeID(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req attendance.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CheckIn decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = employeeID

	record, err := a.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in successfully", record)
}

// CheckOut implements AttendanceHandler.
func (a *AttendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	employeeID, err := middleware.EmployeeID(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req attendance.CheckOutRequest
	if err := decodeOptional(r, &req); err != nil {
		slog.Error("CheckOut decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = employeeID

	record, err := a.attendanceService.CheckOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out successfully", record)
}

// Patch implements AttendanceHandler.
func (a *AttendanceHandlerImpl) Patch(w http.ResponseWriter, r *http.Request) {
	var req attendance.PatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Patch decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	record, err := a.attendanceService.Patch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance record patched successfully", record)
}

// List implements AttendanceHandler.
func (a *AttendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employeeID, err := middleware.EmployeeID(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	filter := attendance.RecordFilter{
		EmployeeID: scopedEmployee(r, employeeID),
		StartDate:  queryString(r, "start_date"),
		EndDate:    queryString(r, "end_date"),
		Status:     queryString(r, "status"),
		Page:       queryInt(r, "page", 1),
		Limit:      queryInt(r, "limit", 20),
		SortBy:     r.URL.Query().Get("sort_by"),
		SortOrder:  r.URL.Query().Get("sort_order"),
	}

	result, err := a.attendanceService.ListRecords(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get implements AttendanceHandler.
func (a *AttendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	employeeID, err := middleware.EmployeeID(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	id, ok := idParam(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid attendance record ID", nil)
		return
	}

	record, err := a.attendanceService.GetRecord(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if !canAccess(r, employeeID, record.EmployeeID) {
		response.HandleError(w, attendance.ErrRecordNotFound)
		return
	}

	response.Success(w, record)
}
