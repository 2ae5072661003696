package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	Balance(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.Service
}

func NewLeaveHandler(leaveService leave.Service) LeaveHandler {
	return &LeaveHandlerImpl{
		leaveService: leaveService,
	}
}

// Submit implements LeaveHandler.
func (l *LeaveHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	employeeID, err := middleware.EmployeeID(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req leave.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Submit leave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = employeeID

	app, err := l.leaveService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave application submitted successfully", app)
}

// List implements LeaveHandler.
func (l *LeaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employeeID, err := middleware.EmployeeID(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	filter := leave.ApplicationFilter{
		EmployeeID: scopedEmployee(r, employeeID),
		LeaveType:  queryString(r, "leave_type"),
		Status:     queryString(r, "status"),
		StartDate:  queryString(r, "start_date"),
		EndDate:    queryString(r, "end_date"),
		Page:       queryInt(r, "page", 1),
		Limit:      queryInt(r, "limit", 20),
		SortBy:     r.URL.Query().Get("sort_by"),
		SortOrder:  r.URL.Query().Get("sort_order"),
	}

	result, err := l.leaveService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get implements LeaveHandler.
func (l *LeaveHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	employeeID, err := middleware.EmployeeID(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	id, ok := idParam(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid leave application ID", nil)
		return
	}

	app, err := l.leaveService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if !canAccess(r, employeeID, app.EmployeeID) {
		response.HandleError(w, leave.ErrLeaveApplicationNotFound)
		return
	}

	response.Success(w, app)
}

// Approve implements LeaveHandler.
func (l *LeaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	l.decide(w, r, true)
}

// Reject implements LeaveHandler.
func (l *LeaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	l.decide(w, r, false)
}

func (l *LeaveHandlerImpl) decide(w http.ResponseWriter, r *http.Request, approve bool) {
	approverID, err := middleware.EmployeeID(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	id, ok := idParam(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid leave application ID", nil)
		return
	}

	var req leave.DecisionRequest
	if err := decodeOptional(r, &req); err != nil {
		slog.Error("Leave decision decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ApplicationID = id
	req.ApproverID = approverID

	if approve {
		app, err := l.leaveService.Approve(r.Context(), req)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.SuccessWithMessage(w, "Leave application approved successfully", app)
		return
	}

	app, err := l.leaveService.Reject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave application rejected successfully", app)
}

// Cancel implements LeaveHandler.
func (l *LeaveHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	employeeID, err := middleware.EmployeeID(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	id, ok := idParam(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid leave application ID", nil)
		return
	}

	var req leave.CancelRequest
	if err := decodeOptional(r, &req); err != nil {
		slog.Error("Cancel leave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ApplicationID = id

	current, err := l.leaveService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if !canAccess(r, employeeID, current.EmployeeID) {
		response.HandleError(w, leave.ErrLeaveApplicationNotFound)
		return
	}

	app, err := l.leaveService.Cancel(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave application cancelled successfully", app)
}

// Balance implements LeaveHandler.
func (l *LeaveHandlerImpl) Balance(w http.ResponseWriter, r *http.Request) {
	employeeID, err := middleware.EmployeeID(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	req := leave.BalanceRequest{
		EmployeeID: employeeID,
		LeaveType:  r.URL.Query().Get("leave_type"),
		Year:       time.Now().Year(),
	}
	if target := scopedEmployee(r, employeeID); target != nil {
		req.EmployeeID = *target
	}
	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			response.BadRequest(w, "year must be a number", nil)
			return
		}
		req.Year = year
	}

	balance, err := l.leaveService.Balance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balance)
}
