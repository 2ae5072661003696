package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/overtime"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
)

type OvertimeHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
}

type OvertimeHandlerImpl struct {
	overtimeService overtime.Service
}

func NewOvertimeHandler(overtimeService overtime.Service) OvertimeHandler {
	return &OvertimeHandlerImpl{
		overtimeService: overtimeService,
	}
}

// Submit implements OvertimeHandler.
func (o *OvertimeHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	employeeID, err := middleware.EmployeeID(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req overtime.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Submit overtime decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = employeeID

	app, err := o.overtimeService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Overtime application submitted successfully", app)
}

// List implements OvertimeHandler.
func (o *OvertimeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employeeID, err := middleware.EmployeeID(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	filter := overtime.ApplicationFilter{
		EmployeeID:   scopedEmployee(r, employeeID),
		OvertimeType: queryString(r, "overtime_type"),
		Status:       queryString(r, "status"),
		StartDate:    queryString(r, "start_date"),
		EndDate:      queryString(r, "end_date"),
		Page:         queryInt(r, "page", 1),
		Limit:        queryInt(r, "limit", 20),
		SortOrder:    r.URL.Query().Get("sort_order"),
	}

	result, err := o.overtimeService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get implements OvertimeHandler.
func (o *OvertimeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	employeeID, err := middleware.EmployeeID(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	id, ok := idParam(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid overtime application ID", nil)
		return
	}

	app, err := o.overtimeService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if !canAccess(r, employeeID, app.EmployeeID) {
		response.HandleError(w, overtime.ErrOvertimeApplicationNotFound)
		return
	}

	response.Success(w, app)
}

// Approve implements OvertimeHandler.
func (o *OvertimeHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	req, ok := o.decisionRequest(w, r)
	if !ok {
		return
	}

	app, err := o.overtimeService.Approve(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime application approved successfully", app)
}

// Reject implements OvertimeHandler.
func (o *OvertimeHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	req, ok := o.decisionRequest(w, r)
	if !ok {
		return
	}

	app, err := o.overtimeService.Reject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime application rejected successfully", app)
}

func (o *OvertimeHandlerImpl) decisionRequest(w http.ResponseWriter, r *http.Request) (overtime.DecisionRequest, bool) {
	var req overtime.DecisionRequest

	approverID, err := middleware.EmployeeID(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return req, false
	}

	id, ok := idParam(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid overtime application ID", nil)
		return req, false
	}

	if err := decodeOptional(r, &req); err != nil {
		slog.Error("Overtime decision decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return req, false
	}
	req.ApplicationID = id
	req.ApproverID = approverID

	return req, true
}

// Cancel implements OvertimeHandler.
func (o *OvertimeHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	employeeID, err := middleware.EmployeeID(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	id, ok := idParam(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid overtime application ID", nil)
		return
	}

	var req overtime.CancelRequest
	if err := decodeOptional(r, &req); err != nil {
		slog.Error("Cancel overtime decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ApplicationID = id

	current, err := o.overtimeService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if !canAccess(r, employeeID, current.EmployeeID) {
		response.HandleError(w, overtime.ErrOvertimeApplicationNotFound)
		return
	}

	app, err := o.overtimeService.Cancel(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime application cancelled successfully", app)
}
