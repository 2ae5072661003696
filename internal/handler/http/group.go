package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/group"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
)

type GroupHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)

	AddMembers(w http.ResponseWriter, r *http.Request)
	RemoveMember(w http.ResponseWriter, r *http.Request)
	Resolve(w http.ResponseWriter, r *http.Request)

	CreateShift(w http.ResponseWriter, r *http.Request)
	ListShifts(w http.ResponseWriter, r *http.Request)
	GetShift(w http.ResponseWriter, r *http.Request)
	UpdateShift(w http.ResponseWriter, r *http.Request)
	DeleteShift(w http.ResponseWriter, r *http.Request)
}

type GroupHandlerImpl struct {
	groupService group.Service
}

func NewGroupHandler(groupService group.Service) GroupHandler {
	return &GroupHandlerImpl{
		groupService: groupService,
	}
}

// Create implements GroupHandler.
func (g *GroupHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req group.CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create group decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := g.groupService.CreateGroup(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance group created successfully", created)
}

// List implements GroupHandler.
func (g *GroupHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	groups, err := g.groupService.ListGroups(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, groups)
}

// Get implements GroupHandler.
func (g *GroupHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid group ID", nil)
		return
	}

	found, err := g.groupService.GetGroup(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// Update implements GroupHandler.
func (g *GroupHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid group ID", nil)
		return
	}

	var req group.UpdateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update group decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	updated, err := g.groupService.UpdateGroup(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance group updated successfully", updated)
}

// Delete implements GroupHandler.
func (g *GroupHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid group ID", nil)
		return
	}

	if err := g.groupService.DeleteGroup(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance group deleted successfully", nil)
}

// AddMembers implements GroupHandler.
func (g *GroupHandlerImpl) AddMembers(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid group ID", nil)
		return
	}

	var req group.AddMembersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Add members decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.GroupID = id

	updated, err := g.groupService.AddMembers(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Members added successfully", updated)
}

// RemoveMember implements GroupHandler.
func (g *GroupHandlerImpl) RemoveMember(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid group ID", nil)
		return
	}
	employeeID, ok := idParam(r, "employeeID")
	if !ok {
		response.BadRequest(w, "Invalid employee ID", nil)
		return
	}

	req := group.RemoveMemberRequest{
		GroupID:    id,
		EmployeeID: employeeID,
		Version:    queryInt(r, "version", 0),
	}

	updated, err := g.groupService.RemoveMember(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Member removed successfully", updated)
}

// Resolve implements GroupHandler.
func (g *GroupHandlerImpl) Resolve(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := idParam(r, "employeeID")
	if !ok {
		response.BadRequest(w, "Invalid employee ID", nil)
		return
	}

	resolved, err := g.groupService.ResolveGroupForEmployee(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if resolved == nil {
		response.HandleError(w, group.ErrNoGroupForEmployee)
		return
	}

	response.Success(w, group.NewGroupResponse(*resolved))
}

// CreateShift implements GroupHandler.
func (g *GroupHandlerImpl) CreateShift(w http.ResponseWriter, r *http.Request) {
	groupID, ok := idParam(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid group ID", nil)
		return
	}

	var req group.CreateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create shift decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.GroupID = groupID

	shift, err := g.groupService.CreateShift(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Work shift created successfully", shift)
}

// ListShifts implements GroupHandler.
func (g *GroupHandlerImpl) ListShifts(w http.ResponseWriter, r *http.Request) {
	groupID, ok := idParam(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid group ID", nil)
		return
	}

	shifts, err := g.groupService.ListShifts(r.Context(), groupID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, shifts)
}

// GetShift implements GroupHandler.
func (g *GroupHandlerImpl) GetShift(w http.ResponseWriter, r *http.Request) {
	shiftID, ok := idParam(r, "shiftID")
	if !ok {
		response.BadRequest(w, "Invalid shift ID", nil)
		return
	}

	shift, err := g.groupService.GetShift(r.Context(), shiftID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, shift)
}

// UpdateShift implements GroupHandler.
func (g *GroupHandlerImpl) UpdateShift(w http.ResponseWriter, r *http.Request) {
	groupID, ok := idParam(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid group ID", nil)
		return
	}
	shiftID, ok := idParam(r, "shiftID")
	if !ok {
		response.BadRequest(w, "Invalid shift ID", nil)
		return
	}

	var req group.UpdateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update shift decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = shiftID
	req.GroupID = groupID

	shift, err := g.groupService.UpdateShift(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work shift updated successfully", shift)
}

// DeleteShift implements GroupHandler.
func (g *GroupHandlerImpl) DeleteShift(w http.ResponseWriter, r *http.Request) {
	shiftID, ok := idParam(r, "shiftID")
	if !ok {
		response.BadRequest(w, "Invalid shift ID", nil)
		return
	}

	if err := g.groupService.DeleteShift(r.Context(), shiftID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work shift deleted successfully", nil)
}
