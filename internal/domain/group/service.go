package group

import "context"

type Service interface {
	CreateGroup(ctx context.Context, req CreateGroupRequest) (GroupResponse, error)
	UpdateGroup(ctx context.Context, req UpdateGroupRequest) (GroupResponse, error)
	GetGroup(ctx context.Context, id int64) (GroupResponse, error)
	ListGroups(ctx context.Context) ([]GroupResponse, error)
	DeleteGroup(ctx context.Context, id int64) error
	AddMembers(ctx context.Context, req AddMembersRequest) (GroupResponse, error)
	RemoveMember(ctx context.Context, req RemoveMemberRequest) (GroupResponse, error)

	ResolveGroupForEmployee(ctx context.Context, employeeID int64) (*Group, error)
	ResolveGroupsForEmployees(ctx context.Context, employeeIDs []int64) (map[int64]Group, error)
	// ShiftForEmployee returns the employee's group and its earliest active shift.
	ShiftForEmployee(ctx context.Context, employeeID int64) (Group, WorkShift, error)

	CreateShift(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error)
	UpdateShift(ctx context.Context, req UpdateShiftRequest) (ShiftResponse, error)
	GetShift(ctx context.Context, id int64) (ShiftResponse, error)
	ListShifts(ctx context.Context, groupID int64) ([]ShiftResponse, error)
	DeleteShift(ctx context.Context, id int64) error
}
