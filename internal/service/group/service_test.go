package group

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/group"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/memorytest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() group.Service {
	store := memorytest.NewStore()
	return NewGroupService(memorytest.Transactor{}, memorytest.NewAttendanceGroupRepository(store), memorytest.NewWorkShiftRepository(store))
}

func createGroup(t *testing.T, svc group.Service, name string, members ...int64) group.GroupResponse {
	t.Helper()
	g, err := svc.CreateGroup(context.Background(), group.CreateGroupRequest{
		Name:      name,
		Type:      string(group.TypeFixed),
		MemberIDs: members,
	})
	require.NoError(t, err)
	return g
}

func TestGroupService_ResolveGroupForEmployee(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	createGroup(t, svc, "Engineering", 1, 2)
	createGroup(t, svc, "Sales", 3)

	g, err := svc.ResolveGroupForEmployee(ctx, 3)
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, "Sales", g.Name)

	none, err := svc.ResolveGroupForEmployee(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestGroupService_ResolveSkipsInactiveGroups(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	g := createGroup(t, svc, "Night", 7)
	inactive := false
	_, err := svc.UpdateGroup(ctx, group.UpdateGroupRequest{ID: g.ID, Version: g.Version, IsActive: &inactive})
	require.NoError(t, err)

	resolved, err := svc.ResolveGroupForEmployee(ctx, 7)
	require.NoError(t, err)
	assert.Nil(t, resolved)
}

func TestGroupService_ResolveGroupsForEmployees(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	createGroup(t, svc, "Engineering", 1, 2)
	createGroup(t, svc, "Sales", 3)

	got, err := svc.ResolveGroupsForEmployees(ctx, []int64{1, 3, 4})
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "Engineering", got[1].Name)
	assert.Equal(t, "Sales", got[3].Name)
	_, found := got[4]
	assert.False(t, found)
}

func TestGroupService_CreateRejectsDuplicateName(t *testing.T) {
	svc := newTestService()
	createGroup(t, svc, "Engineering")

	_, err := svc.CreateGroup(context.Background(), group.CreateGroupRequest{Name: "Engineering", Type: "fixed"})
	assert.ErrorIs(t, err, group.ErrGroupNameExists)
}

func TestGroupService_AddMembers(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	eng := createGroup(t, svc, "Engineering", 1)
	createGroup(t, svc, "Sales", 3)

	updated, err := svc.AddMembers(ctx, group.AddMembersRequest{GroupID: eng.ID, Version: eng.Version, EmployeeIDs: []int64{2, 2, 1}})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, updated.MemberIDs)
	assert.Equal(t, eng.Version+1, updated.Version)

	_, err = svc.AddMembers(ctx, group.AddMembersRequest{GroupID: eng.ID, Version: updated.Version, EmployeeIDs: []int64{3}})
	assert.ErrorIs(t, err, group.ErrEmployeeInAnotherGroup)
}

func TestGroupService_StaleVersionConflicts(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	eng := createGroup(t, svc, "Engineering", 1)
	_, err := svc.AddMembers(ctx, group.AddMembersRequest{GroupID: eng.ID, Version: eng.Version, EmployeeIDs: []int64{2}})
	require.NoError(t, err)

	_, err = svc.RemoveMember(ctx, group.RemoveMemberRequest{GroupID: eng.ID, EmployeeID: 1, Version: eng.Version})
	assert.ErrorIs(t, err, approval.ErrVersionConflict)
}

func TestGroupService_RemoveMember(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	eng := createGroup(t, svc, "Engineering", 1, 2)
	updated, err := svc.RemoveMember(ctx, group.RemoveMemberRequest{GroupID: eng.ID, EmployeeID: 1, Version: eng.Version})
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, updated.MemberIDs)

	_, err = svc.RemoveMember(ctx, group.RemoveMemberRequest{GroupID: eng.ID, EmployeeID: 1, Version: updated.Version})
	assert.ErrorIs(t, err, group.ErrNoGroupForEmployee)
}

func TestGroupService_ShiftForEmployee(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	eng := createGroup(t, svc, "Engineering", 1)

	_, _, err := svc.ShiftForEmployee(ctx, 1)
	assert.ErrorIs(t, err, group.ErrNoActiveShift)

	_, err = svc.CreateShift(ctx, group.CreateShiftRequest{GroupID: eng.ID, Name: "Late", StartTime: "13:00", EndTime: "21:00"})
	require.NoError(t, err)
	_, err = svc.CreateShift(ctx, group.CreateShiftRequest{GroupID: eng.ID, Name: "Day", StartTime: "09:00", EndTime: "18:00"})
	require.NoError(t, err)

	g, shift, err := svc.ShiftForEmployee(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, eng.ID, g.ID)
	assert.Equal(t, "Day", shift.Name)

	_, _, err = svc.ShiftForEmployee(ctx, 2)
	assert.ErrorIs(t, err, group.ErrNoGroupForEmployee)
}

func TestGroupService_ShiftCRUD(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	eng := createGroup(t, svc, "Engineering")

	night, err := svc.CreateShift(ctx, group.CreateShiftRequest{GroupID: eng.ID, Name: "Night", StartTime: "22:00", EndTime: "06:00", CrossDay: true})
	require.NoError(t, err)
	assert.True(t, night.CrossDay)

	updated, err := svc.UpdateShift(ctx, group.UpdateShiftRequest{
		ID:                 night.ID,
		CreateShiftRequest: group.CreateShiftRequest{Name: "Night 2", StartTime: "21:00", EndTime: "05:00", CrossDay: true},
	})
	require.NoError(t, err)
	assert.Equal(t, "21:00", updated.StartTime.String())

	shifts, err := svc.ListShifts(ctx, eng.ID)
	require.NoError(t, err)
	assert.Len(t, shifts, 1)

	require.NoError(t, svc.DeleteShift(ctx, night.ID))
	_, err = svc.GetShift(ctx, night.ID)
	assert.ErrorIs(t, err, group.ErrShiftNotFound)
}
