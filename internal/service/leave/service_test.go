package leave

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/group"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/overtime"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/memorytest"
	groupService "github.com/cmlabs-hris/attendance-backend-go/internal/service/group"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	svc       leave.Service
	groups    group.Service
	overtimes overtime.ApplicationRepository
}

func newFixture() fixture {
	store := memorytest.NewStore()
	groups := groupService.NewGroupService(memorytest.Transactor{},
		memorytest.NewAttendanceGroupRepository(store), memorytest.NewWorkShiftRepository(store))
	overtimes := memorytest.NewOvertimeApplicationRepository(store)
	svc := NewLeaveService(memorytest.Transactor{}, memorytest.NewLeaveApplicationRepository(store),
		overtimes, groups, clock.Fixed(now))
	return fixture{svc: svc, groups: groups, overtimes: overtimes}
}

func submit(t *testing.T, svc leave.Service, employeeID int64, leaveType leave.Type, start, end string) leave.ApplicationResponse {
	t.Helper()
	resp, err := svc.Submit(context.Background(), leave.SubmitRequest{
		EmployeeID: employeeID,
		LeaveType:  string(leaveType),
		StartDate:  start,
		EndDate:    end,
		Reason:     "family matters",
	})
	require.NoError(t, err)
	return resp
}

func TestLeaveService_Submit(t *testing.T) {
	f := newFixture()

	resp := submit(t, f.svc, 1, leave.TypeAnnual, "2024-03-04", "2024-03-06")

	assert.Equal(t, string(approval.StatusPending), resp.Status)
	assert.Equal(t, 2.0, resp.Duration)
	assert.Nil(t, resp.ApproverID)
	assert.Equal(t, 1, resp.Version)
}

func TestLeaveService_SubmitRejections(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		want       error
	}{
		{"end before start", "2024-03-10", "2024-03-05", leave.ErrInvalidDateRange},
		{"zero length", "2024-03-10", "2024-03-10", leave.ErrInvalidDateRange},
		{"start yesterday", "2024-02-29", "2024-03-02", leave.ErrDateInPast},
		{"over annual balance", "2024-03-04", "2024-03-11", leave.ErrInsufficientLeaveBalance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.svc.Submit(context.Background(), leave.SubmitRequest{
				EmployeeID: 1,
				LeaveType:  string(leave.TypeAnnual),
				StartDate:  tt.start,
				EndDate:    tt.end,
				Reason:     "trip",
			})
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestLeaveService_SubmitBalanceBoundary(t *testing.T) {
	tests := []struct {
		name         string
		approvedDays [2]string // already approved annual leave, empty for none
		start, end   string
		wantErr      bool
	}{
		{"exactly the full allotment", [2]string{}, "2024-03-04", "2024-03-09", false},
		{"full allotment plus a minute", [2]string{}, "2024-03-04", "2024-03-09T00:01:00Z", true},
		{"five days after two used", [2]string{"2024-03-04", "2024-03-06"}, "2024-03-11", "2024-03-16", true},
		{"exactly the remaining three", [2]string{"2024-03-04", "2024-03-06"}, "2024-03-11", "2024-03-14", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture()
			if tt.approvedDays[0] != "" {
				used := submit(t, f.svc, 1, leave.TypeAnnual, tt.approvedDays[0], tt.approvedDays[1])
				_, err := f.svc.Approve(ctx, leave.DecisionRequest{ApplicationID: used.ID, ApproverID: 50})
				require.NoError(t, err)
			}

			_, err := f.svc.Submit(ctx, leave.SubmitRequest{
				EmployeeID: 1,
				LeaveType:  string(leave.TypeAnnual),
				StartDate:  tt.start,
				EndDate:    tt.end,
				Reason:     "trip",
			})
			if tt.wantErr {
				assert.ErrorIs(t, err, leave.ErrInsufficientLeaveBalance)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestLeaveService_SubmitTodayIsAllowed(t *testing.T) {
	f := newFixture()
	resp := submit(t, f.svc, 1, leave.TypeSick, "2024-03-01", "2024-03-02")
	assert.Equal(t, 1.0, resp.Duration)
}

func TestLeaveService_SubmitValidation(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Submit(context.Background(), leave.SubmitRequest{
		EmployeeID: 1,
		LeaveType:  "holiday",
		StartDate:  "03/04/2024",
		EndDate:    "2024-03-06",
	})

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 3)
}

func TestLeaveService_SubmitOverlap(t *testing.T) {
	f := newFixture()
	first := submit(t, f.svc, 1, leave.TypeAnnual, "2024-03-04", "2024-03-06")

	_, err := f.svc.Submit(context.Background(), leave.SubmitRequest{
		EmployeeID: 1,
		LeaveType:  string(leave.TypeSick),
		StartDate:  "2024-03-05",
		EndDate:    "2024-03-07",
		Reason:     "flu",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, leave.ErrOverlappingLeave)
	assert.ErrorIs(t, err, attendance.ErrLeaveConflict)

	// Touching intervals do not overlap.
	submit(t, f.svc, 1, leave.TypeAnnual, "2024-03-06", "2024-03-07")

	// Other employees are unaffected.
	submit(t, f.svc, 2, leave.TypeAnnual, "2024-03-04", "2024-03-06")

	// A rejected application no longer blocks the slot.
	_, err = f.svc.Reject(context.Background(), leave.DecisionRequest{ApplicationID: first.ID, ApproverID: 50})
	require.NoError(t, err)
	submit(t, f.svc, 1, leave.TypeSick, "2024-03-04", "2024-03-05")
}

func TestLeaveService_GroupRules(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	_, err := f.groups.CreateGroup(ctx, group.CreateGroupRequest{
		Name:      "Office",
		Type:      string(group.TypeFixed),
		MemberIDs: []int64{1},
		Rules: map[string]interface{}{
			"max_leave_days":      3.0,
			"advance_notice_days": 7.0,
			"leave_allotments":    map[string]interface{}{"annual": 20.0},
		},
	})
	require.NoError(t, err)

	_, err = f.svc.Submit(ctx, leave.SubmitRequest{
		EmployeeID: 1, LeaveType: "annual", StartDate: "2024-03-20", EndDate: "2024-03-25", Reason: "trip",
	})
	assert.ErrorIs(t, err, leave.ErrExceedsMaximumDuration)

	_, err = f.svc.Submit(ctx, leave.SubmitRequest{
		EmployeeID: 1, LeaveType: "annual", StartDate: "2024-03-04", EndDate: "2024-03-05", Reason: "trip",
	})
	assert.ErrorIs(t, err, leave.ErrRequiresAdvanceNotice)

	// Sick leave is exempt from advance notice.
	submit(t, f.svc, 1, leave.TypeSick, "2024-03-04", "2024-03-05")

	bal, err := f.svc.Balance(ctx, leave.BalanceRequest{EmployeeID: 1, LeaveType: "annual", Year: 2024})
	require.NoError(t, err)
	assert.Equal(t, 20.0, bal.Allotment)
}

func TestLeaveService_ApproveAndReject(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	app := submit(t, f.svc, 1, leave.TypeAnnual, "2024-03-04", "2024-03-06")

	approved, err := f.svc.Approve(ctx, leave.DecisionRequest{ApplicationID: app.ID, ApproverID: 50})
	require.NoError(t, err)
	assert.Equal(t, string(approval.StatusApproved), approved.Status)
	require.NotNil(t, approved.ApproverID)
	assert.Equal(t, int64(50), *approved.ApproverID)
	require.NotNil(t, approved.ApproveTime)
	assert.True(t, now.Equal(*approved.ApproveTime))
	assert.Equal(t, 2, approved.Version)

	_, err = f.svc.Reject(ctx, leave.DecisionRequest{ApplicationID: app.ID, ApproverID: 50})
	assert.ErrorIs(t, err, leave.ErrCannotModifyApprovedLeave)

	got, err := f.svc.Get(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, string(approval.StatusApproved), got.Status)
}

func TestLeaveService_DecisionNotFound(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Approve(context.Background(), leave.DecisionRequest{ApplicationID: 404, ApproverID: 50})
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
}

func TestLeaveService_VersionConflict(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	app := submit(t, f.svc, 1, leave.TypeAnnual, "2024-03-04", "2024-03-06")

	stale := 3
	_, err := f.svc.Approve(ctx, leave.DecisionRequest{ApplicationID: app.ID, ApproverID: 50, Version: &stale})
	assert.ErrorIs(t, err, approval.ErrVersionConflict)

	current := app.Version
	_, err = f.svc.Approve(ctx, leave.DecisionRequest{ApplicationID: app.ID, ApproverID: 50, Version: &current})
	require.NoError(t, err)
}

func TestLeaveService_ApproveRechecksBalance(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	// Both fit on their own; together they exceed the five-day annual allotment.
	a := submit(t, f.svc, 1, leave.TypeAnnual, "2024-03-04", "2024-03-07")
	b := submit(t, f.svc, 1, leave.TypeAnnual, "2024-04-01", "2024-04-04")

	_, err := f.svc.Approve(ctx, leave.DecisionRequest{ApplicationID: a.ID, ApproverID: 50})
	require.NoError(t, err)

	_, err = f.svc.Approve(ctx, leave.DecisionRequest{ApplicationID: b.ID, ApproverID: 50})
	assert.ErrorIs(t, err, leave.ErrInsufficientLeaveBalance)

	got, err := f.svc.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, string(approval.StatusPending), got.Status)
}

func TestLeaveService_Cancel(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	pending := submit(t, f.svc, 1, leave.TypeAnnual, "2024-03-04", "2024-03-05")
	cancelled, err := f.svc.Cancel(ctx, leave.CancelRequest{ApplicationID: pending.ID})
	require.NoError(t, err)
	assert.Equal(t, string(approval.StatusCancelled), cancelled.Status)

	_, err = f.svc.Cancel(ctx, leave.CancelRequest{ApplicationID: pending.ID})
	assert.ErrorIs(t, err, leave.ErrCannotCancelProcessedLeave)

	future := submit(t, f.svc, 1, leave.TypeAnnual, "2024-03-11", "2024-03-12")
	_, err = f.svc.Approve(ctx, leave.DecisionRequest{ApplicationID: future.ID, ApproverID: 50})
	require.NoError(t, err)
	cancelled, err = f.svc.Cancel(ctx, leave.CancelRequest{ApplicationID: future.ID})
	require.NoError(t, err)
	assert.Equal(t, string(approval.StatusCancelled), cancelled.Status)
	assert.Nil(t, cancelled.ApproverID)
	assert.Nil(t, cancelled.ApproveTime)
}

func TestLeaveService_CancelStartedLeave(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	app := submit(t, f.svc, 1, leave.TypeSick, "2024-03-01", "2024-03-03")
	_, err := f.svc.Approve(ctx, leave.DecisionRequest{ApplicationID: app.ID, ApproverID: 50})
	require.NoError(t, err)

	_, err = f.svc.Cancel(ctx, leave.CancelRequest{ApplicationID: app.ID})
	assert.ErrorIs(t, err, leave.ErrCannotCancelStartedLeave)
}

func TestLeaveService_Balance(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	app := submit(t, f.svc, 1, leave.TypeAnnual, "2024-03-04", "2024-03-06")
	_, err := f.svc.Approve(ctx, leave.DecisionRequest{ApplicationID: app.ID, ApproverID: 50})
	require.NoError(t, err)
	submit(t, f.svc, 1, leave.TypeAnnual, "2024-04-01", "2024-04-02")

	bal, err := f.svc.Balance(ctx, leave.BalanceRequest{EmployeeID: 1, LeaveType: "annual", Year: 2024})
	require.NoError(t, err)
	assert.Equal(t, 5.0, bal.Allotment)
	assert.Equal(t, 2.0, bal.Used)
	require.NotNil(t, bal.Remaining)
	assert.Equal(t, 3.0, *bal.Remaining)

	unpaid, err := f.svc.Balance(ctx, leave.BalanceRequest{EmployeeID: 1, LeaveType: "unpaid", Year: 2024})
	require.NoError(t, err)
	assert.True(t, unpaid.Unlimited)
	assert.Nil(t, unpaid.Remaining)
}

func TestLeaveService_CompensatoryBalance(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	day := time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)
	ot, err := f.overtimes.Create(ctx, overtime.Application{
		EmployeeID:       1,
		OvertimeDate:     day,
		StartTime:        day.Add(9 * time.Hour),
		EndTime:          day.Add(21 * time.Hour),
		Duration:         12,
		OvertimeType:     overtime.TypeWeekend,
		Reason:           "release",
		Status:           approval.StatusApproved,
		CompensationType: overtime.CompensationTimeOff,
	})
	require.NoError(t, err)
	require.NotZero(t, ot.ID)

	bal, err := f.svc.Balance(ctx, leave.BalanceRequest{EmployeeID: 1, LeaveType: "compensatory", Year: 2024})
	require.NoError(t, err)
	assert.Equal(t, 1.5, bal.Allotment)

	_, err = f.svc.Submit(ctx, leave.SubmitRequest{
		EmployeeID: 1, LeaveType: "compensatory", StartDate: "2024-03-04", EndDate: "2024-03-06", Reason: "rest",
	})
	assert.ErrorIs(t, err, leave.ErrInsufficientLeaveBalance)
	submit(t, f.svc, 1, leave.TypeCompensatory, "2024-03-04", "2024-03-05")
}

func TestLeaveService_List(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	submit(t, f.svc, 1, leave.TypeAnnual, "2024-03-04", "2024-03-05")
	submit(t, f.svc, 2, leave.TypeAnnual, "2024-03-04", "2024-03-05")
	submit(t, f.svc, 1, leave.TypeSick, "2024-03-06", "2024-03-07")

	employee := int64(1)
	resp, err := f.svc.List(ctx, leave.ApplicationFilter{EmployeeID: &employee})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.TotalCount)
	assert.Len(t, resp.Applications, 2)
}
