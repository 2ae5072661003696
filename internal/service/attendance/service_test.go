package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/group"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/memorytest"
	groupService "github.com/cmlabs-hris/attendance-backend-go/internal/service/group"
	holidayService "github.com/cmlabs-hris/attendance-backend-go/internal/service/holiday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cst = time.FixedZone("CST", 8*60*60)

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

// at sets the clock to a wall time in the attendance timezone.
func (c *testClock) at(day string, hhmm string) {
	t, err := time.ParseInLocation("2006-01-02 15:04", day+" "+hhmm, cst)
	if err != nil {
		panic(err)
	}
	c.now = t
}

type fixture struct {
	svc      attendance.Service
	groups   group.Service
	holidays holiday.Service
	leaves   leave.ApplicationRepository
	clock    *testClock
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := memorytest.NewStore()
	groupRepo := memorytest.NewAttendanceGroupRepository(store)
	groups := groupService.NewGroupService(memorytest.Transactor{}, groupRepo, memorytest.NewWorkShiftRepository(store))
	holidays := holidayService.NewHolidayService(memorytest.NewHolidayRepository(store))
	leaves := memorytest.NewLeaveApplicationRepository(store)
	clk := &testClock{}

	svc := NewAttendanceService(memorytest.Transactor{}, memorytest.NewAttendanceRecordRepository(store), leaves,
		groupRepo, groups, holidays, clk, config.AttendanceConfig{Location: cst, DefaultPatchLimit: 3})
	return fixture{svc: svc, groups: groups, holidays: holidays, leaves: leaves, clock: clk}
}

func (f fixture) officeGroup(t *testing.T, rules map[string]interface{}, members ...int64) {
	t.Helper()
	ctx := context.Background()
	g, err := f.groups.CreateGroup(ctx, group.CreateGroupRequest{
		Name:      "Office",
		Type:      string(group.TypeFixed),
		Rules:     rules,
		MemberIDs: members,
	})
	require.NoError(t, err)
	flexible := 10
	_, err = f.groups.CreateShift(ctx, group.CreateShiftRequest{
		GroupID:         g.ID,
		Name:            "Day",
		StartTime:       "09:00",
		EndTime:         "18:00",
		FlexibleMinutes: &flexible,
	})
	require.NoError(t, err)
}

func checkIn(f fixture, employeeID int64) (attendance.RecordResponse, error) {
	return f.svc.CheckIn(context.Background(), attendance.CheckInRequest{
		EmployeeID:  employeeID,
		CheckInType: string(attendance.CheckInApp),
	})
}

func checkOut(f fixture, employeeID int64) (attendance.RecordResponse, error) {
	return f.svc.CheckOut(context.Background(), attendance.CheckOutRequest{EmployeeID: employeeID})
}

func TestAttendanceService_CheckInStatuses(t *testing.T) {
	tests := []struct {
		name   string
		at     string
		status attendance.Status
		reason bool
	}{
		{"early allowance", "07:30", attendance.StatusNormal, false},
		{"on time", "08:55", attendance.StatusNormal, false},
		{"within flexible minutes", "09:10", attendance.StatusNormal, false},
		{"late", "09:20", attendance.StatusLate, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.officeGroup(t, nil, 1)
			f.clock.at("2024-03-05", tt.at)

			rec, err := checkIn(f, 1)
			require.NoError(t, err)
			assert.Equal(t, string(tt.status), rec.Status)
			assert.Equal(t, "2024-03-05", rec.WorkDate)
			assert.Equal(t, tt.reason, rec.AbnormalReason != nil)
		})
	}
}

func TestAttendanceService_CheckInRejections(t *testing.T) {
	f := newFixture(t)
	f.officeGroup(t, nil, 1)

	f.clock.at("2024-03-05", "06:30")
	_, err := checkIn(f, 1)
	assert.ErrorIs(t, err, attendance.ErrOutsideWorkTime)

	f.clock.at("2024-03-05", "18:30")
	_, err = checkIn(f, 1)
	assert.ErrorIs(t, err, attendance.ErrOutsideWorkTime)

	f.clock.at("2024-03-05", "09:00")
	_, err = checkIn(f, 99)
	assert.ErrorIs(t, err, attendance.ErrNoAttendanceGroup)

	_, err = checkIn(f, 1)
	require.NoError(t, err)
	f.clock.at("2024-03-05", "09:05")
	_, err = checkIn(f, 1)
	assert.ErrorIs(t, err, attendance.ErrDuplicateCheckIn)
}

func TestAttendanceService_CheckInLocation(t *testing.T) {
	f := newFixture(t)
	f.officeGroup(t, map[string]interface{}{
		"locations": []interface{}{
			map[string]interface{}{"name": "HQ", "latitude": -6.2, "longitude": 106.8, "radius_meters": 100.0},
		},
	}, 1)
	f.clock.at("2024-03-05", "08:50")
	ctx := context.Background()

	_, err := checkIn(f, 1)
	assert.ErrorIs(t, err, attendance.ErrInvalidLocation)

	farLat, farLng := -6.3, 106.8
	_, err = f.svc.CheckIn(ctx, attendance.CheckInRequest{
		EmployeeID: 1, CheckInType: "app", Latitude: &farLat, Longitude: &farLng,
	})
	assert.ErrorIs(t, err, attendance.ErrInvalidLocation)

	nearLat, nearLng := -6.2003, 106.8
	rec, err := f.svc.CheckIn(ctx, attendance.CheckInRequest{
		EmployeeID: 1, CheckInType: "app", Latitude: &nearLat, Longitude: &nearLng,
	})
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusNormal), rec.Status)
	require.NotNil(t, rec.CheckInLocation)
	assert.Equal(t, "HQ", *rec.CheckInLocation)
}

func TestAttendanceService_CheckOutStatuses(t *testing.T) {
	tests := []struct {
		name       string
		in, out    string
		status     attendance.Status
		wantReason bool
	}{
		{"normal", "08:50", "18:05", attendance.StatusNormal, false},
		{"within flexible minutes", "08:50", "17:55", attendance.StatusNormal, false},
		{"left early", "08:50", "17:00", attendance.StatusEarly, true},
		{"overtime", "09:00", "19:30", attendance.StatusOvertime, false},
		{"late wins over early", "09:30", "16:00", attendance.StatusLate, true},
		{"late wins over overtime", "09:30", "20:00", attendance.StatusLate, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.officeGroup(t, nil, 1)

			f.clock.at("2024-03-05", tt.in)
			_, err := checkIn(f, 1)
			require.NoError(t, err)

			f.clock.at("2024-03-05", tt.out)
			rec, err := checkOut(f, 1)
			require.NoError(t, err)
			assert.Equal(t, string(tt.status), rec.Status)
			assert.Equal(t, tt.wantReason, rec.AbnormalReason != nil)
			require.NotNil(t, rec.WorkedMinutes)
		})
	}
}

func TestAttendanceService_CheckOutErrors(t *testing.T) {
	f := newFixture(t)
	f.officeGroup(t, nil, 1)

	f.clock.at("2024-03-05", "17:00")
	_, err := checkOut(f, 1)
	assert.ErrorIs(t, err, attendance.ErrInvalidCheckIn)
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)

	f.clock.at("2024-03-05", "09:00")
	_, err = checkIn(f, 1)
	require.NoError(t, err)
	f.clock.at("2024-03-05", "18:00")
	_, err = checkOut(f, 1)
	require.NoError(t, err)

	_, err = checkOut(f, 1)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestAttendanceService_CrossDayShift(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	g, err := f.groups.CreateGroup(ctx, group.CreateGroupRequest{
		Name: "Night", Type: string(group.TypeShift), MemberIDs: []int64{5},
	})
	require.NoError(t, err)
	_, err = f.groups.CreateShift(ctx, group.CreateShiftRequest{
		GroupID: g.ID, Name: "Night", StartTime: "22:00", EndTime: "06:00", CrossDay: true,
	})
	require.NoError(t, err)

	f.clock.at("2024-03-05", "21:50")
	in, err := checkIn(f, 5)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", in.WorkDate)

	f.clock.at("2024-03-06", "06:05")
	out, err := checkOut(f, 5)
	require.NoError(t, err)
	assert.Equal(t, in.ID, out.ID)
	assert.Equal(t, string(attendance.StatusNormal), out.Status)
	require.NotNil(t, out.WorkedMinutes)
	assert.Equal(t, 495, *out.WorkedMinutes)
}

func TestAttendanceService_CheckInAfterMidnightBelongsToPreviousShift(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	g, err := f.groups.CreateGroup(ctx, group.CreateGroupRequest{
		Name: "Night", Type: string(group.TypeShift), MemberIDs: []int64{5},
	})
	require.NoError(t, err)
	_, err = f.groups.CreateShift(ctx, group.CreateShiftRequest{
		GroupID: g.ID, Name: "Night", StartTime: "22:00", EndTime: "06:00", CrossDay: true,
	})
	require.NoError(t, err)

	f.clock.at("2024-03-06", "00:30")
	rec, err := checkIn(f, 5)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", rec.WorkDate)
	assert.Equal(t, string(attendance.StatusLate), rec.Status)
}

func TestAttendanceService_HolidayAndLeaveStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.officeGroup(t, nil, 1, 2)

	_, err := f.holidays.Create(ctx, holiday.CreateHolidayRequest{
		Name: "Founders Day", HolidayDate: "2024-03-07", Type: string(holiday.TypeCompany),
	})
	require.NoError(t, err)
	f.clock.at("2024-03-07", "09:45")
	rec, err := checkIn(f, 1)
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusHoliday), rec.Status)

	day := time.Date(2024, time.March, 8, 0, 0, 0, 0, time.UTC)
	_, err = f.leaves.Create(ctx, leave.Application{
		EmployeeID: 2, LeaveType: leave.TypeAnnual, StartDate: day, EndDate: day.AddDate(0, 0, 1),
		Duration: 1, Reason: "errand", Status: approval.StatusApproved,
	})
	require.NoError(t, err)
	f.clock.at("2024-03-08", "09:45")
	rec, err = checkIn(f, 2)
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusLeave), rec.Status)
}

func TestAttendanceService_Patch(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.officeGroup(t, map[string]interface{}{"max_patches_per_month": 1.0}, 1)

	in := "2024-03-04T09:00:00+08:00"
	out := "2024-03-04T18:00:00+08:00"
	rec, err := f.svc.Patch(ctx, attendance.PatchRequest{
		EmployeeID: 1, WorkDate: "2024-03-04", CheckInTime: &in, CheckOutTime: &out, Reason: "badge reader down",
	})
	require.NoError(t, err)
	assert.Equal(t, string(attendance.CheckInManual), rec.CheckInType)
	assert.Equal(t, string(attendance.StatusNormal), rec.Status)
	require.NotNil(t, rec.AbnormalReason)
	assert.Contains(t, *rec.AbnormalReason, "badge reader down")

	// Re-patching the same day does not use another slot.
	late := "2024-03-04T09:30:00+08:00"
	rec, err = f.svc.Patch(ctx, attendance.PatchRequest{
		EmployeeID: 1, WorkDate: "2024-03-04", CheckInTime: &late, Reason: "corrected time",
	})
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusLate), rec.Status)

	_, err = f.svc.Patch(ctx, attendance.PatchRequest{
		EmployeeID: 1, WorkDate: "2024-03-05", CheckInTime: &in, Reason: "forgot",
	})
	assert.ErrorIs(t, err, attendance.ErrExceedPatchLimit)

	// A new month has a fresh allowance.
	april := "2024-04-01T09:00:00+08:00"
	_, err = f.svc.Patch(ctx, attendance.PatchRequest{
		EmployeeID: 1, WorkDate: "2024-04-01", CheckInTime: &april, Reason: "forgot",
	})
	require.NoError(t, err)
}

func TestAttendanceService_PatchRequiresCheckIn(t *testing.T) {
	f := newFixture(t)
	f.officeGroup(t, nil, 1)

	out := "2024-03-04T18:00:00+08:00"
	_, err := f.svc.Patch(context.Background(), attendance.PatchRequest{
		EmployeeID: 1, WorkDate: "2024-03-04", CheckOutTime: &out, Reason: "forgot",
	})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestAttendanceService_MarkAbsent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.officeGroup(t, nil, 1, 2, 3)

	f.clock.at("2024-03-05", "09:00")
	_, err := checkIn(f, 1)
	require.NoError(t, err)

	day := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	_, err = f.leaves.Create(ctx, leave.Application{
		EmployeeID: 2, LeaveType: leave.TypeSick, StartDate: day, EndDate: day.AddDate(0, 0, 1),
		Duration: 1, Reason: "flu", Status: approval.StatusApproved,
	})
	require.NoError(t, err)

	marked, err := f.svc.MarkAbsent(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, 2, marked)

	employee := int64(3)
	list, err := f.svc.ListRecords(ctx, attendance.RecordFilter{EmployeeID: &employee})
	require.NoError(t, err)
	require.Len(t, list.Records, 1)
	assert.Equal(t, string(attendance.StatusAbsent), list.Records[0].Status)

	employee = 2
	list, err = f.svc.ListRecords(ctx, attendance.RecordFilter{EmployeeID: &employee})
	require.NoError(t, err)
	require.Len(t, list.Records, 1)
	assert.Equal(t, string(attendance.StatusLeave), list.Records[0].Status)

	again, err := f.svc.MarkAbsent(ctx, day)
	require.NoError(t, err)
	assert.Zero(t, again)

	// Absence records do not count as manual patches.
	in := "2024-03-05T09:00:00+08:00"
	_, err = f.svc.Patch(ctx, attendance.PatchRequest{
		EmployeeID: 3, WorkDate: "2024-03-05", CheckInTime: &in, Reason: "was on site",
	})
	require.NoError(t, err)
}

func TestAttendanceService_MarkAbsentSkipsWeekendsAndHolidays(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.officeGroup(t, nil, 1)

	saturday := time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC)
	marked, err := f.svc.MarkAbsent(ctx, saturday)
	require.NoError(t, err)
	assert.Zero(t, marked)

	_, err = f.holidays.Create(ctx, holiday.CreateHolidayRequest{
		Name: "Founders Day", HolidayDate: "2024-03-07", Type: string(holiday.TypeCompany),
	})
	require.NoError(t, err)
	marked, err = f.svc.MarkAbsent(ctx, time.Date(2024, time.March, 7, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Zero(t, marked)
}

func TestAttendanceService_GetRecordNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.GetRecord(context.Background(), 12)
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
}
