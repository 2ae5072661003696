package report

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/overtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(day, hour, min int) *time.Time {
	t := time.Date(2024, 1, day, hour, min, 0, 0, time.UTC)
	return &t
}

func date(day int) time.Time {
	return time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC)
}

func sampleRecords() []attendance.Record {
	return []attendance.Record{
		{EmployeeID: 1, WorkDate: date(8), CheckInTime: at(8, 9, 0), CheckOutTime: at(8, 18, 0), Status: attendance.StatusNormal},
		{EmployeeID: 1, WorkDate: date(9), CheckInTime: at(9, 9, 30), CheckOutTime: at(9, 18, 0), Status: attendance.StatusLate},
		{EmployeeID: 1, WorkDate: date(10), Status: attendance.StatusAbsent},
		{EmployeeID: 2, WorkDate: date(8), CheckInTime: at(8, 9, 0), Status: attendance.StatusNormal},
	}
}

func TestStatusHistogram(t *testing.T) {
	hist := StatusHistogram(sampleRecords())

	assert.Len(t, hist, len(attendance.StatusValues))
	assert.Equal(t, 2, hist[attendance.StatusNormal])
	assert.Equal(t, 1, hist[attendance.StatusLate])
	assert.Equal(t, 1, hist[attendance.StatusAbsent])
	assert.Equal(t, 0, hist[attendance.StatusHoliday])
}

func TestWorkedMinutes_SkipsUnderivable(t *testing.T) {
	minutes, skipped := WorkedMinutes(sampleRecords())

	assert.Equal(t, 540+510, minutes[1])
	assert.Equal(t, 1, skipped[1])
	assert.Equal(t, 0, minutes[2])
	assert.Equal(t, 1, skipped[2])
}

func TestApprovedLeaveHours_OnlyApprovedOfTypeAndYear(t *testing.T) {
	apps := []leave.Application{
		{LeaveType: leave.TypeAnnual, Status: approval.StatusApproved, StartDate: date(2), EndDate: date(4)},
		{LeaveType: leave.TypeAnnual, Status: approval.StatusPending, StartDate: date(10), EndDate: date(11)},
		{LeaveType: leave.TypeSick, Status: approval.StatusApproved, StartDate: date(12), EndDate: date(13)},
		{LeaveType: leave.TypeAnnual, Status: approval.StatusApproved,
			StartDate: time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), EndDate: date(1)},
	}

	assert.Equal(t, 48.0, ApprovedLeaveHours(apps, leave.TypeAnnual, 2024))
	assert.Equal(t, 24.0, ApprovedLeaveHours(apps, leave.TypeAnnual, 2023))
	assert.Equal(t, 24.0, ApprovedLeaveHours(apps, leave.TypeSick, 2024))
}

func TestApprovedOvertimeHours(t *testing.T) {
	apps := []overtime.Application{
		{OvertimeDate: date(6), Duration: 4, OvertimeType: overtime.TypeWeekend, Status: approval.StatusApproved},
		{OvertimeDate: date(8), Duration: 2, OvertimeType: overtime.TypeWorkday, Status: approval.StatusApproved},
		{OvertimeDate: date(9), Duration: 3, OvertimeType: overtime.TypeWorkday, Status: approval.StatusRejected},
		{OvertimeDate: date(20), Duration: 5, OvertimeType: overtime.TypeHoliday, Status: approval.StatusApproved},
	}

	hours, weighted := ApprovedOvertimeHours(apps, date(1), date(10))
	assert.Equal(t, 6.0, hours)
	assert.Equal(t, 11.0, weighted)
}

func TestSummarize(t *testing.T) {
	leaves := []leave.Application{
		// Starts before the range, only Jan 8 00:00 to Jan 9 00:00 counts.
		{EmployeeID: 2, LeaveType: leave.TypeAnnual, Status: approval.StatusApproved, StartDate: date(6), EndDate: date(9)},
	}
	overtimes := []overtime.Application{
		{EmployeeID: 1, OvertimeDate: date(9), Duration: 2, OvertimeType: overtime.TypeWorkday, Status: approval.StatusApproved},
	}

	rows := Summarize(sampleRecords(), leaves, overtimes, date(8), date(10))
	require.Len(t, rows, 2)

	assert.Equal(t, int64(1), rows[0].EmployeeID)
	assert.Equal(t, 3, rows[0].Days)
	assert.Equal(t, 1050, rows[0].WorkedMinutes)
	assert.Equal(t, 1, rows[0].StatusCounts["absent"])
	assert.Equal(t, 2.0, rows[0].OvertimeHours)
	assert.Equal(t, 3.0, rows[0].WeightedOvertimeHours)

	assert.Equal(t, int64(2), rows[1].EmployeeID)
	assert.Equal(t, 24.0, rows[1].LeaveHours)
}

func TestRangeRequest_Validate(t *testing.T) {
	ok := RangeRequest{StartDate: "2024-01-01", EndDate: "2024-01-31"}
	require.NoError(t, ok.Validate())
	assert.Equal(t, date(31), ok.To)

	reversed := RangeRequest{StartDate: "2024-02-01", EndDate: "2024-01-01"}
	assert.Error(t, reversed.Validate())

	tooLong := RangeRequest{StartDate: "2022-01-01", EndDate: "2024-01-01"}
	assert.Error(t, tooLong.Validate())
}
