package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/group"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLeaveApplicationRepository(t *testing.T) {
	db := newTestDatabase(t)
	repo := postgresql.NewLeaveApplicationRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, leave.Application{
		EmployeeID: 7,
		LeaveType:  leave.TypeAnnual,
		StartDate:  day(2024, time.March, 4),
		EndDate:    day(2024, time.March, 6),
		Duration:   2,
		Reason:     "family trip",
		Status:     approval.StatusPending,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, 1, created.Version)

	t.Run("active applications in range", func(t *testing.T) {
		apps, err := repo.ListActiveByEmployee(ctx, 7, day(2024, time.March, 5), day(2024, time.March, 10))
		require.NoError(t, err)
		require.Len(t, apps, 1)
		assert.Equal(t, created.ID, apps[0].ID)
	})

	t.Run("versioned status update", func(t *testing.T) {
		approverID := int64(1)
		approvedAt := day(2024, time.March, 1)
		app := created
		app.Status = approval.StatusApproved
		app.ApproverID = &approverID
		app.ApproveTime = &approvedAt

		updated, err := repo.UpdateStatus(ctx, app)
		require.NoError(t, err)
		assert.Equal(t, 2, updated.Version)
		assert.Equal(t, approval.StatusApproved, updated.Status)

		// same stale version again
		_, err = repo.UpdateStatus(ctx, app)
		assert.ErrorIs(t, err, approval.ErrVersionConflict)
	})

	t.Run("approved totals", func(t *testing.T) {
		total, err := repo.SumApprovedDuration(ctx, 7, leave.TypeAnnual, 2024)
		require.NoError(t, err)
		assert.Equal(t, 2.0, total)

		apps, err := repo.ListApprovedBetween(ctx, nil, day(2024, time.January, 1), day(2025, time.January, 1))
		require.NoError(t, err)
		assert.Len(t, apps, 1)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 9999)
		assert.ErrorIs(t, err, leave.ErrLeaveApplicationNotFound)
	})
}

func TestAttendanceGroupRepository(t *testing.T) {
	db := newTestDatabase(t)
	repo := postgresql.NewAttendanceGroupRepository(db)
	ctx := context.Background()

	office, err := repo.Create(ctx, group.Group{
		Name:      "Office",
		Type:      group.TypeFixed,
		Rules:     group.Rules{"max_patches_per_month": 2.0},
		MemberIDs: []int64{7, 8},
		IsActive:  true,
	})
	require.NoError(t, err)
	_, err = repo.Create(ctx, group.Group{Name: "Archive", Type: group.TypeFlexible, IsActive: false})
	require.NoError(t, err)

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, []int64{7, 8}, active[0].MemberIDs)
	limit, ok := active[0].Rules.MaxPatchesPerMonth()
	require.True(t, ok)
	assert.Equal(t, 2, limit)

	office.MemberIDs = []int64{7}
	updated, err := repo.Update(ctx, office)
	require.NoError(t, err)
	assert.Equal(t, office.Version+1, updated.Version)

	_, err = repo.Update(ctx, office)
	assert.ErrorIs(t, err, approval.ErrVersionConflict)
}

func TestAttendanceRecordRepository(t *testing.T) {
	db := newTestDatabase(t)
	repo := postgresql.NewAttendanceRecordRepository(db)
	ctx := context.Background()

	checkIn := time.Date(2024, time.March, 4, 1, 5, 0, 0, time.UTC)
	_, err := repo.Create(ctx, attendance.Record{
		EmployeeID:  7,
		WorkDate:    day(2024, time.March, 4),
		CheckInTime: &checkIn,
		CheckInType: attendance.CheckInManual,
		Status:      attendance.StatusNormal,
	})
	require.NoError(t, err)
	_, err = repo.Create(ctx, attendance.Record{
		EmployeeID:  7,
		WorkDate:    day(2024, time.March, 5),
		CheckInType: attendance.CheckInManual,
		Status:      attendance.StatusAbsent,
	})
	require.NoError(t, err)

	found, err := repo.GetByEmployeeAndDate(ctx, 7, day(2024, time.March, 4))
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.True(t, found.CheckInTime.Equal(checkIn))

	missing, err := repo.GetByEmployeeAndDate(ctx, 7, day(2024, time.March, 6))
	require.NoError(t, err)
	assert.Nil(t, missing)

	// the absence record has no punch and is not a patch
	patches, err := repo.CountManualPatches(ctx, 7, day(2024, time.March, 1), day(2024, time.March, 31))
	require.NoError(t, err)
	assert.Equal(t, 1, patches)

	_, err = repo.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
}
