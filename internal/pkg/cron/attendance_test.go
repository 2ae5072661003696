package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type markAbsentRecorder struct {
	attendance.Service
	dates []time.Time
	err   error
}

func (m *markAbsentRecorder) MarkAbsent(ctx context.Context, workDate time.Time) (int, error) {
	m.dates = append(m.dates, workDate)
	return 2, m.err
}

func TestAttendanceJobs_MarksPreviousDay(t *testing.T) {
	svc := &markAbsentRecorder{}
	now := time.Date(2024, time.March, 5, 0, 30, 0, 0, time.UTC)
	jobs := NewAttendanceJobs(svc, clock.Fixed(now), 0)

	require.NoError(t, jobs.MarkAbsentEmployees(context.Background()))

	require.Len(t, svc.dates, 1)
	assert.Equal(t, time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC), svc.dates[0])
	assert.Equal(t, time.Hour, jobs.interval)
}

func TestAttendanceJobs_RegistersAndWrapsErrors(t *testing.T) {
	svc := &markAbsentRecorder{err: errors.New("db down")}
	jobs := NewAttendanceJobs(svc, clock.Fixed(time.Date(2024, time.March, 5, 8, 0, 0, 0, time.UTC)), 30*time.Minute)

	err := jobs.MarkAbsentEmployees(context.Background())
	assert.ErrorContains(t, err, "2024-03-04")

	s := NewScheduler()
	jobs.RegisterJobs(s)
	require.Len(t, s.jobs, 1)
	assert.Equal(t, MarkAbsentJobName, s.jobs[0].Name)
	assert.Equal(t, 30*time.Minute, s.jobs[0].Interval)
}
