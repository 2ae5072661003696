package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/clock"
)

const MarkAbsentJobName = "mark_absent_employees"

type AttendanceJobs struct {
	attendanceService attendance.Service
	clock             clock.Clock
	interval          time.Duration
}

func NewAttendanceJobs(attendanceService attendance.Service, clk clock.Clock, interval time.Duration) *AttendanceJobs {
	if interval <= 0 {
		interval = time.Hour
	}
	return &AttendanceJobs{
		attendanceService: attendanceService,
		clock:             clk,
		interval:          interval,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(MarkAbsentJobName, j.interval, j.MarkAbsentEmployees)
}

// MarkAbsentEmployees closes out the previous work day. The service skips
// employees that already have a record, so repeated runs are harmless.
func (j *AttendanceJobs) MarkAbsentEmployees(ctx context.Context) error {
	yesterday := attendance.DateOnly(j.clock.Now()).AddDate(0, 0, -1)

	count, err := j.attendanceService.MarkAbsent(ctx, yesterday)
	if err != nil {
		return fmt.Errorf("mark absent for %s: %w", yesterday.Format("2006-01-02"), err)
	}

	if count > 0 {
		slog.Info("Cron: Marked absent employees", "count", count, "work_date", yesterday.Format("2006-01-02"))
	}
	return nil
}
