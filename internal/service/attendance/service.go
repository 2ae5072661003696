package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/group"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/utils"
)

type AttendanceServiceImpl struct {
	tx             database.Transactor
	recordRepo     attendance.RecordRepository
	leaveRepo      leave.ApplicationRepository
	groupRepo      group.GroupRepository
	groupService   group.Service
	holidayService holiday.Service
	clock          clock.Clock
	loc            *time.Location
	patchLimit     int
}

func NewAttendanceService(
	tx database.Transactor,
	recordRepo attendance.RecordRepository,
	leaveRepo leave.ApplicationRepository,
	groupRepo group.GroupRepository,
	groupService group.Service,
	holidayService holiday.Service,
	clk clock.Clock,
	cfg config.AttendanceConfig,
) attendance.Service {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceServiceImpl{
		tx:             tx,
		recordRepo:     recordRepo,
		leaveRepo:      leaveRepo,
		groupRepo:      groupRepo,
		groupService:   groupService,
		holidayService: holidayService,
		clock:          clk,
		loc:            loc,
		patchLimit:     cfg.DefaultPatchLimit,
	}
}

// localMidnight places a work date (midnight UTC) on the attendance timezone.
func (a *AttendanceServiceImpl) localMidnight(workDate time.Time) time.Time {
	y, m, d := workDate.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, a.loc)
}

func (a *AttendanceServiceImpl) schedule(g group.Group, shift group.WorkShift, workDate time.Time) attendance.Schedule {
	start, end := shift.Window(a.localMidnight(workDate))
	return attendance.Schedule{
		Start:             start,
		End:               end,
		Flexible:          shift.Flexible(),
		EarlyCheckIn:      time.Duration(g.Rules.EarlyCheckInMinutes()) * time.Minute,
		OvertimeThreshold: time.Duration(g.Rules.OvertimeThresholdMinutes()) * time.Minute,
	}
}

// shiftFor resolves the employee's group and shift, mapping membership
// failures to the attendance error kinds.
func (a *AttendanceServiceImpl) shiftFor(ctx context.Context, employeeID int64) (group.Group, group.WorkShift, error) {
	g, shift, err := a.groupService.ShiftForEmployee(ctx, employeeID)
	switch {
	case errors.Is(err, group.ErrNoGroupForEmployee):
		return group.Group{}, group.WorkShift{}, attendance.ErrNoAttendanceGroup
	case errors.Is(err, group.ErrNoActiveShift):
		return group.Group{}, group.WorkShift{}, fmt.Errorf("%w: group %s has no active shift", attendance.ErrOutsideWorkTime, g.Name)
	case err != nil:
		return group.Group{}, group.WorkShift{}, err
	}
	return g, shift, nil
}

// workDateFor picks the work date a punch at now belongs to. A punch after
// midnight still inside yesterday's cross-day shift belongs to yesterday.
func (a *AttendanceServiceImpl) workDateFor(g group.Group, shift group.WorkShift, now time.Time) time.Time {
	today := attendance.DateOnly(now.In(a.loc))
	yesterday := today.AddDate(0, 0, -1)
	if prev := a.schedule(g, shift, yesterday); now.Before(prev.End) && !now.Before(prev.Start.Add(-prev.EarlyCheckIn)) {
		return yesterday
	}
	return today
}

// dayStatus reports holiday or leave when either covers the work date.
func (a *AttendanceServiceImpl) dayStatus(ctx context.Context, employeeID int64, workDate time.Time) (attendance.Status, bool, error) {
	hol, err := a.holidayService.HolidayOn(ctx, workDate, nil)
	if err != nil {
		return "", false, err
	}
	if hol != nil {
		return attendance.StatusHoliday, true, nil
	}

	leaves, err := a.leaveRepo.ListApprovedBetween(ctx, &employeeID, workDate, workDate.AddDate(0, 0, 1))
	if err != nil {
		return "", false, fmt.Errorf("failed to load approved leave: %w", err)
	}
	if len(leaves) > 0 {
		return attendance.StatusLeave, true, nil
	}
	return "", false, nil
}

// checkLocation requires the punch to fall inside one of the group's
// locations, when it has any, and returns the matched location's name.
func checkLocation(g group.Group, lat, lng *float64) (*string, error) {
	locations, err := g.Rules.Locations()
	if err != nil {
		return nil, err
	}
	if len(locations) == 0 {
		return nil, nil
	}
	if lat == nil || lng == nil {
		return nil, attendance.ErrInvalidLocation
	}

	fences := make([]utils.Fence, len(locations))
	for i, l := range locations {
		fences[i] = utils.Fence{Latitude: l.Latitude, Longitude: l.Longitude, RadiusMeters: l.RadiusMeters}
	}
	i := utils.MatchFence(*lat, *lng, fences)
	if i < 0 {
		return nil, attendance.ErrInvalidLocation
	}
	if locations[i].Name == "" {
		return nil, nil
	}
	return &locations[i].Name, nil
}

// punchLocation prefers the client-supplied label over the matched fence name.
func punchLocation(given, matched *string) *string {
	if given != nil {
		return given
	}
	return matched
}

// CheckIn implements attendance.Service.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	g, shift, err := a.shiftFor(ctx, req.EmployeeID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	site, err := checkLocation(g, req.Latitude, req.Longitude)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	now := a.clock.Now().In(a.loc)
	workDate := a.workDateFor(g, shift, now)
	sched := a.schedule(g, shift, workDate)
	if err := sched.CheckInAllowed(now); err != nil {
		return attendance.RecordResponse{}, err
	}

	var created attendance.Record
	err = a.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := a.recordRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, workDate)
		if err != nil {
			return fmt.Errorf("failed to check existing record: %w", err)
		}
		if existing != nil {
			return attendance.ErrDuplicateCheckIn
		}

		status, covered, err := a.dayStatus(ctx, req.EmployeeID, workDate)
		if err != nil {
			return err
		}
		var reason *string
		if !covered {
			status, reason = sched.CheckInStatus(now)
		}

		created, err = a.recordRepo.Create(ctx, attendance.Record{
			EmployeeID:      req.EmployeeID,
			WorkDate:        workDate,
			CheckInTime:     &now,
			CheckInType:     attendance.CheckInType(req.CheckInType),
			CheckInLocation: punchLocation(req.Location, site),
			Status:          status,
			AbnormalReason:  reason,
		})
		return err
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	slog.Info("employee checked in",
		"employee_id", created.EmployeeID,
		"record_id", created.ID,
		"work_date", created.WorkDate.Format("2006-01-02"),
		"status", created.Status,
	)
	return attendance.NewRecordResponse(created), nil
}

// CheckOut implements attendance.Service.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	g, shift, err := a.shiftFor(ctx, req.EmployeeID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	site, err := checkLocation(g, req.Latitude, req.Longitude)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	now := a.clock.Now().In(a.loc)
	var updated attendance.Record
	err = a.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		rec, err := a.openRecord(ctx, req.EmployeeID, g, shift, now)
		if err != nil {
			return err
		}
		if !now.After(*rec.CheckInTime) {
			return attendance.ErrCheckOutBeforeIn
		}

		sched := a.schedule(g, shift, rec.WorkDate)
		rec.Status, rec.AbnormalReason = sched.CheckOutStatus(rec.Status, rec.AbnormalReason, now)
		rec.CheckOutTime = &now
		rec.CheckOutLocation = punchLocation(req.Location, site)

		if err := a.recordRepo.Update(ctx, rec); err != nil {
			return fmt.Errorf("failed to update attendance record: %w", err)
		}
		updated = rec
		return nil
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	slog.Info("employee checked out",
		"employee_id", updated.EmployeeID,
		"record_id", updated.ID,
		"status", updated.Status,
	)
	return attendance.NewRecordResponse(updated), nil
}

// openRecord finds the record a check-out at now closes: today's, or
// yesterday's when a cross-day shift is still open.
func (a *AttendanceServiceImpl) openRecord(ctx context.Context, employeeID int64, g group.Group, shift group.WorkShift, now time.Time) (attendance.Record, error) {
	today := attendance.DateOnly(now)
	candidates := []time.Time{today}
	if wd := a.workDateFor(g, shift, now); !wd.Equal(today) {
		candidates = []time.Time{wd, today}
	} else if shift.CrossDay {
		candidates = append(candidates, today.AddDate(0, 0, -1))
	}

	var found *attendance.Record
	for _, d := range candidates {
		rec, err := a.recordRepo.GetByEmployeeAndDate(ctx, employeeID, d)
		if err != nil {
			return attendance.Record{}, fmt.Errorf("failed to load attendance record: %w", err)
		}
		if rec == nil || rec.CheckInTime == nil {
			continue
		}
		if rec.CheckOutTime == nil {
			return *rec, nil
		}
		if found == nil {
			found = rec
		}
	}
	if found != nil {
		return attendance.Record{}, attendance.ErrAlreadyCheckedOut
	}
	return attendance.Record{}, attendance.ErrNotCheckedIn
}

// Patch implements attendance.Service.
func (a *AttendanceServiceImpl) Patch(ctx context.Context, req attendance.PatchRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	g, shift, err := a.shiftFor(ctx, req.EmployeeID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	limit := a.patchLimit
	if v, ok := g.Rules.MaxPatchesPerMonth(); ok {
		limit = v
	}

	workDate := req.ParsedWorkDate
	var saved attendance.Record
	err = a.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := a.recordRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, workDate)
		if err != nil {
			return fmt.Errorf("failed to load attendance record: %w", err)
		}

		alreadyPatched := existing != nil && existing.CheckInType == attendance.CheckInManual &&
			(existing.CheckInTime != nil || existing.CheckOutTime != nil)
		if !alreadyPatched {
			monthStart := time.Date(workDate.Year(), workDate.Month(), 1, 0, 0, 0, 0, time.UTC)
			monthEnd := monthStart.AddDate(0, 1, -1)
			count, err := a.recordRepo.CountManualPatches(ctx, req.EmployeeID, monthStart, monthEnd)
			if err != nil {
				return fmt.Errorf("failed to count patches: %w", err)
			}
			if count >= limit {
				return fmt.Errorf("%w: %d of %d used", attendance.ErrExceedPatchLimit, count, limit)
			}
		}

		rec := attendance.Record{EmployeeID: req.EmployeeID, WorkDate: workDate}
		if existing != nil {
			rec = *existing
		}
		if req.ParsedCheckIn != nil {
			rec.CheckInTime = req.ParsedCheckIn
		}
		if req.ParsedCheckOut != nil {
			rec.CheckOutTime = req.ParsedCheckOut
		}
		if rec.CheckInTime == nil {
			return attendance.ErrNotCheckedIn
		}
		if rec.CheckOutTime != nil && !rec.CheckOutTime.After(*rec.CheckInTime) {
			return attendance.ErrCheckOutBeforeIn
		}
		rec.CheckInType = attendance.CheckInManual

		status, covered, err := a.dayStatus(ctx, req.EmployeeID, workDate)
		if err != nil {
			return err
		}
		var reason *string
		if !covered {
			sched := a.schedule(g, shift, workDate)
			status, reason = sched.CheckInStatus(*rec.CheckInTime)
			if rec.CheckOutTime != nil {
				status, reason = sched.CheckOutStatus(status, reason, *rec.CheckOutTime)
			}
		}
		note := "patched: " + req.Reason
		if reason != nil {
			note = *reason + "; " + note
		}
		rec.Status = status
		rec.AbnormalReason = &note

		if existing == nil {
			saved, err = a.recordRepo.Create(ctx, rec)
			return err
		}
		if err := a.recordRepo.Update(ctx, rec); err != nil {
			return fmt.Errorf("failed to update attendance record: %w", err)
		}
		saved = rec
		return nil
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	slog.Info("attendance record patched",
		"employee_id", saved.EmployeeID,
		"record_id", saved.ID,
		"work_date", saved.WorkDate.Format("2006-01-02"),
	)
	return attendance.NewRecordResponse(saved), nil
}

// GetRecord implements attendance.Service.
func (a *AttendanceServiceImpl) GetRecord(ctx context.Context, id int64) (attendance.RecordResponse, error) {
	rec, err := a.recordRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	return attendance.NewRecordResponse(rec), nil
}

// ListRecords implements attendance.Service.
func (a *AttendanceServiceImpl) ListRecords(ctx context.Context, filter attendance.RecordFilter) (attendance.ListRecordResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListRecordResponse{}, err
	}

	records, total, err := a.recordRepo.List(ctx, filter)
	if err != nil {
		return attendance.ListRecordResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}
	return attendance.NewListRecordResponse(records, total, filter.Page, filter.Limit), nil
}

// MarkAbsent implements attendance.Service. Members of active groups with no
// record on workDate get an absent record, or a leave record when approved
// leave covers the day. Mandatory holidays write nothing; fixed-hour groups
// skip weekends.
func (a *AttendanceServiceImpl) MarkAbsent(ctx context.Context, workDate time.Time) (int, error) {
	day := attendance.DateOnly(workDate)

	hol, err := a.holidayService.HolidayOn(ctx, day, nil)
	if err != nil {
		return 0, err
	}
	if hol != nil && hol.IsMandatory {
		slog.Debug("skipping absence marking on holiday", "work_date", day.Format("2006-01-02"), "holiday", hol.Name)
		return 0, nil
	}

	groups, err := a.groupRepo.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list attendance groups: %w", err)
	}

	leaves, err := a.leaveRepo.ListApprovedBetween(ctx, nil, day, day.AddDate(0, 0, 1))
	if err != nil {
		return 0, fmt.Errorf("failed to load approved leave: %w", err)
	}
	onLeave := make(map[int64]bool, len(leaves))
	for _, l := range leaves {
		onLeave[l.EmployeeID] = true
	}

	weekend := day.Weekday() == time.Saturday || day.Weekday() == time.Sunday
	marked := 0
	seen := make(map[int64]bool)
	for _, g := range groups {
		if weekend && g.Type == group.TypeFixed {
			continue
		}
		for _, employeeID := range g.MemberIDs {
			if seen[employeeID] {
				continue
			}
			seen[employeeID] = true

			existing, err := a.recordRepo.GetByEmployeeAndDate(ctx, employeeID, day)
			if err != nil {
				return marked, fmt.Errorf("failed to load attendance record: %w", err)
			}
			if existing != nil {
				continue
			}

			status := attendance.StatusAbsent
			if onLeave[employeeID] {
				status = attendance.StatusLeave
			}
			_, err = a.recordRepo.Create(ctx, attendance.Record{
				EmployeeID:  employeeID,
				WorkDate:    day,
				CheckInType: attendance.CheckInManual,
				Status:      status,
			})
			if errors.Is(err, attendance.ErrDuplicateCheckIn) {
				continue
			}
			if err != nil {
				return marked, fmt.Errorf("failed to create absence record: %w", err)
			}
			marked++
		}
	}

	slog.Info("absence marking finished", "work_date", day.Format("2006-01-02"), "marked", marked)
	return marked, nil
}
