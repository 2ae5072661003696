package overtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/group"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/overtime"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
)

type overtimeServiceImpl struct {
	tx             database.Transactor
	overtimeRepo   overtime.ApplicationRepository
	groupService   group.Service
	holidayService holiday.Service
	clock          clock.Clock
	loc            *time.Location
}

func NewOvertimeService(
	tx database.Transactor,
	overtimeRepo overtime.ApplicationRepository,
	groupService group.Service,
	holidayService holiday.Service,
	clk clock.Clock,
	loc *time.Location,
) overtime.Service {
	if loc == nil {
		loc = time.UTC
	}
	return &overtimeServiceImpl{
		tx:             tx,
		overtimeRepo:   overtimeRepo,
		groupService:   groupService,
		holidayService: holidayService,
		clock:          clk,
		loc:            loc,
	}
}

// Submit implements overtime.Service.
func (s *overtimeServiceImpl) Submit(ctx context.Context, req overtime.SubmitRequest) (overtime.ApplicationResponse, error) {
	req.Location = s.loc
	if err := req.Validate(); err != nil {
		return overtime.ApplicationResponse{}, err
	}

	start, end := req.ParsedStart, req.ParsedEnd
	if !end.After(start) {
		return overtime.ApplicationResponse{}, overtime.ErrInvalidTimeRange
	}

	duration := overtime.CalculateDuration(start, end)
	if duration <= 0 || duration > overtime.MaxHoursPerApplication {
		return overtime.ApplicationResponse{}, overtime.ErrImplausibleDuration
	}

	hol, err := s.holidayService.HolidayOn(ctx, req.ParsedDate, nil)
	if err != nil {
		return overtime.ApplicationResponse{}, err
	}
	overtimeType := overtime.DeriveType(req.ParsedDate, hol != nil)

	g, err := s.groupService.ResolveGroupForEmployee(ctx, req.EmployeeID)
	if err != nil {
		return overtime.ApplicationResponse{}, err
	}

	maxHours := overtime.DefaultMaxOvertimeHours
	if g != nil {
		if v, ok := g.Rules.MaxOvertimeHours(); ok && v > 0 {
			maxHours = v
		}
	}
	if duration > maxHours {
		return overtime.ApplicationResponse{}, fmt.Errorf("%w: %.2f hours requested, %.2f allowed", overtime.ErrExceedsMaximumDuration, duration, maxHours)
	}

	if g != nil && overtimeType == overtime.TypeWorkday {
		if err := s.checkShift(ctx, req.EmployeeID, req.ParsedDate, start, end); err != nil {
			return overtime.ApplicationResponse{}, err
		}
	}

	var created overtime.Application
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		candidate := overtime.Application{
			EmployeeID:       req.EmployeeID,
			OvertimeDate:     req.ParsedDate,
			StartTime:        start,
			EndTime:          end,
			Duration:         duration,
			OvertimeType:     overtimeType,
			Reason:           req.Reason,
			Status:           approval.StatusPending,
			CompensationType: overtime.CompensationType(req.CompensationType),
		}

		existing, err := s.overtimeRepo.ListActiveByEmployee(ctx, candidate.EmployeeID, start, end)
		if err != nil {
			return fmt.Errorf("failed to load existing overtime: %w", err)
		}
		intervals := make([]approval.Interval, 0, len(existing))
		for _, a := range existing {
			intervals = append(intervals, a.Interval())
		}
		if conflicts := approval.FindConflicts(candidate.Interval(), intervals, 0); len(conflicts) > 0 {
			return fmt.Errorf("%w: conflicts with application %d", overtime.ErrOverlappingOvertime, conflicts[0].ID)
		}

		created, err = s.overtimeRepo.Create(ctx, candidate)
		return err
	})
	if err != nil {
		return overtime.ApplicationResponse{}, err
	}

	slog.Info("overtime application submitted",
		"application_id", created.ID,
		"employee_id", created.EmployeeID,
		"overtime_type", created.OvertimeType,
		"duration_hours", created.Duration,
	)
	return overtime.NewApplicationResponse(created), nil
}

// checkShift rejects workday overtime that falls inside the regular shift.
// Employees whose group has no active shift are not restricted.
func (s *overtimeServiceImpl) checkShift(ctx context.Context, employeeID int64, date, start, end time.Time) error {
	_, shift, err := s.groupService.ShiftForEmployee(ctx, employeeID)
	if errors.Is(err, group.ErrNoActiveShift) || errors.Is(err, group.ErrNoGroupForEmployee) {
		return nil
	}
	if err != nil {
		return err
	}

	y, m, d := date.Date()
	shiftStart, shiftEnd := shift.Window(time.Date(y, m, d, 0, 0, 0, 0, s.loc))
	if approval.Overlaps(start, end, shiftStart, shiftEnd) {
		return fmt.Errorf("%w: shift %s runs %s-%s", overtime.ErrOverlapsShift, shift.Name, shift.StartTime, shift.EndTime)
	}
	return nil
}

// Approve implements overtime.Service.
func (s *overtimeServiceImpl) Approve(ctx context.Context, req overtime.DecisionRequest) (overtime.ApplicationResponse, error) {
	return s.decide(ctx, req, true)
}

// Reject implements overtime.Service.
func (s *overtimeServiceImpl) Reject(ctx context.Context, req overtime.DecisionRequest) (overtime.ApplicationResponse, error) {
	return s.decide(ctx, req, false)
}

func (s *overtimeServiceImpl) decide(ctx context.Context, req overtime.DecisionRequest, approve bool) (overtime.ApplicationResponse, error) {
	if err := req.Validate(); err != nil {
		return overtime.ApplicationResponse{}, err
	}

	var updated overtime.Application
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		app, err := s.overtimeRepo.GetByID(ctx, req.ApplicationID)
		if err != nil {
			return err
		}
		if req.Version != nil && *req.Version != app.Version {
			return approval.ErrVersionConflict
		}

		now := s.clock.Now()
		if approve {
			err = app.Approve(req.ApproverID, now)
		} else {
			err = app.Reject(req.ApproverID, now)
		}
		if err != nil {
			return err
		}

		updated, err = s.overtimeRepo.UpdateStatus(ctx, app)
		return err
	})
	if err != nil {
		return overtime.ApplicationResponse{}, err
	}

	slog.Info("overtime application "+string(updated.Status),
		"application_id", updated.ID,
		"employee_id", updated.EmployeeID,
		"approver_id", req.ApproverID,
	)
	return overtime.NewApplicationResponse(updated), nil
}

// Cancel implements overtime.Service.
func (s *overtimeServiceImpl) Cancel(ctx context.Context, req overtime.CancelRequest) (overtime.ApplicationResponse, error) {
	var updated overtime.Application
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		app, err := s.overtimeRepo.GetByID(ctx, req.ApplicationID)
		if err != nil {
			return err
		}
		if req.Version != nil && *req.Version != app.Version {
			return approval.ErrVersionConflict
		}
		if err := app.Cancel(s.clock.Now()); err != nil {
			return err
		}

		updated, err = s.overtimeRepo.UpdateStatus(ctx, app)
		return err
	})
	if err != nil {
		return overtime.ApplicationResponse{}, err
	}

	slog.Info("overtime application cancelled", "application_id", updated.ID, "employee_id", updated.EmployeeID)
	return overtime.NewApplicationResponse(updated), nil
}

// Get implements overtime.Service.
func (s *overtimeServiceImpl) Get(ctx context.Context, id int64) (overtime.ApplicationResponse, error) {
	app, err := s.overtimeRepo.GetByID(ctx, id)
	if err != nil {
		return overtime.ApplicationResponse{}, err
	}
	return overtime.NewApplicationResponse(app), nil
}

// List implements overtime.Service.
func (s *overtimeServiceImpl) List(ctx context.Context, filter overtime.ApplicationFilter) (overtime.ListApplicationResponse, error) {
	if err := filter.Validate(); err != nil {
		return overtime.ListApplicationResponse{}, err
	}

	apps, total, err := s.overtimeRepo.List(ctx, filter)
	if err != nil {
		return overtime.ListApplicationResponse{}, fmt.Errorf("failed to list overtime applications: %w", err)
	}
	return overtime.NewListApplicationResponse(apps, total, filter.Page, filter.Limit), nil
}
