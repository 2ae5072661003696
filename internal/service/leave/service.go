package leave

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/group"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/overtime"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
)

type leaveServiceImpl struct {
	tx           database.Transactor
	leaveRepo    leave.ApplicationRepository
	overtimeRepo overtime.ApplicationRepository
	groupService group.Service
	clock        clock.Clock
}

func NewLeaveService(
	tx database.Transactor,
	leaveRepo leave.ApplicationRepository,
	overtimeRepo overtime.ApplicationRepository,
	groupService group.Service,
	clk clock.Clock,
) leave.Service {
	return &leaveServiceImpl{
		tx:           tx,
		leaveRepo:    leaveRepo,
		overtimeRepo: overtimeRepo,
		groupService: groupService,
		clock:        clk,
	}
}

// Submit implements leave.Service. Checks run in a fixed order: date range,
// past start, group rules, overlap, balance.
func (s *leaveServiceImpl) Submit(ctx context.Context, req leave.SubmitRequest) (leave.ApplicationResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.ApplicationResponse{}, err
	}

	start, end := req.ParsedStart, req.ParsedEnd
	if !end.After(start) {
		return leave.ApplicationResponse{}, leave.ErrInvalidDateRange
	}

	now := s.clock.Now()
	today := attendance.DateOnly(now)
	if attendance.DateOnly(start).Before(today) {
		return leave.ApplicationResponse{}, leave.ErrDateInPast
	}

	leaveType := leave.Type(req.LeaveType)
	duration := leave.CalculateDuration(start, end)

	g, err := s.groupService.ResolveGroupForEmployee(ctx, req.EmployeeID)
	if err != nil {
		return leave.ApplicationResponse{}, err
	}
	if g != nil {
		if err := checkGroupRules(g.Rules, leaveType, start, today, duration); err != nil {
			return leave.ApplicationResponse{}, err
		}
	}

	var created leave.Application
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		candidate := leave.Application{
			EmployeeID: req.EmployeeID,
			LeaveType:  leaveType,
			StartDate:  start,
			EndDate:    end,
			Duration:   duration,
			Reason:     req.Reason,
			Status:     approval.StatusPending,
		}

		if err := s.checkOverlap(ctx, candidate); err != nil {
			return err
		}
		if err := s.checkBalance(ctx, candidate, g); err != nil {
			return err
		}

		created, err = s.leaveRepo.Create(ctx, candidate)
		return err
	})
	if err != nil {
		return leave.ApplicationResponse{}, err
	}

	slog.Info("leave application submitted",
		"application_id", created.ID,
		"employee_id", created.EmployeeID,
		"leave_type", created.LeaveType,
		"duration_days", created.Duration,
	)
	return leave.NewApplicationResponse(created), nil
}

func checkGroupRules(rules group.Rules, leaveType leave.Type, start, today time.Time, duration float64) error {
	if maxDays, ok := rules.MaxLeaveDays(); ok && maxDays > 0 && duration > maxDays {
		return fmt.Errorf("%w: %.2f days requested, %.2f allowed", leave.ErrExceedsMaximumDuration, duration, maxDays)
	}
	// Sick leave cannot be planned ahead.
	if notice, ok := rules.AdvanceNoticeDays(); ok && notice > 0 && leaveType != leave.TypeSick {
		if attendance.DateOnly(start).Before(today.AddDate(0, 0, notice)) {
			return fmt.Errorf("%w: at least %d days", leave.ErrRequiresAdvanceNotice, notice)
		}
	}
	return nil
}

func (s *leaveServiceImpl) checkOverlap(ctx context.Context, candidate leave.Application) error {
	existing, err := s.leaveRepo.ListActiveByEmployee(ctx, candidate.EmployeeID, candidate.StartDate, candidate.EndDate)
	if err != nil {
		return fmt.Errorf("failed to load existing leave: %w", err)
	}

	intervals := make([]approval.Interval, 0, len(existing))
	for _, a := range existing {
		intervals = append(intervals, a.Interval())
	}
	conflicts := approval.FindConflicts(candidate.Interval(), intervals, candidate.ID)
	if len(conflicts) > 0 {
		return fmt.Errorf("%w: conflicts with application %d", leave.ErrOverlappingLeave, conflicts[0].ID)
	}
	return nil
}

// checkBalance ensures the candidate fits the remaining allotment of the year
// it starts in. Pending applications do not reduce the balance.
func (s *leaveServiceImpl) checkBalance(ctx context.Context, candidate leave.Application, g *group.Group) error {
	if candidate.LeaveType.IsUnlimited() {
		return nil
	}
	bal, err := s.balance(ctx, candidate.EmployeeID, candidate.LeaveType, candidate.StartDate.Year(), g)
	if err != nil {
		return err
	}
	if bal.Remaining != nil && candidate.ExceedsBalance(*bal.Remaining) {
		return fmt.Errorf("%w: %.2f days requested, %.2f remaining", leave.ErrInsufficientLeaveBalance, candidate.Duration, *bal.Remaining)
	}
	return nil
}

// Approve implements leave.Service.
func (s *leaveServiceImpl) Approve(ctx context.Context, req leave.DecisionRequest) (leave.ApplicationResponse, error) {
	return s.decide(ctx, req, true)
}

// Reject implements leave.Service.
func (s *leaveServiceImpl) Reject(ctx context.Context, req leave.DecisionRequest) (leave.ApplicationResponse, error) {
	return s.decide(ctx, req, false)
}

func (s *leaveServiceImpl) decide(ctx context.Context, req leave.DecisionRequest, approve bool) (leave.ApplicationResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.ApplicationResponse{}, err
	}

	var updated leave.Application
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		app, err := s.leaveRepo.GetByID(ctx, req.ApplicationID)
		if err != nil {
			return err
		}
		if req.Version != nil && *req.Version != app.Version {
			return approval.ErrVersionConflict
		}

		now := s.clock.Now()
		if approve {
			if err := app.Approve(req.ApproverID, now); err != nil {
				return err
			}
			// Other applications may have been approved since this one was submitted.
			g, err := s.groupService.ResolveGroupForEmployee(ctx, app.EmployeeID)
			if err != nil {
				return err
			}
			if err := s.checkBalance(ctx, app, g); err != nil {
				return err
			}
		} else if err := app.Reject(req.ApproverID, now); err != nil {
			return err
		}

		updated, err = s.leaveRepo.UpdateStatus(ctx, app)
		return err
	})
	if err != nil {
		return leave.ApplicationResponse{}, err
	}

	slog.Info("leave application "+string(updated.Status),
		"application_id", updated.ID,
		"employee_id", updated.EmployeeID,
		"approver_id", req.ApproverID,
	)
	return leave.NewApplicationResponse(updated), nil
}

// Cancel implements leave.Service.
func (s *leaveServiceImpl) Cancel(ctx context.Context, req leave.CancelRequest) (leave.ApplicationResponse, error) {
	var updated leave.Application
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		app, err := s.leaveRepo.GetByID(ctx, req.ApplicationID)
		if err != nil {
			return err
		}
		if req.Version != nil && *req.Version != app.Version {
			return approval.ErrVersionConflict
		}
		if err := app.Cancel(s.clock.Now()); err != nil {
			return err
		}

		updated, err = s.leaveRepo.UpdateStatus(ctx, app)
		return err
	})
	if err != nil {
		return leave.ApplicationResponse{}, err
	}

	slog.Info("leave application cancelled", "application_id", updated.ID, "employee_id", updated.EmployeeID)
	return leave.NewApplicationResponse(updated), nil
}

// Get implements leave.Service.
func (s *leaveServiceImpl) Get(ctx context.Context, id int64) (leave.ApplicationResponse, error) {
	app, err := s.leaveRepo.GetByID(ctx, id)
	if err != nil {
		return leave.ApplicationResponse{}, err
	}
	return leave.NewApplicationResponse(app), nil
}

// List implements leave.Service.
func (s *leaveServiceImpl) List(ctx context.Context, filter leave.ApplicationFilter) (leave.ListApplicationResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListApplicationResponse{}, err
	}

	apps, total, err := s.leaveRepo.List(ctx, filter)
	if err != nil {
		return leave.ListApplicationResponse{}, fmt.Errorf("failed to list leave applications: %w", err)
	}
	return leave.NewListApplicationResponse(apps, total, filter.Page, filter.Limit), nil
}

// Balance implements leave.Service.
func (s *leaveServiceImpl) Balance(ctx context.Context, req leave.BalanceRequest) (leave.BalanceResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.BalanceResponse{}, err
	}

	g, err := s.groupService.ResolveGroupForEmployee(ctx, req.EmployeeID)
	if err != nil {
		return leave.BalanceResponse{}, err
	}
	return s.balance(ctx, req.EmployeeID, leave.Type(req.LeaveType), req.Year, g)
}

// balance is allotment minus approved days of the type starting in year.
// The allotment comes from the group's leave_allotments rule, then the type
// default; compensatory leave is earned from approved time-off overtime.
func (s *leaveServiceImpl) balance(ctx context.Context, employeeID int64, leaveType leave.Type, year int, g *group.Group) (leave.BalanceResponse, error) {
	resp := leave.BalanceResponse{
		EmployeeID: employeeID,
		LeaveType:  leaveType,
		Year:       year,
	}

	used, err := s.leaveRepo.SumApprovedDuration(ctx, employeeID, leaveType, year)
	if err != nil {
		return leave.BalanceResponse{}, fmt.Errorf("failed to sum approved leave: %w", err)
	}
	resp.Used = round2(used)

	if leaveType.IsUnlimited() {
		resp.Unlimited = true
		return resp, nil
	}

	allotment, ok := 0.0, false
	if g != nil {
		allotment, ok = g.Rules.LeaveAllotment(string(leaveType))
	}
	if !ok {
		allotment, ok = leaveType.DefaultAllotment()
	}
	if !ok && leaveType == leave.TypeCompensatory {
		from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
		timeOff := overtime.CompensationTimeOff
		hours, err := s.overtimeRepo.SumApprovedHours(ctx, employeeID, from, to, &timeOff)
		if err != nil {
			return leave.BalanceResponse{}, fmt.Errorf("failed to sum time-off overtime: %w", err)
		}
		allotment = hours / leave.CompensatoryHoursPerDay
	}

	resp.Allotment = round2(allotment)
	remaining := round2(allotment - used)
	resp.Remaining = &remaining
	return resp, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
