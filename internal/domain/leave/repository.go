package leave

import (
	"context"
	"time"
)

// ApplicationRepository - interface for leave_applications table
type ApplicationRepository interface {
	Create(ctx context.Context, application Application) (Application, error)
	GetByID(ctx context.Context, id int64) (Application, error)
	List(ctx context.Context, filter ApplicationFilter) ([]Application, int64, error)

	// ListActiveByEmployee returns pending and approved applications of the employee
	// that touch [from, to]. Exact half-open overlap is decided by approval.FindConflicts.
	ListActiveByEmployee(ctx context.Context, employeeID int64, from, to time.Time) ([]Application, error)

	// UpdateStatus writes status, approver and approve time when the stored version
	// matches application.Version, and bumps the version. Returns approval.ErrVersionConflict otherwise.
	UpdateStatus(ctx context.Context, application Application) (Application, error)

	// SumApprovedDuration sums approved durations (days) of a type whose start falls in year.
	SumApprovedDuration(ctx context.Context, employeeID int64, leaveType Type, year int) (float64, error)

	// ListApprovedBetween returns approved applications intersecting [from, to).
	ListApprovedBetween(ctx context.Context, employeeID *int64, from, to time.Time) ([]Application, error)
}
