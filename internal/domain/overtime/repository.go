package overtime

import (
	"context"
	"time"
)

// ApplicationRepository - interface for overtime_applications table
type ApplicationRepository interface {
	Create(ctx context.Context, application Application) (Application, error)
	GetByID(ctx context.Context, id int64) (Application, error)
	List(ctx context.Context, filter ApplicationFilter) ([]Application, int64, error)

	// ListActiveByEmployee returns pending and approved applications of the employee touching [from, to].
	ListActiveByEmployee(ctx context.Context, employeeID int64, from, to time.Time) ([]Application, error)

	// UpdateStatus is version-checked like leave.ApplicationRepository.UpdateStatus.
	UpdateStatus(ctx context.Context, application Application) (Application, error)

	// SumApprovedHours sums approved durations with from <= overtime_date <= to.
	// A nil compensation matches every compensation type.
	SumApprovedHours(ctx context.Context, employeeID int64, from, to time.Time, compensation *CompensationType) (float64, error)

	ListApprovedBetween(ctx context.Context, employeeID *int64, from, to time.Time) ([]Application, error)
}
