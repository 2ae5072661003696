package attendance

import (
	"context"
	"time"
)

// RecordRepository defines data access methods for attendance records.
type RecordRepository interface {
	Create(ctx context.Context, record Record) (Record, error)

	// GetByID returns ErrRecordNotFound when no row matches.
	GetByID(ctx context.Context, id int64) (Record, error)

	// GetByEmployeeAndDate returns nil when the employee has no record for the date.
	GetByEmployeeAndDate(ctx context.Context, employeeID int64, workDate time.Time) (*Record, error)

	Update(ctx context.Context, record Record) error

	List(ctx context.Context, filter RecordFilter) ([]Record, int64, error)

	// ListBetween returns every record with from <= work_date <= to, for reporting.
	ListBetween(ctx context.Context, employeeID *int64, from, to time.Time) ([]Record, error)

	// CountManualPatches counts manual records carrying a punch time with from <= work_date <= to.
	// Absence records written by the job have no punch and are not counted.
	CountManualPatches(ctx context.Context, employeeID int64, from, to time.Time) (int, error)
}
