package report

import (
	"context"
	"time"
)

// ReportRepository holds aggregate queries the database answers directly.
type ReportRepository interface {
	// CountByStatus groups records with from <= work_date <= to by status.
	CountByStatus(ctx context.Context, employeeID *int64, from, to time.Time) (map[string]int, error)
}
