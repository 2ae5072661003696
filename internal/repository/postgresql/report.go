package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

// CountByStatus implements report.ReportRepository.
func (r *reportRepositoryImpl) CountByStatus(ctx context.Context, employeeID *int64, from, to time.Time) (map[string]int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT status, COUNT(*)
		FROM attendance_records
		WHERE work_date >= $1 AND work_date <= $2
		  AND ($3::bigint IS NULL OR employee_id = $3)
		GROUP BY status
	`

	rows, err := q.Query(ctx, query, from, to, employeeID)
	if err != nil {
		return nil, fmt.Errorf("count attendance by status: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var (
			status string
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
