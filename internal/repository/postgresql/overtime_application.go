package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/overtime"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type overtimeApplicationRepositoryImpl struct {
	db *database.DB
}

func NewOvertimeApplicationRepository(db *database.DB) overtime.ApplicationRepository {
	return &overtimeApplicationRepositoryImpl{db: db}
}

const overtimeApplicationColumns = `
	id, employee_id, overtime_date, start_time, end_time, duration::float8, overtime_type,
	reason, status, compensation_type, approver_id, approve_time, version, created_at, updated_at`

func scanOvertimeApplication(row pgx.Row) (overtime.Application, error) {
	var a overtime.Application
	err := row.Scan(
		&a.ID,
		&a.EmployeeID,
		&a.OvertimeDate,
		&a.StartTime,
		&a.EndTime,
		&a.Duration,
		&a.OvertimeType,
		&a.Reason,
		&a.Status,
		&a.CompensationType,
		&a.ApproverID,
		&a.ApproveTime,
		&a.Version,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}

func collectOvertimeApplications(rows pgx.Rows) ([]overtime.Application, error) {
	defer rows.Close()

	apps := []overtime.Application{}
	for rows.Next() {
		a, err := scanOvertimeApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

// Create implements overtime.ApplicationRepository.
func (r *overtimeApplicationRepositoryImpl) Create(ctx context.Context, application overtime.Application) (overtime.Application, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO overtime_applications (
			employee_id, overtime_date, start_time, end_time, duration, overtime_type,
			reason, status, compensation_type, version, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, 1, NOW(), NOW()
		) RETURNING id, version, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		application.EmployeeID, application.OvertimeDate, application.StartTime, application.EndTime,
		application.Duration, application.OvertimeType, application.Reason, application.Status,
		application.CompensationType,
	).Scan(&application.ID, &application.Version, &application.CreatedAt, &application.UpdatedAt)
	if err != nil {
		return overtime.Application{}, fmt.Errorf("insert overtime application: %w", err)
	}

	return application, nil
}

// GetByID implements overtime.ApplicationRepository.
func (r *overtimeApplicationRepositoryImpl) GetByID(ctx context.Context, id int64) (overtime.Application, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + overtimeApplicationColumns + ` FROM overtime_applications WHERE id = $1`

	a, err := scanOvertimeApplication(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return overtime.Application{}, overtime.ErrOvertimeApplicationNotFound
		}
		return overtime.Application{}, err
	}
	return a, nil
}

// List implements overtime.ApplicationRepository.
func (r *overtimeApplicationRepositoryImpl) List(ctx context.Context, filter overtime.ApplicationFilter) ([]overtime.Application, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if filter.EmployeeID != nil {
		whereClause += fmt.Sprintf(" AND employee_id = $%d", argIndex)
		args = append(args, *filter.EmployeeID)
		argIndex++
	}
	if filter.OvertimeType != nil {
		whereClause += fmt.Sprintf(" AND overtime_type = $%d", argIndex)
		args = append(args, *filter.OvertimeType)
		argIndex++
	}
	if filter.Status != nil {
		whereClause += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, *filter.Status)
		argIndex++
	}
	if filter.StartDate != nil {
		whereClause += fmt.Sprintf(" AND overtime_date >= $%d::date", argIndex)
		args = append(args, *filter.StartDate)
		argIndex++
	}
	if filter.EndDate != nil {
		whereClause += fmt.Sprintf(" AND overtime_date <= $%d::date", argIndex)
		args = append(args, *filter.EndDate)
		argIndex++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM overtime_applications "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count overtime applications: %w", err)
	}

	sortOrder := "DESC"
	if filter.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	query := fmt.Sprintf(`SELECT %s FROM overtime_applications %s ORDER BY overtime_date %s, start_time %s, id %s LIMIT $%d OFFSET $%d`,
		overtimeApplicationColumns, whereClause, sortOrder, sortOrder, sortOrder, argIndex, argIndex+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list overtime applications: %w", err)
	}
	apps, err := collectOvertimeApplications(rows)
	if err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

// ListActiveByEmployee implements overtime.ApplicationRepository.
func (r *overtimeApplicationRepositoryImpl) ListActiveByEmployee(ctx context.Context, employeeID int64, from, to time.Time) ([]overtime.Application, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + overtimeApplicationColumns + `
		FROM overtime_applications
		WHERE employee_id = $1
		  AND status IN ($2, $3)
		  AND start_time <= $5 AND end_time >= $4
		ORDER BY start_time, id`

	rows, err := q.Query(ctx, query, employeeID, approval.StatusPending, approval.StatusApproved, from, to)
	if err != nil {
		return nil, fmt.Errorf("list active overtime applications: %w", err)
	}
	return collectOvertimeApplications(rows)
}

// UpdateStatus implements overtime.ApplicationRepository.
func (r *overtimeApplicationRepositoryImpl) UpdateStatus(ctx context.Context, application overtime.Application) (overtime.Application, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE overtime_applications SET
			status = $3,
			approver_id = $4,
			approve_time = $5,
			version = version + 1,
			updated_at = NOW()
		WHERE id = $1 AND version = $2
		RETURNING version, updated_at
	`

	err := q.QueryRow(ctx, query,
		application.ID, application.Version, application.Status, application.ApproverID, application.ApproveTime,
	).Scan(&application.Version, &application.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return overtime.Application{}, approval.ErrVersionConflict
		}
		return overtime.Application{}, fmt.Errorf("update overtime application status: %w", err)
	}

	return application, nil
}

// SumApprovedHours implements overtime.ApplicationRepository.
func (r *overtimeApplicationRepositoryImpl) SumApprovedHours(ctx context.Context, employeeID int64, from, to time.Time, compensation *overtime.CompensationType) (float64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(duration), 0)::float8
		FROM overtime_applications
		WHERE employee_id = $1 AND status = $2
		  AND overtime_date >= $3 AND overtime_date <= $4
		  AND ($5::text IS NULL OR compensation_type = $5)
	`

	var comp *string
	if compensation != nil {
		s := string(*compensation)
		comp = &s
	}

	var sum float64
	if err := q.QueryRow(ctx, query, employeeID, approval.StatusApproved, from, to, comp).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum approved overtime hours: %w", err)
	}
	return sum, nil
}

// ListApprovedBetween implements overtime.ApplicationRepository.
func (r *overtimeApplicationRepositoryImpl) ListApprovedBetween(ctx context.Context, employeeID *int64, from, to time.Time) ([]overtime.Application, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + overtimeApplicationColumns + `
		FROM overtime_applications
		WHERE status = $1
		  AND overtime_date >= $2 AND overtime_date <= $3
		  AND ($4::bigint IS NULL OR employee_id = $4)
		ORDER BY overtime_date, start_time, id`

	rows, err := q.Query(ctx, query, approval.StatusApproved, from, to, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list approved overtime applications: %w", err)
	}
	return collectOvertimeApplications(rows)
}
