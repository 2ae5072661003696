package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveApplicationRepositoryImpl struct {
	db *database.DB
}

func NewLeaveApplicationRepository(db *database.DB) leave.ApplicationRepository {
	return &leaveApplicationRepositoryImpl{db: db}
}

const leaveApplicationColumns = `
	id, employee_id, leave_type, start_date, end_date, duration::float8, reason,
	status, approver_id, approve_time, version, created_at, updated_at`

func scanLeaveApplication(row pgx.Row) (leave.Application, error) {
	var a leave.Application
	err := row.Scan(
		&a.ID,
		&a.EmployeeID,
		&a.LeaveType,
		&a.StartDate,
		&a.EndDate,
		&a.Duration,
		&a.Reason,
		&a.Status,
		&a.ApproverID,
		&a.ApproveTime,
		&a.Version,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}

func collectLeaveApplications(rows pgx.Rows) ([]leave.Application, error) {
	defer rows.Close()

	apps := []leave.Application{}
	for rows.Next() {
		a, err := scanLeaveApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

// Create implements leave.ApplicationRepository.
func (r *leaveApplicationRepositoryImpl) Create(ctx context.Context, application leave.Application) (leave.Application, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_applications (
			employee_id, leave_type, start_date, end_date, duration, reason,
			status, version, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, 1, NOW(), NOW()
		) RETURNING id, version, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		application.EmployeeID, application.LeaveType, application.StartDate, application.EndDate,
		application.Duration, application.Reason, application.Status,
	).Scan(&application.ID, &application.Version, &application.CreatedAt, &application.UpdatedAt)
	if err != nil {
		return leave.Application{}, fmt.Errorf("insert leave application: %w", err)
	}

	return application, nil
}

// GetByID implements leave.ApplicationRepository.
func (r *leaveApplicationRepositoryImpl) GetByID(ctx context.Context, id int64) (leave.Application, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveApplicationColumns + ` FROM leave_applications WHERE id = $1`

	a, err := scanLeaveApplication(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Application{}, leave.ErrLeaveApplicationNotFound
		}
		return leave.Application{}, err
	}
	return a, nil
}

// List implements leave.ApplicationRepository.
func (r *leaveApplicationRepositoryImpl) List(ctx context.Context, filter leave.ApplicationFilter) ([]leave.Application, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if filter.EmployeeID != nil {
		whereClause += fmt.Sprintf(" AND employee_id = $%d", argIndex)
		args = append(args, *filter.EmployeeID)
		argIndex++
	}
	if filter.LeaveType != nil {
		whereClause += fmt.Sprintf(" AND leave_type = $%d", argIndex)
		args = append(args, *filter.LeaveType)
		argIndex++
	}
	if filter.Status != nil {
		whereClause += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, *filter.Status)
		argIndex++
	}
	// Date filters select applications intersecting the range.
	if filter.StartDate != nil {
		whereClause += fmt.Sprintf(" AND end_date > $%d::date", argIndex)
		args = append(args, *filter.StartDate)
		argIndex++
	}
	if filter.EndDate != nil {
		whereClause += fmt.Sprintf(" AND start_date < ($%d::date + 1)", argIndex)
		args = append(args, *filter.EndDate)
		argIndex++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM leave_applications "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count leave applications: %w", err)
	}

	sortBy := "created_at"
	switch filter.SortBy {
	case "start_date", "end_date", "status":
		sortBy = filter.SortBy
	}
	sortOrder := "DESC"
	if filter.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	query := fmt.Sprintf(`SELECT %s FROM leave_applications %s ORDER BY %s %s, id %s LIMIT $%d OFFSET $%d`,
		leaveApplicationColumns, whereClause, sortBy, sortOrder, sortOrder, argIndex, argIndex+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list leave applications: %w", err)
	}
	apps, err := collectLeaveApplications(rows)
	if err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

// ListActiveByEmployee implements leave.ApplicationRepository.
func (r *leaveApplicationRepositoryImpl) ListActiveByEmployee(ctx context.Context, employeeID int64, from, to time.Time) ([]leave.Application, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveApplicationColumns + `
		FROM leave_applications
		WHERE employee_id = $1
		  AND status IN ($2, $3)
		  AND start_date <= $5 AND end_date >= $4
		ORDER BY start_date, id`

	rows, err := q.Query(ctx, query, employeeID, approval.StatusPending, approval.StatusApproved, from, to)
	if err != nil {
		return nil, fmt.Errorf("list active leave applications: %w", err)
	}
	return collectLeaveApplications(rows)
}

// UpdateStatus implements leave.ApplicationRepository.
func (r *leaveApplicationRepositoryImpl) UpdateStatus(ctx context.Context, application leave.Application) (leave.Application, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_applications SET
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
			return leave.Application{}, approval.ErrVersionConflict
		}
		return leave.Application{}, fmt.Errorf("update leave application status: %w", err)
	}

	return application, nil
}

// SumApprovedDuration implements leave.ApplicationRepository.
func (r *leaveApplicationRepositoryImpl) SumApprovedDuration(ctx context.Context, employeeID int64, leaveType leave.Type, year int) (float64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(duration), 0)::float8
		FROM leave_applications
		WHERE employee_id = $1 AND leave_type = $2 AND status = $3
		  AND EXTRACT(YEAR FROM start_date) = $4
	`

	var sum float64
	if err := q.QueryRow(ctx, query, employeeID, leaveType, approval.StatusApproved, year).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum approved leave duration: %w", err)
	}
	return sum, nil
}

// ListApprovedBetween implements leave.ApplicationRepository.
func (r *leaveApplicationRepositoryImpl) ListApprovedBetween(ctx context.Context, employeeID *int64, from, to time.Time) ([]leave.Application, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveApplicationColumns + `
		FROM leave_applications
		WHERE status = $1
		  AND start_date < $3 AND end_date > $2
		  AND ($4::bigint IS NULL OR employee_id = $4)
		ORDER BY start_date, id`

	rows, err := q.Query(ctx, query, approval.StatusApproved, from, to, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list approved leave applications: %w", err)
	}
	return collectLeaveApplications(rows)
}
