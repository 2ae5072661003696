package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRecordRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRecordRepository(db *database.DB) attendance.RecordRepository {
	return &attendanceRecordRepositoryImpl{db: db}
}

const attendanceRecordColumns = `
	id, employee_id, work_date, check_in_time, check_out_time, check_in_type,
	check_in_location, check_out_location, status, abnormal_reason, created_at, updated_at`

func scanAttendanceRecord(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID,
		&rec.EmployeeID,
		&rec.WorkDate,
		&rec.CheckInTime,
		&rec.CheckOutTime,
		&rec.CheckInType,
		&rec.CheckInLocation,
		&rec.CheckOutLocation,
		&rec.Status,
		&rec.AbnormalReason,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	return rec, err
}

// Create implements attendance.RecordRepository.
func (r *attendanceRecordRepositoryImpl) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (
			employee_id, work_date, check_in_time, check_out_time, check_in_type,
			check_in_location, check_out_location, status, abnormal_reason,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9,
			NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.EmployeeID, record.WorkDate, record.CheckInTime, record.CheckOutTime, record.CheckInType,
		record.CheckInLocation, record.CheckOutLocation, record.Status, record.AbnormalReason,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.Record{}, attendance.ErrDuplicateCheckIn
		}
		return attendance.Record{}, fmt.Errorf("insert attendance record: %w", err)
	}

	return record, nil
}

// GetByID implements attendance.RecordRepository.
func (r *attendanceRecordRepositoryImpl) GetByID(ctx context.Context, id int64) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceRecordColumns + ` FROM attendance_records WHERE id = $1`

	rec, err := scanAttendanceRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, err
	}
	return rec, nil
}

// GetByEmployeeAndDate implements attendance.RecordRepository.
func (r *attendanceRecordRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID int64, workDate time.Time) (*attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceRecordColumns + ` FROM attendance_records WHERE employee_id = $1 AND work_date = $2`

	rec, err := scanAttendanceRecord(q.QueryRow(ctx, query, employeeID, workDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// Update implements attendance.RecordRepository.
func (r *attendanceRecordRepositoryImpl) Update(ctx context.Context, record attendance.Record) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records SET
			check_in_time = $2,
			check_out_time = $3,
			check_in_type = $4,
			check_in_location = $5,
			check_out_location = $6,
			status = $7,
			abnormal_reason = $8,
			updated_at = NOW()
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query,
		record.ID, record.CheckInTime, record.CheckOutTime, record.CheckInType,
		record.CheckInLocation, record.CheckOutLocation, record.Status, record.AbnormalReason,
	)
	if err != nil {
		return fmt.Errorf("update attendance record: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}
	return nil
}

// List implements attendance.RecordRepository.
func (r *attendanceRecordRepositoryImpl) List(ctx context.Context, filter attendance.RecordFilter) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if filter.EmployeeID != nil {
		whereClause += fmt.Sprintf(" AND employee_id = $%d", argIndex)
		args = append(args, *filter.EmployeeID)
		argIndex++
	}
	if filter.StartDate != nil {
		whereClause += fmt.Sprintf(" AND work_date >= $%d", argIndex)
		args = append(args, *filter.StartDate)
		argIndex++
	}
	if filter.EndDate != nil {
		whereClause += fmt.Sprintf(" AND work_date <= $%d", argIndex)
		args = append(args, *filter.EndDate)
		argIndex++
	}
	if filter.Status != nil {
		whereClause += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, *filter.Status)
		argIndex++
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM attendance_records " + whereClause
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count attendance records: %w", err)
	}

	sortBy := "work_date"
	switch filter.SortBy {
	case "check_in_time", "status", "employee_id":
		sortBy = filter.SortBy
	}
	sortOrder := "DESC"
	if filter.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	query := fmt.Sprintf(`SELECT %s FROM attendance_records %s ORDER BY %s %s, id %s LIMIT $%d OFFSET $%d`,
		attendanceRecordColumns, whereClause, sortBy, sortOrder, sortOrder, argIndex, argIndex+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list attendance records: %w", err)
	}
	defer rows.Close()

	records := []attendance.Record{}
	for rows.Next() {
		rec, err := scanAttendanceRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// ListBetween implements attendance.RecordRepository.
func (r *attendanceRecordRepositoryImpl) ListBetween(ctx context.Context, employeeID *int64, from, to time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceRecordColumns + `
		FROM attendance_records
		WHERE work_date >= $1 AND work_date <= $2
		  AND ($3::bigint IS NULL OR employee_id = $3)
		ORDER BY work_date, employee_id`

	rows, err := q.Query(ctx, query, from, to, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list attendance records between: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanAttendanceRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// CountManualPatches implements attendance.RecordRepository.
func (r *attendanceRecordRepositoryImpl) CountManualPatches(ctx context.Context, employeeID int64, from, to time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*) FROM attendance_records
		WHERE employee_id = $1 AND check_in_type = $2
		  AND (check_in_time IS NOT NULL OR check_out_time IS NOT NULL)
		  AND work_date >= $3 AND work_date <= $4
	`

	var count int
	if err := q.QueryRow(ctx, query, employeeID, attendance.CheckInManual, from, to).Scan(&count); err != nil {
		return 0, fmt.Errorf("count manual patches: %w", err)
	}
	return count, nil
}
