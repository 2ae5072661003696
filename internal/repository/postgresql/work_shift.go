package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/group"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type workShiftRepositoryImpl struct {
	db *database.DB
}

func NewWorkShiftRepository(db *database.DB) group.WorkShiftRepository {
	return &workShiftRepositoryImpl{db: db}
}

const workShiftColumns = `
	id, group_id, name, to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
	flexible_minutes, break_times, cross_day, is_active, created_at`

func scanWorkShift(row pgx.Row) (group.WorkShift, error) {
	var (
		s          group.WorkShift
		start, end string
		breaks     []byte
	)
	err := row.Scan(
		&s.ID,
		&s.GroupID,
		&s.Name,
		&start,
		&end,
		&s.FlexibleMinutes,
		&breaks,
		&s.CrossDay,
		&s.IsActive,
		&s.CreatedAt,
	)
	if err != nil {
		return group.WorkShift{}, err
	}
	if s.StartTime, err = group.ParseTimeOfDay(start); err != nil {
		return group.WorkShift{}, err
	}
	if s.EndTime, err = group.ParseTimeOfDay(end); err != nil {
		return group.WorkShift{}, err
	}
	if len(breaks) > 0 {
		if err := json.Unmarshal(breaks, &s.BreakTimes); err != nil {
			return group.WorkShift{}, fmt.Errorf("decode break times of shift %d: %w", s.ID, err)
		}
	}
	return s, nil
}

func encodeBreakTimes(breaks []group.BreakTime) ([]byte, error) {
	if breaks == nil {
		breaks = []group.BreakTime{}
	}
	return json.Marshal(breaks)
}

// Create implements group.WorkShiftRepository.
func (r *workShiftRepositoryImpl) Create(ctx context.Context, shift group.WorkShift) (group.WorkShift, error) {
	q := GetQuerier(ctx, r.db)

	breaks, err := encodeBreakTimes(shift.BreakTimes)
	if err != nil {
		return group.WorkShift{}, err
	}

	query := `
		INSERT INTO work_shifts (
			group_id, name, start_time, end_time, flexible_minutes, break_times, cross_day, is_active, created_at
		) VALUES (
			$1, $2, $3::time, $4::time, $5, $6, $7, $8, NOW()
		) RETURNING id, created_at
	`

	err = q.QueryRow(ctx, query,
		shift.GroupID, shift.Name, shift.StartTime.String(), shift.EndTime.String(),
		shift.FlexibleMinutes, breaks, shift.CrossDay, shift.IsActive,
	).Scan(&shift.ID, &shift.CreatedAt)
	if err != nil {
		return group.WorkShift{}, fmt.Errorf("insert work shift: %w", err)
	}

	return shift, nil
}

// GetByID implements group.WorkShiftRepository.
func (r *workShiftRepositoryImpl) GetByID(ctx context.Context, id int64) (group.WorkShift, error) {
	q := GetQuerier(ctx, r.db)

	s, err := scanWorkShift(q.QueryRow(ctx, `SELECT `+workShiftColumns+` FROM work_shifts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return group.WorkShift{}, group.ErrShiftNotFound
		}
		return group.WorkShift{}, err
	}
	return s, nil
}

// ListByGroup implements group.WorkShiftRepository.
func (r *workShiftRepositoryImpl) ListByGroup(ctx context.Context, groupID int64, activeOnly bool) ([]group.WorkShift, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + workShiftColumns + `
		FROM work_shifts
		WHERE group_id = $1 AND (NOT $2 OR is_active)
		ORDER BY start_time, id`

	rows, err := q.Query(ctx, query, groupID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list work shifts: %w", err)
	}
	defer rows.Close()

	shifts := []group.WorkShift{}
	for rows.Next() {
		s, err := scanWorkShift(rows)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, s)
	}
	return shifts, rows.Err()
}

// Update implements group.WorkShiftRepository.
func (r *workShiftRepositoryImpl) Update(ctx context.Context, shift group.WorkShift) error {
	q := GetQuerier(ctx, r.db)

	breaks, err := encodeBreakTimes(shift.BreakTimes)
	if err != nil {
		return err
	}

	query := `
		UPDATE work_shifts SET
			name = $2,
			start_time = $3::time,
			end_time = $4::time,
			flexible_minutes = $5,
			break_times = $6,
			cross_day = $7,
			is_active = $8
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query,
		shift.ID, shift.Name, shift.StartTime.String(), shift.EndTime.String(),
		shift.FlexibleMinutes, breaks, shift.CrossDay, shift.IsActive,
	)
	if err != nil {
		return fmt.Errorf("update work shift: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return group.ErrShiftNotFound
	}
	return nil
}

// Delete implements group.WorkShiftRepository.
func (r *workShiftRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM work_shifts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return group.ErrShiftNotFound
	}
	return nil
}
