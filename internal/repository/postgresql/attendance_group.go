package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/group"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceGroupRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceGroupRepository(db *database.DB) group.GroupRepository {
	return &attendanceGroupRepositoryImpl{db: db}
}

const attendanceGroupColumns = `id, name, type, rules, member_ids, is_active, version, created_at, updated_at`

func scanAttendanceGroup(row pgx.Row) (group.Group, error) {
	var (
		g     group.Group
		rules []byte
	)
	err := row.Scan(
		&g.ID,
		&g.Name,
		&g.Type,
		&rules,
		&g.MemberIDs,
		&g.IsActive,
		&g.Version,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		return group.Group{}, err
	}
	if err := g.Rules.Scan(rules); err != nil {
		return group.Group{}, fmt.Errorf("decode rules of group %d: %w", g.ID, err)
	}
	if g.MemberIDs == nil {
		g.MemberIDs = []int64{}
	}
	return g, nil
}

func collectAttendanceGroups(rows pgx.Rows) ([]group.Group, error) {
	defer rows.Close()

	groups := []group.Group{}
	for rows.Next() {
		g, err := scanAttendanceGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// Create implements group.GroupRepository.
func (r *attendanceGroupRepositoryImpl) Create(ctx context.Context, g group.Group) (group.Group, error) {
	q := GetQuerier(ctx, r.db)

	rules, err := g.Rules.Value()
	if err != nil {
		return group.Group{}, err
	}
	if g.MemberIDs == nil {
		g.MemberIDs = []int64{}
	}

	query := `
		INSERT INTO attendance_groups (name, type, rules, member_ids, is_active, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, 1, NOW(), NOW())
		RETURNING id, version, created_at, updated_at
	`

	err = q.QueryRow(ctx, query, g.Name, g.Type, rules, g.MemberIDs, g.IsActive).
		Scan(&g.ID, &g.Version, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return group.Group{}, group.ErrGroupNameExists
		}
		return group.Group{}, fmt.Errorf("insert attendance group: %w", err)
	}

	return g, nil
}

// GetByID implements group.GroupRepository.
func (r *attendanceGroupRepositoryImpl) GetByID(ctx context.Context, id int64) (group.Group, error) {
	q := GetQuerier(ctx, r.db)

	g, err := scanAttendanceGroup(q.QueryRow(ctx, `SELECT `+attendanceGroupColumns+` FROM attendance_groups WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return group.Group{}, group.ErrGroupNotFound
		}
		return group.Group{}, err
	}
	return g, nil
}

// GetByName implements group.GroupRepository.
func (r *attendanceGroupRepositoryImpl) GetByName(ctx context.Context, name string) (*group.Group, error) {
	q := GetQuerier(ctx, r.db)

	g, err := scanAttendanceGroup(q.QueryRow(ctx, `SELECT `+attendanceGroupColumns+` FROM attendance_groups WHERE name = $1`, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

// List implements group.GroupRepository.
func (r *attendanceGroupRepositoryImpl) List(ctx context.Context) ([]group.Group, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+attendanceGroupColumns+` FROM attendance_groups ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list attendance groups: %w", err)
	}
	return collectAttendanceGroups(rows)
}

// ListActive implements group.GroupRepository.
func (r *attendanceGroupRepositoryImpl) ListActive(ctx context.Context) ([]group.Group, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+attendanceGroupColumns+` FROM attendance_groups WHERE is_active ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list active attendance groups: %w", err)
	}
	return collectAttendanceGroups(rows)
}

// Update implements group.GroupRepository.
func (r *attendanceGroupRepositoryImpl) Update(ctx context.Context, g group.Group) (group.Group, error) {
	q := GetQuerier(ctx, r.db)

	rules, err := g.Rules.Value()
	if err != nil {
		return group.Group{}, err
	}
	if g.MemberIDs == nil {
		g.MemberIDs = []int64{}
	}

	query := `
		UPDATE attendance_groups SET
			name = $3,
			type = $4,
			rules = $5,
			member_ids = $6,
			is_active = $7,
			version = version + 1,
			updated_at = NOW()
		WHERE id = $1 AND version = $2
		RETURNING version, updated_at
	`

	err = q.QueryRow(ctx, query, g.ID, g.Version, g.Name, g.Type, rules, g.MemberIDs, g.IsActive).
		Scan(&g.Version, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return group.Group{}, approval.ErrVersionConflict
		}
		if isUniqueViolation(err) {
			return group.Group{}, group.ErrGroupNameExists
		}
		return group.Group{}, fmt.Errorf("update attendance group: %w", err)
	}

	return g, nil
}

// Delete implements group.GroupRepository.
func (r *attendanceGroupRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM attendance_groups WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return group.ErrGroupNotFound
	}
	return nil
}
