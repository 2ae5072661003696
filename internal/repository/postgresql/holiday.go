package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

const holidayColumns = `
	id, name, holiday_date, type, description, is_paid, is_mandatory,
	applicable_departments, is_active, created_at, updated_at`

func scanHoliday(row pgx.Row) (holiday.Config, error) {
	var c holiday.Config
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.HolidayDate,
		&c.Type,
		&c.Description,
		&c.IsPaid,
		&c.IsMandatory,
		&c.ApplicableDepartments,
		&c.IsActive,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

func collectHolidays(rows pgx.Rows) ([]holiday.Config, error) {
	defer rows.Close()

	configs := []holiday.Config{}
	for rows.Next() {
		c, err := scanHoliday(rows)
		if err != nil {
			return nil, err
		}
		configs = append(configs, c)
	}
	return configs, rows.Err()
}

// Create implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Create(ctx context.Context, config holiday.Config) (holiday.Config, error) {
	q := GetQuerier(ctx, r.db)

	if config.ApplicableDepartments == nil {
		config.ApplicableDepartments = []int64{}
	}

	query := `
		INSERT INTO holiday_configs (
			name, holiday_date, type, description, is_paid, is_mandatory,
			applicable_departments, is_active, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		config.Name, config.HolidayDate, config.Type, config.Description, config.IsPaid, config.IsMandatory,
		config.ApplicableDepartments, config.IsActive,
	).Scan(&config.ID, &config.CreatedAt, &config.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return holiday.Config{}, holiday.ErrHolidayExists
		}
		return holiday.Config{}, fmt.Errorf("insert holiday: %w", err)
	}

	return config, nil
}

// GetByID implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) GetByID(ctx context.Context, id int64) (holiday.Config, error) {
	q := GetQuerier(ctx, r.db)

	c, err := scanHoliday(q.QueryRow(ctx, `SELECT `+holidayColumns+` FROM holiday_configs WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return holiday.Config{}, holiday.ErrHolidayNotFound
		}
		return holiday.Config{}, err
	}
	return c, nil
}

// List implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) List(ctx context.Context, year *int) ([]holiday.Config, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + holidayColumns + `
		FROM holiday_configs
		WHERE ($1::int IS NULL OR EXTRACT(YEAR FROM holiday_date) = $1)
		ORDER BY holiday_date, id`

	rows, err := q.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("list holidays: %w", err)
	}
	return collectHolidays(rows)
}

// ListBetween implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) ListBetween(ctx context.Context, from, to time.Time) ([]holiday.Config, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + holidayColumns + `
		FROM holiday_configs
		WHERE is_active AND holiday_date >= $1 AND holiday_date <= $2
		ORDER BY holiday_date, id`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list holidays between: %w", err)
	}
	return collectHolidays(rows)
}

// Update implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Update(ctx context.Context, config holiday.Config) error {
	q := GetQuerier(ctx, r.db)

	if config.ApplicableDepartments == nil {
		config.ApplicableDepartments = []int64{}
	}

	query := `
		UPDATE holiday_configs SET
			name = $2,
			holiday_date = $3,
			type = $4,
			description = $5,
			is_paid = $6,
			is_mandatory = $7,
			applicable_departments = $8,
			is_active = $9,
			updated_at = NOW()
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query,
		config.ID, config.Name, config.HolidayDate, config.Type, config.Description,
		config.IsPaid, config.IsMandatory, config.ApplicableDepartments, config.IsActive,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return holiday.ErrHolidayExists
		}
		return fmt.Errorf("update holiday: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}
	return nil
}

// Delete implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM holiday_configs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return holiday.ErrHolidayNotFound
	}
	return nil
}
