package holiday

import (
	"context"
	"time"
)

// HolidayRepository - interface for holiday_configs table
type HolidayRepository interface {
	Create(ctx context.Context, config Config) (Config, error)
	GetByID(ctx context.Context, id int64) (Config, error)
	List(ctx context.Context, year *int) ([]Config, error)
	// ListBetween returns active holidays with from <= holiday_date <= to.
	ListBetween(ctx context.Context, from, to time.Time) ([]Config, error)
	Update(ctx context.Context, config Config) error
	Delete(ctx context.Context, id int64) error
}
