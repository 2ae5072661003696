package holiday

import (
	"context"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	Update(ctx context.Context, req UpdateHolidayRequest) (HolidayResponse, error)
	Get(ctx context.Context, id int64) (HolidayResponse, error)
	List(ctx context.Context, year *int) ([]HolidayResponse, error)
	Delete(ctx context.Context, id int64) error
	// HolidayOn returns the holiday on date applying to departmentID, or nil.
	HolidayOn(ctx context.Context, date time.Time, departmentID *int64) (*Config, error)
}
