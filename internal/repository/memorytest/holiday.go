package memorytest

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/holiday"
)

type holidayRepository struct{ s *Store }

func NewHolidayRepository(s *Store) holiday.HolidayRepository {
	return &holidayRepository{s: s}
}

func (r *holidayRepository) Create(ctx context.Context, c holiday.Config) (holiday.Config, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.holidays {
		if existing.Name == c.Name && holiday.SameDay(existing.HolidayDate, c.HolidayDate) {
			return holiday.Config{}, holiday.ErrHolidayExists
		}
	}
	c.ID = r.s.id()
	c.CreatedAt = r.s.now()
	c.UpdatedAt = c.CreatedAt
	r.s.holidays[c.ID] = c
	return c, nil
}

func (r *holidayRepository) GetByID(ctx context.Context, id int64) (holiday.Config, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.holidays[id]
	if !ok {
		return holiday.Config{}, holiday.ErrHolidayNotFound
	}
	return c, nil
}

func (r *holidayRepository) sorted(keep func(holiday.Config) bool) []holiday.Config {
	out := []holiday.Config{}
	for _, c := range r.s.holidays {
		if keep(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].HolidayDate.Equal(out[j].HolidayDate) {
			return out[i].HolidayDate.Before(out[j].HolidayDate)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *holidayRepository) List(ctx context.Context, year *int) ([]holiday.Config, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.sorted(func(c holiday.Config) bool {
		return year == nil || c.HolidayDate.Year() == *year
	}), nil
}

func (r *holidayRepository) ListBetween(ctx context.Context, from, to time.Time) ([]holiday.Config, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.sorted(func(c holiday.Config) bool {
		return c.IsActive && betweenDates(c.HolidayDate, from, to)
	}), nil
}

func (r *holidayRepository) Update(ctx context.Context, c holiday.Config) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.holidays[c.ID]
	if !ok {
		return holiday.ErrHolidayNotFound
	}
	c.CreatedAt = stored.CreatedAt
	c.UpdatedAt = r.s.now()
	r.s.holidays[c.ID] = c
	return nil
}

func (r *holidayRepository) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.holidays[id]; !ok {
		return holiday.ErrHolidayNotFound
	}
	delete(r.s.holidays, id)
	return nil
}
