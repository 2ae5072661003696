package holiday

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/holiday"
)

type holidayServiceImpl struct {
	holidayRepo holiday.HolidayRepository
}

func NewHolidayService(holidayRepo holiday.HolidayRepository) holiday.Service {
	return &holidayServiceImpl{holidayRepo: holidayRepo}
}

func configFromRequest(req holiday.CreateHolidayRequest) holiday.Config {
	boolOr := func(b *bool, fallback bool) bool {
		if b == nil {
			return fallback
		}
		return *b
	}
	return holiday.Config{
		Name:                  req.Name,
		HolidayDate:           req.ParsedDate,
		Type:                  holiday.Type(req.Type),
		Description:           req.Description,
		IsPaid:                boolOr(req.IsPaid, true),
		IsMandatory:           boolOr(req.IsMandatory, true),
		ApplicableDepartments: req.ApplicableDepartments,
		IsActive:              boolOr(req.IsActive, true),
	}
}

// Create implements holiday.Service.
func (s *holidayServiceImpl) Create(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}

	created, err := s.holidayRepo.Create(ctx, configFromRequest(req))
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	slog.Info("holiday created", "holiday_id", created.ID, "date", req.HolidayDate)
	return holiday.NewHolidayResponse(created), nil
}

// Update implements holiday.Service.
func (s *holidayServiceImpl) Update(ctx context.Context, req holiday.UpdateHolidayRequest) (holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}

	existing, err := s.holidayRepo.GetByID(ctx, req.ID)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	updated := configFromRequest(req.CreateHolidayRequest)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	if err := s.holidayRepo.Update(ctx, updated); err != nil {
		return holiday.HolidayResponse{}, err
	}

	return holiday.NewHolidayResponse(updated), nil
}

// Get implements holiday.Service.
func (s *holidayServiceImpl) Get(ctx context.Context, id int64) (holiday.HolidayResponse, error) {
	c, err := s.holidayRepo.GetByID(ctx, id)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}
	return holiday.NewHolidayResponse(c), nil
}

// List implements holiday.Service.
func (s *holidayServiceImpl) List(ctx context.Context, year *int) ([]holiday.HolidayResponse, error) {
	configs, err := s.holidayRepo.List(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	resp := make([]holiday.HolidayResponse, 0, len(configs))
	for _, c := range configs {
		resp = append(resp, holiday.NewHolidayResponse(c))
	}
	return resp, nil
}

// Delete implements holiday.Service.
func (s *holidayServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.holidayRepo.Delete(ctx, id)
}

// HolidayOn implements holiday.Service.
func (s *holidayServiceImpl) HolidayOn(ctx context.Context, date time.Time, departmentID *int64) (*holiday.Config, error) {
	configs, err := s.holidayRepo.ListBetween(ctx, date, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	c, ok := holiday.Find(configs, date, departmentID)
	if !ok {
		return nil, nil
	}
	return &c, nil
}
