package holiday

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type CreateHolidayRequest struct {
	Name                  string  `json:"name"`
	HolidayDate           string  `json:"holiday_date"` // YYYY-MM-DD
	Type                  string  `json:"type"`
	Description           *string `json:"description,omitempty"`
	IsPaid                *bool   `json:"is_paid,omitempty"`
	IsMandatory           *bool   `json:"is_mandatory,omitempty"`
	ApplicableDepartments []int64 `json:"applicable_departments,omitempty"`
	IsActive              *bool   `json:"is_active,omitempty"`

	ParsedDate time.Time `json:"-"`
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}
	if date, ok := validator.IsValidDate(r.HolidayDate); ok {
		r.ParsedDate = date
	} else {
		errs = append(errs, validator.ValidationError{
			Field:   "holiday_date",
			Message: "holiday_date must be in YYYY-MM-DD format",
		})
	}
	if !validator.IsInSlice(r.Type, TypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: " + strings.Join(TypeValues, ", "),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateHolidayRequest struct {
	ID int64 `json:"-"`
	CreateHolidayRequest
}

type HolidayResponse struct {
	ID                    int64     `json:"id"`
	Name                  string    `json:"name"`
	HolidayDate           string    `json:"holiday_date"`
	Type                  Type      `json:"type"`
	TypeLabel             string    `json:"type_label"`
	Description           *string   `json:"description,omitempty"`
	IsPaid                bool      `json:"is_paid"`
	IsMandatory           bool      `json:"is_mandatory"`
	ApplicableDepartments []int64   `json:"applicable_departments"`
	IsActive              bool      `json:"is_active"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func NewHolidayResponse(c Config) HolidayResponse {
	departments := c.ApplicableDepartments
	if departments == nil {
		departments = []int64{}
	}
	return HolidayResponse{
		ID:                    c.ID,
		Name:                  c.Name,
		HolidayDate:           c.HolidayDate.Format("2006-01-02"),
		Type:                  c.Type,
		TypeLabel:             c.Type.Label(),
		Description:           c.Description,
		IsPaid:                c.IsPaid,
		IsMandatory:           c.IsMandatory,
		ApplicableDepartments: departments,
		IsActive:              c.IsActive,
		CreatedAt:             c.CreatedAt,
		UpdatedAt:             c.UpdatedAt,
	}
}
