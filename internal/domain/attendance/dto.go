package attendance

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type CheckInRequest struct {
	EmployeeID  int64    `json:"-"`
	CheckInType string   `json:"check_in_type"`
	Location    *string  `json:"location,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.CheckInType == string(CheckInManual) || !validator.IsInSlice(r.CheckInType, CheckInTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in_type",
			Message: "check_in_type must be one of: " + strings.Join(CheckInTypeValues[:len(CheckInTypeValues)-1], ", "),
		})
	}

	errs = append(errs, validateCoordinates(r.Latitude, r.Longitude)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckOutRequest struct {
	EmployeeID int64    `json:"-"`
	Location   *string  `json:"location,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	errs = append(errs, validateCoordinates(r.Latitude, r.Longitude)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func validateCoordinates(lat, lng *float64) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if (lat == nil) != (lng == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude and longitude must be provided together",
		})
		return errs
	}
	if lat == nil {
		return errs
	}
	latOK, lngOK := validator.IsValidCoordinate(*lat, *lng)
	if !latOK {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if !lngOK {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}
	return errs
}

// PatchRequest for managers to fix a forgotten or wrong punch
type PatchRequest struct {
	EmployeeID   int64   `json:"employee_id"`
	WorkDate     string  `json:"work_date"`                // YYYY-MM-DD
	CheckInTime  *string `json:"check_in_time,omitempty"`  // RFC3339
	CheckOutTime *string `json:"check_out_time,omitempty"` // RFC3339
	Reason       string  `json:"reason"`

	ParsedWorkDate time.Time  `json:"-"`
	ParsedCheckIn  *time.Time `json:"-"`
	ParsedCheckOut *time.Time `json:"-"`
}

func (r *PatchRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if date, ok := validator.IsValidDate(r.WorkDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "work_date",
			Message: "work_date must be in YYYY-MM-DD format",
		})
	} else {
		r.ParsedWorkDate = date
	}

	if r.CheckInTime == nil && r.CheckOutTime == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in_time",
			Message: "at least one of check_in_time or check_out_time is required",
		})
	}
	if r.CheckInTime != nil {
		if t, ok := validator.IsValidDateTime(*r.CheckInTime); ok {
			r.ParsedCheckIn = &t
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in_time",
				Message: "check_in_time must be an ISO8601 timestamp",
			})
		}
	}
	if r.CheckOutTime != nil {
		if t, ok := validator.IsValidDateTime(*r.CheckOutTime); ok {
			r.ParsedCheckOut = &t
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out_time",
				Message: "check_out_time must be an ISO8601 timestamp",
			})
		}
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RecordFilter struct {
	EmployeeID *int64  `json:"employee_id,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status     *string `json:"status,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // work_date, check_in_time, status
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *RecordFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.StartDate != nil {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}
	if f.EndDate != nil {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.Status != nil {
		if _, err := ParseStatus(*f.Status); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: " + strings.Join(StatusValues, ", "),
			})
		}
	}

	if f.SortOrder != "" && f.SortOrder != "asc" && f.SortOrder != "desc" {
		errs = append(errs, validator.ValidationError{
			Field:   "sort_order",
			Message: "sort_order must be asc or desc",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RecordResponse struct {
	ID               int64      `json:"id"`
	EmployeeID       int64      `json:"employee_id"`
	WorkDate         string     `json:"work_date"`
	CheckInTime      *time.Time `json:"check_in_time,omitempty"`
	CheckOutTime     *time.Time `json:"check_out_time,omitempty"`
	CheckInType      string     `json:"check_in_type"`
	CheckInTypeLabel string     `json:"check_in_type_label"`
	CheckInLocation  *string    `json:"check_in_location,omitempty"`
	CheckOutLocation *string    `json:"check_out_location,omitempty"`
	Status           string     `json:"status"`
	StatusLabel      string     `json:"status_label"`
	StatusColor      string     `json:"status_color"`
	AbnormalReason   *string    `json:"abnormal_reason,omitempty"`
	WorkedMinutes    *int       `json:"worked_minutes,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func NewRecordResponse(r Record) RecordResponse {
	resp := RecordResponse{
		ID:               r.ID,
		EmployeeID:       r.EmployeeID,
		WorkDate:         r.WorkDate.Format("2006-01-02"),
		CheckInTime:      r.CheckInTime,
		CheckOutTime:     r.CheckOutTime,
		CheckInType:      string(r.CheckInType),
		CheckInTypeLabel: r.CheckInType.Label(),
		CheckInLocation:  r.CheckInLocation,
		CheckOutLocation: r.CheckOutLocation,
		Status:           string(r.Status),
		StatusLabel:      r.Status.Label(),
		StatusColor:      r.Status.Color(),
		AbnormalReason:   r.AbnormalReason,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
	if minutes, ok := r.WorkedMinutes(); ok {
		resp.WorkedMinutes = &minutes
	}
	return resp
}

type ListRecordResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
	Showing    string           `json:"showing"`
	Records    []RecordResponse `json:"records"`
}

func NewListRecordResponse(records []Record, total int64, page, limit int) ListRecordResponse {
	items := make([]RecordResponse, 0, len(records))
	for _, r := range records {
		items = append(items, NewRecordResponse(r))
	}

	totalPages := 0
	if limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(limit)))
	}
	showing := "0-0"
	if len(items) > 0 {
		from := (page-1)*limit + 1
		showing = fmt.Sprintf("%d-%d", from, from+len(items)-1)
	}

	return ListRecordResponse{
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		Showing:    showing,
		Records:    items,
	}
}
