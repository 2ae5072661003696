package overtime

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type SubmitRequest struct {
	EmployeeID       int64  `json:"-"`
	OvertimeDate     string `json:"overtime_date"` // YYYY-MM-DD
	StartTime        string `json:"start_time"`    // HH:MM or RFC3339
	EndTime          string `json:"end_time"`      // HH:MM or RFC3339
	Reason           string `json:"reason"`
	CompensationType string `json:"compensation_type"`

	// Location is the attendance timezone HH:MM times are read in. Nil means UTC.
	Location *time.Location `json:"-"`

	ParsedDate  time.Time `json:"-"`
	ParsedStart time.Time `json:"-"`
	ParsedEnd   time.Time `json:"-"`
}

// Validate checks the shape of the request. HH:MM times are placed on the
// overtime date in Location; timestamps must start on that date there. An end
// time at or before the start is left as-is so the workflow reports
// ErrInvalidTimeRange.
func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	loc := r.Location
	if loc == nil {
		loc = time.UTC
	}

	if r.EmployeeID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	date, dateOK := validator.IsValidDate(r.OvertimeDate)
	if dateOK {
		r.ParsedDate = date
	} else {
		errs = append(errs, validator.ValidationError{
			Field:   "overtime_date",
			Message: "overtime_date must be in YYYY-MM-DD format",
		})
	}

	if t, ok := parseClock(date, r.StartTime, loc); ok && dateOK {
		if y, m, d := t.In(loc).Date(); y != date.Year() || m != date.Month() || d != date.Day() {
			errs = append(errs, validator.ValidationError{
				Field:   "start_time",
				Message: "start_time must fall on overtime_date",
			})
		}
		r.ParsedStart = t
	} else if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be HH:MM or an ISO8601 timestamp",
		})
	}
	if t, ok := parseClock(date, r.EndTime, loc); ok && dateOK {
		r.ParsedEnd = t
	} else if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be HH:MM or an ISO8601 timestamp",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if r.CompensationType == "" {
		r.CompensationType = string(CompensationPaid)
	}
	if !validator.IsInSlice(r.CompensationType, CompensationTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "compensation_type",
			Message: "compensation_type must be one of: " + strings.Join(CompensationTypeValues, ", "),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func parseClock(date time.Time, s string, loc *time.Location) (time.Time, bool) {
	if t, ok := validator.IsValidDateTime(s); ok {
		return t, true
	}
	minutes, ok := validator.ParseClock(s)
	if !ok {
		return time.Time{}, false
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, loc), true
}

type DecisionRequest struct {
	ApplicationID int64 `json:"-"`
	ApproverID    int64 `json:"-"`
	Version       *int  `json:"version,omitempty"`
}

func (r *DecisionRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ApplicationID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.ApproverID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "approver_id",
			Message: "approver_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CancelRequest struct {
	ApplicationID int64 `json:"-"`
	Version       *int  `json:"version,omitempty"`
}

type ApplicationFilter struct {
	EmployeeID   *int64  `json:"employee_id,omitempty"`
	OvertimeType *string `json:"overtime_type,omitempty"`
	Status       *string `json:"status,omitempty"`
	StartDate    *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate      *string `json:"end_date,omitempty"`   // YYYY-MM-DD

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	SortOrder string `json:"sort_order"` // asc, desc on overtime_date
}

func (f *ApplicationFilter) Validate() error {
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
	if f.OvertimeType != nil {
		if _, err := ParseType(*f.OvertimeType); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "overtime_type",
				Message: "overtime_type must be one of: " + strings.Join(TypeValues, ", "),
			})
		}
	}
	if f.Status != nil {
		if _, err := approval.ParseStatus(*f.Status); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: " + strings.Join(approval.StatusValues, ", "),
			})
		}
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

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ApplicationResponse struct {
	ID                    int64      `json:"id"`
	EmployeeID            int64      `json:"employee_id"`
	OvertimeDate          string     `json:"overtime_date"`
	StartTime             time.Time  `json:"start_time"`
	EndTime               time.Time  `json:"end_time"`
	Duration              float64    `json:"duration"`
	OvertimeType          Type       `json:"overtime_type"`
	OvertimeTypeLabel     string     `json:"overtime_type_label"`
	Multiplier            float64    `json:"multiplier"`
	Reason                string     `json:"reason"`
	Status                string     `json:"status"`
	StatusLabel           string     `json:"status_label"`
	StatusColor           string     `json:"status_color"`
	CompensationType      string     `json:"compensation_type"`
	CompensationTypeLabel string     `json:"compensation_type_label"`
	ApproverID            *int64     `json:"approver_id,omitempty"`
	ApproveTime           *time.Time `json:"approve_time,omitempty"`
	Version               int        `json:"version"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

func NewApplicationResponse(a Application) ApplicationResponse {
	return ApplicationResponse{
		ID:                    a.ID,
		EmployeeID:            a.EmployeeID,
		OvertimeDate:          a.OvertimeDate.Format("2006-01-02"),
		StartTime:             a.StartTime,
		EndTime:               a.EndTime,
		Duration:              a.Duration,
		OvertimeType:          a.OvertimeType,
		OvertimeTypeLabel:     a.OvertimeType.Label(),
		Multiplier:            a.Multiplier(),
		Reason:                a.Reason,
		Status:                string(a.Status),
		StatusLabel:           a.Status.Label(),
		StatusColor:           a.Status.Color(),
		CompensationType:      string(a.CompensationType),
		CompensationTypeLabel: a.CompensationType.Label(),
		ApproverID:            a.ApproverID,
		ApproveTime:           a.ApproveTime,
		Version:               a.Version,
		CreatedAt:             a.CreatedAt,
		UpdatedAt:             a.UpdatedAt,
	}
}

type ListApplicationResponse struct {
	TotalCount   int64                 `json:"total_count"`
	Page         int                   `json:"page"`
	Limit        int                   `json:"limit"`
	TotalPages   int                   `json:"total_pages"`
	Showing      string                `json:"showing"`
	Applications []ApplicationResponse `json:"applications"`
}

func NewListApplicationResponse(apps []Application, total int64, page, limit int) ListApplicationResponse {
	items := make([]ApplicationResponse, 0, len(apps))
	for _, a := range apps {
		items = append(items, NewApplicationResponse(a))
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

	return ListApplicationResponse{
		TotalCount:   total,
		Page:         page,
		Limit:        limit,
		TotalPages:   totalPages,
		Showing:      showing,
		Applications: items,
	}
}
