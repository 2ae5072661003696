package leave

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type SubmitRequest struct {
	EmployeeID int64  `json:"-"`
	LeaveType  string `json:"leave_type"`
	StartDate  string `json:"start_date"` // YYYY-MM-DD or RFC3339
	EndDate    string `json:"end_date"`   // YYYY-MM-DD or RFC3339
	Reason     string `json:"reason"`

	ParsedStart time.Time `json:"-"`
	ParsedEnd   time.Time `json:"-"`
}

// Validate checks the shape of the request. Date ordering is a workflow rule
// and is checked by the service so it surfaces as ErrInvalidDateRange.
func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if _, err := ParseType(r.LeaveType); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of: " + strings.Join(TypeValues, ", "),
		})
	}
	if t, ok := validator.ParseDateOrDateTime(r.StartDate); ok {
		r.ParsedStart = t
	} else {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be YYYY-MM-DD or an ISO8601 timestamp",
		})
	}
	if t, ok := validator.ParseDateOrDateTime(r.EndDate); ok {
		r.ParsedEnd = t
	} else {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be YYYY-MM-DD or an ISO8601 timestamp",
		})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}
	if len(r.Reason) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// DecisionRequest approves or rejects an application. Version, when set, must
// match the version the approver was looking at.
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

type BalanceRequest struct {
	EmployeeID int64  `json:"employee_id"`
	LeaveType  string `json:"leave_type"`
	Year       int    `json:"year"`
}

func (r *BalanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if _, err := ParseType(r.LeaveType); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of: " + strings.Join(TypeValues, ", "),
		})
	}
	if r.Year <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be a positive integer",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BalanceResponse struct {
	EmployeeID int64    `json:"employee_id"`
	LeaveType  Type     `json:"leave_type"`
	Year       int      `json:"year"`
	Unlimited  bool     `json:"unlimited"`
	Allotment  float64  `json:"allotment"`
	Used       float64  `json:"used"`
	Remaining  *float64 `json:"remaining,omitempty"`
}

type ApplicationFilter struct {
	EmployeeID *int64  `json:"employee_id,omitempty"`
	LeaveType  *string `json:"leave_type,omitempty"`
	Status     *string `json:"status,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // start_date, end_date, status, created_at
	SortOrder string `json:"sort_order"` // asc, desc
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
	if f.LeaveType != nil {
		if _, err := ParseType(*f.LeaveType); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "leave_type",
				Message: "leave_type must be one of: " + strings.Join(TypeValues, ", "),
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
	ID             int64      `json:"id"`
	EmployeeID     int64      `json:"employee_id"`
	LeaveType      Type       `json:"leave_type"`
	LeaveTypeLabel string     `json:"leave_type_label"`
	StartDate      time.Time  `json:"start_date"`
	EndDate        time.Time  `json:"end_date"`
	Duration       float64    `json:"duration"`
	Reason         string     `json:"reason"`
	Status         string     `json:"status"`
	StatusLabel    string     `json:"status_label"`
	StatusColor    string     `json:"status_color"`
	ApproverID     *int64     `json:"approver_id,omitempty"`
	ApproveTime    *time.Time `json:"approve_time,omitempty"`
	Version        int        `json:"version"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func NewApplicationResponse(a Application) ApplicationResponse {
	return ApplicationResponse{
		ID:             a.ID,
		EmployeeID:     a.EmployeeID,
		LeaveType:      a.LeaveType,
		LeaveTypeLabel: a.LeaveType.Label(),
		StartDate:      a.StartDate,
		EndDate:        a.EndDate,
		Duration:       a.Duration,
		Reason:         a.Reason,
		Status:         string(a.Status),
		StatusLabel:    a.Status.Label(),
		StatusColor:    a.Status.Color(),
		ApproverID:     a.ApproverID,
		ApproveTime:    a.ApproveTime,
		Version:        a.Version,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
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
