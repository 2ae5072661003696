package report

import (
	"math"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

const maxRangeDays = 366

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ========================================
// DATE RANGE
// ========================================

// RangeRequest selects [StartDate, EndDate], both inclusive work dates.
type RangeRequest struct {
	EmployeeID *int64 `json:"employee_id,omitempty"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`

	From time.Time `json:"-"`
	To   time.Time `json:"-"`
}

func (r *RangeRequest) Validate() error {
	var errs validator.ValidationErrors

	from, fromOK := validator.IsValidDate(r.StartDate)
	if !fromOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	to, toOK := validator.IsValidDate(r.EndDate)
	if !toOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if fromOK && toOK {
		switch {
		case to.Before(from):
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: ErrInvalidDateRange.Error(),
			})
		case to.Sub(from).Hours()/24 > maxRangeDays:
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: ErrRangeTooLong.Error(),
			})
		}
	}
	if r.EmployeeID != nil && *r.EmployeeID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a positive number",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	r.From, r.To = from, to
	return nil
}

// ========================================
// STATUS HISTOGRAM
// ========================================

type StatusCount struct {
	Status string `json:"status"`
	Label  string `json:"label"`
	Color  string `json:"color"`
	Count  int    `json:"count"`
}

type StatusHistogramResponse struct {
	StartDate string        `json:"start_date"`
	EndDate   string        `json:"end_date"`
	Total     int           `json:"total"`
	Counts    []StatusCount `json:"counts"`
}

// ========================================
// WORKED MINUTES
// ========================================

type WorkedMinutesRequest struct {
	RangeRequest
}

func (r *WorkedMinutesRequest) Validate() error {
	if err := r.RangeRequest.Validate(); err != nil {
		return err
	}
	if r.EmployeeID == nil {
		return validator.ValidationErrors{{Field: "employee_id", Message: "employee_id is required"}}
	}
	return nil
}

type WorkedMinutesResponse struct {
	EmployeeID     int64  `json:"employee_id"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	TotalMinutes   int    `json:"total_minutes"`
	SkippedRecords int    `json:"skipped_records"`
}

// ========================================
// LEAVE HOURS
// ========================================

type LeaveHoursRequest struct {
	EmployeeID int64  `json:"employee_id"`
	LeaveType  string `json:"leave_type"`
	Year       int    `json:"year"`
}

func (r *LeaveHoursRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if _, err := leave.ParseType(r.LeaveType); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of: " + strings.Join(leave.TypeValues, ", "),
		})
	}
	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveHoursResponse struct {
	EmployeeID int64   `json:"employee_id"`
	LeaveType  string  `json:"leave_type"`
	Year       int     `json:"year"`
	Hours      float64 `json:"hours"`
}

// ========================================
// OVERTIME HOURS
// ========================================

type OvertimeHoursRequest struct {
	RangeRequest
}

func (r *OvertimeHoursRequest) Validate() error {
	if err := r.RangeRequest.Validate(); err != nil {
		return err
	}
	if r.EmployeeID == nil {
		return validator.ValidationErrors{{Field: "employee_id", Message: "employee_id is required"}}
	}
	return nil
}

type OvertimeHoursResponse struct {
	EmployeeID    int64   `json:"employee_id"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	Hours         float64 `json:"hours"`
	WeightedHours float64 `json:"weighted_hours"`
}

// ========================================
// EMPLOYEE SUMMARY
// ========================================

type EmployeeSummary struct {
	EmployeeID            int64          `json:"employee_id"`
	Days                  int            `json:"days"`
	StatusCounts          map[string]int `json:"status_counts"`
	WorkedMinutes         int            `json:"worked_minutes"`
	LeaveHours            float64        `json:"leave_hours"`
	OvertimeHours         float64        `json:"overtime_hours"`
	WeightedOvertimeHours float64        `json:"weighted_overtime_hours"`
}

type SummaryReport struct {
	ReportID    string            `json:"report_id"`
	StartDate   string            `json:"start_date"`
	EndDate     string            `json:"end_date"`
	GeneratedAt string            `json:"generated_at"`
	Employees   []EmployeeSummary `json:"employees"`
}

// Export is a rendered spreadsheet.
type Export struct {
	FileName    string
	ContentType string
	Content     []byte
}
