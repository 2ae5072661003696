package overtime

import (
	"fmt"
	"math"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/approval"
)

type Type string

const (
	TypeWorkday Type = "workday"
	TypeWeekend Type = "weekend"
	TypeHoliday Type = "holiday"
)

var TypeValues = []string{
	string(TypeWorkday),
	string(TypeWeekend),
	string(TypeHoliday),
}

type typeInfo struct {
	approval.Meta
	multiplier float64
}

// typeTable holds the pay multiplier consumed by payroll.
var typeTable = map[Type]typeInfo{
	TypeWorkday: {approval.Meta{Label: "Workday overtime", Color: "primary"}, 1.5},
	TypeWeekend: {approval.Meta{Label: "Weekend overtime", Color: "warning"}, 2.0},
	TypeHoliday: {approval.Meta{Label: "Holiday overtime", Color: "danger"}, 3.0},
}

func ParseType(s string) (Type, error) {
	t := Type(s)
	if _, ok := typeTable[t]; ok {
		return t, nil
	}
	return "", fmt.Errorf("unknown overtime type %q", s)
}

func (t Type) Label() string       { return typeTable[t].Label }
func (t Type) Color() string       { return typeTable[t].Color }
func (t Type) Multiplier() float64 { return typeTable[t].multiplier }

// DeriveType classifies an overtime date: configured holidays first, then weekends.
func DeriveType(date time.Time, isHoliday bool) Type {
	if isHoliday {
		return TypeHoliday
	}
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return TypeWeekend
	}
	return TypeWorkday
}

type CompensationType string

const (
	CompensationPaid    CompensationType = "paid"
	CompensationTimeOff CompensationType = "timeoff"
)

var CompensationTypeValues = []string{
	string(CompensationPaid),
	string(CompensationTimeOff),
}

var compensationMeta = map[CompensationType]approval.Meta{
	CompensationPaid:    {Label: "Overtime pay", Color: "success"},
	CompensationTimeOff: {Label: "Time off in lieu", Color: "info"},
}

func (c CompensationType) Label() string { return compensationMeta[c].Label }
func (c CompensationType) Color() string { return compensationMeta[c].Color }

const (
	// MaxHoursPerApplication bounds a single application regardless of group rules.
	MaxHoursPerApplication = 24.0
	// DefaultMaxOvertimeHours applies when the attendance group sets no limit.
	DefaultMaxOvertimeHours = 12.0
)

// Application is an employee's overtime application.
// ApproverID and ApproveTime are set iff Status is approved or rejected.
type Application struct {
	ID               int64
	EmployeeID       int64
	OvertimeDate     time.Time
	StartTime        time.Time
	EndTime          time.Time
	Duration         float64 // hours
	OvertimeType     Type
	Reason           string
	Status           approval.Status
	CompensationType CompensationType
	ApproverID       *int64
	ApproveTime      *time.Time
	Version          int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (a Application) Multiplier() float64 {
	return a.OvertimeType.Multiplier()
}

func (a Application) Interval() approval.Interval {
	return approval.Interval{ID: a.ID, Start: a.StartTime, End: a.EndTime, Status: a.Status}
}

func (a *Application) Approve(approverID int64, now time.Time) error {
	return a.decide(approval.StatusApproved, approverID, now)
}

func (a *Application) Reject(approverID int64, now time.Time) error {
	return a.decide(approval.StatusRejected, approverID, now)
}

func (a *Application) decide(to approval.Status, approverID int64, now time.Time) error {
	if err := approval.Transition(a.Status, to); err != nil {
		return ErrCannotModifyProcessedOvertime
	}
	a.Status = to
	a.ApproverID = &approverID
	a.ApproveTime = &now
	a.UpdatedAt = now
	return nil
}

// Cancel withdraws a pending application, or an approved one that has not started yet.
func (a *Application) Cancel(now time.Time) error {
	if err := approval.Transition(a.Status, approval.StatusCancelled); err != nil {
		return ErrCannotCancelProcessedOvertime
	}
	if a.Status == approval.StatusApproved && !now.Before(a.StartTime) {
		return ErrCannotCancelStartedOvertime
	}
	a.Status = approval.StatusCancelled
	a.ApproverID = nil
	a.ApproveTime = nil
	a.UpdatedAt = now
	return nil
}

// CalculateDuration is the length of [start, end) in hours, rounded to two decimals.
func CalculateDuration(start, end time.Time) float64 {
	return math.Round(end.Sub(start).Hours()*100) / 100
}
