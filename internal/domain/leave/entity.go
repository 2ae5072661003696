package leave

import (
	"fmt"
	"math"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/approval"
)

type Type string

const (
	TypeAnnual       Type = "annual"
	TypeSick         Type = "sick"
	TypePersonal     Type = "personal"
	TypeMarriage     Type = "marriage"
	TypeMaternity    Type = "maternity"
	TypePaternity    Type = "paternity"
	TypeBereavement  Type = "bereavement"
	TypeCompensatory Type = "compensatory"
	TypeUnpaid       Type = "unpaid"
)

var TypeValues = []string{
	string(TypeAnnual),
	string(TypeSick),
	string(TypePersonal),
	string(TypeMarriage),
	string(TypeMaternity),
	string(TypePaternity),
	string(TypeBereavement),
	string(TypeCompensatory),
	string(TypeUnpaid),
}

type typeInfo struct {
	approval.Meta
	// allotment is the default yearly allotment in days; negative means none applies
	allotment float64
}

var typeTable = map[Type]typeInfo{
	TypeAnnual:       {approval.Meta{Label: "Annual leave", Color: "primary"}, 5},
	TypeSick:         {approval.Meta{Label: "Sick leave", Color: "danger"}, 10},
	TypePersonal:     {approval.Meta{Label: "Personal leave", Color: "info"}, 3},
	TypeMarriage:     {approval.Meta{Label: "Marriage leave", Color: "success"}, 3},
	TypeMaternity:    {approval.Meta{Label: "Maternity leave", Color: "success"}, 98},
	TypePaternity:    {approval.Meta{Label: "Paternity leave", Color: "success"}, 15},
	TypeBereavement:  {approval.Meta{Label: "Bereavement leave", Color: "secondary"}, 3},
	TypeCompensatory: {approval.Meta{Label: "Compensatory leave", Color: "warning"}, -1},
	TypeUnpaid:       {approval.Meta{Label: "Unpaid leave", Color: "secondary"}, -1},
}

// CompensatoryHoursPerDay converts approved time-off overtime hours into compensatory leave days.
const CompensatoryHoursPerDay = 8.0

func ParseType(s string) (Type, error) {
	t := Type(s)
	if _, ok := typeTable[t]; ok {
		return t, nil
	}
	return "", fmt.Errorf("unknown leave type %q", s)
}

func (t Type) Label() string { return typeTable[t].Label }
func (t Type) Color() string { return typeTable[t].Color }

// DefaultAllotment is the yearly allotment in days. ok is false for types
// whose balance is not a fixed allotment (compensatory, unpaid).
func (t Type) DefaultAllotment() (days float64, ok bool) {
	info, found := typeTable[t]
	if !found || info.allotment < 0 {
		return 0, false
	}
	return info.allotment, true
}

// IsUnlimited reports whether the type is exempt from balance checks.
func (t Type) IsUnlimited() bool {
	return t == TypeUnpaid
}

// Application is an employee's leave application.
// ApproverID and ApproveTime are set iff Status is approved or rejected.
type Application struct {
	ID          int64
	EmployeeID  int64
	LeaveType   Type
	StartDate   time.Time
	EndDate     time.Time
	Duration    float64 // days
	Reason      string
	Status      approval.Status
	ApproverID  *int64
	ApproveTime *time.Time
	Version     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (a Application) Interval() approval.Interval {
	return approval.Interval{ID: a.ID, Start: a.StartDate, End: a.EndDate, Status: a.Status}
}

// Hours is the length of the application in hours.
func (a Application) Hours() float64 {
	return a.EndDate.Sub(a.StartDate).Hours()
}

func (a *Application) Approve(approverID int64, now time.Time) error {
	return a.decide(approval.StatusApproved, approverID, now)
}

func (a *Application) Reject(approverID int64, now time.Time) error {
	return a.decide(approval.StatusRejected, approverID, now)
}

func (a *Application) decide(to approval.Status, approverID int64, now time.Time) error {
	if err := approval.Transition(a.Status, to); err != nil {
		return ErrCannotModifyApprovedLeave
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
		return ErrCannotCancelProcessedLeave
	}
	if a.Status == approval.StatusApproved && !now.Before(a.StartDate) {
		return ErrCannotCancelStartedLeave
	}
	a.Status = approval.StatusCancelled
	a.ApproverID = nil
	a.ApproveTime = nil
	a.UpdatedAt = now
	return nil
}

// CalculateDuration is the length of [start, end) in days, rounded to two decimals.
func CalculateDuration(start, end time.Time) float64 {
	return math.Round(Days(start, end)*100) / 100
}

// Days is the unrounded length of [start, end) in days.
func Days(start, end time.Time) float64 {
	return end.Sub(start).Hours() / 24
}

// ExceedsBalance reports whether the application needs more than remaining days.
// The unrounded length is compared so a few extra minutes cannot round away.
func (a Application) ExceedsBalance(remaining float64) bool {
	return Days(a.StartDate, a.EndDate)-remaining > 1e-9
}
