package approval

import "fmt"

// Status is the lifecycle state shared by leave and overtime applications.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

var StatusValues = []string{
	string(StatusPending),
	string(StatusApproved),
	string(StatusRejected),
	string(StatusCancelled),
}

// Meta is the display information the admin UI renders for an enum value.
type Meta struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

var statusMeta = map[Status]Meta{
	StatusPending:   {Label: "Pending", Color: "warning"},
	StatusApproved:  {Label: "Approved", Color: "success"},
	StatusRejected:  {Label: "Rejected", Color: "danger"},
	StatusCancelled: {Label: "Cancelled", Color: "secondary"},
}

// validTransitions lists every allowed (from -> to) pair.
// approved -> cancelled is further gated by the caller on the start of the application.
var validTransitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved: {StatusCancelled},
	// rejected and cancelled are terminal
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := statusMeta[st]; ok {
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

func (s Status) Meta() Meta {
	return statusMeta[s]
}

func (s Status) Label() string {
	return statusMeta[s].Label
}

func (s Status) Color() string {
	return statusMeta[s].Color
}

// IsActive reports whether applications in this status take part in overlap checks.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusApproved
}

func (s Status) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

func CanTransition(from, to Status) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Transition returns ErrInvalidTransition when from -> to is not in the table.
func Transition(from, to Status) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}
