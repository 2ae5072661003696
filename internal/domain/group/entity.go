package group

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

type Type string

const (
	TypeFixed    Type = "fixed"
	TypeFlexible Type = "flexible"
	TypeShift    Type = "shift"
)

var TypeValues = []string{
	string(TypeFixed),
	string(TypeFlexible),
	string(TypeShift),
}

type Meta struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

var typeMeta = map[Type]Meta{
	TypeFixed:    {Label: "Fixed hours", Color: "primary"},
	TypeFlexible: {Label: "Flexible hours", Color: "info"},
	TypeShift:    {Label: "Shift work", Color: "warning"},
}

func (t Type) Label() string { return typeMeta[t].Label }
func (t Type) Color() string { return typeMeta[t].Color }

// Group is a named policy bucket of employees sharing check-in rules and shifts.
type Group struct {
	ID        int64
	Name      string
	Type      Type
	Rules     Rules
	MemberIDs []int64
	IsActive  bool
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (g Group) HasMember(employeeID int64) bool {
	for _, id := range g.MemberIDs {
		if id == employeeID {
			return true
		}
	}
	return false
}

// Location is an allowed check-in area.
type Location struct {
	Name         string  `json:"name"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters float64 `json:"radius_meters"`
}

// Rules is the free-form JSONB policy document of a group.
// Known keys:
//
//	max_leave_days              float, per request
//	advance_notice_days         int
//	max_overtime_hours          float, per application
//	max_patches_per_month       int
//	early_checkin_minutes       int (default 120)
//	overtime_threshold_minutes  int (default 60)
//	leave_allotments            object, leave type -> yearly days
//	locations                   array of Location
type Rules map[string]interface{}

const (
	DefaultEarlyCheckInMinutes      = 120
	DefaultOvertimeThresholdMinutes = 60
)

// Value implements driver.Valuer for database storage
func (r Rules) Value() (driver.Value, error) {
	if r == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]interface{}(r))
}

// Scan implements sql.Scanner for database retrieval
func (r *Rules) Scan(value interface{}) error {
	if value == nil {
		*r = Rules{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan Rules: invalid type")
	}

	m := map[string]interface{}{}
	if err := json.Unmarshal(bytes, &m); err != nil {
		return err
	}
	*r = m
	return nil
}

func (r Rules) number(key string) (float64, bool) {
	raw, ok := r[key]
	if !ok || raw == nil {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	return 0, false
}

func (r Rules) MaxLeaveDays() (float64, bool) {
	return r.number("max_leave_days")
}

func (r Rules) AdvanceNoticeDays() (int, bool) {
	v, ok := r.number("advance_notice_days")
	return int(v), ok
}

func (r Rules) MaxOvertimeHours() (float64, bool) {
	return r.number("max_overtime_hours")
}

func (r Rules) MaxPatchesPerMonth() (int, bool) {
	v, ok := r.number("max_patches_per_month")
	return int(v), ok
}

func (r Rules) EarlyCheckInMinutes() int {
	if v, ok := r.number("early_checkin_minutes"); ok {
		return int(v)
	}
	return DefaultEarlyCheckInMinutes
}

func (r Rules) OvertimeThresholdMinutes() int {
	if v, ok := r.number("overtime_threshold_minutes"); ok {
		return int(v)
	}
	return DefaultOvertimeThresholdMinutes
}

// LeaveAllotment returns the yearly allotment configured for a leave type, if any.
func (r Rules) LeaveAllotment(leaveType string) (float64, bool) {
	raw, ok := r["leave_allotments"].(map[string]interface{})
	if !ok {
		return 0, false
	}
	return Rules(raw).number(leaveType)
}

func (r Rules) Locations() ([]Location, error) {
	raw, ok := r["locations"]
	if !ok || raw == nil {
		return nil, nil
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var locations []Location
	if err := json.Unmarshal(b, &locations); err != nil {
		return nil, fmt.Errorf("invalid locations rule: %w", err)
	}
	return locations, nil
}
