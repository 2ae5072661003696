package group

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type CreateGroupRequest struct {
	Name      string                 `json:"name"`
	Type      string                 `json:"type"`
	Rules     map[string]interface{} `json:"rules,omitempty"`
	MemberIDs []int64                `json:"member_ids,omitempty"`
	IsActive  *bool                  `json:"is_active,omitempty"`
}

func (r *CreateGroupRequest) Validate() error {
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
	if !validator.IsInSlice(r.Type, TypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: " + strings.Join(TypeValues, ", "),
		})
	}
	if err := validateRules(r.Rules); err != nil {
		errs = append(errs, *err)
	}
	for _, id := range r.MemberIDs {
		if id <= 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "member_ids",
				Message: "member_ids must contain positive employee ids",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateGroupRequest struct {
	ID       int64                  `json:"-"`
	Version  int                    `json:"version"`
	Name     *string                `json:"name,omitempty"`
	Type     *string                `json:"type,omitempty"`
	Rules    map[string]interface{} `json:"rules,omitempty"`
	IsActive *bool                  `json:"is_active,omitempty"`
}

func (r *UpdateGroupRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}
	if r.Type != nil && !validator.IsInSlice(*r.Type, TypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: " + strings.Join(TypeValues, ", "),
		})
	}
	if err := validateRules(r.Rules); err != nil {
		errs = append(errs, *err)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AddMembersRequest struct {
	GroupID     int64   `json:"-"`
	Version     int     `json:"version"`
	EmployeeIDs []int64 `json:"employee_ids"`
}

func (r *AddMembersRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.EmployeeIDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_ids",
			Message: "employee_ids must not be empty",
		})
	}
	for _, id := range r.EmployeeIDs {
		if id <= 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "employee_ids",
				Message: "employee_ids must contain positive employee ids",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RemoveMemberRequest struct {
	GroupID    int64 `json:"-"`
	EmployeeID int64 `json:"-"`
	Version    int   `json:"version"`
}

type GroupResponse struct {
	ID        int64                  `json:"id"`
	Name      string                 `json:"name"`
	Type      Type                   `json:"type"`
	TypeLabel string                 `json:"type_label"`
	Rules     map[string]interface{} `json:"rules"`
	MemberIDs []int64                `json:"member_ids"`
	IsActive  bool                   `json:"is_active"`
	Version   int                    `json:"version"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

func NewGroupResponse(g Group) GroupResponse {
	members := g.MemberIDs
	if members == nil {
		members = []int64{}
	}
	rules := map[string]interface{}(g.Rules)
	if rules == nil {
		rules = map[string]interface{}{}
	}
	return GroupResponse{
		ID:        g.ID,
		Name:      g.Name,
		Type:      g.Type,
		TypeLabel: g.Type.Label(),
		Rules:     rules,
		MemberIDs: members,
		IsActive:  g.IsActive,
		Version:   g.Version,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

type CreateShiftRequest struct {
	GroupID         int64       `json:"-"`
	Name            string      `json:"name"`
	StartTime       string      `json:"start_time"`
	EndTime         string      `json:"end_time"`
	FlexibleMinutes *int        `json:"flexible_minutes,omitempty"`
	BreakTimes      []BreakTime `json:"break_times,omitempty"`
	CrossDay        bool        `json:"cross_day"`
	IsActive        *bool       `json:"is_active,omitempty"`
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	start, startErr := ParseTimeOfDay(r.StartTime)
	if startErr != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:MM format",
		})
	}
	end, endErr := ParseTimeOfDay(r.EndTime)
	if endErr != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:MM format",
		})
	}
	if startErr == nil && endErr == nil && !r.CrossDay && end <= start {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be after start_time unless cross_day is set",
		})
	}
	if r.FlexibleMinutes != nil && *r.FlexibleMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "flexible_minutes",
			Message: "flexible_minutes must be a non-negative number",
		})
	}
	for _, b := range r.BreakTimes {
		if b.End == b.Start {
			errs = append(errs, validator.ValidationError{
				Field:   "break_times",
				Message: "break_times entries must have distinct start and end",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateShiftRequest struct {
	ID int64 `json:"-"`
	CreateShiftRequest
}

type ShiftResponse struct {
	ID              int64       `json:"id"`
	GroupID         int64       `json:"group_id"`
	Name            string      `json:"name"`
	StartTime       TimeOfDay   `json:"start_time"`
	EndTime         TimeOfDay   `json:"end_time"`
	FlexibleMinutes *int        `json:"flexible_minutes,omitempty"`
	BreakTimes      []BreakTime `json:"break_times"`
	CrossDay        bool        `json:"cross_day"`
	IsActive        bool        `json:"is_active"`
	CreatedAt       time.Time   `json:"created_at"`
}

func NewShiftResponse(s WorkShift) ShiftResponse {
	breaks := s.BreakTimes
	if breaks == nil {
		breaks = []BreakTime{}
	}
	return ShiftResponse{
		ID:              s.ID,
		GroupID:         s.GroupID,
		Name:            s.Name,
		StartTime:       s.StartTime,
		EndTime:         s.EndTime,
		FlexibleMinutes: s.FlexibleMinutes,
		BreakTimes:      breaks,
		CrossDay:        s.CrossDay,
		IsActive:        s.IsActive,
		CreatedAt:       s.CreatedAt,
	}
}

func validateRules(rules map[string]interface{}) *validator.ValidationError {
	if rules == nil {
		return nil
	}
	if _, err := Rules(rules).Locations(); err != nil {
		return &validator.ValidationError{
			Field:   "rules.locations",
			Message: "rules.locations must be a list of {name, latitude, longitude, radius_meters}",
		}
	}
	for _, key := range []string{"max_leave_days", "advance_notice_days", "max_overtime_hours", "max_patches_per_month"} {
		if _, present := rules[key]; !present {
			continue
		}
		v, ok := Rules(rules).number(key)
		if !ok || v < 0 {
			return &validator.ValidationError{
				Field:   "rules." + key,
				Message: "rules." + key + " must be a non-negative number",
			}
		}
	}
	return nil
}
