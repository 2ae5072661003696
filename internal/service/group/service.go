package group

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/group"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
)

type groupServiceImpl struct {
	tx        database.Transactor
	groupRepo group.GroupRepository
	shiftRepo group.WorkShiftRepository
}

func NewGroupService(tx database.Transactor, groupRepo group.GroupRepository, shiftRepo group.WorkShiftRepository) group.Service {
	return &groupServiceImpl{
		tx:        tx,
		groupRepo: groupRepo,
		shiftRepo: shiftRepo,
	}
}

// CreateGroup implements group.Service.
func (s *groupServiceImpl) CreateGroup(ctx context.Context, req group.CreateGroupRequest) (group.GroupResponse, error) {
	if err := req.Validate(); err != nil {
		return group.GroupResponse{}, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	var created group.Group
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.groupRepo.GetByName(ctx, req.Name)
		if err != nil {
			return fmt.Errorf("failed to check group name: %w", err)
		}
		if existing != nil {
			return group.ErrGroupNameExists
		}

		members := dedupe(req.MemberIDs)
		if isActive {
			if err := s.ensureNotInOtherGroup(ctx, 0, members); err != nil {
				return err
			}
		}

		created, err = s.groupRepo.Create(ctx, group.Group{
			Name:      req.Name,
			Type:      group.Type(req.Type),
			Rules:     group.Rules(req.Rules),
			MemberIDs: members,
			IsActive:  isActive,
		})
		return err
	})
	if err != nil {
		return group.GroupResponse{}, err
	}

	slog.Info("attendance group created", "group_id", created.ID, "name", created.Name, "members", len(created.MemberIDs))
	return group.NewGroupResponse(created), nil
}

// UpdateGroup implements group.Service.
func (s *groupServiceImpl) UpdateGroup(ctx context.Context, req group.UpdateGroupRequest) (group.GroupResponse, error) {
	if err := req.Validate(); err != nil {
		return group.GroupResponse{}, err
	}

	var updated group.Group
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		g, err := s.groupRepo.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}
		g.Version = req.Version

		if req.Name != nil && *req.Name != g.Name {
			existing, err := s.groupRepo.GetByName(ctx, *req.Name)
			if err != nil {
				return fmt.Errorf("failed to check group name: %w", err)
			}
			if existing != nil && existing.ID != g.ID {
				return group.ErrGroupNameExists
			}
			g.Name = *req.Name
		}
		if req.Type != nil {
			g.Type = group.Type(*req.Type)
		}
		if req.Rules != nil {
			g.Rules = group.Rules(req.Rules)
		}
		if req.IsActive != nil {
			if *req.IsActive && !g.IsActive {
				if err := s.ensureNotInOtherGroup(ctx, g.ID, g.MemberIDs); err != nil {
					return err
				}
			}
			g.IsActive = *req.IsActive
		}

		updated, err = s.groupRepo.Update(ctx, g)
		return err
	})
	if err != nil {
		return group.GroupResponse{}, err
	}

	return group.NewGroupResponse(updated), nil
}

// GetGroup implements group.Service.
func (s *groupServiceImpl) GetGroup(ctx context.Context, id int64) (group.GroupResponse, error) {
	g, err := s.groupRepo.GetByID(ctx, id)
	if err != nil {
		return group.GroupResponse{}, err
	}
	return group.NewGroupResponse(g), nil
}

// ListGroups implements group.Service.
func (s *groupServiceImpl) ListGroups(ctx context.Context) ([]group.GroupResponse, error) {
	groups, err := s.groupRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	resp := make([]group.GroupResponse, 0, len(groups))
	for _, g := range groups {
		resp = append(resp, group.NewGroupResponse(g))
	}
	return resp, nil
}

// DeleteGroup implements group.Service.
func (s *groupServiceImpl) DeleteGroup(ctx context.Context, id int64) error {
	if err := s.groupRepo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("attendance group deleted", "group_id", id)
	return nil
}

// AddMembers implements group.Service.
func (s *groupServiceImpl) AddMembers(ctx context.Context, req group.AddMembersRequest) (group.GroupResponse, error) {
	if err := req.Validate(); err != nil {
		return group.GroupResponse{}, err
	}

	var updated group.Group
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		g, err := s.groupRepo.GetByID(ctx, req.GroupID)
		if err != nil {
			return err
		}
		g.Version = req.Version

		var added []int64
		for _, id := range dedupe(req.EmployeeIDs) {
			if !g.HasMember(id) {
				added = append(added, id)
			}
		}
		if len(added) == 0 {
			updated = g
			return nil
		}
		if g.IsActive {
			if err := s.ensureNotInOtherGroup(ctx, g.ID, added); err != nil {
				return err
			}
		}

		g.MemberIDs = append(g.MemberIDs, added...)
		updated, err = s.groupRepo.Update(ctx, g)
		return err
	})
	if err != nil {
		return group.GroupResponse{}, err
	}

	slog.Info("attendance group members added", "group_id", updated.ID, "count", len(req.EmployeeIDs))
	return group.NewGroupResponse(updated), nil
}

// RemoveMember implements group.Service.
func (s *groupServiceImpl) RemoveMember(ctx context.Context, req group.RemoveMemberRequest) (group.GroupResponse, error) {
	var updated group.Group
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		g, err := s.groupRepo.GetByID(ctx, req.GroupID)
		if err != nil {
			return err
		}
		if !g.HasMember(req.EmployeeID) {
			return group.ErrNoGroupForEmployee
		}
		g.Version = req.Version

		members := make([]int64, 0, len(g.MemberIDs)-1)
		for _, id := range g.MemberIDs {
			if id != req.EmployeeID {
				members = append(members, id)
			}
		}
		g.MemberIDs = members

		updated, err = s.groupRepo.Update(ctx, g)
		return err
	})
	if err != nil {
		return group.GroupResponse{}, err
	}

	slog.Info("attendance group member removed", "group_id", updated.ID, "employee_id", req.EmployeeID)
	return group.NewGroupResponse(updated), nil
}

// ResolveGroupForEmployee implements group.Service. It returns nil when the
// employee is in no active group.
func (s *groupServiceImpl) ResolveGroupForEmployee(ctx context.Context, employeeID int64) (*group.Group, error) {
	groups, err := s.groupRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active groups: %w", err)
	}
	g, ok := group.ResolveForEmployee(groups, employeeID)
	if !ok {
		return nil, nil
	}
	return &g, nil
}

// ResolveGroupsForEmployees implements group.Service.
func (s *groupServiceImpl) ResolveGroupsForEmployees(ctx context.Context, employeeIDs []int64) (map[int64]group.Group, error) {
	groups, err := s.groupRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active groups: %w", err)
	}
	return group.ResolveForEmployees(groups, employeeIDs), nil
}

// ShiftForEmployee implements group.Service.
func (s *groupServiceImpl) ShiftForEmployee(ctx context.Context, employeeID int64) (group.Group, group.WorkShift, error) {
	g, err := s.ResolveGroupForEmployee(ctx, employeeID)
	if err != nil {
		return group.Group{}, group.WorkShift{}, err
	}
	if g == nil {
		return group.Group{}, group.WorkShift{}, group.ErrNoGroupForEmployee
	}

	shifts, err := s.shiftRepo.ListByGroup(ctx, g.ID, true)
	if err != nil {
		return group.Group{}, group.WorkShift{}, fmt.Errorf("failed to list shifts: %w", err)
	}
	if len(shifts) == 0 {
		return *g, group.WorkShift{}, group.ErrNoActiveShift
	}
	sort.SliceStable(shifts, func(i, j int) bool { return shifts[i].StartTime < shifts[j].StartTime })

	return *g, shifts[0], nil
}

// CreateShift implements group.Service.
func (s *groupServiceImpl) CreateShift(ctx context.Context, req group.CreateShiftRequest) (group.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return group.ShiftResponse{}, err
	}
	if _, err := s.groupRepo.GetByID(ctx, req.GroupID); err != nil {
		return group.ShiftResponse{}, err
	}

	shift, err := s.shiftRepo.Create(ctx, shiftFromRequest(req))
	if err != nil {
		return group.ShiftResponse{}, fmt.Errorf("failed to create shift: %w", err)
	}
	return group.NewShiftResponse(shift), nil
}

// UpdateShift implements group.Service.
func (s *groupServiceImpl) UpdateShift(ctx context.Context, req group.UpdateShiftRequest) (group.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return group.ShiftResponse{}, err
	}

	existing, err := s.shiftRepo.GetByID(ctx, req.ID)
	if err != nil {
		return group.ShiftResponse{}, err
	}
	if req.GroupID != 0 && req.GroupID != existing.GroupID {
		return group.ShiftResponse{}, group.ErrShiftNotFound
	}

	shift := shiftFromRequest(req.CreateShiftRequest)
	shift.ID = existing.ID
	shift.GroupID = existing.GroupID
	shift.CreatedAt = existing.CreatedAt
	if err := s.shiftRepo.Update(ctx, shift); err != nil {
		return group.ShiftResponse{}, err
	}
	return group.NewShiftResponse(shift), nil
}

// GetShift implements group.Service.
func (s *groupServiceImpl) GetShift(ctx context.Context, id int64) (group.ShiftResponse, error) {
	shift, err := s.shiftRepo.GetByID(ctx, id)
	if err != nil {
		return group.ShiftResponse{}, err
	}
	return group.NewShiftResponse(shift), nil
}

// ListShifts implements group.Service.
func (s *groupServiceImpl) ListShifts(ctx context.Context, groupID int64) ([]group.ShiftResponse, error) {
	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		return nil, err
	}
	shifts, err := s.shiftRepo.ListByGroup(ctx, groupID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	resp := make([]group.ShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		resp = append(resp, group.NewShiftResponse(sh))
	}
	return resp, nil
}

// DeleteShift implements group.Service.
func (s *groupServiceImpl) DeleteShift(ctx context.Context, id int64) error {
	return s.shiftRepo.Delete(ctx, id)
}

// ensureNotInOtherGroup keeps membership unique across active groups, which
// resolution relies on but the schema does not enforce.
func (s *groupServiceImpl) ensureNotInOtherGroup(ctx context.Context, groupID int64, employeeIDs []int64) error {
	if len(employeeIDs) == 0 {
		return nil
	}
	groups, err := s.groupRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active groups: %w", err)
	}
	for _, g := range groups {
		if g.ID == groupID {
			continue
		}
		for _, id := range employeeIDs {
			if g.HasMember(id) {
				return fmt.Errorf("employee %d in group %q: %w", id, g.Name, group.ErrEmployeeInAnotherGroup)
			}
		}
	}
	return nil
}

func shiftFromRequest(req group.CreateShiftRequest) group.WorkShift {
	start, _ := group.ParseTimeOfDay(req.StartTime)
	end, _ := group.ParseTimeOfDay(req.EndTime)
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	return group.WorkShift{
		GroupID:         req.GroupID,
		Name:            req.Name,
		StartTime:       start,
		EndTime:         end,
		FlexibleMinutes: req.FlexibleMinutes,
		BreakTimes:      req.BreakTimes,
		CrossDay:        req.CrossDay || end <= start,
		IsActive:        isActive,
	}
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

