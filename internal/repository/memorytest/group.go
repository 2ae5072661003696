package memorytest

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/group"
)

type groupRepository struct{ s *Store }

func NewAttendanceGroupRepository(s *Store) group.GroupRepository {
	return &groupRepository{s: s}
}

func cloneGroup(g group.Group) group.Group {
	g.MemberIDs = append([]int64{}, g.MemberIDs...)
	rules := group.Rules{}
	for k, v := range g.Rules {
		rules[k] = v
	}
	g.Rules = rules
	return g
}

func (r *groupRepository) Create(ctx context.Context, g group.Group) (group.Group, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.groups {
		if existing.Name == g.Name {
			return group.Group{}, group.ErrGroupNameExists
		}
	}
	g.ID = r.s.id()
	g.Version = 1
	g.CreatedAt = r.s.now()
	g.UpdatedAt = g.CreatedAt
	r.s.groups[g.ID] = cloneGroup(g)
	return cloneGroup(g), nil
}

func (r *groupRepository) GetByID(ctx context.Context, id int64) (group.Group, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	g, ok := r.s.groups[id]
	if !ok {
		return group.Group{}, group.ErrGroupNotFound
	}
	return cloneGroup(g), nil
}

func (r *groupRepository) GetByName(ctx context.Context, name string) (*group.Group, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, g := range r.s.groups {
		if g.Name == name {
			g = cloneGroup(g)
			return &g, nil
		}
	}
	return nil, nil
}

func (r *groupRepository) list(activeOnly bool) []group.Group {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []group.Group{}
	for _, g := range r.s.groups {
		if activeOnly && !g.IsActive {
			continue
		}
		out = append(out, cloneGroup(g))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *groupRepository) List(ctx context.Context) ([]group.Group, error) {
	return r.list(false), nil
}

func (r *groupRepository) ListActive(ctx context.Context) ([]group.Group, error) {
	return r.list(true), nil
}

func (r *groupRepository) Update(ctx context.Context, g group.Group) (group.Group, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.groups[g.ID]
	if !ok {
		return group.Group{}, group.ErrGroupNotFound
	}
	if stored.Version != g.Version {
		return group.Group{}, approval.ErrVersionConflict
	}
	g.Version++
	g.CreatedAt = stored.CreatedAt
	g.UpdatedAt = r.s.now()
	r.s.groups[g.ID] = cloneGroup(g)
	return cloneGroup(g), nil
}

func (r *groupRepository) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.groups[id]; !ok {
		return group.ErrGroupNotFound
	}
	delete(r.s.groups, id)
	for sid, sh := range r.s.shifts {
		if sh.GroupID == id {
			delete(r.s.shifts, sid)
		}
	}
	return nil
}

type shiftRepository struct{ s *Store }

func NewWorkShiftRepository(s *Store) group.WorkShiftRepository {
	return &shiftRepository{s: s}
}

func (r *shiftRepository) Create(ctx context.Context, shift group.WorkShift) (group.WorkShift, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	shift.ID = r.s.id()
	shift.CreatedAt = r.s.now()
	r.s.shifts[shift.ID] = shift
	return shift, nil
}

func (r *shiftRepository) GetByID(ctx context.Context, id int64) (group.WorkShift, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sh, ok := r.s.shifts[id]
	if !ok {
		return group.WorkShift{}, group.ErrShiftNotFound
	}
	return sh, nil
}

func (r *shiftRepository) ListByGroup(ctx context.Context, groupID int64, activeOnly bool) ([]group.WorkShift, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []group.WorkShift{}
	for _, sh := range r.s.shifts {
		if sh.GroupID != groupID || (activeOnly && !sh.IsActive) {
			continue
		}
		out = append(out, sh)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartTime != out[j].StartTime {
			return out[i].StartTime < out[j].StartTime
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *shiftRepository) Update(ctx context.Context, shift group.WorkShift) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.shifts[shift.ID]; !ok {
		return group.ErrShiftNotFound
	}
	r.s.shifts[shift.ID] = shift
	return nil
}

func (r *shiftRepository) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.shifts[id]; !ok {
		return group.ErrShiftNotFound
	}
	delete(r.s.shifts, id)
	return nil
}
