package group

import "context"

// GroupRepository - interface for attendance_groups table
type GroupRepository interface {
	Create(ctx context.Context, group Group) (Group, error)
	GetByID(ctx context.Context, id int64) (Group, error)
	GetByName(ctx context.Context, name string) (*Group, error)
	List(ctx context.Context) ([]Group, error)
	// ListActive returns every active group. Membership filtering happens in memory.
	ListActive(ctx context.Context) ([]Group, error)
	// Update persists the group if its version still matches and bumps the version.
	Update(ctx context.Context, group Group) (Group, error)
	Delete(ctx context.Context, id int64) error
}

// WorkShiftRepository - interface for work_shifts table
type WorkShiftRepository interface {
	Create(ctx context.Context, shift WorkShift) (WorkShift, error)
	GetByID(ctx context.Context, id int64) (WorkShift, error)
	ListByGroup(ctx context.Context, groupID int64, activeOnly bool) ([]WorkShift, error)
	Update(ctx context.Context, shift WorkShift) error
	Delete(ctx context.Context, id int64) error
}
