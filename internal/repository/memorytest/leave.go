package memorytest

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
)

type leaveRepository struct{ s *Store }

func NewLeaveApplicationRepository(s *Store) leave.ApplicationRepository {
	return &leaveRepository{s: s}
}

func (r *leaveRepository) Create(ctx context.Context, a leave.Application) (leave.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a.ID = r.s.id()
	a.Version = 1
	a.CreatedAt = r.s.now()
	a.UpdatedAt = a.CreatedAt
	r.s.leaves[a.ID] = a
	return a, nil
}

func (r *leaveRepository) GetByID(ctx context.Context, id int64) (leave.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.leaves[id]
	if !ok {
		return leave.Application{}, leave.ErrLeaveApplicationNotFound
	}
	return a, nil
}

func (r *leaveRepository) List(ctx context.Context, filter leave.ApplicationFilter) ([]leave.Application, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []leave.Application
	for _, a := range r.s.leaves {
		if filter.EmployeeID != nil && a.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.LeaveType != nil && string(a.LeaveType) != *filter.LeaveType {
			continue
		}
		if filter.Status != nil && string(a.Status) != *filter.Status {
			continue
		}
		if filter.StartDate != nil && a.EndDate.Format("2006-01-02") <= *filter.StartDate {
			continue
		}
		if filter.EndDate != nil && a.StartDate.Format("2006-01-02") > *filter.EndDate {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return page(out, filter.Page, filter.Limit), int64(len(out)), nil
}

func (r *leaveRepository) ListActiveByEmployee(ctx context.Context, employeeID int64, from, to time.Time) ([]leave.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []leave.Application
	for _, a := range r.s.leaves {
		if a.EmployeeID != employeeID || !a.Status.IsActive() {
			continue
		}
		if a.StartDate.After(to) || a.EndDate.Before(from) {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func (r *leaveRepository) UpdateStatus(ctx context.Context, a leave.Application) (leave.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.leaves[a.ID]
	if !ok {
		return leave.Application{}, leave.ErrLeaveApplicationNotFound
	}
	if stored.Version != a.Version {
		return leave.Application{}, approval.ErrVersionConflict
	}
	stored.Status = a.Status
	stored.ApproverID = a.ApproverID
	stored.ApproveTime = a.ApproveTime
	stored.Version++
	stored.UpdatedAt = r.s.now()
	r.s.leaves[a.ID] = stored
	return stored, nil
}

func (r *leaveRepository) SumApprovedDuration(ctx context.Context, employeeID int64, leaveType leave.Type, year int) (float64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sum := 0.0
	for _, a := range r.s.leaves {
		if a.EmployeeID == employeeID && a.LeaveType == leaveType &&
			a.Status == approval.StatusApproved && a.StartDate.Year() == year {
			sum += a.Duration
		}
	}
	return sum, nil
}

func (r *leaveRepository) ListApprovedBetween(ctx context.Context, employeeID *int64, from, to time.Time) ([]leave.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []leave.Application
	for _, a := range r.s.leaves {
		if a.Status != approval.StatusApproved {
			continue
		}
		if employeeID != nil && a.EmployeeID != *employeeID {
			continue
		}
		if approval.Overlaps(a.StartDate, a.EndDate, from, to) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}
