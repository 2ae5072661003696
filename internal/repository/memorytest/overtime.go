package memorytest

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/overtime"
)

type overtimeRepository struct{ s *Store }

func NewOvertimeApplicationRepository(s *Store) overtime.ApplicationRepository {
	return &overtimeRepository{s: s}
}

func (r *overtimeRepository) Create(ctx context.Context, a overtime.Application) (overtime.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a.ID = r.s.id()
	a.Version = 1
	a.CreatedAt = r.s.now()
	a.UpdatedAt = a.CreatedAt
	r.s.overtimes[a.ID] = a
	return a, nil
}

func (r *overtimeRepository) GetByID(ctx context.Context, id int64) (overtime.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.overtimes[id]
	if !ok {
		return overtime.Application{}, overtime.ErrOvertimeApplicationNotFound
	}
	return a, nil
}

func (r *overtimeRepository) List(ctx context.Context, filter overtime.ApplicationFilter) ([]overtime.Application, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []overtime.Application
	for _, a := range r.s.overtimes {
		if filter.EmployeeID != nil && a.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.OvertimeType != nil && string(a.OvertimeType) != *filter.OvertimeType {
			continue
		}
		if filter.Status != nil && string(a.Status) != *filter.Status {
			continue
		}
		if !inDateRange(a.OvertimeDate, filter.StartDate, filter.EndDate) {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if filter.SortOrder == "asc" {
			return out[i].StartTime.Before(out[j].StartTime)
		}
		return out[i].StartTime.After(out[j].StartTime)
	})
	return page(out, filter.Page, filter.Limit), int64(len(out)), nil
}

func (r *overtimeRepository) ListActiveByEmployee(ctx context.Context, employeeID int64, from, to time.Time) ([]overtime.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []overtime.Application
	for _, a := range r.s.overtimes {
		if a.EmployeeID != employeeID || !a.Status.IsActive() {
			continue
		}
		if a.StartTime.After(to) || a.EndTime.Before(from) {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *overtimeRepository) UpdateStatus(ctx context.Context, a overtime.Application) (overtime.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.overtimes[a.ID]
	if !ok {
		return overtime.Application{}, overtime.ErrOvertimeApplicationNotFound
	}
	if stored.Version != a.Version {
		return overtime.Application{}, approval.ErrVersionConflict
	}
	stored.Status = a.Status
	stored.ApproverID = a.ApproverID
	stored.ApproveTime = a.ApproveTime
	stored.Version++
	stored.UpdatedAt = r.s.now()
	r.s.overtimes[a.ID] = stored
	return stored, nil
}

func (r *overtimeRepository) SumApprovedHours(ctx context.Context, employeeID int64, from, to time.Time, compensation *overtime.CompensationType) (float64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sum := 0.0
	for _, a := range r.s.overtimes {
		if a.EmployeeID != employeeID || a.Status != approval.StatusApproved {
			continue
		}
		if compensation != nil && a.CompensationType != *compensation {
			continue
		}
		if betweenDates(a.OvertimeDate, from, to) {
			sum += a.Duration
		}
	}
	return sum, nil
}

func (r *overtimeRepository) ListApprovedBetween(ctx context.Context, employeeID *int64, from, to time.Time) ([]overtime.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []overtime.Application
	for _, a := range r.s.overtimes {
		if a.Status != approval.StatusApproved {
			continue
		}
		if employeeID != nil && a.EmployeeID != *employeeID {
			continue
		}
		if betweenDates(a.OvertimeDate, from, to) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}
