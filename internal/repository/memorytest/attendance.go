package memorytest

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
)

type recordRepository struct{ s *Store }

func NewAttendanceRecordRepository(s *Store) attendance.RecordRepository {
	return &recordRepository{s: s}
}

func (r *recordRepository) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.records {
		if existing.EmployeeID == record.EmployeeID && existing.WorkDate.Equal(record.WorkDate) {
			return attendance.Record{}, attendance.ErrDuplicateCheckIn
		}
	}
	record.ID = r.s.id()
	record.CreatedAt = r.s.now()
	record.UpdatedAt = record.CreatedAt
	r.s.records[record.ID] = record
	return record, nil
}

func (r *recordRepository) GetByID(ctx context.Context, id int64) (attendance.Record, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.records[id]
	if !ok {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	return rec, nil
}

func (r *recordRepository) GetByEmployeeAndDate(ctx context.Context, employeeID int64, workDate time.Time) (*attendance.Record, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, rec := range r.s.records {
		if rec.EmployeeID == employeeID && rec.WorkDate.Equal(workDate) {
			rec := rec
			return &rec, nil
		}
	}
	return nil, nil
}

func (r *recordRepository) Update(ctx context.Context, record attendance.Record) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.records[record.ID]; !ok {
		return attendance.ErrRecordNotFound
	}
	record.UpdatedAt = r.s.now()
	r.s.records[record.ID] = record
	return nil
}

func (r *recordRepository) List(ctx context.Context, filter attendance.RecordFilter) ([]attendance.Record, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []attendance.Record
	for _, rec := range r.s.records {
		if filter.EmployeeID != nil && rec.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && string(rec.Status) != *filter.Status {
			continue
		}
		if !inDateRange(rec.WorkDate, filter.StartDate, filter.EndDate) {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].WorkDate.Equal(out[j].WorkDate) {
			if filter.SortOrder == "asc" {
				return out[i].WorkDate.Before(out[j].WorkDate)
			}
			return out[i].WorkDate.After(out[j].WorkDate)
		}
		return out[i].ID < out[j].ID
	})
	return page(out, filter.Page, filter.Limit), int64(len(out)), nil
}

func (r *recordRepository) ListBetween(ctx context.Context, employeeID *int64, from, to time.Time) ([]attendance.Record, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []attendance.Record
	for _, rec := range r.s.records {
		if employeeID != nil && rec.EmployeeID != *employeeID {
			continue
		}
		if betweenDates(rec.WorkDate, from, to) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].WorkDate.Equal(out[j].WorkDate) {
			return out[i].WorkDate.Before(out[j].WorkDate)
		}
		return out[i].EmployeeID < out[j].EmployeeID
	})
	return out, nil
}

func (r *recordRepository) CountManualPatches(ctx context.Context, employeeID int64, from, to time.Time) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n := 0
	for _, rec := range r.s.records {
		if rec.EmployeeID == employeeID && rec.CheckInType == attendance.CheckInManual &&
			(rec.CheckInTime != nil || rec.CheckOutTime != nil) && betweenDates(rec.WorkDate, from, to) {
			n++
		}
	}
	return n, nil
}

type reportRepository struct{ s *Store }

func NewReportRepository(s *Store) report.ReportRepository {
	return &reportRepository{s: s}
}

func (r *reportRepository) CountByStatus(ctx context.Context, employeeID *int64, from, to time.Time) (map[string]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var matched []attendance.Record
	for _, rec := range r.s.records {
		if employeeID != nil && rec.EmployeeID != *employeeID {
			continue
		}
		if betweenDates(rec.WorkDate, from, to) {
			matched = append(matched, rec)
		}
	}

	counts := map[string]int{}
	for status, n := range report.StatusHistogram(matched) {
		counts[string(status)] = n
	}
	return counts, nil
}
