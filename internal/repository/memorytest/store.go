// Package memorytest holds map-backed implementations of the repository
// interfaces. Service tests run against it; it is safe for concurrent use
// but has no transactional isolation. Only _test.go files import it.
package memorytest

import (
	"context"
	"sync"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/group"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/overtime"
)

type Store struct {
	mu     sync.Mutex
	nextID int64
	now    func() time.Time

	records   map[int64]attendance.Record
	leaves    map[int64]leave.Application
	overtimes map[int64]overtime.Application
	groups    map[int64]group.Group
	shifts    map[int64]group.WorkShift
	holidays  map[int64]holiday.Config
}

func NewStore() *Store {
	return &Store{
		now:       time.Now,
		records:   map[int64]attendance.Record{},
		leaves:    map[int64]leave.Application{},
		overtimes: map[int64]overtime.Application{},
		groups:    map[int64]group.Group{},
		shifts:    map[int64]group.WorkShift{},
		holidays:  map[int64]holiday.Config{},
	}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

// Transactor runs fn directly. Each repository call locks the store on its own.
type Transactor struct{}

func (Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func page[T any](items []T, p, limit int) []T {
	if limit <= 0 {
		return items
	}
	if p < 1 {
		p = 1
	}
	start := (p - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func inDateRange(d time.Time, from, to *string) bool {
	day := d.Format("2006-01-02")
	if from != nil && day < *from {
		return false
	}
	if to != nil && day > *to {
		return false
	}
	return true
}

func betweenDates(d, from, to time.Time) bool {
	d = attendance.DateOnly(d)
	return !d.Before(attendance.DateOnly(from)) && !d.After(attendance.DateOnly(to))
}
