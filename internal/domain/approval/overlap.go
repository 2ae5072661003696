package approval

import (
	"sort"
	"time"
)

// Interval is a half-open [Start, End) range owned by an application.
type Interval struct {
	ID     int64
	Start  time.Time
	End    time.Time
	Status Status
}

// Overlaps applies the half-open rule: a.Start < b.End && a.End > b.Start.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// FindConflicts returns the active intervals in existing that intersect target,
// ordered by ascending start. excludeID skips one application (update in place);
// pass 0 to exclude nothing.
func FindConflicts(target Interval, existing []Interval, excludeID int64) []Interval {
	var conflicts []Interval
	for _, iv := range existing {
		if excludeID != 0 && iv.ID == excludeID {
			continue
		}
		if !iv.Status.IsActive() {
			continue
		}
		if Overlaps(iv.Start, iv.End, target.Start, target.End) {
			conflicts = append(conflicts, iv)
		}
	}

	sort.SliceStable(conflicts, func(i, j int) bool {
		if conflicts[i].Start.Equal(conflicts[j].Start) {
			return conflicts[i].ID < conflicts[j].ID
		}
		return conflicts[i].Start.Before(conflicts[j].Start)
	})

	return conflicts
}
