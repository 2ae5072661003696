package report

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/overtime"
)

// Aggregations below are pure folds over already persisted rows. Only
// approved applications count toward totals.

// StatusHistogram counts records per status. Every status is present in the
// result, zero when unseen.
func StatusHistogram(records []attendance.Record) map[attendance.Status]int {
	hist := make(map[attendance.Status]int, len(attendance.StatusValues))
	for _, s := range attendance.StatusValues {
		hist[attendance.Status(s)] = 0
	}
	for _, r := range records {
		hist[r.Status]++
	}
	return hist
}

// WorkedMinutes sums the derived duration of each record per employee.
// Records without a derivable duration are skipped and counted separately.
func WorkedMinutes(records []attendance.Record) (minutes map[int64]int, skipped map[int64]int) {
	minutes = map[int64]int{}
	skipped = map[int64]int{}
	for _, r := range records {
		m, ok := r.WorkedMinutes()
		if !ok {
			skipped[r.EmployeeID]++
			continue
		}
		minutes[r.EmployeeID] += m
	}
	return minutes, skipped
}

// ApprovedLeaveHours sums the hours of approved applications of leaveType
// whose start falls in year.
func ApprovedLeaveHours(apps []leave.Application, leaveType leave.Type, year int) float64 {
	total := 0.0
	for _, a := range apps {
		if a.Status != approval.StatusApproved || a.LeaveType != leaveType {
			continue
		}
		if a.StartDate.Year() != year {
			continue
		}
		total += a.Hours()
	}
	return round2(total)
}

// ApprovedOvertimeHours sums approved overtime whose date falls in [from, to].
// weighted applies the overtime type multiplier.
func ApprovedOvertimeHours(apps []overtime.Application, from, to time.Time) (hours, weighted float64) {
	from, to = attendance.DateOnly(from), attendance.DateOnly(to)
	for _, a := range apps {
		if a.Status != approval.StatusApproved {
			continue
		}
		d := attendance.DateOnly(a.OvertimeDate)
		if d.Before(from) || d.After(to) {
			continue
		}
		hours += a.Duration
		weighted += a.Duration * a.Multiplier()
	}
	return round2(hours), round2(weighted)
}

// Summarize folds records, approved leave and approved overtime into one row
// per employee, ordered by employee id. Leave hours are clipped to [from, to+1d).
func Summarize(records []attendance.Record, leaves []leave.Application, overtimes []overtime.Application, from, to time.Time) []EmployeeSummary {
	from, to = attendance.DateOnly(from), attendance.DateOnly(to)
	end := to.AddDate(0, 0, 1)

	rows := map[int64]*EmployeeSummary{}
	row := func(id int64) *EmployeeSummary {
		if r, ok := rows[id]; ok {
			return r
		}
		r := &EmployeeSummary{EmployeeID: id, StatusCounts: map[string]int{}}
		for _, s := range attendance.StatusValues {
			r.StatusCounts[s] = 0
		}
		rows[id] = r
		return r
	}

	for _, rec := range records {
		r := row(rec.EmployeeID)
		r.Days++
		r.StatusCounts[string(rec.Status)]++
		if m, ok := rec.WorkedMinutes(); ok {
			r.WorkedMinutes += m
		}
	}
	for _, a := range leaves {
		if a.Status != approval.StatusApproved {
			continue
		}
		start, stop := a.StartDate, a.EndDate
		if start.Before(from) {
			start = from
		}
		if stop.After(end) {
			stop = end
		}
		if !stop.After(start) {
			continue
		}
		row(a.EmployeeID).LeaveHours += stop.Sub(start).Hours()
	}
	for _, a := range overtimes {
		if a.Status != approval.StatusApproved {
			continue
		}
		d := attendance.DateOnly(a.OvertimeDate)
		if d.Before(from) || d.After(to) {
			continue
		}
		r := row(a.EmployeeID)
		r.OvertimeHours += a.Duration
		r.WeightedOvertimeHours += a.Duration * a.Multiplier()
	}

	out := make([]EmployeeSummary, 0, len(rows))
	for _, r := range rows {
		r.LeaveHours = round2(r.LeaveHours)
		r.OvertimeHours = round2(r.OvertimeHours)
		r.WeightedOvertimeHours = round2(r.WeightedOvertimeHours)
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })
	return out
}
