package group

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// TimeOfDay is a wall-clock time in minutes since midnight.
type TimeOfDay int

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	minutes, ok := validator.ParseClock(s)
	if !ok {
		return 0, fmt.Errorf("invalid time of day %q, use HH:MM", s)
	}
	return TimeOfDay(minutes), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TimeOfDay) UnmarshalText(b []byte) error {
	v, err := ParseTimeOfDay(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// On returns the instant of t on the calendar day of date, in date's location.
func (t TimeOfDay) On(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, int(t)/60, int(t)%60, 0, 0, date.Location())
}

type BreakTime struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

// WorkShift is a time window the members of a group are expected to work.
type WorkShift struct {
	ID              int64
	GroupID         int64
	Name            string
	StartTime       TimeOfDay
	EndTime         TimeOfDay
	FlexibleMinutes *int
	BreakTimes      []BreakTime
	CrossDay        bool
	IsActive        bool
	CreatedAt       time.Time
}

func (s WorkShift) Flexible() time.Duration {
	if s.FlexibleMinutes == nil {
		return 0
	}
	return time.Duration(*s.FlexibleMinutes) * time.Minute
}

// Window returns the concrete [start, end) of the shift starting on workDate.
// Cross-day shifts end on the following calendar day.
func (s WorkShift) Window(workDate time.Time) (time.Time, time.Time) {
	start := s.StartTime.On(workDate)
	end := s.EndTime.On(workDate)
	if s.CrossDay || !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	return start, end
}

// BreakMinutesBetween sums the break time that falls inside [from, to).
func (s WorkShift) BreakMinutesBetween(workDate, from, to time.Time) int {
	shiftStart, _ := s.Window(workDate)
	total := 0
	for _, b := range s.BreakTimes {
		bs := b.Start.On(workDate)
		be := b.End.On(workDate)
		if bs.Before(shiftStart) {
			bs = bs.AddDate(0, 0, 1)
			be = be.AddDate(0, 0, 1)
		}
		if !be.After(bs) {
			be = be.AddDate(0, 0, 1)
		}
		if bs.Before(from) {
			bs = from
		}
		if be.After(to) {
			be = to
		}
		if be.After(bs) {
			total += int(be.Sub(bs).Minutes())
		}
	}
	return total
}
