package attendance

import (
	"fmt"
	"time"
)

// Schedule is the concrete expectation for one work date, derived from the
// employee's shift and group rules.
type Schedule struct {
	Start             time.Time
	End               time.Time
	Flexible          time.Duration
	EarlyCheckIn      time.Duration
	OvertimeThreshold time.Duration
}

// CheckInAllowed rejects punches before the early check-in allowance or after the shift end.
func (s Schedule) CheckInAllowed(at time.Time) error {
	if at.Before(s.Start.Add(-s.EarlyCheckIn)) || !at.Before(s.End) {
		return ErrOutsideWorkTime
	}
	return nil
}

func (s Schedule) CheckInStatus(at time.Time) (Status, *string) {
	deadline := s.Start.Add(s.Flexible)
	if at.After(deadline) {
		reason := fmt.Sprintf("late by %d minutes", int(at.Sub(s.Start).Minutes()))
		return StatusLate, &reason
	}
	return StatusNormal, nil
}

// CheckOutStatus folds the check-out punch into the status set at check-in.
// Holiday and leave are kept, late wins over early and overtime.
func (s Schedule) CheckOutStatus(current Status, reason *string, at time.Time) (Status, *string) {
	if current == StatusHoliday || current == StatusLeave {
		return current, reason
	}

	earliest := s.End.Add(-s.Flexible)
	if at.Before(earliest) {
		early := fmt.Sprintf("left early by %d minutes", int(s.End.Sub(at).Minutes()))
		if current == StatusLate {
			combined := early
			if reason != nil {
				combined = *reason + "; " + early
			}
			return StatusLate, &combined
		}
		return StatusEarly, &early
	}

	if current == StatusLate {
		return current, reason
	}

	if at.After(s.End.Add(s.OvertimeThreshold)) {
		return StatusOvertime, nil
	}

	return StatusNormal, nil
}
