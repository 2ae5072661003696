// Package clock abstracts the current time so workflow rules such as
// "start date in the past" can be tested deterministically.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

type real struct {
	loc *time.Location
}

// New returns a Clock reading the system time in loc. A nil loc means UTC.
func New(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return real{loc: loc}
}

func (c real) Now() time.Time {
	return time.Now().In(c.loc)
}

// Fixed always reports the same instant.
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f)
}
