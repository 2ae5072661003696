package approval

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusCancelled, true},
		{StatusApproved, StatusCancelled, true},
		{StatusApproved, StatusApproved, false},
		{StatusApproved, StatusRejected, false},
		{StatusRejected, StatusApproved, false},
		{StatusRejected, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusApproved, false},
	}
	for _, c := range cases {
		got := CanTransition(c.from, c.to)
		if got != c.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestTransition_WrapsSentinel(t *testing.T) {
	err := Transition(StatusRejected, StatusApproved)
	assert.True(t, errors.Is(err, ErrInvalidTransition))
	assert.NoError(t, Transition(StatusPending, StatusApproved))
}

func TestStatusPredicates(t *testing.T) {
	assert.True(t, StatusPending.IsActive())
	assert.True(t, StatusApproved.IsActive())
	assert.False(t, StatusRejected.IsActive())
	assert.False(t, StatusCancelled.IsActive())

	assert.True(t, StatusRejected.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusApproved.IsTerminal())

	assert.Equal(t, "Approved", StatusApproved.Label())
	assert.Equal(t, "danger", StatusRejected.Color())
}

func TestParseStatus(t *testing.T) {
	for _, v := range StatusValues {
		s, err := ParseStatus(v)
		assert.NoError(t, err)
		assert.Equal(t, v, string(s))
	}
	_, err := ParseStatus("waiting_approval")
	assert.Error(t, err)
}
