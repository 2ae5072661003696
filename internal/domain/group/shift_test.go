package group

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, s string) TimeOfDay {
	t.Helper()
	v, err := ParseTimeOfDay(s)
	require.NoError(t, err)
	return v
}

func TestParseTimeOfDay(t *testing.T) {
	v, err := ParseTimeOfDay("09:30")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay(570), v)
	assert.Equal(t, "09:30", v.String())

	_, err = ParseTimeOfDay("9h30")
	assert.Error(t, err)
}

func TestWorkShift_Window(t *testing.T) {
	date := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)

	day := WorkShift{StartTime: mustTime(t, "09:00"), EndTime: mustTime(t, "18:00")}
	start, end := day.Window(date)
	assert.Equal(t, time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 1, 8, 18, 0, 0, 0, time.UTC), end)

	night := WorkShift{StartTime: mustTime(t, "22:00"), EndTime: mustTime(t, "06:00"), CrossDay: true}
	start, end = night.Window(date)
	assert.Equal(t, time.Date(2024, 1, 8, 22, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 1, 9, 6, 0, 0, 0, time.UTC), end)
}

func TestWorkShift_BreakMinutesBetween(t *testing.T) {
	date := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	s := WorkShift{
		StartTime:  mustTime(t, "09:00"),
		EndTime:    mustTime(t, "18:00"),
		BreakTimes: []BreakTime{{Start: mustTime(t, "12:00"), End: mustTime(t, "13:00")}},
	}

	full := s.BreakMinutesBetween(date, time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC), time.Date(2024, 1, 8, 18, 0, 0, 0, time.UTC))
	assert.Equal(t, 60, full)

	partial := s.BreakMinutesBetween(date, time.Date(2024, 1, 8, 12, 30, 0, 0, time.UTC), time.Date(2024, 1, 8, 18, 0, 0, 0, time.UTC))
	assert.Equal(t, 30, partial)

	none := s.BreakMinutesBetween(date, time.Date(2024, 1, 8, 14, 0, 0, 0, time.UTC), time.Date(2024, 1, 8, 18, 0, 0, 0, time.UTC))
	assert.Equal(t, 0, none)
}

func TestBreakTime_JSON(t *testing.T) {
	var b BreakTime
	require.NoError(t, json.Unmarshal([]byte(`{"start":"12:00","end":"13:30"}`), &b))
	assert.Equal(t, TimeOfDay(720), b.Start)
	assert.Equal(t, TimeOfDay(810), b.End)

	out, err := json.Marshal(b)
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"12:00","end":"13:30"}`, string(out))
}
