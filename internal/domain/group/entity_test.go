package group

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRules_Accessors(t *testing.T) {
	var rules Rules
	require.NoError(t, rules.Scan([]byte(`{
		"max_leave_days": 10,
		"advance_notice_days": 3,
		"max_overtime_hours": 4.5,
		"leave_allotments": {"annual": 12},
		"locations": [{"name": "HQ", "latitude": 31.23, "longitude": 121.47, "radius_meters": 200}]
	}`)))

	v, ok := rules.MaxLeaveDays()
	assert.True(t, ok)
	assert.Equal(t, 10.0, v)

	n, ok := rules.AdvanceNoticeDays()
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	h, ok := rules.MaxOvertimeHours()
	assert.True(t, ok)
	assert.Equal(t, 4.5, h)

	a, ok := rules.LeaveAllotment("annual")
	assert.True(t, ok)
	assert.Equal(t, 12.0, a)
	_, ok = rules.LeaveAllotment("sick")
	assert.False(t, ok)

	_, ok = rules.MaxPatchesPerMonth()
	assert.False(t, ok)
	assert.Equal(t, DefaultEarlyCheckInMinutes, rules.EarlyCheckInMinutes())
	assert.Equal(t, DefaultOvertimeThresholdMinutes, rules.OvertimeThresholdMinutes())

	locations, err := rules.Locations()
	require.NoError(t, err)
	require.Len(t, locations, 1)
	assert.Equal(t, "HQ", locations[0].Name)
	assert.Equal(t, 200.0, locations[0].RadiusMeters)
}

func TestRules_ScanNil(t *testing.T) {
	rules := Rules{"x": 1}
	require.NoError(t, rules.Scan(nil))
	assert.Empty(t, rules)
}

func TestGroup_HasMember(t *testing.T) {
	g := Group{MemberIDs: []int64{10, 20, 30}}
	assert.True(t, g.HasMember(20))
	assert.False(t, g.HasMember(99))
}
