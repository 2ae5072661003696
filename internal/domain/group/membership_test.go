package group

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveForEmployee(t *testing.T) {
	groups := []Group{
		{ID: 1, Name: "Office", IsActive: true, MemberIDs: []int64{10, 20, 30}},
	}

	g, ok := ResolveForEmployee(groups, 20)
	require.True(t, ok)
	assert.Equal(t, int64(1), g.ID)

	_, ok = ResolveForEmployee(groups, 99)
	assert.False(t, ok)
}

func TestResolveForEmployee_FirstByNameAndActiveOnly(t *testing.T) {
	groups := []Group{
		{ID: 1, Name: "Warehouse", IsActive: true, MemberIDs: []int64{5}},
		{ID: 2, Name: "Assembly", IsActive: false, MemberIDs: []int64{5}},
		{ID: 3, Name: "Logistics", IsActive: true, MemberIDs: []int64{5}},
	}

	g, ok := ResolveForEmployee(groups, 5)
	require.True(t, ok)
	assert.Equal(t, "Logistics", g.Name)
}

func TestResolveForEmployees(t *testing.T) {
	groups := []Group{
		{ID: 1, Name: "B", IsActive: true, MemberIDs: []int64{1, 2}},
		{ID: 2, Name: "A", IsActive: true, MemberIDs: []int64{2, 3}},
	}

	result := ResolveForEmployees(groups, []int64{1, 2, 3, 4, 2})
	require.Len(t, result, 3)
	assert.Equal(t, int64(1), result[1].ID)
	assert.Equal(t, int64(2), result[2].ID)
	assert.Equal(t, int64(2), result[3].ID)
	_, found := result[4]
	assert.False(t, found)
}
