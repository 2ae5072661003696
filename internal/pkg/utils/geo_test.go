package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	assert.Zero(t, Distance(31.23, 121.47, 31.23, 121.47))

	// One degree of latitude is roughly 111 km.
	assert.InDelta(t, 111195, Distance(0, 0, 1, 0), 100)
}

func TestMatchFence(t *testing.T) {
	fences := []Fence{
		{Latitude: 31.2300, Longitude: 121.4700, RadiusMeters: 500},
		{Latitude: 31.2305, Longitude: 121.4700, RadiusMeters: 100},
	}

	// ~55 m north of the first center, ~0 m from the second
	assert.Equal(t, 1, MatchFence(31.2305, 121.47, fences))
	// inside only the large fence
	assert.Equal(t, 0, MatchFence(31.2280, 121.47, fences))
	assert.Equal(t, -1, MatchFence(31.30, 121.47, fences))
	assert.Equal(t, -1, MatchFence(31.23, 121.47, nil))
}
