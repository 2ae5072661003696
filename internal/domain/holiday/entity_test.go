package holiday

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfig_AppliesTo(t *testing.T) {
	dept := int64(7)
	other := int64(8)

	all := Config{IsActive: true}
	assert.True(t, all.AppliesTo(nil))
	assert.True(t, all.AppliesTo(&dept))

	scoped := Config{IsActive: true, ApplicableDepartments: []int64{7}}
	assert.True(t, scoped.AppliesTo(&dept))
	assert.False(t, scoped.AppliesTo(&other))
	assert.False(t, scoped.AppliesTo(nil))

	inactive := Config{IsActive: false}
	assert.False(t, inactive.AppliesTo(nil))
}

func TestFind(t *testing.T) {
	configs := []Config{
		{ID: 1, HolidayDate: time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC), IsActive: true},
		{ID: 2, HolidayDate: time.Date(2024, 10, 2, 0, 0, 0, 0, time.UTC), IsActive: false},
	}

	c, ok := Find(configs, time.Date(2024, 10, 1, 15, 30, 0, 0, time.UTC), nil)
	assert.True(t, ok)
	assert.Equal(t, int64(1), c.ID)

	_, ok = Find(configs, time.Date(2024, 10, 2, 0, 0, 0, 0, time.UTC), nil)
	assert.False(t, ok)
}
