package holiday

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/memorytest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHolidayService_CreateAndHolidayOn(t *testing.T) {
	ctx := context.Background()
	svc := NewHolidayService(memorytest.NewHolidayRepository(memorytest.NewStore()))

	created, err := svc.Create(ctx, holiday.CreateHolidayRequest{
		Name:        "New Year",
		HolidayDate: "2024-01-01",
		Type:        string(holiday.TypeNational),
	})
	require.NoError(t, err)
	assert.True(t, created.IsPaid)
	assert.True(t, created.IsMandatory)
	assert.Equal(t, "National holiday", created.TypeLabel)

	dept := int64(4)
	_, err = svc.Create(ctx, holiday.CreateHolidayRequest{
		Name:                  "Team offsite",
		HolidayDate:           "2024-01-02",
		Type:                  string(holiday.TypeCompany),
		ApplicableDepartments: []int64{dept},
	})
	require.NoError(t, err)

	got, err := svc.HolidayOn(ctx, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "New Year", got.Name)

	none, err := svc.HolidayOn(ctx, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)
	assert.Nil(t, none, "department holiday does not apply company-wide")

	scoped, err := svc.HolidayOn(ctx, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), &dept)
	require.NoError(t, err)
	assert.NotNil(t, scoped)
}

func TestHolidayService_UpdateDeleteList(t *testing.T) {
	ctx := context.Background()
	svc := NewHolidayService(memorytest.NewHolidayRepository(memorytest.NewStore()))

	created, err := svc.Create(ctx, holiday.CreateHolidayRequest{Name: "Founders day", HolidayDate: "2024-05-01", Type: "company"})
	require.NoError(t, err)

	inactive := false
	updated, err := svc.Update(ctx, holiday.UpdateHolidayRequest{
		ID: created.ID,
		CreateHolidayRequest: holiday.CreateHolidayRequest{
			Name: "Founders day", HolidayDate: "2024-05-02", Type: "company", IsActive: &inactive,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-05-02", updated.HolidayDate)

	year := 2024
	list, err := svc.List(ctx, &year)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	got, err := svc.HolidayOn(ctx, time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)
	assert.Nil(t, got, "inactive holidays are ignored")

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, holiday.ErrHolidayNotFound)
}

func TestHolidayService_CreateValidates(t *testing.T) {
	svc := NewHolidayService(memorytest.NewHolidayRepository(memorytest.NewStore()))

	_, err := svc.Create(context.Background(), holiday.CreateHolidayRequest{Name: "", HolidayDate: "01/01/2024", Type: "bank"})
	assert.Error(t, err)
}
