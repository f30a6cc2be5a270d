package usecase

import (
	"context"
	"testing"

	"smarthealth/internal/delivery/dto"
	"smarthealth/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddHoliday(t *testing.T) {
	db := newTestDB(t)
	u := NewHolidayUsecase(db, newTestLogger(), repository.NewHolidayRepository())

	holiday, err := u.Add(context.Background(), &dto.HolidayRequest{Date: "2026-03-06", Name: "Founders Day"})
	require.NoError(t, err)
	assert.Equal(t, "2026-03-06", holiday.Date)
	assert.Equal(t, "Founders Day", holiday.Name)

	_, err = u.Add(context.Background(), &dto.HolidayRequest{Date: "2026-03-06", Name: "Duplicate"})
	assert.ErrorIs(t, err, ErrHolidayAlreadyExists)
}

func TestAddHolidayOnSunday(t *testing.T) {
	db := newTestDB(t)
	u := NewHolidayUsecase(db, newTestLogger(), repository.NewHolidayRepository())

	_, err := u.Add(context.Background(), &dto.HolidayRequest{Date: "2026-03-08", Name: "Sunday"})
	assert.ErrorIs(t, err, ErrHolidayOnSunday)
}

func TestDeleteHoliday(t *testing.T) {
	db := newTestDB(t)
	u := NewHolidayUsecase(db, newTestLogger(), repository.NewHolidayRepository())

	holiday, err := u.Add(context.Background(), &dto.HolidayRequest{Date: "2026-03-06", Name: "Founders Day"})
	require.NoError(t, err)

	require.NoError(t, u.Delete(context.Background(), holiday.ID))
	assert.ErrorIs(t, u.Delete(context.Background(), holiday.ID), ErrHolidayNotFound)
}

func TestListHolidays(t *testing.T) {
	db := newTestDB(t)
	u := NewHolidayUsecase(db, newTestLogger(), repository.NewHolidayRepository())

	_, err := u.Add(context.Background(), &dto.HolidayRequest{Date: "2026-03-06", Name: "Founders Day"})
	require.NoError(t, err)
	_, err = u.Add(context.Background(), &dto.HolidayRequest{Date: "2026-03-10", Name: "Spring Break"})
	require.NoError(t, err)

	holidays, err := u.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, holidays, 2)
}
