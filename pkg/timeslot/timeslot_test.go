package timeslot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinutes(t *testing.T) {
	m, err := Minutes("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, m)

	m, err = Minutes("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, m)

	_, err = Minutes("9:30am")
	assert.Error(t, err)

	_, err = Minutes("25:00")
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "09:30", Format(570))
	assert.Equal(t, "00:00", Format(0))
	assert.Equal(t, "23:59", Format(23*60+59))
}

func TestOverlaps(t *testing.T) {
	// Half-open intervals: touching ends do not overlap.
	assert.False(t, Overlaps("09:00", "09:30", "09:30", "10:00"))
	assert.False(t, Overlaps("09:30", "10:00", "09:00", "09:30"))
	assert.True(t, Overlaps("09:00", "10:00", "09:30", "09:45"))
	assert.True(t, Overlaps("09:30", "09:45", "09:00", "10:00"))
	assert.True(t, Overlaps("09:00", "09:31", "09:30", "10:00"))
}

func TestEndsAfter(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

	assert.True(t, EndsAfter(date, "09:31", now))
	assert.False(t, EndsAfter(date, "09:30", now))
	assert.False(t, EndsAfter(date, "09:00", now))
	assert.True(t, EndsAfter(date.AddDate(0, 0, 1), "00:30", now))
	assert.False(t, EndsAfter(date, "garbage", now))
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2026, 3, 2, 13, 0, 0, 0, time.UTC)
	b := time.Date(2026, 3, 9, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 7, DaysBetween(a, b))
	assert.Equal(t, -7, DaysBetween(b, a))
	assert.Equal(t, 0, DaysBetween(a, a))
}
