package dayclock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadSGT(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Singapore")
	require.NoError(t, err)
	return loc
}

func TestInRestrictedWindow_WrappingDefault(t *testing.T) {
	loc := loadSGT(t)
	clock := NewSystemClock(loc, 22, 0)

	cases := []struct {
		hour int
		want bool
	}{
		{hour: 0, want: false},
		{hour: 12, want: false},
		{hour: 21, want: false},
		{hour: 22, want: true},
		{hour: 23, want: true},
	}

	for _, tc := range cases {
		ts := time.Date(2024, 3, 15, tc.hour, 30, 0, 0, loc)
		assert.Equalf(t, tc.want, clock.InRestrictedWindow(ts), "hour=%d", tc.hour)
	}
}

func TestInRestrictedWindow_NonWrapping(t *testing.T) {
	loc := loadSGT(t)
	clock := NewSystemClock(loc, 9, 17)

	cases := []struct {
		hour int
		want bool
	}{
		{hour: 8, want: false},
		{hour: 9, want: true},
		{hour: 16, want: true},
		{hour: 17, want: false},
		{hour: 23, want: false},
	}

	for _, tc := range cases {
		ts := time.Date(2024, 3, 15, tc.hour, 0, 0, 0, loc)
		assert.Equalf(t, tc.want, clock.InRestrictedWindow(ts), "hour=%d", tc.hour)
	}
}

func TestInRestrictedWindow_UsesFixedTimezoneHour(t *testing.T) {
	loc := loadSGT(t)
	clock := NewSystemClock(loc, 22, 0)

	// 14:30 UTC is 22:30 in Singapore (UTC+8).
	ts := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)
	assert.True(t, clock.InRestrictedWindow(ts))
}

func TestDayWindow(t *testing.T) {
	loc := loadSGT(t)

	ts := time.Date(2024, 3, 15, 12, 0, 0, 0, loc)
	start, end := DayWindow(ts, loc)

	wantStart := time.Date(2024, 3, 15, 0, 0, 0, 0, loc).UTC()
	assert.Equal(t, wantStart, start)
	assert.Equal(t, wantStart.Add(24*time.Hour), end)
	assert.Equal(t, time.UTC, start.Location())
}

func TestDayWindow_MidnightBoundary(t *testing.T) {
	loc := loadSGT(t)

	justBefore := time.Date(2024, 3, 15, 23, 59, 59, 0, loc)
	justAfter := time.Date(2024, 3, 16, 0, 0, 0, 0, loc)

	beforeStart, beforeEnd := DayWindow(justBefore, loc)
	afterStart, _ := DayWindow(justAfter, loc)

	assert.Equal(t, beforeEnd, afterStart, "next day starts where today ends")
	assert.True(t, beforeStart.Before(afterStart))
}

func TestDayWindow_ContainsInstant(t *testing.T) {
	loc := loadSGT(t)

	ts := time.Date(2024, 3, 15, 7, 45, 0, 0, loc)
	start, end := DayWindow(ts, loc)

	utc := ts.UTC()
	assert.False(t, utc.Before(start))
	assert.True(t, utc.Before(end))
}
