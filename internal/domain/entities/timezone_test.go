package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimezoneLocation(t *testing.T) {
	cases := []struct {
		in     string
		offset int
	}{
		{"", 0},
		{"utc", 0},
		{"UTC+3", 3 * 3600},
		{"UTC-7", -7 * 3600},
		{"+5:30", 5*3600 + 30*60},
		{"-03:30", -(3*3600 + 30*60)},
	}

	ref := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			loc, err := ParseTimezoneLocation(tc.in)
			require.NoError(t, err)
			_, off := ref.In(loc).Zone()
			assert.Equal(t, tc.offset, off)
		})
	}

	loc, err := ParseTimezoneLocation("Europe/Berlin")
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", loc.String())

	for _, bad := range []string{"Mars/Olympus", "UTC+15", "+3:75", "3"} {
		_, err := ParseTimezoneLocation(bad)
		assert.Error(t, err, bad)
	}
}

func TestLocalMidnight(t *testing.T) {
	tokyo := time.FixedZone("UTC+09:00", 9*3600)
	// 20:00 UTC on the 10th is already the 11th in Tokyo.
	got := LocalMidnight(time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC), tokyo)

	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, tokyo), got)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), LocalMidnight(time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC), nil))
}

func TestReminderTarget_IsDueAt(t *testing.T) {
	now := time.Date(2024, 3, 10, 7, 0, 0, 0, time.UTC) // 08:00 in Berlin (CET)

	target := &ReminderTarget{Timezone: "Europe/Berlin", ReminderHour: 8}
	assert.True(t, target.IsDueAt(now))

	assert.False(t, target.IsDueAt(now.Add(time.Hour)), "local hour is 9")

	yesterday := now.Add(-24 * time.Hour)
	target.LastReminderAt = &yesterday
	assert.True(t, target.IsDueAt(now))

	earlier := now.Add(-30 * time.Minute)
	target.LastReminderAt = &earlier
	assert.False(t, target.IsDueAt(now), "already sent today")

	broken := &ReminderTarget{Timezone: "nowhere", ReminderHour: 7}
	assert.True(t, broken.IsDueAt(now), "unknown timezone falls back to UTC")
}
