package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(d int, hour int) time.Time {
	return time.Date(2025, 5, d, hour, 0, 0, 0, time.UTC)
}

func TestCalculateStreak(t *testing.T) {
	tests := []struct {
		name      string
		completed []time.Time
		today     time.Time
		want      int
		longest   int
	}{
		{"empty", nil, day(10, 12), 0, 0},
		{"three consecutive ending today", []time.Time{day(1, 9), day(2, 9), day(3, 9)}, day(3, 20), 3, 3},
		{"ending yesterday still counts", []time.Time{day(1, 9), day(2, 9), day(3, 9)}, day(4, 8), 3, 3},
		{"broken streak", []time.Time{day(1, 9), day(2, 9), day(3, 9)}, day(5, 8), 0, 3},
		{"gap of two days", []time.Time{day(1, 9), day(3, 9)}, day(3, 22), 1, 1},
		{"gap of two days, studied long ago", []time.Time{day(1, 9), day(3, 9)}, day(9, 22), 0, 1},
		{"same day sessions count once", []time.Time{day(1, 8), day(1, 18), day(2, 7), day(2, 21)}, day(2, 23), 2, 2},
		{"unsorted input", []time.Time{day(6, 9), day(1, 9), day(5, 9), day(2, 9), day(7, 9)}, day(7, 10), 3, 3},
		{"longest in the past", []time.Time{day(1, 9), day(2, 9), day(3, 9), day(4, 9), day(8, 9), day(9, 9)}, day(9, 10), 2, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateStreak(tt.completed, tt.today)
			assert.Equal(t, tt.want, got.Current)
			assert.Equal(t, tt.longest, got.Longest)
			assert.LessOrEqual(t, got.Current, got.Longest)
		})
	}
}

func TestCalculateStreak_UsesTodaysLocation(t *testing.T) {
	tokyo := time.FixedZone("UTC+09:00", 9*3600)

	// 16:00 UTC on May 1 is already May 2 in Tokyo.
	completed := []time.Time{
		time.Date(2025, 5, 1, 2, 0, 0, 0, time.UTC),
		time.Date(2025, 5, 1, 16, 0, 0, 0, time.UTC),
	}
	today := time.Date(2025, 5, 2, 12, 0, 0, 0, tokyo)

	got := CalculateStreak(completed, today)
	assert.Equal(t, 2, got.Current)
	assert.Equal(t, 2, got.Longest)
}
