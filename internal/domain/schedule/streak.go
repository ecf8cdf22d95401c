package schedule

import (
	"sort"
	"time"

	"github.com/aliskhannn/studyplanner/internal/domain/entities"
)

// CalculateStreak computes current and longest runs of consecutive study days.
//
// Each timestamp is reduced to its calendar date in today's location and
// duplicates are collapsed, so several sessions on one day count once. The
// current streak is kept only if the last studied day is today or yesterday.
func CalculateStreak(completed []time.Time, today time.Time) entities.Streak {
	if len(completed) == 0 {
		return entities.Streak{}
	}

	loc := today.Location()
	days := make([]int, 0, len(completed))
	seen := make(map[int]struct{}, len(completed))
	for _, t := range completed {
		d := dayNumber(t.In(loc))
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		days = append(days, d)
	}
	sort.Ints(days)

	longest, running := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i]-days[i-1] == 1 {
			running++
		} else {
			running = 1
		}
		longest = max(longest, running)
	}

	current := 0
	if gap := dayNumber(today) - days[len(days)-1]; gap == 0 || gap == 1 {
		current = running
	}

	return entities.Streak{Current: current, Longest: longest}
}

// dayNumber maps a local calendar date to a day index that is immune to DST shifts.
func dayNumber(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}
