// Package schedule holds the pure spaced-repetition and daily planning logic.
// Nothing here performs I/O; callers load data and pass it in.
package schedule

import (
	"math"
	"time"

	"github.com/aliskhannn/studyplanner/internal/domain/entities"
)

// ReviewScheduler implements the SM-2 update rule. It is stateless and safe
// for concurrent use; the zero value is ready to use.
type ReviewScheduler struct{}

// NewReviewScheduler creates a ReviewScheduler.
func NewReviewScheduler() *ReviewScheduler {
	return &ReviewScheduler{}
}

// CalculateNextReview grades one review and returns the item's next state.
//
// Quality is clamped to [0, 5]. Missing state values fall back to the initial
// ones (ease 2.5, interval 1) and negative repetitions count as 0, so the
// function is total. The next review date is now plus IntervalDays calendar days.
func (s *ReviewScheduler) CalculateNextReview(quality int, state entities.ReviewState, now time.Time) entities.ReviewResult {
	q := clampQuality(quality)
	state = normalizeState(state)

	reps := state.Repetitions
	interval := state.IntervalDays

	if q < entities.PassingQuality {
		reps = 0
		interval = 1
	} else {
		switch reps {
		case 0:
			interval = 1
		case 1:
			interval = 6
		default:
			// Uses the ease factor from before this review.
			interval = int(math.Round(float64(interval) * state.EaseFactor))
		}
		reps++
	}

	fq := float64(5 - q)
	ease := state.EaseFactor + (0.1 - fq*(0.08+fq*0.02))
	if ease < entities.MinEaseFactor {
		ease = entities.MinEaseFactor
	}

	if interval < 1 {
		interval = 1
	}

	return entities.ReviewResult{
		ReviewState: entities.ReviewState{
			Repetitions:  reps,
			IntervalDays: interval,
			EaseFactor:   ease,
		},
		NextReviewAt: now.AddDate(0, 0, interval),
	}
}

// IsDue reports whether an item with the given next review date is due at t.
// A nil date means the item has never been scheduled and is due now.
func (s *ReviewScheduler) IsDue(next *time.Time, t time.Time) bool {
	return next == nil || !next.After(t)
}

func clampQuality(q int) int {
	return min(max(q, entities.MinQuality), entities.MaxQuality)
}

func normalizeState(st entities.ReviewState) entities.ReviewState {
	if st.Repetitions < 0 {
		st.Repetitions = 0
	}
	if st.IntervalDays < 1 {
		st.IntervalDays = entities.InitialIntervalDays
	}
	switch {
	case st.EaseFactor == 0:
		st.EaseFactor = entities.InitialEaseFactor
	case st.EaseFactor < entities.MinEaseFactor:
		st.EaseFactor = entities.MinEaseFactor
	}
	return st
}
