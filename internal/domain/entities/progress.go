package entities

import "time"

// ProgressSummary is the user's study overview for the current local day.
type ProgressSummary struct {
	Date             time.Time // local midnight of the day the summary is for
	DueFlashcards    int       // cards due by the end of the day
	Materials        int       // uploaded materials
	PlannedMinutes   int       // minutes of saved, not yet completed sessions today
	CompletedMinutes int       // minutes of sessions completed today
	CompletedToday   int       // number of sessions completed today
	WeakTopics       []WeakTopic
	Streak           Streak
}

// Remaining returns the part of the daily budget not yet planned or done.
func (p ProgressSummary) Remaining(budgetMinutes int) int {
	return max(0, budgetMinutes-p.PlannedMinutes-p.CompletedMinutes)
}
