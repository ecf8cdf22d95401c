package entities

import "time"

// ReminderTarget combines reminder settings with the chat to notify.
type ReminderTarget struct {
	UserID         int64
	ChatID         int64
	Timezone       string
	ReminderHour   int
	LastReminderAt *time.Time
}

// ReminderPayload is what the notifier renders into the morning message.
type ReminderPayload struct {
	Plan     DailyPlan
	DueCards int
	Streak   Streak
}

// IsDueAt reports whether the daily reminder should go out at now:
// the user's local hour matches the reminder hour and nothing was sent
// earlier on the same local day.
func (r *ReminderTarget) IsDueAt(now time.Time) bool {
	loc, err := ParseTimezoneLocation(r.Timezone)
	if err != nil {
		loc = time.UTC
	}

	local := now.In(loc)
	if local.Hour() != r.ReminderHour {
		return false
	}

	if r.LastReminderAt == nil {
		return true
	}

	return r.LastReminderAt.Before(LocalMidnight(now, loc))
}
