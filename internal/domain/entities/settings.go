package entities

import (
	"time"
)

const (
	DefaultDailyStudyMinutes = 60
	DefaultReminderHour      = 8
	MaxDailyStudyMinutes     = 16 * 60
)

// UserSettings stores user-specific planning preferences.
type UserSettings struct {
	UserID            int64
	DailyStudyMinutes int    // daily time budget the planner allocates
	Timezone          string // IANA name or UTC offset, see ParseTimezoneLocation
	ReminderHour      int    // local hour (0-23) of the daily plan reminder
	RemindersEnabled  bool
	LastReminderAt    *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewUserSettings creates a new UserSettings instance with default values.
func NewUserSettings(userID int64) *UserSettings {
	now := time.Now()
	return &UserSettings{
		UserID:            userID,
		DailyStudyMinutes: DefaultDailyStudyMinutes,
		Timezone:          "UTC",
		ReminderHour:      DefaultReminderHour,
		RemindersEnabled:  true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// Location returns the user's time zone, falling back to UTC.
func (s *UserSettings) Location() *time.Location {
	loc, err := ParseTimezoneLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
