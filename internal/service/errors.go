package service

import "errors"

var (
	ErrInvalidQuality          = errors.New("quality must be between 0 and 5")
	ErrInvalidBudget           = errors.New("daily budget out of range")
	ErrInvalidTimezone         = errors.New("unsupported timezone")
	ErrInvalidReminderHour     = errors.New("reminder hour must be between 0 and 23")
	ErrInvalidScore            = errors.New("score must be between 0 and 100")
	ErrEmptyField              = errors.New("required field is empty")
	ErrSessionAlreadyCompleted = errors.New("session already completed")

	// ErrRecipientUnavailable is returned by a ReminderNotifier when the
	// chat can no longer receive messages.
	ErrRecipientUnavailable = errors.New("recipient unavailable")
)
