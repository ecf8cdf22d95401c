package telegram

import (
	"context"

	"github.com/aliskhannn/studyplanner/internal/domain/entities"
	"github.com/aliskhannn/studyplanner/internal/storage"
)

type UserService interface {
	EnsureUser(ctx context.Context, userID, chatID int64) (bool, error)
}

type ScheduleService interface {
	GenerateSchedule(ctx context.Context, userID int64, horizonDays int) ([]entities.DailyPlan, error)
	SaveToday(ctx context.Context, userID int64) ([]*entities.StudySession, error)
	SessionsToday(ctx context.Context, userID int64) ([]*entities.StudySession, error)
}

type ReviewService interface {
	ReviewFlashcard(ctx context.Context, userID int64, cardID string, quality int) (*entities.Flashcard, error)
	CompleteSession(ctx context.Context, userID int64, sessionID string, quality int) (*entities.StudySession, error)
}

type ProgressService interface {
	GetStreak(ctx context.Context, userID int64) (entities.Streak, error)
	GetSummary(ctx context.Context, userID int64) (*entities.ProgressSummary, error)
}

type SettingsService interface {
	GetOrCreate(ctx context.Context, userID int64) (*entities.UserSettings, error)
	UpdateDailyMinutes(ctx context.Context, userID int64, minutes int) error
	UpdateTimezone(ctx context.Context, userID int64, tz string) error
	ToggleReminder(ctx context.Context, userID int64) (*entities.UserSettings, error)
	SetReminderHour(ctx context.Context, userID int64, hour int) error
}

type MaterialService interface {
	Add(ctx context.Context, userID int64, subject, topic, title string, readMinutes int) (*entities.MaterialRef, error)
	List(ctx context.Context, userID int64) ([]entities.MaterialRef, error)
	RecordQuiz(ctx context.Context, userID int64, materialID string, score float64, minutes int) (*entities.QuizAttempt, error)
}

type FlashcardService interface {
	Add(ctx context.Context, userID int64, materialID, front, back string) (*entities.Flashcard, error)
	ListDue(ctx context.Context, userID int64, limit int) ([]*entities.Flashcard, error)
}

type ResetService interface {
	ResetUser(ctx context.Context, userID int64) error
}

// ReminderStorage remembers the last reminder message per user.
type ReminderStorage interface {
	UpsertAndGetPrev(userID int64, chatID int64, messageID int) (prev storage.ReminderMessage, hadPrev bool)
}
