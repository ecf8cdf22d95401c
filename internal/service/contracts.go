package service

import (
	"context"
	"time"

	"github.com/aliskhannn/studyplanner/internal/domain/entities"
	"github.com/aliskhannn/studyplanner/internal/infra/postgres"
	"github.com/aliskhannn/studyplanner/internal/infra/postgres/repository"
)

type UserRepository interface {
	Save(ctx context.Context, user *entities.User) (bool, error)
	Exists(ctx context.Context, userID int64) (bool, error)
	GetByID(ctx context.Context, userID int64) (*entities.User, error)
	Deactivate(ctx context.Context, userID int64) error
}

type SettingsRepository interface {
	Create(ctx context.Context, s *entities.UserSettings) error
	GetByUserID(ctx context.Context, userID int64) (*entities.UserSettings, error)
	UpdateDailyMinutes(ctx context.Context, userID int64, minutes int) error
	UpdateTimezone(ctx context.Context, userID int64, timezone string) error
	UpdateReminder(ctx context.Context, userID int64, enabled bool, hour int) error
}

// ReminderRepository manages reminder persistence.
type ReminderRepository interface {
	ListCandidatesBatch(ctx context.Context, since time.Time, afterUserID int64, limit int) ([]*entities.ReminderTarget, error)
	MarkSent(ctx context.Context, userID int64, sentAt time.Time) error
}

type MaterialRepository interface {
	Create(ctx context.Context, m *entities.MaterialRef) error
	Get(ctx context.Context, userID int64, materialID string) (*entities.MaterialRef, error)
	ListByUser(ctx context.Context, userID int64, asOf time.Time) ([]entities.MaterialRef, error)
	MarkStudied(ctx context.Context, userID int64, materialID string, at time.Time) error
}

type FlashcardRepository interface {
	Create(ctx context.Context, card *entities.Flashcard) error
	Get(ctx context.Context, userID int64, cardID string) (*entities.Flashcard, error)
	ListReviewCards(ctx context.Context, userID int64, until time.Time) ([]entities.ReviewCard, error)
	ListDue(ctx context.Context, userID int64, asOf time.Time, limit int) ([]*entities.Flashcard, error)
	UpdateReview(ctx context.Context, card *entities.Flashcard) error
	CountDue(ctx context.Context, userID int64, asOf time.Time) (int, error)
}

type SessionRepository interface {
	CreateBatch(ctx context.Context, sessions []*entities.StudySession) error
	Get(ctx context.Context, userID int64, sessionID string) (*entities.StudySession, error)
	ListInRange(ctx context.Context, userID int64, from, to time.Time) ([]*entities.StudySession, error)
	Complete(ctx context.Context, s *entities.StudySession) error
	CompletedDates(ctx context.Context, userID int64) ([]time.Time, error)
}

type AnalyticsRepository interface {
	RecordAttempt(ctx context.Context, a *entities.QuizAttempt) error
	WeakTopics(ctx context.Context, userID int64, threshold float64, limit int) ([]entities.WeakTopic, error)
}

type ResetRepository interface {
	ResetUser(ctx context.Context, userID int64) error
}

// Transactor runs a function inside a database transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx postgres.DBTX) error) error
}

// TxRepositories are the repositories a service uses inside a transaction.
type TxRepositories struct {
	Settings   SettingsRepository
	Materials  MaterialRepository
	Flashcards FlashcardRepository
	Sessions   SessionRepository
	Reset      ResetRepository
}

// RepositoryFactory binds repositories to a transaction.
type RepositoryFactory func(db postgres.DBTX) TxRepositories

// NewTxRepositories is the RepositoryFactory backed by postgres.
func NewTxRepositories(db postgres.DBTX) TxRepositories {
	return TxRepositories{
		Settings:   repository.NewSettingsRepository(db),
		Materials:  repository.NewMaterialRepository(db),
		Flashcards: repository.NewFlashcardRepository(db),
		Sessions:   repository.NewSessionRepository(db),
		Reset:      repository.NewResetRepository(db),
	}
}

// ReminderNotifier sends reminder notifications to users.
type ReminderNotifier interface {
	SendReminder(userID, chatID int64, payload entities.ReminderPayload) error
}
