package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/aliskhannn/studyplanner/internal/domain/entities"
	"github.com/aliskhannn/studyplanner/internal/infra/postgres"
)

var ErrSettingsNotFound = errors.New("settings not found")

// SettingsRepository provides access to user settings data in the database.
type SettingsRepository struct {
	db postgres.DBTX
}

func NewSettingsRepository(db postgres.DBTX) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Create stores default settings for a user. Existing settings are kept.
func (r *SettingsRepository) Create(ctx context.Context, s *entities.UserSettings) error {
	query := `
		INSERT INTO user_settings (
			user_id, daily_study_minutes, timezone, reminder_hour,
			reminders_enabled, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query,
		s.UserID,
		s.DailyStudyMinutes,
		s.Timezone,
		s.ReminderHour,
		s.RemindersEnabled,
		s.CreatedAt,
		s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create settings: %w", err)
	}

	return nil
}

// GetByUserID retrieves settings for a user.
func (r *SettingsRepository) GetByUserID(ctx context.Context, userID int64) (*entities.UserSettings, error) {
	query := `
		SELECT user_id, daily_study_minutes, timezone, reminder_hour,
		       reminders_enabled, last_reminder_at, created_at, updated_at
		FROM user_settings
		WHERE user_id = $1
	`

	var s entities.UserSettings
	var lastReminder pgtype.Timestamptz
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&s.UserID,
		&s.DailyStudyMinutes,
		&s.Timezone,
		&s.ReminderHour,
		&s.RemindersEnabled,
		&lastReminder,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSettingsNotFound
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}

	s.LastReminderAt = timePtr(lastReminder)
	return &s, nil
}

func (r *SettingsRepository) UpdateDailyMinutes(ctx context.Context, userID int64, minutes int) error {
	return r.update(ctx, "update daily minutes", `
		UPDATE user_settings
		SET daily_study_minutes = $1, updated_at = $2
		WHERE user_id = $3
	`, minutes, time.Now(), userID)
}

// UpdateTimezone stores the user's timezone as entered.
func (r *SettingsRepository) UpdateTimezone(ctx context.Context, userID int64, timezone string) error {
	return r.update(ctx, "update timezone", `
		UPDATE user_settings
		SET timezone = $1, updated_at = $2
		WHERE user_id = $3
	`, timezone, time.Now(), userID)
}

func (r *SettingsRepository) UpdateReminder(ctx context.Context, userID int64, enabled bool, hour int) error {
	return r.update(ctx, "update reminder", `
		UPDATE user_settings
		SET reminders_enabled = $1, reminder_hour = $2, updated_at = $3
		WHERE user_id = $4
	`, enabled, hour, time.Now(), userID)
}

func (r *SettingsRepository) update(ctx context.Context, op, query string, args ...any) error {
	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if result.RowsAffected() == 0 {
		return ErrSettingsNotFound
	}

	return nil
}

func timePtr(ts pgtype.Timestamptz) *time.Time {
	if !ts.Valid {
		return nil
	}
	t := ts.Time
	return &t
}
