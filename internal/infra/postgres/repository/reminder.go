package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/aliskhannn/studyplanner/internal/domain/entities"
	"github.com/aliskhannn/studyplanner/internal/infra/postgres"
)

// ReminderRepository reads reminder candidates and records sent reminders.
type ReminderRepository struct {
	db postgres.DBTX
}

func NewRemindersRepository(db postgres.DBTX) *ReminderRepository {
	return &ReminderRepository{db: db}
}

// ListCandidatesBatch returns active users with reminders enabled that have
// not been reminded since since, ordered by user ID and starting after
// afterUserID. Whether the local hour matches is decided by the caller,
// because timezones are stored as free text.
func (r *ReminderRepository) ListCandidatesBatch(ctx context.Context, since time.Time, afterUserID int64, limit int) ([]*entities.ReminderTarget, error) {
	query := `
		SELECT us.user_id, u.chat_id, us.timezone, us.reminder_hour, us.last_reminder_at
		FROM user_settings us
		INNER JOIN users u ON u.id = us.user_id
		WHERE us.reminders_enabled = TRUE
			AND u.is_active = TRUE
			AND (us.last_reminder_at IS NULL OR us.last_reminder_at < $1)
			AND us.user_id > $2
		ORDER BY us.user_id
		LIMIT $3
	`

	rows, err := r.db.Query(ctx, query, since, afterUserID, limit)
	if err != nil {
		return nil, fmt.Errorf("list reminder candidates: %w", err)
	}
	defer rows.Close()

	var targets []*entities.ReminderTarget
	for rows.Next() {
		var t entities.ReminderTarget
		var last pgtype.Timestamptz

		if err := rows.Scan(&t.UserID, &t.ChatID, &t.Timezone, &t.ReminderHour, &last); err != nil {
			return nil, fmt.Errorf("scan reminder candidate: %w", err)
		}
		t.LastReminderAt = timePtr(last)

		targets = append(targets, &t)
	}

	return targets, rows.Err()
}

// MarkSent records that today's reminder went out.
func (r *ReminderRepository) MarkSent(ctx context.Context, userID int64, sentAt time.Time) error {
	query := `
		UPDATE user_settings
		SET last_reminder_at = $1, updated_at = $2
		WHERE user_id = $3
	`

	result, err := r.db.Exec(ctx, query, sentAt, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("mark reminder sent: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrSettingsNotFound
	}

	return nil
}
