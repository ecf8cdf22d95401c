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

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository manages planned and completed study sessions.
type SessionRepository struct {
	db postgres.DBTX
}

func NewSessionRepository(db postgres.DBTX) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionColumns = `
	id, user_id, material_id, session_type, subject_topic, scheduled_at,
	duration_minutes, priority, reason, status, quality, repetitions,
	interval_days, ease_factor, next_review_at, completed_at, created_at
`

// CreateBatch inserts planned sessions in a single round trip.
func (r *SessionRepository) CreateBatch(ctx context.Context, sessions []*entities.StudySession) error {
	if len(sessions) == 0 {
		return nil
	}

	query := `INSERT INTO study_sessions (` + sessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	batch := &pgx.Batch{}
	for _, s := range sessions {
		batch.Queue(query,
			s.ID,
			s.UserID,
			s.MaterialID,
			s.Type,
			s.SubjectTopic,
			s.ScheduledAt,
			s.DurationMinutes,
			s.Priority,
			s.Reason,
			s.Status,
			s.Quality,
			s.Review.Repetitions,
			s.Review.IntervalDays,
			s.Review.EaseFactor,
			s.NextReviewAt,
			s.CompletedAt,
			s.CreatedAt,
		)
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	for range sessions {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert session: %w", err)
		}
	}

	return nil
}

// Get retrieves one of the user's sessions.
func (r *SessionRepository) Get(ctx context.Context, userID int64, sessionID string) (*entities.StudySession, error) {
	query := `SELECT ` + sessionColumns + ` FROM study_sessions WHERE user_id = $1 AND id = $2`

	s, err := scanSession(r.db.QueryRow(ctx, query, userID, sessionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	return s, nil
}

// ListInRange returns sessions scheduled in [from, to), skipped ones excluded.
func (r *SessionRepository) ListInRange(ctx context.Context, userID int64, from, to time.Time) ([]*entities.StudySession, error) {
	query := `SELECT ` + sessionColumns + `
		FROM study_sessions
		WHERE user_id = $1
			AND scheduled_at >= $2 AND scheduled_at < $3
			AND status <> 'skipped'
		ORDER BY scheduled_at, created_at`

	rows, err := r.db.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]*entities.StudySession, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}

// Complete stores the outcome of a finished session. Only planned sessions
// can be completed.
func (r *SessionRepository) Complete(ctx context.Context, s *entities.StudySession) error {
	query := `
		UPDATE study_sessions
		SET status = $1,
		    quality = $2,
		    repetitions = $3,
		    interval_days = $4,
		    ease_factor = $5,
		    next_review_at = $6,
		    completed_at = $7
		WHERE user_id = $8 AND id = $9 AND status = 'planned'
	`

	tag, err := r.db.Exec(ctx, query,
		s.Status,
		s.Quality,
		s.Review.Repetitions,
		s.Review.IntervalDays,
		s.Review.EaseFactor,
		s.NextReviewAt,
		s.CompletedAt,
		s.UserID,
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("complete session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// CompletedDates returns the completion times of all finished sessions.
func (r *SessionRepository) CompletedDates(ctx context.Context, userID int64) ([]time.Time, error) {
	query := `
		SELECT completed_at
		FROM study_sessions
		WHERE user_id = $1 AND status = 'completed' AND completed_at IS NOT NULL
		ORDER BY completed_at
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list completed dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan completed date: %w", err)
		}
		dates = append(dates, t)
	}

	return dates, rows.Err()
}

func scanSession(row pgx.Row) (*entities.StudySession, error) {
	var s entities.StudySession
	var materialID pgtype.Text
	var quality pgtype.Int4
	var next, completed pgtype.Timestamptz

	if err := row.Scan(
		&s.ID,
		&s.UserID,
		&materialID,
		&s.Type,
		&s.SubjectTopic,
		&s.ScheduledAt,
		&s.DurationMinutes,
		&s.Priority,
		&s.Reason,
		&s.Status,
		&quality,
		&s.Review.Repetitions,
		&s.Review.IntervalDays,
		&s.Review.EaseFactor,
		&next,
		&completed,
		&s.CreatedAt,
	); err != nil {
		return nil, err
	}

	if materialID.Valid {
		id := materialID.String
		s.MaterialID = &id
	}
	if quality.Valid {
		q := int(quality.Int32)
		s.Quality = &q
	}
	s.NextReviewAt = timePtr(next)
	s.CompletedAt = timePtr(completed)

	return &s, nil
}
