package repository

import (
	"context"
	"fmt"

	"github.com/aliskhannn/studyplanner/internal/infra/postgres"
)

type ResetRepository struct {
	db postgres.DBTX
}

func NewResetRepository(db postgres.DBTX) *ResetRepository {
	return &ResetRepository{db: db}
}

// ResetUser removes the user's study history. Materials and settings stay.
func (s *ResetRepository) ResetUser(ctx context.Context, userID int64) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM study_sessions WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete study_sessions: %w", err)
	}
	if _, err := s.db.Exec(ctx, `DELETE FROM quiz_attempts WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete quiz_attempts: %w", err)
	}
	if _, err := s.db.Exec(ctx, `
		UPDATE flashcards
		SET repetitions = 0, interval_days = 1, ease_factor = 2.5,
		    next_review_at = NOW(), last_reviewed_at = NULL
		WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("reset flashcards: %w", err)
	}
	if _, err := s.db.Exec(ctx, `UPDATE materials SET last_studied_at = NULL WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("reset materials: %w", err)
	}

	return nil
}
