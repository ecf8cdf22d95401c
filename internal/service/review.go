package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/studyplanner/internal/domain/entities"
	"github.com/aliskhannn/studyplanner/internal/domain/schedule"
	"github.com/aliskhannn/studyplanner/internal/infra/postgres"
	"github.com/aliskhannn/studyplanner/internal/infra/postgres/repository"
)

// ReviewService grades flashcards and completed sessions with the SM-2 scheduler.
type ReviewService struct {
	tr        Transactor
	repos     RepositoryFactory
	scheduler *schedule.ReviewScheduler
	logger    *zap.Logger
	now       func() time.Time
}

func NewReviewService(tr Transactor, repos RepositoryFactory, scheduler *schedule.ReviewScheduler, logger *zap.Logger) *ReviewService {
	return &ReviewService{
		tr:        tr,
		repos:     repos,
		scheduler: scheduler,
		logger:    logger,
		now:       time.Now,
	}
}

// ReviewFlashcard records a recall rating for a card and reschedules it.
// The card's material counts as studied.
func (s *ReviewService) ReviewFlashcard(ctx context.Context, userID int64, cardID string, quality int) (*entities.Flashcard, error) {
	if !entities.ValidQuality(quality) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidQuality, quality)
	}

	now := s.now()
	var card *entities.Flashcard

	err := s.tr.WithinTx(ctx, func(ctx context.Context, tx postgres.DBTX) error {
		repos := s.repos(tx)

		var err error
		card, err = repos.Flashcards.Get(ctx, userID, cardID)
		if err != nil {
			return fmt.Errorf("get flashcard: %w", err)
		}

		card.Apply(s.scheduler.CalculateNextReview(quality, card.Review, now), now)

		if err := repos.Flashcards.UpdateReview(ctx, card); err != nil {
			return fmt.Errorf("update flashcard: %w", err)
		}

		if err := repos.Materials.MarkStudied(ctx, userID, card.MaterialID, now); err != nil &&
			!errors.Is(err, repository.ErrMaterialNotFound) {
			return fmt.Errorf("mark material studied: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("flashcard reviewed",
		zap.Int64("user_id", userID),
		zap.String("card_id", cardID),
		zap.Int("quality", quality),
		zap.Int("interval_days", card.Review.IntervalDays),
	)

	return card, nil
}

// CompleteSession closes a planned session with a recall rating, stores its
// next review date and marks its material studied.
func (s *ReviewService) CompleteSession(ctx context.Context, userID int64, sessionID string, quality int) (*entities.StudySession, error) {
	if !entities.ValidQuality(quality) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidQuality, quality)
	}

	now := s.now()
	var session *entities.StudySession

	err := s.tr.WithinTx(ctx, func(ctx context.Context, tx postgres.DBTX) error {
		repos := s.repos(tx)

		var err error
		session, err = repos.Sessions.Get(ctx, userID, sessionID)
		if err != nil {
			return fmt.Errorf("get session: %w", err)
		}
		if session.Status != entities.SessionPlanned {
			return ErrSessionAlreadyCompleted
		}

		session.Complete(quality, s.scheduler.CalculateNextReview(quality, session.Review, now), now)

		if err := repos.Sessions.Complete(ctx, session); err != nil {
			return fmt.Errorf("complete session: %w", err)
		}

		if session.MaterialID != nil {
			if err := repos.Materials.MarkStudied(ctx, userID, *session.MaterialID, now); err != nil &&
				!errors.Is(err, repository.ErrMaterialNotFound) {
				return fmt.Errorf("mark material studied: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("session completed",
		zap.Int64("user_id", userID),
		zap.String("session_id", sessionID),
		zap.Int("quality", quality),
	)

	return session, nil
}
