package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aliskhannn/studyplanner/internal/domain/entities"
)

// MaterialService manages study materials and the quiz results recorded against them.
type MaterialService struct {
	materials MaterialRepository
	analytics AnalyticsRepository
	now       func() time.Time
}

func NewMaterialService(materials MaterialRepository, analytics AnalyticsRepository) *MaterialService {
	return &MaterialService{
		materials: materials,
		analytics: analytics,
		now:       time.Now,
	}
}

// Add stores a new material. A non-positive estimate falls back to the
// default reading time when planned.
func (s *MaterialService) Add(ctx context.Context, userID int64, subject, topic, title string, readMinutes int) (*entities.MaterialRef, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, fmt.Errorf("%w: subject", ErrEmptyField)
	}

	m := &entities.MaterialRef{
		ID:                   uuid.NewString(),
		UserID:               userID,
		Subject:              subject,
		Topic:                strings.TrimSpace(topic),
		Title:                strings.TrimSpace(title),
		EstimatedReadMinutes: max(0, readMinutes),
		CreatedAt:            s.now(),
	}

	if err := s.materials.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("create material: %w", err)
	}

	return m, nil
}

// List returns the user's materials with their due flashcard counts.
func (s *MaterialService) List(ctx context.Context, userID int64) ([]entities.MaterialRef, error) {
	materials, err := s.materials.ListByUser(ctx, userID, s.now())
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	return materials, nil
}

// RecordQuiz stores a quiz score for a material. Low averages turn the
// material's topic into a weak topic for the planner.
func (s *MaterialService) RecordQuiz(ctx context.Context, userID int64, materialID string, score float64, minutes int) (*entities.QuizAttempt, error) {
	if !entities.ValidScore(score) {
		return nil, ErrInvalidScore
	}

	m, err := s.materials.Get(ctx, userID, materialID)
	if err != nil {
		return nil, fmt.Errorf("get material: %w", err)
	}

	attempt := entities.NewQuizAttempt(uuid.NewString(), userID, *m, score, max(0, minutes))
	attempt.CompletedAt = s.now()

	if err := s.analytics.RecordAttempt(ctx, attempt); err != nil {
		return nil, fmt.Errorf("record attempt: %w", err)
	}

	return attempt, nil
}

// FlashcardService creates flashcards and lists the ones waiting for review.
type FlashcardService struct {
	materials  MaterialRepository
	flashcards FlashcardRepository
	now        func() time.Time
}

func NewFlashcardService(materials MaterialRepository, flashcards FlashcardRepository) *FlashcardService {
	return &FlashcardService{
		materials:  materials,
		flashcards: flashcards,
		now:        time.Now,
	}
}

// Add attaches a new card to one of the user's materials. New cards are due immediately.
func (s *FlashcardService) Add(ctx context.Context, userID int64, materialID, front, back string) (*entities.Flashcard, error) {
	front, back = strings.TrimSpace(front), strings.TrimSpace(back)
	if front == "" || back == "" {
		return nil, fmt.Errorf("%w: front and back", ErrEmptyField)
	}

	if _, err := s.materials.Get(ctx, userID, materialID); err != nil {
		return nil, fmt.Errorf("get material: %w", err)
	}

	card := entities.NewFlashcard(uuid.NewString(), userID, materialID, front, back)
	now := s.now()
	card.CreatedAt = now
	card.NextReviewAt = &now

	if err := s.flashcards.Create(ctx, card); err != nil {
		return nil, fmt.Errorf("create flashcard: %w", err)
	}

	return card, nil
}

// ListDue returns up to limit cards due now.
func (s *FlashcardService) ListDue(ctx context.Context, userID int64, limit int) ([]*entities.Flashcard, error) {
	cards, err := s.flashcards.ListDue(ctx, userID, s.now(), limit)
	if err != nil {
		return nil, fmt.Errorf("list due flashcards: %w", err)
	}
	return cards, nil
}
