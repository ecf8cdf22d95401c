package service

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/aliskhannn/studyplanner/internal/domain/entities"
	"github.com/aliskhannn/studyplanner/internal/domain/schedule"
)

type ProgressService struct {
	settings   *SettingsService
	materials  MaterialRepository
	flashcards FlashcardRepository
	sessions   SessionRepository
	analytics  AnalyticsRepository
	now        func() time.Time
}

func NewProgressService(
	settings *SettingsService,
	materials MaterialRepository,
	flashcards FlashcardRepository,
	sessions SessionRepository,
	analytics AnalyticsRepository,
) *ProgressService {
	return &ProgressService{
		settings:   settings,
		materials:  materials,
		flashcards: flashcards,
		sessions:   sessions,
		analytics:  analytics,
		now:        time.Now,
	}
}

// GetStreak counts consecutive study days in the user's timezone.
func (s *ProgressService) GetStreak(ctx context.Context, userID int64) (entities.Streak, error) {
	settings, err := s.settings.GetOrCreate(ctx, userID)
	if err != nil {
		return entities.Streak{}, fmt.Errorf("get settings: %w", err)
	}

	return s.streak(ctx, userID, s.now().In(settings.Location()))
}

// GetSummary returns today's study overview.
func (s *ProgressService) GetSummary(ctx context.Context, userID int64) (*entities.ProgressSummary, error) {
	settings, err := s.settings.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}

	now := s.now().In(settings.Location())
	start := entities.LocalMidnight(now, settings.Location())
	end := start.AddDate(0, 0, 1)

	summary := &entities.ProgressSummary{Date: start}

	if summary.DueFlashcards, err = s.flashcards.CountDue(ctx, userID, end.Add(-time.Nanosecond)); err != nil {
		return nil, fmt.Errorf("count due flashcards: %w", err)
	}

	materials, err := s.materials.ListByUser(ctx, userID, now)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	summary.Materials = len(materials)

	sessions, err := s.sessions.ListInRange(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	for _, ss := range sessions {
		switch ss.Status {
		case entities.SessionPlanned:
			summary.PlannedMinutes += ss.DurationMinutes
		case entities.SessionCompleted:
			summary.CompletedMinutes += ss.DurationMinutes
			summary.CompletedToday++
		}
	}

	if summary.WeakTopics, err = s.analytics.WeakTopics(ctx, userID, entities.WeakTopicThreshold, schedule.MaxWeakTopics); err != nil {
		return nil, fmt.Errorf("weak topics: %w", err)
	}

	if summary.Streak, err = s.streak(ctx, userID, now); err != nil {
		return nil, err
	}

	return summary, nil
}

func (s *ProgressService) streak(ctx context.Context, userID int64, today time.Time) (entities.Streak, error) {
	dates, err := s.sessions.CompletedDates(ctx, userID)
	if err != nil {
		return entities.Streak{}, fmt.Errorf("list completed dates: %w", err)
	}

	dates = lo.Filter(dates, func(t time.Time, _ int) bool { return !t.After(today) })

	return schedule.CalculateStreak(dates, today), nil
}
