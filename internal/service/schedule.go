package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/studyplanner/internal/domain/entities"
	"github.com/aliskhannn/studyplanner/internal/domain/schedule"
	"github.com/aliskhannn/studyplanner/internal/infra/postgres"
	"github.com/aliskhannn/studyplanner/internal/infra/postgres/repository"
)

// ScheduleOptions carries the planner defaults from configuration.
type ScheduleOptions struct {
	DefaultHorizonDays  int
	DefaultDailyMinutes int
}

// ScheduleService loads a user's state and runs the day planner over it.
type ScheduleService struct {
	settings   SettingsRepository
	materials  MaterialRepository
	flashcards FlashcardRepository
	sessions   SessionRepository
	analytics  AnalyticsRepository
	tr         Transactor
	repos      RepositoryFactory
	planner    *schedule.DayPlanner
	opts       ScheduleOptions
	logger     *zap.Logger
	now        func() time.Time
}

func NewScheduleService(
	settings SettingsRepository,
	materials MaterialRepository,
	flashcards FlashcardRepository,
	sessions SessionRepository,
	analytics AnalyticsRepository,
	tr Transactor,
	repos RepositoryFactory,
	planner *schedule.DayPlanner,
	opts ScheduleOptions,
	logger *zap.Logger,
) *ScheduleService {
	if opts.DefaultDailyMinutes <= 0 {
		opts.DefaultDailyMinutes = entities.DefaultDailyStudyMinutes
	}
	return &ScheduleService{
		settings:   settings,
		materials:  materials,
		flashcards: flashcards,
		sessions:   sessions,
		analytics:  analytics,
		tr:         tr,
		repos:      repos,
		planner:    planner,
		opts:       opts,
		logger:     logger,
		now:        time.Now,
	}
}

// GenerateSchedule plans horizonDays days starting at the user's local
// midnight. A non-positive horizon uses the configured default.
func (s *ScheduleService) GenerateSchedule(ctx context.Context, userID int64, horizonDays int) ([]entities.DailyPlan, error) {
	if horizonDays <= 0 {
		horizonDays = s.opts.DefaultHorizonDays
	}
	horizonDays = schedule.NormalizeHorizon(horizonDays)

	settings, err := s.loadSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	start := entities.LocalMidnight(now, settings.Location())
	end := start.AddDate(0, 0, horizonDays)

	snap, err := s.loadSnapshot(ctx, userID, settings.DailyStudyMinutes, now, start, end)
	if err != nil {
		return nil, err
	}

	return s.planner.GenerateSchedule(snap, start, horizonDays), nil
}

// Today returns the plan for the user's current local day.
func (s *ScheduleService) Today(ctx context.Context, userID int64) (entities.DailyPlan, error) {
	plans, err := s.GenerateSchedule(ctx, userID, 1)
	if err != nil {
		return entities.DailyPlan{}, err
	}
	return plans[0], nil
}

// SessionsToday returns the sessions already saved for the user's local day.
func (s *ScheduleService) SessionsToday(ctx context.Context, userID int64) ([]*entities.StudySession, error) {
	settings, err := s.loadSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	start := entities.LocalMidnight(s.now(), settings.Location())
	sessions, err := s.sessions.ListInRange(ctx, userID, start, start.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	return sessions, nil
}

// SaveToday plans the current day and persists the proposals.
func (s *ScheduleService) SaveToday(ctx context.Context, userID int64) ([]*entities.StudySession, error) {
	plan, err := s.Today(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.SaveDay(ctx, userID, plan)
}

// SaveDay persists a day's proposals as planned sessions in one
// transaction. Sessions are laid out back to back from the user's reminder
// hour and never spill into the next day.
func (s *ScheduleService) SaveDay(ctx context.Context, userID int64, plan entities.DailyPlan) ([]*entities.StudySession, error) {
	if len(plan.Sessions) == 0 {
		return []*entities.StudySession{}, nil
	}

	var saved []*entities.StudySession
	err := s.tr.WithinTx(ctx, func(ctx context.Context, tx postgres.DBTX) error {
		repos := s.repos(tx)

		settings, err := repos.Settings.GetByUserID(ctx, userID)
		if err != nil && !errors.Is(err, repository.ErrSettingsNotFound) {
			return fmt.Errorf("get settings: %w", err)
		}
		startHour := entities.DefaultReminderHour
		if settings != nil {
			startHour = settings.ReminderHour
		}

		slots := slotTimes(plan.Date, startHour, lo.Map(plan.Sessions, func(p entities.SessionProposal, _ int) int {
			return p.DurationMinutes
		}))

		saved = make([]*entities.StudySession, 0, len(plan.Sessions))
		for i, p := range plan.Sessions {
			saved = append(saved, entities.NewPlannedSession(uuid.NewString(), userID, slots[i], p))
		}

		if err := repos.Sessions.CreateBatch(ctx, saved); err != nil {
			return fmt.Errorf("create sessions: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("day plan saved",
		zap.Int64("user_id", userID),
		zap.Time("date", plan.Date),
		zap.Int("sessions", len(saved)),
	)

	return saved, nil
}

func (s *ScheduleService) loadSettings(ctx context.Context, userID int64) (*entities.UserSettings, error) {
	settings, err := s.settings.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrSettingsNotFound) {
			settings = entities.NewUserSettings(userID)
			settings.DailyStudyMinutes = s.opts.DefaultDailyMinutes
			return settings, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return settings, nil
}

// loadSnapshot fetches the planner inputs concurrently. Sessions and cards
// are required; materials and weak topics degrade to empty inputs so a
// failing analytics query still yields a review plan.
func (s *ScheduleService) loadSnapshot(ctx context.Context, userID int64, budget int, now, start, end time.Time) (schedule.Snapshot, error) {
	snap := schedule.Snapshot{
		BudgetMinutes: budget,
		Existing:      []entities.ExistingSession{},
		Cards:         []entities.ReviewCard{},
		WeakTopics:    []entities.WeakTopic{},
		Materials:     []entities.MaterialRef{},
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sessions, err := s.sessions.ListInRange(gctx, userID, start, end)
		if err != nil {
			return fmt.Errorf("list sessions: %w", err)
		}
		snap.Existing = lo.Map(sessions, func(ss *entities.StudySession, _ int) entities.ExistingSession {
			return entities.ExistingSession{ScheduledAt: ss.ScheduledAt, DurationMinutes: ss.DurationMinutes}
		})
		return nil
	})

	g.Go(func() error {
		cards, err := s.flashcards.ListReviewCards(gctx, userID, end)
		if err != nil {
			return fmt.Errorf("list review cards: %w", err)
		}
		snap.Cards = cards
		return nil
	})

	g.Go(func() error {
		materials, err := s.materials.ListByUser(gctx, userID, now)
		if err != nil {
			s.logger.Warn("planning without materials", zap.Int64("user_id", userID), zap.Error(err))
			return nil
		}
		snap.Materials = materials
		return nil
	})

	g.Go(func() error {
		topics, err := s.analytics.WeakTopics(gctx, userID, entities.WeakTopicThreshold, schedule.MaxWeakTopics)
		if err != nil {
			s.logger.Warn("planning without weak topics", zap.Int64("user_id", userID), zap.Error(err))
			return nil
		}
		snap.WeakTopics = topics
		return nil
	})

	if err := g.Wait(); err != nil {
		return schedule.Snapshot{}, err
	}

	return snap, nil
}

// slotTimes lays durations out back to back from startHour on day. Start
// times are clamped to the last minute of the day.
func slotTimes(day time.Time, startHour int, durations []int) []time.Time {
	last := day.AddDate(0, 0, 1).Add(-time.Minute)
	at := day.Add(time.Duration(startHour) * time.Hour)

	slots := make([]time.Time, len(durations))
	for i, d := range durations {
		if at.After(last) {
			at = last
		}
		slots[i] = at
		at = at.Add(time.Duration(d) * time.Minute)
	}
	return slots
}
