package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/aliskhannn/studyplanner/internal/domain/entities"
)

// ReminderOptions configures the reminder job.
type ReminderOptions struct {
	Cron          string
	BatchSize     int
	MaxConcurrent int
}

// DailyPlanSource provides the plan a reminder announces.
type DailyPlanSource interface {
	Today(ctx context.Context, userID int64) (entities.DailyPlan, error)
}

// ProgressSource provides the streak and due count a reminder shows.
type ProgressSource interface {
	GetSummary(ctx context.Context, userID int64) (*entities.ProgressSummary, error)
}

// ReminderService pushes the daily plan to users at their reminder hour.
type ReminderService struct {
	reminderRepo ReminderRepository
	userRepo     UserRepository
	plans        DailyPlanSource
	progress     ProgressSource
	notifier     ReminderNotifier
	opts         ReminderOptions
	logger       *zap.Logger
	now          func() time.Time
}

func NewReminderService(
	reminderRepo ReminderRepository,
	userRepo UserRepository,
	plans DailyPlanSource,
	progress ProgressSource,
	opts ReminderOptions,
	logger *zap.Logger,
) *ReminderService {
	if opts.Cron == "" {
		opts.Cron = "0 * * * *"
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 100
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 10
	}
	return &ReminderService{
		reminderRepo: reminderRepo,
		userRepo:     userRepo,
		plans:        plans,
		progress:     progress,
		opts:         opts,
		logger:       logger,
		now:          time.Now,
	}
}

// SetNotifier sets the notifier (called after handler is created).
func (s *ReminderService) SetNotifier(notifier ReminderNotifier) {
	s.notifier = notifier
}

// Start runs the reminder job until ctx is cancelled.
func (s *ReminderService) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(s.opts.Cron, func() {
		if err := s.SendDueReminders(ctx); err != nil {
			s.logger.Error("failed to send reminders", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("add cron job: %w", err)
	}

	c.Start()
	s.logger.Info("reminder service started", zap.String("schedule", s.opts.Cron))

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("reminder service stopped")
	return nil
}

// SendDueReminders walks all reminder candidates in batches and notifies
// those whose local reminder hour is now.
func (s *ReminderService) SendDueReminders(ctx context.Context) error {
	if s.notifier == nil {
		return errors.New("notifier not initialized")
	}

	now := s.now().UTC()
	// Nobody can be due twice within an hour, so recent sends are filtered in SQL.
	since := now.Add(-time.Hour)

	var afterUserID int64
	totalSent := 0

	for {
		targets, err := s.reminderRepo.ListCandidatesBatch(ctx, since, afterUserID, s.opts.BatchSize)
		if err != nil {
			return fmt.Errorf("list reminder candidates: %w", err)
		}
		if len(targets) == 0 {
			break
		}

		totalSent += s.processBatch(ctx, targets, now)

		if len(targets) < s.opts.BatchSize {
			break
		}
		afterUserID = targets[len(targets)-1].UserID
	}

	s.logger.Info("reminders processed", zap.Int("total_sent", totalSent))
	return nil
}

// processBatch sends reminders concurrently, at most MaxConcurrent at a time.
func (s *ReminderService) processBatch(ctx context.Context, targets []*entities.ReminderTarget, now time.Time) int {
	sem := make(chan struct{}, s.opts.MaxConcurrent)
	var wg sync.WaitGroup
	var mu sync.Mutex
	sent := 0

	for _, t := range targets {
		if !t.IsDueAt(now) {
			continue
		}

		wg.Add(1)
		sem <- struct{}{}

		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			if err := s.processReminder(ctx, t, now); err != nil {
				s.logger.Error("failed to process reminder",
					zap.Int64("user_id", t.UserID),
					zap.Error(err))
				return
			}

			mu.Lock()
			sent++
			mu.Unlock()
		}()
	}

	wg.Wait()
	return sent
}

func (s *ReminderService) processReminder(ctx context.Context, t *entities.ReminderTarget, now time.Time) error {
	plan, err := s.plans.Today(ctx, t.UserID)
	if err != nil {
		return fmt.Errorf("plan today: %w", err)
	}

	summary, err := s.progress.GetSummary(ctx, t.UserID)
	if err != nil {
		return fmt.Errorf("get summary: %w", err)
	}

	payload := entities.ReminderPayload{
		Plan:     plan,
		DueCards: summary.DueFlashcards,
		Streak:   summary.Streak,
	}

	if err := s.notifier.SendReminder(t.UserID, t.ChatID, payload); err != nil {
		if errors.Is(err, ErrRecipientUnavailable) {
			if derr := s.userRepo.Deactivate(ctx, t.UserID); derr != nil {
				return fmt.Errorf("deactivate user: %w", derr)
			}
			s.logger.Info("user deactivated, chat unavailable", zap.Int64("user_id", t.UserID))
		}
		return fmt.Errorf("send notification: %w", err)
	}

	if err := s.reminderRepo.MarkSent(ctx, t.UserID, now); err != nil {
		return fmt.Errorf("mark sent: %w", err)
	}

	s.logger.Debug("reminder sent",
		zap.Int64("user_id", t.UserID),
		zap.Int("sessions", len(plan.Sessions)),
	)
	return nil
}
