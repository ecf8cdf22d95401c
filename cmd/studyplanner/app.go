package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aliskhannn/studyplanner/internal/domain/schedule"
	"github.com/aliskhannn/studyplanner/internal/infra/postgres"
	"github.com/aliskhannn/studyplanner/internal/infra/postgres/repository"
	"github.com/aliskhannn/studyplanner/internal/logger"
	"github.com/aliskhannn/studyplanner/internal/service"
)

// app holds the pool and the services built on top of it.
type app struct {
	pool *pgxpool.Pool

	users      *service.UserService
	settings   *service.SettingsService
	schedule   *service.ScheduleService
	reviews    *service.ReviewService
	progress   *service.ProgressService
	materials  *service.MaterialService
	flashcards *service.FlashcardService
	reset      *service.ResetService
	reminders  *service.ReminderService
}

func openPool(ctx context.Context, e *env) (*pgxpool.Pool, error) {
	dsn, err := e.cfg.DB.DSN()
	if err != nil {
		return nil, err
	}

	poolCfg := postgres.PoolConfig{
		MaxConns:        int32(e.cfg.DB.MaxConnections),
		MaxConnLifetime: e.cfg.DB.MaxConnLifetime,
	}
	if e.cfg.DB.LogSQL {
		poolCfg.Tracer = logger.PgxTracer(e.log)
	}

	pool, err := postgres.NewPool(ctx, dsn, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return pool, nil
}

func newApp(ctx context.Context, e *env) (*app, error) {
	pool, err := openPool(ctx, e)
	if err != nil {
		return nil, err
	}

	userRepo := repository.NewUserRepository(pool)
	settingsRepo := repository.NewSettingsRepository(pool)
	materialRepo := repository.NewMaterialRepository(pool)
	flashcardRepo := repository.NewFlashcardRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool)
	analyticsRepo := repository.NewAnalyticsRepository(pool)
	reminderRepo := repository.NewRemindersRepository(pool)

	tr := postgres.NewTransactor(pool)
	scheduler := schedule.NewReviewScheduler()
	planner := schedule.NewDayPlanner(scheduler)

	a := &app{pool: pool}
	a.users = service.NewUserService(userRepo, settingsRepo)
	a.settings = service.NewSettingsService(settingsRepo)
	a.schedule = service.NewScheduleService(
		settingsRepo,
		materialRepo,
		flashcardRepo,
		sessionRepo,
		analyticsRepo,
		tr,
		service.NewTxRepositories,
		planner,
		service.ScheduleOptions{
			DefaultHorizonDays:  e.cfg.Planner.DefaultHorizonDays,
			DefaultDailyMinutes: e.cfg.Planner.DefaultDailyMinutes,
		},
		e.log.Named("schedule"),
	)
	a.reviews = service.NewReviewService(tr, service.NewTxRepositories, scheduler, e.log.Named("review"))
	a.progress = service.NewProgressService(a.settings, materialRepo, flashcardRepo, sessionRepo, analyticsRepo)
	a.materials = service.NewMaterialService(materialRepo, analyticsRepo)
	a.flashcards = service.NewFlashcardService(materialRepo, flashcardRepo)
	a.reset = service.NewResetService(tr, service.NewTxRepositories)
	a.reminders = service.NewReminderService(
		reminderRepo,
		userRepo,
		a.schedule,
		a.progress,
		service.ReminderOptions{
			Cron:          e.cfg.Reminders.Cron,
			BatchSize:     e.cfg.Reminders.BatchSize,
			MaxConcurrent: e.cfg.Reminders.MaxConcurrent,
		},
		e.log.Named("reminders"),
	)

	return a, nil
}

func (a *app) Close() {
	a.pool.Close()
}
