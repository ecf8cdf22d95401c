package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/studyplanner/internal/delivery/telegram"
	"github.com/aliskhannn/studyplanner/internal/storage"
)

func newServeCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the Telegram bot and the reminder job",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), e)
		},
	}
}

func serve(parent context.Context, e *env) error {
	if err := e.cfg.RequireTelegram(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, e)
	if err != nil {
		return err
	}
	defer a.Close()

	bot, err := tgbotapi.NewBotAPI(e.cfg.TelegramAPIToken)
	if err != nil {
		return err
	}
	bot.Debug = e.cfg.Env != "production"
	e.log.Info("authorized on account", zap.String("username", bot.Self.UserName))

	if _, err := bot.Request(tgbotapi.NewSetMyCommands(telegram.Commands()...)); err != nil {
		e.log.Warn("failed to set bot commands", zap.Error(err))
	}

	handler := telegram.NewHandler(
		bot,
		e.log.Named("telegram"),
		telegram.Services{
			Users:      a.users,
			Schedule:   a.schedule,
			Reviews:    a.reviews,
			Progress:   a.progress,
			Settings:   a.settings,
			Materials:  a.materials,
			Flashcards: a.flashcards,
			Reset:      a.reset,
		},
		storage.NewReminderStorage(),
	)
	a.reminders.SetNotifier(handler)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.reminders.Start(gctx)
	})
	g.Go(func() error {
		return handler.Run(gctx)
	})

	err = g.Wait()
	e.log.Info("shutdown signal received")
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
