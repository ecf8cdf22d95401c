package service

import (
	"context"

	"github.com/aliskhannn/studyplanner/internal/domain/entities"
	"github.com/aliskhannn/studyplanner/internal/infra/postgres"
)

type ResetService struct {
	tr    Transactor
	repos RepositoryFactory
}

func NewResetService(tr Transactor, repos RepositoryFactory) *ResetService {
	return &ResetService{tr: tr, repos: repos}
}

// ResetUser clears study history and restores default settings in one transaction.
func (s *ResetService) ResetUser(ctx context.Context, userID int64) error {
	return s.tr.WithinTx(ctx, func(ctx context.Context, tx postgres.DBTX) error {
		repos := s.repos(tx)

		if err := repos.Settings.Create(ctx, entities.NewUserSettings(userID)); err != nil {
			return err
		}

		defaults := entities.NewUserSettings(userID)
		if err := repos.Settings.UpdateDailyMinutes(ctx, userID, defaults.DailyStudyMinutes); err != nil {
			return err
		}
		if err := repos.Settings.UpdateReminder(ctx, userID, defaults.RemindersEnabled, defaults.ReminderHour); err != nil {
			return err
		}

		return repos.Reset.ResetUser(ctx, userID)
	})
}
