package service

import (
	"context"
	"fmt"

	"github.com/aliskhannn/studyplanner/internal/domain/entities"
)

type UserService struct {
	repository UserRepository
	settings   SettingsRepository
}

func NewUserService(repository UserRepository, settings SettingsRepository) *UserService {
	return &UserService{repository: repository, settings: settings}
}

// EnsureUser registers the user on first contact together with default
// settings. It reports whether the user is new.
func (s *UserService) EnsureUser(ctx context.Context, userID, chatID int64) (bool, error) {
	user := entities.NewUser(userID, chatID)

	created, err := s.repository.Save(ctx, user)
	if err != nil {
		return false, fmt.Errorf("save user: %w", err)
	}

	if err := s.settings.Create(ctx, entities.NewUserSettings(userID)); err != nil {
		return false, fmt.Errorf("create settings: %w", err)
	}

	return created, nil
}
