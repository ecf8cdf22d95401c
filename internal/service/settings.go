package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aliskhannn/studyplanner/internal/domain/entities"
	"github.com/aliskhannn/studyplanner/internal/infra/postgres/repository"
)

type SettingsService struct {
	repository SettingsRepository
}

func NewSettingsService(repository SettingsRepository) *SettingsService {
	return &SettingsService{repository: repository}
}

func (s *SettingsService) GetOrCreate(ctx context.Context, userID int64) (*entities.UserSettings, error) {
	settings, err := s.repository.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrSettingsNotFound) {
			if err := s.repository.Create(ctx, entities.NewUserSettings(userID)); err != nil {
				return nil, err
			}
			return s.repository.GetByUserID(ctx, userID)
		}
		return nil, err
	}

	return settings, nil
}

// UpdateDailyMinutes sets the daily study budget. Zero pauses planning.
func (s *SettingsService) UpdateDailyMinutes(ctx context.Context, userID int64, minutes int) error {
	if minutes < 0 || minutes > entities.MaxDailyStudyMinutes {
		return fmt.Errorf("%w: %d", ErrInvalidBudget, minutes)
	}
	if _, err := s.GetOrCreate(ctx, userID); err != nil {
		return err
	}
	return s.repository.UpdateDailyMinutes(ctx, userID, minutes)
}

// UpdateTimezone validates tz before storing it.
func (s *SettingsService) UpdateTimezone(ctx context.Context, userID int64, tz string) error {
	if _, err := entities.ParseTimezoneLocation(tz); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTimezone, tz)
	}
	if _, err := s.GetOrCreate(ctx, userID); err != nil {
		return err
	}
	return s.repository.UpdateTimezone(ctx, userID, tz)
}

// ToggleReminder flips the daily reminder and returns the updated settings.
func (s *SettingsService) ToggleReminder(ctx context.Context, userID int64) (*entities.UserSettings, error) {
	settings, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	settings.RemindersEnabled = !settings.RemindersEnabled
	if err := s.repository.UpdateReminder(ctx, userID, settings.RemindersEnabled, settings.ReminderHour); err != nil {
		return nil, err
	}

	return settings, nil
}

// SetReminderHour enables the reminder at the given local hour.
func (s *SettingsService) SetReminderHour(ctx context.Context, userID int64, hour int) error {
	if hour < 0 || hour > 23 {
		return ErrInvalidReminderHour
	}
	if _, err := s.GetOrCreate(ctx, userID); err != nil {
		return err
	}
	return s.repository.UpdateReminder(ctx, userID, true, hour)
}
