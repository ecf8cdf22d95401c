package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/studyplanner/internal/domain/entities"
)

func newTestProgressService(s *store, now time.Time) *ProgressService {
	svc := NewProgressService(NewSettingsService(settingsRepo{s}), materialRepo{s}, flashcardRepo{s}, sessionRepo{s}, analyticsRepo{s})
	svc.now = fixedClock(now)
	return svc
}

func completedAt(userID int64, at time.Time, minutes int) *entities.StudySession {
	return &entities.StudySession{
		ID:              at.String(),
		UserID:          userID,
		ScheduledAt:     at,
		DurationMinutes: minutes,
		Status:          entities.SessionCompleted,
		CompletedAt:     ptr(at),
	}
}

func TestGetStreak(t *testing.T) {
	s := newStore()
	seedStudent(s)
	s.sessions = []*entities.StudySession{
		completedAt(1, refNow.AddDate(0, 0, -6), 30),
		completedAt(1, refNow.AddDate(0, 0, -5), 30),
		completedAt(1, refNow.AddDate(0, 0, -4), 30),
		completedAt(1, refNow.AddDate(0, 0, -1), 30),
		completedAt(1, refNow.AddDate(0, 0, -1).Add(time.Hour), 30),
		completedAt(1, refNow.Add(-time.Hour), 30),
	}

	streak, err := newTestProgressService(s, refNow).GetStreak(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, entities.Streak{Current: 2, Longest: 3}, streak)
}

func TestGetStreak_UsesUserTimezone(t *testing.T) {
	s := newStore()
	seedStudent(s)
	// 23:30 UTC on consecutive days falls on the following date in Tokyo.
	s.sessions = []*entities.StudySession{
		completedAt(1, time.Date(2024, 3, 8, 23, 30, 0, 0, time.UTC), 20),
		completedAt(1, time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC), 20),
	}

	now := time.Date(2024, 3, 10, 1, 0, 0, 0, time.UTC)

	utcStreak, err := newTestProgressService(s, now).GetStreak(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, entities.Streak{Current: 2, Longest: 2}, utcStreak)

	s.settings[1].Timezone = "Asia/Tokyo"
	tokyoStreak, err := newTestProgressService(s, now).GetStreak(context.Background(), 1)
	require.NoError(t, err)
	// Both land on March 9 in Tokyo, and it is already March 10 there.
	assert.Equal(t, entities.Streak{Current: 1, Longest: 1}, tokyoStreak)
}

func TestGetSummary(t *testing.T) {
	s := newStore()
	seedStudent(s)
	s.sessions = []*entities.StudySession{
		completedAt(1, refNow.Add(-time.Hour), 25),
		{ID: "p1", UserID: 1, ScheduledAt: refNow.Add(3 * time.Hour), DurationMinutes: 20, Status: entities.SessionPlanned},
	}

	summary, err := newTestProgressService(s, refNow).GetSummary(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.DueFlashcards)
	assert.Equal(t, 2, summary.Materials)
	assert.Equal(t, 20, summary.PlannedMinutes)
	assert.Equal(t, 25, summary.CompletedMinutes)
	assert.Equal(t, 1, summary.CompletedToday)
	assert.Equal(t, entities.Streak{Current: 1, Longest: 1}, summary.Streak)
	assert.Len(t, summary.WeakTopics, 1)
	assert.Equal(t, 15, summary.Remaining(60))
}
