package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReminderStorage_UpsertAndGetPrev(t *testing.T) {
	s := NewReminderStorage()
	base := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	_, had := s.UpsertAndGetPrev(1, 10, 100)
	assert.False(t, had)

	prev, had := s.UpsertAndGetPrev(1, 10, 101)
	assert.True(t, had)
	assert.Equal(t, ReminderMessage{ChatID: 10, MessageID: 100, SentAt: base}, prev)

	_, had = s.UpsertAndGetPrev(2, 20, 200)
	assert.False(t, had)
}

func TestReminderMessage_Deletable(t *testing.T) {
	sent := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	m := ReminderMessage{SentAt: sent}

	assert.True(t, m.Deletable(sent.Add(47*time.Hour)))
	assert.False(t, m.Deletable(sent.Add(48*time.Hour)))
}
