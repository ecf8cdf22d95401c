package storage

import (
	"sync"
	"time"
)

// Telegram refuses to delete bot messages older than this.
const deleteWindow = 48 * time.Hour

// ReminderMessage identifies a sent reminder.
type ReminderMessage struct {
	ChatID    int64
	MessageID int
	SentAt    time.Time
}

// Deletable reports whether the message can still be deleted at now.
func (m ReminderMessage) Deletable(now time.Time) bool {
	return now.Sub(m.SentAt) < deleteWindow
}

// ReminderStorage keeps the latest reminder message per user in memory.
type ReminderStorage struct {
	mu       sync.Mutex
	messages map[int64]ReminderMessage
	now      func() time.Time
}

func NewReminderStorage() *ReminderStorage {
	return &ReminderStorage{
		messages: make(map[int64]ReminderMessage),
		now:      time.Now,
	}
}

// UpsertAndGetPrev records a new reminder and returns the one it replaces.
func (s *ReminderStorage) UpsertAndGetPrev(userID int64, chatID int64, messageID int) (prev ReminderMessage, hadPrev bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, hadPrev = s.messages[userID]
	s.messages[userID] = ReminderMessage{
		ChatID:    chatID,
		MessageID: messageID,
		SentAt:    s.now(),
	}

	return prev, hadPrev
}
