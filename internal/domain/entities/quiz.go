package entities

import "time"

// WeakTopicThreshold is the average score below which a topic counts as weak.
const WeakTopicThreshold = 70.0

// QuizAttempt records the score of one finished quiz on a topic.
type QuizAttempt struct {
	ID               string    // unique attempt ID
	UserID           int64     // user who took the quiz
	MaterialID       *string   // material the quiz was generated from, if any
	Subject          string    // subject of the quiz
	Topic            string    // topic of the quiz
	Score            float64   // percentage of correct answers, 0-100
	TimeSpentMinutes int       // time spent answering
	CompletedAt      time.Time // when the quiz was finished
}

// NewQuizAttempt creates an attempt for a quiz on the given material.
func NewQuizAttempt(id string, userID int64, m MaterialRef, score float64, minutes int) *QuizAttempt {
	materialID := m.ID
	return &QuizAttempt{
		ID:               id,
		UserID:           userID,
		MaterialID:       &materialID,
		Subject:          m.Subject,
		Topic:            m.Topic,
		Score:            score,
		TimeSpentMinutes: minutes,
		CompletedAt:      time.Now(),
	}
}

// ValidScore reports whether s is a percentage.
func ValidScore(s float64) bool {
	return s >= 0 && s <= 100
}
