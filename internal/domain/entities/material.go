package entities

import "time"

// DefaultReadMinutes is used when a material has no reading estimate.
const DefaultReadMinutes = 30

// MaterialRef is an uploaded study material as the planner sees it.
type MaterialRef struct {
	ID                   string     `json:"id"`
	UserID               int64      `json:"-"`
	Subject              string     `json:"subject"`
	Topic                string     `json:"topic"`
	Title                string     `json:"title"`
	LastStudiedAt        *time.Time `json:"last_studied_at,omitempty"`
	EstimatedReadMinutes int        `json:"estimated_read_minutes"`
	DueFlashcards        int        `json:"due_flashcards"`
	CreatedAt            time.Time  `json:"-"`
}

// SubjectTopic returns the "subject: topic" label used in proposals.
func (m MaterialRef) SubjectTopic() string {
	return SubjectTopic(m.Subject, m.Topic)
}

// WeakTopic is an aggregate of quiz performance for one subject and topic.
type WeakTopic struct {
	Subject          string  `json:"subject"`
	Topic            string  `json:"topic"`
	AvgAccuracy      float64 `json:"avg_accuracy"` // 0-100
	StudyTimeMinutes int     `json:"study_time_minutes"`
}

// DueReview groups the due flashcards of one material.
type DueReview struct {
	MaterialID string `json:"material_id"`
	Subject    string `json:"subject"`
	Topic      string `json:"topic"`
	DueCount   int    `json:"due_count"`
}

// SubjectTopic joins a subject and topic into a display label.
func SubjectTopic(subject, topic string) string {
	switch {
	case topic == "":
		return subject
	case subject == "":
		return topic
	}
	return subject + ": " + topic
}
