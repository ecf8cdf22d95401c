package entities

import "time"

// SessionType is the kind of activity a session proposes.
type SessionType string

const (
	SessionFlashcards SessionType = "flashcards"
	SessionPractice   SessionType = "practice"
	SessionReading    SessionType = "reading"
)

// Priority ranks a proposal. Reviews and weak topics are high, regular reading is medium.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
)

// SessionStatus is the lifecycle state of a persisted study session.
type SessionStatus string

const (
	SessionPlanned   SessionStatus = "planned"
	SessionCompleted SessionStatus = "completed"
	SessionSkipped   SessionStatus = "skipped"
)

// SessionProposal is one time-boxed block of a daily plan.
type SessionProposal struct {
	Type            SessionType `json:"type"`
	MaterialID      string      `json:"material_id,omitempty"`
	SubjectTopic    string      `json:"subject_topic"`
	DurationMinutes int         `json:"duration_minutes"`
	Priority        Priority    `json:"priority"`
	Reason          string      `json:"reason"`
}

// DailyPlan is the ordered list of proposals for one calendar day.
type DailyPlan struct {
	Date     time.Time         `json:"date"`
	Sessions []SessionProposal `json:"sessions"`
}

// TotalMinutes sums the proposed durations.
func (p DailyPlan) TotalMinutes() int {
	total := 0
	for _, s := range p.Sessions {
		total += s.DurationMinutes
	}
	return total
}

// ExistingSession is an already persisted session occupying part of a day's budget.
type ExistingSession struct {
	ScheduledAt     time.Time
	DurationMinutes int
}

// StudySession is a persisted planned or completed study block.
// Completed sessions carry their own SRS state.
type StudySession struct {
	ID              string
	UserID          int64
	MaterialID      *string
	Type            SessionType
	SubjectTopic    string
	ScheduledAt     time.Time
	DurationMinutes int
	Priority        Priority
	Reason          string
	Status          SessionStatus
	Quality         *int
	Review          ReviewState
	NextReviewAt    *time.Time
	CompletedAt     *time.Time
	CreatedAt       time.Time
}

// NewPlannedSession turns a proposal into a planned session at the given time.
func NewPlannedSession(id string, userID int64, at time.Time, p SessionProposal) *StudySession {
	var materialID *string
	if p.MaterialID != "" {
		mid := p.MaterialID
		materialID = &mid
	}
	return &StudySession{
		ID:              id,
		UserID:          userID,
		MaterialID:      materialID,
		Type:            p.Type,
		SubjectTopic:    p.SubjectTopic,
		ScheduledAt:     at,
		DurationMinutes: p.DurationMinutes,
		Priority:        p.Priority,
		Reason:          p.Reason,
		Status:          SessionPlanned,
		Review:          NewReviewState(),
		CreatedAt:       time.Now(),
	}
}

// Complete marks the session done and stores the graded review.
func (s *StudySession) Complete(quality int, res ReviewResult, at time.Time) {
	s.Status = SessionCompleted
	s.Quality = &quality
	s.Review = res.ReviewState
	next := res.NextReviewAt
	s.NextReviewAt = &next
	s.CompletedAt = &at
}
