package entities

import "time"

// Initial SRS values for a freshly created reviewable item.
const (
	InitialRepetitions  = 0
	InitialIntervalDays = 1
	InitialEaseFactor   = 2.5
	MinEaseFactor       = 1.3

	MinQuality = 0
	MaxQuality = 5
	// PassingQuality is the lowest rating counted as a successful recall.
	PassingQuality = 3
)

// ReviewState holds the SM-2 parameters of a reviewable item (a flashcard
// or a study session).
type ReviewState struct {
	Repetitions  int     // consecutive successful recalls since the last reset
	IntervalDays int     // days until the next due date, at least 1
	EaseFactor   float64 // interval multiplier, never below MinEaseFactor
}

// NewReviewState returns the state every new item starts with.
func NewReviewState() ReviewState {
	return ReviewState{
		Repetitions:  InitialRepetitions,
		IntervalDays: InitialIntervalDays,
		EaseFactor:   InitialEaseFactor,
	}
}

// ReviewResult is the outcome of grading one review.
type ReviewResult struct {
	ReviewState
	NextReviewAt time.Time
}

// ValidQuality reports whether q is a recall rating in [0, 5].
func ValidQuality(q int) bool {
	return q >= MinQuality && q <= MaxQuality
}

// Flashcard is a single question/answer pair attached to a material.
type Flashcard struct {
	ID             string
	UserID         int64
	MaterialID     string
	Front          string
	Back           string
	Review         ReviewState
	NextReviewAt   *time.Time // nil means due now
	LastReviewedAt *time.Time
	CreatedAt      time.Time
}

// NewFlashcard creates a flashcard that is due immediately.
func NewFlashcard(id string, userID int64, materialID, front, back string) *Flashcard {
	now := time.Now()
	return &Flashcard{
		ID:           id,
		UserID:       userID,
		MaterialID:   materialID,
		Front:        front,
		Back:         back,
		Review:       NewReviewState(),
		NextReviewAt: &now,
		CreatedAt:    now,
	}
}

// Apply stores a graded review on the card.
func (f *Flashcard) Apply(res ReviewResult, reviewedAt time.Time) {
	f.Review = res.ReviewState
	next := res.NextReviewAt
	f.NextReviewAt = &next
	f.LastReviewedAt = &reviewedAt
}

// ReviewCard is the slice of a flashcard the planner needs to decide
// whether the card's material owes a review on a given day.
type ReviewCard struct {
	CardID       string
	MaterialID   string
	Subject      string
	Topic        string
	NextReviewAt *time.Time
}
