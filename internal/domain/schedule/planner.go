package schedule

import (
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/aliskhannn/studyplanner/internal/domain/entities"
)

// Allocation limits for the three priority tiers, in minutes.
const (
	ReviewFloorMinutes   = 15
	ReviewMaxMinutes     = 30
	PracticeFloorMinutes = 20
	PracticeMaxMinutes   = 45
	ReadingFloorMinutes  = 20

	MaxWeakTopics  = 3
	StaleAfterDays = 3

	DefaultHorizonDays = 7
	MaxHorizonDays     = 30
)

const (
	reasonReview  = "Spaced repetition review"
	reasonReading = "Regular study session"
)

// DayRequest is everything PlanDay needs for one day.
type DayRequest struct {
	BudgetMinutes int
	Existing      []entities.ExistingSession
	DueReviews    []entities.DueReview
	WeakTopics    []entities.WeakTopic // worst accuracy first
	Materials     []entities.MaterialRef
	// ReferenceDate is the moment staleness is measured from.
	ReferenceDate time.Time
}

// Snapshot is the already-loaded state of one user for a planning horizon.
type Snapshot struct {
	BudgetMinutes int
	Existing      []entities.ExistingSession
	Cards         []entities.ReviewCard
	WeakTopics    []entities.WeakTopic
	Materials     []entities.MaterialRef
}

// DayPlanner allocates a daily time budget across reviews, weak topics and
// regular reading. It holds no per-user state.
type DayPlanner struct {
	reviews *ReviewScheduler
}

// NewDayPlanner creates a DayPlanner that uses reviews for due checks.
func NewDayPlanner(reviews *ReviewScheduler) *DayPlanner {
	if reviews == nil {
		reviews = NewReviewScheduler()
	}
	return &DayPlanner{reviews: reviews}
}

// PlanDay fills one day greedily, tier by tier:
//  1. due reviews, 15 minute floor, up to 30 minutes each;
//  2. the three weakest topics that have a matching material, 20 minute floor, up to 45 minutes;
//  3. materials untouched for more than three days, 20 minute floor, their read estimate.
//
// A tier stops once the remaining budget is below its floor; later tiers
// never backfill. The result is never nil.
func (p *DayPlanner) PlanDay(req DayRequest) []entities.SessionProposal {
	proposals := make([]entities.SessionProposal, 0)

	used := lo.SumBy(req.Existing, func(s entities.ExistingSession) int {
		return max(s.DurationMinutes, 0)
	})
	remaining := max(req.BudgetMinutes, 0) - used
	if remaining <= 0 {
		return proposals
	}

	referenced := make(map[string]struct{})

	for _, r := range req.DueReviews {
		if remaining < ReviewFloorMinutes {
			break
		}
		d := min(ReviewMaxMinutes, remaining)
		proposals = append(proposals, entities.SessionProposal{
			Type:            entities.SessionFlashcards,
			MaterialID:      r.MaterialID,
			SubjectTopic:    entities.SubjectTopic(r.Subject, r.Topic),
			DurationMinutes: d,
			Priority:        entities.PriorityHigh,
			Reason:          reasonReview,
		})
		referenced[r.MaterialID] = struct{}{}
		remaining -= d
	}

	for _, wt := range lo.Slice(req.WeakTopics, 0, MaxWeakTopics) {
		if remaining < PracticeFloorMinutes {
			break
		}
		m, ok := lo.Find(req.Materials, func(m entities.MaterialRef) bool {
			return m.Subject == wt.Subject && m.Topic == wt.Topic
		})
		if !ok {
			continue
		}
		d := min(PracticeMaxMinutes, remaining)
		proposals = append(proposals, entities.SessionProposal{
			Type:            entities.SessionPractice,
			MaterialID:      m.ID,
			SubjectTopic:    entities.SubjectTopic(wt.Subject, wt.Topic),
			DurationMinutes: d,
			Priority:        entities.PriorityHigh,
			Reason:          fmt.Sprintf("Weak topic practice (%.0f%% accuracy)", wt.AvgAccuracy),
		})
		referenced[m.ID] = struct{}{}
		remaining -= d
	}

	staleBefore := req.ReferenceDate.AddDate(0, 0, -StaleAfterDays)
	for _, m := range req.Materials {
		if remaining < ReadingFloorMinutes {
			break
		}
		if _, ok := referenced[m.ID]; ok {
			continue
		}
		if m.LastStudiedAt != nil && !m.LastStudiedAt.Before(staleBefore) {
			continue
		}
		est := m.EstimatedReadMinutes
		if est <= 0 {
			est = entities.DefaultReadMinutes
		}
		d := min(est, remaining)
		proposals = append(proposals, entities.SessionProposal{
			Type:            entities.SessionReading,
			MaterialID:      m.ID,
			SubjectTopic:    m.SubjectTopic(),
			DurationMinutes: d,
			Priority:        entities.PriorityMedium,
			Reason:          reasonReading,
		})
		referenced[m.ID] = struct{}{}
		remaining -= d
	}

	return proposals
}

// GenerateSchedule plans horizonDays consecutive days starting at start,
// which should be the user's local midnight. Materials and weak topics come
// from the single snapshot, so staleness is measured from start on every day.
// A non-positive horizon means DefaultHorizonDays; it is capped at MaxHorizonDays.
func (p *DayPlanner) GenerateSchedule(snap Snapshot, start time.Time, horizonDays int) []entities.DailyPlan {
	horizonDays = NormalizeHorizon(horizonDays)

	plans := make([]entities.DailyPlan, 0, horizonDays)
	for i := range horizonDays {
		day := start.AddDate(0, 0, i)
		next := day.AddDate(0, 0, 1)

		existing := lo.Filter(snap.Existing, func(s entities.ExistingSession, _ int) bool {
			return !s.ScheduledAt.Before(day) && s.ScheduledAt.Before(next)
		})

		plans = append(plans, entities.DailyPlan{
			Date: day,
			Sessions: p.PlanDay(DayRequest{
				BudgetMinutes: snap.BudgetMinutes,
				Existing:      existing,
				DueReviews:    p.DueReviewsOn(snap.Cards, next.Add(-time.Nanosecond)),
				WeakTopics:    snap.WeakTopics,
				Materials:     snap.Materials,
				ReferenceDate: start,
			}),
		})
	}

	return plans
}

// DueReviewsOn groups the cards due at t by material, keeping the order in
// which each material first appears in cards.
func (p *DayPlanner) DueReviewsOn(cards []entities.ReviewCard, t time.Time) []entities.DueReview {
	var groups []entities.DueReview
	index := make(map[string]int)

	for _, c := range cards {
		if !p.reviews.IsDue(c.NextReviewAt, t) {
			continue
		}
		if i, ok := index[c.MaterialID]; ok {
			groups[i].DueCount++
			continue
		}
		index[c.MaterialID] = len(groups)
		groups = append(groups, entities.DueReview{
			MaterialID: c.MaterialID,
			Subject:    c.Subject,
			Topic:      c.Topic,
			DueCount:   1,
		})
	}

	return groups
}

// NormalizeHorizon applies the default and the upper bound to a horizon in days.
func NormalizeHorizon(days int) int {
	if days <= 0 {
		return DefaultHorizonDays
	}
	return min(days, MaxHorizonDays)
}
