package schedule

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/studyplanner/internal/domain/entities"
)

var planStart = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func material(id, subject, topic string, lastStudied *time.Time, est int) entities.MaterialRef {
	return entities.MaterialRef{
		ID:                   id,
		Subject:              subject,
		Topic:                topic,
		LastStudiedAt:        lastStudied,
		EstimatedReadMinutes: est,
	}
}

func TestPlanDay_SingleReviewLeavesBudget(t *testing.T) {
	p := NewDayPlanner(nil)

	got := p.PlanDay(DayRequest{
		BudgetMinutes: 60,
		DueReviews:    []entities.DueReview{{MaterialID: "m1", Subject: "Biology", Topic: "Cells", DueCount: 4}},
		ReferenceDate: planStart,
	})

	require.Len(t, got, 1)
	assert.Equal(t, entities.SessionFlashcards, got[0].Type)
	assert.Equal(t, 30, got[0].DurationMinutes)
	assert.Equal(t, entities.PriorityHigh, got[0].Priority)
	assert.Equal(t, "Spaced repetition review", got[0].Reason)
	assert.Equal(t, "Biology: Cells", got[0].SubjectTopic)
}

func TestPlanDay_BudgetBelowFloor(t *testing.T) {
	p := NewDayPlanner(nil)

	got := p.PlanDay(DayRequest{
		BudgetMinutes: 10,
		DueReviews:    []entities.DueReview{{MaterialID: "m1", DueCount: 1}},
		Materials:     []entities.MaterialRef{material("m2", "Math", "Limits", nil, 25)},
	})

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPlanDay_ExistingSessionsFillDay(t *testing.T) {
	p := NewDayPlanner(nil)

	got := p.PlanDay(DayRequest{
		BudgetMinutes: 60,
		Existing: []entities.ExistingSession{
			{ScheduledAt: planStart.Add(9 * time.Hour), DurationMinutes: 40},
			{ScheduledAt: planStart.Add(18 * time.Hour), DurationMinutes: 30},
		},
		DueReviews: []entities.DueReview{{MaterialID: "m1", DueCount: 1}},
	})

	assert.Empty(t, got)
}

func TestPlanDay_AllTiers(t *testing.T) {
	p := NewDayPlanner(nil)
	recent := planStart.AddDate(0, 0, -1)
	old := planStart.AddDate(0, 0, -10)

	got := p.PlanDay(DayRequest{
		BudgetMinutes: 180,
		DueReviews: []entities.DueReview{
			{MaterialID: "bio", Subject: "Biology", Topic: "Cells", DueCount: 3},
		},
		WeakTopics: []entities.WeakTopic{
			{Subject: "Chemistry", Topic: "Bonds", AvgAccuracy: 42},
			{Subject: "History", Topic: "Rome", AvgAccuracy: 55}, // no material
			{Subject: "Math", Topic: "Limits", AvgAccuracy: 61},
		},
		Materials: []entities.MaterialRef{
			material("bio", "Biology", "Cells", nil, 20),
			material("chem", "Chemistry", "Bonds", &recent, 30),
			material("math", "Math", "Limits", &old, 30),
			material("phys", "Physics", "Optics", &recent, 30),
			material("lit", "Literature", "Poetry", &old, 0),
		},
		ReferenceDate: planStart,
	})

	require.Len(t, got, 4)

	assert.Equal(t, entities.SessionFlashcards, got[0].Type)
	assert.Equal(t, 30, got[0].DurationMinutes)

	assert.Equal(t, entities.SessionPractice, got[1].Type)
	assert.Equal(t, "chem", got[1].MaterialID)
	assert.Equal(t, 45, got[1].DurationMinutes)
	assert.Contains(t, got[1].Reason, "42%")

	assert.Equal(t, entities.SessionPractice, got[2].Type)
	assert.Equal(t, "math", got[2].MaterialID)
	assert.Equal(t, 45, got[2].DurationMinutes)

	// bio and math are already referenced, chem and phys are fresh.
	assert.Equal(t, entities.SessionReading, got[3].Type)
	assert.Equal(t, "lit", got[3].MaterialID)
	assert.Equal(t, 30, got[3].DurationMinutes)
	assert.Equal(t, entities.PriorityMedium, got[3].Priority)
	assert.Equal(t, "Regular study session", got[3].Reason)
}

func TestPlanDay_LastReviewTakesLeftover(t *testing.T) {
	p := NewDayPlanner(nil)

	got := p.PlanDay(DayRequest{
		BudgetMinutes: 77,
		DueReviews: []entities.DueReview{
			{MaterialID: "a", DueCount: 1},
			{MaterialID: "b", DueCount: 1},
			{MaterialID: "c", DueCount: 1},
		},
	})

	assert.Equal(t, []int{30, 30, 17}, lo.Map(got, func(s entities.SessionProposal, _ int) int {
		return s.DurationMinutes
	}))
}

func TestPlanDay_NoBackfillBelowTierFloor(t *testing.T) {
	p := NewDayPlanner(nil)

	// Two reviews leave 17 minutes, under the practice and reading floor.
	got := p.PlanDay(DayRequest{
		BudgetMinutes: 77,
		DueReviews: []entities.DueReview{
			{MaterialID: "a", DueCount: 1},
			{MaterialID: "b", DueCount: 1},
		},
		WeakTopics: []entities.WeakTopic{{Subject: "S", Topic: "T", AvgAccuracy: 10}},
		Materials:  []entities.MaterialRef{material("d", "S", "T", nil, 15)},
	})

	require.Len(t, got, 2)
	assert.Equal(t, []int{30, 30}, lo.Map(got, func(s entities.SessionProposal, _ int) int {
		return s.DurationMinutes
	}))
}

func TestPlanDay_OnlyTopThreeWeakTopics(t *testing.T) {
	p := NewDayPlanner(nil)

	got := p.PlanDay(DayRequest{
		BudgetMinutes: 500,
		WeakTopics: []entities.WeakTopic{
			{Subject: "A", Topic: "1"}, {Subject: "B", Topic: "2"},
			{Subject: "C", Topic: "3"}, {Subject: "D", Topic: "4"},
		},
		Materials: []entities.MaterialRef{
			material("a", "A", "1", ptr(planStart), 10),
			material("b", "B", "2", ptr(planStart), 10),
			material("c", "C", "3", ptr(planStart), 10),
			material("d", "D", "4", ptr(planStart), 10),
		},
		ReferenceDate: planStart,
	})

	require.Len(t, got, 3)
	for _, s := range got {
		assert.Equal(t, entities.SessionPractice, s.Type)
		assert.NotEqual(t, "d", s.MaterialID)
	}
}

func TestPlanDay_StalenessBoundary(t *testing.T) {
	p := NewDayPlanner(nil)
	exactlyThree := planStart.AddDate(0, 0, -3)
	moreThanThree := exactlyThree.Add(-time.Minute)

	got := p.PlanDay(DayRequest{
		BudgetMinutes: 120,
		Materials: []entities.MaterialRef{
			material("edge", "S", "Edge", &exactlyThree, 20),
			material("stale", "S", "Stale", &moreThanThree, 20),
		},
		ReferenceDate: planStart,
	})

	require.Len(t, got, 1)
	assert.Equal(t, "stale", got[0].MaterialID)
}

func TestPlanDay_Properties(t *testing.T) {
	p := NewDayPlanner(nil)
	old := planStart.AddDate(0, 0, -30)

	reviews := []entities.DueReview{{MaterialID: "r1"}, {MaterialID: "r2"}, {MaterialID: "r3"}}
	weak := []entities.WeakTopic{{Subject: "W", Topic: "1", AvgAccuracy: 30}, {Subject: "W", Topic: "2", AvgAccuracy: 50}}
	materials := []entities.MaterialRef{
		material("w1", "W", "1", &old, 40),
		material("w2", "W", "2", &old, 25),
		material("x", "X", "X", nil, 50),
		material("y", "Y", "Y", &old, 0),
	}

	for budget := -10; budget <= 300; budget += 7 {
		for _, existing := range []int{0, 15, 45, 90} {
			got := p.PlanDay(DayRequest{
				BudgetMinutes: budget,
				Existing:      []entities.ExistingSession{{DurationMinutes: existing}},
				DueReviews:    reviews,
				WeakTopics:    weak,
				Materials:     materials,
				ReferenceDate: planStart,
			})

			total := lo.SumBy(got, func(s entities.SessionProposal) int { return s.DurationMinutes })
			assert.LessOrEqual(t, total, max(budget-existing, 0), "budget %d existing %d", budget, existing)

			seenMedium := false
			for _, s := range got {
				if s.Priority == entities.PriorityMedium {
					seenMedium = true
					continue
				}
				assert.False(t, seenMedium, "high priority after medium, budget %d", budget)
			}
		}
	}
}

func TestGenerateSchedule(t *testing.T) {
	p := NewDayPlanner(nil)
	old := planStart.AddDate(0, 0, -10)

	snap := Snapshot{
		BudgetMinutes: 60,
		Existing: []entities.ExistingSession{
			{ScheduledAt: planStart.AddDate(0, 0, 1).Add(10 * time.Hour), DurationMinutes: 60},
		},
		Cards: []entities.ReviewCard{
			{CardID: "c1", MaterialID: "bio", Subject: "Biology", Topic: "Cells", NextReviewAt: nil},
			{CardID: "c2", MaterialID: "bio", Subject: "Biology", Topic: "Cells", NextReviewAt: ptr(planStart.Add(5 * time.Hour))},
			{CardID: "c3", MaterialID: "chem", Subject: "Chemistry", Topic: "Bonds", NextReviewAt: ptr(planStart.AddDate(0, 0, 2).Add(23 * time.Hour))},
		},
		Materials: []entities.MaterialRef{
			material("hist", "History", "Rome", &old, 20),
		},
	}

	plans := p.GenerateSchedule(snap, planStart, 3)
	require.Len(t, plans, 3)

	for i, plan := range plans {
		assert.Equal(t, planStart.AddDate(0, 0, i), plan.Date)
		assert.NotNil(t, plan.Sessions)
	}

	// Day 1: bio is due, then reading fills the rest.
	require.Len(t, plans[0].Sessions, 2)
	assert.Equal(t, "bio", plans[0].Sessions[0].MaterialID)
	assert.Equal(t, "hist", plans[0].Sessions[1].MaterialID)
	assert.Equal(t, 20, plans[0].Sessions[1].DurationMinutes)

	// Day 2 is already booked.
	assert.Empty(t, plans[1].Sessions)

	// Day 3: chem becomes due late in the day and takes the second review slot.
	require.Len(t, plans[2].Sessions, 2)
	assert.Equal(t, "bio", plans[2].Sessions[0].MaterialID)
	assert.Equal(t, "chem", plans[2].Sessions[1].MaterialID)
	assert.Equal(t, 60, plans[2].TotalMinutes())
}

func TestGenerateSchedule_HorizonBounds(t *testing.T) {
	p := NewDayPlanner(nil)

	assert.Len(t, p.GenerateSchedule(Snapshot{}, planStart, 0), DefaultHorizonDays)
	assert.Len(t, p.GenerateSchedule(Snapshot{}, planStart, 365), MaxHorizonDays)

	for _, plan := range p.GenerateSchedule(Snapshot{}, planStart, 2) {
		assert.NotNil(t, plan.Sessions)
		assert.Empty(t, plan.Sessions)
	}
}

func TestDueReviewsOn_GroupsByMaterial(t *testing.T) {
	p := NewDayPlanner(nil)
	later := planStart.AddDate(0, 0, 5)

	got := p.DueReviewsOn([]entities.ReviewCard{
		{MaterialID: "b"},
		{MaterialID: "a"},
		{MaterialID: "b"},
		{MaterialID: "c", NextReviewAt: &later},
	}, planStart)

	assert.Equal(t, []entities.DueReview{
		{MaterialID: "b", DueCount: 2},
		{MaterialID: "a", DueCount: 1},
	}, got)
}
