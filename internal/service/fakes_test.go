package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/studyplanner/internal/domain/entities"
	"github.com/aliskhannn/studyplanner/internal/domain/schedule"
	"github.com/aliskhannn/studyplanner/internal/infra/postgres"
	"github.com/aliskhannn/studyplanner/internal/infra/postgres/repository"
)

// store is an in-memory stand-in for the postgres repositories.
type store struct {
	mu sync.Mutex

	users     map[int64]*entities.User
	settings  map[int64]*entities.UserSettings
	materials []entities.MaterialRef
	cards     map[string]*entities.Flashcard
	sessions  []*entities.StudySession
	attempts  []*entities.QuizAttempt
	weak      []entities.WeakTopic
	resets    []int64

	materialsErr error
	weakErr      error
	sessionsErr  error

	txCalls int
}

func newStore() *store {
	return &store{
		users:    map[int64]*entities.User{},
		settings: map[int64]*entities.UserSettings{},
		cards:    map[string]*entities.Flashcard{},
	}
}

func (s *store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx postgres.DBTX) error) error {
	s.mu.Lock()
	s.txCalls++
	s.mu.Unlock()
	return fn(ctx, nil)
}

func (s *store) factory(postgres.DBTX) TxRepositories {
	return TxRepositories{
		Settings:   settingsRepo{s},
		Materials:  materialRepo{s},
		Flashcards: flashcardRepo{s},
		Sessions:   sessionRepo{s},
		Reset:      resetRepo{s},
	}
}

type userRepo struct{ s *store }

func (r userRepo) Save(_ context.Context, u *entities.User) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, exists := r.s.users[u.ID]
	cp := *u
	r.s.users[u.ID] = &cp
	return !exists, nil
}

func (r userRepo) Exists(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.users[id]
	return ok, nil
}

func (r userRepo) GetByID(_ context.Context, id int64) (*entities.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r userRepo) Deactivate(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.IsActive = false
	return nil
}

type settingsRepo struct{ s *store }

func (r settingsRepo) Create(_ context.Context, st *entities.UserSettings) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.settings[st.UserID]; !ok {
		cp := *st
		r.s.settings[st.UserID] = &cp
	}
	return nil
}

func (r settingsRepo) GetByUserID(_ context.Context, id int64) (*entities.UserSettings, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st, ok := r.s.settings[id]
	if !ok {
		return nil, repository.ErrSettingsNotFound
	}
	cp := *st
	return &cp, nil
}

func (r settingsRepo) with(id int64, fn func(*entities.UserSettings)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st, ok := r.s.settings[id]
	if !ok {
		return repository.ErrSettingsNotFound
	}
	fn(st)
	return nil
}

func (r settingsRepo) UpdateDailyMinutes(_ context.Context, id int64, m int) error {
	return r.with(id, func(st *entities.UserSettings) { st.DailyStudyMinutes = m })
}

func (r settingsRepo) UpdateTimezone(_ context.Context, id int64, tz string) error {
	return r.with(id, func(st *entities.UserSettings) { st.Timezone = tz })
}

func (r settingsRepo) UpdateReminder(_ context.Context, id int64, enabled bool, hour int) error {
	return r.with(id, func(st *entities.UserSettings) {
		st.RemindersEnabled = enabled
		st.ReminderHour = hour
	})
}

type materialRepo struct{ s *store }

func (r materialRepo) Create(_ context.Context, m *entities.MaterialRef) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.materials = append(r.s.materials, *m)
	return nil
}

func (r materialRepo) Get(_ context.Context, userID int64, id string) (*entities.MaterialRef, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.materials {
		if m.UserID == userID && m.ID == id {
			cp := m
			return &cp, nil
		}
	}
	return nil, repository.ErrMaterialNotFound
}

func (r materialRepo) ListByUser(_ context.Context, userID int64, _ time.Time) ([]entities.MaterialRef, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.materialsErr != nil {
		return nil, r.s.materialsErr
	}
	out := make([]entities.MaterialRef, 0)
	for _, m := range r.s.materials {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r materialRepo) MarkStudied(_ context.Context, userID int64, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.materials {
		if r.s.materials[i].UserID == userID && r.s.materials[i].ID == id {
			t := at
			r.s.materials[i].LastStudiedAt = &t
			return nil
		}
	}
	return repository.ErrMaterialNotFound
}

type flashcardRepo struct{ s *store }

func (r flashcardRepo) Create(_ context.Context, c *entities.Flashcard) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *c
	r.s.cards[c.ID] = &cp
	return nil
}

func (r flashcardRepo) Get(_ context.Context, userID int64, id string) (*entities.Flashcard, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.cards[id]
	if !ok || c.UserID != userID {
		return nil, repository.ErrFlashcardNotFound
	}
	cp := *c
	return &cp, nil
}

func (r flashcardRepo) sorted() []*entities.Flashcard {
	out := make([]*entities.Flashcard, 0, len(r.s.cards))
	for _, c := range r.s.cards {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r flashcardRepo) ListReviewCards(_ context.Context, userID int64, until time.Time) ([]entities.ReviewCard, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]entities.ReviewCard, 0)
	for _, c := range r.sorted() {
		if c.UserID != userID || (c.NextReviewAt != nil && !c.NextReviewAt.Before(until)) {
			continue
		}
		rc := entities.ReviewCard{CardID: c.ID, MaterialID: c.MaterialID, NextReviewAt: c.NextReviewAt}
		for _, m := range r.s.materials {
			if m.ID == c.MaterialID {
				rc.Subject, rc.Topic = m.Subject, m.Topic
			}
		}
		out = append(out, rc)
	}
	return out, nil
}

func (r flashcardRepo) ListDue(_ context.Context, userID int64, asOf time.Time, limit int) ([]*entities.Flashcard, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entities.Flashcard
	for _, c := range r.sorted() {
		if c.UserID == userID && schedule.NewReviewScheduler().IsDue(c.NextReviewAt, asOf) && len(out) < limit {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r flashcardRepo) UpdateReview(_ context.Context, c *entities.Flashcard) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.cards[c.ID]; !ok {
		return repository.ErrFlashcardNotFound
	}
	cp := *c
	r.s.cards[c.ID] = &cp
	return nil
}

func (r flashcardRepo) CountDue(_ context.Context, userID int64, asOf time.Time) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, c := range r.s.cards {
		if c.UserID == userID && schedule.NewReviewScheduler().IsDue(c.NextReviewAt, asOf) {
			n++
		}
	}
	return n, nil
}

type sessionRepo struct{ s *store }

func (r sessionRepo) CreateBatch(_ context.Context, ss []*entities.StudySession) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range ss {
		cp := *x
		r.s.sessions = append(r.s.sessions, &cp)
	}
	return nil
}

func (r sessionRepo) Get(_ context.Context, userID int64, id string) (*entities.StudySession, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.sessions {
		if x.UserID == userID && x.ID == id {
			cp := *x
			return &cp, nil
		}
	}
	return nil, repository.ErrSessionNotFound
}

func (r sessionRepo) ListInRange(_ context.Context, userID int64, from, to time.Time) ([]*entities.StudySession, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.sessionsErr != nil {
		return nil, r.s.sessionsErr
	}
	out := make([]*entities.StudySession, 0)
	for _, x := range r.s.sessions {
		if x.UserID == userID && !x.ScheduledAt.Before(from) && x.ScheduledAt.Before(to) && x.Status != entities.SessionSkipped {
			cp := *x
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r sessionRepo) Complete(_ context.Context, s *entities.StudySession) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, x := range r.s.sessions {
		if x.UserID == s.UserID && x.ID == s.ID && x.Status == entities.SessionPlanned {
			cp := *s
			r.s.sessions[i] = &cp
			return nil
		}
	}
	return repository.ErrSessionNotFound
}

func (r sessionRepo) CompletedDates(_ context.Context, userID int64) ([]time.Time, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []time.Time
	for _, x := range r.s.sessions {
		if x.UserID == userID && x.Status == entities.SessionCompleted && x.CompletedAt != nil {
			out = append(out, *x.CompletedAt)
		}
	}
	return out, nil
}

type analyticsRepo struct{ s *store }

func (r analyticsRepo) RecordAttempt(_ context.Context, a *entities.QuizAttempt) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.attempts = append(r.s.attempts, a)
	return nil
}

func (r analyticsRepo) WeakTopics(_ context.Context, _ int64, _ float64, limit int) ([]entities.WeakTopic, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.weakErr != nil {
		return nil, r.s.weakErr
	}
	return r.s.weak[:min(limit, len(r.s.weak))], nil
}

type resetRepo struct{ s *store }

func (r resetRepo) ResetUser(_ context.Context, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.resets = append(r.s.resets, userID)
	return nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestScheduleService(s *store, now time.Time) *ScheduleService {
	svc := NewScheduleService(
		settingsRepo{s}, materialRepo{s}, flashcardRepo{s}, sessionRepo{s}, analyticsRepo{s},
		s, s.factory,
		schedule.NewDayPlanner(nil),
		ScheduleOptions{DefaultHorizonDays: 7, DefaultDailyMinutes: 60},
		zap.NewNop(),
	)
	svc.now = fixedClock(now)
	return svc
}
