package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/aliskhannn/studyplanner/internal/domain/entities"
	"github.com/aliskhannn/studyplanner/internal/infra/postgres"
)

var ErrFlashcardNotFound = errors.New("flashcard not found")

// FlashcardRepository provides access to flashcards and their SRS state.
type FlashcardRepository struct {
	db postgres.DBTX
}

func NewFlashcardRepository(db postgres.DBTX) *FlashcardRepository {
	return &FlashcardRepository{db: db}
}

func (r *FlashcardRepository) Create(ctx context.Context, card *entities.Flashcard) error {
	query := `
		INSERT INTO flashcards (
			id, user_id, material_id, front, back, repetitions, interval_days,
			ease_factor, next_review_at, last_reviewed_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		card.ID,
		card.UserID,
		card.MaterialID,
		card.Front,
		card.Back,
		card.Review.Repetitions,
		card.Review.IntervalDays,
		card.Review.EaseFactor,
		card.NextReviewAt,
		card.LastReviewedAt,
		card.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create flashcard: %w", err)
	}

	return nil
}

// Get retrieves one of the user's flashcards.
func (r *FlashcardRepository) Get(ctx context.Context, userID int64, cardID string) (*entities.Flashcard, error) {
	query := `
		SELECT id, user_id, material_id, front, back, repetitions, interval_days,
		       ease_factor, next_review_at, last_reviewed_at, created_at
		FROM flashcards
		WHERE user_id = $1 AND id = $2
	`

	var card entities.Flashcard
	var next, last pgtype.Timestamptz
	err := r.db.QueryRow(ctx, query, userID, cardID).Scan(
		&card.ID,
		&card.UserID,
		&card.MaterialID,
		&card.Front,
		&card.Back,
		&card.Review.Repetitions,
		&card.Review.IntervalDays,
		&card.Review.EaseFactor,
		&next,
		&last,
		&card.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFlashcardNotFound
		}
		return nil, fmt.Errorf("get flashcard: %w", err)
	}

	card.NextReviewAt = timePtr(next)
	card.LastReviewedAt = timePtr(last)

	return &card, nil
}

// ListReviewCards returns the user's cards due before until, ordered by
// material upload order so due groups come out in a stable order.
func (r *FlashcardRepository) ListReviewCards(ctx context.Context, userID int64, until time.Time) ([]entities.ReviewCard, error) {
	query := `
		SELECT f.id, f.material_id, m.subject, m.topic, f.next_review_at
		FROM flashcards f
		INNER JOIN materials m ON m.id = f.material_id
		WHERE f.user_id = $1
			AND (f.next_review_at IS NULL OR f.next_review_at < $2)
		ORDER BY m.created_at, m.id, f.next_review_at NULLS FIRST
	`

	rows, err := r.db.Query(ctx, query, userID, until)
	if err != nil {
		return nil, fmt.Errorf("list review cards: %w", err)
	}
	defer rows.Close()

	cards := make([]entities.ReviewCard, 0)
	for rows.Next() {
		var c entities.ReviewCard
		var next pgtype.Timestamptz
		if err := rows.Scan(&c.CardID, &c.MaterialID, &c.Subject, &c.Topic, &next); err != nil {
			return nil, fmt.Errorf("scan review card: %w", err)
		}
		c.NextReviewAt = timePtr(next)
		cards = append(cards, c)
	}

	return cards, rows.Err()
}

// ListDue returns the cards due at asOf, oldest first.
func (r *FlashcardRepository) ListDue(ctx context.Context, userID int64, asOf time.Time, limit int) ([]*entities.Flashcard, error) {
	query := `
		SELECT id, user_id, material_id, front, back, repetitions, interval_days,
		       ease_factor, next_review_at, last_reviewed_at, created_at
		FROM flashcards
		WHERE user_id = $1
			AND (next_review_at IS NULL OR next_review_at <= $2)
		ORDER BY next_review_at NULLS FIRST, created_at
		LIMIT $3
	`

	rows, err := r.db.Query(ctx, query, userID, asOf, limit)
	if err != nil {
		return nil, fmt.Errorf("list due flashcards: %w", err)
	}
	defer rows.Close()

	var cards []*entities.Flashcard
	for rows.Next() {
		var card entities.Flashcard
		var next, last pgtype.Timestamptz
		if err := rows.Scan(
			&card.ID,
			&card.UserID,
			&card.MaterialID,
			&card.Front,
			&card.Back,
			&card.Review.Repetitions,
			&card.Review.IntervalDays,
			&card.Review.EaseFactor,
			&next,
			&last,
			&card.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan flashcard: %w", err)
		}
		card.NextReviewAt = timePtr(next)
		card.LastReviewedAt = timePtr(last)
		cards = append(cards, &card)
	}

	return cards, rows.Err()
}

// UpdateReview stores the card's new SRS state.
func (r *FlashcardRepository) UpdateReview(ctx context.Context, card *entities.Flashcard) error {
	query := `
		UPDATE flashcards
		SET repetitions = $1,
		    interval_days = $2,
		    ease_factor = $3,
		    next_review_at = $4,
		    last_reviewed_at = $5
		WHERE user_id = $6 AND id = $7
	`

	tag, err := r.db.Exec(ctx, query,
		card.Review.Repetitions,
		card.Review.IntervalDays,
		card.Review.EaseFactor,
		card.NextReviewAt,
		card.LastReviewedAt,
		card.UserID,
		card.ID,
	)
	if err != nil {
		return fmt.Errorf("update flashcard review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrFlashcardNotFound
	}

	return nil
}

func (r *FlashcardRepository) CountDue(ctx context.Context, userID int64, asOf time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM flashcards
		WHERE user_id = $1
			AND (next_review_at IS NULL OR next_review_at <= $2)
	`

	var count int
	if err := r.db.QueryRow(ctx, query, userID, asOf).Scan(&count); err != nil {
		return 0, fmt.Errorf("count due flashcards: %w", err)
	}

	return count, nil
}
