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

var ErrMaterialNotFound = errors.New("material not found")

// MaterialRepository provides access to study materials.
type MaterialRepository struct {
	db postgres.DBTX
}

func NewMaterialRepository(db postgres.DBTX) *MaterialRepository {
	return &MaterialRepository{db: db}
}

func (r *MaterialRepository) Create(ctx context.Context, m *entities.MaterialRef) error {
	query := `
		INSERT INTO materials (
			id, user_id, subject, topic, title, estimated_read_minutes, last_studied_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		m.ID,
		m.UserID,
		m.Subject,
		m.Topic,
		m.Title,
		m.EstimatedReadMinutes,
		m.LastStudiedAt,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create material: %w", err)
	}

	return nil
}

// Get returns one of the user's materials.
func (r *MaterialRepository) Get(ctx context.Context, userID int64, materialID string) (*entities.MaterialRef, error) {
	query := `
		SELECT id, user_id, subject, topic, title, estimated_read_minutes, last_studied_at, created_at
		FROM materials
		WHERE user_id = $1 AND id = $2
	`

	var m entities.MaterialRef
	var lastStudied pgtype.Timestamptz
	err := r.db.QueryRow(ctx, query, userID, materialID).Scan(
		&m.ID,
		&m.UserID,
		&m.Subject,
		&m.Topic,
		&m.Title,
		&m.EstimatedReadMinutes,
		&lastStudied,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMaterialNotFound
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	m.LastStudiedAt = timePtr(lastStudied)

	return &m, nil
}

// ListByUser returns the user's materials in upload order together with the
// number of their flashcards due at asOf.
func (r *MaterialRepository) ListByUser(ctx context.Context, userID int64, asOf time.Time) ([]entities.MaterialRef, error) {
	query := `
		SELECT m.id, m.user_id, m.subject, m.topic, m.title, m.estimated_read_minutes,
		       m.last_studied_at, m.created_at,
		       COUNT(f.id) FILTER (WHERE f.next_review_at IS NULL OR f.next_review_at <= $2)
		FROM materials m
		LEFT JOIN flashcards f ON f.material_id = m.id
		WHERE m.user_id = $1
		GROUP BY m.id
		ORDER BY m.created_at, m.id
	`

	rows, err := r.db.Query(ctx, query, userID, asOf)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()

	materials := make([]entities.MaterialRef, 0)
	for rows.Next() {
		var m entities.MaterialRef
		var lastStudied pgtype.Timestamptz
		if err := rows.Scan(
			&m.ID,
			&m.UserID,
			&m.Subject,
			&m.Topic,
			&m.Title,
			&m.EstimatedReadMinutes,
			&lastStudied,
			&m.CreatedAt,
			&m.DueFlashcards,
		); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		m.LastStudiedAt = timePtr(lastStudied)
		materials = append(materials, m)
	}

	return materials, rows.Err()
}

// MarkStudied sets the last-studied time of a material.
func (r *MaterialRepository) MarkStudied(ctx context.Context, userID int64, materialID string, at time.Time) error {
	query := `
		UPDATE materials
		SET last_studied_at = $1
		WHERE user_id = $2 AND id = $3
	`

	tag, err := r.db.Exec(ctx, query, at, userID, materialID)
	if err != nil {
		return fmt.Errorf("mark material studied: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMaterialNotFound
	}

	return nil
}
