package repository

import (
	"context"
	"fmt"

	"github.com/aliskhannn/studyplanner/internal/domain/entities"
	"github.com/aliskhannn/studyplanner/internal/infra/postgres"
)

// AnalyticsRepository aggregates quiz performance.
type AnalyticsRepository struct {
	db postgres.DBTX
}

func NewAnalyticsRepository(db postgres.DBTX) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// RecordAttempt stores a finished quiz.
func (r *AnalyticsRepository) RecordAttempt(ctx context.Context, a *entities.QuizAttempt) error {
	query := `
		INSERT INTO quiz_attempts (
			id, user_id, material_id, subject, topic, score, time_spent_minutes, completed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		a.ID,
		a.UserID,
		a.MaterialID,
		a.Subject,
		a.Topic,
		a.Score,
		a.TimeSpentMinutes,
		a.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("record quiz attempt: %w", err)
	}

	return nil
}

// WeakTopics returns subject/topic pairs whose average score is below
// threshold, weakest first.
func (r *AnalyticsRepository) WeakTopics(ctx context.Context, userID int64, threshold float64, limit int) ([]entities.WeakTopic, error) {
	query := `
		SELECT subject, topic, AVG(score) AS avg_accuracy, COALESCE(SUM(time_spent_minutes), 0)
		FROM quiz_attempts
		WHERE user_id = $1
		GROUP BY subject, topic
		HAVING AVG(score) < $2
		ORDER BY avg_accuracy, subject, topic
		LIMIT $3
	`

	rows, err := r.db.Query(ctx, query, userID, threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("weak topics: %w", err)
	}
	defer rows.Close()

	topics := make([]entities.WeakTopic, 0)
	for rows.Next() {
		var t entities.WeakTopic
		if err := rows.Scan(&t.Subject, &t.Topic, &t.AvgAccuracy, &t.StudyTimeMinutes); err != nil {
			return nil, fmt.Errorf("scan weak topic: %w", err)
		}
		topics = append(topics, t)
	}

	return topics, rows.Err()
}
