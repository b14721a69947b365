package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"wewillshine/internal/database"
	"wewillshine/internal/models"
)

// InsightRepository stores per-student interest aggregates
type InsightRepository struct {
	db database.DBTX
}

// NewInsightRepository creates a new insight repository
func NewInsightRepository(db database.DBTX) *InsightRepository {
	return &InsightRepository{db: db}
}

// Get returns the insight row for a student, or nil if none exists
func (r *InsightRepository) Get(ctx context.Context, studentID string) (*models.StudentInsight, error) {
	query := `
		SELECT id, student_id, topics, learning_style, completion_rate, created_at, updated_at
		FROM student_insights
		WHERE student_id = ?
	`
	var in models.StudentInsight
	var topics string
	err := r.db.QueryRowContext(ctx, query, studentID).Scan(
		&in.ID,
		&in.StudentID,
		&topics,
		&in.LearningStyle,
		&in.CompletionRate,
		&in.CreatedAt,
		&in.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get insights: %w", err)
	}

	if err := json.Unmarshal([]byte(topics), &in.Topics); err != nil {
		return nil, fmt.Errorf("failed to decode insight topics: %w", err)
	}
	return &in, nil
}

// Upsert replaces the insight row for in.StudentID
func (r *InsightRepository) Upsert(ctx context.Context, in models.StudentInsight) error {
	topics := in.Topics
	if topics == nil {
		topics = map[string]float64{}
	}
	encoded, err := json.Marshal(topics)
	if err != nil {
		return fmt.Errorf("failed to encode insight topics: %w", err)
	}

	existing, err := r.Get(ctx, in.StudentID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if existing == nil {
		query := `
			INSERT INTO student_insights (id, student_id, topics, learning_style, completion_rate, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`
		_, err = r.db.ExecContext(ctx, query, uuid.New().String(), in.StudentID, string(encoded), in.LearningStyle, in.CompletionRate, now, now)
	} else {
		query := `
			UPDATE student_insights
			SET topics = ?, learning_style = ?, completion_rate = ?, updated_at = ?
			WHERE student_id = ?
		`
		_, err = r.db.ExecContext(ctx, query, string(encoded), in.LearningStyle, in.CompletionRate, now, in.StudentID)
	}
	if err != nil {
		return fmt.Errorf("failed to save insights: %w", err)
	}
	return nil
}
