package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"wewillshine/internal/database"
	"wewillshine/internal/models"
)

// AchievementRepository stores unlocked achievements
type AchievementRepository struct {
	db database.DBTX
}

// NewAchievementRepository creates a new achievement repository
func NewAchievementRepository(db database.DBTX) *AchievementRepository {
	return &AchievementRepository{db: db}
}

// Unlock records an unlocked achievement. Recording the same pair twice is a no-op.
func (r *AchievementRepository) Unlock(ctx context.Context, studentID, achievementID string) error {
	query := r.db.GetDialect().InsertIgnore(
		`INSERT INTO achievements (id, student_id, achievement_id, unlocked_at) VALUES (?, ?, ?, ?)`,
	)
	_, err := r.db.ExecContext(ctx, query, uuid.New().String(), studentID, achievementID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to unlock achievement: %w", err)
	}
	return nil
}

// ListByStudent returns a student's unlocks, oldest first
func (r *AchievementRepository) ListByStudent(ctx context.Context, studentID string) ([]models.AchievementUnlock, error) {
	query := `
		SELECT id, student_id, achievement_id, unlocked_at
		FROM achievements
		WHERE student_id = ?
		ORDER BY unlocked_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}
	defer rows.Close()

	unlocks := []models.AchievementUnlock{}
	for rows.Next() {
		var a models.AchievementUnlock
		if err := rows.Scan(&a.ID, &a.StudentID, &a.AchievementID, &a.UnlockedAt); err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}
		unlocks = append(unlocks, a)
	}
	return unlocks, rows.Err()
}

// MoveToStudent reassigns unlocks from one student row to another, skipping
// achievements the target already has
func (r *AchievementRepository) MoveToStudent(ctx context.Context, fromID, toID string) error {
	unlocks, err := r.ListByStudent(ctx, fromID)
	if err != nil {
		return err
	}
	for _, a := range unlocks {
		if err := r.Unlock(ctx, toID, a.AchievementID); err != nil {
			return err
		}
	}
	return nil
}
