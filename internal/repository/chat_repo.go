package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"wewillshine/internal/database"
	"wewillshine/internal/models"
)

// ChatRepository stores chat transcripts
type ChatRepository struct {
	db database.DBTX
}

// NewChatRepository creates a new chat repository
func NewChatRepository(db database.DBTX) *ChatRepository {
	return &ChatRepository{db: db}
}

// Save appends a message to a student's transcript
func (r *ChatRepository) Save(ctx context.Context, m models.ChatMessage) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	query := `INSERT INTO chat_messages (id, student_id, type, message, created_at) VALUES (?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, m.ID, m.StudentID, m.Type, m.Message, m.CreatedAt); err != nil {
		return fmt.Errorf("failed to save chat message: %w", err)
	}
	return nil
}

// History returns the most recent limit messages in chronological order.
// A non-positive limit returns the whole transcript.
func (r *ChatRepository) History(ctx context.Context, studentID string, limit int) ([]models.ChatMessage, error) {
	query := `
		SELECT id, student_id, type, message, created_at
		FROM chat_messages
		WHERE student_id = ?
		ORDER BY created_at DESC
	`
	args := []interface{}{studentID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get chat history: %w", err)
	}
	defer rows.Close()

	messages := []models.ChatMessage{}
	for rows.Next() {
		var m models.ChatMessage
		if err := rows.Scan(&m.ID, &m.StudentID, &m.Type, &m.Message, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// MoveToStudent reassigns a transcript to another student row
func (r *ChatRepository) MoveToStudent(ctx context.Context, fromID, toID string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE chat_messages SET student_id = ? WHERE student_id = ?`, toID, fromID); err != nil {
		return fmt.Errorf("failed to move chat messages: %w", err)
	}
	return nil
}
