package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"wewillshine/internal/database"
	"wewillshine/internal/models"
)

// LoginSessionRepository tracks which devices students log in from
type LoginSessionRepository struct {
	db database.DBTX
}

// NewLoginSessionRepository creates a new login session repository
func NewLoginSessionRepository(db database.DBTX) *LoginSessionRepository {
	return &LoginSessionRepository{db: db}
}

// Open records an active login
func (r *LoginSessionRepository) Open(ctx context.Context, s models.LoginSession) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.LoginAt.IsZero() {
		s.LoginAt = time.Now().UTC()
	}
	query := `
		INSERT INTO student_sessions (id, student_id, session_token, is_active, device_type, browser, os, ip_address, user_agent, login_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.StudentID, s.SessionToken, true,
		s.DeviceType, s.Browser, s.OS, s.IPAddress, s.UserAgent, s.LoginAt,
	)
	if err != nil {
		return fmt.Errorf("failed to open login session: %w", err)
	}
	return nil
}

// Close marks the sessions carrying token as ended
func (r *LoginSessionRepository) Close(ctx context.Context, token string) error {
	query := `UPDATE student_sessions SET is_active = ?, logout_at = ? WHERE session_token = ? AND is_active = ?`
	if _, err := r.db.ExecContext(ctx, query, false, time.Now().UTC(), token, true); err != nil {
		return fmt.Errorf("failed to close login session: %w", err)
	}
	return nil
}

// ListByStudent returns a student's logins, newest first
func (r *LoginSessionRepository) ListByStudent(ctx context.Context, studentID string) ([]models.LoginSession, error) {
	query := `
		SELECT id, student_id, session_token, is_active, device_type, browser, os, ip_address, user_agent, login_at, logout_at
		FROM student_sessions
		WHERE student_id = ?
		ORDER BY login_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list login sessions: %w", err)
	}
	defer rows.Close()

	sessions := []models.LoginSession{}
	for rows.Next() {
		var s models.LoginSession
		if err := rows.Scan(
			&s.ID, &s.StudentID, &s.SessionToken, &s.IsActive,
			&s.DeviceType, &s.Browser, &s.OS, &s.IPAddress, &s.UserAgent,
			&s.LoginAt, &s.LogoutAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan login session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
