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

// AdminRepository handles database operations for staff accounts
type AdminRepository struct {
	db database.DBTX
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(db database.DBTX) *AdminRepository {
	return &AdminRepository{db: db}
}

// Create inserts an admin account
func (r *AdminRepository) Create(ctx context.Context, a models.Admin) (*models.Admin, error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.Permissions == nil {
		a.Permissions = []string{}
	}
	a.CreatedAt = time.Now().UTC()

	perms, err := json.Marshal(a.Permissions)
	if err != nil {
		return nil, fmt.Errorf("failed to encode permissions: %w", err)
	}

	query := `
		INSERT INTO admins (id, email, password_hash, name, role, permissions, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := r.db.ExecContext(ctx, query, a.ID, a.Email, a.PasswordHash, a.Name, a.Role, string(perms), a.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	return &a, nil
}

// GetByEmail returns the admin with the given email, or nil if none exists
func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	query := `
		SELECT id, email, password_hash, name, role, permissions, created_at
		FROM admins
		WHERE email = ?
	`
	a := &models.Admin{}
	var perms string
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&a.ID,
		&a.Email,
		&a.PasswordHash,
		&a.Name,
		&a.Role,
		&perms,
		&a.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}

	if err := json.Unmarshal([]byte(perms), &a.Permissions); err != nil {
		return nil, fmt.Errorf("failed to decode permissions: %w", err)
	}
	return a, nil
}
