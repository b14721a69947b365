package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"wewillshine/internal/database"
	"wewillshine/internal/models"
)

const studentColumns = `id, student_code, student_name, points, level, kelas, rombel, angkatan, created_at, updated_at`

// StudentRepository handles database operations for remote student rows
type StudentRepository struct {
	db database.DBTX
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db database.DBTX) *StudentRepository {
	return &StudentRepository{db: db}
}

func scanStudent(row interface{ Scan(...interface{}) error }) (*models.Student, error) {
	s := &models.Student{}
	err := row.Scan(
		&s.ID,
		&s.StudentCode,
		&s.StudentName,
		&s.Points,
		&s.Level,
		&s.Kelas,
		&s.Rombel,
		&s.Angkatan,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	return s, err
}

// Create inserts a student row. An empty ID is filled with a new UUID.
func (r *StudentRepository) Create(ctx context.Context, s models.Student) (*models.Student, error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now

	query := `
		INSERT INTO students (id, student_code, student_name, points, level, kelas, rombel, angkatan, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.StudentCode, s.StudentName, s.Points, s.Level,
		s.Kelas, s.Rombel, s.Angkatan, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create student: %w", err)
	}
	return &s, nil
}

// GetByCode returns the earliest row for a student code, or nil if none exists
func (r *StudentRepository) GetByCode(ctx context.Context, code string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE student_code = ? ORDER BY created_at ASC LIMIT 1`
	s, err := scanStudent(r.db.QueryRowContext(ctx, query, code))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	return s, nil
}

// GetByID returns a student row, or nil if none exists
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = ?`
	s, err := scanStudent(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	return s, nil
}

// Update applies the non-nil fields of u
func (r *StudentRepository) Update(ctx context.Context, id string, u models.StudentUpdate) error {
	if u.IsEmpty() {
		return nil
	}

	var sets []string
	var args []interface{}
	if u.Points != nil {
		sets = append(sets, "points = ?")
		args = append(args, *u.Points)
	}
	if u.Level != nil {
		sets = append(sets, "level = ?")
		args = append(args, *u.Level)
	}
	if u.Kelas != nil {
		sets = append(sets, "kelas = ?")
		args = append(args, *u.Kelas)
	}
	if u.Rombel != nil {
		sets = append(sets, "rombel = ?")
		args = append(args, *u.Rombel)
	}
	if u.Angkatan != nil {
		sets = append(sets, "angkatan = ?")
		args = append(args, *u.Angkatan)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC(), id)

	query := `UPDATE students SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update student: %w", err)
	}
	return nil
}

// Delete removes a student row; dependent rows cascade
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	// Explicit child deletes keep SQLite correct when foreign keys are off
	for _, table := range []string{"achievements", "chat_messages", "student_insights", "student_sessions"} {
		if _, err := r.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE student_id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete %s for student: %w", table, err)
		}
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM students WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}
	return nil
}

// List returns one page of students matching f, highest points first
func (r *StudentRepository) List(ctx context.Context, f models.StudentFilter) (*models.StudentPage, error) {
	var where []string
	var args []interface{}
	if f.Kelas != "" {
		where = append(where, "kelas = ?")
		args = append(args, f.Kelas)
	}
	if f.Rombel != "" {
		where = append(where, "rombel = ?")
		args = append(args, f.Rombel)
	}
	if f.Angkatan != "" {
		where = append(where, "angkatan = ?")
		args = append(args, f.Angkatan)
	}
	if f.Search != "" {
		where = append(where, "(LOWER(student_name) LIKE ? OR LOWER(student_code) LIKE ?)")
		pattern := "%" + strings.ToLower(f.Search) + "%"
		args = append(args, pattern, pattern)
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	page := &models.StudentPage{Students: []models.Student{}}
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM students`+clause, args...).Scan(&page.Total); err != nil {
		return nil, fmt.Errorf("failed to count students: %w", err)
	}

	query := `SELECT ` + studentColumns + ` FROM students` + clause + ` ORDER BY points DESC, created_at ASC`
	if f.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		page.Students = append(page.Students, *s)
	}
	return page, rows.Err()
}

// ListAll returns every student row ordered by code then creation time
func (r *StudentRepository) ListAll(ctx context.Context) ([]models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students ORDER BY student_code ASC, created_at ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		students = append(students, *s)
	}
	return students, rows.Err()
}
