package database

import (
	"context"
	"path/filepath"
	"testing"
)

const testMigrationsPath = "../../migrations"

func openMigrated(t *testing.T) *DB {
	t.Helper()

	db, err := Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations(testMigrationsPath); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

// TestDatabaseIntegration tests the complete database lifecycle
func TestDatabaseIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openMigrated(t)
	ctx := context.Background()

	tables := []string{"students", "achievements", "chat_messages", "student_insights", "student_sessions", "admins"}
	for _, table := range tables {
		var name string
		err := db.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("Table %s not found: %v", table, err)
		}
	}

	// Running again must be a no-op
	if err := db.RunMigrations(testMigrationsPath); err != nil {
		t.Fatalf("Second migration run failed: %v", err)
	}
}

// TestWithTxRollback tests that a failing transaction leaves no rows behind
func TestWithTxRollback(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openMigrated(t)
	ctx := context.Background()

	err := db.WithTx(ctx, func(tx *Tx) error {
		if _, err := tx.ExecContext(ctx, "INSERT INTO students (id, student_code, student_name) VALUES (?, ?, ?)",
			"s-1", "INSPIRE2025DA", "DIYA AISYAH"); err != nil {
			return err
		}
		// Duplicate primary key forces a failure
		_, err := tx.ExecContext(ctx, "INSERT INTO students (id, student_code, student_name) VALUES (?, ?, ?)",
			"s-1", "INSPIRE2025DA", "DIYA AISYAH")
		return err
	})
	if err == nil {
		t.Fatal("expected duplicate insert to fail")
	}

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM students").Scan(&count); err != nil {
		t.Fatalf("Failed to count students: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 students after rollback, got %d", count)
	}
}

// TestInsertIgnoreUniqueness tests that repeated unlocks keep a single row
func TestInsertIgnoreUniqueness(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openMigrated(t)
	ctx := context.Background()

	if _, err := db.ExecContext(ctx, "INSERT INTO students (id, student_code, student_name) VALUES (?, ?, ?)",
		"s-1", "INSPIRE2025DA", "DIYA AISYAH"); err != nil {
		t.Fatalf("Failed to create student: %v", err)
	}

	query := db.Dialect.InsertIgnore("INSERT INTO achievements (id, student_id, achievement_id) VALUES (?, ?, ?)")
	for _, id := range []string{"a-1", "a-2"} {
		if _, err := db.ExecContext(ctx, query, id, "s-1", "first-login"); err != nil {
			t.Fatalf("InsertIgnore failed: %v", err)
		}
	}

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM achievements WHERE student_id = ?", "s-1").Scan(&count); err != nil {
		t.Fatalf("Failed to count achievements: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 achievement row, got %d", count)
	}
}
