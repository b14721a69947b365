package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"wewillshine/internal/database"
)

const kvTable = "local_kv"

// SQLStore keeps blobs in a single table of a dialect-aware database.
// The local mirror normally runs on a SQLite file.
type SQLStore struct {
	db *database.DB
}

// NewSQLStore creates the backing table if needed
func NewSQLStore(db *database.DB) (*SQLStore, error) {
	query := `CREATE TABLE IF NOT EXISTS ` + kvTable + ` (
		kv_key VARCHAR(191) PRIMARY KEY,
		kv_value TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := db.ExecContext(context.Background(), query); err != nil {
		return nil, fmt.Errorf("failed to create %s table: %w", kvTable, err)
	}
	return &SQLStore{db: db}, nil
}

// OpenSQLite opens (or creates) a SQLite file as a local store
func OpenSQLite(path string) (*SQLStore, error) {
	db, err := database.Initialize(path)
	if err != nil {
		return nil, err
	}
	s, err := NewSQLStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLStore) Get(key string) ([]byte, error) {
	var value string
	query := `SELECT kv_value FROM ` + kvTable + ` WHERE kv_key = ?`
	err := s.db.QueryRowContext(context.Background(), query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return []byte(value), nil
}

func (s *SQLStore) Set(key string, value []byte) error {
	query := s.db.Dialect.UpsertKV(kvTable)
	if _, err := s.db.ExecContext(context.Background(), query, key, string(value)); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Delete(key string) error {
	query := `DELETE FROM ` + kvTable + ` WHERE kv_key = ?`
	if _, err := s.db.ExecContext(context.Background(), query, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying database
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// Open picks a backend by name: "memory", or "sqlite" at path
func Open(kind, path string) (Store, error) {
	switch kind {
	case "memory":
		return NewMemoryStore(), nil
	case "sqlite", "":
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unsupported local store: %s", kind)
	}
}
