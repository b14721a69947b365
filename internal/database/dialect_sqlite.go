package database

import (
	"database/sql"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteDialect implements Dialect for SQLite
type SQLiteDialect struct{}

// NewSQLiteDialect creates a new SQLite dialect
func NewSQLiteDialect() *SQLiteDialect {
	return &SQLiteDialect{}
}

func (d *SQLiteDialect) DriverName() string {
	return "sqlite3"
}

// DSN adds a busy timeout and per-connection foreign keys unless the path already carries options
func (d *SQLiteDialect) DSN(config DialectConfig) string {
	if strings.Contains(config.Path, "?") {
		return config.Path
	}
	return config.Path + "?_busy_timeout=5000&_foreign_keys=on"
}

func (d *SQLiteDialect) RewriteQuery(query string) string {
	return query
}

// ConfigureConnection switches to WAL so the local mirror and the remote file
// can be read while the outbox worker writes
func (d *SQLiteDialect) ConfigureConnection(db *sql.DB) error {
	poolLimits{maxOpen: 4, maxIdle: 2, maxLifetime: time.Hour, maxIdleTime: 10 * time.Minute}.apply(db)
	return execAll(db, "PRAGMA journal_mode=WAL;", "PRAGMA foreign_keys=ON;")
}

func (d *SQLiteDialect) MigrationsSubdir() string {
	return "sqlite"
}

func (d *SQLiteDialect) CreateMigrationsTableQuery() string {
	return `
		CREATE TABLE IF NOT EXISTS migrations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			filename TEXT UNIQUE NOT NULL,
			executed_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`
}

func (d *SQLiteDialect) UpsertKV(table string) string {
	return "INSERT INTO " + table + " (kv_key, kv_value) VALUES (?, ?) " +
		"ON CONFLICT(kv_key) DO UPDATE SET kv_value = excluded.kv_value, updated_at = CURRENT_TIMESTAMP"
}

func (d *SQLiteDialect) InsertIgnore(query string) string {
	return strings.Replace(query, "INSERT INTO", "INSERT OR IGNORE INTO", 1)
}
