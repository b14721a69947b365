package database

import (
	"database/sql"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

// PostgresDialect implements Dialect for PostgreSQL
type PostgresDialect struct{}

// NewPostgresDialect creates a new PostgreSQL dialect
func NewPostgresDialect() *PostgresDialect {
	return &PostgresDialect{}
}

func (d *PostgresDialect) DriverName() string {
	return "postgres"
}

// DSN returns the configured URL. Hosted databases reject plain connections,
// so a URL without sslmode gets sslmode=require unless it points at localhost.
func (d *PostgresDialect) DSN(config DialectConfig) string {
	dsn := config.URL
	if strings.Contains(dsn, "sslmode=") || strings.Contains(dsn, "localhost") || strings.Contains(dsn, "127.0.0.1") {
		return dsn
	}
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		if strings.Contains(dsn, "?") {
			return dsn + "&sslmode=require"
		}
		return dsn + "?sslmode=require"
	}
	return dsn
}

func (d *PostgresDialect) RewriteQuery(query string) string {
	return rewritePlaceholdersToNumbered(query)
}

// ConfigureConnection keeps the pool small enough for a transaction pooler
// such as the one in front of hosted Postgres
func (d *PostgresDialect) ConfigureConnection(db *sql.DB) error {
	poolLimits{maxOpen: 10, maxIdle: 2, maxLifetime: 30 * time.Minute, maxIdleTime: 5 * time.Minute}.apply(db)
	return nil
}

func (d *PostgresDialect) MigrationsSubdir() string {
	return "postgres"
}

func (d *PostgresDialect) CreateMigrationsTableQuery() string {
	return `
		CREATE TABLE IF NOT EXISTS migrations (
			id BIGSERIAL PRIMARY KEY,
			filename TEXT UNIQUE NOT NULL,
			executed_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		);
	`
}

func (d *PostgresDialect) UpsertKV(table string) string {
	return "INSERT INTO " + table + " (kv_key, kv_value) VALUES (?, ?) " +
		"ON CONFLICT (kv_key) DO UPDATE SET kv_value = EXCLUDED.kv_value, updated_at = CURRENT_TIMESTAMP"
}

func (d *PostgresDialect) InsertIgnore(query string) string {
	return strings.TrimSuffix(strings.TrimSpace(query), ";") + " ON CONFLICT DO NOTHING"
}
