package database

import (
	"database/sql"
	"strconv"
	"strings"
	"time"
)

// Dialect hides the differences between the supported SQL backends. Queries
// are written once with ? placeholders and rewritten per backend.
type Dialect interface {
	DriverName() string
	DSN(config DialectConfig) string

	// RewriteQuery converts ? placeholders to the backend's syntax
	RewriteQuery(query string) string

	// ConfigureConnection sets pool limits and session options after opening
	ConfigureConnection(db *sql.DB) error

	// MigrationsSubdir names the directory under the migrations path, e.g. "postgres"
	MigrationsSubdir() string
	CreateMigrationsTableQuery() string

	// UpsertKV returns an insert-or-replace statement for a key/value table.
	// Arguments are (kv_key, kv_value).
	UpsertKV(table string) string

	// InsertIgnore turns a plain "INSERT INTO ..." statement into one that
	// silently skips rows violating a unique constraint
	InsertIgnore(query string) string
}

// DialectConfig holds connection settings. SQLite reads Path, the others URL.
type DialectConfig struct {
	Path string
	URL  string
}

// rewritePlaceholdersToNumbered converts ? placeholders to $1, $2, ...
// A ? inside a single-quoted literal is left alone.
func rewritePlaceholdersToNumbered(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	inQuote := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
			b.WriteByte(c)
		case c == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// poolLimits sizes a connection pool. The app has one logical writer plus the
// outbox worker and admin reads, so pools stay small.
type poolLimits struct {
	maxOpen     int
	maxIdle     int
	maxLifetime time.Duration
	maxIdleTime time.Duration
}

func (p poolLimits) apply(db *sql.DB) {
	db.SetMaxOpenConns(p.maxOpen)
	db.SetMaxIdleConns(p.maxIdle)
	db.SetConnMaxLifetime(p.maxLifetime)
	db.SetConnMaxIdleTime(p.maxIdleTime)
}

// execAll runs session setup statements in order
func execAll(db *sql.DB, stmts ...string) error {
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
