package db

import (
	"database/sql"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Pool defaults used when PoolConfig fields are left zero.
const (
	defaultMaxOpenConns    = 5
	defaultMaxIdleConns    = 2
	defaultConnMaxLifetime = 5 * time.Minute
	defaultConnMaxIdleTime = 2 * time.Minute
)

// PoolConfig controls the sql.DB connection pool. Zero-valued fields
// fall back to the package defaults.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// OpenDB opens a SQLite database at the given path with the default
// connection pool, foreign keys enforced, and WAL journaling.
func OpenDB(path string) (*sql.DB, error) {
	return OpenDBWithPool(path, PoolConfig{})
}

// OpenDBWithPool opens a SQLite database with an explicit pool
// configuration. The foreign_keys and journal_mode pragmas are carried
// in the DSN so that every pooled connection gets them, not just the
// one that happened to run a PRAGMA statement.
func OpenDBWithPool(path string, pool PoolConfig) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, err
	}

	if pool.MaxOpenConns <= 0 {
		pool.MaxOpenConns = defaultMaxOpenConns
	}
	if pool.MaxIdleConns <= 0 {
		pool.MaxIdleConns = defaultMaxIdleConns
	}
	if pool.ConnMaxLifetime <= 0 {
		pool.ConnMaxLifetime = defaultConnMaxLifetime
	}
	if pool.ConnMaxIdleTime <= 0 {
		pool.ConnMaxIdleTime = defaultConnMaxIdleTime
	}
	db.SetMaxOpenConns(pool.MaxOpenConns)
	db.SetMaxIdleConns(pool.MaxIdleConns)
	db.SetConnMaxLifetime(pool.ConnMaxLifetime)
	db.SetConnMaxIdleTime(pool.ConnMaxIdleTime)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// OpenInMemory opens an in-memory SQLite database with the same settings
// as OpenDB. Useful for testing. The pool is pinned to a single
// connection because every connection to ":memory:" gets its own
// database.
func OpenInMemory() (*sql.DB, error) {
	db, err := OpenDB(":memory:")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

func dsn(path string) string {
	var b strings.Builder
	if !strings.HasPrefix(path, "file:") {
		b.WriteString("file:")
	}
	b.WriteString(path)
	if strings.Contains(path, "?") {
		b.WriteString("&")
	} else {
		b.WriteString("?")
	}
	b.WriteString("_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	return b.String()
}
