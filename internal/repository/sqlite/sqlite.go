// Package sqlite implements the repository interfaces using SQLite as the storage backend.
//
// WHY SQLITE?
// SQLite is an embedded database: it lives inside your Go binary as a single file.
// No separate database server to install, configure, or manage. The exercise
// tracker is a single-process service, which is exactly SQLite's sweet spot.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// modernc.org/sqlite is a pure Go translation of the SQLite C code, so no C compiler is
// needed and cross-compilation just works.
//
// STORAGE SHAPE:
// Exercises live in their own table and point at their owner through
// exercises.user_id (a foreign key), rather than being embedded in the user row.
// Appending an exercise is therefore a plain INSERT: entries are never
// rewritten, so concurrent appends for the same user never conflict.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	// BLANK IMPORT:
	// Registers the "sqlite" driver with database/sql at init time.
	_ "modernc.org/sqlite"
)

// memoryPath is SQLite's in-memory database name. Used heavily in tests.
const memoryPath = ":memory:"

// DB wraps a sql.DB connection pool and provides repository methods.
// It implements both repository.UserRepository and repository.ExerciseRepository.
type DB struct {
	conn *sql.DB
}

// New opens the SQLite database at dbPath and runs migrations.
//
// dbPath examples:
//   - "data/exercise.db" → file-based database (persistent)
//   - ":memory:"         → in-memory database (tests)
//
// CONNECTION POOL AND :memory:
// Every new connection to ":memory:" gets its OWN empty database. A pool with
// several connections would run the migrations on one and the queries on
// another ("no such table"). Pinning the pool to a single connection keeps
// the in-memory database shared.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}
	if dbPath == memoryPath {
		conn.SetMaxOpenConns(1)
	}

	// Ping forces a real connection so a bad path fails here, not on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL mode lets readers proceed while a write is in flight.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are OFF by default in SQLite. For file databases the DSN
	// turns them on for every pooled connection; this covers :memory:.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// dsn appends per-connection pragmas. PRAGMA statements run through Exec only
// affect the one pooled connection that executed them; _pragma parameters are
// applied by the driver to each new connection.
func dsn(dbPath string) string {
	if dbPath == memoryPath || strings.Contains(dbPath, "?") {
		return dbPath
	}
	return dbPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping reports whether the store is reachable. Used by the health check.
func (db *DB) Ping(ctx context.Context) error {
	if err := db.conn.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite: ping: %w", err)
	}
	return nil
}

// migrate creates the schema. CREATE ... IF NOT EXISTS makes it safe to run
// on every start.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id         TEXT PRIMARY KEY,
			username   TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	// date is TEXT in "YYYY-MM-DD" form: string comparison is date comparison,
	// which is what the from/to range filter relies on.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS exercises (
			id          TEXT PRIMARY KEY,
			user_id     TEXT NOT NULL REFERENCES users(id),
			description TEXT NOT NULL,
			duration    INTEGER NOT NULL,
			date        TEXT NOT NULL,
			created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_exercises_user_date ON exercises(user_id, date);
	`)
	if err != nil {
		return fmt.Errorf("creating exercises table: %w", err)
	}

	return nil
}
