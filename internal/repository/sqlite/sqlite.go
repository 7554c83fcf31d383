// Package sqlite implements the repository interfaces on an embedded SQLite
// database (modernc.org/sqlite, pure Go — no CGo toolchain needed).
//
// The store is a single file holding four append-only tables: users,
// courses, messages, classes. Schema creation is idempotent and runs on
// every startup. Use ":memory:" as the path for tests.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool. The per-collection stores returned by
// Users, Courses, Messages, and Classes share this pool and implement the
// corresponding repository interfaces.
type DB struct {
	conn *sql.DB
}

// Users returns the user store backed by this database.
func (db *DB) Users() *UserDB { return &UserDB{conn: db.conn} }

// Courses returns the course store backed by this database.
func (db *DB) Courses() *CourseDB { return &CourseDB{conn: db.conn} }

// Messages returns the message store backed by this database.
func (db *DB) Messages() *MessageDB { return &MessageDB{conn: db.conn} }

// Classes returns the class store backed by this database.
func (db *DB) Classes() *ClassDB { return &ClassDB{conn: db.conn} }

// New opens (or creates) the database at dbPath, applies the connection
// pragmas, and runs the idempotent schema migration.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// One connection: SQLite is single-writer anyway, and a ":memory:"
	// database is per-connection, so a pool would see empty copies.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets reads proceed while a write is in flight; the store is the
	// only serialization point in the system.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

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

// Close closes the database connection pool. Callers should defer this
// right after New so the file lock is released on shutdown.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the four tables if they don't exist yet. messages.fromId
// deliberately carries no foreign key: orphaned authors are tolerated.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id       TEXT PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			role     TEXT NOT NULL,
			name     TEXT NOT NULL DEFAULT '',
			classe   TEXT NOT NULL DEFAULT ''
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS courses (
			id      TEXT PRIMARY KEY,
			title   TEXT NOT NULL,
			class   TEXT NOT NULL DEFAULT '',
			subject TEXT NOT NULL DEFAULT '',
			type    TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL DEFAULT ''
		);
	`)
	if err != nil {
		return fmt.Errorf("creating courses table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS messages (
			id          TEXT PRIMARY KEY,
			fromId      TEXT NOT NULL,
			courseId    TEXT NOT NULL DEFAULT 'none',
			courseTitle TEXT NOT NULL DEFAULT '',
			text        TEXT NOT NULL,
			createdAt   TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_messages_from_created
			ON messages(fromId, createdAt DESC);
	`)
	if err != nil {
		return fmt.Errorf("creating messages table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS classes (
			id   TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE
		);
	`)
	if err != nil {
		return fmt.Errorf("creating classes table: %w", err)
	}

	return nil
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint
// failure. The driver doesn't export a typed error for this, so we match
// the stable message prefix the sqlite engine emits.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
