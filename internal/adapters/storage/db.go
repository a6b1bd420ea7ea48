package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned by stores when no entity matches the lookup.
var ErrNotFound = errors.New("not found")

// TimeLayout is the layout used for timestamps stored as TEXT.
const TimeLayout = time.RFC3339Nano

// FormatTime renders t for storage in UTC.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime parses a stored timestamp. Empty strings yield the zero time.
func ParseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(TimeLayout, s)
}

// migration is one forward-only schema step.
type migration struct {
	version int
	name    string
	stmts   []string
}

var migrations = []migration{
	{
		version: 1,
		name:    "initial schema",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS account (
				id TEXT PRIMARY KEY,
				username TEXT NOT NULL UNIQUE,
				password_hash TEXT NOT NULL DEFAULT '',
				created_at TEXT NOT NULL,
				failed_logins INTEGER NOT NULL DEFAULT 0,
				locked_until TEXT
			)`,
			`CREATE TABLE IF NOT EXISTS member (
				id TEXT PRIMARY KEY,
				nombre TEXT NOT NULL,
				apellido TEXT NOT NULL,
				direccion TEXT NOT NULL DEFAULT '',
				telefono TEXT NOT NULL DEFAULT '',
				fecha_registro TEXT NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS friend (
				id TEXT PRIMARY KEY,
				nombre TEXT NOT NULL,
				de_donde_viene TEXT NOT NULL DEFAULT '',
				fecha_registro TEXT NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS attendance (
				id TEXT PRIMARY KEY,
				tipo TEXT NOT NULL,
				person_id TEXT NOT NULL,
				person_name TEXT NOT NULL,
				fecha TEXT NOT NULL,
				presente INTEGER NOT NULL,
				created_at TEXT NOT NULL,
				UNIQUE (tipo, person_id, fecha)
			)`,
		},
	},
	{
		version: 2,
		name:    "attendance lookup indexes",
		stmts: []string{
			`CREATE INDEX IF NOT EXISTS idx_attendance_fecha ON attendance (fecha)`,
			`CREATE INDEX IF NOT EXISTS idx_attendance_person ON attendance (person_id, fecha)`,
		},
	},
}

// LatestSchemaVersion returns the version reached after all migrations.
func LatestSchemaVersion() int {
	return migrations[len(migrations)-1].version
}

// Open opens the SQLite database at path and applies pragmas and migrations.
// PRE: path is a file path or ":memory:"
// POST: Returns a migrated database handle
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if path == ":memory:" {
		// each connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", path, err)
	}
	if err := MigrateDB(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// MigrateDB applies every pending migration inside its own transaction.
// PRE: db is a valid database connection
// POST: schema_version equals LatestSchemaVersion()
// INVARIANT: applied migrations are never re-run
func MigrateDB(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER NOT NULL,
		applied_at TEXT NOT NULL
	)`); err != nil {
		return fmt.Errorf("failed to create schema_version: %w", err)
	}

	current, err := SchemaVersion(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err := applyMigration(db, m); err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
		}
		slog.Info("schema_event", "event", "migration_applied", "version", m.version, "name", m.name)
	}
	return nil
}

func applyMigration(db *sql.DB, m migration) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range m.stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version, applied_at) VALUES (?, ?)", m.version, FormatTime(time.Now())); err != nil {
		return err
	}
	return tx.Commit()
}

// SchemaVersion returns the highest applied migration version, 0 for a fresh database.
func SchemaVersion(db *sql.DB) (int, error) {
	var version sql.NullInt64
	if err := db.QueryRow("SELECT MAX(version) FROM schema_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return int(version.Int64), nil
}

// IsUniqueViolation reports whether err is a SQLite UNIQUE constraint failure.
func IsUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
