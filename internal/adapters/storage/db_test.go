package storage

import (
	"context"
	"database/sql"
	"sort"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

// openTestDB creates an in-memory SQLite database for testing.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

// getTableNames returns sorted table names from sqlite_master, excluding internal tables.
func getTableNames(t *testing.T, db *sql.DB) []string {
	t.Helper()
	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		t.Fatalf("failed to query sqlite_master: %v", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("failed to scan table name: %v", err)
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// expectedTables is the sorted list of tables after all migrations.
var expectedTables = []string{
	"account",
	"attendance",
	"friend",
	"member",
	"schema_version",
}

// TestMigrateDB_Fresh verifies all migrations apply cleanly to an empty database.
func TestMigrateDB_Fresh(t *testing.T) {
	db := openTestDB(t)

	if err := MigrateDB(db); err != nil {
		t.Fatalf("MigrateDB failed on fresh db: %v", err)
	}

	version, err := SchemaVersion(db)
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if version != LatestSchemaVersion() {
		t.Errorf("version = %d, want %d", version, LatestSchemaVersion())
	}

	tables := getTableNames(t, db)
	if len(tables) != len(expectedTables) {
		t.Fatalf("got tables %v, want %v", tables, expectedTables)
	}
	for i, want := range expectedTables {
		if tables[i] != want {
			t.Errorf("table[%d] = %q, want %q", i, tables[i], want)
		}
	}
}

// TestMigrateDB_Idempotent verifies that running MigrateDB twice records each version once.
func TestMigrateDB_Idempotent(t *testing.T) {
	db := openTestDB(t)

	for i := 0; i < 2; i++ {
		if err := MigrateDB(db); err != nil {
			t.Fatalf("MigrateDB run %d: %v", i+1, err)
		}
	}

	var rows int
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_version").Scan(&rows); err != nil {
		t.Fatal(err)
	}
	if rows != len(migrations) {
		t.Errorf("schema_version rows = %d, want %d", rows, len(migrations))
	}
}

// TestMigrateDB_AttendanceUniqueKey verifies the (tipo, person_id, fecha) constraint.
func TestMigrateDB_AttendanceUniqueKey(t *testing.T) {
	db := openTestDB(t)
	if err := MigrateDB(db); err != nil {
		t.Fatal(err)
	}

	insert := "INSERT INTO attendance (id, tipo, person_id, person_name, fecha, presente, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)"
	now := FormatTime(time.Now())
	if _, err := db.Exec(insert, "a1", "member", "m1", "Ana", "2024-03-10", 1, now); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(insert, "a2", "member", "m1", "Ana", "2024-03-10", 0, now); err == nil {
		t.Error("duplicate (tipo, person_id, fecha) accepted")
	}
	if _, err := db.Exec(insert, "a3", "friend", "m1", "Ana", "2024-03-10", 1, now); err != nil {
		t.Errorf("same person id under another tipo rejected: %v", err)
	}
}

// TestOpen_Memory verifies Open migrates an in-memory database.
func TestOpen_Memory(t *testing.T) {
	db, err := Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	version, err := SchemaVersion(db)
	if err != nil || version != LatestSchemaVersion() {
		t.Errorf("SchemaVersion = %d, %v", version, err)
	}
}

// TestParseTime verifies the stored timestamp format.
func TestParseTime(t *testing.T) {
	want := time.Date(2024, 3, 10, 14, 30, 0, 123, time.UTC)
	got, err := ParseTime(FormatTime(want))
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(want) {
		t.Errorf("ParseTime = %v, want %v", got, want)
	}
	if zero, err := ParseTime(""); err != nil || !zero.IsZero() {
		t.Errorf("ParseTime(\"\") = %v, %v", zero, err)
	}
}
