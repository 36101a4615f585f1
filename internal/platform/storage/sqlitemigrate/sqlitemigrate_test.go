package sqlitemigrate

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func TestApplyRecordsMigration(t *testing.T) {
	db := openTempDB(t)
	migrations := fstest.MapFS{
		"001_create.sql": &fstest.MapFile{Data: []byte("-- +migrate Up\nCREATE TABLE items(id TEXT PRIMARY KEY);\n-- +migrate Down\nDROP TABLE items;")},
	}

	if err := Apply(context.Background(), db, migrations, ""); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if got := countRows(t, db, "schema_migrations"); got != 1 {
		t.Fatalf("expected 1 migration row, got %d", got)
	}
	if !tableExists(t, db, "items") {
		t.Fatal("expected items table")
	}

	if err := Apply(context.Background(), db, migrations, ""); err != nil {
		t.Fatalf("re-apply should be idempotent: %v", err)
	}
	if got := countRows(t, db, "schema_migrations"); got != 1 {
		t.Fatalf("expected 1 migration row after replay, got %d", got)
	}
}

func TestApplyDoesNotRecordFailure(t *testing.T) {
	db := openTempDB(t)
	bad := fstest.MapFS{"001_bad.sql": &fstest.MapFile{Data: []byte("CREAT TABLE x(id INT);")}}
	if err := Apply(context.Background(), db, bad, ""); err == nil {
		t.Fatal("expected failure")
	}
	if got := countRows(t, db, "schema_migrations"); got != 0 {
		t.Fatalf("expected no recorded migration, got %d", got)
	}
}

func TestLoadUsesRootInKeys(t *testing.T) {
	migrations := fstest.MapFS{
		"forge/002_b.sql": &fstest.MapFile{Data: []byte("SELECT 2;")},
		"forge/001_a.sql": &fstest.MapFile{Data: []byte("SELECT 1;")},
		"forge/notes.txt": &fstest.MapFile{Data: []byte("ignored")},
	}
	got, err := Load(migrations, "forge")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 || got[0].Name != "forge/001_a.sql" || got[1].Name != "forge/002_b.sql" {
		t.Fatalf("unexpected migrations: %+v", got)
	}
}

func TestUpSection(t *testing.T) {
	if got := UpSection("-- +migrate Up\nA\n-- +migrate Down\nB"); got != "\nA\n" {
		t.Fatalf("UpSection = %q", got)
	}
	if got := UpSection("PLAIN"); got != "PLAIN" {
		t.Fatalf("UpSection = %q", got)
	}
}

func openTempDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "migrate.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var found string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name = ?", name).Scan(&found)
	if err == sql.ErrNoRows {
		return false
	}
	if err != nil {
		t.Fatalf("check table: %v", err)
	}
	return found == name
}
