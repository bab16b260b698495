package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, _, err := NewSQLiteDB(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestNewSQLiteDB_CreatesTables(t *testing.T) {
	db := newTestDB(t)

	for _, table := range []string{"schema_migrations", "delivery_log"} {
		var name string
		err := db.QueryRowContext(context.Background(), "SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %q not found: %v", table, err)
		}
	}
}

func TestNewSQLiteDB_MigrationVersion(t *testing.T) {
	db := newTestDB(t)

	var version int
	err := db.QueryRowContext(context.Background(), "SELECT MAX(version) FROM schema_migrations").Scan(&version)
	if err != nil {
		t.Fatalf("querying version: %v", err)
	}
	if version != len(migrations) {
		t.Errorf("expected version %d, got %d", len(migrations), version)
	}
}

func TestNewSQLiteDB_FreshDBFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "regnotify.db")

	db, fresh, err := NewSQLiteDB(path)
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	if !fresh {
		t.Error("expected freshDB=true for new database")
	}
	_ = db.Close()

	db, fresh, err = NewSQLiteDB(path)
	if err != nil {
		t.Fatalf("reopening database: %v", err)
	}
	defer db.Close()
	if fresh {
		t.Error("expected freshDB=false for existing database")
	}
}
