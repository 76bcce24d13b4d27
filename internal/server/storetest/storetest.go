// Package storetest opens migrated SQLite databases for tests.
package storetest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/libris/internal/dbx"
	"github.com/dmitrijs2005/libris/internal/server/migrations"
)

// DSN returns a SQLite DSN for a fresh file under t.TempDir(). Writers take
// the lock at BEGIN so concurrent transactions queue instead of deadlocking.
func DSN(t testing.TB) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "libris.db") + "?_foreign_keys=on&_busy_timeout=10000&_txlock=immediate"
}

// Open returns a migrated single-connection database closed at test cleanup.
func Open(t testing.TB) *sql.DB {
	t.Helper()
	return OpenPool(t, dbx.Pool{MaxOpenConns: 1})
}

// OpenPool is Open with an explicit pool, for tests that need several
// transactions in flight at once.
func OpenPool(t testing.TB, pool dbx.Pool) *sql.DB {
	t.Helper()

	ctx := context.Background()
	db, err := dbx.Open(ctx, dbx.SQLite, DSN(t), pool)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := migrations.Up(ctx, db, dbx.SQLite); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
