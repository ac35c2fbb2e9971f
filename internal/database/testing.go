package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/uptrace/bun"

	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/config"
)

// MustOpenTest opens a migrated throwaway sqlite database for a test.
func MustOpenTest(t *testing.T) *bun.DB {
	t.Helper()

	cfg := config.Database{
		Driver: config.DriverSQLite,
		DSN:    "file:" + filepath.Join(t.TempDir(), "test.db"),
	}

	ctx := context.Background()
	db, err := Open(ctx, cfg)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := Migrate(ctx, db, cfg.Driver); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	return db
}
