package repository

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/taskboard/taskboard-go/internal/model"
)

// newTestDB opens a migrated in-memory SQLite database.
func newTestDB(t *testing.T) *DB {
	t.Helper()

	ctx := context.Background()
	db, err := Open(ctx, "sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Open() unexpected error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(ctx, slog.New(slog.NewTextHandler(io.Discard, nil))); err != nil {
		t.Fatalf("Migrate() unexpected error: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *DB, username string) *model.User {
	t.Helper()

	user := &model.User{Username: username, PasswordHash: "hash"}
	if err := NewUserRepository(db).Create(context.Background(), user); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	return user
}
