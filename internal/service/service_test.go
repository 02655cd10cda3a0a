package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/taskboard/taskboard-go/internal/crypto"
	"github.com/taskboard/taskboard-go/internal/repository"
)

// newTestDB opens a migrated in-memory SQLite database.
func newTestDB(t *testing.T) *repository.DB {
	t.Helper()

	ctx := context.Background()
	db, err := repository.Open(ctx, "sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Open() unexpected error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(ctx, slog.New(slog.NewTextHandler(io.Discard, nil))); err != nil {
		t.Fatalf("Migrate() unexpected error: %v", err)
	}
	return db
}

func newTestHasher() *crypto.Argon2Hasher {
	return crypto.NewArgon2Hasher(crypto.HashParams{
		Memory:      1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	})
}

func newTestIssuer(t *testing.T) *crypto.TokenIssuer {
	t.Helper()

	issuer, err := crypto.NewTokenIssuer("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenIssuer() unexpected error: %v", err)
	}
	return issuer
}
