package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"diaconisas/internal/adapters/storage"
	domain "diaconisas/internal/domain/account"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := storage.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSQLiteStore(db)
}

// TestSQLiteStore_SaveAndGet verifies insert, lockout update and lookup.
func TestSQLiteStore_SaveAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	created := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	a := domain.Account{ID: "a1", Username: "admin", PasswordHash: "hash", CreatedAt: created}
	if err := store.Save(ctx, a); err != nil {
		t.Fatalf("Save: %v", err)
	}

	a.FailedLogins = 5
	a.LockedUntil = created.Add(time.Hour)
	if err := store.Save(ctx, a); err != nil {
		t.Fatalf("Save update: %v", err)
	}

	got, err := store.GetByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if got.FailedLogins != 5 || !got.LockedUntil.Equal(a.LockedUntil) || !got.CreatedAt.Equal(created) {
		t.Errorf("GetByUsername = %+v", got)
	}

	a.ResetFailedLogins()
	if err := store.Save(ctx, a); err != nil {
		t.Fatal(err)
	}
	got, _ = store.GetByUsername(ctx, "admin")
	if !got.LockedUntil.IsZero() {
		t.Errorf("LockedUntil = %v, want zero after reset", got.LockedUntil)
	}

	if n, _ := store.Count(ctx); n != 1 {
		t.Errorf("Count = %d, want 1", n)
	}
}

// TestSQLiteStore_UsernameTaken verifies duplicate usernames are rejected.
func TestSQLiteStore_UsernameTaken(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, domain.Account{ID: "a1", Username: "admin", CreatedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}
	err := store.Save(ctx, domain.Account{ID: "a2", Username: "admin", CreatedAt: time.Now()})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("err = %v, want ErrUsernameTaken", err)
	}
}

// TestSQLiteStore_NotFound verifies unknown usernames map to storage.ErrNotFound.
func TestSQLiteStore_NotFound(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.GetByUsername(context.Background(), "nobody"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
