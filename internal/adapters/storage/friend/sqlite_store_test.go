package friend

import (
	"context"
	"errors"
	"testing"
	"time"

	"diaconisas/internal/adapters/storage"
	domain "diaconisas/internal/domain/friend"
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

// TestSQLiteStore_CRUD verifies the friend lifecycle.
func TestSQLiteStore_CRUD(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	day := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)

	if err := store.Save(ctx, domain.Friend{ID: "f1", Nombre: "Luis", DeDondeViene: "Hialeah", FechaRegistro: day}); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(ctx, domain.Friend{ID: "f2", Nombre: "Rosa", FechaRegistro: day.AddDate(0, 0, 7)}); err != nil {
		t.Fatal(err)
	}

	got, err := store.GetByID(ctx, "f1")
	if err != nil || got.DeDondeViene != "Hialeah" || !got.FechaRegistro.Equal(day) {
		t.Fatalf("GetByID = %+v, %v", got, err)
	}

	list, err := store.List(ctx, ListFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].ID != "f2" {
		t.Errorf("List = %+v, want newest first", list)
	}

	found, _ := store.List(ctx, ListFilter{Search: "hial"})
	if len(found) != 1 || found[0].ID != "f1" {
		t.Errorf("Search = %+v", found)
	}

	if err := store.Delete(ctx, "f1"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.GetByID(ctx, "f1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetByID after delete err = %v", err)
	}
	if err := store.Delete(ctx, "f1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second Delete err = %v", err)
	}
}

// TestCachedStore_Invalidation verifies writes refresh the cached roster.
func TestCachedStore_Invalidation(t *testing.T) {
	store := NewCachedStore(newTestStore(t), time.Minute)
	ctx := context.Background()

	if n, _ := store.Count(ctx); n != 0 {
		t.Fatalf("Count = %d", n)
	}
	if err := store.Save(ctx, domain.Friend{ID: "f1", Nombre: "Luis"}); err != nil {
		t.Fatal(err)
	}
	if n, _ := store.Count(ctx); n != 1 {
		t.Errorf("Count after Save = %d, want 1", n)
	}
}
