package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T, ttl time.Duration) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewStore(client, "test:notes", ttl), mr
}

func TestStoreRoundTrip(t *testing.T) {
	store, _ := newTestStore(t, time.Minute)
	ctx := context.Background()

	notes := NewNotes()
	notes.SetNote("ivaltTransactionId", "+919876543210")
	notes.SetNote("ivaltPollCount", "3")

	if err := store.Save(ctx, "attempt-1", notes); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load(ctx, "attempt-1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.GetNote("ivaltTransactionId") != "+919876543210" {
		t.Fatalf("transaction id = %q", loaded.GetNote("ivaltTransactionId"))
	}
	if loaded.GetNote("ivaltPollCount") != "3" {
		t.Fatalf("poll count = %q", loaded.GetNote("ivaltPollCount"))
	}
}

func TestStoreLoadUnknownAttemptIsEmpty(t *testing.T) {
	store, _ := newTestStore(t, time.Minute)

	notes, err := store.Load(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if notes.Len() != 0 {
		t.Fatalf("expected empty notes, got %d entries", notes.Len())
	}
}

func TestStoreSaveReplacesStaleNotes(t *testing.T) {
	store, _ := newTestStore(t, time.Minute)
	ctx := context.Background()

	first := NewNotes()
	first.SetNote("ivaltTransactionId", "+15551234567")
	first.SetNote("ivaltPollCount", "9")
	if err := store.Save(ctx, "attempt-1", first); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	second := NewNotes()
	second.SetNote("ivaltTransactionId", "+15551234567")
	if err := store.Save(ctx, "attempt-1", second); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load(ctx, "attempt-1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.GetNote("ivaltPollCount") != "" {
		t.Fatal("stale note survived the save")
	}
}

func TestStoreSaveEmptyNotesDeletes(t *testing.T) {
	store, mr := newTestStore(t, time.Minute)
	ctx := context.Background()

	notes := NewNotes()
	notes.SetNote("ivaltTransactionId", "+15551234567")
	if err := store.Save(ctx, "attempt-1", notes); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := store.Save(ctx, "attempt-1", NewNotes()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if mr.Exists("test:notes:attempt-1") {
		t.Fatal("expected key removed when notes are empty")
	}
}

func TestStoreTTLExpiry(t *testing.T) {
	store, mr := newTestStore(t, time.Minute)
	ctx := context.Background()

	notes := NewNotes()
	notes.SetNote("ivaltTransactionId", "+15551234567")
	if err := store.Save(ctx, "attempt-1", notes); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	loaded, err := store.Load(ctx, "attempt-1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Len() != 0 {
		t.Fatal("expected notes expired")
	}
}

func TestStoreDelete(t *testing.T) {
	store, mr := newTestStore(t, time.Minute)
	ctx := context.Background()

	notes := NewNotes()
	notes.SetNote("ivaltMobileNumber", "5551234567")
	if err := store.Save(ctx, "attempt-1", notes); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := store.Delete(ctx, "attempt-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if mr.Exists("test:notes:attempt-1") {
		t.Fatal("expected key deleted")
	}
}
