package save

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
)

func newRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	store := NewRedisStore(mr.Addr(), slog.Default())
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleSnapshot(slot uuid.UUID) *Snapshot {
	return &Snapshot{
		Slot:    slot,
		SavedAt: time.Now().UTC(),
		ZoneID:  "z_r1_forest_route",
		PlayerX: 3,
		PlayerY: 4,
		Facing:  "east",
		Active: []Member{
			{ActorID: "mc_adhira", Name: "Adhira", Level: 2, XP: 10, HP: 40},
		},
		Flags:  []string{"fl_chest_forest_route"},
		Items:  map[string]int{"it_herb_poultice": 2},
		Money:  35,
		Minute: 600,
		Day:    1,
	}
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store := newRedisStore(t)
	ctx := context.Background()

	if err := store.Ping(ctx); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}

	slot := uuid.New()
	snap := sampleSnapshot(slot)

	if err := store.Save(ctx, snap); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load(ctx, slot)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.ZoneID != snap.ZoneID || loaded.PlayerX != snap.PlayerX || loaded.Money != snap.Money {
		t.Errorf("Loaded snapshot differs: %+v", loaded)
	}
	if len(loaded.Active) != 1 || loaded.Active[0].ActorID != "mc_adhira" {
		t.Errorf("Party not preserved: %+v", loaded.Active)
	}
	if loaded.Items["it_herb_poultice"] != 2 {
		t.Error("Inventory not preserved")
	}
}

func TestRedisStoreLoadMissingSlot(t *testing.T) {
	store := newRedisStore(t)

	_, err := store.Load(context.Background(), uuid.New())
	if err == nil {
		t.Fatal("Expected error for empty slot")
	}
}

func TestRedisStoreDelete(t *testing.T) {
	store := newRedisStore(t)
	ctx := context.Background()

	slot := uuid.New()
	if err := store.Save(ctx, sampleSnapshot(slot)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Delete(ctx, slot); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Load(ctx, slot); err == nil {
		t.Error("Deleted slot should be empty")
	}

	// Deleting again is fine
	if err := store.Delete(ctx, slot); err != nil {
		t.Errorf("Repeat delete failed: %v", err)
	}
}

func TestRedisStoreList(t *testing.T) {
	store := newRedisStore(t)
	ctx := context.Background()

	older := sampleSnapshot(uuid.New())
	older.SavedAt = time.Now().UTC().Add(-time.Hour)
	newer := sampleSnapshot(uuid.New())

	if err := store.Save(ctx, older); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Save(ctx, newer); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	snaps, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(snaps) != 2 {
		t.Fatalf("List returned %d snapshots, want 2", len(snaps))
	}
	if snaps[0].Slot != newer.Slot {
		t.Error("List should return the most recent snapshot first")
	}
}

func TestMemoryStoreMatchesInterface(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	slot := uuid.New()
	snap := sampleSnapshot(slot)
	if err := store.Save(ctx, snap); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Mutating the source must not affect the stored copy
	snap.Money = 9999

	loaded, err := store.Load(ctx, slot)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Money != 35 {
		t.Errorf("Money = %d, want the value at save time", loaded.Money)
	}

	if _, err := store.Load(ctx, uuid.New()); err == nil {
		t.Error("Expected error for empty slot")
	}
}
