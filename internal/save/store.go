package save

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Store persists snapshots by slot id.
type Store interface {
	Save(ctx context.Context, snap *Snapshot) error
	Load(ctx context.Context, slot uuid.UUID) (*Snapshot, error)
	Delete(ctx context.Context, slot uuid.UUID) error
	List(ctx context.Context) ([]*Snapshot, error)
	Ping(ctx context.Context) error
	Close() error
}

// ErrSlotNotFound is returned when a slot holds no snapshot.
var ErrSlotNotFound = fmt.Errorf("save slot not found")

// MemoryStore keeps snapshots in memory. It backs tests and the
// no-persistence configuration.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[uuid.UUID][]byte
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[uuid.UUID][]byte)}
}

// Save stores a snapshot. Snapshots are copied through JSON so later
// mutation of the source cannot corrupt the stored state.
func (s *MemoryStore) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[snap.Slot] = data
	return nil
}

// Load returns the snapshot in a slot.
func (s *MemoryStore) Load(ctx context.Context, slot uuid.UUID) (*Snapshot, error) {
	s.mu.RLock()
	data, ok := s.slots[slot]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("slot %s: %w", slot, ErrSlotNotFound)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snap, nil
}

// Delete removes a slot. Deleting an empty slot is a no-op.
func (s *MemoryStore) Delete(ctx context.Context, slot uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, slot)
	return nil
}

// List returns every stored snapshot, most recent first.
func (s *MemoryStore) List(ctx context.Context) ([]*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Snapshot, 0, len(s.slots))
	for _, data := range s.slots {
		var snap Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
		}
		out = append(out, &snap)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SavedAt.After(out[j].SavedAt)
	})
	return out, nil
}

// Ping always succeeds.
func (s *MemoryStore) Ping(ctx context.Context) error { return nil }

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }
