package save

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const slotKeyPrefix = "trisarira:save:"

// RedisStore persists snapshots in Redis, one key per slot.
type RedisStore struct {
	client *redis.Client
	logger *slog.Logger
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore connects a store to a Redis address.
func NewRedisStore(addr string, logger *slog.Logger) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		logger: logger,
	}
}

// Ping checks the connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close releases the connection.
func (s *RedisStore) Close() error {
	if err := s.client.Close(); err != nil {
		s.logger.Error("failed to close redis connection", "error", err)
		return err
	}
	return nil
}

// WaitForConnection retries the ping with exponential backoff until the
// server answers or the context ends. Used at startup.
func (s *RedisStore) WaitForConnection(ctx context.Context) error {
	attempt := 0
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		attempt++
		if err := s.Ping(ctx); err != nil {
			s.logger.Debug("redis not ready yet", "attempt", attempt, "error", err)
			return struct{}{}, err
		}
		return struct{}{}, nil
	},
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(60*time.Second),
	)
	if err != nil {
		return fmt.Errorf("redis did not become available: %w", err)
	}
	s.logger.Info("redis connection established")
	return nil
}

func slotKey(slot uuid.UUID) string {
	return slotKeyPrefix + slot.String()
}

// Save stores a snapshot under its slot key.
func (s *RedisStore) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := s.client.Set(ctx, slotKey(snap.Slot), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store snapshot %s: %w", snap.Slot, err)
	}
	s.logger.Debug("snapshot saved", "slot", snap.Slot, "zone", snap.ZoneID)
	return nil
}

// Load returns the snapshot in a slot.
func (s *RedisStore) Load(ctx context.Context, slot uuid.UUID) (*Snapshot, error) {
	data, err := s.client.Get(ctx, slotKey(slot)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("slot %s: %w", slot, ErrSlotNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", slot, err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot %s: %w", slot, err)
	}
	return &snap, nil
}

// Delete removes a slot. Deleting an empty slot is a no-op.
func (s *RedisStore) Delete(ctx context.Context, slot uuid.UUID) error {
	if err := s.client.Del(ctx, slotKey(slot)).Err(); err != nil {
		return fmt.Errorf("failed to delete snapshot %s: %w", slot, err)
	}
	return nil
}

// List scans the slot keys and returns every snapshot, most recent
// first.
func (s *RedisStore) List(ctx context.Context) ([]*Snapshot, error) {
	var out []*Snapshot
	iter := s.client.Scan(ctx, 0, slotKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		data, err := s.client.Get(ctx, iter.Val()).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", iter.Val(), err)
		}
		var snap Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s: %w", iter.Val(), err)
		}
		out = append(out, &snap)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan save slots: %w", err)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SavedAt.After(out[j].SavedAt)
	})
	return out, nil
}
