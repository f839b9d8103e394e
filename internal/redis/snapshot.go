package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"github.com/fakhrymubarak/eventsphere-api/internal/model"
)

const DefaultSnapshotKey = "eventsphere:events:snapshot"

// Cmdable is the subset of the Redis client used by EventSnapshot.
type Cmdable interface {
	Get(ctx context.Context, key string) *redisv9.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redisv9.StatusCmd
}

// EventSnapshot keeps the last event list fetched from the backend so the
// offline path can serve it instead of the bundled dataset.
type EventSnapshot struct {
	client Cmdable
	key    string
	ttl    time.Duration
}

func NewEventSnapshot(client Cmdable, key string, ttl time.Duration) *EventSnapshot {
	if key == "" {
		key = DefaultSnapshotKey
	}
	return &EventSnapshot{client: client, key: key, ttl: ttl}
}

// Save stores events, replacing any previous snapshot.
func (s *EventSnapshot) Save(ctx context.Context, events []model.Event) error {
	b, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}
	if err := s.client.Set(ctx, s.key, b, s.ttl).Err(); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}

// List returns the stored events. A missing snapshot is an empty list.
func (s *EventSnapshot) List(ctx context.Context) ([]model.Event, error) {
	val, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redisv9.Nil) {
		return []model.Event{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var events []model.Event
	if err := json.Unmarshal([]byte(val), &events); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	return events, nil
}
