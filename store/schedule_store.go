package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"app/models"
)

// ErrNotFound is returned when no schedule exists under the given id.
var ErrNotFound = errors.New("schedule not found")

const (
	scheduleKeyPrefix = "schedule:"
	ownerKeyPrefix    = "schedules:owner:"
	defaultTTL        = 30 * 24 * time.Hour
)

// ScheduleStore persists generated schedules in Redis with a TTL. It
// implements scheduler.ScheduleSaver.
type ScheduleStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewScheduleStore wraps a Redis client. A nil client yields a store whose
// saves fail softly, which the engine tolerates.
func NewScheduleStore(client *redis.Client) *ScheduleStore {
	return &ScheduleStore{client: client, ttl: defaultTTL}
}

// ScheduleKey builds the Redis key for a stored schedule id.
func ScheduleKey(scheduleID string) string {
	return scheduleKeyPrefix + scheduleID
}

// Save stores the result under a fresh id and indexes it by owner when an
// owner id is present.
func (s *ScheduleStore) Save(ctx context.Context, ownerID string, result *models.ScheduleResult) (string, error) {
	if s.client == nil {
		return "", errors.New("schedule store not connected")
	}
	stored := models.StoredSchedule{
		ScheduleID: uuid.NewString(),
		OwnerID:    ownerID,
		Result:     *result,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	payload, err := json.Marshal(stored)
	if err != nil {
		return "", fmt.Errorf("failed to encode schedule: %w", err)
	}
	if err := s.client.Set(ctx, ScheduleKey(stored.ScheduleID), payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store schedule: %w", err)
	}
	if ownerID != "" {
		// Index failure is tolerable; the schedule itself is stored.
		if err := s.client.RPush(ctx, ownerKeyPrefix+ownerID, stored.ScheduleID).Err(); err == nil {
			s.client.Expire(ctx, ownerKeyPrefix+ownerID, s.ttl)
		}
	}
	return stored.ScheduleID, nil
}

// Get fetches a stored schedule by id.
func (s *ScheduleStore) Get(ctx context.Context, scheduleID string) (*models.StoredSchedule, error) {
	if s.client == nil {
		return nil, ErrNotFound
	}
	payload, err := s.client.Get(ctx, ScheduleKey(scheduleID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch schedule: %w", err)
	}
	var stored models.StoredSchedule
	if err := json.Unmarshal(payload, &stored); err != nil {
		return nil, fmt.Errorf("failed to decode schedule: %w", err)
	}
	return &stored, nil
}

// ListByOwner returns the schedule ids stored for an owner, oldest first.
func (s *ScheduleStore) ListByOwner(ctx context.Context, ownerID string) ([]string, error) {
	if s.client == nil {
		return nil, nil
	}
	ids, err := s.client.LRange(ctx, ownerKeyPrefix+ownerID, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	return ids, nil
}
