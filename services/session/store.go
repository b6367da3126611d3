package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const impersonationPrefix = "impersonation:"

// ImpersonationRecord is what an admin's active view-as session stores.
type ImpersonationRecord struct {
	AdminUserID string    `json:"adminUserId"`
	OrgID       string    `json:"orgId"`
	StartedAt   time.Time `json:"startedAt"`
}

// ImpersonationStore persists view-as sessions keyed by admin user id.
type ImpersonationStore interface {
	Get(ctx context.Context, adminUserID string) (*ImpersonationRecord, error)
	Set(ctx context.Context, rec ImpersonationRecord, ttl time.Duration) error
	Delete(ctx context.Context, adminUserID string) error
}

// RedisImpersonationStore keeps sessions as JSON blobs with a TTL.
type RedisImpersonationStore struct {
	client *redis.Client
}

func NewRedisImpersonationStore(client *redis.Client) *RedisImpersonationStore {
	return &RedisImpersonationStore{client: client}
}

// Get returns nil, nil when no session is active.
func (s *RedisImpersonationStore) Get(ctx context.Context, adminUserID string) (*ImpersonationRecord, error) {
	data, err := s.client.Get(ctx, impersonationPrefix+adminUserID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read impersonation session: %w", err)
	}
	var rec ImpersonationRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal impersonation session: %w", err)
	}
	return &rec, nil
}

func (s *RedisImpersonationStore) Set(ctx context.Context, rec ImpersonationRecord, ttl time.Duration) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal impersonation session: %w", err)
	}
	if err := s.client.Set(ctx, impersonationPrefix+rec.AdminUserID, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save impersonation session: %w", err)
	}
	return nil
}

func (s *RedisImpersonationStore) Delete(ctx context.Context, adminUserID string) error {
	return s.client.Del(ctx, impersonationPrefix+adminUserID).Err()
}
