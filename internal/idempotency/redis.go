// Package idempotency guards payment references in Redis so a reference is
// charged at most once.
package idempotency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Reference states stored in Redis.
const (
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"

	// InProgressExpiry outlives a slow gateway round trip plus the webhook
	// delay, and frees the reference if the service crashes mid-payment.
	InProgressExpiry = 15 * time.Minute
	CompletedExpiry  = 24 * time.Hour

	keyPrefix = "contipay:ref:"
)

// RedisStore implements domain.IdempotencyStore.
type RedisStore struct {
	client     redis.Cmdable
	inProgress time.Duration
	completed  time.Duration
}

// Option configures a RedisStore.
type Option func(*RedisStore)

// WithExpiry overrides the in-progress and completed TTLs.
func WithExpiry(inProgress, completed time.Duration) Option {
	return func(s *RedisStore) {
		s.inProgress = inProgress
		s.completed = completed
	}
}

// NewRedisStore creates a store on an existing client.
func NewRedisStore(client redis.Cmdable, opts ...Option) *RedisStore {
	s := &RedisStore{
		client:     client,
		inProgress: InProgressExpiry,
		completed:  CompletedExpiry,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewClient opens a Redis client.
func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func buildKey(reference string) string {
	return keyPrefix + reference
}

// Acquire sets the reference IN_PROGRESS with SET NX. It returns false when
// the key already exists, whether in progress or completed.
func (s *RedisStore) Acquire(ctx context.Context, reference string) (bool, error) {
	set, err := s.client.SetNX(ctx, buildKey(reference), StatusInProgress, s.inProgress).Result()
	if err != nil {
		return false, fmt.Errorf("redis SETNX error: %w", err)
	}
	return set, nil
}

// releaseScript deletes KEYS[1] only while it still holds ARGV[1].
// Returns 1 if deleted, 0 if the key is gone or was completed meanwhile.
var releaseScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
    return redis.call('DEL', KEYS[1])
end
return 0
`)

// Release deletes an IN_PROGRESS reference. A completed reference is kept,
// even when the completion races the release.
func (s *RedisStore) Release(ctx context.Context, reference string) error {
	err := releaseScript.Run(ctx, s.client, []string{buildKey(reference)}, StatusInProgress).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("redis release error: %w", err)
	}
	return nil
}

// Complete sets the reference COMPLETED with the long expiry.
func (s *RedisStore) Complete(ctx context.Context, reference string) error {
	if err := s.client.Set(ctx, buildKey(reference), StatusCompleted, s.completed).Err(); err != nil {
		return fmt.Errorf("redis SET error: %w", err)
	}
	return nil
}

// Status returns the stored state of reference, or "" when unknown.
func (s *RedisStore) Status(ctx context.Context, reference string) (string, error) {
	status, err := s.client.Get(ctx, buildKey(reference)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis GET error: %w", err)
	}
	return status, nil
}
