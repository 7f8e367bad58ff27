package metricstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/inboxguard/fraud-filter/internal/core"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisStore is a Redis implementation of the MetricsRepository interface.
// Snapshots are stored without expiry; each Put replaces the previous
// value for that user.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
	logger    *zap.Logger
}

// NewRedisStore creates a new Redis metrics store and verifies the
// connection
func NewRedisStore(ctx context.Context, addr, password string, db int, keyPrefix string, logger *zap.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	logger.Info("Connected to Redis", zap.String("addr", addr))

	return &RedisStore{
		client:    client,
		keyPrefix: keyPrefix,
		logger:    logger,
	}, nil
}

// key builds the namespaced key for a user. The "@" escape keeps keys
// glob-safe for redis-cli.
func (s *RedisStore) key(userID string) string {
	return s.keyPrefix + strings.ReplaceAll(userID, "@", "_at_")
}

// Get retrieves the stored snapshot for a user
func (s *RedisStore) Get(ctx context.Context, userID string) (*core.UserMetricsSnapshot, error) {
	raw, err := s.client.Get(ctx, s.key(userID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, core.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var snapshot core.UserMetricsSnapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	return &snapshot, nil
}

// Put stores a snapshot for a user, replacing any previous one
func (s *RedisStore) Put(ctx context.Context, userID string, snapshot *core.UserMetricsSnapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if err := s.client.Set(ctx, s.key(userID), string(raw), 0).Err(); err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}

	s.logger.Debug("Stored metrics snapshot", zap.String("user", userID))
	return nil
}

// Delete removes the snapshot for a user
func (s *RedisStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}
