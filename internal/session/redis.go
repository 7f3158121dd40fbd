package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/insight-hunter/insight-hunter/internal/onboarding"
)

// RedisStore persists sessions in Redis.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis using a redis:// URL and verifies the
// connection with a ping.
func NewRedisStore(ctx context.Context, redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisStore{client: client}, nil
}

// Close releases the underlying Redis connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func authKey(sessionID string) string {
	return "session:auth:" + sessionID
}

func progressKey(sessionID string) string {
	return "session:progress:" + sessionID
}

// IsAuthenticated reads the auth flag; a missing key means false.
func (s *RedisStore) IsAuthenticated(ctx context.Context, sessionID string) (bool, error) {
	value, err := s.client.Get(ctx, authKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("get auth flag: %w", err)
	}
	return value == "1", nil
}

// SetAuthenticated writes the auth flag with the auth TTL.
func (s *RedisStore) SetAuthenticated(ctx context.Context, sessionID string, authenticated bool) error {
	value := "0"
	if authenticated {
		value = "1"
	}
	if err := s.client.Set(ctx, authKey(sessionID), value, AuthTTL).Err(); err != nil {
		return fmt.Errorf("set auth flag: %w", err)
	}
	return nil
}

// Progress reads onboarding progress; a missing key means empty progress.
func (s *RedisStore) Progress(ctx context.Context, sessionID string) (onboarding.Progress, error) {
	raw, err := s.client.Get(ctx, progressKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return onboarding.NewProgress(), nil
		}
		return onboarding.Progress{}, fmt.Errorf("get progress: %w", err)
	}
	var progress onboarding.Progress
	if err := json.Unmarshal(raw, &progress); err != nil {
		return onboarding.Progress{}, fmt.Errorf("decode progress: %w", err)
	}
	if progress.Completed == nil {
		progress.Completed = map[string]bool{}
	}
	return progress, nil
}

// SetProgress writes onboarding progress with the progress TTL.
func (s *RedisStore) SetProgress(ctx context.Context, sessionID string, progress onboarding.Progress) error {
	raw, err := json.Marshal(progress)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	if err := s.client.Set(ctx, progressKey(sessionID), raw, ProgressTTL).Err(); err != nil {
		return fmt.Errorf("set progress: %w", err)
	}
	return nil
}

// Clear removes the auth flag and progress for a session.
func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, authKey(sessionID), progressKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// IncrementWithTTL bumps a counter, starting its TTL on the first bump.
func (s *RedisStore) IncrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("increment %s: %w", key, err)
	}
	if count == 1 {
		if err := s.client.Expire(ctx, key, ttl).Err(); err != nil {
			return 0, fmt.Errorf("expire %s: %w", key, err)
		}
	}
	return count, nil
}
