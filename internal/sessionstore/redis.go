package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Manirmaths/Naijaprep/internal/domain/quiz"
)

const keyPrefix = "naijaprep:quiz-session:"

// RedisStore keeps sessions as JSON values so they survive restarts and
// can be shared by several server processes.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

var _ Store = (*RedisStore)(nil)

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}
	return client, nil
}

// NewRedisStore stores sessions with the given expiry. A zero ttl keeps
// them until cleared.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func key(userID string) string {
	return keyPrefix + userID
}

func (r *RedisStore) Get(ctx context.Context, userID string) (*quiz.Session, bool, error) {
	raw, err := r.client.Get(ctx, key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get quiz session: %w", err)
	}

	var s quiz.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, false, fmt.Errorf("decode quiz session: %w", err)
	}
	return &s, true, nil
}

func (r *RedisStore) Put(ctx context.Context, userID string, s *quiz.Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode quiz session: %w", err)
	}
	if err := r.client.Set(ctx, key(userID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("save quiz session: %w", err)
	}
	return nil
}

func (r *RedisStore) Clear(ctx context.Context, userID string) error {
	if err := r.client.Del(ctx, key(userID)).Err(); err != nil {
		return fmt.Errorf("clear quiz session: %w", err)
	}
	return nil
}
