package session

import (
	"context"
	"encoding/json"
	"fmt"

	"bookctl/internal/config"
	"bookctl/internal/models"

	"github.com/redis/go-redis/v9"
)

const sessionKey = "bookctl:session"

// RedisStore keeps the session in Redis. One SET per save keeps the
// write atomic; no TTL is applied, matching the persistent-storage
// semantics of the file backend.
type RedisStore struct {
	client *redis.Client
}

// NewRedisClient creates a Redis client from config.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Save(ctx context.Context, session models.Session) error {
	if s.client == nil {
		return fmt.Errorf("redis client is nil")
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := s.client.Set(ctx, sessionKey, data, 0).Err(); err != nil {
		return fmt.Errorf("set session in redis: %w", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context) (models.Session, bool, error) {
	if s.client == nil {
		return models.Session{}, false, fmt.Errorf("redis client is nil")
	}

	val, err := s.client.Get(ctx, sessionKey).Result()
	if err == redis.Nil {
		return models.Session{}, false, nil
	}
	if err != nil {
		return models.Session{}, false, fmt.Errorf("get session from redis: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return models.Session{}, false, fmt.Errorf("unmarshal session: %w", err)
	}
	if !session.Valid() {
		return models.Session{}, false, nil
	}

	return session, true, nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if s.client == nil {
		return fmt.Errorf("redis client is nil")
	}

	if err := s.client.Del(ctx, sessionKey).Err(); err != nil {
		return fmt.Errorf("delete session from redis: %w", err)
	}
	return nil
}

// Ping checks the Redis connection.
func Ping(ctx context.Context, client *redis.Client) error {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	return nil
}
