package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "recovery:token:"

// RedisStore хранит токены в Redis с TTL
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore создает хранилище поверх клиента Redis. ttl=0 - без истечения
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) key(sessionID string) string {
	return keyPrefix + sessionID
}

// Save сохраняет токен сессии
func (s *RedisStore) Save(ctx context.Context, sessionID, token string) error {
	if err := s.client.Set(ctx, s.key(sessionID), token, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Save - session=%s: %v", ErrStorage, sessionID, err)
	}
	return nil
}

// Get возвращает токен сессии и продлевает его TTL
func (s *RedisStore) Get(ctx context.Context, sessionID string) (string, error) {
	var (
		token string
		err   error
	)
	if s.ttl > 0 {
		token, err = s.client.GetEx(ctx, s.key(sessionID), s.ttl).Result()
	} else {
		token, err = s.client.Get(ctx, s.key(sessionID)).Result()
	}
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: Get - session=%s: %v", ErrStorage, sessionID, err)
	}
	return token, nil
}

// Delete удаляет токен сессии
func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("%w: Delete - session=%s: %v", ErrStorage, sessionID, err)
	}
	return nil
}
