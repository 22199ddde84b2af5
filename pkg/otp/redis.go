package otp

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "otp:"

// RedisStore backs the OTP store with redis so that codes survive a
// restart and are shared across instances.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a redis-backed store with the given code TTL
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Set stores a code for the phone number with the configured TTL,
// replacing any pending one
func (s *RedisStore) Set(ctx context.Context, phone, code string) error {
	return s.client.SetEX(ctx, keyPrefix+phone, code, s.ttl).Err()
}

// Verify checks the code for the phone number. Redis evicts expired
// keys itself; a matching code is deleted so it cannot be reused.
func (s *RedisStore) Verify(ctx context.Context, phone, code string) (bool, error) {
	stored, err := s.client.Get(ctx, keyPrefix+phone).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if stored != code {
		return false, nil
	}
	if err := s.client.Del(ctx, keyPrefix+phone).Err(); err != nil {
		return false, err
	}
	return true, nil
}
