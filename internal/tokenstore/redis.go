package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"

	"blogctl/internal/blog"
)

// RedisStore shares one token between several console hosts. A JWT is
// stored with a TTL matching its exp claim so Redis drops it when it can no
// longer be used.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore stores the token under prefix+"auth_token".
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, key: prefix + blog.TokenKey}
}

// Key returns the Redis key the token lives under.
func (s *RedisStore) Key() string { return s.key }

func (s *RedisStore) Load(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading token from redis: %w", err)
	}
	return token, nil
}

func (s *RedisStore) Save(ctx context.Context, token string) error {
	if err := s.client.Set(ctx, s.key, token, ttlFor(token, time.Now())).Err(); err != nil {
		return fmt.Errorf("writing token to redis: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("deleting token from redis: %w", err)
	}
	return nil
}

// Close releases the Redis connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// ttlFor returns the remaining lifetime of a JWT, or 0 (no expiry) for
// opaque tokens and JWTs without exp.
func ttlFor(token string, now time.Time) time.Duration {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil || claims.ExpiresAt == nil {
		return 0
	}
	ttl := claims.ExpiresAt.Sub(now)
	if ttl <= 0 {
		// Redis rejects a non-positive expiry; keep it just long enough to be read and discarded.
		return time.Second
	}
	return ttl
}

var _ blog.TokenStore = (*RedisStore)(nil)
