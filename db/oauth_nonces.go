package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const oauthNonceKeyPrefix = "oauth_state_nonce:"

// nonceCommands is the subset of the redis client the nonce store needs
type nonceCommands interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	GetDel(ctx context.Context, key string) *redis.StringCmd
}

// RedisOAuthNoncesRepository makes OAuth state tokens single-use
type RedisOAuthNoncesRepository struct {
	client nonceCommands
}

func NewRedisOAuthNoncesRepository(client *redis.Client) *RedisOAuthNoncesRepository {
	return &RedisOAuthNoncesRepository{client: client}
}

// NewRedisClient parses a redis:// URL and verifies the connection
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// Remember stores the nonce until ttl passes
func (r *RedisOAuthNoncesRepository) Remember(ctx context.Context, nonce string, ttl time.Duration) error {
	if err := r.client.Set(ctx, oauthNonceKeyPrefix+nonce, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to store oauth nonce: %w", err)
	}
	return nil
}

// Consume atomically removes the nonce. It reports false for unknown, expired or already used nonces.
func (r *RedisOAuthNoncesRepository) Consume(ctx context.Context, nonce string) (bool, error) {
	err := r.client.GetDel(ctx, oauthNonceKeyPrefix+nonce).Err()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to consume oauth nonce: %w", err)
	}
	return true, nil
}
