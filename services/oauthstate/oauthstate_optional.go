package oauthstate

import (
	"context"
	"time"
)

// NoopNoncesRepository is used when Redis is not configured; tokens then stay valid until expiry
type NoopNoncesRepository struct{}

func NewNoopNoncesRepository() *NoopNoncesRepository {
	return &NoopNoncesRepository{}
}

func (r *NoopNoncesRepository) Remember(ctx context.Context, nonce string, ttl time.Duration) error {
	return nil
}

func (r *NoopNoncesRepository) Consume(ctx context.Context, nonce string) (bool, error) {
	return true, nil
}
