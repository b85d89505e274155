package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const revokedTokenPrefix = "revoked_token:"

// TokenRepository keeps a denylist of logged-out token ids in Redis.
// Keys expire together with the token they revoke.
type TokenRepository struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewTokenRepository(rdb *redis.Client, logger *zap.Logger) *TokenRepository {
	return &TokenRepository{
		rdb:    rdb,
		logger: logger,
	}
}

func (r *TokenRepository) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := r.rdb.Set(ctx, revokedTokenPrefix+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (r *TokenRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	exists, err := r.rdb.Exists(ctx, revokedTokenPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token: %w", err)
	}
	return exists > 0, nil
}
