package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("SUBTRACK_TEST_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		rdb.Close()
		t.Skipf("Failed to connect to test redis: %v", err)
	}
	return rdb
}

func TestTokenRepository_RevokeAndCheck(t *testing.T) {
	rdb := setupTestRedis(t)
	defer rdb.Close()

	repo := NewTokenRepository(rdb, zap.NewNop())
	ctx := context.Background()
	tokenID := uuid.New().String()

	revoked, err := repo.IsRevoked(ctx, tokenID)
	if err != nil || revoked {
		t.Fatalf("Expected fresh token not revoked, got %v (%v)", revoked, err)
	}

	if err := repo.Revoke(ctx, tokenID, time.Minute); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}
	revoked, err = repo.IsRevoked(ctx, tokenID)
	if err != nil || !revoked {
		t.Fatalf("Expected token revoked, got %v (%v)", revoked, err)
	}

	ttl, err := rdb.TTL(ctx, revokedTokenPrefix+tokenID).Result()
	if err != nil || ttl <= 0 || ttl > time.Minute {
		t.Errorf("Expected key to expire within a minute, got %v (%v)", ttl, err)
	}

	// an already expired token needs no entry
	expiredID := uuid.New().String()
	if err := repo.Revoke(ctx, expiredID, 0); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}
	if revoked, _ := repo.IsRevoked(ctx, expiredID); revoked {
		t.Error("Expected no entry for an expired token")
	}
}
