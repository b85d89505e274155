package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"subtrack/internal/dto"
	"subtrack/pkg/auth"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newTestAuthService() (*AuthService, *mockTokenRevoker, *auth.JWTManager) {
	jwtManager := auth.NewJWTManager("test-secret", 15*time.Minute, 24*time.Hour)
	tokens := newMockTokenRevoker()
	return NewAuthService(newMockUserStore(), tokens, jwtManager, zap.NewNop()), tokens, jwtManager
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, &dto.RegisterRequest{Username: "ann", Email: "Ann@Example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if registered.User.Email != "ann@example.com" || registered.AccessToken == "" || registered.RefreshToken == "" {
		t.Errorf("Unexpected register response: %+v", registered)
	}

	if _, err := svc.Register(ctx, &dto.RegisterRequest{Username: "ann2", Email: "ann@example.com", Password: "secret2"}); !errors.Is(err, ErrUserExists) {
		t.Errorf("Expected ErrUserExists, got %v", err)
	}

	if _, err := svc.Login(ctx, &dto.LoginRequest{Email: "ann@example.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "secret1"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for unknown user, got %v", err)
	}

	loggedIn, err := svc.Login(ctx, &dto.LoginRequest{Email: "ann@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	me, err := svc.Me(ctx, uuid.MustParse(loggedIn.User.ID))
	if err != nil {
		t.Fatalf("Me failed: %v", err)
	}
	if me.Username != "ann" {
		t.Errorf("Expected username ann, got %s", me.Username)
	}
}

func TestAuthService_RefreshIsSingleUse(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, &dto.RegisterRequest{Username: "bob", Email: "bob@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, err := svc.RefreshToken(ctx, registered.AccessToken); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected access token to be rejected for refresh, got %v", err)
	}

	refreshed, err := svc.RefreshToken(ctx, registered.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken failed: %v", err)
	}
	if refreshed.RefreshToken == registered.RefreshToken {
		t.Error("Expected a new refresh token")
	}

	if _, err := svc.RefreshToken(ctx, registered.RefreshToken); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected reused refresh token to be rejected, got %v", err)
	}
}

func TestAuthService_Logout(t *testing.T) {
	svc, tokens, jwtManager := newTestAuthService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, &dto.RegisterRequest{Username: "cy", Email: "cy@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	claims, err := jwtManager.ValidateToken(registered.AccessToken)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}

	if err := svc.Logout(ctx, claims, registered.RefreshToken); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	if ttl, ok := tokens.revoked[claims.ID]; !ok || ttl <= 0 || ttl > 15*time.Minute {
		t.Errorf("Expected access token revoked with its remaining lifetime, got %v (%v)", ttl, ok)
	}
	if _, err := svc.RefreshToken(ctx, registered.RefreshToken); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected refresh after logout to fail, got %v", err)
	}

	if err := svc.Logout(ctx, nil, ""); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized, got %v", err)
	}
}
