package service

import (
	"context"
	"time"

	"subtrack/internal/models"

	"github.com/google/uuid"
)

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// SubscriptionLister is the read side used by the AI operations.
type SubscriptionLister interface {
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Subscription, error)
}

type SubscriptionStore interface {
	SubscriptionLister
	Create(ctx context.Context, sub *models.Subscription) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Subscription, error)
	Update(ctx context.Context, sub *models.Subscription) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type InteractionStore interface {
	Upsert(ctx context.Context, in *models.RecommendationInteraction) error
	ListByUserID(ctx context.Context, userID uuid.UUID, action *models.InteractionAction) ([]*models.RecommendationInteraction, error)
}

// TokenRevoker keeps the logout denylist.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
