package models

import (
	"time"

	"github.com/google/uuid"
)

type InteractionAction string

const (
	InteractionSaved     InteractionAction = "saved"
	InteractionDismissed InteractionAction = "dismissed"
)

// RecommendationInteraction records what a user did with an AI recommendation.
// Recommendations are not stored, so the row references them by name.
type RecommendationInteraction struct {
	ID                 uuid.UUID         `db:"id"`
	UserID             uuid.UUID         `db:"user_id"`
	RecommendationName string            `db:"recommendation_name"`
	Action             InteractionAction `db:"action"`
	Category           string            `db:"category"`
	EstimatedCost      string            `db:"estimated_cost"`
	CreatedAt          time.Time         `db:"created_at"`
	UpdatedAt          time.Time         `db:"updated_at"`
}
