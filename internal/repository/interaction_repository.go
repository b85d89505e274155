package repository

import (
	"context"
	"fmt"

	"subtrack/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var interactionColumns = []string{
	"id", "user_id", "recommendation_name", "action", "category", "estimated_cost", "created_at", "updated_at",
}

type InteractionRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewInteractionRepository(db *pgxpool.Pool, logger *zap.Logger) *InteractionRepository {
	return &InteractionRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert stores the interaction, replacing any earlier one for the same
// (user_id, recommendation_name). On conflict the original id and created_at
// are kept and written back into in.
func (r *InteractionRepository) Upsert(ctx context.Context, in *models.RecommendationInteraction) error {
	query := squirrel.Insert("recommendation_interactions").
		Columns(interactionColumns...).
		Values(in.ID, in.UserID, in.RecommendationName, in.Action, in.Category, in.EstimatedCost, in.CreatedAt, in.UpdatedAt).
		Suffix(`ON CONFLICT (user_id, recommendation_name) DO UPDATE SET
			action = EXCLUDED.action,
			category = EXCLUDED.category,
			estimated_cost = EXCLUDED.estimated_cost,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&in.ID, &in.CreatedAt); err != nil {
		return fmt.Errorf("failed to upsert interaction: %w", err)
	}
	return nil
}

// ListByUserID lists the user's interactions, newest first. A nil action lists all.
func (r *InteractionRepository) ListByUserID(ctx context.Context, userID uuid.UUID, action *models.InteractionAction) ([]*models.RecommendationInteraction, error) {
	query := squirrel.Select(interactionColumns...).
		From("recommendation_interactions").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("updated_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if action != nil {
		query = query.Where(squirrel.Eq{"action": *action})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list interactions: %w", err)
	}
	defer rows.Close()

	interactions := make([]*models.RecommendationInteraction, 0)
	for rows.Next() {
		var in models.RecommendationInteraction
		if err := rows.Scan(
			&in.ID, &in.UserID, &in.RecommendationName, &in.Action, &in.Category, &in.EstimatedCost, &in.CreatedAt, &in.UpdatedAt,
		); err != nil {
			return nil, err
		}
		interactions = append(interactions, &in)
	}

	return interactions, rows.Err()
}
