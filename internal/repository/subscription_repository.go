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

var subscriptionColumns = []string{
	"id", "user_id", "name", "cost", "billing_cycle", "renewal_date", "category", "created_at", "updated_at",
}

// SubscriptionRepository reads and writes subscriptions. Every query is
// scoped by user_id so rows of other users are never visible.
type SubscriptionRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewSubscriptionRepository(db *pgxpool.Pool, logger *zap.Logger) *SubscriptionRepository {
	return &SubscriptionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *SubscriptionRepository) Create(ctx context.Context, sub *models.Subscription) error {
	query := squirrel.Insert("subscriptions").
		Columns(subscriptionColumns...).
		Values(sub.ID, sub.UserID, sub.Name, sub.Cost, sub.BillingCycle, sub.RenewalDate, sub.Category, sub.CreatedAt, sub.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to create subscription: %w", translateError(err))
	}
	return nil
}

func (r *SubscriptionRepository) CreateBatch(ctx context.Context, subs []*models.Subscription) error {
	if len(subs) == 0 {
		return nil
	}

	builder := squirrel.Insert("subscriptions").
		Columns(subscriptionColumns...).
		PlaceholderFormat(squirrel.Dollar)

	for _, sub := range subs {
		builder = builder.Values(sub.ID, sub.UserID, sub.Name, sub.Cost, sub.BillingCycle, sub.RenewalDate, sub.Category, sub.CreatedAt, sub.UpdatedAt)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to create subscriptions: %w", translateError(err))
	}
	return nil
}

// GetByID returns ErrNotFound when the row is missing or owned by another user.
func (r *SubscriptionRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Subscription, error) {
	query := squirrel.Select(subscriptionColumns...).
		From("subscriptions").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var sub models.Subscription
	if err := scanSubscription(r.db.QueryRow(ctx, sql, args...), &sub); err != nil {
		return nil, translateError(err)
	}
	return &sub, nil
}

// ListByUserID returns the user's subscriptions ordered by renewal date.
func (r *SubscriptionRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Subscription, error) {
	query := squirrel.Select(subscriptionColumns...).
		From("subscriptions").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("renewal_date ASC", "name ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	defer rows.Close()

	subs := make([]*models.Subscription, 0)
	for rows.Next() {
		var sub models.Subscription
		if err := scanSubscription(rows, &sub); err != nil {
			return nil, err
		}
		subs = append(subs, &sub)
	}

	return subs, rows.Err()
}

func (r *SubscriptionRepository) Update(ctx context.Context, sub *models.Subscription) error {
	query := squirrel.Update("subscriptions").
		Set("name", sub.Name).
		Set("cost", sub.Cost).
		Set("billing_cycle", sub.BillingCycle).
		Set("renewal_date", sub.RenewalDate).
		Set("category", sub.Category).
		Set("updated_at", sub.UpdatedAt).
		Where(squirrel.Eq{"id": sub.ID, "user_id": sub.UserID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SubscriptionRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := squirrel.Delete("subscriptions").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubscription(row rowScanner, sub *models.Subscription) error {
	return row.Scan(
		&sub.ID, &sub.UserID, &sub.Name, &sub.Cost, &sub.BillingCycle, &sub.RenewalDate, &sub.Category, &sub.CreatedAt, &sub.UpdatedAt,
	)
}
