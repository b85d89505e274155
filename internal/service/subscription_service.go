package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"subtrack/internal/analytics"
	"subtrack/internal/dto"
	"subtrack/internal/models"
	"subtrack/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type SubscriptionService struct {
	subs       SubscriptionStore
	windowDays int
	now        func() time.Time
	logger     *zap.Logger
}

func NewSubscriptionService(subs SubscriptionStore, windowDays int, logger *zap.Logger) *SubscriptionService {
	if windowDays <= 0 {
		windowDays = analytics.DefaultWindowDays
	}
	return &SubscriptionService{
		subs:       subs,
		windowDays: windowDays,
		now:        time.Now,
		logger:     logger,
	}
}

func (s *SubscriptionService) Create(ctx context.Context, userID uuid.UUID, req *dto.SubscriptionRequest) (*dto.SubscriptionResponse, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	now := s.now().UTC()
	sub := &models.Subscription{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := applyRequest(sub, req); err != nil {
		return nil, err
	}

	if err := s.subs.Create(ctx, sub); err != nil {
		s.logger.Error("Failed to create subscription", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	s.logger.Info("Subscription created",
		zap.String("user_id", userID.String()),
		zap.String("subscription_id", sub.ID.String()),
	)
	resp := toSubscriptionResponse(sub)
	return &resp, nil
}

func (s *SubscriptionService) List(ctx context.Context, userID uuid.UUID) ([]dto.SubscriptionResponse, error) {
	subs, err := s.list(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.SubscriptionResponse, 0, len(subs))
	for _, sub := range subs {
		resp = append(resp, toSubscriptionResponse(sub))
	}
	return resp, nil
}

func (s *SubscriptionService) Get(ctx context.Context, userID, id uuid.UUID) (*dto.SubscriptionResponse, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	sub, err := s.subs.GetByID(ctx, userID, id)
	if err != nil {
		return nil, s.storeError("Failed to get subscription", err)
	}

	resp := toSubscriptionResponse(sub)
	return &resp, nil
}

func (s *SubscriptionService) Update(ctx context.Context, userID, id uuid.UUID, req *dto.SubscriptionRequest) (*dto.SubscriptionResponse, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	sub, err := s.subs.GetByID(ctx, userID, id)
	if err != nil {
		return nil, s.storeError("Failed to get subscription", err)
	}

	if err := applyRequest(sub, req); err != nil {
		return nil, err
	}
	sub.UpdatedAt = s.now().UTC()

	if err := s.subs.Update(ctx, sub); err != nil {
		return nil, s.storeError("Failed to update subscription", err)
	}

	resp := toSubscriptionResponse(sub)
	return &resp, nil
}

func (s *SubscriptionService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrUnauthorized
	}

	if err := s.subs.Delete(ctx, userID, id); err != nil {
		return s.storeError("Failed to delete subscription", err)
	}

	s.logger.Info("Subscription deleted",
		zap.String("user_id", userID.String()),
		zap.String("subscription_id", id.String()),
	)
	return nil
}

// Stats is the dashboard view: totals, renewals due inside the window and the
// category breakdown ordered by monthly cost, largest first.
func (s *SubscriptionService) Stats(ctx context.Context, userID uuid.UUID) (*dto.StatsResponse, error) {
	subs, err := s.list(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := analytics.Aggregate(subs, analytics.StartOfDay(s.now()), s.windowDays)

	categories := make([]dto.CategoryStatResponse, 0, len(summary.Categories))
	for _, name := range summary.SortedCategories() {
		stat := summary.Categories[name]
		categories = append(categories, dto.CategoryStatResponse{
			Category:    name,
			Count:       stat.Count,
			MonthlyCost: analytics.FormatMoney(stat.MonthlyCost),
		})
	}
	sort.SliceStable(categories, func(i, j int) bool {
		return summary.Categories[categories[i].Category].MonthlyCost.GreaterThan(
			summary.Categories[categories[j].Category].MonthlyCost)
	})

	return &dto.StatsResponse{
		TotalMonthly:        analytics.FormatMoney(summary.TotalMonthly),
		TotalYearly:         analytics.FormatMoney(summary.TotalYearly),
		ActiveSubscriptions: summary.Total,
		UpcomingRenewals:    summary.UpcomingRenewals,
		Categories:          categories,
	}, nil
}

// Calendar groups renewals by month in chronological order. A positive days
// keeps only renewals inside [today, today+days].
func (s *SubscriptionService) Calendar(ctx context.Context, userID uuid.UUID, days int) ([]dto.CalendarMonthResponse, error) {
	subs, err := s.list(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := analytics.StartOfDay(s.now())
	filtered := make([]*models.Subscription, 0, len(subs))
	for _, sub := range subs {
		if days > 0 && !analytics.InWindow(sub.RenewalDate, today, days) {
			continue
		}
		filtered = append(filtered, sub)
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].RenewalDate.Before(filtered[j].RenewalDate)
	})

	months := make([]dto.CalendarMonthResponse, 0)
	for _, sub := range filtered {
		label := sub.RenewalDate.Format("January 2006")
		if n := len(months); n == 0 || months[n-1].Month != label {
			months = append(months, dto.CalendarMonthResponse{Month: label})
		}
		last := &months[len(months)-1]
		last.Subscriptions = append(last.Subscriptions, toSubscriptionResponse(sub))
	}
	return months, nil
}

func (s *SubscriptionService) list(ctx context.Context, userID uuid.UUID) ([]*models.Subscription, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	subs, err := s.subs.ListByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list subscriptions", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return subs, nil
}

func (s *SubscriptionService) storeError(msg string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	s.logger.Error(msg, zap.Error(err))
	return fmt.Errorf("%w: %v", ErrInternal, err)
}

// applyRequest validates req and copies it onto sub.
func applyRequest(sub *models.Subscription, req *dto.SubscriptionRequest) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrValidation)
	}
	if err := dto.Validate(req); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return fmt.Errorf("%w: name must not be blank", ErrValidation)
	}

	cost, err := decimal.NewFromString(strings.TrimSpace(req.Cost.String()))
	if err != nil {
		return fmt.Errorf("%w: invalid cost", ErrValidation)
	}

	renewal, err := time.ParseInLocation(dateLayout, req.RenewalDate, time.UTC)
	if err != nil {
		return fmt.Errorf("%w: invalid renewal_date", ErrValidation)
	}

	sub.Name = name
	sub.Cost = cost
	sub.BillingCycle = models.BillingCycle(req.BillingCycle)
	sub.RenewalDate = renewal
	sub.Category = strings.TrimSpace(req.Category)
	if sub.Category == "" {
		sub.Category = models.CategoryOther
	}
	return nil
}

func toSubscriptionResponse(sub *models.Subscription) dto.SubscriptionResponse {
	return dto.SubscriptionResponse{
		ID:           sub.ID.String(),
		Name:         sub.Name,
		Cost:         analytics.FormatMoney(sub.Cost),
		BillingCycle: string(sub.BillingCycle),
		RenewalDate:  sub.RenewalDate.Format(dateLayout),
		Category:     analytics.CategoryOf(sub),
		MonthlyCost:  analytics.FormatMoney(analytics.Normalize(sub.Cost, sub.BillingCycle)),
		CreatedAt:    sub.CreatedAt.UTC().Format(time.RFC3339),
	}
}
