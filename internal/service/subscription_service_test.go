package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"subtrack/internal/dto"
	"subtrack/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newTestSubscriptionService(store SubscriptionStore) *SubscriptionService {
	svc := NewSubscriptionService(store, 30, zap.NewNop())
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func validRequest() *dto.SubscriptionRequest {
	return &dto.SubscriptionRequest{
		Name:         "Netflix",
		Cost:         json.Number("15.49"),
		BillingCycle: "monthly",
		RenewalDate:  "2026-03-10",
		Category:     "Entertainment",
	}
}

func TestSubscriptionService_CreateAndGet(t *testing.T) {
	store := newMockSubscriptionStore()
	svc := newTestSubscriptionService(store)
	userID := uuid.New()

	req := validRequest()
	req.Category = "  "
	req.BillingCycle = "quarterly"
	req.Cost = json.Number("45")

	created, err := svc.Create(context.Background(), userID, req)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Category != models.CategoryOther {
		t.Errorf("Expected default category Other, got %s", created.Category)
	}
	if created.Cost != "45.00" || created.MonthlyCost != "15.00" {
		t.Errorf("Unexpected costs: %s / %s", created.Cost, created.MonthlyCost)
	}
	if created.RenewalDate != "2026-03-10" {
		t.Errorf("Unexpected renewal date: %s", created.RenewalDate)
	}

	id := uuid.MustParse(created.ID)
	if _, err := svc.Get(context.Background(), userID, id); err != nil {
		t.Errorf("Get failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), uuid.New(), id); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for another user, got %v", err)
	}
}

func TestSubscriptionService_CreateValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*dto.SubscriptionRequest)
	}{
		{"negative cost", func(r *dto.SubscriptionRequest) { r.Cost = json.Number("-1") }},
		{"sub-cent cost", func(r *dto.SubscriptionRequest) { r.Cost = json.Number("9.999") }},
		{"unknown cycle", func(r *dto.SubscriptionRequest) { r.BillingCycle = "daily" }},
		{"bad date", func(r *dto.SubscriptionRequest) { r.RenewalDate = "10/03/2026" }},
		{"missing name", func(r *dto.SubscriptionRequest) { r.Name = "" }},
		{"blank name", func(r *dto.SubscriptionRequest) { r.Name = "   " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMockSubscriptionStore()
			req := validRequest()
			tt.mutate(req)

			_, err := newTestSubscriptionService(store).Create(context.Background(), uuid.New(), req)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("Expected ErrValidation, got %v", err)
			}
			if len(store.subs) != 0 {
				t.Error("Expected nothing to be stored")
			}
		})
	}
}

func TestSubscriptionService_UpdateAndDelete(t *testing.T) {
	userID := uuid.New()
	sub := newSub(userID, "Netflix", "15.49", models.BillingCycleMonthly, "Entertainment", fixedNow)
	store := newMockSubscriptionStore(sub)
	svc := newTestSubscriptionService(store)

	req := validRequest()
	req.Cost = json.Number("120")
	req.BillingCycle = "yearly"

	updated, err := svc.Update(context.Background(), userID, sub.ID, req)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.MonthlyCost != "10.00" {
		t.Errorf("Expected monthly cost 10.00, got %s", updated.MonthlyCost)
	}

	if _, err := svc.Update(context.Background(), uuid.New(), sub.ID, req); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for another user, got %v", err)
	}
	if err := svc.Delete(context.Background(), uuid.New(), sub.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for another user, got %v", err)
	}
	if err := svc.Delete(context.Background(), userID, sub.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := svc.Delete(context.Background(), userID, sub.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
}

func TestSubscriptionService_Stats(t *testing.T) {
	userID := uuid.New()
	store := newMockSubscriptionStore(
		newSub(userID, "Spotify", "9.99", models.BillingCycleMonthly, "Entertainment", fixedNow.AddDate(0, 0, 5)),
		newSub(userID, "Notion", "99", models.BillingCycleYearly, "Productivity", fixedNow.AddDate(0, 2, 0)),
		newSub(userID, "Gym", "10", models.BillingCycleWeekly, "Fitness", fixedNow.AddDate(0, 0, -3)),
	)

	stats, err := newTestSubscriptionService(store).Stats(context.Background(), userID)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalMonthly != "58.24" || stats.TotalYearly != "698.88" {
		t.Errorf("Unexpected totals: %s / %s", stats.TotalMonthly, stats.TotalYearly)
	}
	if stats.ActiveSubscriptions != 3 || stats.UpcomingRenewals != 1 {
		t.Errorf("Unexpected counts: %+v", stats)
	}
	if len(stats.Categories) != 3 || stats.Categories[0].Category != "Fitness" {
		t.Errorf("Expected categories by monthly cost, got %+v", stats.Categories)
	}
}

func TestSubscriptionService_Calendar(t *testing.T) {
	userID := uuid.New()
	store := newMockSubscriptionStore(
		newSub(userID, "Notion", "99", models.BillingCycleYearly, "Productivity", time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)),
		newSub(userID, "Spotify", "9.99", models.BillingCycleMonthly, "Entertainment", time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)),
		newSub(userID, "Hulu", "7.99", models.BillingCycleMonthly, "Entertainment", time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)),
		newSub(userID, "Adobe", "54.99", models.BillingCycleMonthly, "Software", time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)),
	)
	svc := newTestSubscriptionService(store)

	months, err := svc.Calendar(context.Background(), userID, 0)
	if err != nil {
		t.Fatalf("Calendar failed: %v", err)
	}
	if len(months) != 3 {
		t.Fatalf("Expected 3 months, got %+v", months)
	}
	if months[0].Month != "March 2026" || len(months[0].Subscriptions) != 2 || months[0].Subscriptions[0].Name != "Hulu" {
		t.Errorf("Unexpected first month: %+v", months[0])
	}
	if months[2].Month != "September 2026" {
		t.Errorf("Expected September last, got %s", months[2].Month)
	}

	windowed, err := svc.Calendar(context.Background(), userID, 35)
	if err != nil {
		t.Fatalf("Calendar failed: %v", err)
	}
	if len(windowed) != 2 || windowed[1].Month != "April 2026" {
		t.Errorf("Expected March and April only, got %+v", windowed)
	}
}
