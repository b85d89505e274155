package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"subtrack/internal/models"

	"github.com/google/uuid"
)

func TestLoadFixture_Demo(t *testing.T) {
	fixture, err := loadFixture(filepath.Join("fixtures", "demo.json"))
	if err != nil {
		t.Fatalf("loadFixture failed: %v", err)
	}

	userID := uuid.New()
	now := time.Date(2026, 5, 10, 18, 0, 0, 0, time.UTC)
	subs, err := buildSubscriptions(fixture.Subscriptions, userID, now)
	if err != nil {
		t.Fatalf("buildSubscriptions failed: %v", err)
	}
	if len(subs) != len(fixture.Subscriptions) {
		t.Fatalf("Expected %d subscriptions, got %d", len(fixture.Subscriptions), len(subs))
	}
	for _, sub := range subs {
		if sub.UserID != userID {
			t.Errorf("Subscription %s has wrong owner", sub.Name)
		}
		if sub.RenewalDate.Before(time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("Subscription %s renews in the past: %s", sub.Name, sub.RenewalDate)
		}
	}
}

func TestBuildSubscriptions_Rejects(t *testing.T) {
	rows := []FixtureSubscription{{Name: "Daily", Cost: "1", BillingCycle: "daily"}}
	if _, err := buildSubscriptions(rows, uuid.New(), time.Now()); err == nil {
		t.Error("Expected unknown billing cycle to be rejected")
	}

	rows = []FixtureSubscription{{Name: "Negative", Cost: "-5", BillingCycle: "monthly"}}
	if _, err := buildSubscriptions(rows, uuid.New(), time.Now()); err == nil {
		t.Error("Expected negative cost to be rejected")
	}

	rows = []FixtureSubscription{{Name: "Blank", Cost: "5", BillingCycle: "Monthly"}}
	subs, err := buildSubscriptions(rows, uuid.New(), time.Now())
	if err != nil {
		t.Fatalf("buildSubscriptions failed: %v", err)
	}
	if subs[0].Category != models.CategoryOther || subs[0].BillingCycle != models.BillingCycleMonthly {
		t.Errorf("Unexpected subscription: %+v", subs[0])
	}
}

func TestCache_RoundTrip(t *testing.T) {
	cacheFile := filepath.Join(t.TempDir(), "cache.json")

	cache, err := loadCache(cacheFile)
	if err != nil {
		t.Fatalf("loadCache on missing file failed: %v", err)
	}
	cache.ProcessedFiles["fixtures/demo.json"] = ProcessedFile{FilePath: "fixtures/demo.json", FileHash: "abc"}
	if err := saveCache(cacheFile, cache); err != nil {
		t.Fatalf("saveCache failed: %v", err)
	}

	loaded, err := loadCache(cacheFile)
	if err != nil {
		t.Fatalf("loadCache failed: %v", err)
	}
	if loaded.ProcessedFiles["fixtures/demo.json"].FileHash != "abc" {
		t.Errorf("Unexpected cache contents: %+v", loaded)
	}

	if err := os.WriteFile(cacheFile, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadCache(cacheFile); err == nil {
		t.Error("Expected error for corrupt cache")
	}
}
