package main

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"subtrack/internal/analytics"
	"subtrack/internal/models"
	"subtrack/internal/repository"
	"subtrack/pkg/auth"
	"subtrack/pkg/config"
	"subtrack/pkg/logger"
	"subtrack/pkg/postgres"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	seedDir := filepath.Join("cmd", "seed")
	fixturePath := flag.String("fixture", filepath.Join(seedDir, "fixtures", "demo.json"), "path to the seed fixture")
	cacheFile := flag.String("cache", filepath.Join(seedDir, ".seed_cache.json"), "path to the seed cache")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db, appLogger); err != nil {
		appLogger.Fatal("Failed to migrate database", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db, appLogger)
	subRepo := repository.NewSubscriptionRepository(db, appLogger)

	appLogger.Info("Starting database seeding...")
	if err := seedFromFixture(ctx, *fixturePath, *cacheFile, userRepo, subRepo, appLogger); err != nil {
		appLogger.Fatal("Failed to seed database", zap.Error(err))
	}
	appLogger.Info("Database seeding completed successfully!")
}

// Fixture is the seed file: one demo user and their subscriptions.
// Renewal dates are offsets from the day the seed runs so the demo data
// always has upcoming renewals.
type Fixture struct {
	User          FixtureUser           `json:"user"`
	Subscriptions []FixtureSubscription `json:"subscriptions"`
}

type FixtureUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type FixtureSubscription struct {
	Name         string `json:"name"`
	Cost         string `json:"cost"`
	BillingCycle string `json:"billing_cycle"`
	RenewsInDays int    `json:"renews_in_days"`
	Category     string `json:"category"`
}

// ProcessedFile represents a fixture already loaded into the database
type ProcessedFile struct {
	FilePath    string    `json:"file_path"`
	FileHash    string    `json:"file_hash"`
	ProcessedAt time.Time `json:"processed_at"`
}

// CacheData stores information about loaded fixtures
type CacheData struct {
	ProcessedFiles map[string]ProcessedFile `json:"processed_files"` // key: file path
}

func loadCache(cacheFile string) (*CacheData, error) {
	cache := &CacheData{
		ProcessedFiles: make(map[string]ProcessedFile),
	}

	if _, err := os.Stat(cacheFile); os.IsNotExist(err) {
		return cache, nil
	}

	data, err := os.ReadFile(cacheFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}

	if len(data) == 0 {
		return cache, nil
	}

	if err := json.Unmarshal(data, cache); err != nil {
		return nil, fmt.Errorf("failed to parse cache file: %w", err)
	}
	if cache.ProcessedFiles == nil {
		cache.ProcessedFiles = make(map[string]ProcessedFile)
	}

	return cache, nil
}

func saveCache(cacheFile string, cache *CacheData) error {
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}

	if err := os.WriteFile(cacheFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	return nil
}

// calculateFileHash calculates MD5 hash of a file
func calculateFileHash(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", fmt.Errorf("failed to calculate hash: %w", err)
	}

	return fmt.Sprintf("%x", hash.Sum(nil)), nil
}

func loadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}

	var fixture Fixture
	if err := json.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	if fixture.User.Email == "" || fixture.User.Password == "" {
		return nil, errors.New("fixture user needs an email and a password")
	}
	return &fixture, nil
}

// buildSubscriptions converts fixture rows into subscriptions owned by userID.
// Rows with an unknown billing cycle or a bad cost are rejected.
func buildSubscriptions(rows []FixtureSubscription, userID uuid.UUID, now time.Time) ([]*models.Subscription, error) {
	today := analytics.StartOfDay(now)
	subs := make([]*models.Subscription, 0, len(rows))

	for i, row := range rows {
		cost, err := decimal.NewFromString(row.Cost)
		if err != nil || cost.IsNegative() || !cost.Equal(cost.Round(2)) {
			return nil, fmt.Errorf("subscription %d (%s): invalid cost %q", i, row.Name, row.Cost)
		}
		cycle := models.BillingCycle(strings.ToLower(row.BillingCycle))
		if !cycle.Valid() {
			return nil, fmt.Errorf("subscription %d (%s): unknown billing cycle %q", i, row.Name, row.BillingCycle)
		}
		category := strings.TrimSpace(row.Category)
		if category == "" {
			category = models.CategoryOther
		}

		subs = append(subs, &models.Subscription{
			ID:           uuid.New(),
			UserID:       userID,
			Name:         row.Name,
			Cost:         cost,
			BillingCycle: cycle,
			RenewalDate:  today.AddDate(0, 0, row.RenewsInDays),
			Category:     category,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	return subs, nil
}

func seedFromFixture(
	ctx context.Context,
	fixturePath string,
	cacheFile string,
	userRepo *repository.UserRepository,
	subRepo *repository.SubscriptionRepository,
	logger *zap.Logger,
) error {
	now := time.Now().UTC()

	cache, err := loadCache(cacheFile)
	if err != nil {
		logger.Warn("Failed to load cache, will load the fixture", zap.Error(err))
		cache = &CacheData{ProcessedFiles: make(map[string]ProcessedFile)}
	}

	fileHash, err := calculateFileHash(fixturePath)
	if err != nil {
		return err
	}

	if cached, exists := cache.ProcessedFiles[fixturePath]; exists && cached.FileHash == fileHash {
		logger.Info("Fixture already loaded, skipping",
			zap.String("path", fixturePath),
			zap.Time("processed_at", cached.ProcessedAt),
		)
		return nil
	}

	fixture, err := loadFixture(fixturePath)
	if err != nil {
		return err
	}

	user, err := userRepo.GetByEmail(ctx, strings.ToLower(fixture.User.Email))
	switch {
	case errors.Is(err, repository.ErrNotFound):
		hashed, err := auth.HashPassword(fixture.User.Password)
		if err != nil {
			return err
		}
		user = &models.User{
			ID:           uuid.New(),
			Username:     fixture.User.Username,
			Email:        strings.ToLower(fixture.User.Email),
			PasswordHash: hashed,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return err
		}
		logger.Info("Created demo user", zap.String("email", user.Email))
	case err != nil:
		return err
	default:
		logger.Info("Demo user exists, adding subscriptions", zap.String("email", user.Email))
	}

	subs, err := buildSubscriptions(fixture.Subscriptions, user.ID, now)
	if err != nil {
		return err
	}
	if err := subRepo.CreateBatch(ctx, subs); err != nil {
		return err
	}
	logger.Info("Seeded subscriptions", zap.Int("count", len(subs)))

	cache.ProcessedFiles[fixturePath] = ProcessedFile{
		FilePath:    fixturePath,
		FileHash:    fileHash,
		ProcessedAt: now,
	}
	if err := saveCache(cacheFile, cache); err != nil {
		logger.Warn("Failed to save cache", zap.Error(err))
	}

	return nil
}
