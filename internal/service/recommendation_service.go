package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"subtrack/internal/analytics"
	"subtrack/internal/dto"
	"subtrack/internal/llm"
	"subtrack/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// NoSubscriptionsRecommendation is the message sent back instead of calling
// the model when the user has no subscriptions.
const NoSubscriptionsRecommendation = "Add some subscriptions first to get personalized recommendations!"

const recommendationSystemPrompt = `You recommend subscription services. Given the services a user already pays for, suggest others that complement them.

Reply with a JSON array and nothing else: no prose and no markdown. Every element must be an object with these fields:
- name: string, the service name
- category: string, e.g. Entertainment, Productivity, Health, Education, Software, Music, News, Cloud Storage
- description: string, one or two sentences on why it fits next to what the user already has
- estimated_cost: string, e.g. "$9.99/month"
- relevance: string, one of "high", "medium", "low"

Return between 4 and 6 recommendations.`

const (
	RelevanceHigh   = "high"
	RelevanceMedium = "medium"
	RelevanceLow    = "low"
)

type RecommendationService struct {
	subs   SubscriptionLister
	client llm.ChatClient
	logger *zap.Logger
}

func NewRecommendationService(subs SubscriptionLister, client llm.ChatClient, logger *zap.Logger) *RecommendationService {
	return &RecommendationService{
		subs:   subs,
		client: client,
		logger: logger,
	}
}

// Recommend asks the model for services that complement the user's current
// subscriptions. An unparsable model reply yields an empty list, not an error.
func (s *RecommendationService) Recommend(ctx context.Context, userID uuid.UUID) (*dto.RecommendationsResponse, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	subs, err := s.subs.ListByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to fetch subscriptions", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if len(subs) == 0 {
		return &dto.RecommendationsResponse{
			Recommendations: []dto.Recommendation{},
			Categories:      []string{},
			Message:         NoSubscriptionsRecommendation,
		}, nil
	}

	categories := DistinctCategories(subs)

	content, err := s.client.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: recommendationSystemPrompt},
		{Role: llm.RoleUser, Content: BuildRecommendationPrompt(subs, categories)},
	})
	if err != nil {
		s.logger.Error("Recommendation generation failed", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, upstreamError(err)
	}

	recommendations, err := ParseRecommendations(content)
	if err != nil {
		s.logger.Warn("Discarding unparsable recommendations",
			zap.String("user_id", userID.String()),
			zap.Int("content_length", len(content)),
			zap.Error(err),
		)
		recommendations = []dto.Recommendation{}
	}

	s.logger.Info("Recommendations generated",
		zap.String("user_id", userID.String()),
		zap.Int("count", len(recommendations)),
	)

	return &dto.RecommendationsResponse{
		Recommendations:      recommendations,
		CurrentSubscriptions: len(subs),
		Categories:           categories,
	}, nil
}

// DistinctCategories lists each category once, in order of first appearance.
func DistinctCategories(subs []*models.Subscription) []string {
	seen := make(map[string]struct{}, len(subs))
	categories := make([]string, 0, len(subs))
	for _, sub := range subs {
		if sub == nil {
			continue
		}
		category := analytics.CategoryOf(sub)
		if _, ok := seen[category]; ok {
			continue
		}
		seen[category] = struct{}{}
		categories = append(categories, category)
	}
	return categories
}

func BuildRecommendationPrompt(subs []*models.Subscription, categories []string) string {
	var b strings.Builder

	b.WriteString("These are the subscriptions I pay for. Recommend similar or complementary services I might need.\n\n")
	b.WriteString("Current Subscriptions:\n")
	for _, sub := range subs {
		if sub == nil {
			continue
		}
		fmt.Fprintf(&b, "- %s (%s): $%s %s\n",
			sub.Name,
			analytics.CategoryOf(sub),
			analytics.FormatMoney(sub.Cost),
			sub.BillingCycle,
		)
	}
	fmt.Fprintf(&b, "\nCategories I use: %s\n", strings.Join(categories, ", "))
	b.WriteString("\nMake the recommendations personal to this set of subscriptions.")
	return b.String()
}

// CleanModelJSON strips the markdown code fence models tend to wrap JSON in:
// a leading ``` with an optional language tag and a trailing ```.
func CleanModelJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		// drop the language tag, if any, up to the end of the first line
		if i := strings.IndexByte(content, '\n'); i >= 0 {
			if tag := strings.TrimSpace(content[:i]); !strings.ContainsAny(tag, "[{") {
				content = content[i+1:]
			}
		} else {
			content = strings.TrimLeft(content, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")
		}
	}

	content = strings.TrimSpace(content)
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}

// ParseRecommendations decodes the model reply into recommendations. The reply
// must be a JSON array; each element is converted on its own, so an unusable
// element is dropped without losing the rest. Entries without a name are
// dropped, a numeric estimated_cost is rendered as "$X" and relevance is
// normalized to high, medium or low.
func ParseRecommendations(content string) ([]dto.Recommendation, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(CleanModelJSON(content)), &raw); err != nil {
		return nil, fmt.Errorf("failed to decode recommendations: %w", err)
	}

	recommendations := make([]dto.Recommendation, 0, len(raw))
	for _, element := range raw {
		rec, ok := recommendationFrom(element)
		if !ok {
			continue
		}
		recommendations = append(recommendations, rec)
	}
	return recommendations, nil
}

func recommendationFrom(element json.RawMessage) (dto.Recommendation, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(element, &fields); err != nil || fields == nil {
		return dto.Recommendation{}, false
	}

	rec := dto.Recommendation{
		Name:          textField(fields["name"]),
		Category:      textField(fields["category"]),
		Description:   textField(fields["description"]),
		EstimatedCost: costField(fields["estimated_cost"]),
		Relevance:     normalizeRelevance(textField(fields["relevance"])),
	}
	if rec.Name == "" {
		return dto.Recommendation{}, false
	}
	return rec, true
}

// textField returns the trimmed string value, or "" for anything that is not a string.
func textField(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return sanitizeUTF8(strings.TrimSpace(s))
}

func costField(raw json.RawMessage) string {
	if s := textField(raw); s != "" {
		return s
	}
	var n json.Number
	if len(raw) == 0 || json.Unmarshal(raw, &n) != nil {
		return ""
	}
	amount, err := decimal.NewFromString(n.String())
	if err != nil {
		return ""
	}
	return "$" + analytics.FormatMoney(amount)
}

func normalizeRelevance(relevance string) string {
	switch r := strings.ToLower(strings.TrimSpace(relevance)); r {
	case RelevanceHigh, RelevanceMedium, RelevanceLow:
		return r
	default:
		return RelevanceLow
	}
}
