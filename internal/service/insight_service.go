package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"subtrack/internal/analytics"
	"subtrack/internal/dto"
	"subtrack/internal/llm"
	"subtrack/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NoSubscriptionsInsight is returned instead of calling the model when the
// user has nothing to analyze.
const NoSubscriptionsInsight = "You don't have any subscriptions yet. Add some subscriptions to get AI-powered insights about your spending patterns and optimization opportunities."

const insightSystemPrompt = `You are a financial analytics assistant that helps people manage their subscriptions.
Review the subscription data you are given and reply with practical insights in a friendly, conversational tone.
Cover spending patterns, ways to cut costs, upcoming renewals and how spending splits across categories.
Keep it short and use bullet points. Point out both concerns and things the user is doing well.`

type InsightService struct {
	subs       SubscriptionLister
	client     llm.ChatClient
	windowDays int
	now        func() time.Time
	logger     *zap.Logger
}

func NewInsightService(subs SubscriptionLister, client llm.ChatClient, windowDays int, logger *zap.Logger) *InsightService {
	if windowDays <= 0 {
		windowDays = analytics.DefaultWindowDays
	}
	return &InsightService{
		subs:       subs,
		client:     client,
		windowDays: windowDays,
		now:        time.Now,
		logger:     logger,
	}
}

// Analyze summarizes the user's subscriptions and asks the model for
// insights about them. With no subscriptions the model is not called.
func (s *InsightService) Analyze(ctx context.Context, userID uuid.UUID) (*dto.InsightResponse, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	subs, err := s.subs.ListByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to fetch subscriptions", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	summary := analytics.Aggregate(subs, analytics.StartOfDay(s.now()), s.windowDays)
	resp := &dto.InsightResponse{Summary: toSummaryResponse(summary)}

	if len(subs) == 0 {
		resp.Insights = NoSubscriptionsInsight
		return resp, nil
	}

	s.logger.Info("Requesting insights",
		zap.String("user_id", userID.String()),
		zap.Int("subscriptions", summary.Total),
	)

	insights, err := s.client.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: insightSystemPrompt},
		{Role: llm.RoleUser, Content: BuildInsightPrompt(summary, subs, s.windowDays)},
	})
	if err != nil {
		s.logger.Error("Insight generation failed", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, upstreamError(err)
	}

	resp.Insights = sanitizeUTF8(strings.TrimSpace(insights))
	return resp, nil
}

// BuildInsightPrompt renders the user message for Analyze. The output depends
// only on its arguments: categories are sorted and subscriptions keep the
// order they were passed in.
func BuildInsightPrompt(summary analytics.Summary, subs []*models.Subscription, windowDays int) string {
	var b strings.Builder

	b.WriteString("Analyze this subscription data and provide insights:\n\n")
	fmt.Fprintf(&b, "Total Subscriptions: %d\n", summary.Total)
	fmt.Fprintf(&b, "Monthly Spending: $%s\n", analytics.FormatMoney(summary.TotalMonthly))
	fmt.Fprintf(&b, "Yearly Projection: $%s\n", analytics.FormatMoney(summary.TotalYearly))
	fmt.Fprintf(&b, "Upcoming Renewals (%d days): %d\n", windowDays, summary.UpcomingRenewals)

	b.WriteString("\nCategory Breakdown:\n")
	for _, name := range summary.SortedCategories() {
		stat := summary.Categories[name]
		fmt.Fprintf(&b, "- %s: %d subscription(s), $%s/month\n", name, stat.Count, analytics.FormatMoney(stat.MonthlyCost))
	}

	b.WriteString("\nSubscription Details:\n")
	for _, sub := range subs {
		if sub == nil {
			continue
		}
		fmt.Fprintf(&b, "- %s: $%s %s (%s), renews %s\n",
			sub.Name,
			analytics.FormatMoney(sub.Cost),
			sub.BillingCycle,
			analytics.CategoryOf(sub),
			sub.RenewalDate.Format(dateLayout),
		)
	}

	b.WriteString("\nGive 4-5 key insights and concrete recommendations for optimizing these subscriptions.")
	return b.String()
}

func toSummaryResponse(summary analytics.Summary) dto.SummaryResponse {
	return dto.SummaryResponse{
		Total:            summary.Total,
		MonthlySpending:  analytics.FormatMoney(summary.TotalMonthly),
		YearlyProjection: analytics.FormatMoney(summary.TotalYearly),
		UpcomingRenewals: summary.UpcomingRenewals,
	}
}
