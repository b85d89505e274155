package analytics

import (
	"sort"
	"strings"
	"time"

	"subtrack/internal/models"

	"github.com/shopspring/decimal"
)

// CategoryStat is the per-category slice of a Summary.
type CategoryStat struct {
	Count       int
	MonthlyCost decimal.Decimal
}

// Summary is the derived, non-persisted view over a set of subscriptions.
// TotalYearly is always TotalMonthly * 12.
type Summary struct {
	Total            int
	TotalMonthly     decimal.Decimal
	TotalYearly      decimal.Decimal
	UpcomingRenewals int
	Categories       map[string]CategoryStat
}

// Aggregate computes totals, the category breakdown and the count of renewals
// inside [now, now+windowDays]. The input slice is not modified.
func Aggregate(subs []*models.Subscription, now time.Time, windowDays int) Summary {
	summary := Summary{
		TotalMonthly: decimal.Zero,
		Categories:   make(map[string]CategoryStat),
	}

	for _, sub := range subs {
		if sub == nil {
			continue
		}
		monthly := Normalize(sub.Cost, sub.BillingCycle)

		summary.Total++
		summary.TotalMonthly = summary.TotalMonthly.Add(monthly)

		category := CategoryOf(sub)
		stat := summary.Categories[category]
		stat.Count++
		stat.MonthlyCost = stat.MonthlyCost.Add(monthly)
		summary.Categories[category] = stat

		if InWindow(sub.RenewalDate, now, windowDays) {
			summary.UpcomingRenewals++
		}
	}

	summary.TotalYearly = summary.TotalMonthly.Mul(monthsPerYear)
	return summary
}

// CategoryOf returns the subscription's category, defaulting to Other.
func CategoryOf(sub *models.Subscription) string {
	category := strings.TrimSpace(sub.Category)
	if category == "" {
		return models.CategoryOther
	}
	return category
}

// SortedCategories returns the breakdown's category names in lexical order,
// so prompts and responses built from the map are deterministic.
func (s Summary) SortedCategories() []string {
	names := make([]string, 0, len(s.Categories))
	for name := range s.Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FormatMoney renders d with exactly two decimals, e.g. "18.24".
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}
