// Package analytics derives spending figures from a user's subscriptions.
// Everything here is pure: no I/O, no shared state.
package analytics

import (
	"subtrack/internal/models"

	"github.com/shopspring/decimal"
)

var (
	weeksPerMonth    = decimal.NewFromInt(4)
	monthsPerQuarter = decimal.NewFromInt(3)
	monthsPerYear    = decimal.NewFromInt(12)
)

// Normalize converts cost charged once per cycle into its monthly equivalent.
// An unrecognized cycle is treated as already monthly.
func Normalize(cost decimal.Decimal, cycle models.BillingCycle) decimal.Decimal {
	switch cycle {
	case models.BillingCycleWeekly:
		return cost.Mul(weeksPerMonth)
	case models.BillingCycleMonthly:
		return cost
	case models.BillingCycleQuarterly:
		return cost.Div(monthsPerQuarter)
	case models.BillingCycleYearly:
		return cost.Div(monthsPerYear)
	default:
		return cost
	}
}
