package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BillingCycle string

const (
	BillingCycleWeekly    BillingCycle = "weekly"
	BillingCycleMonthly   BillingCycle = "monthly"
	BillingCycleQuarterly BillingCycle = "quarterly"
	BillingCycleYearly    BillingCycle = "yearly"
)

// Valid reports whether c is one of the known billing cycles.
func (c BillingCycle) Valid() bool {
	switch c {
	case BillingCycleWeekly, BillingCycleMonthly, BillingCycleQuarterly, BillingCycleYearly:
		return true
	}
	return false
}

const (
	CategoryEntertainment = "Entertainment"
	CategoryProductivity  = "Productivity"
	CategoryFitness       = "Fitness"
	CategorySoftware      = "Software"
	CategoryUtilities     = "Utilities"
	CategoryOther         = "Other"
)

// Subscription is a recurring charge owned by exactly one user.
// Cost is denominated in the billing cycle's period.
type Subscription struct {
	ID           uuid.UUID       `db:"id"`
	UserID       uuid.UUID       `db:"user_id"`
	Name         string          `db:"name"`
	Cost         decimal.Decimal `db:"cost"`
	BillingCycle BillingCycle    `db:"billing_cycle"`
	RenewalDate  time.Time       `db:"renewal_date"`
	Category     string          `db:"category"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}
