package dto

import "encoding/json"

// SubscriptionRequest is the body of create and update calls.
// Cost accepts a JSON number or a numeric string, e.g. 9.99 or "9.99".
type SubscriptionRequest struct {
	Name         string      `json:"name" validate:"required,max=255"`
	Cost         json.Number `json:"cost" validate:"required,decimal_gte0,cents"`
	BillingCycle string      `json:"billing_cycle" validate:"required,oneof=weekly monthly quarterly yearly"`
	RenewalDate  string      `json:"renewal_date" validate:"required,datetime=2006-01-02"`
	Category     string      `json:"category" validate:"max=100"`
}

type SubscriptionResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Cost         string `json:"cost"`
	BillingCycle string `json:"billing_cycle"`
	RenewalDate  string `json:"renewal_date"`
	Category     string `json:"category"`
	MonthlyCost  string `json:"monthly_cost"`
	CreatedAt    string `json:"created_at"`
}

type CategoryStatResponse struct {
	Category    string `json:"category"`
	Count       int    `json:"count"`
	MonthlyCost string `json:"monthlyCost"`
}

type StatsResponse struct {
	TotalMonthly        string                 `json:"totalMonthly"`
	TotalYearly         string                 `json:"totalYearly"`
	ActiveSubscriptions int                    `json:"activeSubscriptions"`
	UpcomingRenewals    int                    `json:"upcomingRenewals"`
	Categories          []CategoryStatResponse `json:"categories"`
}

type CalendarMonthResponse struct {
	Month         string                 `json:"month"`
	Subscriptions []SubscriptionResponse `json:"subscriptions"`
}
