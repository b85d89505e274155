package dto

type SummaryResponse struct {
	Total            int    `json:"total"`
	MonthlySpending  string `json:"monthlySpending"`
	YearlyProjection string `json:"yearlyProjection"`
	UpcomingRenewals int    `json:"upcomingRenewals"`
}

type InsightResponse struct {
	Insights string          `json:"insights"`
	Summary  SummaryResponse `json:"summary"`
}
