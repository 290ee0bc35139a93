package models

// Alert types
const (
	AlertLimitCritical  = "LIMIT_CRITICAL"
	AlertLimitWarning   = "LIMIT_WARNING"
	AlertPendingBills   = "PENDING_BILLS"
	AlertBudgetExceeded = "BUDGET_EXCEEDED"
)

// Alert severities
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
)

// Alert is one independently-evaluated dashboard warning.
type Alert struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// CategoryBreakdown splits one category's month total into its variable and
// fixed components.
type CategoryBreakdown struct {
	Variable float64 `json:"variable"`
	Fixed    float64 `json:"fixed"`
	Total    float64 `json:"total"`
}

// VariableSpendingBreakdown summarizes the month's ad-hoc ledger records.
type VariableSpendingBreakdown struct {
	Total      float64 `json:"total"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// FixedBillsBreakdown summarizes the month's recurring obligations.
type FixedBillsBreakdown struct {
	Total      float64 `json:"total"`
	Paid       float64 `json:"paid"`
	Pending    float64 `json:"pending"`
	Count      int     `json:"count"`
	PaidCount  int     `json:"paidCount"`
	Percentage float64 `json:"percentage"`
}

// SummaryBreakdown splits the month between variable and fixed spending.
type SummaryBreakdown struct {
	VariableSpending VariableSpendingBreakdown `json:"variableSpending"`
	FixedBills       FixedBillsBreakdown       `json:"fixedBills"`
}

// MonthlySummary is the one-dashboard payload merging variable spending,
// fixed bills and the configured month limit. TotalSpent counts money
// actually disbursed; TotalPlanned includes unpaid active bills.
type MonthlySummary struct {
	Month                    string                       `json:"month"`
	MonthlyLimit             float64                      `json:"monthlyLimit"`
	TotalSpent               float64                      `json:"totalSpent"`
	TotalPlanned             float64                      `json:"totalPlanned"`
	RemainingLimit           *float64                     `json:"remainingLimit"`
	PercentageOfLimit        float64                      `json:"percentageOfLimit"`
	PercentagePlannedOfLimit float64                      `json:"percentagePlannedOfLimit"`
	Breakdown                SummaryBreakdown             `json:"breakdown"`
	CategoriesBreakdown      map[string]CategoryBreakdown `json:"categoriesBreakdown"`
	Alerts                   []Alert                      `json:"alerts"`
}
