package models

import "time"

// Project statuses
const (
	ProjectActive    = "ACTIVE"
	ProjectCompleted = "COMPLETED"
	ProjectPaused    = "PAUSED"
)

// Project is a savings/spending goal embedded in the user's ProfileConfig.
// TotalValueRegistered is a running total maintained by the linker, not
// recomputed from the ledger.
type Project struct {
	ProjectID            string         `json:"projectId" bson:"projectId"`
	ProjectName          string         `json:"projectName" bson:"projectName"`
	Description          string         `json:"description" bson:"description"`
	TotalValueRegistered float64        `json:"totalValueRegistered" bson:"totalValueRegistered"`
	TargetValue          *float64       `json:"targetValue" bson:"targetValue"`
	Status               string         `json:"status" bson:"status"`
	ExpenseHistory       []ExpenseEntry `json:"expenseHistory" bson:"expenseHistory"`
	DateHourCreated      time.Time      `json:"dateHourCreated" bson:"dateHourCreated"`
	DateHourUpdated      time.Time      `json:"dateHourUpdated" bson:"dateHourUpdated"`
	CompletedAt          *time.Time     `json:"completedAt" bson:"completedAt"`
}

// ExpenseEntry is one append-only expense-history item. An installment
// purchase contributes a single entry for the whole amount.
type ExpenseEntry struct {
	SpendingID   string  `json:"spendingId" bson:"spendingId"`
	Value        float64 `json:"value" bson:"value"`
	Description  string  `json:"description" bson:"description"`
	Category     string  `json:"category" bson:"category"`
	Date         string  `json:"date" bson:"date"`
	Installments int     `json:"installments,omitempty" bson:"installments,omitempty"`
}

// ProjectStatistics accompanies a project detail response.
type ProjectStatistics struct {
	TotalSpent         float64            `json:"totalSpent"`
	SpendingCount      int                `json:"spendingCount"`
	CategoryBreakdown  map[string]float64 `json:"categoryBreakdown"`
	TargetValue        *float64           `json:"targetValue"`
	PercentageComplete *float64           `json:"percentageComplete"`
}

// ProjectDetails is a project together with its linked ledger records.
type ProjectDetails struct {
	Project         *Project          `json:"project"`
	Statistics      ProjectStatistics `json:"statistics"`
	RecentSpendings []Spending        `json:"recentSpendings"`
}
