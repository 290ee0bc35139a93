package models

import "time"

// DefaultBudgetStrategy is applied when a profile is created lazily.
const DefaultBudgetStrategy = "50-30-20"

// ProfileConfig is the per-user aggregate root embedding projects and fixed
// bills. Created on demand with the default strategy on first access.
type ProfileConfig struct {
	ID                string             `json:"id,omitempty" bson:"_id,omitempty"`
	UserID            string             `json:"userId" bson:"userId"`
	BudgetStrategy    string             `json:"budgetStrategy" bson:"budgetStrategy"`
	CustomPercentages map[string]float64 `json:"customPercentages" bson:"customPercentages"`
	MonthlyIncome     *float64           `json:"monthlyIncome,omitempty" bson:"monthlyIncome,omitempty"`
	MonthLimit        *float64           `json:"monthLimit,omitempty" bson:"monthLimit,omitempty"`
	FixedBills        []FixedBill        `json:"fixedBills" bson:"fixedBills"`
	Projects          []Project          `json:"projects" bson:"projects"`
	Goals             []string           `json:"goals" bson:"goals"`
	CreatedAt         time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// NewDefaultProfileConfig builds the lazily-created profile for a user.
func NewDefaultProfileConfig(userID string) *ProfileConfig {
	now := time.Now().UTC()
	return &ProfileConfig{
		UserID:         userID,
		BudgetStrategy: DefaultBudgetStrategy,
		CustomPercentages: map[string]float64{
			"needs":       50,
			"wants":       30,
			"investments": 20,
		},
		FixedBills: []FixedBill{},
		Projects:   []Project{},
		Goals:      []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
