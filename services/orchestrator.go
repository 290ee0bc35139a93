package services

import (
	"context"
)

// QueryOrchestrator fans one request out to whichever logical sources it
// names and merges the results into one keyed object. Unknown source names
// are ignored: this is a permissive router, not a validating one.
type QueryOrchestrator struct {
	spendings *SpendingService
	profile   ProfileStore
}

func NewQueryOrchestrator(spendings *SpendingService, profile ProfileStore) *QueryOrchestrator {
	return &QueryOrchestrator{spendings: spendings, profile: profile}
}

// QueryInstructions names the sources a caller needs plus the consult query
// applied to the ledger source.
type QueryInstructions struct {
	CollectionsNeeded []string     `json:"collections_needed"`
	Query             ConsultQuery `json:"query"`
}

func (o *QueryOrchestrator) ExecuteQueries(ctx context.Context, userID string, instructions QueryInstructions) (map[string]any, error) {
	result := map[string]any{}

	for _, source := range instructions.CollectionsNeeded {
		switch source {
		case "spendings":
			consult, err := o.spendings.ConsultSpending(ctx, userID, instructions.Query)
			if err != nil {
				return nil, err
			}
			result["spendings"] = consult

		case "profile_config":
			cfg, err := o.profile.GetOrCreate(ctx, userID)
			if err != nil {
				return nil, err
			}
			result["profile_config"] = cfg
		}
	}

	return result, nil
}
