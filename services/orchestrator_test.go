package services

import (
	"context"
	"testing"

	"github.com/Tibluka/voicetaskapi/models"
)

func TestExecuteQueriesFansOut(t *testing.T) {
	spendings, _, _, _, _, profile := newTestServices()
	orchestrator := NewQueryOrchestrator(spendings, profile)
	ctx := context.Background()

	mustInsert(t, spendings, InsertSpendingInput{
		Description: "groceries", Value: 50, Type: models.TypeSpending, Category: "FOOD", Date: "2024-06-01",
	})

	result, err := orchestrator.ExecuteQueries(ctx, testUser, QueryInstructions{
		CollectionsNeeded: []string{"spendings", "profile_config"},
		Query:             ConsultQuery{Operation: models.OperationSum},
	})
	if err != nil {
		t.Fatalf("ExecuteQueries: %v", err)
	}

	consult, ok := result["spendings"].(*ConsultResult)
	if !ok {
		t.Fatalf("spendings = %T", result["spendings"])
	}
	if len(consult.Spendings) != 1 {
		t.Errorf("spendings = %+v", consult.Spendings)
	}

	cfg, ok := result["profile_config"].(*models.ProfileConfig)
	if !ok {
		t.Fatalf("profile_config = %T", result["profile_config"])
	}
	if cfg.UserID != testUser {
		t.Errorf("userId = %s", cfg.UserID)
	}
}

func TestExecuteQueriesIgnoresUnknownSources(t *testing.T) {
	spendings, _, _, _, _, profile := newTestServices()
	orchestrator := NewQueryOrchestrator(spendings, profile)

	result, err := orchestrator.ExecuteQueries(context.Background(), testUser, QueryInstructions{
		CollectionsNeeded: []string{"invoices", "spendings"},
	})
	if err != nil {
		t.Fatalf("ExecuteQueries: %v", err)
	}
	if _, ok := result["invoices"]; ok {
		t.Error("unknown source produced a result")
	}
	if _, ok := result["spendings"]; !ok {
		t.Error("known source missing from result")
	}
}

func TestExecuteQueriesEmptyInstructions(t *testing.T) {
	spendings, _, _, _, _, profile := newTestServices()
	orchestrator := NewQueryOrchestrator(spendings, profile)

	result, err := orchestrator.ExecuteQueries(context.Background(), testUser, QueryInstructions{})
	if err != nil {
		t.Fatalf("ExecuteQueries: %v", err)
	}
	if len(result) != 0 {
		t.Errorf("result = %+v", result)
	}
}
