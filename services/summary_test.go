package services

import (
	"context"
	"testing"

	"github.com/Tibluka/voicetaskapi/models"
)

func hasAlert(alerts []models.Alert, alertType string) bool {
	for _, alert := range alerts {
		if alert.Type == alertType {
			return true
		}
	}
	return false
}

func TestGetMonthlySummary(t *testing.T) {
	spendings, _, bills, summary, _, profile := newTestServices()
	ctx := context.Background()

	if _, err := profile.GetOrCreate(ctx, testUser); err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if _, err := profile.SetFields(ctx, testUser, map[string]any{"monthLimit": 1000.0}); err != nil {
		t.Fatalf("SetFields: %v", err)
	}

	mustInsert(t, spendings, InsertSpendingInput{
		Description: "groceries", Value: 250, Type: models.TypeSpending, Category: "FOOD", Date: "2024-06-05",
	})
	mustInsert(t, spendings, InsertSpendingInput{
		Description: "fuel", Value: 150, Type: models.TypeSpending, Category: "TRANSPORT", Date: "2024-06-12",
	})

	paidBill := mustCreateBill(t, bills, CreateFixedBillInput{
		Name: "Rent", Amount: 300, DueDay: 5, Category: "HOUSING",
	})
	mustCreateBill(t, bills, CreateFixedBillInput{
		Name: "Internet", Amount: 400, DueDay: 10, Category: "UTILITIES",
	})
	if _, err := bills.MarkBillAsPaid(ctx, testUser, paidBill.BillID, "2024-06", nil); err != nil {
		t.Fatalf("pay: %v", err)
	}

	got, err := summary.GetMonthlySummary(ctx, testUser, "2024-06")
	if err != nil {
		t.Fatalf("GetMonthlySummary: %v", err)
	}

	// Spent counts variable plus paid bills only; planned counts every
	// active bill.
	if got.TotalSpent != 700 {
		t.Errorf("totalSpent = %v, want 700", got.TotalSpent)
	}
	if got.TotalPlanned != 1100 {
		t.Errorf("totalPlanned = %v, want 1100", got.TotalPlanned)
	}
	if got.MonthlyLimit != 1000 {
		t.Errorf("monthlyLimit = %v", got.MonthlyLimit)
	}
	if got.RemainingLimit == nil || *got.RemainingLimit != 300 {
		t.Errorf("remainingLimit = %v", got.RemainingLimit)
	}
	if got.PercentageOfLimit != 70 {
		t.Errorf("percentageOfLimit = %v", got.PercentageOfLimit)
	}
	if got.PercentagePlannedOfLimit != 110 {
		t.Errorf("percentagePlannedOfLimit = %v", got.PercentagePlannedOfLimit)
	}

	if got.Breakdown.VariableSpending.Total != 400 || got.Breakdown.VariableSpending.Count != 2 {
		t.Errorf("variable breakdown = %+v", got.Breakdown.VariableSpending)
	}
	if got.Breakdown.FixedBills.Total != 700 || got.Breakdown.FixedBills.Paid != 300 || got.Breakdown.FixedBills.Pending != 400 {
		t.Errorf("fixed breakdown = %+v", got.Breakdown.FixedBills)
	}

	food := got.CategoriesBreakdown["FOOD"]
	if food.Variable != 250 || food.Fixed != 0 || food.Total != 250 {
		t.Errorf("FOOD = %+v", food)
	}
	housing := got.CategoriesBreakdown["HOUSING"]
	if housing.Fixed != 300 || housing.Total != 300 {
		t.Errorf("HOUSING = %+v", housing)
	}

	// 70% of limit: below both alert thresholds. Planned exceeds the
	// limit by 100, and one bill is pending.
	if hasAlert(got.Alerts, models.AlertLimitWarning) || hasAlert(got.Alerts, models.AlertLimitCritical) {
		t.Errorf("unexpected limit alert: %+v", got.Alerts)
	}
	if !hasAlert(got.Alerts, models.AlertPendingBills) {
		t.Errorf("missing PENDING_BILLS: %+v", got.Alerts)
	}
	if !hasAlert(got.Alerts, models.AlertBudgetExceeded) {
		t.Errorf("missing BUDGET_EXCEEDED: %+v", got.Alerts)
	}
}

func TestGetMonthlySummaryAlertThresholds(t *testing.T) {
	tests := []struct {
		name     string
		spent    float64
		critical bool
		warning  bool
	}{
		{"below warning", 700, false, false},
		{"at warning", 750, false, true},
		{"between", 850, false, true},
		{"at critical", 900, true, false},
		{"over limit", 1100, true, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spendings, _, _, summary, _, profile := newTestServices()
			ctx := context.Background()

			if _, err := profile.GetOrCreate(ctx, testUser); err != nil {
				t.Fatalf("GetOrCreate: %v", err)
			}
			if _, err := profile.SetFields(ctx, testUser, map[string]any{"monthLimit": 1000.0}); err != nil {
				t.Fatalf("SetFields: %v", err)
			}
			mustInsert(t, spendings, InsertSpendingInput{
				Description: "big", Value: tc.spent, Type: models.TypeSpending, Category: "OTHER", Date: "2024-06-10",
			})

			got, err := summary.GetMonthlySummary(ctx, testUser, "2024-06")
			if err != nil {
				t.Fatalf("GetMonthlySummary: %v", err)
			}
			if hasAlert(got.Alerts, models.AlertLimitCritical) != tc.critical {
				t.Errorf("critical = %v, want %v (alerts %+v)", !tc.critical, tc.critical, got.Alerts)
			}
			if hasAlert(got.Alerts, models.AlertLimitWarning) != tc.warning {
				t.Errorf("warning = %v, want %v (alerts %+v)", !tc.warning, tc.warning, got.Alerts)
			}
		})
	}
}

func TestGetMonthlySummaryWithoutLimit(t *testing.T) {
	spendings, _, _, summary, _, _ := newTestServices()
	ctx := context.Background()

	mustInsert(t, spendings, InsertSpendingInput{
		Description: "groceries", Value: 250, Type: models.TypeSpending, Category: "FOOD", Date: "2024-06-05",
	})

	got, err := summary.GetMonthlySummary(ctx, testUser, "2024-06")
	if err != nil {
		t.Fatalf("GetMonthlySummary: %v", err)
	}
	if got.RemainingLimit != nil {
		t.Errorf("remainingLimit = %v, want nil without a limit", *got.RemainingLimit)
	}
	if got.PercentageOfLimit != 0 || got.PercentagePlannedOfLimit != 0 {
		t.Errorf("percentages = %v / %v", got.PercentageOfLimit, got.PercentagePlannedOfLimit)
	}
	for _, alert := range got.Alerts {
		if alert.Type == models.AlertLimitCritical || alert.Type == models.AlertLimitWarning || alert.Type == models.AlertBudgetExceeded {
			t.Errorf("limit alert without a limit: %+v", alert)
		}
	}
}

func TestGetMonthlySummaryOnlyCountsRequestedMonthAndType(t *testing.T) {
	spendings, _, _, summary, _, _ := newTestServices()
	ctx := context.Background()

	mustInsert(t, spendings, InsertSpendingInput{
		Description: "june", Value: 100, Type: models.TypeSpending, Category: "FOOD", Date: "2024-06-05",
	})
	mustInsert(t, spendings, InsertSpendingInput{
		Description: "july", Value: 999, Type: models.TypeSpending, Category: "FOOD", Date: "2024-07-05",
	})
	mustInsert(t, spendings, InsertSpendingInput{
		Description: "salary", Value: 5000, Type: models.TypeRevenue, Category: "SALARY", Date: "2024-06-01",
	})

	got, err := summary.GetMonthlySummary(ctx, testUser, "2024-06")
	if err != nil {
		t.Fatalf("GetMonthlySummary: %v", err)
	}
	if got.TotalSpent != 100 {
		t.Errorf("totalSpent = %v, want 100 (june spending only)", got.TotalSpent)
	}
}

func TestGetMonthlySummaryRejectsBadMonth(t *testing.T) {
	_, _, _, summary, _, _ := newTestServices()

	if _, err := summary.GetMonthlySummary(context.Background(), testUser, "2024-6"); !models.IsValidation(err) {
		t.Fatalf("want validation error, got %v", err)
	}
}
