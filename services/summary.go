package services

import (
	"context"
	"fmt"

	"github.com/Tibluka/voicetaskapi/dates"
	"github.com/Tibluka/voicetaskapi/models"
)

// SummaryService compiles the monthly dashboard from the ledger, the fixed
// bills and the configured month limit.
type SummaryService struct {
	spendings *SpendingService
	bills     *FixedBillService
	profile   ProfileStore
}

func NewSummaryService(spendings *SpendingService, bills *FixedBillService, profile ProfileStore) *SummaryService {
	return &SummaryService{spendings: spendings, bills: bills, profile: profile}
}

func (s *SummaryService) GetMonthlySummary(ctx context.Context, userID, yearMonth string) (*models.MonthlySummary, error) {
	if !dates.ValidYearMonth(yearMonth) {
		return nil, models.NewValidationError("yearMonth")
	}

	consult, err := s.spendings.ConsultSpending(ctx, userID, ConsultQuery{
		Type: models.TypeSpending,
		Date: yearMonth,
	})
	if err != nil {
		return nil, err
	}
	var totalVariable float64
	for _, item := range consult.Spendings {
		totalVariable += item.Value
	}

	billsSummary, err := s.bills.GetFixedBillsSummary(ctx, userID, yearMonth)
	if err != nil {
		return nil, err
	}

	cfg, err := s.profile.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	var monthLimit float64
	if cfg != nil && cfg.MonthLimit != nil {
		monthLimit = *cfg.MonthLimit
	}

	totalSpent := totalVariable + billsSummary.PaidAmount
	totalPlanned := totalVariable + billsSummary.TotalAmount

	summary := &models.MonthlySummary{
		Month:               yearMonth,
		MonthlyLimit:        monthLimit,
		TotalSpent:          totalSpent,
		TotalPlanned:        totalPlanned,
		CategoriesBreakdown: map[string]models.CategoryBreakdown{},
	}

	var percentageOfLimit float64
	if monthLimit > 0 {
		remaining := monthLimit - totalSpent
		summary.RemainingLimit = &remaining
		percentageOfLimit = totalSpent / monthLimit * 100
		summary.PercentageOfLimit = round2(percentageOfLimit)
		summary.PercentagePlannedOfLimit = round2(totalPlanned / monthLimit * 100)
	}

	summary.Breakdown = models.SummaryBreakdown{
		VariableSpending: models.VariableSpendingBreakdown{
			Total: totalVariable,
			Count: len(consult.Spendings),
		},
		FixedBills: models.FixedBillsBreakdown{
			Total:     billsSummary.TotalAmount,
			Paid:      billsSummary.PaidAmount,
			Pending:   billsSummary.TotalAmount - billsSummary.PaidAmount,
			Count:     billsSummary.BillsCount,
			PaidCount: billsSummary.PaidCount,
		},
	}
	if totalSpent > 0 {
		summary.Breakdown.VariableSpending.Percentage = round2(totalVariable / totalSpent * 100)
		summary.Breakdown.FixedBills.Percentage = round2(billsSummary.PaidAmount / totalSpent * 100)
	}

	for _, item := range consult.Spendings {
		category := item.Category
		if category == "" {
			category = "OTHER"
		}
		breakdown := summary.CategoriesBreakdown[category]
		breakdown.Variable += item.Value
		breakdown.Total = breakdown.Variable + breakdown.Fixed
		summary.CategoriesBreakdown[category] = breakdown
	}
	for _, bill := range billsSummary.Bills {
		category := bill.Category
		if category == "" {
			category = "OTHER"
		}
		breakdown := summary.CategoriesBreakdown[category]
		breakdown.Fixed += bill.Amount
		breakdown.Total = breakdown.Variable + breakdown.Fixed
		summary.CategoriesBreakdown[category] = breakdown
	}

	summary.Alerts = generateAlerts(totalSpent, totalPlanned, monthLimit, percentageOfLimit, billsSummary)
	return summary, nil
}

// generateAlerts evaluates every alert rule independently; more than one may
// fire, except LIMIT_CRITICAL and LIMIT_WARNING which are mutually
// exclusive.
func generateAlerts(totalSpent, totalPlanned, monthLimit, percentageOfLimit float64, billsSummary *models.FixedBillsSummary) []models.Alert {
	alerts := []models.Alert{}

	if monthLimit > 0 {
		if percentageOfLimit >= 90 {
			alerts = append(alerts, models.Alert{
				Type:     models.AlertLimitCritical,
				Message:  fmt.Sprintf("You have already spent %.1f%% of your monthly limit!", percentageOfLimit),
				Severity: models.SeverityHigh,
			})
		} else if percentageOfLimit >= 75 {
			alerts = append(alerts, models.Alert{
				Type:     models.AlertLimitWarning,
				Message:  fmt.Sprintf("Attention! You have already spent %.1f%% of your monthly limit.", percentageOfLimit),
				Severity: models.SeverityMedium,
			})
		}
	}

	pendingBills := billsSummary.BillsCount - billsSummary.PaidCount
	if pendingBills > 0 {
		alerts = append(alerts, models.Alert{
			Type:     models.AlertPendingBills,
			Message:  fmt.Sprintf("You have %d pending fixed bill(s) totaling %.2f", pendingBills, billsSummary.PendingAmount),
			Severity: models.SeverityMedium,
		})
	}

	if monthLimit > 0 && totalPlanned > monthLimit {
		alerts = append(alerts, models.Alert{
			Type:     models.AlertBudgetExceeded,
			Message:  fmt.Sprintf("Your planned spending exceeds the limit by %.2f", totalPlanned-monthLimit),
			Severity: models.SeverityHigh,
		})
	}

	return alerts
}
