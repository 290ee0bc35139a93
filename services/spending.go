package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/Tibluka/voicetaskapi/dates"
	"github.com/Tibluka/voicetaskapi/logger"
	"github.com/Tibluka/voicetaskapi/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SpendingService is the installment engine and consult front of the ledger.
type SpendingService struct {
	store    SpendingStore
	projects *ProjectService
}

func NewSpendingService(store SpendingStore, projects *ProjectService) *SpendingService {
	return &SpendingService{store: store, projects: projects}
}

// InsertSpendingInput is the insert variant of the request payload. Zero
// Installments means a single full-value record.
type InsertSpendingInput struct {
	Description  string  `json:"description"`
	Value        float64 `json:"value"`
	Type         string  `json:"type"`
	Category     string  `json:"category"`
	Date         string  `json:"date"`
	Installments int     `json:"installments"`
	ProjectID    string  `json:"projectId"`
}

// ConsultQuery is the consult variant: one operation tag plus exactly the
// filters that operation reads.
type ConsultQuery struct {
	Operation         string `json:"operation"`
	Type              string `json:"type"`
	Category          string `json:"category"`
	Date              string `json:"date"`
	ProjectName       string `json:"projectName"`
	From              string `json:"from"`
	To                string `json:"to"`
	InstallmentDetail bool   `json:"installmentDetail"`
}

// ConsultResult holds whichever shape the operation produces.
type ConsultResult struct {
	Spendings  []models.Spending      `json:"spendings,omitempty"`
	Categories []models.CategoryTotal `json:"categories,omitempty"`
	Months     []models.MonthTotal    `json:"months,omitempty"`
}

// InsertSpending validates and persists a purchase, splitting it into an
// installment plan when installments > 1 and crediting the linked project
// with the original total exactly once. Returns the created records, parent
// first.
func (s *SpendingService) InsertSpending(ctx context.Context, userID string, in InsertSpendingInput) ([]models.Spending, error) {
	missing := []string{}
	if in.Description == "" {
		missing = append(missing, "description")
	}
	if in.Value <= 0 {
		missing = append(missing, "value")
	}
	if in.Type == "" || (in.Type != models.TypeSpending && in.Type != models.TypeRevenue) {
		missing = append(missing, "type")
	}
	if in.Category == "" {
		missing = append(missing, "category")
	}
	if in.Date == "" {
		missing = append(missing, "date")
	}
	if len(missing) > 0 {
		return nil, &models.ValidationError{Fields: missing}
	}

	baseDate, err := dates.ParseDay(in.Date)
	if err != nil {
		return nil, err
	}

	if in.ProjectID != "" {
		if _, err := s.projects.GetProjectByID(ctx, userID, in.ProjectID); err != nil {
			return nil, err
		}
	}

	installments := in.Installments
	if installments < 1 {
		installments = 1
	}

	var records []models.Spending
	if installments == 1 {
		record := models.Spending{
			ID:          uuid.NewString(),
			UserID:      userID,
			Description: in.Description,
			Value:       in.Value,
			Type:        in.Type,
			Category:    in.Category,
			Date:        baseDate.Format(dates.DayLayout),
			ProjectID:   in.ProjectID,
		}
		if err := s.store.InsertOne(ctx, &record); err != nil {
			return nil, err
		}
		records = []models.Spending{record}
	} else {
		records = buildInstallmentPlan(userID, in, baseDate, installments)
		if err := s.store.InsertPlan(ctx, &records[0], records[1:]); err != nil {
			return nil, err
		}
	}

	if in.ProjectID != "" {
		entry := &models.ExpenseEntry{
			SpendingID:   records[0].ID,
			Value:        in.Value,
			Description:  in.Description,
			Category:     in.Category,
			Date:         records[0].Date,
			Installments: installments,
		}
		if err := s.projects.UpdateProjectSpending(ctx, userID, in.ProjectID, in.Value, entry); err != nil {
			// Roll the ledger write back so the plan and the project total
			// never disagree.
			if _, cleanupErr := s.store.DeletePlan(ctx, userID, records[0].ID); cleanupErr != nil {
				logger.Get().Error("failed to roll back spending after project update failure",
					zap.String("spending_id", records[0].ID),
					zap.Error(cleanupErr))
			}
			return nil, err
		}
	}

	return records, nil
}

// buildInstallmentPlan splits a purchase into a parent record ("1/n") and
// n-1 children dated one month apart, clamped to month ends. Each record
// carries round(total/n, 2); the final installment absorbs the rounding
// remainder so the plan sums exactly to the original value.
func buildInstallmentPlan(userID string, in InsertSpendingInput, base time.Time, installments int) []models.Spending {
	per := round2(in.Value / float64(installments))
	last := round2(in.Value - per*float64(installments-1))

	parent := models.Spending{
		ID:              uuid.NewString(),
		UserID:          userID,
		Description:     in.Description,
		Value:           per,
		Type:            in.Type,
		Category:        in.Category,
		Date:            base.Format(dates.DayLayout),
		ProjectID:       in.ProjectID,
		Installments:    installments,
		InstallmentInfo: fmt.Sprintf("1/%d", installments),
		IsParent:        true,
	}

	records := make([]models.Spending, 0, installments)
	records = append(records, parent)

	for i := 1; i < installments; i++ {
		value := per
		if i == installments-1 {
			value = last
		}
		records = append(records, models.Spending{
			ID:              uuid.NewString(),
			UserID:          userID,
			Description:     in.Description,
			Value:           value,
			Type:            in.Type,
			Category:        in.Category,
			Date:            dates.AddMonths(base, i).Format(dates.DayLayout),
			ProjectID:       in.ProjectID,
			Installments:    installments,
			InstallmentInfo: fmt.Sprintf("%d/%d", i+1, installments),
			ParentID:        parent.ID,
		})
	}
	return records
}

// RemoveSpending deletes a ledger record. Removing a parent removes its
// whole plan; a linked project gets a compensating deduction for the full
// purchase value, with no expense-history rewrite. Returns the number of
// records removed.
func (s *SpendingService) RemoveSpending(ctx context.Context, userID, id string) (int64, error) {
	record, err := s.store.FindByID(ctx, userID, id)
	if err != nil {
		return 0, err
	}
	if record == nil {
		return 0, models.NewNotFoundError("spending", id)
	}

	var removed int64
	total := record.Value

	if record.IsParent {
		plan, err := s.store.FindPlan(ctx, userID, record.ID)
		if err != nil {
			return 0, err
		}
		total = 0
		for _, item := range plan {
			total += item.Value
		}
		removed, err = s.store.DeletePlan(ctx, userID, record.ID)
		if err != nil {
			return 0, err
		}
	} else {
		removed, err = s.store.Delete(ctx, userID, id)
		if err != nil {
			return 0, err
		}
	}

	if record.ProjectID != "" {
		err := s.projects.UpdateProjectSpending(ctx, userID, record.ProjectID, -total, nil)
		if err != nil && !models.IsNotFound(err) {
			return removed, err
		}
		// A dangling projectId after project deletion is expected; nothing
		// to compensate then.
	}

	return removed, nil
}

// ConsultSpending executes one consult operation. The zero operation is SUM,
// which returns the raw matching records.
func (s *SpendingService) ConsultSpending(ctx context.Context, userID string, q ConsultQuery) (*ConsultResult, error) {
	filter := models.SpendingFilter{
		UserID:            userID,
		Type:              q.Type,
		Category:          q.Category,
		InstallmentDetail: q.InstallmentDetail,
	}

	if q.Date != "" {
		if len(q.Date) == len(dates.DayLayout) {
			if _, err := dates.ParseDay(q.Date); err != nil {
				return nil, err
			}
			filter.DateOn = q.Date
		} else {
			start, end, err := dates.Range(q.Date)
			if err != nil {
				return nil, err
			}
			filter.DateFrom = start
			filter.DateBefore = end
		}
	}

	switch q.Operation {
	case "", models.OperationSum:
		items, err := s.store.Find(ctx, filter)
		if err != nil {
			return nil, err
		}
		return &ConsultResult{Spendings: items}, nil

	case models.OperationMax, models.OperationMin:
		filter.Limit = 1
		if q.Operation == models.OperationMax {
			filter.SortByValueDesc = true
		} else {
			filter.SortByValueAsc = true
		}
		items, err := s.store.Find(ctx, filter)
		if err != nil {
			return nil, err
		}
		return &ConsultResult{Spendings: items}, nil

	case models.OperationCategory:
		totals, err := s.store.SumByCategory(ctx, filter)
		if err != nil {
			return nil, err
		}
		return &ConsultResult{Categories: totals}, nil

	case models.OperationComparative:
		if _, err := dates.ParseDay(q.From); err != nil {
			return nil, models.NewValidationError("from")
		}
		if _, err := dates.ParseDay(q.To); err != nil {
			return nil, models.NewValidationError("to")
		}
		// The explicit [from, to] bounds replace any range derived from
		// the date token.
		filter.DateOn = ""
		filter.DateBefore = ""
		filter.DateFrom = q.From
		filter.DateThrough = q.To
		totals, err := s.store.SumByMonth(ctx, filter)
		if err != nil {
			return nil, err
		}
		return &ConsultResult{Months: totals}, nil

	case models.OperationConsultProject:
		project, err := s.projects.GetProjectByName(ctx, userID, q.ProjectName)
		if err != nil {
			if models.IsNotFound(err) {
				return &ConsultResult{Spendings: []models.Spending{}}, nil
			}
			return nil, err
		}
		filter.ProjectID = project.ProjectID
		filter.AllRecords = true
		filter.SortByDateDesc = true
		items, err := s.store.Find(ctx, filter)
		if err != nil {
			return nil, err
		}
		return &ConsultResult{Spendings: items}, nil

	default:
		return nil, models.NewValidationError("operation")
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
