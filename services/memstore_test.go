package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/Tibluka/voicetaskapi/models"
)

// In-memory stores mirroring the document-store semantics of the mongodb
// package, so service behavior can be exercised without a running database.

type memSpendingStore struct {
	items []models.Spending

	failChildInsert bool
}

func (m *memSpendingStore) InsertOne(_ context.Context, item *models.Spending) error {
	m.items = append(m.items, *item)
	return nil
}

func (m *memSpendingStore) InsertPlan(_ context.Context, parent *models.Spending, children []models.Spending) error {
	if m.failChildInsert {
		// The real store compensates by deleting the parent it already
		// wrote, so nothing of the plan remains.
		return errors.New("error creating installment children: write failed")
	}
	m.items = append(m.items, *parent)
	m.items = append(m.items, children...)
	return nil
}

func (m *memSpendingStore) FindByID(_ context.Context, userID, id string) (*models.Spending, error) {
	for i := range m.items {
		if m.items[i].ID == id && m.items[i].UserID == userID {
			item := m.items[i]
			return &item, nil
		}
	}
	return nil, nil
}

func matchesFilter(item models.Spending, f models.SpendingFilter) bool {
	if item.UserID != f.UserID {
		return false
	}
	if f.Type != "" && item.Type != f.Type {
		return false
	}
	if f.Category != "" && item.Category != f.Category {
		return false
	}
	if f.ProjectID != "" {
		if item.ProjectID != f.ProjectID {
			return false
		}
	} else if !f.IncludeProjectLinked && item.ProjectID != "" {
		return false
	}
	if f.DateOn != "" {
		if item.Date != f.DateOn {
			return false
		}
	} else {
		if f.DateFrom != "" && item.Date < f.DateFrom {
			return false
		}
		if f.DateBefore != "" && item.Date >= f.DateBefore {
			return false
		}
		if f.DateThrough != "" && item.Date > f.DateThrough {
			return false
		}
	}
	if !f.AllRecords {
		if f.InstallmentDetail {
			if item.Installments < 1 {
				return false
			}
		} else if item.ParentID != "" {
			return false
		}
	}
	return true
}

func (m *memSpendingStore) Find(_ context.Context, f models.SpendingFilter) ([]models.Spending, error) {
	matched := []models.Spending{}
	for _, item := range m.items {
		if matchesFilter(item, f) {
			matched = append(matched, item)
		}
	}
	switch {
	case f.SortByValueDesc:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Value > matched[j].Value })
	case f.SortByValueAsc:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Value < matched[j].Value })
	case f.SortByDateDesc:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Date > matched[j].Date })
	}
	if f.Limit > 0 && int64(len(matched)) > f.Limit {
		matched = matched[:f.Limit]
	}
	return matched, nil
}

func (m *memSpendingStore) FindPlan(_ context.Context, userID, parentID string) ([]models.Spending, error) {
	plan := []models.Spending{}
	for _, item := range m.items {
		if item.UserID == userID && (item.ID == parentID || item.ParentID == parentID) {
			plan = append(plan, item)
		}
	}
	return plan, nil
}

func (m *memSpendingStore) Delete(_ context.Context, userID, id string) (int64, error) {
	kept := m.items[:0]
	var removed int64
	for _, item := range m.items {
		if item.UserID == userID && item.ID == id {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	m.items = kept
	return removed, nil
}

func (m *memSpendingStore) DeletePlan(_ context.Context, userID, parentID string) (int64, error) {
	kept := m.items[:0]
	var removed int64
	for _, item := range m.items {
		if item.UserID == userID && (item.ID == parentID || item.ParentID == parentID) {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	m.items = kept
	return removed, nil
}

func (m *memSpendingStore) SumByCategory(ctx context.Context, f models.SpendingFilter) ([]models.CategoryTotal, error) {
	matched, _ := m.Find(ctx, f)
	sums := map[string]float64{}
	for _, item := range matched {
		sums[item.Category] += item.Value
	}
	totals := []models.CategoryTotal{}
	for label, value := range sums {
		totals = append(totals, models.CategoryTotal{Label: label, Value: value})
	}
	sort.SliceStable(totals, func(i, j int) bool { return totals[i].Value > totals[j].Value })
	return totals, nil
}

func (m *memSpendingStore) SumByMonth(ctx context.Context, f models.SpendingFilter) ([]models.MonthTotal, error) {
	matched, _ := m.Find(ctx, f)
	sums := map[string]float64{}
	for _, item := range matched {
		if len(item.Date) >= 7 {
			sums[item.Date[:7]] += item.Value
		}
	}
	keys := make([]string, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	totals := []models.MonthTotal{}
	for _, k := range keys {
		totals = append(totals, models.MonthTotal{Month: k[5:7] + "/" + k[0:4], Total: sums[k]})
	}
	return totals, nil
}

type memProfileStore struct {
	configs map[string]*models.ProfileConfig

	failDelta bool
}

func newMemProfileStore() *memProfileStore {
	return &memProfileStore{configs: map[string]*models.ProfileConfig{}}
}

// cloneConfig mimics driver decoding: callers get copies, not aliases into
// the store's state.
func cloneConfig(cfg *models.ProfileConfig) *models.ProfileConfig {
	if cfg == nil {
		return nil
	}
	out := *cfg
	out.Projects = make([]models.Project, len(cfg.Projects))
	for i, p := range cfg.Projects {
		p.ExpenseHistory = append([]models.ExpenseEntry(nil), p.ExpenseHistory...)
		out.Projects[i] = p
	}
	out.FixedBills = make([]models.FixedBill, len(cfg.FixedBills))
	for i, b := range cfg.FixedBills {
		b.PaymentHistory = append([]models.PaymentRecord(nil), b.PaymentHistory...)
		out.FixedBills[i] = b
	}
	return &out
}

func (m *memProfileStore) Get(_ context.Context, userID string) (*models.ProfileConfig, error) {
	return cloneConfig(m.configs[userID]), nil
}

func (m *memProfileStore) GetOrCreate(ctx context.Context, userID string) (*models.ProfileConfig, error) {
	if cfg := m.configs[userID]; cfg != nil {
		return cloneConfig(cfg), nil
	}
	cfg := models.NewDefaultProfileConfig(userID)
	m.configs[userID] = cfg
	return cloneConfig(cfg), nil
}

func (m *memProfileStore) Insert(_ context.Context, cfg *models.ProfileConfig) error {
	m.configs[cfg.UserID] = cfg
	return nil
}

func (m *memProfileStore) SetFields(_ context.Context, userID string, fields map[string]any) (int64, error) {
	cfg := m.configs[userID]
	if cfg == nil {
		return 0, nil
	}
	for k, v := range fields {
		switch k {
		case "budgetStrategy":
			cfg.BudgetStrategy = v.(string)
		case "customPercentages":
			cfg.CustomPercentages = v.(map[string]float64)
		case "monthlyIncome":
			income := v.(float64)
			cfg.MonthlyIncome = &income
		case "monthLimit":
			limit := v.(float64)
			cfg.MonthLimit = &limit
		case "goals":
			cfg.Goals = v.([]string)
		}
	}
	cfg.UpdatedAt = time.Now().UTC()
	return 1, nil
}

func (m *memProfileStore) AddProject(_ context.Context, userID string, project models.Project) error {
	cfg := m.configs[userID]
	cfg.Projects = append(cfg.Projects, project)
	return nil
}

func (m *memProfileStore) ApplyProjectDelta(_ context.Context, userID, projectID string, delta float64, entry *models.ExpenseEntry) (int64, error) {
	if m.failDelta {
		return 0, errors.New("error applying project delta: write failed")
	}
	cfg := m.configs[userID]
	if cfg == nil {
		return 0, nil
	}
	for i := range cfg.Projects {
		if cfg.Projects[i].ProjectID == projectID {
			cfg.Projects[i].TotalValueRegistered += delta
			if entry != nil {
				cfg.Projects[i].ExpenseHistory = append(cfg.Projects[i].ExpenseHistory, *entry)
			}
			cfg.Projects[i].DateHourUpdated = time.Now().UTC()
			return 1, nil
		}
	}
	return 0, nil
}

func (m *memProfileStore) UpdateProjectFields(_ context.Context, userID, projectID string, fields map[string]any) (int64, error) {
	cfg := m.configs[userID]
	if cfg == nil {
		return 0, nil
	}
	for i := range cfg.Projects {
		if cfg.Projects[i].ProjectID != projectID {
			continue
		}
		p := &cfg.Projects[i]
		for k, v := range fields {
			switch k {
			case "projectName":
				p.ProjectName = v.(string)
			case "description":
				p.Description = v.(string)
			case "targetValue":
				target := v.(float64)
				p.TargetValue = &target
			case "status":
				p.Status = v.(string)
			case "completedAt":
				completed := v.(time.Time)
				p.CompletedAt = &completed
			}
		}
		p.DateHourUpdated = time.Now().UTC()
		return 1, nil
	}
	return 0, nil
}

func (m *memProfileStore) RemoveProject(_ context.Context, userID, projectID string) (int64, error) {
	cfg := m.configs[userID]
	if cfg == nil {
		return 0, nil
	}
	kept := cfg.Projects[:0]
	var removed int64
	for _, p := range cfg.Projects {
		if p.ProjectID == projectID {
			removed++
			continue
		}
		kept = append(kept, p)
	}
	cfg.Projects = kept
	return removed, nil
}

func (m *memProfileStore) AddFixedBill(_ context.Context, userID string, bill models.FixedBill) error {
	cfg := m.configs[userID]
	cfg.FixedBills = append(cfg.FixedBills, bill)
	return nil
}

func (m *memProfileStore) findBill(userID, billID string) *models.FixedBill {
	cfg := m.configs[userID]
	if cfg == nil {
		return nil
	}
	for i := range cfg.FixedBills {
		if cfg.FixedBills[i].BillID == billID {
			return &cfg.FixedBills[i]
		}
	}
	return nil
}

func (m *memProfileStore) UpdateBillFields(_ context.Context, userID, billID string, fields map[string]any) (int64, error) {
	bill := m.findBill(userID, billID)
	if bill == nil {
		return 0, nil
	}
	for k, v := range fields {
		switch k {
		case "name":
			bill.Name = v.(string)
		case "amount":
			bill.Amount = v.(float64)
		case "dueDay":
			bill.DueDay = v.(int)
		case "description":
			bill.Description = v.(string)
		case "category":
			bill.Category = v.(string)
		case "autopay":
			bill.Autopay = v.(bool)
		case "reminder":
			bill.Reminder = v.(bool)
		case "status":
			bill.Status = v.(string)
		}
	}
	bill.UpdatedAt = time.Now().UTC()
	return 1, nil
}

func (m *memProfileStore) PushPaymentRecord(_ context.Context, userID, billID string, record models.PaymentRecord) (int64, error) {
	bill := m.findBill(userID, billID)
	if bill == nil {
		return 0, nil
	}
	bill.PaymentHistory = append(bill.PaymentHistory, record)
	return 1, nil
}

func (m *memProfileStore) PullPaymentRecords(_ context.Context, userID, billID, month string) (int64, error) {
	bill := m.findBill(userID, billID)
	if bill == nil {
		return 0, nil
	}
	kept := bill.PaymentHistory[:0]
	var removed int64
	for _, record := range bill.PaymentHistory {
		if record.Month == month {
			removed++
			continue
		}
		kept = append(kept, record)
	}
	bill.PaymentHistory = kept
	return removed, nil
}

// newTestServices wires every service over fresh in-memory stores.
func newTestServices() (*SpendingService, *ProjectService, *FixedBillService, *SummaryService, *memSpendingStore, *memProfileStore) {
	ledger := &memSpendingStore{}
	profile := newMemProfileStore()
	projects := NewProjectService(profile, ledger)
	spendings := NewSpendingService(ledger, projects)
	bills := NewFixedBillService(profile)
	summary := NewSummaryService(spendings, bills, profile)
	return spendings, projects, bills, summary, ledger, profile
}

func floatPtr(f float64) *float64 { return &f }
