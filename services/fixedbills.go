package services

import (
	"context"
	"sort"
	"time"

	"github.com/Tibluka/voicetaskapi/dates"
	"github.com/Tibluka/voicetaskapi/models"
	"github.com/google/uuid"
)

// FixedBillService manages recurring bill definitions and their per-month
// payment status inside the user's profile config.
type FixedBillService struct {
	profile ProfileStore
}

func NewFixedBillService(profile ProfileStore) *FixedBillService {
	return &FixedBillService{profile: profile}
}

// CreateFixedBillInput carries everything a new bill needs.
type CreateFixedBillInput struct {
	Name        string  `json:"name"`
	Amount      float64 `json:"amount"`
	DueDay      int     `json:"dueDay"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Autopay     bool    `json:"autopay"`
	Reminder    bool    `json:"reminder"`
}

// FixedBillUpdate carries the mutable bill fields; nil means unchanged.
type FixedBillUpdate struct {
	Name        *string
	Amount      *float64
	DueDay      *int
	Description *string
	Category    *string
	Autopay     *bool
	Reminder    *bool
	Status      *string
}

// BillListItem is a bill optionally decorated with its current-month status.
type BillListItem struct {
	models.FixedBill
	PaymentStatus *models.BillMonthStatus `json:"paymentStatus,omitempty"`
}

func (s *FixedBillService) CreateFixedBill(ctx context.Context, userID string, in CreateFixedBillInput) (*models.FixedBill, error) {
	invalid := []string{}
	if in.Name == "" {
		invalid = append(invalid, "name")
	}
	if in.Amount <= 0 {
		invalid = append(invalid, "amount")
	}
	if in.DueDay < 1 || in.DueDay > 31 {
		invalid = append(invalid, "dueDay")
	}
	if in.Category == "" {
		invalid = append(invalid, "category")
	}
	if len(invalid) > 0 {
		return nil, &models.ValidationError{Fields: invalid}
	}

	if _, err := s.profile.GetOrCreate(ctx, userID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	bill := models.FixedBill{
		BillID:         uuid.NewString(),
		Name:           in.Name,
		Description:    in.Description,
		Amount:         in.Amount,
		DueDay:         in.DueDay,
		Category:       in.Category,
		Status:         models.BillActive,
		Autopay:        in.Autopay,
		Reminder:       in.Reminder,
		PaymentHistory: []models.PaymentRecord{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.profile.AddFixedBill(ctx, userID, bill); err != nil {
		return nil, err
	}
	return &bill, nil
}

func (s *FixedBillService) GetFixedBillByID(ctx context.Context, userID, billID string) (*models.FixedBill, error) {
	cfg, err := s.profile.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cfg != nil {
		for i := range cfg.FixedBills {
			if cfg.FixedBills[i].BillID == billID {
				return &cfg.FixedBills[i], nil
			}
		}
	}
	return nil, models.NewNotFoundError("fixed bill", billID)
}

// MarkBillAsPaid records a payment for one month with replace semantics: any
// record already present for that month is removed first, so the month never
// holds more than one record. A nil amount falls back to the bill's standard
// amount.
func (s *FixedBillService) MarkBillAsPaid(ctx context.Context, userID, billID, yearMonth string, amount *float64) (*models.PaymentRecord, error) {
	if !dates.ValidYearMonth(yearMonth) {
		return nil, models.NewValidationError("yearMonth")
	}
	bill, err := s.GetFixedBillByID(ctx, userID, billID)
	if err != nil {
		return nil, err
	}

	paid := bill.Amount
	if amount != nil {
		if *amount <= 0 {
			return nil, models.NewValidationError("amount")
		}
		paid = *amount
	}

	if _, err := s.profile.PullPaymentRecords(ctx, userID, billID, yearMonth); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	record := models.PaymentRecord{
		PaymentID: uuid.NewString(),
		BillID:    billID,
		Month:     yearMonth,
		Amount:    paid,
		Paid:      true,
		PaidDate:  &now,
		CreatedAt: now,
	}
	matched, err := s.profile.PushPaymentRecord(ctx, userID, billID, record)
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		return nil, models.NewNotFoundError("fixed bill", billID)
	}
	return &record, nil
}

// MarkBillAsUnpaid removes the month's payment record. Absence is a no-op,
// not an error.
func (s *FixedBillService) MarkBillAsUnpaid(ctx context.Context, userID, billID, yearMonth string) error {
	if !dates.ValidYearMonth(yearMonth) {
		return models.NewValidationError("yearMonth")
	}
	if _, err := s.GetFixedBillByID(ctx, userID, billID); err != nil {
		return err
	}
	_, err := s.profile.PullPaymentRecords(ctx, userID, billID, yearMonth)
	return err
}

// GetBillStatusForMonth reports a bill's payment status for one month. With
// no payment record the canonical absent value is
// {paid:false, paidDate:null, amount:bill.amount}.
func (s *FixedBillService) GetBillStatusForMonth(bill *models.FixedBill, yearMonth string) models.BillMonthStatus {
	for _, record := range bill.PaymentHistory {
		if record.Month == yearMonth {
			return models.BillMonthStatus{
				Paid:     record.Paid,
				PaidDate: record.PaidDate,
				Amount:   record.Amount,
			}
		}
	}
	return models.BillMonthStatus{Paid: false, PaidDate: nil, Amount: bill.Amount}
}

func (s *FixedBillService) ListFixedBills(ctx context.Context, userID, status string, includePayment bool) ([]BillListItem, error) {
	cfg, err := s.profile.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := []BillListItem{}
	if cfg == nil {
		return items, nil
	}

	currentMonth := dates.CurrentMonth()
	for i := range cfg.FixedBills {
		bill := cfg.FixedBills[i]
		if status != "" && bill.Status != status {
			continue
		}
		item := BillListItem{FixedBill: bill}
		if includePayment {
			payment := s.GetBillStatusForMonth(&bill, currentMonth)
			item.PaymentStatus = &payment
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *FixedBillService) UpdateFixedBill(ctx context.Context, userID, billID string, update FixedBillUpdate) (*models.FixedBill, error) {
	fields := map[string]any{}

	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.Amount != nil {
		fields["amount"] = *update.Amount
	}
	if update.DueDay != nil {
		if *update.DueDay < 1 || *update.DueDay > 31 {
			return nil, models.NewValidationError("dueDay")
		}
		fields["dueDay"] = *update.DueDay
	}
	if update.Description != nil {
		fields["description"] = *update.Description
	}
	if update.Category != nil {
		fields["category"] = *update.Category
	}
	if update.Autopay != nil {
		fields["autopay"] = *update.Autopay
	}
	if update.Reminder != nil {
		fields["reminder"] = *update.Reminder
	}
	if update.Status != nil {
		switch *update.Status {
		case models.BillActive, models.BillPaused, models.BillCancelled:
		default:
			return nil, models.NewValidationError("status")
		}
		fields["status"] = *update.Status
	}

	if len(fields) == 0 {
		return nil, models.NewValidationError("updates")
	}

	matched, err := s.profile.UpdateBillFields(ctx, userID, billID, fields)
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		return nil, models.NewNotFoundError("fixed bill", billID)
	}
	return s.GetFixedBillByID(ctx, userID, billID)
}

// CancelFixedBill soft-deletes a bill by moving it to CANCELLED; the bill
// and its payment history stay in place and can be reactivated.
func (s *FixedBillService) CancelFixedBill(ctx context.Context, userID, billID string) (*models.FixedBill, error) {
	if _, err := s.GetFixedBillByID(ctx, userID, billID); err != nil {
		return nil, err
	}
	cancelled := models.BillCancelled
	return s.UpdateFixedBill(ctx, userID, billID, FixedBillUpdate{Status: &cancelled})
}

// GetFixedBillsSummary aggregates the ACTIVE bills of one month: totals,
// paid ratio and a per-bill list sorted unpaid-first, then by due day.
func (s *FixedBillService) GetFixedBillsSummary(ctx context.Context, userID, yearMonth string) (*models.FixedBillsSummary, error) {
	if !dates.ValidYearMonth(yearMonth) {
		return nil, models.NewValidationError("yearMonth")
	}

	cfg, err := s.profile.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &models.FixedBillsSummary{
		Month: yearMonth,
		Bills: []models.BillSummaryItem{},
	}
	if cfg == nil {
		return summary, nil
	}

	for i := range cfg.FixedBills {
		bill := &cfg.FixedBills[i]
		if bill.Status != models.BillActive {
			continue
		}

		status := s.GetBillStatusForMonth(bill, yearMonth)
		summary.BillsCount++
		summary.TotalAmount += bill.Amount
		if status.Paid {
			summary.PaidCount++
			summary.PaidAmount += status.Amount
		} else {
			summary.PendingAmount += bill.Amount
		}

		summary.Bills = append(summary.Bills, models.BillSummaryItem{
			BillID:   bill.BillID,
			Name:     bill.Name,
			Category: bill.Category,
			DueDay:   bill.DueDay,
			Amount:   status.Amount,
			Paid:     status.Paid,
			PaidDate: status.PaidDate,
		})
	}

	if summary.TotalAmount > 0 {
		summary.PaidPercentage = round2(summary.PaidAmount / summary.TotalAmount * 100)
	}

	sort.SliceStable(summary.Bills, func(i, j int) bool {
		if summary.Bills[i].Paid != summary.Bills[j].Paid {
			return !summary.Bills[i].Paid
		}
		return summary.Bills[i].DueDay < summary.Bills[j].DueDay
	})

	return summary, nil
}
