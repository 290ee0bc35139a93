package models

import "time"

// Fixed bill statuses
const (
	BillActive    = "ACTIVE"
	BillPaused    = "PAUSED"
	BillCancelled = "CANCELLED"
)

// FixedBill is a recurring monthly obligation embedded in the user's
// ProfileConfig. PaymentHistory holds at most one record per month.
type FixedBill struct {
	BillID         string          `json:"billId" bson:"billId"`
	Name           string          `json:"name" bson:"name"`
	Description    string          `json:"description" bson:"description"`
	Amount         float64         `json:"amount" bson:"amount"`
	DueDay         int             `json:"dueDay" bson:"dueDay"`
	Category       string          `json:"category" bson:"category"`
	Status         string          `json:"status" bson:"status"`
	Autopay        bool            `json:"autopay" bson:"autopay"`
	Reminder       bool            `json:"reminder" bson:"reminder"`
	PaymentHistory []PaymentRecord `json:"paymentHistory" bson:"paymentHistory"`
	CreatedAt      time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt" bson:"updatedAt"`
}

// PaymentRecord marks a bill paid (or explicitly unpaid) for one month.
type PaymentRecord struct {
	PaymentID string     `json:"paymentId" bson:"paymentId"`
	BillID    string     `json:"billId" bson:"billId"`
	Month     string     `json:"month" bson:"month"`
	Amount    float64    `json:"amount" bson:"amount"`
	Paid      bool       `json:"paid" bson:"paid"`
	PaidDate  *time.Time `json:"paidDate" bson:"paidDate"`
	CreatedAt time.Time  `json:"createdAt" bson:"createdAt"`
}

// BillMonthStatus is the payment status of one bill for one month. When no
// payment record exists the canonical shape is
// {paid:false, paidDate:null, amount:bill.amount}.
type BillMonthStatus struct {
	Paid     bool       `json:"paid"`
	PaidDate *time.Time `json:"paidDate"`
	Amount   float64    `json:"amount"`
}

// BillSummaryItem is one row of the month summary list.
type BillSummaryItem struct {
	BillID   string     `json:"billId"`
	Name     string     `json:"name"`
	Category string     `json:"category"`
	DueDay   int        `json:"dueDay"`
	Amount   float64    `json:"amount"`
	Paid     bool       `json:"paid"`
	PaidDate *time.Time `json:"paidDate"`
}

// FixedBillsSummary aggregates the ACTIVE bills of one month.
type FixedBillsSummary struct {
	Month          string            `json:"month"`
	TotalAmount    float64           `json:"totalAmount"`
	PaidAmount     float64           `json:"paidAmount"`
	PendingAmount  float64           `json:"pendingAmount"`
	PaidPercentage float64           `json:"paidPercentage"`
	BillsCount     int               `json:"billsCount"`
	PaidCount      int               `json:"paidCount"`
	Bills          []BillSummaryItem `json:"bills"`
}
