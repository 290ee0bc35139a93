// Package services implements the ledger, installment, project, fixed-bill,
// summary and orchestration logic over narrow store interfaces. Every
// operation takes the owning userId explicitly.
package services

import (
	"context"

	"github.com/Tibluka/voicetaskapi/models"
)

// SpendingStore is the ledger side of the document store: point lookup by
// user+id, filtered scans, grouped aggregation, and multi-record plan writes
// that are atomic or compensated.
type SpendingStore interface {
	InsertOne(ctx context.Context, item *models.Spending) error
	InsertPlan(ctx context.Context, parent *models.Spending, children []models.Spending) error
	FindByID(ctx context.Context, userID, id string) (*models.Spending, error)
	Find(ctx context.Context, f models.SpendingFilter) ([]models.Spending, error)
	FindPlan(ctx context.Context, userID, parentID string) ([]models.Spending, error)
	Delete(ctx context.Context, userID, id string) (int64, error)
	DeletePlan(ctx context.Context, userID, parentID string) (int64, error)
	SumByCategory(ctx context.Context, f models.SpendingFilter) ([]models.CategoryTotal, error)
	SumByMonth(ctx context.Context, f models.SpendingFilter) ([]models.MonthTotal, error)
}

// ProfileStore is the aggregate-root side of the document store: one profile
// document per user with atomic single-document updates over its embedded
// project and fixed-bill arrays.
type ProfileStore interface {
	Get(ctx context.Context, userID string) (*models.ProfileConfig, error)
	GetOrCreate(ctx context.Context, userID string) (*models.ProfileConfig, error)
	Insert(ctx context.Context, cfg *models.ProfileConfig) error
	SetFields(ctx context.Context, userID string, fields map[string]any) (int64, error)

	AddProject(ctx context.Context, userID string, project models.Project) error
	ApplyProjectDelta(ctx context.Context, userID, projectID string, delta float64, entry *models.ExpenseEntry) (int64, error)
	UpdateProjectFields(ctx context.Context, userID, projectID string, fields map[string]any) (int64, error)
	RemoveProject(ctx context.Context, userID, projectID string) (int64, error)

	AddFixedBill(ctx context.Context, userID string, bill models.FixedBill) error
	UpdateBillFields(ctx context.Context, userID, billID string, fields map[string]any) (int64, error)
	PushPaymentRecord(ctx context.Context, userID, billID string, record models.PaymentRecord) (int64, error)
	PullPaymentRecords(ctx context.Context, userID, billID, month string) (int64, error)
}
