package models

// Spending types
const (
	TypeSpending = "SPENDING"
	TypeRevenue  = "REVENUE"
)

// Consult operations
const (
	OperationSum            = "SUM"
	OperationMax            = "MAX"
	OperationMin            = "MIN"
	OperationCategory       = "CATEGORY"
	OperationComparative    = "COMPARATIVE"
	OperationConsultProject = "CONSULT_PROJECT"
)

// Spending is one ledger record. An installment purchase is stored as a
// parent record ("1/n") plus n-1 child records pointing back at it; dates are
// kept as YYYY-MM-DD strings so range filters compare lexicographically.
type Spending struct {
	ID              string  `json:"id" bson:"_id"`
	UserID          string  `json:"userId" bson:"userId"`
	Description     string  `json:"description" bson:"description"`
	Value           float64 `json:"value" bson:"value"`
	Type            string  `json:"type" bson:"type"`
	Category        string  `json:"category" bson:"category"`
	Date            string  `json:"date" bson:"date"`
	ProjectID       string  `json:"projectId,omitempty" bson:"projectId,omitempty"`
	Installments    int     `json:"installments,omitempty" bson:"installments,omitempty"`
	InstallmentInfo string  `json:"installmentInfo,omitempty" bson:"installment_info,omitempty"`
	IsParent        bool    `json:"isParent,omitempty" bson:"is_parent,omitempty"`
	ParentID        string  `json:"parentId,omitempty" bson:"parent_id,omitempty"`
}

// SpendingFilter is the declarative filter the ledger store understands.
// Date predicates are exclusive: DateOn is point equality, DateFrom/DateBefore
// form a [from, before) range and DateThrough closes the range inclusively.
type SpendingFilter struct {
	UserID    string
	Type      string
	Category  string
	ProjectID string

	// IncludeProjectLinked keeps records carrying a projectId in general
	// consults. Ignored when ProjectID is set.
	IncludeProjectLinked bool

	DateOn      string
	DateFrom    string
	DateBefore  string
	DateThrough string

	// InstallmentDetail switches from the default view (standalone records
	// plus installment parents) to every record carrying an installment
	// count. AllRecords disables the view constraint entirely.
	InstallmentDetail bool
	AllRecords        bool

	SortByValueDesc bool
	SortByValueAsc  bool
	SortByDateDesc  bool
	Limit           int64
}

// CategoryTotal is one CATEGORY aggregation bucket.
type CategoryTotal struct {
	Label string  `json:"label" bson:"_id"`
	Value float64 `json:"value" bson:"value"`
}

// MonthTotal is one COMPARATIVE aggregation bucket, Month as "MM/YYYY".
type MonthTotal struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}
