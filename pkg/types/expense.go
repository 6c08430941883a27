package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a single payment made for a property. Room, asset, worker, and
// recurring template references are optional and are cleared when the
// referenced row is deleted.
type Expense struct {
	ID                  string          `json:"id"`
	PropertyID          string          `json:"property_id"`
	RoomID              string          `json:"room_id,omitempty"`
	AssetID             string          `json:"asset_id,omitempty"`
	WorkerID            string          `json:"worker_id,omitempty"`
	RecurringTemplateID string          `json:"recurring_template_id,omitempty"`
	ExpenseType         string          `json:"expense_type"`
	Category            string          `json:"category"`
	Amount              decimal.Decimal `json:"amount"`
	Date                time.Time       `json:"date"`
	Description         string          `json:"description"`
	Vendor              string          `json:"vendor"`
	ReceiptURI          string          `json:"receipt_uri"`
	Tags                []string        `json:"tags"`
	IsTaxDeductible     bool            `json:"is_tax_deductible"`
	Notes               string          `json:"notes"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// ExpensePatch lists the expense fields Update may change.
type ExpensePatch struct {
	RoomID              *string
	AssetID             *string
	WorkerID            *string
	RecurringTemplateID *string
	ExpenseType         *string
	Category            *string
	Amount              *decimal.Decimal
	Date                *time.Time
	Description         *string
	Vendor              *string
	ReceiptURI          *string
	Tags                *[]string
	IsTaxDeductible     *bool
	Notes               *string
}

// ExpenseAsset attributes part of an expense to an asset. The amounts for
// one expense need not add up to the expense amount.
type ExpenseAsset struct {
	ID        string          `json:"id"`
	ExpenseID string          `json:"expense_id"`
	AssetID   string          `json:"asset_id"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ExpenseAssetDetail is an expense split joined with the asset name.
type ExpenseAssetDetail struct {
	ExpenseAsset
	AssetName string `json:"asset_name"`
}

// ExpenseWithAssets is an expense together with its per-asset splits.
type ExpenseWithAssets struct {
	Expense Expense              `json:"expense"`
	Assets  []ExpenseAssetDetail `json:"assets"`
}

// CategoryTotal is the sum and count of expenses in one category.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}
