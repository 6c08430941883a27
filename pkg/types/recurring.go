package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecurringTemplate defines a bill that repeats at a fixed frequency.
// EstimatedAmount is the expected charge per period.
type RecurringTemplate struct {
	ID              string          `json:"id"`
	PropertyID      string          `json:"property_id"`
	Name            string          `json:"name"`
	BillCategory    string          `json:"bill_category"`
	EstimatedAmount decimal.Decimal `json:"estimated_amount"`
	Frequency       string          `json:"frequency"`
	DueDay          int             `json:"due_day"`
	NextDueDate     *time.Time      `json:"next_due_date,omitempty"`
	Vendor          string          `json:"vendor"`
	IsActive        bool            `json:"is_active"`
	AutoGenerate    bool            `json:"auto_generate"`
	Notes           string          `json:"notes"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// RecurringTemplatePatch lists the template fields Update may change.
type RecurringTemplatePatch struct {
	Name            *string
	BillCategory    *string
	EstimatedAmount *decimal.Decimal
	Frequency       *string
	DueDay          *int
	NextDueDate     *time.Time
	Vendor          *string
	IsActive        *bool
	AutoGenerate    *bool
	Notes           *string
}

// RecurringPayment records an actual payment made against a template.
type RecurringPayment struct {
	ID         string          `json:"id"`
	TemplateID string          `json:"template_id"`
	ExpenseID  string          `json:"expense_id,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	PaidDate   time.Time       `json:"paid_date"`
	Notes      string          `json:"notes"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// RecurringPaymentPatch lists the payment fields Update may change.
type RecurringPaymentPatch struct {
	ExpenseID *string
	Amount    *decimal.Decimal
	PaidDate  *time.Time
	Notes     *string
}

// RecurringTemplateSummary is a template with a summary of its payments.
type RecurringTemplateSummary struct {
	Template       RecurringTemplate   `json:"template"`
	LastPaidDate   *time.Time          `json:"last_paid_date,omitempty"`
	LastPaidAmount decimal.NullDecimal `json:"last_paid_amount"`
	PaymentCount   int                 `json:"payment_count"`
	TotalPaid      decimal.Decimal     `json:"total_paid"`
}
