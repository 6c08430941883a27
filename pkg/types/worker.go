package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Worker is a contractor or tradesperson the user hires.
type Worker struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Company    string              `json:"company"`
	Phone      string              `json:"phone"`
	Email      string              `json:"email"`
	Specialty  []string            `json:"specialty"`
	HourlyRate decimal.NullDecimal `json:"hourly_rate"`
	Rating     int                 `json:"rating"`
	Notes      string              `json:"notes"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// WorkerPatch lists the worker fields Update may change.
type WorkerPatch struct {
	Name       *string
	Company    *string
	Phone      *string
	Email      *string
	Specialty  *[]string
	HourlyRate *decimal.NullDecimal
	Rating     *int
	Notes      *string
}

// WorkerStats is a worker with totals derived from the expenses that
// reference them.
type WorkerStats struct {
	Worker       Worker          `json:"worker"`
	ExpenseCount int             `json:"expense_count"`
	TotalPaid    decimal.Decimal `json:"total_paid"`
	LastJobDate  *time.Time      `json:"last_job_date,omitempty"`
}

// WorkerNote is a dated remark about a worker, optionally tied to the
// property where the work happened.
type WorkerNote struct {
	ID         string    `json:"id"`
	WorkerID   string    `json:"worker_id"`
	PropertyID string    `json:"property_id,omitempty"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// WorkerNotePatch lists the worker note fields Update may change.
type WorkerNotePatch struct {
	PropertyID *string
	Content    *string
}
