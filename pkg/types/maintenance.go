package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaintenanceTask is a one-off or recurring upkeep job. The task tracks only
// its latest completion; history lives in MaintenanceCompletion rows.
type MaintenanceTask struct {
	ID                string              `json:"id"`
	PropertyID        string              `json:"property_id"`
	AssetID           string              `json:"asset_id,omitempty"`
	AssignedWorkerID  string              `json:"assigned_worker_id,omitempty"`
	Title             string              `json:"title"`
	Description       string              `json:"description"`
	Frequency         string              `json:"frequency"`
	Priority          string              `json:"priority"`
	NextDueDate       *time.Time          `json:"next_due_date,omitempty"`
	LastCompletedDate *time.Time          `json:"last_completed_date,omitempty"`
	IsCompleted       bool                `json:"is_completed"`
	EstimatedCost     decimal.NullDecimal `json:"estimated_cost"`
	Notes             string              `json:"notes"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

// MaintenanceTaskPatch lists the task fields Update may change.
type MaintenanceTaskPatch struct {
	AssetID           *string
	AssignedWorkerID  *string
	Title             *string
	Description       *string
	Frequency         *string
	Priority          *string
	NextDueDate       *time.Time
	LastCompletedDate *time.Time
	IsCompleted       *bool
	EstimatedCost     *decimal.NullDecimal
	Notes             *string
}

// MaintenanceCompletion is one entry in a task's append-only completion log.
type MaintenanceCompletion struct {
	ID            string              `json:"id"`
	TaskID        string              `json:"task_id"`
	WorkerID      string              `json:"worker_id,omitempty"`
	CompletedDate time.Time           `json:"completed_date"`
	Cost          decimal.NullDecimal `json:"cost"`
	Notes         string              `json:"notes"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// MaintenanceCompletionPatch lists the completion fields Update may change.
type MaintenanceCompletionPatch struct {
	WorkerID      *string
	CompletedDate *time.Time
	Cost          *decimal.NullDecimal
	Notes         *string
}

// CompletionDetails carries the optional facts recorded with MarkComplete.
type CompletionDetails struct {
	WorkerID string
	Cost     decimal.NullDecimal
	Notes    string
}
