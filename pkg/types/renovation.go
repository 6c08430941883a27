package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Renovation is a project at a property. Its total cost is CostEstimate plus
// the sum of its RenovationCost rows.
type Renovation struct {
	ID           string          `json:"id"`
	PropertyID   string          `json:"property_id"`
	RoomID       string          `json:"room_id,omitempty"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Status       string          `json:"status"`
	StartDate    *time.Time      `json:"start_date,omitempty"`
	EndDate      *time.Time      `json:"end_date,omitempty"`
	CostEstimate decimal.Decimal `json:"cost_estimate"`
	Notes        string          `json:"notes"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// RenovationPatch lists the renovation fields Update may change.
type RenovationPatch struct {
	RoomID       *string
	Title        *string
	Description  *string
	Status       *string
	StartDate    *time.Time
	EndDate      *time.Time
	CostEstimate *decimal.Decimal
	Notes        *string
}

// RenovationWorker links a worker to a renovation.
type RenovationWorker struct {
	ID           string    `json:"id"`
	RenovationID string    `json:"renovation_id"`
	WorkerID     string    `json:"worker_id"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RenovationAsset links an asset to a renovation.
type RenovationAsset struct {
	ID           string    `json:"id"`
	RenovationID string    `json:"renovation_id"`
	AssetID      string    `json:"asset_id"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RenovationCost is an itemized cost incurred by a renovation.
type RenovationCost struct {
	ID           string          `json:"id"`
	RenovationID string          `json:"renovation_id"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	Amount       decimal.Decimal `json:"amount"`
	Date         *time.Time      `json:"date,omitempty"`
	Notes        string          `json:"notes"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// RenovationCostPatch lists the cost fields UpdateCost may change.
type RenovationCostPatch struct {
	Description *string
	Category    *string
	Amount      *decimal.Decimal
	Date        *time.Time
	Notes       *string
}

// RenovationWorkerDetail is a renovation worker link joined with the worker.
type RenovationWorkerDetail struct {
	RenovationWorker
	WorkerName string `json:"worker_name"`
	Company    string `json:"company"`
}

// RenovationAssetDetail is a renovation asset link joined with the asset.
type RenovationAssetDetail struct {
	RenovationAsset
	AssetName string `json:"asset_name"`
}

// RenovationDetails is a renovation with every child row and its total cost.
type RenovationDetails struct {
	Renovation Renovation               `json:"renovation"`
	Workers    []RenovationWorkerDetail `json:"workers"`
	Assets     []RenovationAssetDetail  `json:"assets"`
	Costs      []RenovationCost         `json:"costs"`
	TotalCost  decimal.Decimal          `json:"total_cost"`
}
