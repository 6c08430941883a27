package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Property is a house, apartment, or other real estate the user tracks.
// Every other owned entity hangs off a property.
type Property struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Address       string              `json:"address"`
	PropertyType  string              `json:"property_type"`
	PurchaseDate  *time.Time          `json:"purchase_date,omitempty"`
	PurchasePrice decimal.NullDecimal `json:"purchase_price"`
	CurrentValue  decimal.NullDecimal `json:"current_value"`
	SquareFootage int                 `json:"square_footage"`
	YearBuilt     int                 `json:"year_built"`
	ImageURI      string              `json:"image_uri"`
	Notes         string              `json:"notes"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// PropertyPatch lists the property fields Update may change.
type PropertyPatch struct {
	Name          *string
	Address       *string
	PropertyType  *string
	PurchaseDate  *time.Time
	PurchasePrice *decimal.NullDecimal
	CurrentValue  *decimal.NullDecimal
	SquareFootage *int
	YearBuilt     *int
	ImageURI      *string
	Notes         *string
}

// PropertySummary aggregates the headline numbers for one property.
type PropertySummary struct {
	Property             Property        `json:"property"`
	RoomCount            int             `json:"room_count"`
	AssetCount           int             `json:"asset_count"`
	OpenTaskCount        int             `json:"open_task_count"`
	TotalAssetValue      decimal.Decimal `json:"total_asset_value"`
	TotalExpenses        decimal.Decimal `json:"total_expenses"`
	MonthlyRecurringBill decimal.Decimal `json:"monthly_recurring_bill"`
}

// Room is a named space within a property.
type Room struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"property_id"`
	Name       string    `json:"name"`
	RoomType   string    `json:"room_type"`
	Floor      int       `json:"floor"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// RoomPatch lists the room fields Update may change.
type RoomPatch struct {
	Name     *string
	RoomType *string
	Floor    *int
	Notes    *string
}
