package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Asset is an appliance, fixture, or other item owned at a property,
// optionally placed in a room.
type Asset struct {
	ID                 string              `json:"id"`
	PropertyID         string              `json:"property_id"`
	RoomID             string              `json:"room_id,omitempty"`
	Name               string              `json:"name"`
	Category           string              `json:"category"`
	Brand              string              `json:"brand"`
	Model              string              `json:"model"`
	SerialNumber       string              `json:"serial_number"`
	PurchaseDate       *time.Time          `json:"purchase_date,omitempty"`
	PurchasePrice      decimal.NullDecimal `json:"purchase_price"`
	WarrantyExpiration *time.Time          `json:"warranty_expiration,omitempty"`
	ManualURL          string              `json:"manual_url"`
	Notes              string              `json:"notes"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

// AssetPatch lists the asset fields Update may change. An empty RoomID
// moves the asset out of its room.
type AssetPatch struct {
	RoomID             *string
	Name               *string
	Category           *string
	Brand              *string
	Model              *string
	SerialNumber       *string
	PurchaseDate       *time.Time
	PurchasePrice      *decimal.NullDecimal
	WarrantyExpiration *time.Time
	ManualURL          *string
	Notes              *string
}
