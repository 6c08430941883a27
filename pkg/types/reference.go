package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaintCode records the paint used on a surface.
type PaintCode struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"property_id"`
	RoomID     string    `json:"room_id,omitempty"`
	Location   string    `json:"location"`
	Brand      string    `json:"brand"`
	ColorName  string    `json:"color_name"`
	ColorCode  string    `json:"color_code"`
	Finish     string    `json:"finish"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// PaintCodePatch lists the paint code fields Update may change.
type PaintCodePatch struct {
	RoomID    *string
	Location  *string
	Brand     *string
	ColorName *string
	ColorCode *string
	Finish    *string
	Notes     *string
}

// Emergency shutoff kinds.
const (
	ShutoffWater    = "water"
	ShutoffGas      = "gas"
	ShutoffElectric = "electric"
	ShutoffOther    = "other"
)

// EmergencyShutoff tells where and how to cut a utility.
type EmergencyShutoff struct {
	ID           string    `json:"id"`
	PropertyID   string    `json:"property_id"`
	ShutoffType  string    `json:"shutoff_type"`
	Location     string    `json:"location"`
	Instructions string    `json:"instructions"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// EmergencyShutoffPatch lists the shutoff fields Update may change.
type EmergencyShutoffPatch struct {
	ShutoffType  *string
	Location     *string
	Instructions *string
	Notes        *string
}

// Measurement is a recorded dimension. Measurements taken in a room are
// deleted with the room.
type Measurement struct {
	ID         string          `json:"id"`
	PropertyID string          `json:"property_id"`
	RoomID     string          `json:"room_id,omitempty"`
	AssetID    string          `json:"asset_id,omitempty"`
	Name       string          `json:"name"`
	Value      decimal.Decimal `json:"value"`
	Unit       string          `json:"unit"`
	Notes      string          `json:"notes"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// MeasurementPatch lists the measurement fields Update may change.
type MeasurementPatch struct {
	RoomID  *string
	AssetID *string
	Name    *string
	Value   *decimal.Decimal
	Unit    *string
	Notes   *string
}

// StorageBox is a labeled container and its contents.
type StorageBox struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"property_id"`
	RoomID     string    `json:"room_id,omitempty"`
	Name       string    `json:"name"`
	Location   string    `json:"location"`
	Contents   string    `json:"contents"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// StorageBoxPatch lists the storage box fields Update may change.
type StorageBoxPatch struct {
	RoomID   *string
	Name     *string
	Location *string
	Contents *string
	Notes    *string
}

// WiFiInfo is a wireless network at a property.
type WiFiInfo struct {
	ID           string    `json:"id"`
	PropertyID   string    `json:"property_id"`
	NetworkName  string    `json:"network_name"`
	Password     string    `json:"password"`
	SecurityType string    `json:"security_type"`
	IsGuest      bool      `json:"is_guest"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// WiFiInfoPatch lists the network fields Update may change.
type WiFiInfoPatch struct {
	NetworkName  *string
	Password     *string
	SecurityType *string
	IsGuest      *bool
	Notes        *string
}
