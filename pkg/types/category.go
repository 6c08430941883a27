package types

import "time"

// CustomCategory is an entry in one of the user-editable taxonomies. Rows
// seeded on first run carry IsDefault.
type CustomCategory struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	Color     string    `json:"color"`
	SortOrder int       `json:"sort_order"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CustomCategoryPatch lists the category fields Update may change.
type CustomCategoryPatch struct {
	Name      *string
	Icon      *string
	Color     *string
	SortOrder *int
}
