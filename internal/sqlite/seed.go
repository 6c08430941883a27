package sqlite

import (
	"github.com/mesh-intelligence/homestead/pkg/types"
)

// builtInCategory describes a category seeded on first run.
type builtInCategory struct {
	name  string
	icon  string
	color string
}

// builtInCategories lists the seeded rows per taxonomy. Slice position
// becomes the sort order.
var builtInCategories = map[string][]builtInCategory{
	types.CategoryExpenseType: {
		{"Repair", "wrench", "#E57373"},
		{"Maintenance", "tools", "#64B5F6"},
		{"Improvement", "hammer", "#81C784"},
		{"Purchase", "cart", "#FFB74D"},
		{"Utility", "bolt", "#BA68C8"},
		{"Other", "dots", "#90A4AE"},
	},
	types.CategoryExpenseCategory: {
		{"Plumbing", "droplet", "#4FC3F7"},
		{"Electrical", "plug", "#FFD54F"},
		{"HVAC", "fan", "#4DB6AC"},
		{"Appliances", "fridge", "#A1887F"},
		{"Landscaping", "leaf", "#AED581"},
		{"Cleaning", "sparkles", "#F06292"},
		{"Furniture", "sofa", "#9575CD"},
		{"Other", "dots", "#90A4AE"},
	},
	types.CategoryBill: {
		{"Mortgage", "home", "#7986CB"},
		{"Rent", "key", "#4DD0E1"},
		{"Insurance", "shield", "#81C784"},
		{"Property Tax", "receipt", "#FF8A65"},
		{"Electricity", "bolt", "#FFD54F"},
		{"Water", "droplet", "#4FC3F7"},
		{"Gas", "flame", "#FFB74D"},
		{"Internet", "wifi", "#BA68C8"},
		{"HOA", "users", "#A1887F"},
		{"Other", "dots", "#90A4AE"},
	},
}

// seedTypes fixes the order taxonomies are seeded in.
var seedTypes = []string{
	types.CategoryExpenseType,
	types.CategoryExpenseCategory,
	types.CategoryBill,
}
