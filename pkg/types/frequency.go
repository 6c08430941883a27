package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recurring bill frequencies.
const (
	BillWeekly    = "weekly"
	BillBiweekly  = "biweekly"
	BillMonthly   = "monthly"
	BillQuarterly = "quarterly"
	BillYearly    = "yearly"
)

// Monthly multipliers for weekly and biweekly bills.
var (
	weeksPerMonth      = decimal.RequireFromString("4.33")
	fortnightsPerMonth = decimal.RequireFromString("2.17")
)

var validBillFrequencies = map[string]bool{
	BillWeekly:    true,
	BillBiweekly:  true,
	BillMonthly:   true,
	BillQuarterly: true,
	BillYearly:    true,
}

// ValidBillFrequency reports whether f is a recognized bill frequency.
func ValidBillFrequency(f string) bool {
	return validBillFrequencies[f]
}

// MonthlyEquivalent normalizes amount, billed at the given frequency, to a
// per-month estimate. Unknown frequencies contribute zero.
func MonthlyEquivalent(frequency string, amount decimal.Decimal) decimal.Decimal {
	switch frequency {
	case BillWeekly:
		return amount.Mul(weeksPerMonth)
	case BillBiweekly:
		return amount.Mul(fortnightsPerMonth)
	case BillMonthly:
		return amount
	case BillQuarterly:
		return amount.Div(decimal.NewFromInt(3))
	case BillYearly:
		return amount.Div(decimal.NewFromInt(12))
	default:
		return decimal.Zero
	}
}

// AdvanceBillDate returns the due date one billing period after from.
func AdvanceBillDate(frequency string, from time.Time) time.Time {
	switch frequency {
	case BillWeekly:
		return from.AddDate(0, 0, 7)
	case BillBiweekly:
		return from.AddDate(0, 0, 14)
	case BillQuarterly:
		return from.AddDate(0, 3, 0)
	case BillYearly:
		return from.AddDate(1, 0, 0)
	default:
		return from.AddDate(0, 1, 0)
	}
}

// Maintenance task frequencies. MaintenanceOnce marks a one-off task.
const (
	MaintenanceOnce      = "once"
	MaintenanceWeekly    = "weekly"
	MaintenanceMonthly   = "monthly"
	MaintenanceQuarterly = "quarterly"
	MaintenanceBiannual  = "biannual"
	MaintenanceYearly    = "yearly"
)

var validMaintenanceFrequencies = map[string]bool{
	MaintenanceOnce:      true,
	MaintenanceWeekly:    true,
	MaintenanceMonthly:   true,
	MaintenanceQuarterly: true,
	MaintenanceBiannual:  true,
	MaintenanceYearly:    true,
}

// ValidMaintenanceFrequency reports whether f is a recognized task frequency.
func ValidMaintenanceFrequency(f string) bool {
	return validMaintenanceFrequencies[f]
}

// NextMaintenanceDue returns the next due date for a task with the given
// frequency completed at now. The second result is false for one-off tasks,
// which are not rescheduled.
//
// The offset is taken from the completion time, not from the previous due
// date, so a late completion shifts every later cycle.
func NextMaintenanceDue(frequency string, now time.Time) (time.Time, bool) {
	switch frequency {
	case MaintenanceWeekly:
		return now.AddDate(0, 0, 7), true
	case MaintenanceMonthly:
		return now.AddDate(0, 1, 0), true
	case MaintenanceQuarterly:
		return now.AddDate(0, 3, 0), true
	case MaintenanceBiannual:
		return now.AddDate(0, 6, 0), true
	case MaintenanceYearly:
		return now.AddDate(1, 0, 0), true
	default:
		return time.Time{}, false
	}
}

// Maintenance priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

var validPriorities = map[string]bool{
	PriorityLow:    true,
	PriorityMedium: true,
	PriorityHigh:   true,
	PriorityUrgent: true,
}

// ValidPriority reports whether p is a recognized maintenance priority.
func ValidPriority(p string) bool {
	return validPriorities[p]
}

// Renovation statuses.
const (
	RenovationPlanned    = "planned"
	RenovationInProgress = "in_progress"
	RenovationOnHold     = "on_hold"
	RenovationCompleted  = "completed"
)

var validRenovationStatuses = map[string]bool{
	RenovationPlanned:    true,
	RenovationInProgress: true,
	RenovationOnHold:     true,
	RenovationCompleted:  true,
}

// ValidRenovationStatus reports whether s is a recognized renovation status.
func ValidRenovationStatus(s string) bool {
	return validRenovationStatuses[s]
}

// Custom category taxonomies.
const (
	CategoryExpenseType     = "expense_type"
	CategoryExpenseCategory = "expense_category"
	CategoryBill            = "bill_category"
)

var validCategoryTypes = map[string]bool{
	CategoryExpenseType:     true,
	CategoryExpenseCategory: true,
	CategoryBill:            true,
}

// ValidCategoryType reports whether t is a recognized category taxonomy.
func ValidCategoryType(t string) bool {
	return validCategoryTypes[t]
}
