package types

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthlyEquivalent(t *testing.T) {
	amount := decimal.NewFromInt(120)
	tests := []struct {
		frequency string
		want      string
	}{
		{BillWeekly, "519.6"},
		{BillBiweekly, "260.4"},
		{BillMonthly, "120"},
		{BillQuarterly, "40"},
		{BillYearly, "10"},
		{"fortnightly", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.frequency, func(t *testing.T) {
			got := MonthlyEquivalent(tt.frequency, amount)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestAdvanceBillDate(t *testing.T) {
	from := date(2024, time.January, 31)
	tests := []struct {
		frequency string
		want      time.Time
	}{
		{BillWeekly, date(2024, time.February, 7)},
		{BillBiweekly, date(2024, time.February, 14)},
		// AddDate normalizes Feb 31 into March.
		{BillMonthly, date(2024, time.March, 2)},
		{BillQuarterly, date(2024, time.May, 1)},
		{BillYearly, date(2025, time.January, 31)},
		{"unknown", date(2024, time.March, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.frequency, func(t *testing.T) {
			assert.Equal(t, tt.want, AdvanceBillDate(tt.frequency, from))
		})
	}
}

func TestNextMaintenanceDue(t *testing.T) {
	done := date(2024, time.March, 15)
	tests := []struct {
		frequency string
		want      time.Time
		recurs    bool
	}{
		{MaintenanceOnce, time.Time{}, false},
		{MaintenanceWeekly, date(2024, time.March, 22), true},
		{MaintenanceMonthly, date(2024, time.April, 15), true},
		{MaintenanceQuarterly, date(2024, time.June, 15), true},
		{MaintenanceBiannual, date(2024, time.September, 15), true},
		{MaintenanceYearly, date(2025, time.March, 15), true},
		{"", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.frequency, func(t *testing.T) {
			got, ok := NextMaintenanceDue(tt.frequency, done)
			assert.Equal(t, tt.recurs, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidators(t *testing.T) {
	tests := []struct {
		name  string
		valid func(string) bool
		good  []string
		bad   []string
	}{
		{"bill frequency", ValidBillFrequency, []string{BillWeekly, BillYearly}, []string{"", "daily"}},
		{"maintenance frequency", ValidMaintenanceFrequency, []string{MaintenanceOnce, MaintenanceBiannual}, []string{"", "biweekly"}},
		{"priority", ValidPriority, []string{PriorityLow, PriorityUrgent}, []string{"", "critical"}},
		{"renovation status", ValidRenovationStatus, []string{RenovationPlanned, RenovationOnHold}, []string{"", "done"}},
		{"category type", ValidCategoryType, []string{CategoryExpenseType, CategoryBill}, []string{"", "asset_category"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, v := range tt.good {
				assert.True(t, tt.valid(v), "%q should be valid", v)
			}
			for _, v := range tt.bad {
				assert.False(t, tt.valid(v), "%q should be rejected", v)
			}
		})
	}
}

func TestStandardTableNames(t *testing.T) {
	seen := map[string]bool{}
	for _, name := range StandardTableNames {
		assert.False(t, seen[name], "%s listed twice", name)
		seen[name] = true
	}
	assert.Len(t, StandardTableNames, 24)
	assert.Equal(t, TableProperties, StandardTableNames[0])
}
