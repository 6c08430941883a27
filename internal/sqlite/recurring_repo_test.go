package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/homestead/pkg/types"
)

func mustTemplate(t *testing.T, s *Store, tmpl types.RecurringTemplate) *types.RecurringTemplate {
	t.Helper()
	out, err := s.RecurringTemplates.Create(context.Background(), &tmpl)
	require.NoError(t, err)
	return out
}

func TestRecurringTemplateRepo_MonthlyTotal(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := mustProperty(t, s, "Lake House")

	mustTemplate(t, s, types.RecurringTemplate{
		PropertyID: p.ID, Name: "Internet", Frequency: types.BillMonthly,
		EstimatedAmount: money("100"), IsActive: true,
	})
	total, err := s.RecurringTemplates.GetMonthlyTotal(ctx, p.ID)
	require.NoError(t, err)
	assertMoney(t, "100", total)

	mustTemplate(t, s, types.RecurringTemplate{
		PropertyID: p.ID, Name: "Water", Frequency: types.BillQuarterly,
		EstimatedAmount: money("300"), IsActive: true,
	})
	total, err = s.RecurringTemplates.GetMonthlyTotal(ctx, p.ID)
	require.NoError(t, err)
	assertMoney(t, "200", total)

	// Inactive templates do not count.
	mustTemplate(t, s, types.RecurringTemplate{
		PropertyID: p.ID, Name: "Old alarm contract", Frequency: types.BillMonthly,
		EstimatedAmount: money("40"), IsActive: false,
	})
	total, err = s.RecurringTemplates.GetMonthlyTotal(ctx, p.ID)
	require.NoError(t, err)
	assertMoney(t, "200", total)

	active, err := s.RecurringTemplates.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	_, err = s.RecurringTemplates.Create(ctx, &types.RecurringTemplate{PropertyID: p.ID, Name: "Bad", Frequency: "daily"})
	assert.ErrorIs(t, err, types.ErrInvalidData)
}

func TestRecurringTemplateRepo_DueAndAdvance(t *testing.T) {
	s := newTestStore(t, WithClock(fixedClock))
	ctx := context.Background()
	p := mustProperty(t, s, "Lake House")

	jan31 := day(2024, time.January, 31)
	rent := mustTemplate(t, s, types.RecurringTemplate{
		PropertyID: p.ID, Name: "Rent", Frequency: types.BillMonthly,
		EstimatedAmount: money("1500"), NextDueDate: &jan31, IsActive: true,
	})
	later := day(2024, time.June, 1)
	mustTemplate(t, s, types.RecurringTemplate{
		PropertyID: p.ID, Name: "Insurance", Frequency: types.BillYearly,
		EstimatedAmount: money("900"), NextDueDate: &later, IsActive: true,
	})
	lawn := mustTemplate(t, s, types.RecurringTemplate{
		PropertyID: p.ID, Name: "Lawn", Frequency: types.BillBiweekly,
		EstimatedAmount: money("45"), IsActive: true,
	})

	due, err := s.RecurringTemplates.GetDue(ctx, day(2024, time.March, 15))
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, rent.ID, due[0].ID)

	// Month arithmetic normalizes: Jan 31 plus one month lands on Mar 2 in a
	// leap year.
	advanced, err := s.RecurringTemplates.AdvanceNextDueDate(ctx, rent.ID)
	require.NoError(t, err)
	require.NotNil(t, advanced.NextDueDate)
	assert.Equal(t, day(2024, time.March, 2), *advanced.NextDueDate)

	// Without a due date the period starts today.
	advanced, err = s.RecurringTemplates.AdvanceNextDueDate(ctx, lawn.ID)
	require.NoError(t, err)
	require.NotNil(t, advanced.NextDueDate)
	assert.Equal(t, day(2024, time.March, 29), *advanced.NextDueDate)
}

func TestRecurringPaymentRepo(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := mustProperty(t, s, "Lake House")
	power := mustTemplate(t, s, types.RecurringTemplate{
		PropertyID: p.ID, Name: "Power", Frequency: types.BillMonthly,
		EstimatedAmount: money("90"), IsActive: true,
	})
	mustTemplate(t, s, types.RecurringTemplate{
		PropertyID: p.ID, Name: "Gas", Frequency: types.BillMonthly,
		EstimatedAmount: money("40"), IsActive: true,
	})

	pay := func(amount string, paid time.Time) {
		t.Helper()
		_, err := s.RecurringPayments.Create(ctx, &types.RecurringPayment{
			TemplateID: power.ID, Amount: money(amount), PaidDate: paid,
		})
		require.NoError(t, err)
	}
	pay("88.40", day(2024, time.January, 3))
	pay("95.10", day(2024, time.February, 3))
	pay("91.00", day(2024, time.March, 3))

	history, err := s.RecurringPayments.ListByTemplate(ctx, power.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, day(2024, time.March, 3), history[0].PaidDate)

	total, err := s.RecurringPayments.GetTotalByTemplate(ctx, power.ID)
	require.NoError(t, err)
	assertMoney(t, "274.50", total)

	q1, err := s.RecurringPayments.GetTotalForPeriod(ctx, p.ID, day(2024, time.February, 1), day(2024, time.March, 31))
	require.NoError(t, err)
	assertMoney(t, "186.10", q1)

	summaries, err := s.RecurringTemplates.ListWithLatestPayment(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	gas, pw := summaries[0], summaries[1]
	assert.Equal(t, "Gas", gas.Template.Name)
	assert.Nil(t, gas.LastPaidDate)
	assert.False(t, gas.LastPaidAmount.Valid)
	assert.Equal(t, 0, gas.PaymentCount)
	assert.Equal(t, "Power", pw.Template.Name)
	require.NotNil(t, pw.LastPaidDate)
	assert.Equal(t, day(2024, time.March, 3), *pw.LastPaidDate)
	assertMoney(t, "91", pw.LastPaidAmount.Decimal)
	assert.Equal(t, 3, pw.PaymentCount)
	assertMoney(t, "274.50", pw.TotalPaid)

	// History goes with the template.
	require.NoError(t, s.RecurringTemplates.Delete(ctx, power.ID))
	history, err = s.RecurringPayments.ListByTemplate(ctx, power.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
}
