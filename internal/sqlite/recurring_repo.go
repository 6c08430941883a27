package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/homestead/pkg/types"
)

var recurringTemplates = entityTable[types.RecurringTemplate]{
	name: types.TableRecurringTemplates,
	columns: []string{
		"id", "property_id", "name", "bill_category", "estimated_amount", "frequency",
		"due_day", "next_due_date", "vendor", "is_active", "auto_generate", "notes",
		"created_at", "updated_at",
	},
	scan: hydrateRecurringTemplate,
}

func recurringTemplateDest(t *types.RecurringTemplate) []any {
	return []any{&t.ID, &t.PropertyID, &t.Name, &t.BillCategory, &t.EstimatedAmount,
		&t.Frequency, &t.DueDay, nullDayCol(&t.NextDueDate), &t.Vendor, boolCol(&t.IsActive),
		boolCol(&t.AutoGenerate), &t.Notes, tsCol(&t.CreatedAt), tsCol(&t.UpdatedAt)}
}

func hydrateRecurringTemplate(s RowScanner) (types.RecurringTemplate, error) {
	var t types.RecurringTemplate
	if err := s.Scan(recurringTemplateDest(&t)...); err != nil {
		return types.RecurringTemplate{}, fmt.Errorf("hydrating recurring template: %w", err)
	}
	return t, nil
}

func hydrateTemplateSummary(s RowScanner) (types.RecurringTemplateSummary, error) {
	var sum types.RecurringTemplateSummary
	dest := append(recurringTemplateDest(&sum.Template),
		nullDayCol(&sum.LastPaidDate), &sum.LastPaidAmount, &sum.PaymentCount, &sum.TotalPaid)
	if err := s.Scan(dest...); err != nil {
		return types.RecurringTemplateSummary{}, fmt.Errorf("hydrating recurring template summary: %w", err)
	}
	sum.TotalPaid = sum.TotalPaid.Round(2)
	return sum, nil
}

// RecurringTemplateRepo stores recurring bill definitions.
type RecurringTemplateRepo struct{ repo }

func (r *RecurringTemplateRepo) Get(ctx context.Context, id string) (*types.RecurringTemplate, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return recurringTemplates.get(ctx, q, id)
}

func (r *RecurringTemplateRepo) List(ctx context.Context) ([]types.RecurringTemplate, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return recurringTemplates.list(ctx, q, "", "property_id, name COLLATE NOCASE, id")
}

// ListByProperty returns the property's templates ordered by name.
func (r *RecurringTemplateRepo) ListByProperty(ctx context.Context, propertyID string) ([]types.RecurringTemplate, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return recurringTemplates.list(ctx, q, "property_id = ?", "name COLLATE NOCASE, id", propertyID)
}

// ListActive returns the active templates of every property, soonest due
// first; templates without a due date come last.
func (r *RecurringTemplateRepo) ListActive(ctx context.Context) ([]types.RecurringTemplate, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return recurringTemplates.list(ctx, q, "is_active = 1",
		"next_due_date IS NULL, next_due_date, name COLLATE NOCASE, id")
}

// GetMonthlyTotal estimates the property's monthly bill load from its active
// templates, each normalized to a monthly equivalent. The result is rounded
// to cents.
func (r *RecurringTemplateRepo) GetMonthlyTotal(ctx context.Context, propertyID string) (decimal.Decimal, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return monthlyRecurringTotal(ctx, q, propertyID)
}

func monthlyRecurringTotal(ctx context.Context, q Querier, propertyID string) (decimal.Decimal, error) {
	active, err := recurringTemplates.list(ctx, q, "property_id = ? AND is_active = 1", "id", propertyID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, t := range active {
		total = total.Add(types.MonthlyEquivalent(t.Frequency, t.EstimatedAmount))
	}
	return total.Round(2), nil
}

// GetDue returns active templates whose next due date is on or before asOf.
func (r *RecurringTemplateRepo) GetDue(ctx context.Context, asOf time.Time) ([]types.RecurringTemplate, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return recurringTemplates.list(ctx, q,
		"is_active = 1 AND next_due_date IS NOT NULL AND next_due_date <= ?",
		"next_due_date, name COLLATE NOCASE, id", fmtDate(asOf))
}

// AdvanceNextDueDate moves the template's next due date one billing period
// forward from its current value, or from today when it has none.
func (r *RecurringTemplateRepo) AdvanceNextDueDate(ctx context.Context, id string) (*types.RecurringTemplate, error) {
	var out *types.RecurringTemplate
	err := r.exec.atomically(ctx, func(ctx context.Context, q Querier) error {
		t, err := recurringTemplates.get(ctx, q, id)
		if err != nil {
			return err
		}
		from := r.backend.today()
		if t.NextDueDate != nil {
			from = *t.NextDueDate
		}
		next := types.AdvanceBillDate(t.Frequency, from)
		var p patchSet
		p.date("next_due_date", &next)
		out, err = recurringTemplates.update(ctx, q, id, &p, r.backend.stamp())
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListWithLatestPayment returns the property's templates, each with its most
// recent payment and payment totals.
func (r *RecurringTemplateRepo) ListWithLatestPayment(ctx context.Context, propertyID string) ([]types.RecurringTemplateSummary, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	const latest = `FROM recurring_payment_history p WHERE p.template_id = t.id ORDER BY p.paid_date DESC, p.created_at DESC LIMIT 1`
	query := recurringTemplates.selectAs("t",
		`(SELECT p.paid_date `+latest+`)`,
		`(SELECT p.amount `+latest+`)`,
		`(SELECT COUNT(*) FROM recurring_payment_history p WHERE p.template_id = t.id)`,
		`(SELECT COALESCE(SUM(p.amount), 0) FROM recurring_payment_history p WHERE p.template_id = t.id)`,
	) + ` WHERE t.property_id = ? ORDER BY t.name COLLATE NOCASE, t.id`
	summaries, err := QueryAll(ctx, q, hydrateTemplateSummary, query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("listing recurring template summaries: %w", err)
	}
	return summaries, nil
}

func (r *RecurringTemplateRepo) Create(ctx context.Context, t *types.RecurringTemplate) (*types.RecurringTemplate, error) {
	if t == nil || t.PropertyID == "" || t.Name == "" {
		return nil, fmt.Errorf("%w: recurring template needs a property and a name", types.ErrInvalidData)
	}
	if !types.ValidBillFrequency(t.Frequency) {
		return nil, fmt.Errorf("%w: frequency %q", types.ErrInvalidData, t.Frequency)
	}
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	id := ensureID(t.ID)
	now := fmtTime(r.backend.stamp())
	err = recurringTemplates.insert(ctx, q, map[string]any{
		"id":               id,
		"property_id":      t.PropertyID,
		"name":             t.Name,
		"bill_category":    t.BillCategory,
		"estimated_amount": moneyArg(t.EstimatedAmount),
		"frequency":        t.Frequency,
		"due_day":          t.DueDay,
		"next_due_date":    dateArg(t.NextDueDate),
		"vendor":           t.Vendor,
		"is_active":        boolInt(t.IsActive),
		"auto_generate":    boolInt(t.AutoGenerate),
		"notes":            t.Notes,
		"created_at":       now,
		"updated_at":       now,
	})
	if err != nil {
		return nil, err
	}
	return recurringTemplates.reread(ctx, q, id)
}

func (r *RecurringTemplateRepo) Update(ctx context.Context, id string, patch types.RecurringTemplatePatch) (*types.RecurringTemplate, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	var p patchSet
	p.required("name", patch.Name)
	p.text("bill_category", patch.BillCategory)
	p.money("estimated_amount", patch.EstimatedAmount)
	p.enum("frequency", patch.Frequency, types.ValidBillFrequency)
	p.integer("due_day", patch.DueDay)
	p.date("next_due_date", patch.NextDueDate)
	p.text("vendor", patch.Vendor)
	p.flag("is_active", patch.IsActive)
	p.flag("auto_generate", patch.AutoGenerate)
	p.text("notes", patch.Notes)
	return recurringTemplates.update(ctx, q, id, &p, r.backend.stamp())
}

// Delete removes the template and its payment history. Expenses generated
// from it keep existing with the reference cleared.
func (r *RecurringTemplateRepo) Delete(ctx context.Context, id string) error {
	q, err := r.querier(ctx)
	if err != nil {
		return err
	}
	return recurringTemplates.delete(ctx, q, id)
}

var recurringPayments = entityTable[types.RecurringPayment]{
	name: types.TableRecurringPayments,
	columns: []string{
		"id", "template_id", "expense_id", "amount", "paid_date", "notes",
		"created_at", "updated_at",
	},
	scan: hydrateRecurringPayment,
}

func hydrateRecurringPayment(s RowScanner) (types.RecurringPayment, error) {
	var p types.RecurringPayment
	err := s.Scan(&p.ID, &p.TemplateID, nullRefCol(&p.ExpenseID), &p.Amount, dayCol(&p.PaidDate),
		&p.Notes, tsCol(&p.CreatedAt), tsCol(&p.UpdatedAt))
	if err != nil {
		return types.RecurringPayment{}, fmt.Errorf("hydrating recurring payment: %w", err)
	}
	return p, nil
}

const paymentOrder = "paid_date DESC, created_at DESC, id DESC"

// RecurringPaymentRepo stores the payments recorded against templates.
type RecurringPaymentRepo struct{ repo }

func (r *RecurringPaymentRepo) Get(ctx context.Context, id string) (*types.RecurringPayment, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return recurringPayments.get(ctx, q, id)
}

func (r *RecurringPaymentRepo) List(ctx context.Context) ([]types.RecurringPayment, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return recurringPayments.list(ctx, q, "", paymentOrder)
}

// ListByTemplate returns the template's payments, most recent first.
func (r *RecurringPaymentRepo) ListByTemplate(ctx context.Context, templateID string) ([]types.RecurringPayment, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return recurringPayments.list(ctx, q, "template_id = ?", paymentOrder, templateID)
}

func (r *RecurringPaymentRepo) GetTotalByTemplate(ctx context.Context, templateID string) (decimal.Decimal, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	total, err := scanDecimal(q.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM recurring_payment_history WHERE template_id = ?`, templateID))
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing recurring payments: %w", err)
	}
	return total, nil
}

// GetTotalForPeriod sums the payments against the property's templates paid
// between from and to, inclusive.
func (r *RecurringPaymentRepo) GetTotalForPeriod(ctx context.Context, propertyID string, from, to time.Time) (decimal.Decimal, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	total, err := scanDecimal(q.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(p.amount), 0)
        FROM recurring_payment_history p
        JOIN recurring_templates t ON t.id = p.template_id
        WHERE t.property_id = ? AND p.paid_date >= ? AND p.paid_date <= ?`,
		propertyID, fmtDate(from), fmtDate(to)))
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing recurring payments for period: %w", err)
	}
	return total, nil
}

func (r *RecurringPaymentRepo) Create(ctx context.Context, p *types.RecurringPayment) (*types.RecurringPayment, error) {
	if p == nil || p.TemplateID == "" || p.PaidDate.IsZero() {
		return nil, fmt.Errorf("%w: recurring payment needs a template and a paid date", types.ErrInvalidData)
	}
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	id := ensureID(p.ID)
	now := fmtTime(r.backend.stamp())
	err = recurringPayments.insert(ctx, q, map[string]any{
		"id":          id,
		"template_id": p.TemplateID,
		"expense_id":  refArg(p.ExpenseID),
		"amount":      moneyArg(p.Amount),
		"paid_date":   fmtDate(p.PaidDate),
		"notes":       p.Notes,
		"created_at":  now,
		"updated_at":  now,
	})
	if err != nil {
		return nil, err
	}
	return recurringPayments.reread(ctx, q, id)
}

func (r *RecurringPaymentRepo) Update(ctx context.Context, id string, patch types.RecurringPaymentPatch) (*types.RecurringPayment, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	var p patchSet
	p.ref("expense_id", patch.ExpenseID)
	p.money("amount", patch.Amount)
	p.requiredDate("paid_date", patch.PaidDate)
	p.text("notes", patch.Notes)
	return recurringPayments.update(ctx, q, id, &p, r.backend.stamp())
}

func (r *RecurringPaymentRepo) Delete(ctx context.Context, id string) error {
	q, err := r.querier(ctx)
	if err != nil {
		return err
	}
	return recurringPayments.delete(ctx, q, id)
}
