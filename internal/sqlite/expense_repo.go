package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/homestead/pkg/types"
)

var expenses = entityTable[types.Expense]{
	name: types.TableExpenses,
	columns: []string{
		"id", "property_id", "room_id", "asset_id", "worker_id", "recurring_template_id",
		"expense_type", "category", "amount", "date", "description", "vendor",
		"receipt_uri", "tags", "is_tax_deductible", "notes", "created_at", "updated_at",
	},
	scan: hydrateExpense,
}

func hydrateExpense(s RowScanner) (types.Expense, error) {
	var e types.Expense
	err := s.Scan(&e.ID, &e.PropertyID, nullRefCol(&e.RoomID), nullRefCol(&e.AssetID),
		nullRefCol(&e.WorkerID), nullRefCol(&e.RecurringTemplateID), &e.ExpenseType,
		&e.Category, &e.Amount, dayCol(&e.Date), &e.Description, &e.Vendor, &e.ReceiptURI,
		jsonListCol(&e.Tags), boolCol(&e.IsTaxDeductible), &e.Notes,
		tsCol(&e.CreatedAt), tsCol(&e.UpdatedAt))
	if err != nil {
		return types.Expense{}, fmt.Errorf("hydrating expense: %w", err)
	}
	return e, nil
}

const expenseOrder = "date DESC, created_at DESC, id DESC"

// ExpenseRepo stores expenses.
type ExpenseRepo struct{ repo }

func (r *ExpenseRepo) Get(ctx context.Context, id string) (*types.Expense, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return expenses.get(ctx, q, id)
}

func (r *ExpenseRepo) List(ctx context.Context) ([]types.Expense, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return expenses.list(ctx, q, "", expenseOrder)
}

// ListByProperty returns the property's expenses, most recent first.
func (r *ExpenseRepo) ListByProperty(ctx context.Context, propertyID string) ([]types.Expense, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return expenses.list(ctx, q, "property_id = ?", expenseOrder, propertyID)
}

// ListByAsset returns expenses that reference the asset directly or split
// part of their amount to it.
func (r *ExpenseRepo) ListByAsset(ctx context.Context, assetID string) ([]types.Expense, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return expenses.list(ctx, q,
		"asset_id = ? OR id IN (SELECT expense_id FROM expense_assets WHERE asset_id = ?)",
		expenseOrder, assetID, assetID)
}

func (r *ExpenseRepo) ListByWorker(ctx context.Context, workerID string) ([]types.Expense, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return expenses.list(ctx, q, "worker_id = ?", expenseOrder, workerID)
}

// GetTotalByPropertyId sums every expense of the property.
func (r *ExpenseRepo) GetTotalByPropertyId(ctx context.Context, propertyID string) (decimal.Decimal, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return expenseTotal(ctx, q, propertyID)
}

func expenseTotal(ctx context.Context, q Querier, propertyID string) (decimal.Decimal, error) {
	total, err := scanDecimal(q.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE property_id = ?`, propertyID))
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing expenses: %w", err)
	}
	return total, nil
}

// GetRecentByPropertyId returns the property's expenses dated in the last
// days calendar days, today being the last of them.
func (r *ExpenseRepo) GetRecentByPropertyId(ctx context.Context, propertyID string, days int) ([]types.Expense, error) {
	if days < 1 {
		return nil, fmt.Errorf("recent expenses: days must be positive, got %d: %w", days, types.ErrInvalidData)
	}
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	since := r.backend.today().AddDate(0, 0, -(days - 1))
	return expenses.list(ctx, q, "property_id = ? AND date >= ?", expenseOrder, propertyID, fmtDate(since))
}

// GetMonthlyTotal sums the expenses of every property dated in the given
// calendar month.
func (r *ExpenseRepo) GetMonthlyTotal(ctx context.Context, year int, month time.Month) (decimal.Decimal, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	total, err := scanDecimal(q.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE date >= ? AND date < ?`,
		fmtDate(start), fmtDate(end)))
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing expenses for %04d-%02d: %w", year, month, err)
	}
	return total, nil
}

// GetTotalsByCategory groups the property's expenses by category, largest
// total first.
func (r *ExpenseRepo) GetTotalsByCategory(ctx context.Context, propertyID string) ([]types.CategoryTotal, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	totals, err := QueryAll(ctx, q, func(s RowScanner) (types.CategoryTotal, error) {
		var c types.CategoryTotal
		if err := s.Scan(&c.Category, &c.Total, &c.Count); err != nil {
			return types.CategoryTotal{}, fmt.Errorf("hydrating category total: %w", err)
		}
		c.Total = c.Total.Round(2)
		return c, nil
	}, `SELECT category, COALESCE(SUM(amount), 0) AS total, COUNT(*)
        FROM expenses WHERE property_id = ?
        GROUP BY category ORDER BY total DESC, category`, propertyID)
	if err != nil {
		return nil, fmt.Errorf("totalling expenses by category: %w", err)
	}
	return totals, nil
}

// Search returns the property's expenses whose description, vendor,
// category, or notes contain term.
func (r *ExpenseRepo) Search(ctx context.Context, propertyID, term string) ([]types.Expense, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	pattern := likePattern(term)
	return expenses.list(ctx, q,
		`property_id = ? AND (description LIKE ? ESCAPE '\' OR vendor LIKE ? ESCAPE '\' OR category LIKE ? ESCAPE '\' OR notes LIKE ? ESCAPE '\')`,
		expenseOrder, propertyID, pattern, pattern, pattern, pattern)
}

// GetWithAssets returns the expense together with its per-asset splits.
func (r *ExpenseRepo) GetWithAssets(ctx context.Context, id string) (*types.ExpenseWithAssets, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	e, err := expenses.get(ctx, q, id)
	if err != nil {
		return nil, err
	}
	splits, err := expenseAssetDetails(ctx, q, id)
	if err != nil {
		return nil, err
	}
	return &types.ExpenseWithAssets{Expense: *e, Assets: splits}, nil
}

func (r *ExpenseRepo) Create(ctx context.Context, e *types.Expense) (*types.Expense, error) {
	if e == nil || e.PropertyID == "" || e.Date.IsZero() {
		return nil, fmt.Errorf("%w: expense needs a property and a date", types.ErrInvalidData)
	}
	tags, err := listArg(e.Tags)
	if err != nil {
		return nil, err
	}
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	id := ensureID(e.ID)
	now := fmtTime(r.backend.stamp())
	err = expenses.insert(ctx, q, map[string]any{
		"id":                    id,
		"property_id":           e.PropertyID,
		"room_id":               refArg(e.RoomID),
		"asset_id":              refArg(e.AssetID),
		"worker_id":             refArg(e.WorkerID),
		"recurring_template_id": refArg(e.RecurringTemplateID),
		"expense_type":          e.ExpenseType,
		"category":              e.Category,
		"amount":                moneyArg(e.Amount),
		"date":                  fmtDate(e.Date),
		"description":           e.Description,
		"vendor":                e.Vendor,
		"receipt_uri":           e.ReceiptURI,
		"tags":                  tags,
		"is_tax_deductible":     boolInt(e.IsTaxDeductible),
		"notes":                 e.Notes,
		"created_at":            now,
		"updated_at":            now,
	})
	if err != nil {
		return nil, err
	}
	return expenses.reread(ctx, q, id)
}

func (r *ExpenseRepo) Update(ctx context.Context, id string, patch types.ExpensePatch) (*types.Expense, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	var p patchSet
	p.ref("room_id", patch.RoomID)
	p.ref("asset_id", patch.AssetID)
	p.ref("worker_id", patch.WorkerID)
	p.ref("recurring_template_id", patch.RecurringTemplateID)
	p.text("expense_type", patch.ExpenseType)
	p.text("category", patch.Category)
	p.money("amount", patch.Amount)
	p.requiredDate("date", patch.Date)
	p.text("description", patch.Description)
	p.text("vendor", patch.Vendor)
	p.text("receipt_uri", patch.ReceiptURI)
	p.list("tags", patch.Tags)
	p.flag("is_tax_deductible", patch.IsTaxDeductible)
	p.text("notes", patch.Notes)
	return expenses.update(ctx, q, id, &p, r.backend.stamp())
}

// Delete removes the expense and its asset splits.
func (r *ExpenseRepo) Delete(ctx context.Context, id string) error {
	q, err := r.querier(ctx)
	if err != nil {
		return err
	}
	return expenses.delete(ctx, q, id)
}
