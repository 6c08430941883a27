package sqlite

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/homestead/pkg/types"
)

var expenseAssets = entityTable[types.ExpenseAsset]{
	name:    types.TableExpenseAssets,
	columns: []string{"id", "expense_id", "asset_id", "amount", "created_at", "updated_at"},
	scan:    hydrateExpenseAsset,
}

func hydrateExpenseAsset(s RowScanner) (types.ExpenseAsset, error) {
	var ea types.ExpenseAsset
	err := s.Scan(&ea.ID, &ea.ExpenseID, &ea.AssetID, &ea.Amount,
		tsCol(&ea.CreatedAt), tsCol(&ea.UpdatedAt))
	if err != nil {
		return types.ExpenseAsset{}, fmt.Errorf("hydrating expense asset: %w", err)
	}
	return ea, nil
}

func hydrateExpenseAssetDetail(s RowScanner) (types.ExpenseAssetDetail, error) {
	var d types.ExpenseAssetDetail
	err := s.Scan(&d.ID, &d.ExpenseID, &d.AssetID, &d.Amount,
		tsCol(&d.CreatedAt), tsCol(&d.UpdatedAt), &d.AssetName)
	if err != nil {
		return types.ExpenseAssetDetail{}, fmt.Errorf("hydrating expense asset: %w", err)
	}
	return d, nil
}

// Splits keep insertion order; created_at ties are broken by rowid.
const expenseAssetOrder = "created_at, rowid"

func expenseAssetDetails(ctx context.Context, q Querier, expenseID string) ([]types.ExpenseAssetDetail, error) {
	details, err := QueryAll(ctx, q, hydrateExpenseAssetDetail,
		expenseAssets.selectAs("ea", "a.name")+`
        JOIN assets a ON a.id = ea.asset_id
        WHERE ea.expense_id = ?
        ORDER BY ea.created_at, ea.rowid`, expenseID)
	if err != nil {
		return nil, fmt.Errorf("listing expense assets: %w", err)
	}
	return details, nil
}

// ExpenseAssetRepo stores the split of expenses across assets.
type ExpenseAssetRepo struct{ repo }

func (r *ExpenseAssetRepo) Get(ctx context.Context, id string) (*types.ExpenseAsset, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return expenseAssets.get(ctx, q, id)
}

func (r *ExpenseAssetRepo) List(ctx context.Context) ([]types.ExpenseAsset, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return expenseAssets.list(ctx, q, "", "expense_id, "+expenseAssetOrder)
}

func (r *ExpenseAssetRepo) ListByExpense(ctx context.Context, expenseID string) ([]types.ExpenseAsset, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return expenseAssets.list(ctx, q, "expense_id = ?", expenseAssetOrder, expenseID)
}

func (r *ExpenseAssetRepo) ListByAsset(ctx context.Context, assetID string) ([]types.ExpenseAsset, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return expenseAssets.list(ctx, q, "asset_id = ?", expenseAssetOrder, assetID)
}

// GetTotalByAsset sums the amounts split to the asset.
func (r *ExpenseAssetRepo) GetTotalByAsset(ctx context.Context, assetID string) (decimal.Decimal, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	total, err := scanDecimal(q.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM expense_assets WHERE asset_id = ?`, assetID))
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing expense assets: %w", err)
	}
	return total, nil
}

// Create adds one split. Import uses it; editors use ReplaceForExpense.
func (r *ExpenseAssetRepo) Create(ctx context.Context, ea *types.ExpenseAsset) (*types.ExpenseAsset, error) {
	if ea == nil || ea.ExpenseID == "" || ea.AssetID == "" {
		return nil, fmt.Errorf("%w: expense asset needs an expense and an asset", types.ErrInvalidData)
	}
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	id, err := r.insert(ctx, q, ea)
	if err != nil {
		return nil, err
	}
	return expenseAssets.reread(ctx, q, id)
}

func (r *ExpenseAssetRepo) insert(ctx context.Context, q Querier, ea *types.ExpenseAsset) (string, error) {
	id := ensureID(ea.ID)
	now := fmtTime(r.backend.stamp())
	err := expenseAssets.insert(ctx, q, map[string]any{
		"id":         id,
		"expense_id": ea.ExpenseID,
		"asset_id":   ea.AssetID,
		"amount":     moneyArg(ea.Amount),
		"created_at": now,
		"updated_at": now,
	})
	return id, err
}

// ReplaceForExpense swaps the expense's splits for splits, as one unit:
// every existing split is deleted and the new ones inserted in order. The
// ExpenseID of each element is ignored.
func (r *ExpenseAssetRepo) ReplaceForExpense(ctx context.Context, expenseID string, splits []types.ExpenseAsset) ([]types.ExpenseAsset, error) {
	if expenseID == "" {
		return nil, types.ErrInvalidID
	}
	var out []types.ExpenseAsset
	err := r.exec.atomically(ctx, func(ctx context.Context, q Querier) error {
		if _, err := expenses.get(ctx, q, expenseID); err != nil {
			return err
		}
		if _, err := Exec(ctx, q, `DELETE FROM expense_assets WHERE expense_id = ?`, expenseID); err != nil {
			return fmt.Errorf("clearing expense assets: %w", err)
		}
		for _, split := range splits {
			if split.AssetID == "" {
				return fmt.Errorf("%w: expense asset needs an asset", types.ErrInvalidData)
			}
			split.ID = ""
			split.ExpenseID = expenseID
			if _, err := r.insert(ctx, q, &split); err != nil {
				return err
			}
		}
		var err error
		out, err = expenseAssets.list(ctx, q, "expense_id = ?", expenseAssetOrder, expenseID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes one split.
func (r *ExpenseAssetRepo) Delete(ctx context.Context, id string) error {
	q, err := r.querier(ctx)
	if err != nil {
		return err
	}
	return expenseAssets.delete(ctx, q, id)
}
