package sqlite

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/homestead/pkg/types"
)

var assets = entityTable[types.Asset]{
	name: types.TableAssets,
	columns: []string{
		"id", "property_id", "room_id", "name", "category", "brand", "model",
		"serial_number", "purchase_date", "purchase_price", "warranty_expiration",
		"manual_url", "notes", "created_at", "updated_at",
	},
	scan: hydrateAsset,
}

func hydrateAsset(s RowScanner) (types.Asset, error) {
	var a types.Asset
	err := s.Scan(&a.ID, &a.PropertyID, nullRefCol(&a.RoomID), &a.Name, &a.Category,
		&a.Brand, &a.Model, &a.SerialNumber, nullDayCol(&a.PurchaseDate), &a.PurchasePrice,
		nullDayCol(&a.WarrantyExpiration), &a.ManualURL, &a.Notes,
		tsCol(&a.CreatedAt), tsCol(&a.UpdatedAt))
	if err != nil {
		return types.Asset{}, fmt.Errorf("hydrating asset: %w", err)
	}
	return a, nil
}

// AssetRepo stores assets.
type AssetRepo struct{ repo }

func (r *AssetRepo) Get(ctx context.Context, id string) (*types.Asset, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return assets.get(ctx, q, id)
}

func (r *AssetRepo) List(ctx context.Context) ([]types.Asset, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return assets.list(ctx, q, "", "property_id, name COLLATE NOCASE, id")
}

// ListByProperty returns the property's assets ordered by name.
func (r *AssetRepo) ListByProperty(ctx context.Context, propertyID string) ([]types.Asset, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return assets.list(ctx, q, "property_id = ?", "name COLLATE NOCASE, id", propertyID)
}

// ListByRoom returns the room's assets ordered by name.
func (r *AssetRepo) ListByRoom(ctx context.Context, roomID string) ([]types.Asset, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return assets.list(ctx, q, "room_id = ?", "name COLLATE NOCASE, id", roomID)
}

// GetTotalValueByPropertyId sums the purchase prices of the property's
// assets. Assets without a price count as zero.
func (r *AssetRepo) GetTotalValueByPropertyId(ctx context.Context, propertyID string) (decimal.Decimal, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return assetValueTotal(ctx, q, propertyID)
}

func assetValueTotal(ctx context.Context, q Querier, propertyID string) (decimal.Decimal, error) {
	total, err := scanDecimal(q.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(purchase_price), 0) FROM assets WHERE property_id = ?`, propertyID))
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing asset value: %w", err)
	}
	return total, nil
}

// GetWithExpiringWarranty returns assets across all properties whose
// warranty ends between today and daysAhead days from now, soonest first.
func (r *AssetRepo) GetWithExpiringWarranty(ctx context.Context, daysAhead int) ([]types.Asset, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	today := r.backend.today()
	return assets.list(ctx, q,
		"warranty_expiration IS NOT NULL AND warranty_expiration >= ? AND warranty_expiration <= ?",
		"warranty_expiration, name COLLATE NOCASE",
		fmtDate(today), fmtDate(today.AddDate(0, 0, daysAhead)))
}

// Search returns the property's assets whose name, brand, model, or serial
// number contains term, ignoring case.
func (r *AssetRepo) Search(ctx context.Context, propertyID, term string) ([]types.Asset, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	pattern := likePattern(term)
	return assets.list(ctx, q,
		`property_id = ? AND (name LIKE ? ESCAPE '\' OR brand LIKE ? ESCAPE '\' OR model LIKE ? ESCAPE '\' OR serial_number LIKE ? ESCAPE '\')`,
		"name COLLATE NOCASE, id",
		propertyID, pattern, pattern, pattern, pattern)
}

func (r *AssetRepo) Create(ctx context.Context, a *types.Asset) (*types.Asset, error) {
	if a == nil || a.Name == "" || a.PropertyID == "" {
		return nil, fmt.Errorf("%w: asset name and property are required", types.ErrInvalidData)
	}
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	id := ensureID(a.ID)
	now := fmtTime(r.backend.stamp())
	err = assets.insert(ctx, q, map[string]any{
		"id":                  id,
		"property_id":         a.PropertyID,
		"room_id":             refArg(a.RoomID),
		"name":                a.Name,
		"category":            a.Category,
		"brand":               a.Brand,
		"model":               a.Model,
		"serial_number":       a.SerialNumber,
		"purchase_date":       dateArg(a.PurchaseDate),
		"purchase_price":      nullMoneyArg(a.PurchasePrice),
		"warranty_expiration": dateArg(a.WarrantyExpiration),
		"manual_url":          a.ManualURL,
		"notes":               a.Notes,
		"created_at":          now,
		"updated_at":          now,
	})
	if err != nil {
		return nil, err
	}
	return assets.reread(ctx, q, id)
}

func (r *AssetRepo) Update(ctx context.Context, id string, patch types.AssetPatch) (*types.Asset, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	var p patchSet
	p.ref("room_id", patch.RoomID)
	p.required("name", patch.Name)
	p.text("category", patch.Category)
	p.text("brand", patch.Brand)
	p.text("model", patch.Model)
	p.text("serial_number", patch.SerialNumber)
	p.date("purchase_date", patch.PurchaseDate)
	p.nullMoney("purchase_price", patch.PurchasePrice)
	p.date("warranty_expiration", patch.WarrantyExpiration)
	p.text("manual_url", patch.ManualURL)
	p.text("notes", patch.Notes)
	return assets.update(ctx, q, id, &p, r.backend.stamp())
}

func (r *AssetRepo) Delete(ctx context.Context, id string) error {
	q, err := r.querier(ctx)
	if err != nil {
		return err
	}
	return assets.delete(ctx, q, id)
}
