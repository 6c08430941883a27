package sqlite

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/homestead/pkg/types"
)

var properties = entityTable[types.Property]{
	name: types.TableProperties,
	columns: []string{
		"id", "name", "address", "property_type", "purchase_date", "purchase_price",
		"current_value", "square_footage", "year_built", "image_uri", "notes",
		"created_at", "updated_at",
	},
	scan: hydrateProperty,
}

func hydrateProperty(s RowScanner) (types.Property, error) {
	var p types.Property
	err := s.Scan(&p.ID, &p.Name, &p.Address, &p.PropertyType, nullDayCol(&p.PurchaseDate),
		&p.PurchasePrice, &p.CurrentValue, &p.SquareFootage, &p.YearBuilt, &p.ImageURI,
		&p.Notes, tsCol(&p.CreatedAt), tsCol(&p.UpdatedAt))
	if err != nil {
		return types.Property{}, fmt.Errorf("hydrating property: %w", err)
	}
	return p, nil
}

// PropertyRepo stores properties.
type PropertyRepo struct{ repo }

// Get returns the property with id, or ErrNotFound.
func (r *PropertyRepo) Get(ctx context.Context, id string) (*types.Property, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return properties.get(ctx, q, id)
}

// List returns every property ordered by name.
func (r *PropertyRepo) List(ctx context.Context) ([]types.Property, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return properties.list(ctx, q, "", "name COLLATE NOCASE, id")
}

// Create inserts p with a fresh id (unless one is supplied) and timestamps.
func (r *PropertyRepo) Create(ctx context.Context, p *types.Property) (*types.Property, error) {
	if p == nil || p.Name == "" {
		return nil, fmt.Errorf("%w: property name is required", types.ErrInvalidData)
	}
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	id := ensureID(p.ID)
	now := fmtTime(r.backend.stamp())
	err = properties.insert(ctx, q, map[string]any{
		"id":             id,
		"name":           p.Name,
		"address":        p.Address,
		"property_type":  p.PropertyType,
		"purchase_date":  dateArg(p.PurchaseDate),
		"purchase_price": nullMoneyArg(p.PurchasePrice),
		"current_value":  nullMoneyArg(p.CurrentValue),
		"square_footage": p.SquareFootage,
		"year_built":     p.YearBuilt,
		"image_uri":      p.ImageURI,
		"notes":          p.Notes,
		"created_at":     now,
		"updated_at":     now,
	})
	if err != nil {
		return nil, err
	}
	return properties.reread(ctx, q, id)
}

// Update writes the fields present in patch.
func (r *PropertyRepo) Update(ctx context.Context, id string, patch types.PropertyPatch) (*types.Property, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	var p patchSet
	p.required("name", patch.Name)
	p.text("address", patch.Address)
	p.text("property_type", patch.PropertyType)
	p.date("purchase_date", patch.PurchaseDate)
	p.nullMoney("purchase_price", patch.PurchasePrice)
	p.nullMoney("current_value", patch.CurrentValue)
	p.integer("square_footage", patch.SquareFootage)
	p.integer("year_built", patch.YearBuilt)
	p.text("image_uri", patch.ImageURI)
	p.text("notes", patch.Notes)
	return properties.update(ctx, q, id, &p, r.backend.stamp())
}

// Delete removes the property and, through the foreign key rules, everything
// it owns.
func (r *PropertyRepo) Delete(ctx context.Context, id string) error {
	q, err := r.querier(ctx)
	if err != nil {
		return err
	}
	return properties.delete(ctx, q, id)
}

// GetSummary returns the headline counts and totals for one property.
func (r *PropertyRepo) GetSummary(ctx context.Context, id string) (*types.PropertySummary, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	p, err := properties.get(ctx, q, id)
	if err != nil {
		return nil, err
	}
	s := &types.PropertySummary{Property: *p}

	counts := []struct {
		dst   *int
		query string
	}{
		{&s.RoomCount, `SELECT COUNT(*) FROM rooms WHERE property_id = ?`},
		{&s.AssetCount, `SELECT COUNT(*) FROM assets WHERE property_id = ?`},
		{&s.OpenTaskCount, `SELECT COUNT(*) FROM maintenance_tasks WHERE property_id = ? AND is_completed = 0`},
	}
	for _, c := range counts {
		n, err := scanInt(q.QueryRowContext(ctx, c.query, id))
		if err != nil {
			return nil, fmt.Errorf("summarizing property %s: %w", id, err)
		}
		*c.dst = n
	}

	if s.TotalAssetValue, err = assetValueTotal(ctx, q, id); err != nil {
		return nil, err
	}
	if s.TotalExpenses, err = expenseTotal(ctx, q, id); err != nil {
		return nil, err
	}
	if s.MonthlyRecurringBill, err = monthlyRecurringTotal(ctx, q, id); err != nil {
		return nil, err
	}
	return s, nil
}
