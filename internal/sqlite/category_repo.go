package sqlite

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/homestead/pkg/types"
)

var customCategories = entityTable[types.CustomCategory]{
	name: types.TableCustomCategories,
	columns: []string{
		"id", "type", "name", "icon", "color", "sort_order", "is_default",
		"created_at", "updated_at",
	},
	scan: hydrateCustomCategory,
}

func hydrateCustomCategory(s RowScanner) (types.CustomCategory, error) {
	var c types.CustomCategory
	err := s.Scan(&c.ID, &c.Type, &c.Name, &c.Icon, &c.Color, &c.SortOrder, boolCol(&c.IsDefault),
		tsCol(&c.CreatedAt), tsCol(&c.UpdatedAt))
	if err != nil {
		return types.CustomCategory{}, fmt.Errorf("hydrating custom category: %w", err)
	}
	return c, nil
}

const categoryOrder = "sort_order, name COLLATE NOCASE, id"

// CustomCategoryRepo stores the user-editable taxonomies.
type CustomCategoryRepo struct{ repo }

func (r *CustomCategoryRepo) Get(ctx context.Context, id string) (*types.CustomCategory, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return customCategories.get(ctx, q, id)
}

func (r *CustomCategoryRepo) List(ctx context.Context) ([]types.CustomCategory, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return customCategories.list(ctx, q, "", "type, "+categoryOrder)
}

func (r *CustomCategoryRepo) ListByType(ctx context.Context, categoryType string) ([]types.CustomCategory, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return customCategories.list(ctx, q, "type = ?", categoryOrder, categoryType)
}

func (r *CustomCategoryRepo) Create(ctx context.Context, c *types.CustomCategory) (*types.CustomCategory, error) {
	if c == nil || c.Name == "" {
		return nil, fmt.Errorf("%w: category name is required", types.ErrInvalidData)
	}
	if !types.ValidCategoryType(c.Type) {
		return nil, fmt.Errorf("%w: unknown category type %q", types.ErrInvalidData, c.Type)
	}
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return r.insert(ctx, q, c)
}

func (r *CustomCategoryRepo) insert(ctx context.Context, q Querier, c *types.CustomCategory) (*types.CustomCategory, error) {
	id := ensureID(c.ID)
	now := fmtTime(r.backend.stamp())
	err := customCategories.insert(ctx, q, map[string]any{
		"id":         id,
		"type":       c.Type,
		"name":       c.Name,
		"icon":       c.Icon,
		"color":      c.Color,
		"sort_order": c.SortOrder,
		"is_default": boolInt(c.IsDefault),
		"created_at": now,
		"updated_at": now,
	})
	if err != nil {
		return nil, err
	}
	return customCategories.reread(ctx, q, id)
}

func (r *CustomCategoryRepo) Update(ctx context.Context, id string, patch types.CustomCategoryPatch) (*types.CustomCategory, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	var p patchSet
	p.required("name", patch.Name)
	p.text("icon", patch.Icon)
	p.text("color", patch.Color)
	p.integer("sort_order", patch.SortOrder)
	return customCategories.update(ctx, q, id, &p, r.backend.stamp())
}

func (r *CustomCategoryRepo) Delete(ctx context.Context, id string) error {
	q, err := r.querier(ctx)
	if err != nil {
		return err
	}
	return customCategories.delete(ctx, q, id)
}

// Reorder sets sort_order to each id's position in ids. Every id must belong
// to categoryType; otherwise nothing changes.
func (r *CustomCategoryRepo) Reorder(ctx context.Context, categoryType string, ids []string) error {
	return r.exec.atomically(ctx, func(ctx context.Context, q Querier) error {
		at := fmtTime(r.backend.stamp())
		for i, id := range ids {
			res, err := Exec(ctx, q,
				"UPDATE custom_categories SET sort_order = ?, updated_at = ? WHERE id = ? AND type = ?",
				i, at, id, categoryType)
			if err != nil {
				return fmt.Errorf("reordering category %s: %w", id, err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("reordering category %s: %w", id, err)
			}
			if n == 0 {
				return fmt.Errorf("reordering category %s in %s: %w", id, categoryType, types.ErrNotFound)
			}
		}
		return nil
	})
}

// SeedDefaults inserts the built-in categories for every taxonomy that has
// no rows yet. It returns the number of rows inserted.
func (r *CustomCategoryRepo) SeedDefaults(ctx context.Context) (int, error) {
	seeded := 0
	err := r.exec.atomically(ctx, func(ctx context.Context, q Querier) error {
		for _, t := range seedTypes {
			n, err := scanInt(q.QueryRowContext(ctx, "SELECT COUNT(*) FROM custom_categories WHERE type = ?", t))
			if err != nil {
				return fmt.Errorf("counting %s categories: %w", t, err)
			}
			if n > 0 {
				continue
			}
			for i, bc := range builtInCategories[t] {
				_, err := r.insert(ctx, q, &types.CustomCategory{
					Type:      t,
					Name:      bc.name,
					Icon:      bc.icon,
					Color:     bc.color,
					SortOrder: i,
					IsDefault: true,
				})
				if err != nil {
					return fmt.Errorf("seeding %s category %s: %w", t, bc.name, err)
				}
				seeded++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return seeded, nil
}
