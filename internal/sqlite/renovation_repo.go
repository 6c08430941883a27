package sqlite

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/homestead/pkg/types"
)

var renovations = entityTable[types.Renovation]{
	name: types.TableRenovations,
	columns: []string{
		"id", "property_id", "room_id", "title", "description", "status", "start_date",
		"end_date", "cost_estimate", "notes", "created_at", "updated_at",
	},
	scan: hydrateRenovation,
}

func hydrateRenovation(s RowScanner) (types.Renovation, error) {
	var r types.Renovation
	err := s.Scan(&r.ID, &r.PropertyID, nullRefCol(&r.RoomID), &r.Title, &r.Description,
		&r.Status, nullDayCol(&r.StartDate), nullDayCol(&r.EndDate), &r.CostEstimate, &r.Notes,
		tsCol(&r.CreatedAt), tsCol(&r.UpdatedAt))
	if err != nil {
		return types.Renovation{}, fmt.Errorf("hydrating renovation: %w", err)
	}
	return r, nil
}

var renovationWorkers = entityTable[types.RenovationWorker]{
	name:    types.TableRenovationWorkers,
	columns: []string{"id", "renovation_id", "worker_id", "role", "created_at", "updated_at"},
	scan:    hydrateRenovationWorker,
}

func renovationWorkerDest(w *types.RenovationWorker) []any {
	return []any{&w.ID, &w.RenovationID, &w.WorkerID, &w.Role, tsCol(&w.CreatedAt), tsCol(&w.UpdatedAt)}
}

func hydrateRenovationWorker(s RowScanner) (types.RenovationWorker, error) {
	var w types.RenovationWorker
	if err := s.Scan(renovationWorkerDest(&w)...); err != nil {
		return types.RenovationWorker{}, fmt.Errorf("hydrating renovation worker: %w", err)
	}
	return w, nil
}

func hydrateRenovationWorkerDetail(s RowScanner) (types.RenovationWorkerDetail, error) {
	var d types.RenovationWorkerDetail
	dest := append(renovationWorkerDest(&d.RenovationWorker), &d.WorkerName, &d.Company)
	if err := s.Scan(dest...); err != nil {
		return types.RenovationWorkerDetail{}, fmt.Errorf("hydrating renovation worker: %w", err)
	}
	return d, nil
}

var renovationAssets = entityTable[types.RenovationAsset]{
	name:    types.TableRenovationAssets,
	columns: []string{"id", "renovation_id", "asset_id", "notes", "created_at", "updated_at"},
	scan:    hydrateRenovationAsset,
}

func renovationAssetDest(a *types.RenovationAsset) []any {
	return []any{&a.ID, &a.RenovationID, &a.AssetID, &a.Notes, tsCol(&a.CreatedAt), tsCol(&a.UpdatedAt)}
}

func hydrateRenovationAsset(s RowScanner) (types.RenovationAsset, error) {
	var a types.RenovationAsset
	if err := s.Scan(renovationAssetDest(&a)...); err != nil {
		return types.RenovationAsset{}, fmt.Errorf("hydrating renovation asset: %w", err)
	}
	return a, nil
}

func hydrateRenovationAssetDetail(s RowScanner) (types.RenovationAssetDetail, error) {
	var d types.RenovationAssetDetail
	dest := append(renovationAssetDest(&d.RenovationAsset), &d.AssetName)
	if err := s.Scan(dest...); err != nil {
		return types.RenovationAssetDetail{}, fmt.Errorf("hydrating renovation asset: %w", err)
	}
	return d, nil
}

var renovationCosts = entityTable[types.RenovationCost]{
	name: types.TableRenovationCosts,
	columns: []string{
		"id", "renovation_id", "description", "category", "amount", "date", "notes",
		"created_at", "updated_at",
	},
	scan: hydrateRenovationCost,
}

func hydrateRenovationCost(s RowScanner) (types.RenovationCost, error) {
	var c types.RenovationCost
	err := s.Scan(&c.ID, &c.RenovationID, &c.Description, &c.Category, &c.Amount,
		nullDayCol(&c.Date), &c.Notes, tsCol(&c.CreatedAt), tsCol(&c.UpdatedAt))
	if err != nil {
		return types.RenovationCost{}, fmt.Errorf("hydrating renovation cost: %w", err)
	}
	return c, nil
}

const (
	linkOrder = "created_at, id"
	costOrder = "date IS NULL, date, created_at, id"
)

// RenovationRepo stores renovations together with their worker, asset, and
// cost rows.
type RenovationRepo struct{ repo }

func (r *RenovationRepo) Get(ctx context.Context, id string) (*types.Renovation, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return renovations.get(ctx, q, id)
}

func (r *RenovationRepo) List(ctx context.Context) ([]types.Renovation, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return renovations.list(ctx, q, "", "created_at, id")
}

// ListByProperty returns the property's renovations, newest first.
func (r *RenovationRepo) ListByProperty(ctx context.Context, propertyID string) ([]types.Renovation, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return renovations.list(ctx, q, "property_id = ?", "created_at DESC, id DESC", propertyID)
}

// GetTotalCost returns the stored estimate plus every itemized cost.
func (r *RenovationRepo) GetTotalCost(ctx context.Context, id string) (decimal.Decimal, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	ren, err := renovations.get(ctx, q, id)
	if err != nil {
		return decimal.Zero, err
	}
	return renovationTotal(ctx, q, ren)
}

func renovationTotal(ctx context.Context, q Querier, ren *types.Renovation) (decimal.Decimal, error) {
	costs, err := scanDecimal(q.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM renovation_costs WHERE renovation_id = ?`, ren.ID))
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing renovation costs: %w", err)
	}
	return ren.CostEstimate.Add(costs).Round(2), nil
}

// GetWithDetails returns the renovation with its workers, assets, costs, and
// total cost.
func (r *RenovationRepo) GetWithDetails(ctx context.Context, id string) (*types.RenovationDetails, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	ren, err := renovations.get(ctx, q, id)
	if err != nil {
		return nil, err
	}
	d := &types.RenovationDetails{Renovation: *ren}
	if d.Workers, err = r.workerDetails(ctx, q, id); err != nil {
		return nil, err
	}
	if d.Assets, err = r.assetDetails(ctx, q, id); err != nil {
		return nil, err
	}
	if d.Costs, err = renovationCosts.list(ctx, q, "renovation_id = ?", costOrder, id); err != nil {
		return nil, err
	}
	if d.TotalCost, err = renovationTotal(ctx, q, ren); err != nil {
		return nil, err
	}
	return d, nil
}

func (r *RenovationRepo) workerDetails(ctx context.Context, q Querier, id string) ([]types.RenovationWorkerDetail, error) {
	details, err := QueryAll(ctx, q, hydrateRenovationWorkerDetail,
		renovationWorkers.selectAs("rw", "w.name", "w.company")+`
        JOIN workers w ON w.id = rw.worker_id
        WHERE rw.renovation_id = ?
        ORDER BY rw.created_at, rw.id`, id)
	if err != nil {
		return nil, fmt.Errorf("listing renovation workers: %w", err)
	}
	return details, nil
}

func (r *RenovationRepo) assetDetails(ctx context.Context, q Querier, id string) ([]types.RenovationAssetDetail, error) {
	details, err := QueryAll(ctx, q, hydrateRenovationAssetDetail,
		renovationAssets.selectAs("ra", "a.name")+`
        JOIN assets a ON a.id = ra.asset_id
        WHERE ra.renovation_id = ?
        ORDER BY ra.created_at, ra.id`, id)
	if err != nil {
		return nil, fmt.Errorf("listing renovation assets: %w", err)
	}
	return details, nil
}

func (r *RenovationRepo) Create(ctx context.Context, ren *types.Renovation) (*types.Renovation, error) {
	if ren == nil || ren.PropertyID == "" || ren.Title == "" {
		return nil, fmt.Errorf("%w: renovation needs a property and a title", types.ErrInvalidData)
	}
	status := ren.Status
	if status == "" {
		status = types.RenovationPlanned
	}
	if !types.ValidRenovationStatus(status) {
		return nil, fmt.Errorf("%w: status %q", types.ErrInvalidData, status)
	}
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	id := ensureID(ren.ID)
	now := fmtTime(r.backend.stamp())
	err = renovations.insert(ctx, q, map[string]any{
		"id":            id,
		"property_id":   ren.PropertyID,
		"room_id":       refArg(ren.RoomID),
		"title":         ren.Title,
		"description":   ren.Description,
		"status":        status,
		"start_date":    dateArg(ren.StartDate),
		"end_date":      dateArg(ren.EndDate),
		"cost_estimate": moneyArg(ren.CostEstimate),
		"notes":         ren.Notes,
		"created_at":    now,
		"updated_at":    now,
	})
	if err != nil {
		return nil, err
	}
	return renovations.reread(ctx, q, id)
}

func (r *RenovationRepo) Update(ctx context.Context, id string, patch types.RenovationPatch) (*types.Renovation, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	var p patchSet
	p.ref("room_id", patch.RoomID)
	p.required("title", patch.Title)
	p.text("description", patch.Description)
	p.enum("status", patch.Status, types.ValidRenovationStatus)
	p.date("start_date", patch.StartDate)
	p.date("end_date", patch.EndDate)
	p.money("cost_estimate", patch.CostEstimate)
	p.text("notes", patch.Notes)
	return renovations.update(ctx, q, id, &p, r.backend.stamp())
}

// Delete removes the renovation with its worker, asset, and cost rows.
func (r *RenovationRepo) Delete(ctx context.Context, id string) error {
	q, err := r.querier(ctx)
	if err != nil {
		return err
	}
	return renovations.delete(ctx, q, id)
}

// AddWorker links a worker to a renovation. Adding a worker that is already
// linked updates the role.
func (r *RenovationRepo) AddWorker(ctx context.Context, link *types.RenovationWorker) (*types.RenovationWorker, error) {
	if link == nil || link.RenovationID == "" || link.WorkerID == "" {
		return nil, fmt.Errorf("%w: renovation worker needs a renovation and a worker", types.ErrInvalidData)
	}
	var out *types.RenovationWorker
	err := r.exec.atomically(ctx, func(ctx context.Context, q Querier) error {
		existing, err := QueryFirst(ctx, q, hydrateRenovationWorker,
			renovationWorkers.selectSQL()+` WHERE renovation_id = ? AND worker_id = ?`,
			link.RenovationID, link.WorkerID)
		if err != nil {
			return err
		}
		if existing != nil {
			var p patchSet
			p.text("role", &link.Role)
			out, err = renovationWorkers.update(ctx, q, existing.ID, &p, r.backend.stamp())
			return err
		}
		id := ensureID(link.ID)
		now := fmtTime(r.backend.stamp())
		err = renovationWorkers.insert(ctx, q, map[string]any{
			"id":            id,
			"renovation_id": link.RenovationID,
			"worker_id":     link.WorkerID,
			"role":          link.Role,
			"created_at":    now,
			"updated_at":    now,
		})
		if err != nil {
			return err
		}
		out, err = renovationWorkers.reread(ctx, q, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RemoveWorker unlinks a worker. Removing a link that does not exist is not
// an error.
func (r *RenovationRepo) RemoveWorker(ctx context.Context, renovationID, workerID string) error {
	q, err := r.querier(ctx)
	if err != nil {
		return err
	}
	_, err = Exec(ctx, q, `DELETE FROM renovation_workers WHERE renovation_id = ? AND worker_id = ?`, renovationID, workerID)
	if err != nil {
		return fmt.Errorf("removing renovation worker: %w", err)
	}
	return nil
}

// ListWorkers returns the renovation's workers with their names.
func (r *RenovationRepo) ListWorkers(ctx context.Context, renovationID string) ([]types.RenovationWorkerDetail, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return r.workerDetails(ctx, q, renovationID)
}

// ListWorkerLinks returns every renovation worker link.
func (r *RenovationRepo) ListWorkerLinks(ctx context.Context) ([]types.RenovationWorker, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return renovationWorkers.list(ctx, q, "", linkOrder)
}

// AddAsset links an asset to a renovation. Adding an asset that is already
// linked updates the notes.
func (r *RenovationRepo) AddAsset(ctx context.Context, link *types.RenovationAsset) (*types.RenovationAsset, error) {
	if link == nil || link.RenovationID == "" || link.AssetID == "" {
		return nil, fmt.Errorf("%w: renovation asset needs a renovation and an asset", types.ErrInvalidData)
	}
	var out *types.RenovationAsset
	err := r.exec.atomically(ctx, func(ctx context.Context, q Querier) error {
		existing, err := QueryFirst(ctx, q, hydrateRenovationAsset,
			renovationAssets.selectSQL()+` WHERE renovation_id = ? AND asset_id = ?`,
			link.RenovationID, link.AssetID)
		if err != nil {
			return err
		}
		if existing != nil {
			var p patchSet
			p.text("notes", &link.Notes)
			out, err = renovationAssets.update(ctx, q, existing.ID, &p, r.backend.stamp())
			return err
		}
		id := ensureID(link.ID)
		now := fmtTime(r.backend.stamp())
		err = renovationAssets.insert(ctx, q, map[string]any{
			"id":            id,
			"renovation_id": link.RenovationID,
			"asset_id":      link.AssetID,
			"notes":         link.Notes,
			"created_at":    now,
			"updated_at":    now,
		})
		if err != nil {
			return err
		}
		out, err = renovationAssets.reread(ctx, q, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RemoveAsset unlinks an asset. Removing a link that does not exist is not
// an error.
func (r *RenovationRepo) RemoveAsset(ctx context.Context, renovationID, assetID string) error {
	q, err := r.querier(ctx)
	if err != nil {
		return err
	}
	_, err = Exec(ctx, q, `DELETE FROM renovation_assets WHERE renovation_id = ? AND asset_id = ?`, renovationID, assetID)
	if err != nil {
		return fmt.Errorf("removing renovation asset: %w", err)
	}
	return nil
}

// ListAssets returns the renovation's assets with their names.
func (r *RenovationRepo) ListAssets(ctx context.Context, renovationID string) ([]types.RenovationAssetDetail, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return r.assetDetails(ctx, q, renovationID)
}

// ListAssetLinks returns every renovation asset link.
func (r *RenovationRepo) ListAssetLinks(ctx context.Context) ([]types.RenovationAsset, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return renovationAssets.list(ctx, q, "", linkOrder)
}

// AddCost records an itemized cost against a renovation.
func (r *RenovationRepo) AddCost(ctx context.Context, c *types.RenovationCost) (*types.RenovationCost, error) {
	if c == nil || c.RenovationID == "" {
		return nil, fmt.Errorf("%w: renovation cost needs a renovation", types.ErrInvalidData)
	}
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	id := ensureID(c.ID)
	now := fmtTime(r.backend.stamp())
	err = renovationCosts.insert(ctx, q, map[string]any{
		"id":            id,
		"renovation_id": c.RenovationID,
		"description":   c.Description,
		"category":      c.Category,
		"amount":        moneyArg(c.Amount),
		"date":          dateArg(c.Date),
		"notes":         c.Notes,
		"created_at":    now,
		"updated_at":    now,
	})
	if err != nil {
		return nil, err
	}
	return renovationCosts.reread(ctx, q, id)
}

func (r *RenovationRepo) UpdateCost(ctx context.Context, id string, patch types.RenovationCostPatch) (*types.RenovationCost, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	var p patchSet
	p.text("description", patch.Description)
	p.text("category", patch.Category)
	p.money("amount", patch.Amount)
	p.date("date", patch.Date)
	p.text("notes", patch.Notes)
	return renovationCosts.update(ctx, q, id, &p, r.backend.stamp())
}

func (r *RenovationRepo) DeleteCost(ctx context.Context, id string) error {
	q, err := r.querier(ctx)
	if err != nil {
		return err
	}
	return renovationCosts.delete(ctx, q, id)
}

// ListCosts returns the renovation's costs in date order; undated costs
// come last.
func (r *RenovationRepo) ListCosts(ctx context.Context, renovationID string) ([]types.RenovationCost, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return renovationCosts.list(ctx, q, "renovation_id = ?", costOrder, renovationID)
}

// ListAllCosts returns the costs of every renovation.
func (r *RenovationRepo) ListAllCosts(ctx context.Context) ([]types.RenovationCost, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return renovationCosts.list(ctx, q, "", "renovation_id, "+costOrder)
}
