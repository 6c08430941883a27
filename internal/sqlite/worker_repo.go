package sqlite

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/homestead/pkg/types"
)

var workers = entityTable[types.Worker]{
	name: types.TableWorkers,
	columns: []string{
		"id", "name", "company", "phone", "email", "specialty", "hourly_rate",
		"rating", "notes", "created_at", "updated_at",
	},
	scan: hydrateWorker,
}

func hydrateWorker(s RowScanner) (types.Worker, error) {
	var w types.Worker
	err := s.Scan(&w.ID, &w.Name, &w.Company, &w.Phone, &w.Email, jsonListCol(&w.Specialty),
		&w.HourlyRate, &w.Rating, &w.Notes, tsCol(&w.CreatedAt), tsCol(&w.UpdatedAt))
	if err != nil {
		return types.Worker{}, fmt.Errorf("hydrating worker: %w", err)
	}
	return w, nil
}

// WorkerRepo stores workers.
type WorkerRepo struct{ repo }

func (r *WorkerRepo) Get(ctx context.Context, id string) (*types.Worker, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return workers.get(ctx, q, id)
}

// List returns every worker ordered by name.
func (r *WorkerRepo) List(ctx context.Context) ([]types.Worker, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return workers.list(ctx, q, "", "name COLLATE NOCASE, id")
}

// Search returns workers whose name or company contains term.
func (r *WorkerRepo) Search(ctx context.Context, term string) ([]types.Worker, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	pattern := likePattern(term)
	return workers.list(ctx, q,
		`name LIKE ? ESCAPE '\' OR company LIKE ? ESCAPE '\'`,
		"name COLLATE NOCASE, id", pattern, pattern)
}

// GetWithStats returns the worker with totals from the expenses that
// reference them.
func (r *WorkerRepo) GetWithStats(ctx context.Context, id string) (*types.WorkerStats, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	w, err := workers.get(ctx, q, id)
	if err != nil {
		return nil, err
	}
	stats := &types.WorkerStats{Worker: *w}
	var total decimal.NullDecimal
	err = q.QueryRowContext(ctx,
		`SELECT COUNT(*), SUM(amount), MAX(date) FROM expenses WHERE worker_id = ?`, id,
	).Scan(&stats.ExpenseCount, &total, nullDayCol(&stats.LastJobDate))
	if err != nil {
		return nil, fmt.Errorf("summarizing worker %s: %w", id, err)
	}
	if total.Valid {
		stats.TotalPaid = total.Decimal.Round(2)
	}
	return stats, nil
}

func (r *WorkerRepo) Create(ctx context.Context, w *types.Worker) (*types.Worker, error) {
	if w == nil || w.Name == "" {
		return nil, fmt.Errorf("%w: worker name is required", types.ErrInvalidData)
	}
	specialty, err := listArg(w.Specialty)
	if err != nil {
		return nil, err
	}
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	id := ensureID(w.ID)
	now := fmtTime(r.backend.stamp())
	err = workers.insert(ctx, q, map[string]any{
		"id":          id,
		"name":        w.Name,
		"company":     w.Company,
		"phone":       w.Phone,
		"email":       w.Email,
		"specialty":   specialty,
		"hourly_rate": nullMoneyArg(w.HourlyRate),
		"rating":      w.Rating,
		"notes":       w.Notes,
		"created_at":  now,
		"updated_at":  now,
	})
	if err != nil {
		return nil, err
	}
	return workers.reread(ctx, q, id)
}

func (r *WorkerRepo) Update(ctx context.Context, id string, patch types.WorkerPatch) (*types.Worker, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	var p patchSet
	p.required("name", patch.Name)
	p.text("company", patch.Company)
	p.text("phone", patch.Phone)
	p.text("email", patch.Email)
	p.list("specialty", patch.Specialty)
	p.nullMoney("hourly_rate", patch.HourlyRate)
	p.integer("rating", patch.Rating)
	p.text("notes", patch.Notes)
	return workers.update(ctx, q, id, &p, r.backend.stamp())
}

// Delete removes the worker. Expenses, tasks, and documents that reference
// the worker keep existing with the reference cleared.
func (r *WorkerRepo) Delete(ctx context.Context, id string) error {
	q, err := r.querier(ctx)
	if err != nil {
		return err
	}
	return workers.delete(ctx, q, id)
}

var workerNotes = entityTable[types.WorkerNote]{
	name:    types.TableWorkerNotes,
	columns: []string{"id", "worker_id", "property_id", "content", "created_at", "updated_at"},
	scan:    hydrateWorkerNote,
}

func hydrateWorkerNote(s RowScanner) (types.WorkerNote, error) {
	var n types.WorkerNote
	err := s.Scan(&n.ID, &n.WorkerID, nullRefCol(&n.PropertyID), &n.Content,
		tsCol(&n.CreatedAt), tsCol(&n.UpdatedAt))
	if err != nil {
		return types.WorkerNote{}, fmt.Errorf("hydrating worker note: %w", err)
	}
	return n, nil
}

// WorkerNoteRepo stores remarks about workers.
type WorkerNoteRepo struct{ repo }

func (r *WorkerNoteRepo) Get(ctx context.Context, id string) (*types.WorkerNote, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return workerNotes.get(ctx, q, id)
}

func (r *WorkerNoteRepo) List(ctx context.Context) ([]types.WorkerNote, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return workerNotes.list(ctx, q, "", "created_at, id")
}

// ListByWorker returns the worker's notes, newest first.
func (r *WorkerNoteRepo) ListByWorker(ctx context.Context, workerID string) ([]types.WorkerNote, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return workerNotes.list(ctx, q, "worker_id = ?", "created_at DESC, id DESC", workerID)
}

func (r *WorkerNoteRepo) Create(ctx context.Context, n *types.WorkerNote) (*types.WorkerNote, error) {
	if n == nil || n.WorkerID == "" || n.Content == "" {
		return nil, fmt.Errorf("%w: worker note needs a worker and content", types.ErrInvalidData)
	}
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	id := ensureID(n.ID)
	now := fmtTime(r.backend.stamp())
	err = workerNotes.insert(ctx, q, map[string]any{
		"id":          id,
		"worker_id":   n.WorkerID,
		"property_id": refArg(n.PropertyID),
		"content":     n.Content,
		"created_at":  now,
		"updated_at":  now,
	})
	if err != nil {
		return nil, err
	}
	return workerNotes.reread(ctx, q, id)
}

func (r *WorkerNoteRepo) Update(ctx context.Context, id string, patch types.WorkerNotePatch) (*types.WorkerNote, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	var p patchSet
	p.ref("property_id", patch.PropertyID)
	p.required("content", patch.Content)
	return workerNotes.update(ctx, q, id, &p, r.backend.stamp())
}

func (r *WorkerNoteRepo) Delete(ctx context.Context, id string) error {
	q, err := r.querier(ctx)
	if err != nil {
		return err
	}
	return workerNotes.delete(ctx, q, id)
}
