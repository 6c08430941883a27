package sqlite

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/homestead/pkg/types"
)

var maintenanceTasks = entityTable[types.MaintenanceTask]{
	name: types.TableMaintenanceTasks,
	columns: []string{
		"id", "property_id", "asset_id", "assigned_worker_id", "title", "description",
		"frequency", "priority", "next_due_date", "last_completed_date", "is_completed",
		"estimated_cost", "notes", "created_at", "updated_at",
	},
	scan: hydrateMaintenanceTask,
}

func hydrateMaintenanceTask(s RowScanner) (types.MaintenanceTask, error) {
	var t types.MaintenanceTask
	err := s.Scan(&t.ID, &t.PropertyID, nullRefCol(&t.AssetID), nullRefCol(&t.AssignedWorkerID),
		&t.Title, &t.Description, &t.Frequency, &t.Priority, nullDayCol(&t.NextDueDate),
		nullDayCol(&t.LastCompletedDate), boolCol(&t.IsCompleted), &t.EstimatedCost, &t.Notes,
		tsCol(&t.CreatedAt), tsCol(&t.UpdatedAt))
	if err != nil {
		return types.MaintenanceTask{}, fmt.Errorf("hydrating maintenance task: %w", err)
	}
	return t, nil
}

// Open tasks first, then by due date with undated tasks last.
const taskOrder = "is_completed, next_due_date IS NULL, next_due_date, title COLLATE NOCASE, id"

// MaintenanceTaskRepo stores maintenance tasks.
type MaintenanceTaskRepo struct{ repo }

func (r *MaintenanceTaskRepo) Get(ctx context.Context, id string) (*types.MaintenanceTask, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return maintenanceTasks.get(ctx, q, id)
}

func (r *MaintenanceTaskRepo) List(ctx context.Context) ([]types.MaintenanceTask, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return maintenanceTasks.list(ctx, q, "", taskOrder)
}

func (r *MaintenanceTaskRepo) ListByProperty(ctx context.Context, propertyID string) ([]types.MaintenanceTask, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return maintenanceTasks.list(ctx, q, "property_id = ?", taskOrder, propertyID)
}

// GetUpcoming returns open tasks of every property due between today and
// days days from now.
func (r *MaintenanceTaskRepo) GetUpcoming(ctx context.Context, days int) ([]types.MaintenanceTask, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	today := r.backend.today()
	return maintenanceTasks.list(ctx, q,
		"is_completed = 0 AND next_due_date >= ? AND next_due_date <= ?",
		taskOrder, fmtDate(today), fmtDate(today.AddDate(0, 0, days)))
}

// GetOverdue returns open tasks of every property due before today.
func (r *MaintenanceTaskRepo) GetOverdue(ctx context.Context) ([]types.MaintenanceTask, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return maintenanceTasks.list(ctx, q,
		"is_completed = 0 AND next_due_date < ?", taskOrder, fmtDate(r.backend.today()))
}

// MarkComplete records a completion of the task. A one-off task is marked
// completed. A recurring task is rescheduled one period after today and
// stays open. Either way a completion row is appended, in the same
// transaction. The completion's worker defaults to the assigned worker.
func (r *MaintenanceTaskRepo) MarkComplete(ctx context.Context, id string, details types.CompletionDetails) (*types.MaintenanceTask, error) {
	var out *types.MaintenanceTask
	err := r.exec.atomically(ctx, func(ctx context.Context, q Querier) error {
		task, err := maintenanceTasks.get(ctx, q, id)
		if err != nil {
			return err
		}
		today := r.backend.today()

		var p patchSet
		p.date("last_completed_date", &today)
		if next, ok := types.NextMaintenanceDue(task.Frequency, today); ok {
			p.date("next_due_date", &next)
			p.flag("is_completed", types.Ptr(false))
		} else {
			p.flag("is_completed", types.Ptr(true))
		}
		if out, err = maintenanceTasks.update(ctx, q, id, &p, r.backend.stamp()); err != nil {
			return err
		}

		workerID := details.WorkerID
		if workerID == "" {
			workerID = task.AssignedWorkerID
		}
		_, err = insertCompletion(ctx, q, r.backend, &types.MaintenanceCompletion{
			TaskID:        id,
			WorkerID:      workerID,
			CompletedDate: today,
			Cost:          details.Cost,
			Notes:         details.Notes,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MaintenanceTaskRepo) Create(ctx context.Context, t *types.MaintenanceTask) (*types.MaintenanceTask, error) {
	if t == nil || t.PropertyID == "" || t.Title == "" {
		return nil, fmt.Errorf("%w: maintenance task needs a property and a title", types.ErrInvalidData)
	}
	frequency := t.Frequency
	if frequency == "" {
		frequency = types.MaintenanceOnce
	}
	priority := t.Priority
	if priority == "" {
		priority = types.PriorityMedium
	}
	if !types.ValidMaintenanceFrequency(frequency) || !types.ValidPriority(priority) {
		return nil, fmt.Errorf("%w: frequency %q priority %q", types.ErrInvalidData, frequency, priority)
	}
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	id := ensureID(t.ID)
	now := fmtTime(r.backend.stamp())
	err = maintenanceTasks.insert(ctx, q, map[string]any{
		"id":                  id,
		"property_id":         t.PropertyID,
		"asset_id":            refArg(t.AssetID),
		"assigned_worker_id":  refArg(t.AssignedWorkerID),
		"title":               t.Title,
		"description":         t.Description,
		"frequency":           frequency,
		"priority":            priority,
		"next_due_date":       dateArg(t.NextDueDate),
		"last_completed_date": dateArg(t.LastCompletedDate),
		"is_completed":        boolInt(t.IsCompleted),
		"estimated_cost":      nullMoneyArg(t.EstimatedCost),
		"notes":               t.Notes,
		"created_at":          now,
		"updated_at":          now,
	})
	if err != nil {
		return nil, err
	}
	return maintenanceTasks.reread(ctx, q, id)
}

func (r *MaintenanceTaskRepo) Update(ctx context.Context, id string, patch types.MaintenanceTaskPatch) (*types.MaintenanceTask, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	var p patchSet
	p.ref("asset_id", patch.AssetID)
	p.ref("assigned_worker_id", patch.AssignedWorkerID)
	p.required("title", patch.Title)
	p.text("description", patch.Description)
	p.enum("frequency", patch.Frequency, types.ValidMaintenanceFrequency)
	p.enum("priority", patch.Priority, types.ValidPriority)
	p.date("next_due_date", patch.NextDueDate)
	p.date("last_completed_date", patch.LastCompletedDate)
	p.flag("is_completed", patch.IsCompleted)
	p.nullMoney("estimated_cost", patch.EstimatedCost)
	p.text("notes", patch.Notes)
	return maintenanceTasks.update(ctx, q, id, &p, r.backend.stamp())
}

// Delete removes the task and its completion history.
func (r *MaintenanceTaskRepo) Delete(ctx context.Context, id string) error {
	q, err := r.querier(ctx)
	if err != nil {
		return err
	}
	return maintenanceTasks.delete(ctx, q, id)
}

var maintenanceCompletions = entityTable[types.MaintenanceCompletion]{
	name: types.TableMaintenanceCompletions,
	columns: []string{
		"id", "task_id", "worker_id", "completed_date", "cost", "notes",
		"created_at", "updated_at",
	},
	scan: hydrateMaintenanceCompletion,
}

func hydrateMaintenanceCompletion(s RowScanner) (types.MaintenanceCompletion, error) {
	var c types.MaintenanceCompletion
	err := s.Scan(&c.ID, &c.TaskID, nullRefCol(&c.WorkerID), dayCol(&c.CompletedDate), &c.Cost,
		&c.Notes, tsCol(&c.CreatedAt), tsCol(&c.UpdatedAt))
	if err != nil {
		return types.MaintenanceCompletion{}, fmt.Errorf("hydrating maintenance completion: %w", err)
	}
	return c, nil
}

func insertCompletion(ctx context.Context, q Querier, b *Backend, c *types.MaintenanceCompletion) (string, error) {
	id := ensureID(c.ID)
	now := fmtTime(b.stamp())
	err := maintenanceCompletions.insert(ctx, q, map[string]any{
		"id":             id,
		"task_id":        c.TaskID,
		"worker_id":      refArg(c.WorkerID),
		"completed_date": fmtDate(c.CompletedDate),
		"cost":           nullMoneyArg(c.Cost),
		"notes":          c.Notes,
		"created_at":     now,
		"updated_at":     now,
	})
	return id, err
}

const completionOrder = "completed_date DESC, created_at DESC, id DESC"

// MaintenanceCompletionRepo stores the completion history of tasks.
type MaintenanceCompletionRepo struct{ repo }

func (r *MaintenanceCompletionRepo) Get(ctx context.Context, id string) (*types.MaintenanceCompletion, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return maintenanceCompletions.get(ctx, q, id)
}

func (r *MaintenanceCompletionRepo) List(ctx context.Context) ([]types.MaintenanceCompletion, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return maintenanceCompletions.list(ctx, q, "", completionOrder)
}

// ListByTask returns the task's completions, newest first.
func (r *MaintenanceCompletionRepo) ListByTask(ctx context.Context, taskID string) ([]types.MaintenanceCompletion, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return maintenanceCompletions.list(ctx, q, "task_id = ?", completionOrder, taskID)
}

func (r *MaintenanceCompletionRepo) GetTotalCostByTask(ctx context.Context, taskID string) (decimal.Decimal, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	total, err := scanDecimal(q.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(cost), 0) FROM maintenance_completions WHERE task_id = ?`, taskID))
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing completion cost: %w", err)
	}
	return total, nil
}

// Create appends a completion without touching the task. MarkComplete is
// the usual entry point; import uses Create.
func (r *MaintenanceCompletionRepo) Create(ctx context.Context, c *types.MaintenanceCompletion) (*types.MaintenanceCompletion, error) {
	if c == nil || c.TaskID == "" || c.CompletedDate.IsZero() {
		return nil, fmt.Errorf("%w: completion needs a task and a date", types.ErrInvalidData)
	}
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	id, err := insertCompletion(ctx, q, r.backend, c)
	if err != nil {
		return nil, err
	}
	return maintenanceCompletions.reread(ctx, q, id)
}

func (r *MaintenanceCompletionRepo) Update(ctx context.Context, id string, patch types.MaintenanceCompletionPatch) (*types.MaintenanceCompletion, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	var p patchSet
	p.ref("worker_id", patch.WorkerID)
	p.requiredDate("completed_date", patch.CompletedDate)
	p.nullMoney("cost", patch.Cost)
	p.text("notes", patch.Notes)
	return maintenanceCompletions.update(ctx, q, id, &p, r.backend.stamp())
}

func (r *MaintenanceCompletionRepo) Delete(ctx context.Context, id string) error {
	q, err := r.querier(ctx)
	if err != nil {
		return err
	}
	return maintenanceCompletions.delete(ctx, q, id)
}
