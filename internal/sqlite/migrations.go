package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/homestead/pkg/types"
)

// Migration is one forward-only structural step. Applied reports whether the
// live schema already has the step's target structure; Up applies it. Table
// is set when the step creates a whole table.
type Migration struct {
	Version     int
	Description string
	Table       string
	Applied     func(ctx context.Context, q Querier) (bool, error)
	Up          func(ctx context.Context, q Querier) error
}

// MigrationReport describes one run of the migration engine.
type MigrationReport struct {
	From    int
	To      int
	Applied []int
}

// AddColumn adds column to table unless PRAGMA table_info already lists it.
func AddColumn(version int, table, column, definition string) Migration {
	return Migration{
		Version:     version,
		Description: fmt.Sprintf("add %s.%s", table, column),
		Applied: func(ctx context.Context, q Querier) (bool, error) {
			return columnExists(ctx, q, table, column)
		},
		Up: func(ctx context.Context, q Querier) error {
			_, err := q.ExecContext(ctx, `ALTER TABLE `+table+` ADD COLUMN `+column+` `+definition)
			return err
		},
	}
}

// AddTable creates a table from its CREATE TABLE IF NOT EXISTS statement.
func AddTable(version int, table, ddl string) Migration {
	return Migration{
		Version:     version,
		Description: "create table " + table,
		Table:       table,
		Applied: func(ctx context.Context, q Querier) (bool, error) {
			return objectExists(ctx, q, "table", table)
		},
		Up: func(ctx context.Context, q Querier) error {
			_, err := q.ExecContext(ctx, ddl)
			return err
		},
	}
}

// AddIndex creates an index from its CREATE INDEX IF NOT EXISTS statement.
func AddIndex(version int, index, ddl string) Migration {
	return Migration{
		Version:     version,
		Description: "create index " + index,
		Applied: func(ctx context.Context, q Querier) (bool, error) {
			return objectExists(ctx, q, "index", index)
		},
		Up: func(ctx context.Context, q Querier) error {
			_, err := q.ExecContext(ctx, ddl)
			return err
		},
	}
}

// defaultMigrations brings stores created by earlier releases up to the
// catalog shape. A store created from the current catalog already satisfies
// every step.
var defaultMigrations = []Migration{
	AddColumn(2, "expenses", "recurring_template_id", `TEXT REFERENCES recurring_templates(id) ON DELETE SET NULL`),
	AddColumn(3, "maintenance_tasks", "assigned_worker_id", `TEXT REFERENCES workers(id) ON DELETE SET NULL`),
	AddTable(4, "expense_assets", createExpenseAssets),
	AddTable(5, "custom_categories", createCustomCategories),
	AddTable(6, "renovation_costs", createRenovationCosts),
	AddColumn(7, "expenses", "tags", `TEXT NOT NULL DEFAULT '[]'`),
	AddColumn(8, "workers", "rating", `INTEGER NOT NULL DEFAULT 0`),
	AddColumn(9, "recurring_templates", "next_due_date", `TEXT`),
	AddIndex(10, "idx_expenses_date", `CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses(date)`),
	AddColumn(11, "notes", "is_pinned", `INTEGER NOT NULL DEFAULT 0`),
	AddColumn(12, "documents", "worker_id", `TEXT REFERENCES workers(id) ON DELETE SET NULL`),
	AddColumn(13, "app_settings", "biometric_enabled", `INTEGER NOT NULL DEFAULT 0`),
}

// DefaultMigrations returns a copy of the built-in migration steps.
func DefaultMigrations() []Migration {
	return slices.Clone(defaultMigrations)
}

// CurrentSchemaVersion is the version stamped after the built-in steps.
func CurrentSchemaVersion() int {
	return targetVersion(defaultMigrations)
}

func targetVersion(steps []Migration) int {
	version := 1
	for _, m := range steps {
		version = max(version, m.Version)
	}
	return version
}

// RunMigrations brings db up to the catalog shape plus every step. Catalog
// tables, every step, and catalog indexes run in one transaction; any error
// rolls the whole run back. In a store that already has tables, a table
// owned by an AddTable step is created by that step, so the report lists it. After commit the store's user_version is raised
// to the highest step version; it is never lowered.
func RunMigrations(ctx context.Context, db *sql.DB, steps []Migration, logger *zap.Logger) (MigrationReport, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	ordered := slices.Clone(steps)
	slices.SortStableFunc(ordered, func(a, b Migration) int { return a.Version - b.Version })

	from, err := userVersion(ctx, db)
	if err != nil {
		return MigrationReport{}, err
	}
	target := targetVersion(ordered)
	if from > target {
		return MigrationReport{}, fmt.Errorf("%w: store is at version %d, code supports %d", types.ErrSchemaTooNew, from, target)
	}
	report := MigrationReport{From: from, To: max(from, target), Applied: []int{}}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return MigrationReport{}, fmt.Errorf("begin migration: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// An empty store gets the whole catalog up front, so every step finds
	// its structure in place. Otherwise tables that a step creates are left
	// to that step, and indexes wait for the columns steps add.
	fresh, err := isEmptyStore(ctx, tx)
	if err != nil {
		return MigrationReport{}, err
	}
	owned := stepTables(ordered)
	for _, t := range catalogTables {
		if !fresh && owned[t.name] {
			continue
		}
		if _, err := tx.ExecContext(ctx, t.ddl); err != nil {
			return MigrationReport{}, fmt.Errorf("create table %s: %w", t.name, err)
		}
	}
	if fresh {
		if err := createIndexes(ctx, tx); err != nil {
			return MigrationReport{}, err
		}
	}
	for _, m := range ordered {
		done, err := m.Applied(ctx, tx)
		if err != nil {
			return MigrationReport{}, fmt.Errorf("inspect migration v%d (%s): %w", m.Version, m.Description, err)
		}
		if done {
			continue
		}
		if err := m.Up(ctx, tx); err != nil {
			return MigrationReport{}, fmt.Errorf("apply migration v%d (%s): %w", m.Version, m.Description, err)
		}
		report.Applied = append(report.Applied, m.Version)
		logger.Info("applied migration", zap.Int("version", m.Version), zap.String("description", m.Description))
	}
	if !fresh {
		if err := createIndexes(ctx, tx); err != nil {
			return MigrationReport{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return MigrationReport{}, fmt.Errorf("commit migration: %w", err)
	}

	if target > from {
		// PRAGMA arguments cannot be bound; target is an int computed here.
		if _, err := db.ExecContext(ctx, fmt.Sprintf(`PRAGMA user_version = %d`, target)); err != nil {
			return MigrationReport{}, fmt.Errorf("stamp schema version: %w", err)
		}
		logger.Info("stamped schema version", zap.Int("version", target))
	}
	return report, nil
}

func createIndexes(ctx context.Context, q Querier) error {
	for _, idx := range catalogIndexes {
		if _, err := q.ExecContext(ctx, idx.ddl); err != nil {
			return fmt.Errorf("create index %s: %w", idx.name, err)
		}
	}
	return nil
}

// isEmptyStore reports whether the store holds no tables at all.
func isEmptyStore(ctx context.Context, q Querier) (bool, error) {
	var n int
	err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'`).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("inspect store tables: %w", err)
	}
	return n == 0, nil
}

// stepTables returns the tables created by a step rather than the catalog
// pass.
func stepTables(steps []Migration) map[string]bool {
	owned := make(map[string]bool)
	for _, m := range steps {
		if m.Table != "" {
			owned[m.Table] = true
		}
	}
	return owned
}

func userVersion(ctx context.Context, q Querier) (int, error) {
	var version int
	if err := q.QueryRowContext(ctx, `PRAGMA user_version`).Scan(&version); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}

func columnExists(ctx context.Context, q Querier, table, column string) (bool, error) {
	rows, err := q.QueryContext(ctx, `SELECT name FROM pragma_table_info(?)`, table)
	if err != nil {
		return false, fmt.Errorf("inspect %s columns: %w", table, err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return false, fmt.Errorf("scan %s column: %w", table, err)
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

func objectExists(ctx context.Context, q Querier, kind, name string) (bool, error) {
	var n int
	err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM sqlite_master WHERE type = ? AND name = ?`, kind, name).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("inspect %s %s: %w", kind, name, err)
	}
	return n > 0, nil
}
