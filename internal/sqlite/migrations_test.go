package sqlite

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mesh-intelligence/homestead/pkg/types"
)

// schemaDump returns every table and index definition, ordered by name.
func schemaDump(t *testing.T, db *sql.DB) []string {
	t.Helper()
	rows, err := db.Query(`SELECT type || ' ' || name || ': ' || COALESCE(sql, '') FROM sqlite_master
		WHERE name NOT LIKE 'sqlite_%' ORDER BY type, name`)
	require.NoError(t, err)
	defer rows.Close()
	var out []string
	for rows.Next() {
		var s string
		require.NoError(t, rows.Scan(&s))
		out = append(out, s)
	}
	require.NoError(t, rows.Err())
	return out
}

// openRaw opens the store file directly, bypassing the backend.
func openRaw(t *testing.T, config types.Config) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", dsn(filepath.Join(config.DataDir, DBFileName)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestMigrations_FreshStore(t *testing.T) {
	b := newTestBackend(t)
	_, err := b.Conn(context.Background())
	require.NoError(t, err)

	report := b.LastMigration()
	assert.Equal(t, 0, report.From)
	assert.Equal(t, CurrentSchemaVersion(), report.To)
	assert.Empty(t, report.Applied, "a fresh catalog already satisfies every step")

	db, err := b.Conn(context.Background())
	require.NoError(t, err)
	for _, table := range types.StandardTableNames {
		ok, err := objectExists(context.Background(), db, "table", table)
		require.NoError(t, err)
		assert.True(t, ok, "table %s missing", table)
	}
	for _, idx := range catalogIndexes {
		ok, err := objectExists(context.Background(), db, "index", idx.name)
		require.NoError(t, err)
		assert.True(t, ok, "index %s missing", idx.name)
	}
}

func TestMigrations_Idempotent(t *testing.T) {
	config := testConfig(t)
	ctx := context.Background()

	b := NewBackend(config)
	db, err := b.Conn(ctx)
	require.NoError(t, err)
	before := schemaDump(t, db)
	require.NoError(t, b.Close())

	for range 3 {
		b := NewBackend(config)
		db, err := b.Conn(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, schemaDump(t, db))
		assert.Empty(t, b.LastMigration().Applied)
		require.NoError(t, b.Close())
	}
}

func TestMigrations_UpgradesOldStore(t *testing.T) {
	config := testConfig(t)
	ctx := context.Background()

	// A store from an early release: workers has no rating and notes has no
	// is_pinned.
	raw := openRaw(t, config)
	_, err := raw.Exec(`CREATE TABLE workers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		company TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		specialty TEXT NOT NULL DEFAULT '[]',
		hourly_rate REAL,
		notes TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`)
	require.NoError(t, err)
	_, err = raw.Exec(`CREATE TABLE notes (
		id TEXT PRIMARY KEY,
		property_id TEXT,
		asset_id TEXT,
		title TEXT NOT NULL DEFAULT '',
		content TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`)
	require.NoError(t, err)
	_, err = raw.Exec(`INSERT INTO workers (id, name, created_at, updated_at)
		VALUES ('w1', 'Pat', '2023-01-01T00:00:00.000000Z', '2023-01-01T00:00:00.000000Z')`)
	require.NoError(t, err)
	_, err = raw.Exec(`PRAGMA user_version = 1`)
	require.NoError(t, err)
	require.NoError(t, raw.Close())

	b := newTestBackendAt(t, config)
	db, err := b.Conn(ctx)
	require.NoError(t, err)

	report := b.LastMigration()
	assert.Equal(t, 1, report.From)
	assert.Equal(t, CurrentSchemaVersion(), report.To)
	assert.Equal(t, []int{4, 5, 6, 8, 10, 11}, report.Applied)

	for _, c := range []struct{ table, column string }{
		{"workers", "rating"},
		{"notes", "is_pinned"},
	} {
		ok, err := columnExists(ctx, db, c.table, c.column)
		require.NoError(t, err)
		assert.True(t, ok, "%s.%s missing", c.table, c.column)
	}

	// Existing rows survive and pick up the column default.
	s := NewStore(b)
	w, err := s.Workers.Get(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, "Pat", w.Name)
	assert.Equal(t, 0, w.Rating)
}

func TestMigrations_StepOwnedTablesCreatedBySteps(t *testing.T) {
	config := testConfig(t)
	ctx := context.Background()

	// Stamped at version 3 with a properties table but none of the tables
	// that later releases added.
	raw := openRaw(t, config)
	_, err := raw.Exec(createProperties)
	require.NoError(t, err)
	_, err = raw.Exec(`PRAGMA user_version = 3`)
	require.NoError(t, err)
	require.NoError(t, raw.Close())

	var logs bytes.Buffer
	b := newTestBackendAt(t, config, WithLogger(zap.New(zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), zapcore.AddSync(&logs), zap.InfoLevel))))
	db, err := b.Conn(ctx)
	require.NoError(t, err)

	report := b.LastMigration()
	assert.Equal(t, 3, report.From)
	assert.Subset(t, report.Applied, []int{4, 5, 6})
	for _, m := range DefaultMigrations() {
		if m.Table == "" {
			continue
		}
		ok, err := objectExists(ctx, db, "table", m.Table)
		require.NoError(t, err)
		assert.True(t, ok, "table %s missing", m.Table)
		assert.Contains(t, logs.String(), m.Description)
	}

	// The step-created tables are usable with their foreign keys.
	s := NewStore(b)
	_, err = s.CustomCategories.Create(ctx, &types.CustomCategory{Type: types.CategoryBill, Name: "Water"})
	require.NoError(t, err)
}

func newTestBackendAt(t *testing.T, config types.Config, opts ...Option) *Backend {
	t.Helper()
	b := NewBackend(config, opts...)
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestMigrations_FailedStepRollsBackEverything(t *testing.T) {
	config := testConfig(t)
	ctx := context.Background()

	boom := errors.New("boom")
	steps := append(DefaultMigrations(), Migration{
		Version:     CurrentSchemaVersion() + 1,
		Description: "create scratch then fail",
		Applied:     func(context.Context, Querier) (bool, error) { return false, nil },
		Up: func(ctx context.Context, q Querier) error {
			if _, err := q.ExecContext(ctx, `CREATE TABLE scratch (id TEXT)`); err != nil {
				return err
			}
			return boom
		},
	})

	b := newTestBackendAt(t, config, WithMigrations(steps))
	_, err := b.Conn(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrInitialization)
	assert.ErrorIs(t, err, boom)

	raw := openRaw(t, config)
	for _, name := range []string{"scratch", types.TableProperties} {
		ok, err := objectExists(ctx, raw, "table", name)
		require.NoError(t, err)
		assert.False(t, ok, "table %s should have been rolled back", name)
	}
	v, err := userVersion(ctx, raw)
	require.NoError(t, err)
	assert.Equal(t, 0, v)
}

func TestMigrations_RefusesNewerStore(t *testing.T) {
	config := testConfig(t)
	raw := openRaw(t, config)
	_, err := raw.Exec(fmt.Sprintf(`PRAGMA user_version = %d`, CurrentSchemaVersion()+5))
	require.NoError(t, err)
	require.NoError(t, raw.Close())

	b := newTestBackendAt(t, config)
	_, err = b.Conn(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrSchemaTooNew)
	assert.ErrorIs(t, err, types.ErrInitialization)
}

func TestRunMigrations_OlderCodeRefusesStore(t *testing.T) {
	config := testConfig(t)
	ctx := context.Background()

	b := newTestBackendAt(t, config)
	_, err := b.Conn(ctx)
	require.NoError(t, err)
	require.NoError(t, b.Close())

	raw := openRaw(t, config)
	_, err = RunMigrations(ctx, raw, DefaultMigrations()[:3], nil)
	assert.ErrorIs(t, err, types.ErrSchemaTooNew)

	report, err := RunMigrations(ctx, raw, DefaultMigrations(), nil)
	require.NoError(t, err)
	assert.Equal(t, CurrentSchemaVersion(), report.From)
	assert.Equal(t, CurrentSchemaVersion(), report.To)
	assert.Empty(t, report.Applied)
}

func TestTargetVersion(t *testing.T) {
	tests := []struct {
		name  string
		steps []Migration
		want  int
	}{
		{"no steps", nil, 1},
		{"unordered", []Migration{{Version: 4}, {Version: 9}, {Version: 2}}, 9},
		{"defaults", DefaultMigrations(), 13},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, targetVersion(tt.steps))
		})
	}
}
