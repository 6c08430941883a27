package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/homestead/pkg/types"
)

func TestBackend_OpensLazily(t *testing.T) {
	b := newTestBackend(t)

	_, err := os.Stat(b.Path())
	assert.True(t, os.IsNotExist(err), "store file should not exist before first use")

	db, err := b.Conn(context.Background())
	require.NoError(t, err)
	require.NotNil(t, db)

	_, err = os.Stat(b.Path())
	assert.NoError(t, err, "store file should exist after first use")
	assert.Equal(t, DBFileName, filepath.Base(b.Path()))
}

func TestBackend_ForeignKeysEnforced(t *testing.T) {
	b := newTestBackend(t)
	db, err := b.Conn(context.Background())
	require.NoError(t, err)

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestBackend_ConcurrentConnSharesOneInitialization(t *testing.T) {
	b := newTestBackend(t)

	const callers = 16
	var wg sync.WaitGroup
	handles := make([]*sql.DB, callers)
	errs := make([]error, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			handles[i], errs[i] = b.Conn(context.Background())
		}()
	}
	wg.Wait()

	for i := range callers {
		require.NoError(t, errs[i])
		assert.Same(t, handles[0], handles[i], "caller %d got a different handle", i)
	}
	assert.Equal(t, int64(1), b.migrationRuns.Load(), "migrations must run exactly once")
}

func TestBackend_CloseIsIdempotentAndReopens(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()

	first, err := b.Conn(ctx)
	require.NoError(t, err)
	require.NoError(t, b.Close())
	require.NoError(t, b.Close())
	assert.Equal(t, MigrationReport{}, b.LastMigration())

	second, err := b.Conn(ctx)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, int64(2), b.migrationRuns.Load())

	// A reopened store is already current, so nothing is applied.
	report := b.LastMigration()
	assert.Equal(t, CurrentSchemaVersion(), report.From)
	assert.Empty(t, report.Applied)
}

func TestBackend_FailedInitializationRetries(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "data")
	// A regular file where the data directory should be makes MkdirAll fail.
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	b := NewBackend(types.Config{Backend: types.BackendSQLite, DataDir: filepath.Join(blocker, "nested")})
	t.Cleanup(func() { _ = b.Close() })

	_, err := b.Conn(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrInitialization)

	require.NoError(t, os.Remove(blocker))
	db, err := b.Conn(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, db)
	assert.Equal(t, int64(1), b.migrationRuns.Load(), "the failed attempt never reached migration")
}

func TestBackend_InvalidConfig(t *testing.T) {
	b := NewBackend(types.Config{DataDir: t.TempDir()})
	_, err := b.Conn(context.Background())
	assert.ErrorIs(t, err, types.ErrInitialization)
	assert.ErrorIs(t, err, types.ErrBackendEmpty)
}

func TestBackend_ConnHonorsCallerCancellation(t *testing.T) {
	b := newTestBackend(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.Conn(ctx)
	if err != nil {
		assert.ErrorIs(t, err, context.Canceled)
	}

	// The abandoned attempt still completes for later callers.
	db, err := b.Conn(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, db)
}

func TestBackend_StampIsStrictlyIncreasing(t *testing.T) {
	b := NewBackend(testConfig(t), WithClock(fixedClock))

	prev := b.stamp()
	for range 100 {
		next := b.stamp()
		require.True(t, next.After(prev), "stamp %s not after %s", next, prev)
		prev = next
	}
	assert.Equal(t, fixedNow.Add(100*time.Microsecond), prev)
}

func TestBackend_StampsSurviveClockStepBack(t *testing.T) {
	config := testConfig(t)
	ctx := context.Background()

	first := NewStore(NewBackend(config, WithClock(fixedClock)))
	p, err := first.Properties.Create(ctx, &types.Property{Name: "Lake House"})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	// A later process whose clock runs an hour behind.
	behind := func() time.Time { return fixedNow.Add(-time.Hour) }
	second := NewStore(NewBackend(config, WithClock(behind)))
	t.Cleanup(func() { _ = second.Close() })

	updated, err := second.Properties.Update(ctx, p.ID, types.PropertyPatch{Name: types.Ptr("Lake Cabin")})
	require.NoError(t, err)
	assert.True(t, updated.UpdatedAt.After(p.UpdatedAt), "updated_at %s not after %s", updated.UpdatedAt, p.UpdatedAt)

	flat, err := second.Properties.Create(ctx, &types.Property{Name: "City Flat"})
	require.NoError(t, err)
	assert.True(t, flat.CreatedAt.After(updated.UpdatedAt))
}

func TestBackend_Today(t *testing.T) {
	b := NewBackend(testConfig(t), WithClock(fixedClock))
	assert.Equal(t, day(2024, time.March, 15), b.today())
}

func TestBackend_SchemaVersion(t *testing.T) {
	b := newTestBackend(t)
	v, err := b.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, CurrentSchemaVersion(), v)
}
