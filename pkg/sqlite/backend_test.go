package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/homestead/pkg/sqlite"
	"github.com/mesh-intelligence/homestead/pkg/types"
)

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	at := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)
	store, err := sqlite.Open(types.Config{Backend: types.BackendSQLite, DataDir: dir},
		sqlite.WithClock(func() time.Time { return at }))
	require.NoError(t, err)
	defer func() { require.NoError(t, store.Close()) }()

	ctx := context.Background()
	p, err := store.Properties.Create(ctx, &types.Property{Name: "Lake House"})
	require.NoError(t, err)
	assert.Equal(t, at, p.CreatedAt)

	version, err := store.Backend().SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, sqlite.SchemaVersion(), version)
	assert.FileExists(t, filepath.Join(dir, sqlite.DBFileName))
}

func TestOpen_RejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		config types.Config
		want   error
	}{
		{"empty backend", types.Config{DataDir: t.TempDir()}, types.ErrBackendEmpty},
		{"unknown backend", types.Config{Backend: "dolt", DataDir: t.TempDir()}, types.ErrBackendUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sqlite.Open(tt.config)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
