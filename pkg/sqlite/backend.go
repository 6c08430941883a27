// Package sqlite is the public entry point to the homestead SQLite store.
// It re-exports the store and its options while the implementation stays
// internal.
package sqlite

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/homestead/internal/sqlite"
	"github.com/mesh-intelligence/homestead/pkg/types"
)

// Store groups every repository over one database file.
type Store = sqlite.Store

// Option configures the backend behind a Store.
type Option = sqlite.Option

// DBFileName is the name of the database file inside the data directory.
const DBFileName = sqlite.DBFileName

// WithLogger routes backend diagnostics to logger.
func WithLogger(logger *zap.Logger) Option { return sqlite.WithLogger(logger) }

// WithClock replaces the wall clock used for timestamps and "today".
func WithClock(now func() time.Time) Option { return sqlite.WithClock(now) }

// Open validates config and returns a Store over config.DataDir. The
// database is opened and migrated lazily on first use; call Close when done.
//
// Example:
//
//	store, err := sqlite.Open(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: "/var/lib/homestead",
//	})
//	if err != nil { ... }
//	defer store.Close()
func Open(config types.Config, opts ...Option) (*Store, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return sqlite.NewStore(sqlite.NewBackend(config, opts...)), nil
}

// SchemaVersion reports the schema version this build migrates stores to.
func SchemaVersion() int { return sqlite.CurrentSchemaVersion() }
