// Package sqlite implements the embedded SQLite data layer for homestead:
// the schema catalog, the migration engine, the connection lifecycle, the
// query executor, and one repository per entity.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/homestead/pkg/types"
)

// DBFileName is the store file created inside the configured data directory.
const DBFileName = "homestead.db"

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger used for lifecycle and migration events.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Backend) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithClock replaces the wall clock used for timestamps and date windows.
func WithClock(now func() time.Time) Option {
	return func(b *Backend) {
		if now != nil {
			b.now = now
		}
	}
}

// WithMigrations replaces the migration steps run at initialization.
func WithMigrations(steps []Migration) Option {
	return func(b *Backend) {
		b.migrations = steps
	}
}

// initAttempt is one in-flight initialization. Every caller that arrives while
// it runs waits on done and reads the same db and err.
type initAttempt struct {
	done   chan struct{}
	db     *sql.DB
	err    error
	report MigrationReport
}

// Backend owns the single live handle to the SQLite store. It is safe for
// concurrent use; the handle is opened and migrated at most once until Close.
type Backend struct {
	config     types.Config
	logger     *zap.Logger
	now        func() time.Time
	migrations []Migration

	mu      sync.Mutex
	db      *sql.DB
	pending *initAttempt
	report  MigrationReport

	clockMu   sync.Mutex
	lastStamp time.Time

	migrationRuns atomic.Int64
}

// NewBackend creates a backend for the given configuration. Nothing is opened
// until the first call to Conn.
func NewBackend(config types.Config, opts ...Option) *Backend {
	b := &Backend{
		config:     config,
		logger:     zap.NewNop(),
		now:        time.Now,
		migrations: DefaultMigrations(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Path returns the location of the store file.
func (b *Backend) Path() string {
	dataDir := b.config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	return filepath.Join(dataDir, DBFileName)
}

// Conn returns the live handle, initializing the store on first use.
// Concurrent callers during initialization share one attempt. A failed
// attempt is forgotten so the next call retries from scratch.
func (b *Backend) Conn(ctx context.Context) (*sql.DB, error) {
	b.mu.Lock()
	if b.db != nil {
		db := b.db
		b.mu.Unlock()
		return db, nil
	}
	attempt := b.pending
	if attempt == nil {
		attempt = &initAttempt{done: make(chan struct{})}
		b.pending = attempt
		go b.initialize(context.WithoutCancel(ctx), attempt)
	}
	b.mu.Unlock()

	select {
	case <-attempt.done:
		return attempt.db, attempt.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (b *Backend) initialize(ctx context.Context, attempt *initAttempt) {
	db, report, err := b.open(ctx)

	b.mu.Lock()
	switch {
	case b.pending != attempt:
		if db != nil {
			_ = db.Close()
		}
		attempt.err = types.ErrBackendClosed
	case err != nil:
		b.pending = nil
		attempt.err = fmt.Errorf("%w: %w", types.ErrInitialization, err)
		b.logger.Error("store initialization failed", zap.String("path", b.Path()), zap.Error(err))
	default:
		b.pending = nil
		b.db = db
		b.report = report
		attempt.db = db
		attempt.report = report
	}
	b.mu.Unlock()
	close(attempt.done)
}

// open creates the data directory, opens the store with foreign keys
// enforced, and brings the schema up to date. The returned handle is closed
// on any failure.
func (b *Backend) open(ctx context.Context) (*sql.DB, MigrationReport, error) {
	if err := b.config.Validate(); err != nil {
		return nil, MigrationReport{}, err
	}
	path := b.Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, MigrationReport{}, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, MigrationReport{}, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection is the single writer; it also keeps the per-connection
	// foreign_keys pragma in force for every statement.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, MigrationReport{}, fmt.Errorf("ping sqlite: %w", err)
	}
	var fk int
	if err := db.QueryRowContext(ctx, `PRAGMA foreign_keys`).Scan(&fk); err != nil {
		_ = db.Close()
		return nil, MigrationReport{}, fmt.Errorf("read foreign_keys pragma: %w", err)
	}
	if fk != 1 {
		_ = db.Close()
		return nil, MigrationReport{}, errors.New("foreign key enforcement is off")
	}

	b.migrationRuns.Add(1)
	report, err := RunMigrations(ctx, db, b.migrations, b.logger)
	if err != nil {
		_ = db.Close()
		return nil, MigrationReport{}, err
	}
	latest, err := latestStamp(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, MigrationReport{}, err
	}
	b.raiseStampFloor(latest)
	b.logger.Info("store opened",
		zap.String("path", path),
		zap.Int("from_version", report.From),
		zap.Int("to_version", report.To),
		zap.Ints("applied", report.Applied),
	)
	return db, report, nil
}

func dsn(path string) string {
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "busy_timeout(5000)")
	q.Add("_pragma", "journal_mode(WAL)")
	return "file:" + path + "?" + q.Encode()
}

// Close closes the live handle and forgets any in-flight attempt, so the
// next Conn reinitializes from scratch. Close is idempotent.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.pending = nil
	b.report = MigrationReport{}
	if b.db == nil {
		return nil
	}
	err := b.db.Close()
	b.db = nil
	b.logger.Info("store closed", zap.String("path", b.Path()))
	return err
}

// SchemaVersion reports the version stamped on the store.
func (b *Backend) SchemaVersion(ctx context.Context) (int, error) {
	db, err := b.Conn(ctx)
	if err != nil {
		return 0, err
	}
	return userVersion(ctx, db)
}

// LastMigration returns the report of the initialization that produced the
// current handle. It is empty before the first successful Conn.
func (b *Backend) LastMigration() MigrationReport {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.report
}

// stamp returns the timestamp for a mutation. Successive stamps from one
// backend are strictly increasing even when the clock does not advance.
func (b *Backend) stamp() time.Time {
	b.clockMu.Lock()
	defer b.clockMu.Unlock()

	now := b.now().UTC().Truncate(time.Microsecond)
	if !now.After(b.lastStamp) {
		now = b.lastStamp.Add(time.Microsecond)
	}
	b.lastStamp = now
	return now
}

// raiseStampFloor makes every later stamp come after t, so timestamps keep
// increasing across processes even when the wall clock steps back.
func (b *Backend) raiseStampFloor(t time.Time) {
	b.clockMu.Lock()
	defer b.clockMu.Unlock()
	if t.After(b.lastStamp) {
		b.lastStamp = t
	}
}

// latestStamp returns the newest updated_at in the store, or the zero time
// for an empty store.
func latestStamp(ctx context.Context, q Querier) (time.Time, error) {
	parts := make([]string, 0, len(catalogTables))
	for _, t := range catalogTables {
		parts = append(parts, `SELECT MAX(updated_at) AS ts FROM `+t.name)
	}
	var raw sql.NullString
	query := `SELECT MAX(ts) FROM (` + strings.Join(parts, ` UNION ALL `) + `)`
	if err := q.QueryRowContext(ctx, query).Scan(&raw); err != nil {
		return time.Time{}, fmt.Errorf("read latest timestamp: %w", err)
	}
	if !raw.Valid {
		return time.Time{}, nil
	}
	return parseTime(raw.String)
}

// today returns the current calendar date at midnight UTC.
func (b *Backend) today() time.Time {
	return dateOnly(b.now())
}

// generateUUID generates a new UUID v7 for entity IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

func ensureID(id string) string {
	if id != "" {
		return id
	}
	return generateUUID()
}
