// Package backup writes a store snapshot to a directory of JSONL files, one
// per table, and restores such a snapshot into an empty store.
//
// Restores go through the repository Create contracts inside a single
// transaction, in foreign-key dependency order, so a snapshot is either
// restored whole or not at all. Record ids are preserved; created_at and
// updated_at are assigned afresh.
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/homestead/internal/sqlite"
	"github.com/mesh-intelligence/homestead/pkg/types"
)

// ManifestFile names the snapshot summary written beside the table files.
const ManifestFile = "manifest.json"

var (
	// ErrMalformed reports a backup line or manifest that is not valid JSON.
	ErrMalformed = errors.New("malformed backup")
	// ErrNotEmpty reports an import into a store that already holds data.
	ErrNotEmpty = errors.New("store is not empty")
)

// Manifest summarizes a snapshot.
type Manifest struct {
	SchemaVersion int            `json:"schema_version"`
	CreatedAt     time.Time      `json:"created_at"`
	Tables        map[string]int `json:"tables"`
}

// Option configures Export and Import.
type Option func(*options)

type options struct {
	logger *zap.Logger
	now    func() time.Time
}

// WithLogger sets the logger for per-table progress.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithClock sets the time source stamped into the manifest.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func tableFile(dir, table string) string {
	return filepath.Join(dir, table+".jsonl")
}

// Export writes every table of s into dir, creating dir if needed. All
// tables are read in one transaction.
func Export(ctx context.Context, s *sqlite.Store, dir string, opts ...Option) (*Manifest, error) {
	o := buildOptions(opts)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating backup dir: %w", err)
	}

	dumps := make(map[string][]json.RawMessage, len(codecs))
	err := s.WithTx(ctx, func(ctx context.Context) error {
		for _, c := range orderedCodecs() {
			records, err := c.dump(ctx, s)
			if err != nil {
				return fmt.Errorf("reading %s: %w", c.table, err)
			}
			dumps[c.table] = records
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	version, err := s.Backend().SchemaVersion(ctx)
	if err != nil {
		return nil, err
	}
	m := &Manifest{
		SchemaVersion: version,
		CreatedAt:     o.now().UTC(),
		Tables:        make(map[string]int, len(dumps)),
	}
	for _, c := range orderedCodecs() {
		records := dumps[c.table]
		if err := writeJSONL(tableFile(dir, c.table), records); err != nil {
			return nil, fmt.Errorf("writing %s: %w", c.table, err)
		}
		m.Tables[c.table] = len(records)
		o.logger.Debug("table exported", zap.String("table", c.table), zap.Int("records", len(records)))
	}
	if err := writeManifest(dir, m); err != nil {
		return nil, err
	}
	o.logger.Info("backup exported", zap.String("dir", dir), zap.Int("schema_version", version))
	return m, nil
}

// Import restores the snapshot in dir into s. The store must hold no
// entity rows; settings are overwritten. Table files missing from dir
// restore as empty. Any failure rolls the whole import back.
func Import(ctx context.Context, s *sqlite.Store, dir string, opts ...Option) (*Manifest, error) {
	o := buildOptions(opts)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("opening backup: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("opening backup: %s is not a directory", dir)
	}
	m, err := readManifest(dir)
	if err != nil {
		return nil, err
	}
	if m != nil && m.SchemaVersion > sqlite.CurrentSchemaVersion() {
		return nil, fmt.Errorf("%w: backup schema %d, supported %d",
			types.ErrSchemaTooNew, m.SchemaVersion, sqlite.CurrentSchemaVersion())
	}

	loaded := make(map[string][]json.RawMessage, len(codecs))
	for _, c := range orderedCodecs() {
		records, err := readJSONL(tableFile(dir, c.table))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", c.table, err)
		}
		loaded[c.table] = records
	}

	restored := &Manifest{Tables: make(map[string]int, len(loaded))}
	if m != nil {
		restored.SchemaVersion = m.SchemaVersion
		restored.CreatedAt = m.CreatedAt
	}
	err = s.WithTx(ctx, func(ctx context.Context) error {
		if err := requireEmpty(ctx, s); err != nil {
			return err
		}
		for _, c := range orderedCodecs() {
			records := loaded[c.table]
			if err := c.load(ctx, s, records); err != nil {
				return fmt.Errorf("restoring %s: %w", c.table, err)
			}
			restored.Tables[c.table] = len(records)
			o.logger.Debug("table imported", zap.String("table", c.table), zap.Int("records", len(records)))
		}
		return nil
	})
	if err != nil {
		o.logger.Error("backup import failed", zap.String("dir", dir), zap.Error(err))
		return nil, err
	}
	o.logger.Info("backup imported", zap.String("dir", dir))
	return restored, nil
}

func requireEmpty(ctx context.Context, s *sqlite.Store) error {
	for _, c := range orderedCodecs() {
		if c.table == types.TableAppSettings {
			continue
		}
		records, err := c.dump(ctx, s)
		if err != nil {
			return fmt.Errorf("checking %s: %w", c.table, err)
		}
		if len(records) > 0 {
			return fmt.Errorf("%w: %s has %d rows", ErrNotEmpty, c.table, len(records))
		}
	}
	return nil
}

func writeManifest(dir string, m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestFile), append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// readManifest returns nil when dir has no manifest.
func readManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: manifest: %v", ErrMalformed, err)
	}
	return &m, nil
}
