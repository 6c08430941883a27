package sqlite

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/homestead/pkg/types"
)

var appSettings = entityTable[types.AppSettings]{
	name: types.TableAppSettings,
	columns: []string{
		"id", "currency", "date_format", "theme", "language", "notifications_enabled",
		"biometric_enabled", "created_at", "updated_at",
	},
	scan: hydrateAppSettings,
}

func hydrateAppSettings(s RowScanner) (types.AppSettings, error) {
	var a types.AppSettings
	err := s.Scan(&a.ID, &a.Currency, &a.DateFormat, &a.Theme, &a.Language,
		boolCol(&a.NotificationsEnabled), boolCol(&a.BiometricEnabled),
		tsCol(&a.CreatedAt), tsCol(&a.UpdatedAt))
	if err != nil {
		return types.AppSettings{}, fmt.Errorf("hydrating settings: %w", err)
	}
	return a, nil
}

// SettingsRepo stores the single AppSettings row.
type SettingsRepo struct{ repo }

// ensure inserts the defaults row when it is missing. Column defaults in the
// catalog supply the values.
func (r *SettingsRepo) ensure(ctx context.Context, q Querier) error {
	now := fmtTime(r.backend.stamp())
	_, err := Exec(ctx, q,
		"INSERT OR IGNORE INTO app_settings (id, created_at, updated_at) VALUES (?, ?, ?)",
		types.SettingsID, now, now)
	if err != nil {
		return fmt.Errorf("creating default settings: %w", err)
	}
	return nil
}

// Get returns the settings, creating the defaults row on first read.
func (r *SettingsRepo) Get(ctx context.Context) (*types.AppSettings, error) {
	var out *types.AppSettings
	err := r.exec.atomically(ctx, func(ctx context.Context, q Querier) error {
		if err := r.ensure(ctx, q); err != nil {
			return err
		}
		s, err := appSettings.get(ctx, q, types.SettingsID)
		out = s
		return err
	})
	return out, err
}

func (r *SettingsRepo) Update(ctx context.Context, patch types.AppSettingsPatch) (*types.AppSettings, error) {
	var out *types.AppSettings
	err := r.exec.atomically(ctx, func(ctx context.Context, q Querier) error {
		if err := r.ensure(ctx, q); err != nil {
			return err
		}
		var p patchSet
		p.required("currency", patch.Currency)
		p.required("date_format", patch.DateFormat)
		p.required("theme", patch.Theme)
		p.required("language", patch.Language)
		p.flag("notifications_enabled", patch.NotificationsEnabled)
		p.flag("biometric_enabled", patch.BiometricEnabled)
		s, err := appSettings.update(ctx, q, types.SettingsID, &p, r.backend.stamp())
		out = s
		return err
	})
	return out, err
}

// Replace overwrites every setting with s. Restores use it.
func (r *SettingsRepo) Replace(ctx context.Context, s *types.AppSettings) (*types.AppSettings, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: settings are required", types.ErrInvalidData)
	}
	return r.Update(ctx, types.AppSettingsPatch{
		Currency:             &s.Currency,
		DateFormat:           &s.DateFormat,
		Theme:                &s.Theme,
		Language:             &s.Language,
		NotificationsEnabled: &s.NotificationsEnabled,
		BiometricEnabled:     &s.BiometricEnabled,
	})
}
