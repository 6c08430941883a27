package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/homestead/pkg/types"
)

func TestCustomCategoryRepo_SeedDefaults(t *testing.T) {
	tests := []struct {
		name  string
		check func(t *testing.T, s *Store)
	}{
		{
			name: "seeds every taxonomy on an empty store",
			check: func(t *testing.T, s *Store) {
				n, err := s.CustomCategories.SeedDefaults(context.Background())
				require.NoError(t, err)

				want := 0
				for _, typ := range seedTypes {
					want += len(builtInCategories[typ])
					got, err := s.CustomCategories.ListByType(context.Background(), typ)
					require.NoError(t, err)
					require.Len(t, got, len(builtInCategories[typ]))
					for i, c := range got {
						assert.Equal(t, builtInCategories[typ][i].name, c.Name)
						assert.Equal(t, i, c.SortOrder)
						assert.True(t, c.IsDefault)
					}
				}
				assert.Equal(t, want, n)
			},
		},
		{
			name: "second run inserts nothing",
			check: func(t *testing.T, s *Store) {
				_, err := s.CustomCategories.SeedDefaults(context.Background())
				require.NoError(t, err)
				before, err := s.CustomCategories.List(context.Background())
				require.NoError(t, err)

				n, err := s.CustomCategories.SeedDefaults(context.Background())
				require.NoError(t, err)
				assert.Zero(t, n)
				after, err := s.CustomCategories.List(context.Background())
				require.NoError(t, err)
				assert.Equal(t, before, after)
			},
		},
		{
			name: "a taxonomy with user rows is left alone",
			check: func(t *testing.T, s *Store) {
				_, err := s.CustomCategories.Create(context.Background(), &types.CustomCategory{
					Type: types.CategoryBill,
					Name: "Boat slip",
				})
				require.NoError(t, err)

				n, err := s.CustomCategories.SeedDefaults(context.Background())
				require.NoError(t, err)
				assert.Equal(t, len(builtInCategories[types.CategoryExpenseType])+
					len(builtInCategories[types.CategoryExpenseCategory]), n)

				bills, err := s.CustomCategories.ListByType(context.Background(), types.CategoryBill)
				require.NoError(t, err)
				require.Len(t, bills, 1)
				assert.Equal(t, "Boat slip", bills[0].Name)
				assert.False(t, bills[0].IsDefault)
			},
		},
		{
			name: "store seeding also creates settings",
			check: func(t *testing.T, s *Store) {
				n, err := s.SeedDefaults(context.Background())
				require.NoError(t, err)
				assert.Positive(t, n)

				settings, err := s.Settings.Get(context.Background())
				require.NoError(t, err)
				assert.Equal(t, types.DefaultCurrency, settings.Currency)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, newTestStore(t))
		})
	}
}

func TestCustomCategoryRepo_Reorder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var ids []string
	for _, name := range []string{"Alpha", "Bravo", "Charlie"} {
		c, err := s.CustomCategories.Create(ctx, &types.CustomCategory{Type: types.CategoryExpenseType, Name: name})
		require.NoError(t, err)
		ids = append(ids, c.ID)
	}
	other, err := s.CustomCategories.Create(ctx, &types.CustomCategory{Type: types.CategoryBill, Name: "Delta"})
	require.NoError(t, err)

	require.NoError(t, s.CustomCategories.Reorder(ctx, types.CategoryExpenseType, []string{ids[2], ids[0], ids[1]}))
	got, err := s.CustomCategories.ListByType(ctx, types.CategoryExpenseType)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"Charlie", "Alpha", "Bravo"}, []string{got[0].Name, got[1].Name, got[2].Name})

	// An id from another taxonomy aborts the whole reorder.
	err = s.CustomCategories.Reorder(ctx, types.CategoryExpenseType, []string{ids[0], other.ID})
	assert.ErrorIs(t, err, types.ErrNotFound)
	got, err = s.CustomCategories.ListByType(ctx, types.CategoryExpenseType)
	require.NoError(t, err)
	assert.Equal(t, "Charlie", got[0].Name)
}

func TestCustomCategoryRepo_Validation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CustomCategories.Create(ctx, &types.CustomCategory{Type: "colors", Name: "Red"})
	assert.ErrorIs(t, err, types.ErrInvalidData)

	_, err = s.CustomCategories.Create(ctx, &types.CustomCategory{Type: types.CategoryBill, Name: "Water"})
	require.NoError(t, err)
	_, err = s.CustomCategories.Create(ctx, &types.CustomCategory{Type: types.CategoryBill, Name: "Water"})
	assert.Error(t, err, "names are unique within a taxonomy")
	_, err = s.CustomCategories.Create(ctx, &types.CustomCategory{Type: types.CategoryExpenseCategory, Name: "Water"})
	assert.NoError(t, err)
}

func TestSettingsRepo(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.Settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.SettingsID, first.ID)
	assert.Equal(t, types.DefaultCurrency, first.Currency)
	assert.Equal(t, types.DefaultDateFormat, first.DateFormat)
	assert.Equal(t, types.DefaultTheme, first.Theme)
	assert.Equal(t, types.DefaultLanguage, first.Language)
	assert.True(t, first.NotificationsEnabled)
	assert.False(t, first.BiometricEnabled)

	again, err := s.Settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, again, "the defaults row is created once")

	updated, err := s.Settings.Update(ctx, types.AppSettingsPatch{
		Currency:         types.Ptr("EUR"),
		BiometricEnabled: types.Ptr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, "EUR", updated.Currency)
	assert.True(t, updated.BiometricEnabled)
	assert.Equal(t, types.DefaultTheme, updated.Theme)

	_, err = s.Settings.Update(ctx, types.AppSettingsPatch{Currency: types.Ptr("")})
	assert.ErrorIs(t, err, types.ErrInvalidData)
}
