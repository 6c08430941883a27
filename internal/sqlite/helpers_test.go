package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/homestead/pkg/types"
)

// fixedNow is the wall clock used by tests that depend on today's date.
var fixedNow = time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func testConfig(t *testing.T) types.Config {
	t.Helper()
	return types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}
}

func newTestBackend(t *testing.T, opts ...Option) *Backend {
	t.Helper()
	b := NewBackend(testConfig(t), opts...)
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	return NewStore(newTestBackend(t, opts...))
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func nullMoney(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(money(s))
}

// mustProperty creates a property named name.
func mustProperty(t *testing.T, s *Store, name string) *types.Property {
	t.Helper()
	p, err := s.Properties.Create(context.Background(), &types.Property{Name: name})
	require.NoError(t, err)
	return p
}

func mustRoom(t *testing.T, s *Store, propertyID, name string) *types.Room {
	t.Helper()
	r, err := s.Rooms.Create(context.Background(), &types.Room{PropertyID: propertyID, Name: name})
	require.NoError(t, err)
	return r
}

func mustAsset(t *testing.T, s *Store, a types.Asset) *types.Asset {
	t.Helper()
	out, err := s.Assets.Create(context.Background(), &a)
	require.NoError(t, err)
	return out
}

func mustWorker(t *testing.T, s *Store, name string) *types.Worker {
	t.Helper()
	w, err := s.Workers.Create(context.Background(), &types.Worker{Name: name})
	require.NoError(t, err)
	return w
}

func mustExpense(t *testing.T, s *Store, e types.Expense) *types.Expense {
	t.Helper()
	out, err := s.Expenses.Create(context.Background(), &e)
	require.NoError(t, err)
	return out
}

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, money(want).Equal(got), "want %s, got %s", want, got)
}
