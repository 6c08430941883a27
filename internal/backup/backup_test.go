package backup

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/homestead/internal/sqlite"
	"github.com/mesh-intelligence/homestead/pkg/types"
)

var snapshotTime = time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	b := sqlite.NewBackend(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()})
	t.Cleanup(func() { _ = b.Close() })
	return sqlite.NewStore(b)
}

func amount(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func date(y int, m time.Month, d int) *time.Time {
	v := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &v
}

// populate writes at least one row into every table.
func populate(t *testing.T, s *sqlite.Store) {
	t.Helper()
	ctx := context.Background()
	must := func(_ any, err error) {
		t.Helper()
		require.NoError(t, err)
	}

	_, err := s.SeedDefaults(ctx)
	require.NoError(t, err)
	must(s.Settings.Update(ctx, types.AppSettingsPatch{Currency: types.Ptr("EUR")}))

	p, err := s.Properties.Create(ctx, &types.Property{Name: "Lake House", PurchasePrice: decimal.NewNullDecimal(amount("350000"))})
	require.NoError(t, err)
	kitchen, err := s.Rooms.Create(ctx, &types.Room{PropertyID: p.ID, Name: "Kitchen"})
	require.NoError(t, err)
	fridge, err := s.Assets.Create(ctx, &types.Asset{PropertyID: p.ID, RoomID: kitchen.ID, Name: "Fridge", WarrantyExpiration: date(2026, time.May, 1)})
	require.NoError(t, err)
	sam, err := s.Workers.Create(ctx, &types.Worker{Name: "Sam", Specialty: []string{"plumbing"}})
	require.NoError(t, err)
	must(s.WorkerNotes.Create(ctx, &types.WorkerNote{WorkerID: sam.ID, Content: "Reliable"}))

	power, err := s.RecurringTemplates.Create(ctx, &types.RecurringTemplate{
		PropertyID: p.ID, Name: "Power", Frequency: types.BillMonthly,
		EstimatedAmount: amount("90"), NextDueDate: date(2024, time.April, 3), IsActive: true,
	})
	require.NoError(t, err)
	bill, err := s.Expenses.Create(ctx, &types.Expense{
		PropertyID: p.ID, RecurringTemplateID: power.ID, Category: "Electricity",
		Amount: amount("91.20"), Date: *date(2024, time.March, 3), Tags: []string{"utility"},
	})
	require.NoError(t, err)
	repair, err := s.Expenses.Create(ctx, &types.Expense{
		PropertyID: p.ID, RoomID: kitchen.ID, WorkerID: sam.ID, Category: "Appliances",
		Amount: amount("180"), Date: *date(2024, time.February, 20),
	})
	require.NoError(t, err)
	must(s.ExpenseAssets.ReplaceForExpense(ctx, repair.ID, []types.ExpenseAsset{{AssetID: fridge.ID, Amount: amount("180")}}))
	must(s.RecurringPayments.Create(ctx, &types.RecurringPayment{
		TemplateID: power.ID, ExpenseID: bill.ID, Amount: amount("91.20"), PaidDate: *date(2024, time.March, 3),
	}))

	task, err := s.MaintenanceTasks.Create(ctx, &types.MaintenanceTask{
		PropertyID: p.ID, AssetID: fridge.ID, Title: "Clean coils",
		Frequency: types.MaintenanceYearly, NextDueDate: date(2024, time.March, 1),
	})
	require.NoError(t, err)
	must(s.MaintenanceTasks.MarkComplete(ctx, task.ID, types.CompletionDetails{WorkerID: sam.ID, Notes: "done"}))

	ren, err := s.Renovations.Create(ctx, &types.Renovation{PropertyID: p.ID, Title: "Kitchen remodel", CostEstimate: amount("5000")})
	require.NoError(t, err)
	must(s.Renovations.AddWorker(ctx, &types.RenovationWorker{RenovationID: ren.ID, WorkerID: sam.ID, Role: "lead"}))
	must(s.Renovations.AddAsset(ctx, &types.RenovationAsset{RenovationID: ren.ID, AssetID: fridge.ID}))
	must(s.Renovations.AddCost(ctx, &types.RenovationCost{RenovationID: ren.ID, Description: "permit", Amount: amount("75.50")}))

	must(s.Documents.Create(ctx, &types.Document{PropertyID: p.ID, AssetID: fridge.ID, Title: "Fridge manual", ExpirationDate: date(2026, time.May, 1)}))
	must(s.Notes.Create(ctx, &types.Note{PropertyID: p.ID, Title: "Gate", Content: "4821", IsPinned: true}))
	must(s.PaintCodes.Create(ctx, &types.PaintCode{PropertyID: p.ID, RoomID: kitchen.ID, Location: "Walls", ColorCode: "PPU18-06"}))
	must(s.EmergencyShutoffs.Create(ctx, &types.EmergencyShutoff{PropertyID: p.ID, ShutoffType: types.ShutoffWater, Location: "Basement"}))
	must(s.Measurements.Create(ctx, &types.Measurement{PropertyID: p.ID, RoomID: kitchen.ID, Name: "Width", Value: amount("3.25"), Unit: "m"}))
	must(s.StorageBoxes.Create(ctx, &types.StorageBox{PropertyID: p.ID, Name: "Box 1", Contents: "lights"}))
	must(s.WiFi.Create(ctx, &types.WiFiInfo{PropertyID: p.ID, NetworkName: "Lake", Password: "hunter2"}))
}

// comparable reads every table file in dir with the timestamps removed,
// since a restore assigns new ones.
func comparable(t *testing.T, dir string) map[string][]map[string]any {
	t.Helper()
	out := make(map[string][]map[string]any)
	for _, table := range types.StandardTableNames {
		records, err := readJSONL(tableFile(dir, table))
		require.NoError(t, err)
		for _, raw := range records {
			var row map[string]any
			require.NoError(t, json.Unmarshal(raw, &row))
			delete(row, "created_at")
			delete(row, "updated_at")
			out[table] = append(out[table], row)
		}
	}
	return out
}

func TestExportImport_RoundTrip(t *testing.T) {
	ctx := context.Background()
	src := newStore(t)
	populate(t, src)

	first := t.TempDir()
	m, err := Export(ctx, src, first, WithClock(func() time.Time { return snapshotTime }))
	require.NoError(t, err)
	assert.Equal(t, sqlite.CurrentSchemaVersion(), m.SchemaVersion)
	assert.Equal(t, snapshotTime, m.CreatedAt)
	for _, table := range types.StandardTableNames {
		assert.Positive(t, m.Tables[table], "table %s is empty", table)
		assert.FileExists(t, tableFile(first, table))
	}

	dst := newStore(t)
	restored, err := Import(ctx, dst, first)
	require.NoError(t, err)
	assert.Equal(t, m.Tables, restored.Tables)

	second := t.TempDir()
	_, err = Export(ctx, dst, second)
	require.NoError(t, err)
	assert.Equal(t, comparable(t, first), comparable(t, second))

	settings, err := dst.Settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "EUR", settings.Currency)
}

func TestImport_RefusesNonEmptyStore(t *testing.T) {
	ctx := context.Background()
	src := newStore(t)
	populate(t, src)
	dir := t.TempDir()
	_, err := Export(ctx, src, dir)
	require.NoError(t, err)

	_, err = Import(ctx, src, dir)
	assert.ErrorIs(t, err, ErrNotEmpty)
}

func TestImport_FailureRollsBack(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	lines := `{"id":"p1","name":"Lake House"}` + "\n"
	require.NoError(t, os.WriteFile(tableFile(dir, types.TableProperties), []byte(lines), 0o644))
	orphan := `{"id":"r1","property_id":"nowhere","name":"Kitchen"}` + "\n"
	require.NoError(t, os.WriteFile(tableFile(dir, types.TableRooms), []byte(orphan), 0o644))

	dst := newStore(t)
	_, err := Import(ctx, dst, dir)
	assert.ErrorIs(t, err, types.ErrIntegrity)

	all, err := dst.Properties.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all, "the property restored before the failure is rolled back")
}

func TestImport_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		wantErr error
	}{
		{
			name:    "malformed line",
			files:   map[string]string{types.TableProperties + ".jsonl": "{\"id\":\"p1\",\n"},
			wantErr: ErrMalformed,
		},
		{
			name:    "newer schema",
			files:   map[string]string{ManifestFile: `{"schema_version": 999, "tables": {}}`},
			wantErr: types.ErrSchemaTooNew,
		},
		{
			name:    "invalid record",
			files:   map[string]string{types.TableProperties + ".jsonl": `{"id":"p1"}` + "\n"},
			wantErr: types.ErrInvalidData,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range tt.files {
				require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
			}
			_, err := Import(context.Background(), newStore(t), dir)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestImport_MissingDir(t *testing.T) {
	_, err := Import(context.Background(), newStore(t), filepath.Join(t.TempDir(), "absent"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteJSONL_ReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rows.jsonl")
	require.NoError(t, writeJSONL(path, []json.RawMessage{json.RawMessage(`{"a":1}`), json.RawMessage(`{"a":2}`)}))
	require.NoError(t, writeJSONL(path, []json.RawMessage{json.RawMessage(`{"a":3}`)}))

	records, err := readJSONL(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.JSONEq(t, `{"a":3}`, string(records[0]))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}
