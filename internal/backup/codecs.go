package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/mesh-intelligence/homestead/internal/sqlite"
	"github.com/mesh-intelligence/homestead/pkg/types"
)

// codec moves one table between the store and its JSONL records.
type codec struct {
	table string
	dump  func(ctx context.Context, s *sqlite.Store) ([]json.RawMessage, error)
	load  func(ctx context.Context, s *sqlite.Store, records []json.RawMessage) error
}

// entity builds the codec for a table read by a List accessor and restored
// one record at a time through a Create accessor.
func entity[R, T any](
	table string,
	repo func(*sqlite.Store) R,
	list func(R, context.Context) ([]T, error),
	create func(R, context.Context, *T) (*T, error),
) codec {
	return codec{
		table: table,
		dump: func(ctx context.Context, s *sqlite.Store) ([]json.RawMessage, error) {
			rows, err := list(repo(s), ctx)
			if err != nil {
				return nil, err
			}
			return encodeAll(rows)
		},
		load: func(ctx context.Context, s *sqlite.Store, records []json.RawMessage) error {
			ordered, err := byCreation(records)
			if err != nil {
				return err
			}
			r := repo(s)
			for _, rec := range ordered {
				var v T
				if err := json.Unmarshal(rec.raw, &v); err != nil {
					return fmt.Errorf("%w: record %d: %v", ErrMalformed, rec.line, err)
				}
				if _, err := create(r, ctx, &v); err != nil {
					return fmt.Errorf("record %d: %w", rec.line, err)
				}
			}
			return nil
		},
	}
}

type record struct {
	line      int
	createdAt time.Time
	raw       json.RawMessage
}

// byCreation orders records oldest first. Restored rows get new
// timestamps in insertion order, so lists sorted by creation keep their
// order across a round trip.
func byCreation(records []json.RawMessage) ([]record, error) {
	out := make([]record, len(records))
	for i, raw := range records {
		var stamp struct {
			CreatedAt time.Time `json:"created_at"`
		}
		if err := json.Unmarshal(raw, &stamp); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrMalformed, i+1, err)
		}
		out[i] = record{line: i + 1, createdAt: stamp.CreatedAt, raw: raw}
	}
	slices.SortStableFunc(out, func(a, b record) int {
		return a.createdAt.Compare(b.createdAt)
	})
	return out, nil
}

func encodeAll[T any](rows []T) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(rows))
	for _, row := range rows {
		raw, err := json.Marshal(row)
		if err != nil {
			return nil, fmt.Errorf("encoding record: %w", err)
		}
		out = append(out, raw)
	}
	return out, nil
}

// settingsCodec holds the single settings row.
var settingsCodec = codec{
	table: types.TableAppSettings,
	dump: func(ctx context.Context, s *sqlite.Store) ([]json.RawMessage, error) {
		settings, err := s.Settings.Get(ctx)
		if err != nil {
			return nil, err
		}
		return encodeAll([]types.AppSettings{*settings})
	},
	load: func(ctx context.Context, s *sqlite.Store, records []json.RawMessage) error {
		switch len(records) {
		case 0:
			return nil
		case 1:
		default:
			return fmt.Errorf("%w: %d settings records", ErrMalformed, len(records))
		}
		var settings types.AppSettings
		if err := json.Unmarshal(records[0], &settings); err != nil {
			return fmt.Errorf("%w: settings: %v", ErrMalformed, err)
		}
		_, err := s.Settings.Replace(ctx, &settings)
		return err
	},
}

func properties(s *sqlite.Store) *sqlite.PropertyRepo               { return s.Properties }
func rooms(s *sqlite.Store) *sqlite.RoomRepo                        { return s.Rooms }
func assets(s *sqlite.Store) *sqlite.AssetRepo                      { return s.Assets }
func workers(s *sqlite.Store) *sqlite.WorkerRepo                    { return s.Workers }
func workerNotes(s *sqlite.Store) *sqlite.WorkerNoteRepo            { return s.WorkerNotes }
func expenses(s *sqlite.Store) *sqlite.ExpenseRepo                  { return s.Expenses }
func expenseAssets(s *sqlite.Store) *sqlite.ExpenseAssetRepo        { return s.ExpenseAssets }
func templates(s *sqlite.Store) *sqlite.RecurringTemplateRepo       { return s.RecurringTemplates }
func payments(s *sqlite.Store) *sqlite.RecurringPaymentRepo         { return s.RecurringPayments }
func tasks(s *sqlite.Store) *sqlite.MaintenanceTaskRepo             { return s.MaintenanceTasks }
func completions(s *sqlite.Store) *sqlite.MaintenanceCompletionRepo { return s.MaintenanceCompletions }
func renovations(s *sqlite.Store) *sqlite.RenovationRepo            { return s.Renovations }
func documents(s *sqlite.Store) *sqlite.DocumentRepo                { return s.Documents }
func notes(s *sqlite.Store) *sqlite.NoteRepo                        { return s.Notes }
func paintCodes(s *sqlite.Store) *sqlite.PaintCodeRepo              { return s.PaintCodes }
func shutoffs(s *sqlite.Store) *sqlite.EmergencyShutoffRepo         { return s.EmergencyShutoffs }
func measurements(s *sqlite.Store) *sqlite.MeasurementRepo          { return s.Measurements }
func storageBoxes(s *sqlite.Store) *sqlite.StorageBoxRepo           { return s.StorageBoxes }
func wifi(s *sqlite.Store) *sqlite.WiFiRepo                         { return s.WiFi }
func customCategories(s *sqlite.Store) *sqlite.CustomCategoryRepo   { return s.CustomCategories }

var codecs = map[string]codec{
	types.TableProperties: entity(types.TableProperties, properties,
		(*sqlite.PropertyRepo).List, (*sqlite.PropertyRepo).Create),
	types.TableRooms: entity(types.TableRooms, rooms,
		(*sqlite.RoomRepo).List, (*sqlite.RoomRepo).Create),
	types.TableAssets: entity(types.TableAssets, assets,
		(*sqlite.AssetRepo).List, (*sqlite.AssetRepo).Create),
	types.TableWorkers: entity(types.TableWorkers, workers,
		(*sqlite.WorkerRepo).List, (*sqlite.WorkerRepo).Create),
	types.TableWorkerNotes: entity(types.TableWorkerNotes, workerNotes,
		(*sqlite.WorkerNoteRepo).List, (*sqlite.WorkerNoteRepo).Create),
	types.TableExpenses: entity(types.TableExpenses, expenses,
		(*sqlite.ExpenseRepo).List, (*sqlite.ExpenseRepo).Create),
	types.TableExpenseAssets: entity(types.TableExpenseAssets, expenseAssets,
		(*sqlite.ExpenseAssetRepo).List, (*sqlite.ExpenseAssetRepo).Create),
	types.TableRecurringTemplates: entity(types.TableRecurringTemplates, templates,
		(*sqlite.RecurringTemplateRepo).List, (*sqlite.RecurringTemplateRepo).Create),
	types.TableRecurringPayments: entity(types.TableRecurringPayments, payments,
		(*sqlite.RecurringPaymentRepo).List, (*sqlite.RecurringPaymentRepo).Create),
	types.TableMaintenanceTasks: entity(types.TableMaintenanceTasks, tasks,
		(*sqlite.MaintenanceTaskRepo).List, (*sqlite.MaintenanceTaskRepo).Create),
	types.TableMaintenanceCompletions: entity(types.TableMaintenanceCompletions, completions,
		(*sqlite.MaintenanceCompletionRepo).List, (*sqlite.MaintenanceCompletionRepo).Create),
	types.TableRenovations: entity(types.TableRenovations, renovations,
		(*sqlite.RenovationRepo).List, (*sqlite.RenovationRepo).Create),
	types.TableRenovationWorkers: entity(types.TableRenovationWorkers, renovations,
		(*sqlite.RenovationRepo).ListWorkerLinks, (*sqlite.RenovationRepo).AddWorker),
	types.TableRenovationAssets: entity(types.TableRenovationAssets, renovations,
		(*sqlite.RenovationRepo).ListAssetLinks, (*sqlite.RenovationRepo).AddAsset),
	types.TableRenovationCosts: entity(types.TableRenovationCosts, renovations,
		(*sqlite.RenovationRepo).ListAllCosts, (*sqlite.RenovationRepo).AddCost),
	types.TableDocuments: entity(types.TableDocuments, documents,
		(*sqlite.DocumentRepo).List, (*sqlite.DocumentRepo).Create),
	types.TableNotes: entity(types.TableNotes, notes,
		(*sqlite.NoteRepo).List, (*sqlite.NoteRepo).Create),
	types.TablePaintCodes: entity(types.TablePaintCodes, paintCodes,
		(*sqlite.PaintCodeRepo).List, (*sqlite.PaintCodeRepo).Create),
	types.TableEmergencyShutoffs: entity(types.TableEmergencyShutoffs, shutoffs,
		(*sqlite.EmergencyShutoffRepo).List, (*sqlite.EmergencyShutoffRepo).Create),
	types.TableMeasurements: entity(types.TableMeasurements, measurements,
		(*sqlite.MeasurementRepo).List, (*sqlite.MeasurementRepo).Create),
	types.TableStorageBoxes: entity(types.TableStorageBoxes, storageBoxes,
		(*sqlite.StorageBoxRepo).List, (*sqlite.StorageBoxRepo).Create),
	types.TableWiFiInfo: entity(types.TableWiFiInfo, wifi,
		(*sqlite.WiFiRepo).List, (*sqlite.WiFiRepo).Create),
	types.TableCustomCategories: entity(types.TableCustomCategories, customCategories,
		(*sqlite.CustomCategoryRepo).List, (*sqlite.CustomCategoryRepo).Create),
	types.TableAppSettings: settingsCodec,
}

// orderedCodecs returns the codecs in foreign-key dependency order.
func orderedCodecs() []codec {
	out := make([]codec, 0, len(types.StandardTableNames))
	for _, table := range types.StandardTableNames {
		c, ok := codecs[table]
		if !ok {
			panic("backup: no codec for table " + table)
		}
		out = append(out, c)
	}
	return out
}
