package sqlite

import (
	"context"
)

// Store groups every repository over one Backend. All repositories share a
// single Executor, so a transaction opened with WithTx is visible to each of
// them through the context.
type Store struct {
	backend *Backend
	exec    *Executor

	Properties             *PropertyRepo
	Rooms                  *RoomRepo
	Assets                 *AssetRepo
	Workers                *WorkerRepo
	WorkerNotes            *WorkerNoteRepo
	Expenses               *ExpenseRepo
	ExpenseAssets          *ExpenseAssetRepo
	RecurringTemplates     *RecurringTemplateRepo
	RecurringPayments      *RecurringPaymentRepo
	MaintenanceTasks       *MaintenanceTaskRepo
	MaintenanceCompletions *MaintenanceCompletionRepo
	Renovations            *RenovationRepo
	Documents              *DocumentRepo
	Notes                  *NoteRepo
	PaintCodes             *PaintCodeRepo
	EmergencyShutoffs      *EmergencyShutoffRepo
	Measurements           *MeasurementRepo
	StorageBoxes           *StorageBoxRepo
	WiFi                   *WiFiRepo
	CustomCategories       *CustomCategoryRepo
	Settings               *SettingsRepo
}

// NewStore wires every repository to b. Nothing is opened until the first
// operation needs the connection.
func NewStore(b *Backend) *Store {
	exec := NewExecutor(b)
	r := newRepo(exec)
	return &Store{
		backend:                b,
		exec:                   exec,
		Properties:             &PropertyRepo{r},
		Rooms:                  &RoomRepo{r},
		Assets:                 &AssetRepo{r},
		Workers:                &WorkerRepo{r},
		WorkerNotes:            &WorkerNoteRepo{r},
		Expenses:               &ExpenseRepo{r},
		ExpenseAssets:          &ExpenseAssetRepo{r},
		RecurringTemplates:     &RecurringTemplateRepo{r},
		RecurringPayments:      &RecurringPaymentRepo{r},
		MaintenanceTasks:       &MaintenanceTaskRepo{r},
		MaintenanceCompletions: &MaintenanceCompletionRepo{r},
		Renovations:            &RenovationRepo{r},
		Documents:              &DocumentRepo{r},
		Notes:                  &NoteRepo{r},
		PaintCodes:             &PaintCodeRepo{r},
		EmergencyShutoffs:      &EmergencyShutoffRepo{r},
		Measurements:           &MeasurementRepo{r},
		StorageBoxes:           &StorageBoxRepo{r},
		WiFi:                   &WiFiRepo{r},
		CustomCategories:       &CustomCategoryRepo{r},
		Settings:               &SettingsRepo{r},
	}
}

func (s *Store) Backend() *Backend { return s.backend }

func (s *Store) Executor() *Executor { return s.exec }

// WithTx runs fn in one transaction. Repository calls made with the ctx
// passed to fn join it.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.exec.WithTx(ctx, func(ctx context.Context, _ Querier) error {
		return fn(ctx)
	})
}

// SeedDefaults creates the default settings row and the built-in categories
// for any taxonomy that is still empty. It returns the number of categories
// inserted.
func (s *Store) SeedDefaults(ctx context.Context) (int, error) {
	var seeded int
	err := s.WithTx(ctx, func(ctx context.Context) error {
		if _, err := s.Settings.Get(ctx); err != nil {
			return err
		}
		n, err := s.CustomCategories.SeedDefaults(ctx)
		seeded = n
		return err
	})
	return seeded, err
}

// Close releases the connection. The store may be used again afterwards; the
// next operation reopens it.
func (s *Store) Close() error { return s.backend.Close() }
