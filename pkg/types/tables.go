package types

// Table names in the on-disk store.
const (
	TableProperties             = "properties"
	TableRooms                  = "rooms"
	TableAssets                 = "assets"
	TableWorkers                = "workers"
	TableWorkerNotes            = "worker_notes"
	TableExpenses               = "expenses"
	TableExpenseAssets          = "expense_assets"
	TableRecurringTemplates     = "recurring_templates"
	TableRecurringPayments      = "recurring_payment_history"
	TableMaintenanceTasks       = "maintenance_tasks"
	TableMaintenanceCompletions = "maintenance_completions"
	TableRenovations            = "renovations"
	TableRenovationWorkers      = "renovation_workers"
	TableRenovationAssets       = "renovation_assets"
	TableRenovationCosts        = "renovation_costs"
	TableDocuments              = "documents"
	TableNotes                  = "notes"
	TablePaintCodes             = "paint_codes"
	TableEmergencyShutoffs      = "emergency_shutoffs"
	TableMeasurements           = "measurements"
	TableStorageBoxes           = "storage_boxes"
	TableWiFiInfo               = "wifi_info"
	TableCustomCategories       = "custom_categories"
	TableAppSettings            = "app_settings"
)

// StandardTableNames lists every table in foreign-key dependency order:
// a table appears after every table it references.
var StandardTableNames = []string{
	TableProperties,
	TableRooms,
	TableAssets,
	TableWorkers,
	TableWorkerNotes,
	TableRecurringTemplates,
	TableExpenses,
	TableExpenseAssets,
	TableRecurringPayments,
	TableMaintenanceTasks,
	TableMaintenanceCompletions,
	TableRenovations,
	TableRenovationWorkers,
	TableRenovationAssets,
	TableRenovationCosts,
	TableDocuments,
	TableNotes,
	TablePaintCodes,
	TableEmergencyShutoffs,
	TableMeasurements,
	TableStorageBoxes,
	TableWiFiInfo,
	TableCustomCategories,
	TableAppSettings,
}

// Ptr returns a pointer to v. It keeps patch literals short:
//
//	types.PropertyPatch{Name: types.Ptr("Lake House")}
func Ptr[T any](v T) *T {
	return &v
}
