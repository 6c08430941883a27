// This file declares the schema catalog: the current shape of every table,
// foreign key, and index in the store.
package sqlite

// catalogTable is one CREATE TABLE statement in the catalog.
type catalogTable struct {
	name string
	ddl  string
}

// catalogIndex is one CREATE INDEX statement in the catalog.
type catalogIndex struct {
	name string
	ddl  string
}

// Owned children reference their parent with ON DELETE CASCADE; optional
// references use ON DELETE SET NULL.
const (
	createProperties = `CREATE TABLE IF NOT EXISTS properties (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    address TEXT NOT NULL DEFAULT '',
    property_type TEXT NOT NULL DEFAULT '',
    purchase_date TEXT,
    purchase_price REAL,
    current_value REAL,
    square_footage INTEGER NOT NULL DEFAULT 0,
    year_built INTEGER NOT NULL DEFAULT 0,
    image_uri TEXT NOT NULL DEFAULT '',
    notes TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
)`

	createRooms = `CREATE TABLE IF NOT EXISTS rooms (
    id TEXT PRIMARY KEY,
    property_id TEXT NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    room_type TEXT NOT NULL DEFAULT '',
    floor INTEGER NOT NULL DEFAULT 0,
    notes TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
)`

	createAssets = `CREATE TABLE IF NOT EXISTS assets (
    id TEXT PRIMARY KEY,
    property_id TEXT NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
    room_id TEXT REFERENCES rooms(id) ON DELETE SET NULL,
    name TEXT NOT NULL,
    category TEXT NOT NULL DEFAULT '',
    brand TEXT NOT NULL DEFAULT '',
    model TEXT NOT NULL DEFAULT '',
    serial_number TEXT NOT NULL DEFAULT '',
    purchase_date TEXT,
    purchase_price REAL,
    warranty_expiration TEXT,
    manual_url TEXT NOT NULL DEFAULT '',
    notes TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
)`

	createWorkers = `CREATE TABLE IF NOT EXISTS workers (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    company TEXT NOT NULL DEFAULT '',
    phone TEXT NOT NULL DEFAULT '',
    email TEXT NOT NULL DEFAULT '',
    specialty TEXT NOT NULL DEFAULT '[]',
    hourly_rate REAL,
    rating INTEGER NOT NULL DEFAULT 0,
    notes TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
)`

	createWorkerNotes = `CREATE TABLE IF NOT EXISTS worker_notes (
    id TEXT PRIMARY KEY,
    worker_id TEXT NOT NULL REFERENCES workers(id) ON DELETE CASCADE,
    property_id TEXT REFERENCES properties(id) ON DELETE SET NULL,
    content TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
)`

	createRecurringTemplates = `CREATE TABLE IF NOT EXISTS recurring_templates (
    id TEXT PRIMARY KEY,
    property_id TEXT NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    bill_category TEXT NOT NULL DEFAULT '',
    estimated_amount REAL NOT NULL DEFAULT 0,
    frequency TEXT NOT NULL,
    due_day INTEGER NOT NULL DEFAULT 0,
    next_due_date TEXT,
    vendor TEXT NOT NULL DEFAULT '',
    is_active INTEGER NOT NULL DEFAULT 1,
    auto_generate INTEGER NOT NULL DEFAULT 0,
    notes TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
)`

	createExpenses = `CREATE TABLE IF NOT EXISTS expenses (
    id TEXT PRIMARY KEY,
    property_id TEXT NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
    room_id TEXT REFERENCES rooms(id) ON DELETE SET NULL,
    asset_id TEXT REFERENCES assets(id) ON DELETE SET NULL,
    worker_id TEXT REFERENCES workers(id) ON DELETE SET NULL,
    recurring_template_id TEXT REFERENCES recurring_templates(id) ON DELETE SET NULL,
    expense_type TEXT NOT NULL DEFAULT '',
    category TEXT NOT NULL DEFAULT '',
    amount REAL NOT NULL,
    date TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    vendor TEXT NOT NULL DEFAULT '',
    receipt_uri TEXT NOT NULL DEFAULT '',
    tags TEXT NOT NULL DEFAULT '[]',
    is_tax_deductible INTEGER NOT NULL DEFAULT 0,
    notes TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
)`

	createExpenseAssets = `CREATE TABLE IF NOT EXISTS expense_assets (
    id TEXT PRIMARY KEY,
    expense_id TEXT NOT NULL REFERENCES expenses(id) ON DELETE CASCADE,
    asset_id TEXT NOT NULL REFERENCES assets(id) ON DELETE CASCADE,
    amount REAL NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
)`

	createRecurringPayments = `CREATE TABLE IF NOT EXISTS recurring_payment_history (
    id TEXT PRIMARY KEY,
    template_id TEXT NOT NULL REFERENCES recurring_templates(id) ON DELETE CASCADE,
    expense_id TEXT REFERENCES expenses(id) ON DELETE SET NULL,
    amount REAL NOT NULL,
    paid_date TEXT NOT NULL,
    notes TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
)`

	createMaintenanceTasks = `CREATE TABLE IF NOT EXISTS maintenance_tasks (
    id TEXT PRIMARY KEY,
    property_id TEXT NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
    asset_id TEXT REFERENCES assets(id) ON DELETE SET NULL,
    assigned_worker_id TEXT REFERENCES workers(id) ON DELETE SET NULL,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    frequency TEXT NOT NULL DEFAULT 'once',
    priority TEXT NOT NULL DEFAULT 'medium',
    next_due_date TEXT,
    last_completed_date TEXT,
    is_completed INTEGER NOT NULL DEFAULT 0,
    estimated_cost REAL,
    notes TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
)`

	createMaintenanceCompletions = `CREATE TABLE IF NOT EXISTS maintenance_completions (
    id TEXT PRIMARY KEY,
    task_id TEXT NOT NULL REFERENCES maintenance_tasks(id) ON DELETE CASCADE,
    worker_id TEXT REFERENCES workers(id) ON DELETE SET NULL,
    completed_date TEXT NOT NULL,
    cost REAL,
    notes TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
)`

	createRenovations = `CREATE TABLE IF NOT EXISTS renovations (
    id TEXT PRIMARY KEY,
    property_id TEXT NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
    room_id TEXT REFERENCES rooms(id) ON DELETE SET NULL,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT 'planned',
    start_date TEXT,
    end_date TEXT,
    cost_estimate REAL NOT NULL DEFAULT 0,
    notes TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
)`

	createRenovationWorkers = `CREATE TABLE IF NOT EXISTS renovation_workers (
    id TEXT PRIMARY KEY,
    renovation_id TEXT NOT NULL REFERENCES renovations(id) ON DELETE CASCADE,
    worker_id TEXT NOT NULL REFERENCES workers(id) ON DELETE CASCADE,
    role TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    UNIQUE (renovation_id, worker_id)
)`

	createRenovationAssets = `CREATE TABLE IF NOT EXISTS renovation_assets (
    id TEXT PRIMARY KEY,
    renovation_id TEXT NOT NULL REFERENCES renovations(id) ON DELETE CASCADE,
    asset_id TEXT NOT NULL REFERENCES assets(id) ON DELETE CASCADE,
    notes TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    UNIQUE (renovation_id, asset_id)
)`

	createRenovationCosts = `CREATE TABLE IF NOT EXISTS renovation_costs (
    id TEXT PRIMARY KEY,
    renovation_id TEXT NOT NULL REFERENCES renovations(id) ON DELETE CASCADE,
    description TEXT NOT NULL DEFAULT '',
    category TEXT NOT NULL DEFAULT '',
    amount REAL NOT NULL DEFAULT 0,
    date TEXT,
    notes TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
)`

	createDocuments = `CREATE TABLE IF NOT EXISTS documents (
    id TEXT PRIMARY KEY,
    property_id TEXT REFERENCES properties(id) ON DELETE CASCADE,
    asset_id TEXT REFERENCES assets(id) ON DELETE SET NULL,
    worker_id TEXT REFERENCES workers(id) ON DELETE SET NULL,
    title TEXT NOT NULL,
    document_type TEXT NOT NULL DEFAULT '',
    file_uri TEXT NOT NULL DEFAULT '',
    mime_type TEXT NOT NULL DEFAULT '',
    file_size INTEGER NOT NULL DEFAULT 0,
    expiration_date TEXT,
    notes TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
)`

	createNotes = `CREATE TABLE IF NOT EXISTS notes (
    id TEXT PRIMARY KEY,
    property_id TEXT REFERENCES properties(id) ON DELETE CASCADE,
    asset_id TEXT REFERENCES assets(id) ON DELETE SET NULL,
    title TEXT NOT NULL DEFAULT '',
    content TEXT NOT NULL DEFAULT '',
    is_pinned INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
)`

	createPaintCodes = `CREATE TABLE IF NOT EXISTS paint_codes (
    id TEXT PRIMARY KEY,
    property_id TEXT NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
    room_id TEXT REFERENCES rooms(id) ON DELETE SET NULL,
    location TEXT NOT NULL DEFAULT '',
    brand TEXT NOT NULL DEFAULT '',
    color_name TEXT NOT NULL DEFAULT '',
    color_code TEXT NOT NULL DEFAULT '',
    finish TEXT NOT NULL DEFAULT '',
    notes TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
)`

	createEmergencyShutoffs = `CREATE TABLE IF NOT EXISTS emergency_shutoffs (
    id TEXT PRIMARY KEY,
    property_id TEXT NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
    shutoff_type TEXT NOT NULL,
    location TEXT NOT NULL DEFAULT '',
    instructions TEXT NOT NULL DEFAULT '',
    notes TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
)`

	createMeasurements = `CREATE TABLE IF NOT EXISTS measurements (
    id TEXT PRIMARY KEY,
    property_id TEXT NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
    room_id TEXT REFERENCES rooms(id) ON DELETE CASCADE,
    asset_id TEXT REFERENCES assets(id) ON DELETE SET NULL,
    name TEXT NOT NULL,
    value REAL NOT NULL DEFAULT 0,
    unit TEXT NOT NULL DEFAULT '',
    notes TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
)`

	createStorageBoxes = `CREATE TABLE IF NOT EXISTS storage_boxes (
    id TEXT PRIMARY KEY,
    property_id TEXT NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
    room_id TEXT REFERENCES rooms(id) ON DELETE SET NULL,
    name TEXT NOT NULL,
    location TEXT NOT NULL DEFAULT '',
    contents TEXT NOT NULL DEFAULT '',
    notes TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
)`

	createWiFiInfo = `CREATE TABLE IF NOT EXISTS wifi_info (
    id TEXT PRIMARY KEY,
    property_id TEXT NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
    network_name TEXT NOT NULL,
    password TEXT NOT NULL DEFAULT '',
    security_type TEXT NOT NULL DEFAULT '',
    is_guest INTEGER NOT NULL DEFAULT 0,
    notes TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
)`

	createCustomCategories = `CREATE TABLE IF NOT EXISTS custom_categories (
    id TEXT PRIMARY KEY,
    type TEXT NOT NULL,
    name TEXT NOT NULL,
    icon TEXT NOT NULL DEFAULT '',
    color TEXT NOT NULL DEFAULT '',
    sort_order INTEGER NOT NULL DEFAULT 0,
    is_default INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    UNIQUE (type, name)
)`

	createAppSettings = `CREATE TABLE IF NOT EXISTS app_settings (
    id TEXT PRIMARY KEY,
    currency TEXT NOT NULL DEFAULT 'USD',
    date_format TEXT NOT NULL DEFAULT '2006-01-02',
    theme TEXT NOT NULL DEFAULT 'system',
    language TEXT NOT NULL DEFAULT 'en',
    notifications_enabled INTEGER NOT NULL DEFAULT 1,
    biometric_enabled INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
)`
)

// catalogTables lists every table in dependency order.
var catalogTables = []catalogTable{
	{"properties", createProperties},
	{"rooms", createRooms},
	{"assets", createAssets},
	{"workers", createWorkers},
	{"worker_notes", createWorkerNotes},
	{"recurring_templates", createRecurringTemplates},
	{"expenses", createExpenses},
	{"expense_assets", createExpenseAssets},
	{"recurring_payment_history", createRecurringPayments},
	{"maintenance_tasks", createMaintenanceTasks},
	{"maintenance_completions", createMaintenanceCompletions},
	{"renovations", createRenovations},
	{"renovation_workers", createRenovationWorkers},
	{"renovation_assets", createRenovationAssets},
	{"renovation_costs", createRenovationCosts},
	{"documents", createDocuments},
	{"notes", createNotes},
	{"paint_codes", createPaintCodes},
	{"emergency_shutoffs", createEmergencyShutoffs},
	{"measurements", createMeasurements},
	{"storage_boxes", createStorageBoxes},
	{"wifi_info", createWiFiInfo},
	{"custom_categories", createCustomCategories},
	{"app_settings", createAppSettings},
}

// catalogIndexes are created after every migration step has run, so they may
// reference columns that older stores only gain through a migration.
var catalogIndexes = []catalogIndex{
	{"idx_rooms_property", `CREATE INDEX IF NOT EXISTS idx_rooms_property ON rooms(property_id)`},
	{"idx_assets_property", `CREATE INDEX IF NOT EXISTS idx_assets_property ON assets(property_id)`},
	{"idx_assets_room", `CREATE INDEX IF NOT EXISTS idx_assets_room ON assets(room_id)`},
	{"idx_assets_warranty", `CREATE INDEX IF NOT EXISTS idx_assets_warranty ON assets(warranty_expiration)`},
	{"idx_worker_notes_worker", `CREATE INDEX IF NOT EXISTS idx_worker_notes_worker ON worker_notes(worker_id)`},
	{"idx_expenses_property_date", `CREATE INDEX IF NOT EXISTS idx_expenses_property_date ON expenses(property_id, date)`},
	{"idx_expenses_date", `CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses(date)`},
	{"idx_expenses_asset", `CREATE INDEX IF NOT EXISTS idx_expenses_asset ON expenses(asset_id)`},
	{"idx_expenses_worker", `CREATE INDEX IF NOT EXISTS idx_expenses_worker ON expenses(worker_id)`},
	{"idx_expenses_template", `CREATE INDEX IF NOT EXISTS idx_expenses_template ON expenses(recurring_template_id)`},
	{"idx_expense_assets_expense", `CREATE INDEX IF NOT EXISTS idx_expense_assets_expense ON expense_assets(expense_id)`},
	{"idx_expense_assets_asset", `CREATE INDEX IF NOT EXISTS idx_expense_assets_asset ON expense_assets(asset_id)`},
	{"idx_recurring_templates_property", `CREATE INDEX IF NOT EXISTS idx_recurring_templates_property ON recurring_templates(property_id)`},
	{"idx_recurring_payments_template", `CREATE INDEX IF NOT EXISTS idx_recurring_payments_template ON recurring_payment_history(template_id, paid_date)`},
	{"idx_maintenance_tasks_property", `CREATE INDEX IF NOT EXISTS idx_maintenance_tasks_property ON maintenance_tasks(property_id)`},
	{"idx_maintenance_tasks_due", `CREATE INDEX IF NOT EXISTS idx_maintenance_tasks_due ON maintenance_tasks(is_completed, next_due_date)`},
	{"idx_maintenance_tasks_worker", `CREATE INDEX IF NOT EXISTS idx_maintenance_tasks_worker ON maintenance_tasks(assigned_worker_id)`},
	{"idx_maintenance_completions_task", `CREATE INDEX IF NOT EXISTS idx_maintenance_completions_task ON maintenance_completions(task_id)`},
	{"idx_renovations_property", `CREATE INDEX IF NOT EXISTS idx_renovations_property ON renovations(property_id)`},
	{"idx_renovation_costs_renovation", `CREATE INDEX IF NOT EXISTS idx_renovation_costs_renovation ON renovation_costs(renovation_id)`},
	{"idx_documents_property", `CREATE INDEX IF NOT EXISTS idx_documents_property ON documents(property_id)`},
	{"idx_documents_asset", `CREATE INDEX IF NOT EXISTS idx_documents_asset ON documents(asset_id)`},
	{"idx_notes_property", `CREATE INDEX IF NOT EXISTS idx_notes_property ON notes(property_id)`},
	{"idx_measurements_room", `CREATE INDEX IF NOT EXISTS idx_measurements_room ON measurements(room_id)`},
	{"idx_storage_boxes_property", `CREATE INDEX IF NOT EXISTS idx_storage_boxes_property ON storage_boxes(property_id)`},
	{"idx_custom_categories_type", `CREATE INDEX IF NOT EXISTS idx_custom_categories_type ON custom_categories(type, sort_order)`},
}
