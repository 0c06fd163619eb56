package schema

// Nombres de tablas con repositorio tipado.
const (
	TableMenu             = "menu"
	TableIngredients      = "ingredients"
	TableInventory        = "inventory"
	TableInventoryHistory = "inventory_history"
	TableWasteLog         = "waste_log"
	TableRecipes          = "recipes"
	TableUsers            = "users"
	TableSettings         = "settings"
	TableBusinessInfo     = "business_info"
	TableFiles            = "files"
	TableEvents           = "events"
	TableCatering         = "catering"
	TableArchivedEvents   = "archived_events"
	TableArchivedCatering = "archived_catering"
	TableContacts         = "contacts"
)

func text(name string) Column    { return Column{Name: name, Type: Text} }
func integer(name string) Column { return Column{Name: name, Type: Integer} }
func number(name string) Column  { return Column{Name: name, Type: Real} }
func boolean(name string) Column { return Column{Name: name, Type: Bool} }
func ts(name string) Column      { return Column{Name: name, Type: Timestamp} }

func createdAt() Column { return Column{Name: "created_at", Type: Timestamp, AutoNow: true} }

func (c Column) required() Column { c.Required = true; return c }
func (c Column) def(v any) Column  { c.Default = v; return c }

var tables = []Table{
	// ── Tablas tipadas ──────────────────────────────────────────────────────
	{
		Name: TableMenu,
		Columns: []Column{
			text("name").required(),
			number("price").required(),
			number("cost").def(0),
			text("recipe_type").def("Food"),
			text("category"),
			integer("portions").def(1),
			text("description"),
			createdAt(),
			ts("updated_at"),
		},
		OrderBy: "name",
	},
	{
		Name: TableIngredients,
		Columns: []Column{
			text("name").required(),
			number("cost").def(0),
			text("unit").required(),
			integer("servings").def(1),
			boolean("is_compound").def(false),
			integer("recipe_menu_id"),
			createdAt(),
		},
		OrderBy: "name",
	},
	{
		Name: TableInventory,
		Columns: []Column{
			integer("ingredient_id"),
			text("name").required(),
			text("unit").required(),
			text("category").def("Other"),
			number("current_stock").def(0),
			number("min_stock").def(0),
			number("max_stock").def(0),
			number("unit_cost").def(0),
			text("barcode"),
			createdAt(),
			ts("updated_at"),
		},
		Indexes: []Index{{Columns: []string{"ingredient_id"}}},
		OrderBy: "name",
	},
	{
		Name: TableInventoryHistory,
		Columns: []Column{
			integer("inventory_id").required(),
			text("item_name"),
			text("unit"),
			number("change_amount").required(),
			number("previous_stock"),
			number("new_stock"),
			text("change_type"),
			text("notes"),
			createdAt(),
		},
		Indexes: []Index{
			{Columns: []string{"inventory_id"}},
			{Columns: []string{"created_at"}},
		},
		OrderBy: "created_at DESC, id DESC",
	},
	{
		Name: TableWasteLog,
		Columns: []Column{
			integer("inventory_id").required(),
			text("item_name"),
			number("amount").required(),
			text("unit"),
			text("reason"),
			number("cost").def(0),
			text("notes"),
			integer("history_id"),
			createdAt(),
		},
		Indexes: []Index{{Columns: []string{"created_at"}}},
		OrderBy: "created_at DESC, id DESC",
	},
	{
		Name: TableRecipes,
		Columns: []Column{
			integer("menu_id").required(),
			integer("ingredient_id").required(),
			number("quantity").required(),
			text("unit"),
		},
		Indexes: []Index{{Columns: []string{"menu_id"}}},
		OrderBy: "id",
	},
	{
		Name: TableUsers,
		Columns: []Column{
			text("username").required(),
			text("password_hash").required(),
			text("display_name"),
			text("role").def("staff"),
			text("status").def("active"),
			createdAt(),
			ts("updated_at"),
		},
		Indexes: []Index{{Columns: []string{"username"}, Unique: true}},
		OrderBy: "username",
	},
	{
		Name:       TableSettings,
		NaturalKey: "key",
		Columns: []Column{
			text("value"),
			ts("updated_at"),
		},
		OrderBy: "key",
	},
	{
		Name: TableBusinessInfo,
		Columns: []Column{
			text("business_name"),
			text("phone"),
			text("email"),
			text("website"),
			text("address"),
			text("facebook"),
			text("instagram"),
			text("logo_path"),
			number("default_margin").def(30),
			ts("updated_at"),
		},
		OrderBy: "id",
	},
	{
		Name: TableFiles,
		Columns: []Column{
			text("filename").required(),
			text("original_name"),
			text("path").required(),
			text("mime_type"),
			integer("size").def(0),
			text("category").def("General"),
			text("description"),
			text("related_type"),
			integer("related_id"),
			Column{Name: "uploaded_at", Type: Timestamp, AutoNow: true},
		},
		OrderBy: "uploaded_at DESC, id DESC",
	},

	// ── Recursos con CRUD genérico ──────────────────────────────────────────
	{
		Name:  "suppliers",
		Route: "suppliers",
		Columns: []Column{
			text("name").required(),
			text("contact"),
			text("phone"),
			text("email"),
			text("address"),
			text("category").def("Food"),
			text("description"),
			text("website"),
			text("notes"),
			createdAt(),
		},
		OrderBy: "name",
	},
	{
		Name:  "employees",
		Route: "employees",
		Columns: []Column{
			text("name").required(),
			text("role"),
			text("phone"),
			text("email"),
			number("hourly_rate").def(0),
			text("hire_date"),
			text("status").def("active"),
			text("emergency_contact"),
			text("notes"),
			createdAt(),
		},
		OrderBy: "name",
	},
	{
		Name:  "reviews",
		Route: "reviews",
		Columns: []Column{
			text("customer_name"),
			integer("rating").required(),
			text("comment"),
			text("source"),
			text("review_date"),
			text("response"),
			createdAt(),
		},
		OrderBy: "created_at DESC, id DESC",
	},
	{
		Name:  "expenses",
		Route: "expenses",
		Columns: []Column{
			text("description").required(),
			number("amount").required(),
			text("category"),
			text("expense_date"),
			text("vendor"),
			text("payment_method"),
			text("receipt_file"),
			text("notes"),
			createdAt(),
		},
		OrderBy: "expense_date DESC, id DESC",
	},
	{
		Name:  "tools",
		Route: "tools",
		Columns: []Column{
			text("name").required(),
			text("category"),
			integer("quantity").def(1),
			text("condition"),
			text("location"),
			text("purchase_date"),
			number("cost").def(0),
			text("notes"),
			createdAt(),
		},
		OrderBy: "name",
	},
	{
		Name:  "licenses",
		Route: "licenses",
		Columns: []Column{
			text("name").required(),
			text("license_number"),
			text("issuing_authority"),
			text("issue_date"),
			text("expiry_date"),
			number("cost").def(0),
			text("status").def("active"),
			integer("file_id"),
			text("notes"),
			createdAt(),
		},
		OrderBy: "expiry_date",
	},
	{
		Name:  "maintenance_tasks",
		Route: "maintenance-tasks",
		Columns: []Column{
			text("title").required(),
			text("equipment"),
			text("description"),
			text("due_date"),
			text("frequency"),
			text("status").def("pending"),
			text("priority").def("medium"),
			number("cost").def(0),
			text("completed_date"),
			text("notes"),
			createdAt(),
		},
		OrderBy: "due_date",
	},
	{
		Name:  TableContacts,
		Route: "contacts",
		Columns: []Column{
			text("name").required(),
			text("company"),
			text("type").def("client"),
			text("phone"),
			text("email"),
			text("address"),
			text("notes"),
			createdAt(),
		},
		OrderBy: "name",
	},
	{
		Name:  "notes",
		Route: "notes",
		Columns: []Column{
			text("title").required(),
			text("content"),
			text("category"),
			boolean("pinned").def(false),
			createdAt(),
		},
		OrderBy: "pinned DESC, created_at DESC",
	},
	{
		Name:  "schedules",
		Route: "schedules",
		Columns: []Column{
			integer("employee_id").required(),
			text("shift_date").required(),
			text("start_time").required(),
			text("end_time").required(),
			text("position"),
			text("notes"),
			createdAt(),
		},
		OrderBy: "shift_date, start_time",
	},
	{
		Name:  "availability",
		Route: "availability",
		Columns: []Column{
			integer("employee_id").required(),
			integer("day_of_week").required(),
			text("start_time"),
			text("end_time"),
			boolean("available").def(true),
			text("notes"),
		},
		OrderBy: "employee_id, day_of_week",
	},
	{
		Name:  "time_punches",
		Route: "time-punches",
		Columns: []Column{
			integer("employee_id").required(),
			text("punch_in").required(),
			text("punch_out"),
			number("hours"),
			text("notes"),
			createdAt(),
		},
		OrderBy: "punch_in DESC",
	},
	{
		Name:  "menu_specials",
		Route: "menu-specials",
		Columns: []Column{
			text("name").required(),
			text("description"),
			number("price"),
			text("start_date"),
			text("end_date"),
			text("days_of_week"),
			text("status").def("active"),
			text("category"),
			integer("menu_id"),
			createdAt(),
		},
		OrderBy: "name",
	},
	{
		Name:  "shift_swaps",
		Route: "shift-swaps",
		Columns: []Column{
			integer("schedule_id").required(),
			integer("requester_id").required(),
			integer("target_employee_id"),
			text("reason"),
			text("status").def("pending"),
			createdAt(),
		},
		OrderBy: "created_at DESC, id DESC",
	},
	{
		Name:  "equipment_tracking",
		Route: "equipment-tracking",
		Columns: []Column{
			text("name").required(),
			text("serial_number"),
			text("location"),
			text("status").def("operational"),
			text("last_service_date"),
			text("next_service_date"),
			text("assigned_to"),
			text("notes"),
			createdAt(),
		},
		OrderBy: "name",
	},
	{
		Name:  "performance_reviews",
		Route: "performance-reviews",
		Columns: []Column{
			integer("employee_id").required(),
			text("review_date").required(),
			text("reviewer"),
			integer("rating"),
			text("strengths"),
			text("improvements"),
			text("goals"),
			text("notes"),
			createdAt(),
		},
		OrderBy: "review_date DESC",
	},
	{
		Name:  "recipe_book",
		Route: "recipe-book",
		Columns: []Column{
			text("name").required(),
			text("description"),
			text("prep_time"),
			text("cook_time"),
			integer("servings"),
			text("ingredients"),
			text("instructions"),
			text("category"),
			createdAt(),
		},
		OrderBy: "name",
	},
	{
		Name:  TableEvents,
		Route: "events",
		Columns: []Column{
			text("name").required(),
			text("type"),
			text("location"),
			text("date"),
			text("time"),
			number("fee").def(0),
			text("status").def("Interested"),
			integer("contact_id"),
			text("notes"),
			createdAt(),
		},
		OrderBy:      "date DESC, id DESC",
		ArchiveTable: TableArchivedEvents,
	},
	{
		Name:  TableCatering,
		Route: "catering",
		Columns: []Column{
			text("client").required(),
			text("date"),
			integer("guests"),
			number("price").def(0),
			text("status").def("Inquiry"),
			number("deposit").def(0),
			text("setup_time"),
			text("location"),
			integer("contact_id"),
			text("menu_notes"),
			text("notes"),
			createdAt(),
		},
		OrderBy:      "date DESC, id DESC",
		ArchiveTable: TableArchivedCatering,
	},
}
