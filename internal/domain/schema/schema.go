// Package schema declara las tablas de la base de datos del food truck.
//
// El mismo registro alimenta las migraciones aditivas de arranque, el CRUD
// genérico de recursos simples (proveedores, empleados, eventos...) y la
// restauración de copias de seguridad.
package schema

// ColumnType tipo lógico de una columna.
type ColumnType int

const (
	Text ColumnType = iota
	Integer
	Real
	Bool
	Timestamp
)

func (t ColumnType) String() string {
	switch t {
	case Integer:
		return "integer"
	case Real:
		return "number"
	case Bool:
		return "boolean"
	case Timestamp:
		return "timestamp"
	default:
		return "text"
	}
}

// Column describe una columna distinta de la clave primaria.
type Column struct {
	Name     string
	Type     ColumnType
	Required bool
	Default  any  // valor por defecto al crear (y en DDL)
	AutoNow  bool // se fija con la hora actual al crear; no se modifica en PUT
}

// Index índice secundario.
type Index struct {
	Columns []string
	Unique  bool
}

// Table describe una tabla.
type Table struct {
	Name string
	// Route ruta REST bajo /api para tablas con CRUD genérico ("" = sin CRUD genérico).
	Route string
	// NaturalKey columna TEXT usada como clave primaria en lugar de id autoincremental.
	NaturalKey string
	Columns    []Column
	Indexes    []Index
	OrderBy    string
	// ArchiveTable tabla sombra de archivados ("" = no archivable).
	ArchiveTable string
}

// Column busca una columna por nombre.
func (t Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// ColumnNames nombres de columnas en orden de declaración (sin la clave primaria).
func (t Table) ColumnNames() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}

// PrimaryKey nombre de la columna clave.
func (t Table) PrimaryKey() string {
	if t.NaturalKey != "" {
		return t.NaturalKey
	}
	return "id"
}

// Generic indica si la tabla se expone con CRUD genérico.
func (t Table) Generic() bool { return t.Route != "" }

// Columnas extra de las tablas de archivados.
const (
	ColOriginalID   = "original_id"
	ColArchivedDate = "archived_date"
)

// Archive construye la tabla sombra: mismas columnas + original_id + archived_date.
func (t Table) Archive() (Table, bool) {
	if t.ArchiveTable == "" {
		return Table{}, false
	}
	cols := make([]Column, 0, len(t.Columns)+2)
	for _, c := range t.Columns {
		c.Required = false
		c.AutoNow = false
		cols = append(cols, c)
	}
	cols = append(cols,
		Column{Name: ColOriginalID, Type: Integer, Required: true},
		Column{Name: ColArchivedDate, Type: Timestamp},
	)
	return Table{
		Name:    t.ArchiveTable,
		Columns: cols,
		Indexes: []Index{{Columns: []string{ColOriginalID}}},
		OrderBy: ColArchivedDate + " DESC",
	}, true
}

// All devuelve todas las tablas, incluidas las de archivados, en orden de creación.
func All() []Table {
	out := make([]Table, 0, len(tables)+2)
	for _, t := range tables {
		out = append(out, t)
		if a, ok := t.Archive(); ok {
			out = append(out, a)
		}
	}
	return out
}

// Lookup busca una tabla (incluidas las de archivados) por nombre.
func Lookup(name string) (Table, bool) {
	for _, t := range All() {
		if t.Name == name {
			return t, true
		}
	}
	return Table{}, false
}

// MustLookup como Lookup pero entra en pánico si no existe (registro estático).
func MustLookup(name string) Table {
	t, ok := Lookup(name)
	if !ok {
		panic("schema: tabla desconocida " + name)
	}
	return t
}

// Generic tablas con CRUD genérico.
func Generic() []Table {
	var out []Table
	for _, t := range tables {
		if t.Generic() {
			out = append(out, t)
		}
	}
	return out
}
