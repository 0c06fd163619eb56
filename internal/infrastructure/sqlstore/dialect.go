package sqlstore

import (
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/foodtruck-api/internal/domain/schema"
)

// Dialect diferencias de SQL entre SQLite y PostgreSQL.
type Dialect struct {
	name string
}

var (
	SQLite   = Dialect{name: "sqlite"}
	Postgres = Dialect{name: "postgres"}
)

func (d Dialect) String() string { return d.name }

// IsSQLite indica si el dialecto es SQLite.
func (d Dialect) IsSQLite() bool { return d == SQLite }

// Builder constructor de squirrel con el formato de placeholders del motor.
func (d Dialect) Builder() sq.StatementBuilderType {
	if d == Postgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

// ForUpdate sufijo de bloqueo de fila. SQLite no lo soporta: la conexión única ya serializa.
func (d Dialect) ForUpdate() string {
	if d == Postgres {
		return " FOR UPDATE"
	}
	return ""
}

// Page cláusula LIMIT/OFFSET con placeholders "?". limit 0 significa sin límite;
// SQLite exige LIMIT para usar OFFSET, por eso se emite LIMIT -1.
func (d Dialect) Page(limit, offset int) (string, []interface{}) {
	switch {
	case limit > 0:
		return "LIMIT ? OFFSET ?", []interface{}{limit, offset}
	case offset <= 0:
		return "", nil
	case d == Postgres:
		return "OFFSET ?", []interface{}{offset}
	default:
		return "LIMIT -1 OFFSET ?", []interface{}{offset}
	}
}

func (d Dialect) primaryKey() string {
	if d == Postgres {
		return "BIGSERIAL PRIMARY KEY"
	}
	return "INTEGER PRIMARY KEY AUTOINCREMENT"
}

func (d Dialect) columnType(t schema.ColumnType) string {
	switch t {
	case schema.Integer:
		if d == Postgres {
			return "BIGINT"
		}
		return "INTEGER"
	case schema.Real:
		return "DOUBLE PRECISION"
	case schema.Bool:
		return "BOOLEAN"
	case schema.Timestamp:
		if d == Postgres {
			return "TIMESTAMPTZ"
		}
		return "TIMESTAMP"
	default:
		return "TEXT"
	}
}

// literal renderiza un valor por defecto para DDL.
func (d Dialect) literal(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case bool:
		if d == Postgres {
			if x {
				return "TRUE"
			}
			return "FALSE"
		}
		if x {
			return "1"
		}
		return "0"
	case string:
		return "'" + strings.ReplaceAll(x, "'", "''") + "'"
	default:
		return fmt.Sprint(x)
	}
}

// isDuplicateColumn reconoce el error de ALTER TABLE ADD COLUMN sobre columna existente.
func (d Dialect) isDuplicateColumn(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "42701" // duplicate_column
	}
	return strings.Contains(strings.ToLower(err.Error()), "duplicate column")
}

// quote entrecomilla un identificador (válido en ambos motores).
func quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

func quoteAll(idents []string) []string {
	out := make([]string, len(idents))
	for i, s := range idents {
		out[i] = quote(s)
	}
	return out
}
