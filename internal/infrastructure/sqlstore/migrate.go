package sqlstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/foodtruck-api/internal/domain/schema"
	"github.com/jhoicas/foodtruck-api/pkg/logger"
)

// Migrate crea las tablas que falten y agrega columnas nuevas en cada arranque.
// Es aditivo: nunca elimina ni renombra columnas. El error "duplicate column"
// de cada ALTER TABLE se ignora.
func Migrate(ctx context.Context, db *DB, log *logger.Logger) error {
	return migrate(ctx, db.DB, db.dialect, log)
}

func migrate(ctx context.Context, ex sqlx.ExecerContext, d Dialect, log *logger.Logger) error {
	added := 0
	for _, t := range schema.All() {
		if _, err := ex.ExecContext(ctx, createTableSQL(d, t)); err != nil {
			return fmt.Errorf("crear tabla %s: %w", t.Name, err)
		}
		for _, c := range t.Columns {
			_, err := ex.ExecContext(ctx, fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s", quote(t.Name), columnDDL(d, c)))
			if err == nil {
				added++
				log.Debug().Str("table", t.Name).Str("column", c.Name).Msg("columna agregada")
				continue
			}
			if d.isDuplicateColumn(err) {
				log.Trace().Str("table", t.Name).Str("column", c.Name).Msg("columna ya existe")
				continue
			}
			return fmt.Errorf("agregar columna %s.%s: %w", t.Name, c.Name, err)
		}
		for _, idx := range t.Indexes {
			if _, err := ex.ExecContext(ctx, createIndexSQL(t.Name, idx)); err != nil {
				return fmt.Errorf("crear índice en %s: %w", t.Name, err)
			}
		}
	}
	log.Info().Int("tables", len(schema.All())).Int("columns_added", added).Msg("migraciones aplicadas")
	return nil
}

func createTableSQL(d Dialect, t schema.Table) string {
	defs := make([]string, 0, len(t.Columns)+1)
	if t.NaturalKey != "" {
		defs = append(defs, quote(t.NaturalKey)+" TEXT PRIMARY KEY")
	} else {
		defs = append(defs, "id "+d.primaryKey())
	}
	for _, c := range t.Columns {
		defs = append(defs, columnDDL(d, c))
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", quote(t.Name), strings.Join(defs, ",\n\t"))
}

func columnDDL(d Dialect, c schema.Column) string {
	s := quote(c.Name) + " " + d.columnType(c.Type)
	if c.Default != nil {
		s += " DEFAULT " + d.literal(c.Default)
	}
	return s
}

func createIndexSQL(table string, idx schema.Index) string {
	kind := "INDEX"
	if idx.Unique {
		kind = "UNIQUE INDEX"
	}
	name := "idx_" + table + "_" + strings.Join(idx.Columns, "_")
	return fmt.Sprintf("CREATE %s IF NOT EXISTS %s ON %s (%s)",
		kind, quote(name), quote(table), strings.Join(quoteAll(idx.Columns), ", "))
}
