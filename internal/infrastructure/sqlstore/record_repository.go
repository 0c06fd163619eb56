package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/jhoicas/foodtruck-api/internal/domain"
	"github.com/jhoicas/foodtruck-api/internal/domain/entity"
	"github.com/jhoicas/foodtruck-api/internal/domain/repository"
	"github.com/jhoicas/foodtruck-api/internal/domain/schema"
)

var _ repository.RecordRepository = (*RecordRepo)(nil)

// RecordRepo CRUD genérico sobre las tablas declaradas en schema.
// Las consultas se construyen con squirrel; los identificadores salen del
// registro estático de tablas, nunca de la petición.
type RecordRepo struct {
	q Querier
	d Dialect
}

// NewRecordRepository construye el repositorio.
func NewRecordRepository(q Querier, d Dialect) *RecordRepo {
	return &RecordRepo{q: q, d: d}
}

func (r *RecordRepo) selectFrom(t schema.Table) sq.SelectBuilder {
	cols := append([]string{"id"}, t.ColumnNames()...)
	return r.d.Builder().Select(quoteAll(cols)...).From(quote(t.Name))
}

func (r *RecordRepo) List(ctx context.Context, t schema.Table, f repository.RecordFilter) ([]entity.Record, error) {
	b := r.selectFrom(t)
	if f.Column != "" {
		if _, ok := t.Column(f.Column); !ok {
			return nil, domain.Invalid(f.Column, "columna desconocida")
		}
		b = b.Where(sq.Eq{quote(f.Column): f.Value})
	}
	if t.OrderBy != "" {
		b = b.OrderBy(t.OrderBy)
	}
	if page, args := r.d.Page(f.Limit, f.Offset); page != "" {
		b = b.Suffix(page, args...)
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list %s: %w", t.Name, err)
	}
	rows, err := r.q.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.Name, err)
	}
	defer rows.Close()

	out := []entity.Record{}
	for rows.Next() {
		raw := map[string]interface{}{}
		if err := rows.MapScan(raw); err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.Name, err)
		}
		out = append(out, normalizeRow(t, raw))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", t.Name, err)
	}
	return out, nil
}

func (r *RecordRepo) Get(ctx context.Context, t schema.Table, id int64) (entity.Record, error) {
	query, args, err := r.selectFrom(t).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get %s: %w", t.Name, err)
	}
	raw := map[string]interface{}{}
	err = r.q.QueryRowxContext(ctx, query, args...).MapScan(raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", t.Name, err)
	}
	return normalizeRow(t, raw), nil
}

func (r *RecordRepo) Insert(ctx context.Context, t schema.Table, rec entity.Record) (int64, error) {
	cols, vals := recordValues(t, rec)
	explicitID, hasID := rec.ID()
	if hasID {
		cols = append([]string{"id"}, cols...)
		vals = append([]interface{}{explicitID}, vals...)
	}
	if len(cols) == 0 {
		return 0, domain.Invalid("body", "sin columnas para insertar")
	}
	query, args, err := r.d.Builder().Insert(quote(t.Name)).
		Columns(quoteAll(cols)...).
		Values(vals...).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert %s: %w", t.Name, err)
	}
	var id int64
	if err := r.q.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicate
		}
		return 0, fmt.Errorf("insert %s: %w", t.Name, err)
	}
	if hasID && r.d == Postgres {
		// un id explícito no avanza la secuencia de BIGSERIAL
		_, err := r.q.ExecContext(ctx, fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%s', 'id'), (SELECT COALESCE(MAX(id), 1) FROM %s))",
			t.Name, quote(t.Name)))
		if err != nil {
			return 0, fmt.Errorf("sync sequence %s: %w", t.Name, err)
		}
	}
	return id, nil
}

func (r *RecordRepo) Update(ctx context.Context, t schema.Table, id int64, rec entity.Record) (bool, error) {
	cols, vals := recordValues(t, rec)
	if len(cols) == 0 {
		return false, domain.Invalid("body", "sin columnas para actualizar")
	}
	b := r.d.Builder().Update(quote(t.Name))
	for i, c := range cols {
		b = b.Set(quote(c), vals[i])
	}
	query, args, err := b.Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return false, fmt.Errorf("build update %s: %w", t.Name, err)
	}
	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return false, domain.ErrDuplicate
		}
		return false, fmt.Errorf("update %s: %w", t.Name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update %s: %w", t.Name, err)
	}
	return n > 0, nil
}

func (r *RecordRepo) Delete(ctx context.Context, t schema.Table, id int64) (bool, error) {
	query, args, err := r.d.Builder().Delete(quote(t.Name)).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return false, fmt.Errorf("build delete %s: %w", t.Name, err)
	}
	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", t.Name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", t.Name, err)
	}
	return n > 0, nil
}

// recordValues columnas presentes en rec, en orden de declaración.
func recordValues(t schema.Table, rec entity.Record) ([]string, []interface{}) {
	var cols []string
	var vals []interface{}
	for _, c := range t.Columns {
		v, ok := rec[c.Name]
		if !ok {
			continue
		}
		cols = append(cols, c.Name)
		vals = append(vals, v)
	}
	return cols, vals
}

// normalizeRow convierte los valores del driver al tipo lógico de cada columna.
func normalizeRow(t schema.Table, raw map[string]interface{}) entity.Record {
	rec := make(entity.Record, len(raw))
	rec["id"] = toInt64(raw["id"])
	for _, c := range t.Columns {
		rec[c.Name] = normalizeValue(c.Type, raw[c.Name])
	}
	return rec
}

func normalizeValue(ct schema.ColumnType, v interface{}) any {
	if b, ok := v.([]byte); ok {
		v = string(b)
	}
	if v == nil {
		return nil
	}
	switch ct {
	case schema.Integer:
		return toInt64(v)
	case schema.Real:
		switch x := v.(type) {
		case float64:
			return x
		case float32:
			return float64(x)
		case int64:
			return float64(x)
		case string:
			f, err := strconv.ParseFloat(x, 64)
			if err != nil {
				return x
			}
			return f
		}
	case schema.Bool:
		switch x := v.(type) {
		case bool:
			return x
		case int64:
			return x != 0
		case string:
			b, err := strconv.ParseBool(x)
			if err != nil {
				return x
			}
			return b
		}
	case schema.Timestamp:
		switch x := v.(type) {
		case time.Time:
			return x.UTC()
		case string:
			for _, layout := range timestampLayouts {
				if ts, err := time.Parse(layout, x); err == nil {
					return ts.UTC()
				}
			}
			return x
		}
	case schema.Text:
		switch x := v.(type) {
		case string:
			return x
		case time.Time:
			return x.UTC().Format(time.RFC3339)
		default:
			return fmt.Sprint(x)
		}
	}
	return v
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func toInt64(v interface{}) any {
	switch x := v.(type) {
	case int64:
		return x
	case int32:
		return int64(x)
	case int:
		return int64(x)
	case float64:
		return int64(x)
	case []byte:
		if n, err := strconv.ParseInt(string(x), 10, 64); err == nil {
			return n
		}
		return string(x)
	case string:
		if n, err := strconv.ParseInt(x, 10, 64); err == nil {
			return n
		}
		return x
	}
	return v
}
