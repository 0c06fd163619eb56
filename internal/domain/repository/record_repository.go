package repository

import (
	"context"

	"github.com/jhoicas/foodtruck-api/internal/domain/entity"
	"github.com/jhoicas/foodtruck-api/internal/domain/schema"
)

// RecordFilter filtro opcional por igualdad de columna.
type RecordFilter struct {
	Column string
	Value  any
	Limit  int
	Offset int
}

// RecordRepository acceso genérico a tablas declaradas en schema.
// Los valores de entity.Record deben estar normalizados al tipo de la columna.
type RecordRepository interface {
	List(ctx context.Context, t schema.Table, f RecordFilter) ([]entity.Record, error)
	Get(ctx context.Context, t schema.Table, id int64) (entity.Record, error)
	// Insert inserta y devuelve el id; si rec trae "id" se respeta (restauración).
	Insert(ctx context.Context, t schema.Table, rec entity.Record) (int64, error)
	Update(ctx context.Context, t schema.Table, id int64, rec entity.Record) (bool, error)
	Delete(ctx context.Context, t schema.Table, id int64) (bool, error)
}
