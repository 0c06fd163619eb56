package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/foodtruck-api/internal/application/dto"
	"github.com/jhoicas/foodtruck-api/internal/domain"
	"github.com/jhoicas/foodtruck-api/internal/domain/entity"
	"github.com/jhoicas/foodtruck-api/internal/domain/repository"
	"github.com/jhoicas/foodtruck-api/internal/domain/schema"
)

// RecordUseCase CRUD genérico para los recursos simples declarados en schema.
type RecordUseCase struct {
	records repository.RecordRepository
	now     func() time.Time
}

// NewRecordUseCase construye el caso de uso.
func NewRecordUseCase(records repository.RecordRepository) *RecordUseCase {
	return &RecordUseCase{records: records, now: func() time.Time { return time.Now().UTC() }}
}

// List lista las filas de t en su orden declarado.
func (uc *RecordUseCase) List(ctx context.Context, t schema.Table, page dto.PageRequest) ([]entity.Record, error) {
	page.DefaultPage()
	return uc.records.List(ctx, t, repository.RecordFilter{Limit: page.Limit, Offset: page.Offset})
}

// Get obtiene una fila.
func (uc *RecordUseCase) Get(ctx context.Context, t schema.Table, id int64) (entity.Record, error) {
	rec, err := uc.records.Get(ctx, t, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	return rec, nil
}

// Create valida el body y crea la fila.
func (uc *RecordUseCase) Create(ctx context.Context, t schema.Table, body map[string]any) (entity.Record, error) {
	rec, err := buildRecord(t, body, uc.now(), true)
	if err != nil {
		return nil, err
	}
	id, err := uc.records.Insert(ctx, t, rec)
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, t, id)
}

// Update reemplaza todas las columnas declaradas (salvo las AutoNow).
func (uc *RecordUseCase) Update(ctx context.Context, t schema.Table, id int64, body map[string]any) (entity.Record, error) {
	rec, err := buildRecord(t, body, uc.now(), false)
	if err != nil {
		return nil, err
	}
	ok, err := uc.records.Update(ctx, t, id, rec)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	return uc.Get(ctx, t, id)
}

// Delete elimina una fila.
func (uc *RecordUseCase) Delete(ctx context.Context, t schema.Table, id int64) error {
	ok, err := uc.records.Delete(ctx, t, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}
