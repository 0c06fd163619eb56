package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/foodtruck-api/internal/domain"
	"github.com/jhoicas/foodtruck-api/internal/domain/entity"
	"github.com/jhoicas/foodtruck-api/internal/domain/repository"
	"github.com/jhoicas/foodtruck-api/internal/domain/schema"
)

// ArchiveUseCase mueve filas de eventos y catering entre la tabla viva y su tabla
// de archivados. Cada movimiento es una copia más un borrado en la misma transacción.
type ArchiveUseCase struct {
	txRunner TxRunner
	records  repository.RecordRepository
	now      func() time.Time
}

// NewArchiveUseCase construye el caso de uso.
func NewArchiveUseCase(txRunner TxRunner, records repository.RecordRepository) *ArchiveUseCase {
	return &ArchiveUseCase{txRunner: txRunner, records: records, now: func() time.Time { return time.Now().UTC() }}
}

func archiveOf(t schema.Table) (schema.Table, error) {
	a, ok := t.Archive()
	if !ok {
		return schema.Table{}, domain.Invalid("resource", t.Name+" no admite archivado")
	}
	return a, nil
}

// Archive copia la fila id de t a su tabla de archivados con original_id y
// archived_date y la elimina de t. Devuelve la fila archivada.
func (uc *ArchiveUseCase) Archive(ctx context.Context, t schema.Table, id int64) (entity.Record, error) {
	arch, err := archiveOf(t)
	if err != nil {
		return nil, err
	}
	var out entity.Record
	err = uc.txRunner.Run(ctx, func(r repository.Repos) error {
		live, err := r.Records.Get(ctx, t, id)
		if err != nil {
			return err
		}
		if live == nil {
			return domain.ErrNotFound
		}
		row := entity.Record{}
		for _, c := range t.Columns {
			row[c.Name] = live[c.Name]
		}
		row[schema.ColOriginalID] = id
		row[schema.ColArchivedDate] = uc.now()

		archID, err := r.Records.Insert(ctx, arch, row)
		if err != nil {
			return err
		}
		if _, err := r.Records.Delete(ctx, t, id); err != nil {
			return err
		}
		out, err = r.Records.Get(ctx, arch, archID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Restore reinserta la fila archivada en t con id = original_id y la elimina del
// archivo. Si el id ya está ocupado en t devuelve ErrConflict.
func (uc *ArchiveUseCase) Restore(ctx context.Context, t schema.Table, archiveID int64) (entity.Record, error) {
	arch, err := archiveOf(t)
	if err != nil {
		return nil, err
	}
	var out entity.Record
	err = uc.txRunner.Run(ctx, func(r repository.Repos) error {
		a, err := r.Records.Get(ctx, arch, archiveID)
		if err != nil {
			return err
		}
		if a == nil {
			return domain.ErrNotFound
		}
		row := entity.Record{}
		for _, c := range t.Columns {
			row[c.Name] = a[c.Name]
		}
		if origID, ok := a[schema.ColOriginalID].(int64); ok && origID > 0 {
			existing, err := r.Records.Get(ctx, t, origID)
			if err != nil {
				return err
			}
			if existing != nil {
				return domain.ErrConflict
			}
			row["id"] = origID
		}
		id, err := r.Records.Insert(ctx, t, row)
		if err != nil {
			return err
		}
		if _, err := r.Records.Delete(ctx, arch, archiveID); err != nil {
			return err
		}
		out, err = r.Records.Get(ctx, t, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListArchived lista las filas archivadas de t, más recientes primero.
func (uc *ArchiveUseCase) ListArchived(ctx context.Context, t schema.Table) ([]entity.Record, error) {
	arch, err := archiveOf(t)
	if err != nil {
		return nil, err
	}
	return uc.records.List(ctx, arch, repository.RecordFilter{})
}

// GetArchived obtiene una fila archivada.
func (uc *ArchiveUseCase) GetArchived(ctx context.Context, t schema.Table, archiveID int64) (entity.Record, error) {
	arch, err := archiveOf(t)
	if err != nil {
		return nil, err
	}
	rec, err := uc.records.Get(ctx, arch, archiveID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	return rec, nil
}

// DeleteArchived elimina definitivamente una fila archivada.
func (uc *ArchiveUseCase) DeleteArchived(ctx context.Context, t schema.Table, archiveID int64) error {
	arch, err := archiveOf(t)
	if err != nil {
		return err
	}
	ok, err := uc.records.Delete(ctx, arch, archiveID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}
