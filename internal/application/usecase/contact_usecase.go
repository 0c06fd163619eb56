package usecase

import (
	"context"

	"github.com/jhoicas/foodtruck-api/internal/application/dto"
	"github.com/jhoicas/foodtruck-api/internal/domain"
	"github.com/jhoicas/foodtruck-api/internal/domain/entity"
	"github.com/jhoicas/foodtruck-api/internal/domain/repository"
	"github.com/jhoicas/foodtruck-api/internal/domain/schema"
)

// ContactUseCase consultas compuestas sobre contactos.
type ContactUseCase struct {
	records repository.RecordRepository
}

// NewContactUseCase construye el caso de uso.
func NewContactUseCase(records repository.RecordRepository) *ContactUseCase {
	return &ContactUseCase{records: records}
}

// History devuelve eventos y pedidos de catering (vivos y archivados) del contacto.
func (uc *ContactUseCase) History(ctx context.Context, contactID int64) (*dto.ContactHistoryResponse, error) {
	contact, err := uc.records.Get(ctx, schema.MustLookup(schema.TableContacts), contactID)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, domain.ErrNotFound
	}
	out := &dto.ContactHistoryResponse{Contact: contact}
	for _, q := range []struct {
		table string
		dest  *[]entity.Record
	}{
		{schema.TableEvents, &out.Events},
		{schema.TableCatering, &out.Catering},
		{schema.TableArchivedEvents, &out.ArchivedEvents},
		{schema.TableArchivedCatering, &out.ArchivedCatering},
	} {
		rows, err := uc.records.List(ctx, schema.MustLookup(q.table), repository.RecordFilter{Column: "contact_id", Value: contactID})
		if err != nil {
			return nil, err
		}
		*q.dest = rows
	}
	return out, nil
}
