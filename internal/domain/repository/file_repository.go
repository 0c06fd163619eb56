package repository

import (
	"context"

	"github.com/jhoicas/foodtruck-api/internal/domain/entity"
)

// FileRepository metadatos de archivos subidos.
type FileRepository interface {
	Create(ctx context.Context, f *entity.StoredFile) error
	GetByID(ctx context.Context, id int64) (*entity.StoredFile, error)
	List(ctx context.Context, category string) ([]*entity.StoredFile, error)
	Update(ctx context.Context, f *entity.StoredFile) error
	Delete(ctx context.Context, id int64) (bool, error)
}
