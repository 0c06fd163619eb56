package repository

import (
	"context"

	"github.com/jhoicas/foodtruck-api/internal/domain/entity"
)

// SettingsRepository pares clave/valor.
type SettingsRepository interface {
	All(ctx context.Context) ([]*entity.Setting, error)
	Get(ctx context.Context, key string) (*entity.Setting, error)
	Upsert(ctx context.Context, s *entity.Setting) error
	Delete(ctx context.Context, key string) (bool, error)
}

// BusinessInfoRepository fila única con los datos del negocio.
type BusinessInfoRepository interface {
	Get(ctx context.Context) (*entity.BusinessInfo, error)
	Save(ctx context.Context, info *entity.BusinessInfo) error
}
