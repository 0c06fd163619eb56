package inventory

import (
	"context"

	"github.com/jhoicas/foodtruck-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad del libro de stock: stock cacheado e historial se escriben juntos o no se escriben.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repos) error) error
}
