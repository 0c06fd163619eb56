package repository

import (
	"context"
	"time"

	"github.com/jhoicas/foodtruck-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// InventoryRepository define el puerto de persistencia para artículos de inventario.
// Los métodos devuelven (nil, nil) cuando la fila no existe.
type InventoryRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id int64) (*entity.InventoryItem, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE donde exista).
	GetForUpdate(ctx context.Context, id int64) (*entity.InventoryItem, error)
	List(ctx context.Context) ([]*entity.InventoryItem, error)
	ListBelowMinimum(ctx context.Context) ([]*entity.InventoryItem, error)
	Update(ctx context.Context, item *entity.InventoryItem) error
	UpdateStock(ctx context.Context, id int64, stock, unitCost decimal.Decimal, at time.Time) error
	Delete(ctx context.Context, id int64) (bool, error)
	DeleteByIngredient(ctx context.Context, ingredientID int64) (int64, error)
}

// HistoryFilter filtros del historial de inventario.
type HistoryFilter struct {
	InventoryID int64 // 0 = todos
	Start       *time.Time
	End         *time.Time
	Limit       int
	Offset      int
}

// InventoryHistoryRepository historial inmutable (solo inserción y lectura).
type InventoryHistoryRepository interface {
	Create(ctx context.Context, h *entity.InventoryHistory) error
	List(ctx context.Context, f HistoryFilter) ([]*entity.InventoryHistory, error)
}

// WasteRepository registros de merma.
type WasteRepository interface {
	Create(ctx context.Context, w *entity.WasteEntry) error
	SetHistoryID(ctx context.Context, id, historyID int64) error
	GetByID(ctx context.Context, id int64) (*entity.WasteEntry, error)
	List(ctx context.Context, start, end *time.Time) ([]*entity.WasteEntry, error)
}
