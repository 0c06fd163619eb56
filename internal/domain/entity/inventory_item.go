package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultInventoryCategory categoría asignada cuando el cliente no envía una.
const DefaultInventoryCategory = "Other"

// InventoryItem artículo de inventario con su stock actual cacheado.
// CurrentStock es el total acumulado escrito en cada mutación del libro de stock.
type InventoryItem struct {
	ID           int64
	IngredientID *int64 // vínculo opcional con un ingrediente de recetas
	Name         string
	Unit         string
	Category     string
	CurrentStock decimal.Decimal
	MinStock     decimal.Decimal
	MaxStock     decimal.Decimal
	UnitCost     decimal.Decimal // costo promedio ponderado por unidad de stock
	Barcode      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// BelowMinimum indica si el stock actual está por debajo del mínimo configurado.
func (i *InventoryItem) BelowMinimum() bool {
	return i.CurrentStock.LessThan(i.MinStock)
}
