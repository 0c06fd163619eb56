package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInventoryRequest body para POST /api/inventory.
// Name y Unit son obligatorios salvo que se envíe IngredientID.
type CreateInventoryRequest struct {
	IngredientID *int64          `json:"ingredient_id,omitempty"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	Category     string          `json:"category,omitempty"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	MaxStock     decimal.Decimal `json:"max_stock"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	Barcode      string          `json:"barcode,omitempty"`
	Notes        string          `json:"notes,omitempty"`
}

// UpdateInventoryRequest body para PUT /api/inventory/:id. Los campos ausentes
// conservan su valor; un cambio de current_stock pasa por el libro de stock.
type UpdateInventoryRequest struct {
	IngredientID *int64           `json:"ingredient_id,omitempty"`
	Name         *string          `json:"name,omitempty"`
	Unit         *string          `json:"unit,omitempty"`
	Category     *string          `json:"category,omitempty"`
	CurrentStock *decimal.Decimal `json:"current_stock,omitempty"`
	MinStock     *decimal.Decimal `json:"min_stock,omitempty"`
	MaxStock     *decimal.Decimal `json:"max_stock,omitempty"`
	UnitCost     *decimal.Decimal `json:"unit_cost,omitempty"`
	Barcode      *string          `json:"barcode,omitempty"`
	ChangeType   string           `json:"change_type,omitempty"`
	Notes        string           `json:"notes,omitempty"`
}

// AdjustStockRequest body para POST /api/inventory/:id/adjust.
// UnitCost, si viene en una entrada (delta > 0), recalcula el costo promedio ponderado.
type AdjustStockRequest struct {
	Delta      decimal.Decimal  `json:"delta"`
	ChangeType string           `json:"change_type"`
	Notes      string           `json:"notes,omitempty"`
	UnitCost   *decimal.Decimal `json:"unit_cost,omitempty"`
}

// AdjustStockResponse resultado de un movimiento del libro de stock.
type AdjustStockResponse struct {
	InventoryID   int64           `json:"inventory_id"`
	PreviousStock decimal.Decimal `json:"previous_stock"`
	NewStock      decimal.Decimal `json:"new_stock"`
	ChangeAmount  decimal.Decimal `json:"change_amount"`
	HistoryID     int64           `json:"history_id"`
}

// InventoryItemResponse artículo de inventario.
type InventoryItemResponse struct {
	ID           int64           `json:"id"`
	IngredientID *int64          `json:"ingredient_id"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	Category     string          `json:"category"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	MaxStock     decimal.Decimal `json:"max_stock"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	Barcode      string          `json:"barcode"`
	BelowMinimum bool            `json:"below_minimum"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	// HistoryID registro de historial generado por la operación (0 si no hubo cambio de stock).
	HistoryID int64 `json:"history_id,omitempty"`
}

// InventoryHistoryResponse registro del historial (también "transacción de inventario").
type InventoryHistoryResponse struct {
	ID            int64           `json:"id"`
	InventoryID   int64           `json:"inventory_id"`
	ItemName      string          `json:"item_name"`
	Unit          string          `json:"unit"`
	ChangeAmount  decimal.Decimal `json:"change_amount"`
	PreviousStock decimal.Decimal `json:"previous_stock"`
	NewStock      decimal.Decimal `json:"new_stock"`
	ChangeType    string          `json:"change_type"`
	Notes         string          `json:"notes"`
	CreatedAt     time.Time       `json:"created_at"`
}

// HistoryQuery filtros de GET /api/inventory-history.
type HistoryQuery struct {
	InventoryID int64
	Start       *time.Time
	End         *time.Time // exclusivo
	PageRequest
}

// LowStockItemDTO artículo bajo mínimo con la cantidad sugerida de pedido.
type LowStockItemDTO struct {
	InventoryID    int64           `json:"inventory_id"`
	Name           string          `json:"name"`
	Unit           string          `json:"unit"`
	Category       string          `json:"category"`
	CurrentStock   decimal.Decimal `json:"current_stock"`
	MinStock       decimal.Decimal `json:"min_stock"`
	MaxStock       decimal.Decimal `json:"max_stock"`
	Deficit        decimal.Decimal `json:"deficit"`         // MinStock - CurrentStock
	SuggestedOrder decimal.Decimal `json:"suggested_order"` // hasta MaxStock (o MinStock si no hay máximo)
	UnitCost       decimal.Decimal `json:"unit_cost"`
	EstimatedCost  decimal.Decimal `json:"estimated_cost"` // SuggestedOrder * UnitCost
	Priority       int             `json:"priority"`       // 1 = más urgente
}

// CreateWasteRequest body para POST /api/waste-log.
type CreateWasteRequest struct {
	InventoryID int64            `json:"inventory_id"`
	Amount      decimal.Decimal  `json:"amount"`
	Unit        string           `json:"unit,omitempty"`
	Reason      string           `json:"reason"`
	Cost        *decimal.Decimal `json:"cost,omitempty"`
	Notes       string           `json:"notes,omitempty"`
}

// WasteResponse merma registrada junto con el efecto en el stock.
// NewStock solo se informa al crear la merma.
type WasteResponse struct {
	ID          int64            `json:"id"`
	InventoryID int64            `json:"inventory_id"`
	ItemName    string           `json:"item_name"`
	Amount      decimal.Decimal  `json:"amount"`
	Unit        string           `json:"unit"`
	Reason      string           `json:"reason"`
	Cost        decimal.Decimal  `json:"cost"`
	Notes       string           `json:"notes"`
	CreatedAt   time.Time        `json:"created_at"`
	HistoryID   int64            `json:"history_id"`
	NewStock    *decimal.Decimal `json:"new_stock,omitempty"`
}
