package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de cambio registrados en el historial de inventario.
const (
	ChangeTypeInitial    = "initial"
	ChangeTypeAdjustment = "adjustment"
	ChangeTypeRestock    = "restock"
	ChangeTypeUsed       = "used"
	ChangeTypeWaste      = "waste"
)

// InventoryHistory registro inmutable de un cambio de stock (también expuesto como transacción).
type InventoryHistory struct {
	ID            int64
	InventoryID   int64
	ItemName      string
	Unit          string
	ChangeAmount  decimal.Decimal // positivo entrada, negativo consumo/merma
	PreviousStock decimal.Decimal
	NewStock      decimal.Decimal
	ChangeType    string
	Notes         string
	CreatedAt     time.Time
}
