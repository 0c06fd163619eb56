package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// WasteEntry merma registrada; siempre descuenta Amount del stock del artículo.
type WasteEntry struct {
	ID          int64
	InventoryID int64
	ItemName    string
	Amount      decimal.Decimal
	Unit        string
	Reason      string
	Cost        decimal.Decimal
	Notes       string
	HistoryID   int64
	CreatedAt   time.Time
}
