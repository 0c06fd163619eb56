package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// UsageRow agregado del historial por artículo (nombre + unidad).
type UsageRow struct {
	ItemName     string
	Unit         string
	TotalUsed    decimal.Decimal
	TotalAdded   decimal.Decimal
	Transactions int
}

// WasteRow agregado de mermas por artículo (nombre + unidad).
type WasteRow struct {
	ItemName    string
	Unit        string
	TotalWasted decimal.Decimal
	TotalCost   decimal.Decimal
	Entries     int
}

// ReportRepository consultas de solo lectura sobre el historial y las mermas.
// El rango es [start, end).
type ReportRepository interface {
	InventoryUsage(ctx context.Context, start, end time.Time) ([]UsageRow, error)
	WasteSummary(ctx context.Context, start, end time.Time) ([]WasteRow, error)
}
