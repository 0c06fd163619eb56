package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportQuery rango de fechas YYYY-MM-DD; End es inclusivo.
type ReportQuery struct {
	Start string `query:"start"`
	End   string `query:"end"`
}

// UsageRowDTO consumo agregado de un artículo.
type UsageRowDTO struct {
	ItemName     string          `json:"item_name"`
	Unit         string          `json:"unit"`
	TotalUsed    decimal.Decimal `json:"total_used"`
	TotalAdded   decimal.Decimal `json:"total_added"`
	Transactions int             `json:"transactions"`
}

// WasteRowDTO merma agregada de un artículo.
type WasteRowDTO struct {
	ItemName    string          `json:"item_name"`
	Unit        string          `json:"unit"`
	TotalWasted decimal.Decimal `json:"total_wasted"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	Entries     int             `json:"entries"`
}

// InventoryUsageReport respuesta de GET /api/reports/inventory-usage.
type InventoryUsageReport struct {
	Start time.Time     `json:"start"`
	End   time.Time     `json:"end"`
	Rows  []UsageRowDTO `json:"rows"`
}

// WasteReport respuesta de GET /api/reports/waste.
type WasteReport struct {
	Start     time.Time       `json:"start"`
	End       time.Time       `json:"end"`
	Rows      []WasteRowDTO   `json:"rows"`
	TotalCost decimal.Decimal `json:"total_cost"`
}

// ExportedFile contenido binario listo para descargar.
type ExportedFile struct {
	Filename    string
	ContentType string
	Data        []byte
}
