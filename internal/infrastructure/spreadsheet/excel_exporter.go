// Package spreadsheet exporta los reportes de inventario a XLSX.
package spreadsheet

import (
	"bytes"
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/foodtruck-api/internal/application/dto"
	"github.com/jhoicas/foodtruck-api/internal/application/usecase"
)

const sheetName = "Reporte"

var _ usecase.ReportRenderer = (*ExcelExporter)(nil)

// ExcelExporter implementa usecase.ReportRenderer con excelize.
type ExcelExporter struct{}

// NewExcelExporter construye el exportador.
func NewExcelExporter() *ExcelExporter { return &ExcelExporter{} }

func (e *ExcelExporter) Format() string { return "xlsx" }

func (e *ExcelExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// RenderUsage una fila por artículo: nombre, unidad, usado, repuesto, movimientos.
func (e *ExcelExporter) RenderUsage(_ context.Context, h usecase.ReportHeader, r *dto.InventoryUsageReport) ([]byte, error) {
	rows := make([][]any, 0, len(r.Rows))
	for _, u := range r.Rows {
		rows = append(rows, []any{u.ItemName, u.Unit, toFloat(u.TotalUsed), toFloat(u.TotalAdded), u.Transactions})
	}
	headers := []string{"Artículo", "Unidad", "Usado", "Repuesto", "Movimientos"}
	return render(h, r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"), headers, rows, nil)
}

// RenderWaste una fila por artículo y una fila final con el costo total.
func (e *ExcelExporter) RenderWaste(_ context.Context, h usecase.ReportHeader, r *dto.WasteReport) ([]byte, error) {
	rows := make([][]any, 0, len(r.Rows))
	for _, w := range r.Rows {
		rows = append(rows, []any{w.ItemName, w.Unit, toFloat(w.TotalWasted), toFloat(w.TotalCost), w.Entries})
	}
	headers := []string{"Artículo", "Unidad", "Cantidad", "Costo", "Registros"}
	total := []any{"Total", "", "", toFloat(r.TotalCost), ""}
	return render(h, r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"), headers, rows, total)
}

func render(h usecase.ReportHeader, from, to string, headers []string, rows [][]any, total []any) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	title := h.Title
	if h.BusinessName != "" {
		title = h.BusinessName + " - " + h.Title
	}
	if err := f.SetCellValue(sheetName, "A1", title); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(sheetName, "A2", from+" a "+to); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheetName, "A1", "A1", bold); err != nil {
		return nil, err
	}

	const headerRow = 4
	for i, name := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			return nil, err
		}
	}
	first, _ := excelize.CoordinatesToCellName(1, headerRow)
	last, _ := excelize.CoordinatesToCellName(len(headers), headerRow)
	if err := f.SetCellStyle(sheetName, first, last, bold); err != nil {
		return nil, err
	}

	next := headerRow + 1
	for _, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, next)
		if err := f.SetSheetRow(sheetName, cell, &r); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", next, err)
		}
		next++
	}
	if total != nil {
		cell, _ := excelize.CoordinatesToCellName(1, next)
		if err := f.SetSheetRow(sheetName, cell, &total); err != nil {
			return nil, fmt.Errorf("xlsx: fila de total: %w", err)
		}
		end, _ := excelize.CoordinatesToCellName(len(total), next)
		if err := f.SetCellStyle(sheetName, cell, end, bold); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(sheetName, "A", "A", 32); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Round(4).Float64()
	return f
}
