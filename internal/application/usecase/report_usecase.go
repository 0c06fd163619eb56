package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/foodtruck-api/internal/application/dto"
	"github.com/jhoicas/foodtruck-api/internal/domain"
	"github.com/jhoicas/foodtruck-api/internal/domain/repository"
)

const (
	dateLayout         = "2006-01-02"
	defaultReportRange = 30 // días
)

// Reportes exportables.
const (
	ReportInventoryUsage = "inventory-usage"
	ReportWaste          = "waste"
)

// BusinessNamer fuente del nombre del negocio para los encabezados.
type BusinessNamer interface {
	BusinessInfo(ctx context.Context) (*dto.BusinessInfoResponse, error)
}

// ReportUseCase reportes de consumo y mermas, en JSON o exportados.
type ReportUseCase struct {
	reports   repository.ReportRepository
	business  BusinessNamer
	renderers map[string]ReportRenderer
	now       func() time.Time
}

// NewReportUseCase construye el caso de uso con los formatos de exportación disponibles.
func NewReportUseCase(reports repository.ReportRepository, business BusinessNamer, renderers ...ReportRenderer) *ReportUseCase {
	m := make(map[string]ReportRenderer, len(renderers))
	for _, r := range renderers {
		m[r.Format()] = r
	}
	return &ReportUseCase{
		reports:   reports,
		business:  business,
		renderers: m,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ParseRange convierte start/end (YYYY-MM-DD, end inclusivo) en [start, end).
// Sin fechas devuelve los últimos 30 días incluyendo hoy.
func ParseRange(q dto.ReportQuery, now time.Time) (time.Time, time.Time, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	end := today.AddDate(0, 0, 1)
	if s := strings.TrimSpace(q.End); s != "" {
		d, err := time.Parse(dateLayout, s)
		if err != nil {
			return time.Time{}, time.Time{}, domain.Invalid("end", "formato esperado YYYY-MM-DD")
		}
		end = d.AddDate(0, 0, 1)
	}
	start := end.AddDate(0, 0, -defaultReportRange)
	if s := strings.TrimSpace(q.Start); s != "" {
		d, err := time.Parse(dateLayout, s)
		if err != nil {
			return time.Time{}, time.Time{}, domain.Invalid("start", "formato esperado YYYY-MM-DD")
		}
		start = d
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, domain.Invalid("start", "debe ser anterior o igual a end")
	}
	return start, end, nil
}

// InventoryUsage consumo y reposición por artículo en el rango.
func (uc *ReportUseCase) InventoryUsage(ctx context.Context, q dto.ReportQuery) (*dto.InventoryUsageReport, error) {
	start, end, err := ParseRange(q, uc.now())
	if err != nil {
		return nil, err
	}
	rows, err := uc.reports.InventoryUsage(ctx, start, end)
	if err != nil {
		return nil, err
	}
	out := &dto.InventoryUsageReport{Start: start, End: end.AddDate(0, 0, -1), Rows: make([]dto.UsageRowDTO, 0, len(rows))}
	for _, r := range rows {
		out.Rows = append(out.Rows, dto.UsageRowDTO{
			ItemName:     r.ItemName,
			Unit:         r.Unit,
			TotalUsed:    r.TotalUsed,
			TotalAdded:   r.TotalAdded,
			Transactions: r.Transactions,
		})
	}
	return out, nil
}

// Waste mermas por artículo en el rango, con el costo total.
func (uc *ReportUseCase) Waste(ctx context.Context, q dto.ReportQuery) (*dto.WasteReport, error) {
	start, end, err := ParseRange(q, uc.now())
	if err != nil {
		return nil, err
	}
	rows, err := uc.reports.WasteSummary(ctx, start, end)
	if err != nil {
		return nil, err
	}
	out := &dto.WasteReport{
		Start:     start,
		End:       end.AddDate(0, 0, -1),
		Rows:      make([]dto.WasteRowDTO, 0, len(rows)),
		TotalCost: decimal.Zero,
	}
	for _, r := range rows {
		out.Rows = append(out.Rows, dto.WasteRowDTO{
			ItemName:    r.ItemName,
			Unit:        r.Unit,
			TotalWasted: r.TotalWasted,
			TotalCost:   r.TotalCost,
			Entries:     r.Entries,
		})
		out.TotalCost = out.TotalCost.Add(r.TotalCost)
	}
	return out, nil
}

// Export genera el reporte indicado en el formato pedido (pdf | xlsx).
func (uc *ReportUseCase) Export(ctx context.Context, report, format string, q dto.ReportQuery) (*dto.ExportedFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "pdf"
	}
	renderer, ok := uc.renderers[format]
	if !ok {
		return nil, domain.Invalid("format", "formato no soportado")
	}
	h := ReportHeader{GeneratedAt: uc.now()}
	if info, err := uc.business.BusinessInfo(ctx); err == nil && info != nil {
		h.BusinessName = info.BusinessName
	}

	var (
		data  []byte
		start time.Time
		err   error
	)
	switch report {
	case ReportInventoryUsage:
		h.Title = "Consumo de inventario"
		var r *dto.InventoryUsageReport
		if r, err = uc.InventoryUsage(ctx, q); err != nil {
			return nil, err
		}
		start = r.Start
		data, err = renderer.RenderUsage(ctx, h, r)
	case ReportWaste:
		h.Title = "Mermas"
		var r *dto.WasteReport
		if r, err = uc.Waste(ctx, q); err != nil {
			return nil, err
		}
		start = r.Start
		data, err = renderer.RenderWaste(ctx, h, r)
	default:
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("exportar %s: %w", report, err)
	}
	return &dto.ExportedFile{
		Filename:    fmt.Sprintf("%s-%s.%s", report, start.Format(dateLayout), format),
		ContentType: renderer.ContentType(),
		Data:        data,
	}, nil
}
