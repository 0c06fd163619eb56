// Package pdf genera los reportes de inventario en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del negocio   │  Título + rango de fechas   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Artículo | Unidad | columnas del reporte            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES (solo mermas) + fecha de generación                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/foodtruck-api/internal/application/dto"
	"github.com/jhoicas/foodtruck-api/internal/application/usecase"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorStripe  = &props.Color{Red: 235, Green: 241, Blue: 247}
)

// column celda de la tabla: etiqueta, ancho en la grilla de 12 y alineación.
type column struct {
	label string
	size  int
	align align.Type
}

// ── Generator ─────────────────────────────────────────────────────────────────

var _ usecase.ReportRenderer = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa usecase.ReportRenderer usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

func (g *MarotoReportGenerator) Format() string      { return "pdf" }
func (g *MarotoReportGenerator) ContentType() string { return "application/pdf" }

// RenderUsage genera el reporte de consumo.
func (g *MarotoReportGenerator) RenderUsage(_ context.Context, h usecase.ReportHeader, r *dto.InventoryUsageReport) ([]byte, error) {
	cols := []column{
		{"Artículo", 5, align.Left},
		{"Unidad", 1, align.Center},
		{"Usado", 2, align.Right},
		{"Repuesto", 2, align.Right},
		{"Movs.", 2, align.Right},
	}
	cells := make([][]string, 0, len(r.Rows))
	for _, u := range r.Rows {
		cells = append(cells, []string{
			u.ItemName,
			u.Unit,
			formatQty(u.TotalUsed),
			formatQty(u.TotalAdded),
			strconv.Itoa(u.Transactions),
		})
	}
	return g.render(h, r.Start.Format("02/01/2006"), r.End.Format("02/01/2006"), cols, cells, nil)
}

// RenderWaste genera el reporte de mermas con el costo total al pie.
func (g *MarotoReportGenerator) RenderWaste(_ context.Context, h usecase.ReportHeader, r *dto.WasteReport) ([]byte, error) {
	cols := []column{
		{"Artículo", 5, align.Left},
		{"Unidad", 1, align.Center},
		{"Cantidad", 2, align.Right},
		{"Costo", 2, align.Right},
		{"Registros", 2, align.Right},
	}
	cells := make([][]string, 0, len(r.Rows))
	for _, w := range r.Rows {
		cells = append(cells, []string{
			w.ItemName,
			w.Unit,
			formatQty(w.TotalWasted),
			"$" + formatMoney(w.TotalCost),
			strconv.Itoa(w.Entries),
		})
	}
	total := totalRow("Costo total de mermas:", "$"+formatMoney(r.TotalCost))
	return g.render(h, r.Start.Format("02/01/2006"), r.End.Format("02/01/2006"), cols, cells, total)
}

func (g *MarotoReportGenerator) render(h usecase.ReportHeader, from, to string, cols []column, cells [][]string, footer core.Row) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(h.Title, true).
		WithAuthor(nonEmpty(h.BusinessName, "Food truck"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(h, from, to))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow(cols))
	if len(cells) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin movimientos en el período.", props.Text{
				Size: 8, Align: align.Center, Color: colorGray, Top: 2,
			}),
		)))
	}
	for i, c := range cells {
		m.AddRows(tableRow(cols, c, i%2 == 1))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	if footer != nil {
		m.AddRows(footer)
	}
	m.AddRows(row.New(6).Add(col.New(12).Add(
		text.New("Generado el "+h.GeneratedAt.Format("02/01/2006 15:04")+" UTC", props.Text{
			Size: 7, Color: colorGray, Top: 2, Align: align.Right,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: negocio (izq) y título + rango (der).
func headerRow(h usecase.ReportHeader, from, to string) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(h.BusinessName, "Food truck"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New(h.Title, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New(from+" al "+to, props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow(cols []column) core.Row {
	r := row.New(8)
	for _, c := range cols {
		r.Add(col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		})))
	}
	return r
}

func tableRow(cols []column, cells []string, striped bool) core.Row {
	r := row.New(7)
	for i, c := range cols {
		r.Add(col.New(c.size).Add(text.New(cells[i], props.Text{
			Size: 8, Align: c.align, Top: 1, Left: 1, Right: 1,
		})))
	}
	if striped {
		r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
	}
	return r
}

func totalRow(label, value string) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(4).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 2,
		})),
		col.New(2).Add(text.New(value, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatQty cantidad sin ceros sobrantes: 7.500 → "7.5".
func formatQty(d decimal.Decimal) string {
	return d.Round(3).String()
}

// formatMoney dos decimales con separador de miles: 1234.5 → "1,234.50".
func formatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-3:]
	n := len(intPart)
	buf := make([]byte, 0, n+n/3+3)
	if d.IsNegative() {
		buf = append(buf, '-')
	}
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return string(append(buf, frac...))
}
