package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/foodtruck-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para los reportes de consumo y mermas.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// InventoryUsage agrupa el historial por nombre y unidad del artículo.
// Los deltas negativos suman en total_used y los positivos en total_added.
func (r *ReportRepo) InventoryUsage(ctx context.Context, start, end time.Time) ([]repository.UsageRow, error) {
	const query = `
	SELECT
	    COALESCE(item_name, '')                                               AS item_name,
	    COALESCE(unit, '')                                                    AS unit,
	    COALESCE(SUM(CASE WHEN change_amount < 0 THEN -change_amount ELSE 0 END), 0) AS total_used,
	    COALESCE(SUM(CASE WHEN change_amount > 0 THEN change_amount ELSE 0 END), 0)  AS total_added,
	    COUNT(*)                                                              AS transactions
	FROM inventory_history
	WHERE created_at >= ? AND created_at < ?
	GROUP BY COALESCE(item_name, ''), COALESCE(unit, '')
	ORDER BY total_used DESC, item_name`

	var rows []repository.UsageRow
	if err := r.q.SelectContext(ctx, &rows, r.q.Rebind(query), start, end); err != nil {
		return nil, fmt.Errorf("inventory usage: %w", err)
	}
	return rows, nil
}

// WasteSummary agrupa las mermas por nombre y unidad del artículo.
func (r *ReportRepo) WasteSummary(ctx context.Context, start, end time.Time) ([]repository.WasteRow, error) {
	const query = `
	SELECT
	    COALESCE(item_name, '')        AS item_name,
	    COALESCE(unit, '')             AS unit,
	    COALESCE(SUM(amount), 0)       AS total_wasted,
	    COALESCE(SUM(cost), 0)         AS total_cost,
	    COUNT(*)                       AS entries
	FROM waste_log
	WHERE created_at >= ? AND created_at < ?
	GROUP BY COALESCE(item_name, ''), COALESCE(unit, '')
	ORDER BY total_wasted DESC, item_name`

	var rows []repository.WasteRow
	if err := r.q.SelectContext(ctx, &rows, r.q.Rebind(query), start, end); err != nil {
		return nil, fmt.Errorf("waste summary: %w", err)
	}
	return rows, nil
}
