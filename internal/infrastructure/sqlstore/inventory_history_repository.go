package sqlstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/foodtruck-api/internal/domain/entity"
	"github.com/jhoicas/foodtruck-api/internal/domain/repository"
)

var _ repository.InventoryHistoryRepository = (*InventoryHistoryRepo)(nil)

// InventoryHistoryRepo implementación de InventoryHistoryRepository (solo INSERT/SELECT).
type InventoryHistoryRepo struct {
	q Querier
	d Dialect
}

// NewInventoryHistoryRepository construye el repositorio.
func NewInventoryHistoryRepository(q Querier, d Dialect) *InventoryHistoryRepo {
	return &InventoryHistoryRepo{q: q, d: d}
}

func (r *InventoryHistoryRepo) Create(ctx context.Context, h *entity.InventoryHistory) error {
	id, err := insertReturningID(ctx, r.q, `
		INSERT INTO inventory_history (inventory_id, item_name, unit, change_amount, previous_stock, new_stock, change_type, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		h.InventoryID, h.ItemName, h.Unit, h.ChangeAmount, h.PreviousStock, h.NewStock, h.ChangeType, h.Notes, h.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory_history: %w", err)
	}
	h.ID = id
	return nil
}

func (r *InventoryHistoryRepo) List(ctx context.Context, f repository.HistoryFilter) ([]*entity.InventoryHistory, error) {
	var (
		where []string
		args  []interface{}
	)
	if f.InventoryID != 0 {
		where = append(where, "inventory_id = ?")
		args = append(args, f.InventoryID)
	}
	if f.Start != nil {
		where = append(where, "created_at >= ?")
		args = append(args, *f.Start)
	}
	if f.End != nil {
		where = append(where, "created_at < ?")
		args = append(args, *f.End)
	}

	query := `SELECT id, inventory_id, COALESCE(item_name, '') AS item_name, COALESCE(unit, '') AS unit,
		COALESCE(change_amount, 0) AS change_amount, COALESCE(previous_stock, 0) AS previous_stock,
		COALESCE(new_stock, 0) AS new_stock, COALESCE(change_type, '') AS change_type,
		COALESCE(notes, '') AS notes, created_at
		FROM inventory_history`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"
	if page, pageArgs := r.d.Page(f.Limit, f.Offset); page != "" {
		query += " " + page
		args = append(args, pageArgs...)
	}

	var out []*entity.InventoryHistory
	if err := r.q.SelectContext(ctx, &out, r.q.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list inventory_history: %w", err)
	}
	return out, nil
}
