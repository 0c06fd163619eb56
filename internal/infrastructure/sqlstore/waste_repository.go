package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/foodtruck-api/internal/domain/entity"
	"github.com/jhoicas/foodtruck-api/internal/domain/repository"
)

var _ repository.WasteRepository = (*WasteRepo)(nil)

// WasteRepo implementación de WasteRepository.
type WasteRepo struct {
	q Querier
}

// NewWasteRepository construye el repositorio.
func NewWasteRepository(q Querier) *WasteRepo {
	return &WasteRepo{q: q}
}

const wasteColumns = `id, inventory_id, COALESCE(item_name, '') AS item_name, COALESCE(amount, 0) AS amount,
	COALESCE(unit, '') AS unit, COALESCE(reason, '') AS reason, COALESCE(cost, 0) AS cost,
	COALESCE(notes, '') AS notes, COALESCE(history_id, 0) AS history_id, created_at`

func (r *WasteRepo) Create(ctx context.Context, w *entity.WasteEntry) error {
	id, err := insertReturningID(ctx, r.q, `
		INSERT INTO waste_log (inventory_id, item_name, amount, unit, reason, cost, notes, history_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		w.InventoryID, w.ItemName, w.Amount, w.Unit, w.Reason, w.Cost, w.Notes, nullID(w.HistoryID), w.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert waste_log: %w", err)
	}
	w.ID = id
	return nil
}

// SetHistoryID enlaza la merma con su registro de historial.
func (r *WasteRepo) SetHistoryID(ctx context.Context, id, historyID int64) error {
	if _, err := r.q.ExecContext(ctx, r.q.Rebind(`UPDATE waste_log SET history_id = ? WHERE id = ?`), historyID, id); err != nil {
		return fmt.Errorf("update waste_log: %w", err)
	}
	return nil
}

func (r *WasteRepo) GetByID(ctx context.Context, id int64) (*entity.WasteEntry, error) {
	var w entity.WasteEntry
	err := r.q.GetContext(ctx, &w, r.q.Rebind(`SELECT `+wasteColumns+` FROM waste_log WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get waste_log: %w", err)
	}
	return &w, nil
}

func (r *WasteRepo) List(ctx context.Context, start, end *time.Time) ([]*entity.WasteEntry, error) {
	var (
		where []string
		args  []interface{}
	)
	if start != nil {
		where = append(where, "created_at >= ?")
		args = append(args, *start)
	}
	if end != nil {
		where = append(where, "created_at < ?")
		args = append(args, *end)
	}
	query := `SELECT ` + wasteColumns + ` FROM waste_log`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	var out []*entity.WasteEntry
	if err := r.q.SelectContext(ctx, &out, r.q.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list waste_log: %w", err)
	}
	return out, nil
}

func nullID(id int64) interface{} {
	if id == 0 {
		return nil
	}
	return id
}
