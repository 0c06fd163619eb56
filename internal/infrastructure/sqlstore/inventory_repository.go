package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/foodtruck-api/internal/domain/entity"
	"github.com/jhoicas/foodtruck-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository.
type InventoryRepo struct {
	q Querier
	d Dialect
}

// NewInventoryRepository construye el repositorio.
func NewInventoryRepository(q Querier, d Dialect) *InventoryRepo {
	return &InventoryRepo{q: q, d: d}
}

const inventoryColumns = `id, ingredient_id, COALESCE(name, '') AS name, COALESCE(unit, '') AS unit,
	COALESCE(category, '') AS category, COALESCE(current_stock, 0) AS current_stock,
	COALESCE(min_stock, 0) AS min_stock, COALESCE(max_stock, 0) AS max_stock,
	COALESCE(unit_cost, 0) AS unit_cost, COALESCE(barcode, '') AS barcode, created_at, updated_at`

func (r *InventoryRepo) Create(ctx context.Context, item *entity.InventoryItem) error {
	id, err := insertReturningID(ctx, r.q, `
		INSERT INTO inventory (ingredient_id, name, unit, category, current_stock, min_stock, max_stock, unit_cost, barcode, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.IngredientID, item.Name, item.Unit, item.Category, item.CurrentStock, item.MinStock,
		item.MaxStock, item.UnitCost, item.Barcode, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory: %w", err)
	}
	item.ID = id
	return nil
}

func (r *InventoryRepo) GetByID(ctx context.Context, id int64) (*entity.InventoryItem, error) {
	return r.get(ctx, `SELECT `+inventoryColumns+` FROM inventory WHERE id = ?`, id)
}

// GetForUpdate bloquea la fila (SELECT FOR UPDATE) en PostgreSQL; en SQLite la
// transacción ya tiene la única conexión.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, id int64) (*entity.InventoryItem, error) {
	return r.get(ctx, `SELECT `+inventoryColumns+` FROM inventory WHERE id = ?`+r.d.ForUpdate(), id)
}

func (r *InventoryRepo) get(ctx context.Context, query string, args ...interface{}) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	err := r.q.GetContext(ctx, &item, r.q.Rebind(query), args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &item, nil
}

func (r *InventoryRepo) List(ctx context.Context) ([]*entity.InventoryItem, error) {
	var items []*entity.InventoryItem
	if err := r.q.SelectContext(ctx, &items, `SELECT `+inventoryColumns+` FROM inventory ORDER BY name, id`); err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	return items, nil
}

func (r *InventoryRepo) ListBelowMinimum(ctx context.Context) ([]*entity.InventoryItem, error) {
	var items []*entity.InventoryItem
	err := r.q.SelectContext(ctx, &items, `SELECT `+inventoryColumns+` FROM inventory
		WHERE COALESCE(current_stock, 0) < COALESCE(min_stock, 0)
		ORDER BY (COALESCE(min_stock, 0) - COALESCE(current_stock, 0)) DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("list inventory below minimum: %w", err)
	}
	return items, nil
}

func (r *InventoryRepo) Update(ctx context.Context, item *entity.InventoryItem) error {
	_, err := r.q.ExecContext(ctx, r.q.Rebind(`
		UPDATE inventory SET ingredient_id = ?, name = ?, unit = ?, category = ?, current_stock = ?,
			min_stock = ?, max_stock = ?, unit_cost = ?, barcode = ?, updated_at = ?
		WHERE id = ?`),
		item.IngredientID, item.Name, item.Unit, item.Category, item.CurrentStock,
		item.MinStock, item.MaxStock, item.UnitCost, item.Barcode, item.UpdatedAt, item.ID,
	)
	if err != nil {
		return fmt.Errorf("update inventory: %w", err)
	}
	return nil
}

func (r *InventoryRepo) UpdateStock(ctx context.Context, id int64, stock, unitCost decimal.Decimal, at time.Time) error {
	_, err := r.q.ExecContext(ctx, r.q.Rebind(`UPDATE inventory SET current_stock = ?, unit_cost = ?, updated_at = ? WHERE id = ?`),
		stock, unitCost, at, id)
	if err != nil {
		return fmt.Errorf("update inventory stock: %w", err)
	}
	return nil
}

func (r *InventoryRepo) Delete(ctx context.Context, id int64) (bool, error) {
	ok, err := execAffected(ctx, r.q, `DELETE FROM inventory WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete inventory: %w", err)
	}
	return ok, nil
}

func (r *InventoryRepo) DeleteByIngredient(ctx context.Context, ingredientID int64) (int64, error) {
	res, err := r.q.ExecContext(ctx, r.q.Rebind(`DELETE FROM inventory WHERE ingredient_id = ?`), ingredientID)
	if err != nil {
		return 0, fmt.Errorf("delete inventory by ingredient: %w", err)
	}
	return res.RowsAffected()
}
