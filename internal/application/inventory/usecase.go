package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/foodtruck-api/internal/application/dto"
	"github.com/jhoicas/foodtruck-api/internal/domain"
	"github.com/jhoicas/foodtruck-api/internal/domain/entity"
	"github.com/jhoicas/foodtruck-api/internal/domain/inventory"
	"github.com/jhoicas/foodtruck-api/internal/domain/repository"
)

// LedgerUseCase mantiene el stock cacheado de cada artículo sincronizado con el
// historial append-only. Toda mutación de stock corre en una transacción con la
// fila bloqueada (SELECT FOR UPDATE donde el motor lo soporte).
type LedgerUseCase struct {
	txRunner TxRunner
	items    repository.InventoryRepository
	history  repository.InventoryHistoryRepository
	ingreds  repository.IngredientRepository
	now      func() time.Time
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	items repository.InventoryRepository,
	history repository.InventoryHistoryRepository,
	ingreds repository.IngredientRepository,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner: txRunner,
		items:    items,
		history:  history,
		ingreds:  ingreds,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Adjust aplica un delta con signo al stock y registra el movimiento.
// new_stock = current_stock + delta, sin tope inferior.
func (uc *LedgerUseCase) Adjust(ctx context.Context, id int64, in dto.AdjustStockRequest) (*dto.AdjustStockResponse, error) {
	if in.Delta.IsZero() {
		return nil, domain.Invalid("delta", "debe ser distinto de cero")
	}
	if in.UnitCost != nil && in.UnitCost.IsNegative() {
		return nil, domain.Invalid("unit_cost", "no puede ser negativo")
	}
	changeType := strings.TrimSpace(in.ChangeType)
	if changeType == "" {
		changeType = entity.ChangeTypeAdjustment
	}

	var out *dto.AdjustStockResponse
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		item, err := r.Inventory.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		mv := inventory.ApplyDelta(item.CurrentStock, in.Delta)
		h, err := post(ctx, r, item, mv, changeType, in.Notes, in.UnitCost, uc.now())
		if err != nil {
			return err
		}
		out = &dto.AdjustStockResponse{
			InventoryID:   item.ID,
			PreviousStock: h.PreviousStock,
			NewStock:      h.NewStock,
			ChangeAmount:  h.ChangeAmount,
			HistoryID:     h.ID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// post escribe el stock nuevo y el registro de historial del movimiento mv.
// Con unitCost y delta positivo recalcula el costo promedio ponderado del artículo.
func post(
	ctx context.Context,
	r repository.Repos,
	item *entity.InventoryItem,
	mv inventory.Movement,
	changeType, notes string,
	unitCost *decimal.Decimal,
	now time.Time,
) (*entity.InventoryHistory, error) {
	cost := item.UnitCost
	if unitCost != nil && mv.Delta.IsPositive() {
		cost = inventory.CostCalculator(mv.Previous, item.UnitCost, mv.Delta, *unitCost)
	}
	if err := r.Inventory.UpdateStock(ctx, item.ID, mv.New, cost, now); err != nil {
		return nil, err
	}
	item.CurrentStock = mv.New
	item.UnitCost = cost
	item.UpdatedAt = now

	h := &entity.InventoryHistory{
		InventoryID:   item.ID,
		ItemName:      item.Name,
		Unit:          item.Unit,
		ChangeAmount:  mv.Delta,
		PreviousStock: mv.Previous,
		NewStock:      mv.New,
		ChangeType:    changeType,
		Notes:         notes,
		CreatedAt:     now,
	}
	if err := r.History.Create(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

// Create crea un artículo. Sin ingrediente vinculado, name y unit son obligatorios;
// con ingrediente, los campos vacíos se copian de él. Un stock inicial distinto
// de cero queda registrado como movimiento "initial".
func (uc *LedgerUseCase) Create(ctx context.Context, in dto.CreateInventoryRequest) (*dto.InventoryItemResponse, error) {
	name := strings.TrimSpace(in.Name)
	unit := strings.TrimSpace(in.Unit)
	if in.IngredientID != nil {
		ing, err := uc.ingreds.GetByID(ctx, *in.IngredientID)
		if err != nil {
			return nil, err
		}
		if ing == nil {
			return nil, domain.Invalid("ingredient_id", "el ingrediente no existe")
		}
		if name == "" {
			name = ing.Name
		}
		if unit == "" {
			unit = ing.Unit
		}
	}
	if name == "" {
		return nil, domain.Invalid("name", "es obligatorio")
	}
	if unit == "" {
		return nil, domain.Invalid("unit", "es obligatorio")
	}
	if err := validateLevels(in.MinStock, in.MaxStock, in.UnitCost); err != nil {
		return nil, err
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = entity.DefaultInventoryCategory
	}

	now := uc.now()
	item := &entity.InventoryItem{
		IngredientID: in.IngredientID,
		Name:         name,
		Unit:         unit,
		Category:     category,
		MinStock:     in.MinStock,
		MaxStock:     in.MaxStock,
		UnitCost:     in.UnitCost,
		Barcode:      strings.TrimSpace(in.Barcode),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var historyID int64
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		if err := r.Inventory.Create(ctx, item); err != nil {
			return err
		}
		mv := inventory.SetTo(decimal.Zero, in.CurrentStock)
		if !mv.Changed() {
			return nil
		}
		notes := in.Notes
		if notes == "" {
			notes = "Stock inicial"
		}
		h, err := post(ctx, r, item, mv, entity.ChangeTypeInitial, notes, nil, now)
		if err != nil {
			return err
		}
		historyID = h.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := toItemResponse(item)
	out.HistoryID = historyID
	return out, nil
}

// Update modifica los campos presentes en el body. Si current_stock cambia, el
// cambio se registra como movimiento (change_type por defecto "adjustment").
func (uc *LedgerUseCase) Update(ctx context.Context, id int64, in dto.UpdateInventoryRequest) (*dto.InventoryItemResponse, error) {
	changeType := strings.TrimSpace(in.ChangeType)
	if changeType == "" {
		changeType = entity.ChangeTypeAdjustment
	}
	if in.IngredientID != nil {
		ing, err := uc.ingreds.GetByID(ctx, *in.IngredientID)
		if err != nil {
			return nil, err
		}
		if ing == nil {
			return nil, domain.Invalid("ingredient_id", "el ingrediente no existe")
		}
	}

	var (
		out       *entity.InventoryItem
		historyID int64
	)
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		item, err := r.Inventory.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if err := applyFields(item, in); err != nil {
			return err
		}
		item.UpdatedAt = uc.now()
		if err := r.Inventory.Update(ctx, item); err != nil {
			return err
		}
		if in.CurrentStock != nil {
			mv := inventory.SetTo(item.CurrentStock, *in.CurrentStock)
			if mv.Changed() {
				h, err := post(ctx, r, item, mv, changeType, in.Notes, nil, item.UpdatedAt)
				if err != nil {
					return err
				}
				historyID = h.ID
			}
		}
		out = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toItemResponse(out)
	resp.HistoryID = historyID
	return resp, nil
}

func applyFields(item *entity.InventoryItem, in dto.UpdateInventoryRequest) error {
	if in.IngredientID != nil {
		item.IngredientID = in.IngredientID
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return domain.Invalid("name", "no puede quedar vacío")
		}
		item.Name = strings.TrimSpace(*in.Name)
	}
	if in.Unit != nil {
		if strings.TrimSpace(*in.Unit) == "" {
			return domain.Invalid("unit", "no puede quedar vacío")
		}
		item.Unit = strings.TrimSpace(*in.Unit)
	}
	if in.Category != nil {
		item.Category = strings.TrimSpace(*in.Category)
		if item.Category == "" {
			item.Category = entity.DefaultInventoryCategory
		}
	}
	if in.MinStock != nil {
		item.MinStock = *in.MinStock
	}
	if in.MaxStock != nil {
		item.MaxStock = *in.MaxStock
	}
	if in.UnitCost != nil {
		item.UnitCost = *in.UnitCost
	}
	if in.Barcode != nil {
		item.Barcode = strings.TrimSpace(*in.Barcode)
	}
	return validateLevels(item.MinStock, item.MaxStock, item.UnitCost)
}

func validateLevels(minStock, maxStock, unitCost decimal.Decimal) error {
	if minStock.IsNegative() {
		return domain.Invalid("min_stock", "no puede ser negativo")
	}
	if maxStock.IsNegative() {
		return domain.Invalid("max_stock", "no puede ser negativo")
	}
	if unitCost.IsNegative() {
		return domain.Invalid("unit_cost", "no puede ser negativo")
	}
	return nil
}

// Get obtiene un artículo.
func (uc *LedgerUseCase) Get(ctx context.Context, id int64) (*dto.InventoryItemResponse, error) {
	item, err := uc.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toItemResponse(item), nil
}

// List lista el inventario. Los artículos sin nombre toman el de su ingrediente.
func (uc *LedgerUseCase) List(ctx context.Context) ([]dto.InventoryItemResponse, error) {
	items, err := uc.items.List(ctx)
	if err != nil {
		return nil, err
	}
	var names map[int64]string
	out := make([]dto.InventoryItemResponse, 0, len(items))
	for _, item := range items {
		if item.Name == "" && item.IngredientID != nil {
			if names == nil {
				if names, err = uc.ingredientNames(ctx); err != nil {
					return nil, err
				}
			}
			item.Name = names[*item.IngredientID]
		}
		out = append(out, *toItemResponse(item))
	}
	return out, nil
}

func (uc *LedgerUseCase) ingredientNames(ctx context.Context) (map[int64]string, error) {
	ings, err := uc.ingreds.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(ings))
	for _, in := range ings {
		names[in.ID] = in.Name
	}
	return names, nil
}

// Delete elimina el artículo. El historial se conserva.
func (uc *LedgerUseCase) Delete(ctx context.Context, id int64) error {
	ok, err := uc.items.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// History lista movimientos, más recientes primero. Con InventoryID exige que el artículo exista.
func (uc *LedgerUseCase) History(ctx context.Context, q dto.HistoryQuery) ([]dto.InventoryHistoryResponse, error) {
	q.DefaultPage()
	if q.InventoryID != 0 {
		item, err := uc.items.GetByID(ctx, q.InventoryID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrNotFound
		}
	}
	rows, err := uc.history.List(ctx, repository.HistoryFilter{
		InventoryID: q.InventoryID,
		Start:       q.Start,
		End:         q.End,
		Limit:       q.Limit,
		Offset:      q.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryHistoryResponse, 0, len(rows))
	for _, h := range rows {
		out = append(out, toHistoryResponse(h))
	}
	return out, nil
}

func toItemResponse(item *entity.InventoryItem) *dto.InventoryItemResponse {
	return &dto.InventoryItemResponse{
		ID:           item.ID,
		IngredientID: item.IngredientID,
		Name:         item.Name,
		Unit:         item.Unit,
		Category:     item.Category,
		CurrentStock: item.CurrentStock,
		MinStock:     item.MinStock,
		MaxStock:     item.MaxStock,
		UnitCost:     item.UnitCost,
		Barcode:      item.Barcode,
		BelowMinimum: item.BelowMinimum(),
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}

func toHistoryResponse(h *entity.InventoryHistory) dto.InventoryHistoryResponse {
	return dto.InventoryHistoryResponse{
		ID:            h.ID,
		InventoryID:   h.InventoryID,
		ItemName:      h.ItemName,
		Unit:          h.Unit,
		ChangeAmount:  h.ChangeAmount,
		PreviousStock: h.PreviousStock,
		NewStock:      h.NewStock,
		ChangeType:    h.ChangeType,
		Notes:         h.Notes,
		CreatedAt:     h.CreatedAt,
	}
}
