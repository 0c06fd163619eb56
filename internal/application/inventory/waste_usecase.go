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

// WasteUseCase registra mermas. Cada merma descuenta su cantidad del stock y deja
// un registro de historial enlazado, todo en la misma transacción.
type WasteUseCase struct {
	txRunner TxRunner
	waste    repository.WasteRepository
	now      func() time.Time
}

// NewWasteUseCase construye el caso de uso.
func NewWasteUseCase(txRunner TxRunner, waste repository.WasteRepository) *WasteUseCase {
	return &WasteUseCase{
		txRunner: txRunner,
		waste:    waste,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Record registra la merma y aplica -amount al stock del artículo.
// La unidad por defecto es la del artículo y el costo por defecto amount * unit_cost.
func (uc *WasteUseCase) Record(ctx context.Context, in dto.CreateWasteRequest) (*dto.WasteResponse, error) {
	if in.InventoryID <= 0 {
		return nil, domain.Invalid("inventory_id", "es obligatorio")
	}
	if !in.Amount.IsPositive() {
		return nil, domain.Invalid("amount", "debe ser mayor que cero")
	}
	if in.Cost != nil && in.Cost.IsNegative() {
		return nil, domain.Invalid("cost", "no puede ser negativo")
	}
	reason := strings.TrimSpace(in.Reason)

	var (
		w        *entity.WasteEntry
		newStock decimal.Decimal
	)
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		item, err := r.Inventory.GetForUpdate(ctx, in.InventoryID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		now := uc.now()
		unit := strings.TrimSpace(in.Unit)
		if unit == "" {
			unit = item.Unit
		}
		cost := in.Amount.Mul(item.UnitCost).Round(2)
		if in.Cost != nil {
			cost = *in.Cost
		}
		w = &entity.WasteEntry{
			InventoryID: item.ID,
			ItemName:    item.Name,
			Amount:      in.Amount,
			Unit:        unit,
			Reason:      reason,
			Cost:        cost,
			Notes:       in.Notes,
			CreatedAt:   now,
		}
		if err := r.Waste.Create(ctx, w); err != nil {
			return err
		}

		notes := "Merma"
		if reason != "" {
			notes += ": " + reason
		}
		h, err := post(ctx, r, item, inventory.ApplyDelta(item.CurrentStock, in.Amount.Neg()), entity.ChangeTypeWaste, notes, nil, now)
		if err != nil {
			return err
		}
		if err := r.Waste.SetHistoryID(ctx, w.ID, h.ID); err != nil {
			return err
		}
		w.HistoryID = h.ID
		newStock = h.NewStock
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := toWasteResponse(w)
	out.NewStock = &newStock
	return &out, nil
}

// Get obtiene una merma.
func (uc *WasteUseCase) Get(ctx context.Context, id int64) (*dto.WasteResponse, error) {
	w, err := uc.waste.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	out := toWasteResponse(w)
	return &out, nil
}

// List lista mermas en [start, end), más recientes primero.
func (uc *WasteUseCase) List(ctx context.Context, start, end *time.Time) ([]dto.WasteResponse, error) {
	rows, err := uc.waste.List(ctx, start, end)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WasteResponse, 0, len(rows))
	for _, w := range rows {
		out = append(out, toWasteResponse(w))
	}
	return out, nil
}

func toWasteResponse(w *entity.WasteEntry) dto.WasteResponse {
	return dto.WasteResponse{
		ID:          w.ID,
		InventoryID: w.InventoryID,
		ItemName:    w.ItemName,
		Amount:      w.Amount,
		Unit:        w.Unit,
		Reason:      w.Reason,
		Cost:        w.Cost,
		Notes:       w.Notes,
		CreatedAt:   w.CreatedAt,
		HistoryID:   w.HistoryID,
	}
}
