package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/foodtruck-api/internal/application/dto"
	"github.com/jhoicas/foodtruck-api/internal/domain/inventory"
	"github.com/jhoicas/foodtruck-api/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición del food truck.
type ReplenishmentUseCase struct {
	items repository.InventoryRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(items repository.InventoryRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{items: items}
}

// LowStock devuelve los artículos con current_stock < min_stock, con la cantidad
// sugerida para volver al máximo y su costo estimado. Orden: mayor déficit
// relativo al mínimo primero, luego mayor costo estimado.
func (uc *ReplenishmentUseCase) LowStock(ctx context.Context) ([]dto.LowStockItemDTO, error) {
	rawItems, err := uc.items.ListBelowMinimum(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LowStockItemDTO, 0, len(rawItems))
	for _, item := range rawItems {
		suggested := inventory.SuggestedOrder(item.CurrentStock, item.MinStock, item.MaxStock)
		out = append(out, dto.LowStockItemDTO{
			InventoryID:    item.ID,
			Name:           item.Name,
			Unit:           item.Unit,
			Category:       item.Category,
			CurrentStock:   item.CurrentStock,
			MinStock:       item.MinStock,
			MaxStock:       item.MaxStock,
			Deficit:        item.MinStock.Sub(item.CurrentStock),
			SuggestedOrder: suggested,
			UnitCost:       item.UnitCost,
			EstimatedCost:  suggested.Mul(item.UnitCost).Round(2),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		ra, rb := relativeDeficit(a), relativeDeficit(b)
		if !ra.Equal(rb) {
			return ra.GreaterThan(rb)
		}
		return a.EstimatedCost.GreaterThan(b.EstimatedCost)
	})
	for i := range out {
		out[i].Priority = i + 1
	}
	return out, nil
}

// relativeDeficit déficit como fracción del mínimo; con mínimo 0 (stock negativo) cuenta como 1.
func relativeDeficit(it dto.LowStockItemDTO) decimal.Decimal {
	if !it.MinStock.IsPositive() {
		return decimal.NewFromInt(1)
	}
	return it.Deficit.Div(it.MinStock)
}
