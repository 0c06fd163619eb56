package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/foodtruck-api/internal/application/dto"
	"github.com/jhoicas/foodtruck-api/internal/domain"
	"github.com/jhoicas/foodtruck-api/internal/domain/entity"
	"github.com/jhoicas/foodtruck-api/internal/domain/repository"
)

var fixedNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type ledgerFixture struct {
	items   *mockInventoryRepo
	history *mockHistoryRepo
	ingreds *mockIngredientRepo
	tx      *fakeTx
	uc      *LedgerUseCase
}

func newLedgerFixture() *ledgerFixture {
	f := &ledgerFixture{
		items:   new(mockInventoryRepo),
		history: new(mockHistoryRepo),
		ingreds: new(mockIngredientRepo),
	}
	f.tx = &fakeTx{repos: repository.Repos{Inventory: f.items, History: f.history, Ingredients: f.ingreds}}
	f.uc = NewLedgerUseCase(f.tx, f.items, f.history, f.ingreds)
	f.uc.now = func() time.Time { return fixedNow }
	return f
}

func TestAdjust_AplicaDeltaYRegistraHistorial(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture()
	item := &entity.InventoryItem{ID: 7, Name: "Flour", Unit: "lb", CurrentStock: d("50"), UnitCost: d("2")}

	f.items.On("GetForUpdate", ctx, int64(7)).Return(item, nil)
	f.items.On("UpdateStock", ctx, int64(7), decEq("45"), decEq("2"), fixedNow).Return(nil)
	f.history.On("Create", ctx, mock.MatchedBy(func(h *entity.InventoryHistory) bool {
		return h.PreviousStock.Equal(d("50")) && h.NewStock.Equal(d("45")) &&
			h.ChangeAmount.Equal(d("-5")) && h.ChangeType == entity.ChangeTypeUsed
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.InventoryHistory).ID = 99
	}).Return(nil).Once()

	out, err := f.uc.Adjust(ctx, 7, dto.AdjustStockRequest{Delta: d("-5"), ChangeType: entity.ChangeTypeUsed})
	require.NoError(t, err)
	assert.True(t, out.NewStock.Equal(out.PreviousStock.Add(out.ChangeAmount)))
	assert.True(t, out.NewStock.Equal(d("45")))
	assert.Equal(t, int64(99), out.HistoryID)
	assert.Equal(t, 1, f.tx.runs)
	f.items.AssertExpectations(t)
	f.history.AssertExpectations(t)
}

func TestAdjust_PermiteStockNegativo(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture()
	item := &entity.InventoryItem{ID: 1, Name: "Eggs", Unit: "pcs", CurrentStock: d("2")}

	f.items.On("GetForUpdate", ctx, int64(1)).Return(item, nil)
	f.items.On("UpdateStock", ctx, int64(1), decEq("-3"), mock.Anything, fixedNow).Return(nil)
	f.history.On("Create", ctx, mock.Anything).Return(nil)

	out, err := f.uc.Adjust(ctx, 1, dto.AdjustStockRequest{Delta: d("-5")})
	require.NoError(t, err)
	assert.True(t, out.NewStock.Equal(d("-3")))
}

func TestAdjust_EntradaRecalculaCostoPromedio(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture()
	item := &entity.InventoryItem{ID: 3, Name: "Cheese", Unit: "kg", CurrentStock: d("10"), UnitCost: d("4")}
	cost := d("7")

	f.items.On("GetForUpdate", ctx, int64(3)).Return(item, nil)
	// (10*4 + 10*7) / 20 = 5.5
	f.items.On("UpdateStock", ctx, int64(3), decEq("20"), mock.MatchedBy(func(c decimal.Decimal) bool {
		return c.Equal(d("5.5"))
	}), fixedNow).Return(nil)
	f.history.On("Create", ctx, mock.Anything).Return(nil)

	_, err := f.uc.Adjust(ctx, 3, dto.AdjustStockRequest{Delta: d("10"), ChangeType: entity.ChangeTypeRestock, UnitCost: &cost})
	require.NoError(t, err)
	f.items.AssertExpectations(t)
}

func TestAdjust_ArticuloInexistenteNoEscribe(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture()
	f.items.On("GetForUpdate", ctx, int64(404)).Return(nil, nil)

	_, err := f.uc.Adjust(ctx, 404, dto.AdjustStockRequest{Delta: d("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	f.items.AssertNotCalled(t, "UpdateStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.history.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdjust_DeltaCero(t *testing.T) {
	f := newLedgerFixture()
	_, err := f.uc.Adjust(context.Background(), 1, dto.AdjustStockRequest{Delta: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, f.tx.runs)
}

func TestCreate_SoloNombreYUnidad(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture()
	f.items.On("Create", ctx, mock.MatchedBy(func(it *entity.InventoryItem) bool {
		return it.Name == "Napkins" && it.Unit == "pack" && it.Category == entity.DefaultInventoryCategory
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.InventoryItem).ID = 12
	}).Return(nil)

	out, err := f.uc.Create(ctx, dto.CreateInventoryRequest{Name: "Napkins", Unit: "pack"})
	require.NoError(t, err)
	assert.Equal(t, int64(12), out.ID)
	assert.Equal(t, "Other", out.Category)
	assert.Zero(t, out.HistoryID)
	f.history.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_StockInicialGeneraHistorial(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture()
	f.items.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.InventoryItem).ID = 5
	}).Return(nil)
	f.items.On("UpdateStock", ctx, int64(5), decEq("50"), mock.Anything, fixedNow).Return(nil)
	f.history.On("Create", ctx, mock.MatchedBy(func(h *entity.InventoryHistory) bool {
		return h.ChangeType == entity.ChangeTypeInitial && h.PreviousStock.IsZero() && h.NewStock.Equal(d("50"))
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.InventoryHistory).ID = 1
	}).Return(nil)

	out, err := f.uc.Create(ctx, dto.CreateInventoryRequest{Name: "Flour", Unit: "lb", CurrentStock: d("50")})
	require.NoError(t, err)
	assert.True(t, out.CurrentStock.Equal(d("50")))
	assert.Equal(t, int64(1), out.HistoryID)
}

func TestCreate_CopiaDatosDelIngrediente(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture()
	ingID := int64(4)
	f.ingreds.On("GetByID", ctx, ingID).Return(&entity.Ingredient{ID: ingID, Name: "Tortilla", Unit: "pcs"}, nil)
	f.items.On("Create", ctx, mock.MatchedBy(func(it *entity.InventoryItem) bool {
		return it.Name == "Tortilla" && it.Unit == "pcs" && *it.IngredientID == ingID
	})).Return(nil)

	_, err := f.uc.Create(ctx, dto.CreateInventoryRequest{IngredientID: &ingID})
	require.NoError(t, err)
}

func TestCreate_SinNombre(t *testing.T) {
	f := newLedgerFixture()
	_, err := f.uc.Create(context.Background(), dto.CreateInventoryRequest{Unit: "kg"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)
}

func TestUpdate_CambioDeStockPasaPorElLibro(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture()
	item := &entity.InventoryItem{ID: 9, Name: "Flour", Unit: "lb", Category: "Other", CurrentStock: d("50"), MinStock: d("10"), MaxStock: d("100")}
	target := d("45")

	f.items.On("GetForUpdate", ctx, int64(9)).Return(item, nil)
	f.items.On("Update", ctx, item).Return(nil)
	f.items.On("UpdateStock", ctx, int64(9), decEq("45"), mock.Anything, fixedNow).Return(nil)
	f.history.On("Create", ctx, mock.MatchedBy(func(h *entity.InventoryHistory) bool {
		return h.ChangeAmount.Equal(d("-5")) && h.ChangeType == entity.ChangeTypeUsed
	})).Return(nil)

	out, err := f.uc.Update(ctx, 9, dto.UpdateInventoryRequest{CurrentStock: &target, ChangeType: entity.ChangeTypeUsed})
	require.NoError(t, err)
	assert.Equal(t, "Flour", out.Name)
	assert.True(t, out.CurrentStock.Equal(d("45")))
	f.history.AssertExpectations(t)
}

func TestUpdate_SinCambioDeStockNoRegistra(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture()
	item := &entity.InventoryItem{ID: 9, Name: "Flour", Unit: "lb", CurrentStock: d("50")}
	name := "Harina"

	f.items.On("GetForUpdate", ctx, int64(9)).Return(item, nil)
	f.items.On("Update", ctx, item).Return(nil)

	out, err := f.uc.Update(ctx, 9, dto.UpdateInventoryRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Harina", out.Name)
	f.history.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDelete_NoExiste(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture()
	f.items.On("Delete", ctx, int64(3)).Return(false, nil)
	assert.ErrorIs(t, f.uc.Delete(ctx, 3), domain.ErrNotFound)
}
