package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/foodtruck-api/internal/domain/entity"
	"github.com/jhoicas/foodtruck-api/internal/domain/repository"
)

type mockInventoryRepo struct{ mock.Mock }

func (m *mockInventoryRepo) Create(ctx context.Context, item *entity.InventoryItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockInventoryRepo) GetByID(ctx context.Context, id int64) (*entity.InventoryItem, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(*entity.InventoryItem)
	return item, args.Error(1)
}

func (m *mockInventoryRepo) GetForUpdate(ctx context.Context, id int64) (*entity.InventoryItem, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(*entity.InventoryItem)
	return item, args.Error(1)
}

func (m *mockInventoryRepo) List(ctx context.Context) ([]*entity.InventoryItem, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]*entity.InventoryItem)
	return items, args.Error(1)
}

func (m *mockInventoryRepo) ListBelowMinimum(ctx context.Context) ([]*entity.InventoryItem, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]*entity.InventoryItem)
	return items, args.Error(1)
}

func (m *mockInventoryRepo) Update(ctx context.Context, item *entity.InventoryItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockInventoryRepo) UpdateStock(ctx context.Context, id int64, stock, unitCost decimal.Decimal, at time.Time) error {
	return m.Called(ctx, id, stock, unitCost, at).Error(0)
}

func (m *mockInventoryRepo) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockInventoryRepo) DeleteByIngredient(ctx context.Context, ingredientID int64) (int64, error) {
	args := m.Called(ctx, ingredientID)
	return args.Get(0).(int64), args.Error(1)
}

type mockHistoryRepo struct{ mock.Mock }

func (m *mockHistoryRepo) Create(ctx context.Context, h *entity.InventoryHistory) error {
	return m.Called(ctx, h).Error(0)
}

func (m *mockHistoryRepo) List(ctx context.Context, f repository.HistoryFilter) ([]*entity.InventoryHistory, error) {
	args := m.Called(ctx, f)
	rows, _ := args.Get(0).([]*entity.InventoryHistory)
	return rows, args.Error(1)
}

type mockWasteRepo struct{ mock.Mock }

func (m *mockWasteRepo) Create(ctx context.Context, w *entity.WasteEntry) error {
	return m.Called(ctx, w).Error(0)
}

func (m *mockWasteRepo) SetHistoryID(ctx context.Context, id, historyID int64) error {
	return m.Called(ctx, id, historyID).Error(0)
}

func (m *mockWasteRepo) GetByID(ctx context.Context, id int64) (*entity.WasteEntry, error) {
	args := m.Called(ctx, id)
	w, _ := args.Get(0).(*entity.WasteEntry)
	return w, args.Error(1)
}

func (m *mockWasteRepo) List(ctx context.Context, start, end *time.Time) ([]*entity.WasteEntry, error) {
	args := m.Called(ctx, start, end)
	rows, _ := args.Get(0).([]*entity.WasteEntry)
	return rows, args.Error(1)
}

type mockIngredientRepo struct{ mock.Mock }

func (m *mockIngredientRepo) Create(ctx context.Context, in *entity.Ingredient) error {
	return m.Called(ctx, in).Error(0)
}

func (m *mockIngredientRepo) GetByID(ctx context.Context, id int64) (*entity.Ingredient, error) {
	args := m.Called(ctx, id)
	in, _ := args.Get(0).(*entity.Ingredient)
	return in, args.Error(1)
}

func (m *mockIngredientRepo) List(ctx context.Context) ([]*entity.Ingredient, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]*entity.Ingredient)
	return rows, args.Error(1)
}

func (m *mockIngredientRepo) Update(ctx context.Context, in *entity.Ingredient) error {
	return m.Called(ctx, in).Error(0)
}

func (m *mockIngredientRepo) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// fakeTx ejecuta fn con los mocks y cuenta las transacciones.
type fakeTx struct {
	repos repository.Repos
	runs  int
}

func (f *fakeTx) Run(_ context.Context, fn func(repository.Repos) error) error {
	f.runs++
	return fn(f.repos)
}

// decEq compara decimales por valor (no por representación interna).
func decEq(s string) interface{} {
	want := decimal.RequireFromString(s)
	return mock.MatchedBy(func(v decimal.Decimal) bool { return v.Equal(want) })
}
