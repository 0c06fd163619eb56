package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/foodtruck-api/internal/application/dto"
	"github.com/jhoicas/foodtruck-api/internal/application/usecase"
	"github.com/jhoicas/foodtruck-api/internal/domain"
	"github.com/jhoicas/foodtruck-api/internal/domain/entity"
	"github.com/jhoicas/foodtruck-api/internal/infrastructure/sqlstore"
)

type menuFixture struct {
	uc      *usecase.MenuUseCase
	db      *sqlstore.DB
	taco    *dto.MenuItemResponse
	tortill *dto.IngredientResponse
	beef    *dto.IngredientResponse
}

func newMenuFixture(t *testing.T) menuFixture {
	t.Helper()
	ctx := context.Background()
	db := openDB(t)
	repos := db.Repos()
	uc := usecase.NewMenuUseCase(sqlstore.NewTxRunner(db), repos.Menu, repos.Ingredients, repos.Recipes)

	taco, err := uc.CreateMenu(ctx, dto.MenuItemRequest{Name: "Taco", Price: dec("10"), Portions: 2})
	require.NoError(t, err)
	tortilla, err := uc.CreateIngredient(ctx, dto.IngredientRequest{Name: "Tortilla", Cost: dec("2"), Unit: "pack", Servings: 10})
	require.NoError(t, err)
	beef, err := uc.CreateIngredient(ctx, dto.IngredientRequest{Name: "Beef", Cost: dec("8"), Unit: "lb"})
	require.NoError(t, err)

	return menuFixture{uc: uc, db: db, taco: taco, tortill: tortilla, beef: beef}
}

func (f menuFixture) saveTaco(t *testing.T) *dto.RecipeResponse {
	t.Helper()
	rc, err := f.uc.SaveRecipe(context.Background(), dto.SaveRecipeRequest{
		MenuID: f.taco.ID,
		Ingredients: []dto.RecipeLineRequest{
			{IngredientID: f.tortill.ID, Quantity: dec("2"), Unit: "pcs"},
			{IngredientID: f.beef.ID, Quantity: dec("0.5"), Unit: "lb"},
		},
	})
	require.NoError(t, err)
	return rc
}

func TestCreateMenu_Defaults(t *testing.T) {
	f := newMenuFixture(t)
	assert.Equal(t, usecase.DefaultRecipeType, f.taco.RecipeType)
	assert.Equal(t, 2, f.taco.Portions)
	assert.True(t, f.taco.ProfitMargin.Equal(dec("100")))
	assert.Equal(t, 1, f.beef.Servings)
	assert.True(t, f.tortill.UnitCost.Equal(dec("0.2")))
}

func TestCreateMenu_SinNombre(t *testing.T) {
	f := newMenuFixture(t)
	_, err := f.uc.CreateMenu(context.Background(), dto.MenuItemRequest{Price: dec("5")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSaveRecipe_CosteaYGuardaCostoPorPorcion(t *testing.T) {
	f := newMenuFixture(t)
	rc := f.saveTaco(t)

	// 2 × 0.2 + 0.5 × 8 = 4.4; 2 porciones
	assert.True(t, rc.TotalCost.Equal(dec("4.4")), rc.TotalCost.String())
	assert.True(t, rc.CostPerPortion.Equal(dec("2.2")))
	require.Len(t, rc.Lines, 2)
	assert.Equal(t, "Tortilla", rc.Lines[0].IngredientName)
	assert.NotZero(t, rc.Lines[0].ID)

	m, err := f.uc.GetMenu(context.Background(), f.taco.ID)
	require.NoError(t, err)
	assert.True(t, m.Cost.Equal(dec("2.2")))
	assert.True(t, m.ProfitMargin.Equal(dec("78")))

	got, err := f.uc.GetRecipe(context.Background(), f.taco.ID)
	require.NoError(t, err)
	assert.True(t, got.TotalCost.Equal(dec("4.4")))
}

func TestSaveRecipe_IngredienteInexistente(t *testing.T) {
	f := newMenuFixture(t)
	_, err := f.uc.SaveRecipe(context.Background(), dto.SaveRecipeRequest{
		MenuID:      f.taco.ID,
		Ingredients: []dto.RecipeLineRequest{{IngredientID: 999, Quantity: dec("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := f.uc.GetRecipe(context.Background(), f.taco.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Lines)
}

func TestSaveRecipe_PlatoInexistente(t *testing.T) {
	f := newMenuFixture(t)
	_, err := f.uc.SaveRecipe(context.Background(), dto.SaveRecipeRequest{MenuID: 999})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompuesto_CostoDesdeReceta(t *testing.T) {
	f := newMenuFixture(t)
	ctx := context.Background()

	salsaMenu, err := f.uc.CreateMenu(ctx, dto.MenuItemRequest{Name: "Salsa base", RecipeType: "Sauce", Portions: 4})
	require.NoError(t, err)
	_, err = f.uc.SaveRecipe(ctx, dto.SaveRecipeRequest{
		MenuID:      salsaMenu.ID,
		Ingredients: []dto.RecipeLineRequest{{IngredientID: f.beef.ID, Quantity: dec("1")}},
	})
	require.NoError(t, err)

	salsa, err := f.uc.CreateIngredient(ctx, dto.IngredientRequest{
		Name: "Salsa", Unit: "cup", IsCompound: true, RecipeMenuID: ptr(salsaMenu.ID),
	})
	require.NoError(t, err)
	assert.True(t, salsa.UnitCost.Equal(dec("2")), salsa.UnitCost.String())

	// la receta de la salsa no puede usar la propia salsa
	_, err = f.uc.SaveRecipe(ctx, dto.SaveRecipeRequest{
		MenuID:      salsaMenu.ID,
		Ingredients: []dto.RecipeLineRequest{{IngredientID: salsa.ID, Quantity: dec("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrRecipeCycle)
}

func TestCompuesto_SinPlato(t *testing.T) {
	f := newMenuFixture(t)
	_, err := f.uc.CreateIngredient(context.Background(), dto.IngredientRequest{Name: "X", Unit: "g", IsCompound: true})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.CreateIngredient(context.Background(), dto.IngredientRequest{Name: "X", Unit: "g", IsCompound: true, RecipeMenuID: ptr(int64(999))})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateIngredient_RecalculaPlatos(t *testing.T) {
	f := newMenuFixture(t)
	f.saveTaco(t)

	_, err := f.uc.UpdateIngredient(context.Background(), f.beef.ID, dto.IngredientRequest{Name: "Beef", Cost: dec("12"), Unit: "lb"})
	require.NoError(t, err)

	// 0.4 + 0.5 × 12 = 6.4 → 3.2 por porción
	m, err := f.uc.GetMenu(context.Background(), f.taco.ID)
	require.NoError(t, err)
	assert.True(t, m.Cost.Equal(dec("3.2")), m.Cost.String())
}

func TestDeleteIngredient_Cascada(t *testing.T) {
	f := newMenuFixture(t)
	ctx := context.Background()
	f.saveTaco(t)

	repos := f.db.Repos()
	now := time.Now().UTC()
	require.NoError(t, repos.Inventory.Create(ctx, &entity.InventoryItem{
		IngredientID: ptr(f.beef.ID), Name: "Beef", Unit: "lb", Category: "Meat",
		CurrentStock: dec("10"), CreatedAt: now, UpdatedAt: now,
	}))

	res, err := f.uc.DeleteIngredient(ctx, f.beef.ID)
	require.NoError(t, err)
	assert.True(t, res.Deleted)
	assert.Equal(t, int64(1), res.InventoryRemoved)
	assert.Equal(t, int64(1), res.RecipeLinesRemoved)

	items, err := repos.Inventory.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	// solo queda la tortilla: 0.4 / 2
	m, err := f.uc.GetMenu(ctx, f.taco.ID)
	require.NoError(t, err)
	assert.True(t, m.Cost.Equal(dec("0.2")), m.Cost.String())

	_, err = f.uc.DeleteIngredient(ctx, f.beef.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteMenu_BorraReceta(t *testing.T) {
	f := newMenuFixture(t)
	ctx := context.Background()
	f.saveTaco(t)

	require.NoError(t, f.uc.DeleteMenu(ctx, f.taco.ID))
	lines, err := f.db.Repos().Recipes.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, lines)

	assert.ErrorIs(t, f.uc.DeleteMenu(ctx, f.taco.ID), domain.ErrNotFound)
}

func TestUpdateMenu_ConservaCostoDeReceta(t *testing.T) {
	f := newMenuFixture(t)
	ctx := context.Background()
	f.saveTaco(t)

	// 0.4 + 4 = 4.4 entre 4 porciones; el costo del cuerpo se ignora
	m, err := f.uc.UpdateMenu(ctx, f.taco.ID, dto.MenuItemRequest{Name: "Taco", Price: dec("10"), Portions: 4})
	require.NoError(t, err)
	assert.True(t, m.Cost.Equal(dec("1.1")), m.Cost.String())
	assert.True(t, m.ProfitMargin.Equal(dec("89")), m.ProfitMargin.String())

	got, err := f.uc.GetMenu(ctx, f.taco.ID)
	require.NoError(t, err)
	assert.True(t, got.Cost.Equal(dec("1.1")), got.Cost.String())
}

func TestUpdateMenu_SinRecetaUsaCostoEnviado(t *testing.T) {
	f := newMenuFixture(t)

	m, err := f.uc.UpdateMenu(context.Background(), f.taco.ID, dto.MenuItemRequest{Name: "Taco", Price: dec("10"), Cost: dec("3")})
	require.NoError(t, err)
	assert.True(t, m.Cost.Equal(dec("3")), m.Cost.String())
}

func TestDeleteMenu_RecosteaCompuestos(t *testing.T) {
	f := newMenuFixture(t)
	ctx := context.Background()

	salsa, err := f.uc.CreateMenu(ctx, dto.MenuItemRequest{Name: "Salsa", Price: dec("0"), RecipeType: "Sauce"})
	require.NoError(t, err)
	_, err = f.uc.SaveRecipe(ctx, dto.SaveRecipeRequest{
		MenuID:      salsa.ID,
		Ingredients: []dto.RecipeLineRequest{{IngredientID: f.beef.ID, Quantity: dec("1"), Unit: "lb"}},
	})
	require.NoError(t, err)
	salsaIng, err := f.uc.CreateIngredient(ctx, dto.IngredientRequest{Name: "Salsa", Unit: "cup", IsCompound: true, RecipeMenuID: ptr(salsa.ID)})
	require.NoError(t, err)
	_, err = f.uc.SaveRecipe(ctx, dto.SaveRecipeRequest{
		MenuID: f.taco.ID,
		Ingredients: []dto.RecipeLineRequest{
			{IngredientID: f.tortill.ID, Quantity: dec("2"), Unit: "pcs"},
			{IngredientID: salsaIng.ID, Quantity: dec("1"), Unit: "cup"},
		},
	})
	require.NoError(t, err)

	// (0.4 + 8) / 2
	m, err := f.uc.GetMenu(ctx, f.taco.ID)
	require.NoError(t, err)
	require.True(t, m.Cost.Equal(dec("4.2")), m.Cost.String())

	require.NoError(t, f.uc.DeleteMenu(ctx, salsa.ID))

	// la salsa ya no tiene receta: 0.4 / 2
	m, err = f.uc.GetMenu(ctx, f.taco.ID)
	require.NoError(t, err)
	assert.True(t, m.Cost.Equal(dec("0.2")), m.Cost.String())
}

func TestUpdateMenu_PorcionesRecosteaCompuestos(t *testing.T) {
	f := newMenuFixture(t)
	ctx := context.Background()

	salsa, err := f.uc.CreateMenu(ctx, dto.MenuItemRequest{Name: "Salsa", Price: dec("0")})
	require.NoError(t, err)
	_, err = f.uc.SaveRecipe(ctx, dto.SaveRecipeRequest{
		MenuID:      salsa.ID,
		Ingredients: []dto.RecipeLineRequest{{IngredientID: f.beef.ID, Quantity: dec("1"), Unit: "lb"}},
	})
	require.NoError(t, err)
	salsaIng, err := f.uc.CreateIngredient(ctx, dto.IngredientRequest{Name: "Salsa", Unit: "cup", IsCompound: true, RecipeMenuID: ptr(salsa.ID)})
	require.NoError(t, err)
	_, err = f.uc.SaveRecipe(ctx, dto.SaveRecipeRequest{
		MenuID:      f.taco.ID,
		Ingredients: []dto.RecipeLineRequest{{IngredientID: salsaIng.ID, Quantity: dec("1"), Unit: "cup"}},
	})
	require.NoError(t, err)

	// la salsa rinde 4 porciones: 8 / 4 = 2 por taza, 2 / 2 porciones de taco
	_, err = f.uc.UpdateMenu(ctx, salsa.ID, dto.MenuItemRequest{Name: "Salsa", Price: dec("0"), Portions: 4})
	require.NoError(t, err)

	m, err := f.uc.GetMenu(ctx, f.taco.ID)
	require.NoError(t, err)
	assert.True(t, m.Cost.Equal(dec("1")), m.Cost.String())
}
