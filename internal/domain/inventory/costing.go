package inventory

import (
	"fmt"

	"github.com/jhoicas/foodtruck-api/internal/domain"
	"github.com/jhoicas/foodtruck-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// RecipeCost costo de la receta de un plato.
type RecipeCost struct {
	Lines      []LineCost
	Total      decimal.Decimal
	PerPortion decimal.Decimal
}

// LineCost costo de una línea de receta.
type LineCost struct {
	Line     entity.RecipeLine
	UnitCost decimal.Decimal
	Cost     decimal.Decimal
}

// CostResolver calcula costos de recetas en memoria. Los ingredientes compuestos
// toman su costo unitario del costo por porción de la receta RecipeMenuID, de
// forma recursiva; un ciclo devuelve domain.ErrRecipeCycle.
type CostResolver struct {
	ingredients map[int64]entity.Ingredient
	menus       map[int64]entity.MenuItem
	lines       map[int64][]entity.RecipeLine
	memo        map[int64]RecipeCost
}

// NewCostResolver indexa ingredientes, platos y líneas de receta.
func NewCostResolver(ingredients []entity.Ingredient, menus []entity.MenuItem, lines []entity.RecipeLine) *CostResolver {
	r := &CostResolver{
		ingredients: make(map[int64]entity.Ingredient, len(ingredients)),
		menus:       make(map[int64]entity.MenuItem, len(menus)),
		lines:       make(map[int64][]entity.RecipeLine),
		memo:        make(map[int64]RecipeCost),
	}
	for _, in := range ingredients {
		r.ingredients[in.ID] = in
	}
	for _, m := range menus {
		r.menus[m.ID] = m
	}
	for _, l := range lines {
		r.lines[l.MenuID] = append(r.lines[l.MenuID], l)
	}
	return r
}

// WithLines reemplaza en memoria las líneas de un plato (para previsualizar antes de guardar).
func (r *CostResolver) WithLines(menuID int64, lines []entity.RecipeLine) *CostResolver {
	r.lines[menuID] = lines
	r.memo = make(map[int64]RecipeCost)
	return r
}

// MenuCost costo total y por porción del plato menuID.
func (r *CostResolver) MenuCost(menuID int64) (RecipeCost, error) {
	return r.menuCost(menuID, map[int64]bool{})
}

// IngredientUnitCost costo por unidad de receta de un ingrediente.
func (r *CostResolver) IngredientUnitCost(ingredientID int64) (decimal.Decimal, error) {
	return r.unitCost(ingredientID, map[int64]bool{})
}

func (r *CostResolver) menuCost(menuID int64, visiting map[int64]bool) (RecipeCost, error) {
	if rc, ok := r.memo[menuID]; ok {
		return rc, nil
	}
	if visiting[menuID] {
		return RecipeCost{}, fmt.Errorf("plato %d: %w", menuID, domain.ErrRecipeCycle)
	}
	visiting[menuID] = true
	defer delete(visiting, menuID)

	rc := RecipeCost{Lines: make([]LineCost, 0, len(r.lines[menuID]))}
	for _, l := range r.lines[menuID] {
		unit, err := r.unitCost(l.IngredientID, visiting)
		if err != nil {
			return RecipeCost{}, err
		}
		cost := l.Quantity.Mul(unit)
		rc.Lines = append(rc.Lines, LineCost{Line: l, UnitCost: unit, Cost: cost})
		rc.Total = rc.Total.Add(cost)
	}

	portions := int64(1)
	if m, ok := r.menus[menuID]; ok && m.Portions > 0 {
		portions = int64(m.Portions)
	}
	rc.PerPortion = rc.Total.Div(decimal.NewFromInt(portions))
	r.memo[menuID] = rc
	return rc, nil
}

func (r *CostResolver) unitCost(ingredientID int64, visiting map[int64]bool) (decimal.Decimal, error) {
	in, ok := r.ingredients[ingredientID]
	if !ok {
		return decimal.Zero, fmt.Errorf("ingrediente %d: %w", ingredientID, domain.ErrNotFound)
	}
	if in.IsCompound && in.RecipeMenuID != nil {
		rc, err := r.menuCost(*in.RecipeMenuID, visiting)
		if err != nil {
			return decimal.Zero, err
		}
		return rc.PerPortion, nil
	}
	servings := int64(in.Servings)
	if servings <= 0 {
		servings = 1
	}
	return in.Cost.Div(decimal.NewFromInt(servings)), nil
}
