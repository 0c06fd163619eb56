package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItemRequest body para POST/PUT /api/menu.
type MenuItemRequest struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	RecipeType  string          `json:"recipe_type,omitempty"`
	Category    string          `json:"category,omitempty"`
	Portions    int             `json:"portions,omitempty"`
	Description string          `json:"description,omitempty"`
}

// MenuItemResponse plato con su margen calculado.
type MenuItemResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Cost         decimal.Decimal `json:"cost"`
	RecipeType   string          `json:"recipe_type"`
	Category     string          `json:"category"`
	Portions     int             `json:"portions"`
	Description  string          `json:"description"`
	ProfitMargin decimal.Decimal `json:"profit_margin"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// IngredientRequest body para POST/PUT /api/ingredients.
type IngredientRequest struct {
	Name         string          `json:"name"`
	Cost         decimal.Decimal `json:"cost"`
	Unit         string          `json:"unit"`
	Servings     int             `json:"servings,omitempty"`
	IsCompound   bool            `json:"is_compound"`
	RecipeMenuID *int64          `json:"recipe_menu_id,omitempty"`
}

// IngredientResponse ingrediente con su costo por unidad de receta.
type IngredientResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Cost         decimal.Decimal `json:"cost"`
	Unit         string          `json:"unit"`
	Servings     int             `json:"servings"`
	IsCompound   bool            `json:"is_compound"`
	RecipeMenuID *int64          `json:"recipe_menu_id"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	CreatedAt    time.Time       `json:"created_at"`
}

// IngredientDeleteResponse resultado del borrado en cascada.
type IngredientDeleteResponse struct {
	Deleted            bool  `json:"deleted"`
	ID                 int64 `json:"id"`
	InventoryRemoved   int64 `json:"inventory_removed"`
	RecipeLinesRemoved int64 `json:"recipe_lines_removed"`
}

// RecipeLineRequest línea de receta.
type RecipeLineRequest struct {
	IngredientID int64           `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit,omitempty"`
}

// SaveRecipeRequest body para POST /api/recipes.
type SaveRecipeRequest struct {
	MenuID      int64               `json:"menu_id"`
	Ingredients []RecipeLineRequest `json:"ingredients"`
}

// RecipeLineResponse línea con su costo.
type RecipeLineResponse struct {
	ID             int64           `json:"id"`
	IngredientID   int64           `json:"ingredient_id"`
	IngredientName string          `json:"ingredient_name"`
	Quantity       decimal.Decimal `json:"quantity"`
	Unit           string          `json:"unit"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	LineCost       decimal.Decimal `json:"line_cost"`
}

// RecipeResponse receta de un plato con costo total y por porción.
type RecipeResponse struct {
	MenuID         int64                `json:"menu_id"`
	Lines          []RecipeLineResponse `json:"lines"`
	TotalCost      decimal.Decimal      `json:"total_cost"`
	CostPerPortion decimal.Decimal      `json:"cost_per_portion"`
}
