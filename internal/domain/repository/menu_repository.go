package repository

import (
	"context"

	"github.com/jhoicas/foodtruck-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// IngredientRepository define el puerto de persistencia para ingredientes.
type IngredientRepository interface {
	Create(ctx context.Context, in *entity.Ingredient) error
	GetByID(ctx context.Context, id int64) (*entity.Ingredient, error)
	List(ctx context.Context) ([]*entity.Ingredient, error)
	Update(ctx context.Context, in *entity.Ingredient) error
	Delete(ctx context.Context, id int64) (bool, error)
}

// MenuRepository define el puerto de persistencia para platos del menú.
type MenuRepository interface {
	Create(ctx context.Context, m *entity.MenuItem) error
	GetByID(ctx context.Context, id int64) (*entity.MenuItem, error)
	List(ctx context.Context) ([]*entity.MenuItem, error)
	Update(ctx context.Context, m *entity.MenuItem) error
	UpdateCost(ctx context.Context, id int64, cost decimal.Decimal) error
	Delete(ctx context.Context, id int64) (bool, error)
}

// RecipeRepository líneas de receta por plato.
type RecipeRepository interface {
	ListByMenu(ctx context.Context, menuID int64) ([]*entity.RecipeLine, error)
	ListAll(ctx context.Context) ([]*entity.RecipeLine, error)
	ReplaceForMenu(ctx context.Context, menuID int64, lines []*entity.RecipeLine) error
	DeleteByMenu(ctx context.Context, menuID int64) error
	DeleteByIngredient(ctx context.Context, ingredientID int64) (int64, error)
}
