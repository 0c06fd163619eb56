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

var (
	_ repository.MenuRepository       = (*MenuRepo)(nil)
	_ repository.IngredientRepository = (*IngredientRepo)(nil)
	_ repository.RecipeRepository     = (*RecipeRepo)(nil)
)

// MenuRepo implementación de MenuRepository.
type MenuRepo struct {
	q Querier
}

// NewMenuRepository construye el repositorio.
func NewMenuRepository(q Querier) *MenuRepo {
	return &MenuRepo{q: q}
}

const menuColumns = `id, COALESCE(name, '') AS name, COALESCE(price, 0) AS price, COALESCE(cost, 0) AS cost,
	COALESCE(recipe_type, '') AS recipe_type, COALESCE(category, '') AS category,
	COALESCE(portions, 1) AS portions, COALESCE(description, '') AS description, created_at, updated_at`

func (r *MenuRepo) Create(ctx context.Context, m *entity.MenuItem) error {
	id, err := insertReturningID(ctx, r.q, `
		INSERT INTO menu (name, price, cost, recipe_type, category, portions, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.Name, m.Price, m.Cost, m.RecipeType, m.Category, m.Portions, m.Description, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert menu: %w", err)
	}
	m.ID = id
	return nil
}

func (r *MenuRepo) GetByID(ctx context.Context, id int64) (*entity.MenuItem, error) {
	var m entity.MenuItem
	err := r.q.GetContext(ctx, &m, r.q.Rebind(`SELECT `+menuColumns+` FROM menu WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get menu: %w", err)
	}
	return &m, nil
}

func (r *MenuRepo) List(ctx context.Context) ([]*entity.MenuItem, error) {
	var out []*entity.MenuItem
	if err := r.q.SelectContext(ctx, &out, `SELECT `+menuColumns+` FROM menu ORDER BY name, id`); err != nil {
		return nil, fmt.Errorf("list menu: %w", err)
	}
	return out, nil
}

func (r *MenuRepo) Update(ctx context.Context, m *entity.MenuItem) error {
	_, err := r.q.ExecContext(ctx, r.q.Rebind(`
		UPDATE menu SET name = ?, price = ?, cost = ?, recipe_type = ?, category = ?, portions = ?,
			description = ?, updated_at = ?
		WHERE id = ?`),
		m.Name, m.Price, m.Cost, m.RecipeType, m.Category, m.Portions, m.Description, m.UpdatedAt, m.ID,
	)
	if err != nil {
		return fmt.Errorf("update menu: %w", err)
	}
	return nil
}

func (r *MenuRepo) UpdateCost(ctx context.Context, id int64, cost decimal.Decimal) error {
	_, err := r.q.ExecContext(ctx, r.q.Rebind(`UPDATE menu SET cost = ?, updated_at = ? WHERE id = ?`),
		cost, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update menu cost: %w", err)
	}
	return nil
}

func (r *MenuRepo) Delete(ctx context.Context, id int64) (bool, error) {
	ok, err := execAffected(ctx, r.q, `DELETE FROM menu WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete menu: %w", err)
	}
	return ok, nil
}

// IngredientRepo implementación de IngredientRepository.
type IngredientRepo struct {
	q Querier
}

// NewIngredientRepository construye el repositorio.
func NewIngredientRepository(q Querier) *IngredientRepo {
	return &IngredientRepo{q: q}
}

const ingredientColumns = `id, COALESCE(name, '') AS name, COALESCE(cost, 0) AS cost, COALESCE(unit, '') AS unit,
	COALESCE(servings, 1) AS servings, is_compound, recipe_menu_id, created_at`

func (r *IngredientRepo) Create(ctx context.Context, in *entity.Ingredient) error {
	id, err := insertReturningID(ctx, r.q, `
		INSERT INTO ingredients (name, cost, unit, servings, is_compound, recipe_menu_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		in.Name, in.Cost, in.Unit, in.Servings, in.IsCompound, in.RecipeMenuID, in.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ingredient: %w", err)
	}
	in.ID = id
	return nil
}

func (r *IngredientRepo) GetByID(ctx context.Context, id int64) (*entity.Ingredient, error) {
	var in entity.Ingredient
	err := r.q.GetContext(ctx, &in, r.q.Rebind(`SELECT `+ingredientColumns+` FROM ingredients WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get ingredient: %w", err)
	}
	return &in, nil
}

func (r *IngredientRepo) List(ctx context.Context) ([]*entity.Ingredient, error) {
	var out []*entity.Ingredient
	if err := r.q.SelectContext(ctx, &out, `SELECT `+ingredientColumns+` FROM ingredients ORDER BY name, id`); err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	return out, nil
}

func (r *IngredientRepo) Update(ctx context.Context, in *entity.Ingredient) error {
	_, err := r.q.ExecContext(ctx, r.q.Rebind(`
		UPDATE ingredients SET name = ?, cost = ?, unit = ?, servings = ?, is_compound = ?, recipe_menu_id = ?
		WHERE id = ?`),
		in.Name, in.Cost, in.Unit, in.Servings, in.IsCompound, in.RecipeMenuID, in.ID,
	)
	if err != nil {
		return fmt.Errorf("update ingredient: %w", err)
	}
	return nil
}

func (r *IngredientRepo) Delete(ctx context.Context, id int64) (bool, error) {
	ok, err := execAffected(ctx, r.q, `DELETE FROM ingredients WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete ingredient: %w", err)
	}
	return ok, nil
}

// RecipeRepo implementación de RecipeRepository.
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el repositorio.
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

const recipeColumns = `id, menu_id, ingredient_id, COALESCE(quantity, 0) AS quantity, COALESCE(unit, '') AS unit`

func (r *RecipeRepo) ListByMenu(ctx context.Context, menuID int64) ([]*entity.RecipeLine, error) {
	var out []*entity.RecipeLine
	if err := r.q.SelectContext(ctx, &out, r.q.Rebind(`SELECT `+recipeColumns+` FROM recipes WHERE menu_id = ? ORDER BY id`), menuID); err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return out, nil
}

func (r *RecipeRepo) ListAll(ctx context.Context) ([]*entity.RecipeLine, error) {
	var out []*entity.RecipeLine
	if err := r.q.SelectContext(ctx, &out, `SELECT `+recipeColumns+` FROM recipes ORDER BY menu_id, id`); err != nil {
		return nil, fmt.Errorf("list all recipes: %w", err)
	}
	return out, nil
}

// ReplaceForMenu borra las líneas del plato e inserta las nuevas (usar dentro de una transacción).
func (r *RecipeRepo) ReplaceForMenu(ctx context.Context, menuID int64, lines []*entity.RecipeLine) error {
	if err := r.DeleteByMenu(ctx, menuID); err != nil {
		return err
	}
	for _, l := range lines {
		l.MenuID = menuID
		id, err := insertReturningID(ctx, r.q, `INSERT INTO recipes (menu_id, ingredient_id, quantity, unit) VALUES (?, ?, ?, ?)`,
			l.MenuID, l.IngredientID, l.Quantity, l.Unit)
		if err != nil {
			return fmt.Errorf("insert recipe line: %w", err)
		}
		l.ID = id
	}
	return nil
}

func (r *RecipeRepo) DeleteByMenu(ctx context.Context, menuID int64) error {
	if _, err := r.q.ExecContext(ctx, r.q.Rebind(`DELETE FROM recipes WHERE menu_id = ?`), menuID); err != nil {
		return fmt.Errorf("delete recipes by menu: %w", err)
	}
	return nil
}

func (r *RecipeRepo) DeleteByIngredient(ctx context.Context, ingredientID int64) (int64, error) {
	res, err := r.q.ExecContext(ctx, r.q.Rebind(`DELETE FROM recipes WHERE ingredient_id = ?`), ingredientID)
	if err != nil {
		return 0, fmt.Errorf("delete recipes by ingredient: %w", err)
	}
	return res.RowsAffected()
}
