package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jhoicas/foodtruck-api/internal/application/dto"
	"github.com/jhoicas/foodtruck-api/internal/domain"
	"github.com/jhoicas/foodtruck-api/internal/domain/entity"
	"github.com/jhoicas/foodtruck-api/internal/domain/inventory"
	"github.com/jhoicas/foodtruck-api/internal/domain/repository"
)

// ListIngredients lista ingredientes con su costo por unidad de receta.
// Un compuesto cuya receta no puede costearse se informa con costo 0.
func (uc *MenuUseCase) ListIngredients(ctx context.Context) ([]dto.IngredientResponse, error) {
	ings, err := uc.ingreds.List(ctx)
	if err != nil {
		return nil, err
	}
	resolver, _, err := loadResolver(ctx, repository.Repos{Menu: uc.menus, Ingredients: uc.ingreds, Recipes: uc.recipes})
	if err != nil {
		return nil, err
	}
	out := make([]dto.IngredientResponse, 0, len(ings))
	for _, in := range ings {
		resp := toIngredientResponse(in)
		if unit, err := resolver.IngredientUnitCost(in.ID); err == nil {
			resp.UnitCost = unit.Round(4)
		}
		out = append(out, resp)
	}
	return out, nil
}

// GetIngredient obtiene un ingrediente.
func (uc *MenuUseCase) GetIngredient(ctx context.Context, id int64) (*dto.IngredientResponse, error) {
	in, err := uc.ingreds.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in == nil {
		return nil, domain.ErrNotFound
	}
	resolver, _, err := loadResolver(ctx, repository.Repos{Menu: uc.menus, Ingredients: uc.ingreds, Recipes: uc.recipes})
	if err != nil {
		return nil, err
	}
	resp := toIngredientResponse(in)
	if unit, err := resolver.IngredientUnitCost(in.ID); err == nil {
		resp.UnitCost = unit.Round(4)
	}
	return &resp, nil
}

// CreateIngredient crea un ingrediente. Un compuesto debe apuntar a un plato existente.
func (uc *MenuUseCase) CreateIngredient(ctx context.Context, in dto.IngredientRequest) (*dto.IngredientResponse, error) {
	ing := &entity.Ingredient{CreatedAt: time.Now().UTC()}
	if err := applyIngredient(ing, in); err != nil {
		return nil, err
	}
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		if err := checkCompound(ctx, r, ing); err != nil {
			return err
		}
		if err := r.Ingredients.Create(ctx, ing); err != nil {
			return err
		}
		_, err := costOf(ctx, r, ing.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return uc.GetIngredient(ctx, ing.ID)
}

// UpdateIngredient reemplaza los datos del ingrediente y recalcula el costo de
// los platos que lo usan. Un compuesto que forme un ciclo devuelve ErrRecipeCycle.
func (uc *MenuUseCase) UpdateIngredient(ctx context.Context, id int64, in dto.IngredientRequest) (*dto.IngredientResponse, error) {
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		ing, err := r.Ingredients.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if ing == nil {
			return domain.ErrNotFound
		}
		if err := applyIngredient(ing, in); err != nil {
			return err
		}
		if err := checkCompound(ctx, r, ing); err != nil {
			return err
		}
		if err := r.Ingredients.Update(ctx, ing); err != nil {
			return err
		}
		resolver, err := costOf(ctx, r, ing.ID)
		if err != nil {
			return err
		}
		return refreshMenuCosts(ctx, r, resolver, 0)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetIngredient(ctx, id)
}

// DeleteIngredient elimina el ingrediente en cascada: artículos de inventario
// vinculados y líneas de receta que lo usan. El historial de inventario se conserva.
func (uc *MenuUseCase) DeleteIngredient(ctx context.Context, id int64) (*dto.IngredientDeleteResponse, error) {
	out := &dto.IngredientDeleteResponse{ID: id}
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		ok, err := r.Ingredients.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotFound
		}
		if out.InventoryRemoved, err = r.Inventory.DeleteByIngredient(ctx, id); err != nil {
			return err
		}
		if out.RecipeLinesRemoved, err = r.Recipes.DeleteByIngredient(ctx, id); err != nil {
			return err
		}
		resolver, _, err := loadResolver(ctx, r)
		if err != nil {
			return err
		}
		return refreshMenuCosts(ctx, r, resolver, 0)
	})
	if err != nil {
		return nil, err
	}
	out.Deleted = true
	return out, nil
}

func applyIngredient(ing *entity.Ingredient, in dto.IngredientRequest) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Invalid("name", "es obligatorio")
	}
	unit := strings.TrimSpace(in.Unit)
	if unit == "" {
		return domain.Invalid("unit", "es obligatorio")
	}
	if in.Cost.IsNegative() {
		return domain.Invalid("cost", "no puede ser negativo")
	}
	if in.Servings < 0 {
		return domain.Invalid("servings", "no puede ser negativo")
	}
	if in.IsCompound && in.RecipeMenuID == nil {
		return domain.Invalid("recipe_menu_id", "es obligatorio para ingredientes compuestos")
	}
	ing.Name = name
	ing.Unit = unit
	ing.Cost = in.Cost
	ing.Servings = in.Servings
	if ing.Servings == 0 {
		ing.Servings = 1
	}
	ing.IsCompound = in.IsCompound
	ing.RecipeMenuID = nil
	if in.IsCompound {
		ing.RecipeMenuID = in.RecipeMenuID
	}
	return nil
}

func checkCompound(ctx context.Context, r repository.Repos, ing *entity.Ingredient) error {
	if !ing.IsCompound {
		return nil
	}
	m, err := r.Menu.GetByID(ctx, *ing.RecipeMenuID)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.Invalid("recipe_menu_id", "el plato no existe")
	}
	return nil
}

// costOf carga el resolver con el estado de la transacción y costea el ingrediente;
// detecta ciclos introducidos por el cambio.
func costOf(ctx context.Context, r repository.Repos, id int64) (*inventory.CostResolver, error) {
	resolver, _, err := loadResolver(ctx, r)
	if err != nil {
		return nil, err
	}
	if _, err := resolver.IngredientUnitCost(id); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return resolver, nil
}

func toIngredientResponse(in *entity.Ingredient) dto.IngredientResponse {
	return dto.IngredientResponse{
		ID:           in.ID,
		Name:         in.Name,
		Cost:         in.Cost,
		Unit:         in.Unit,
		Servings:     in.Servings,
		IsCompound:   in.IsCompound,
		RecipeMenuID: in.RecipeMenuID,
		UnitCost:     in.Cost,
		CreatedAt:    in.CreatedAt,
	}
}
