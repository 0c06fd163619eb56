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

// DefaultRecipeType tipo de receta cuando el cliente no envía uno.
const DefaultRecipeType = "Food"

// MenuUseCase CRUD de platos, ingredientes y recetas con costeo.
type MenuUseCase struct {
	txRunner TxRunner
	menus    repository.MenuRepository
	ingreds  repository.IngredientRepository
	recipes  repository.RecipeRepository
}

// NewMenuUseCase construye el caso de uso.
func NewMenuUseCase(
	txRunner TxRunner,
	menus repository.MenuRepository,
	ingreds repository.IngredientRepository,
	recipes repository.RecipeRepository,
) *MenuUseCase {
	return &MenuUseCase{txRunner: txRunner, menus: menus, ingreds: ingreds, recipes: recipes}
}

// ListMenu lista los platos con su margen.
func (uc *MenuUseCase) ListMenu(ctx context.Context) ([]dto.MenuItemResponse, error) {
	items, err := uc.menus.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MenuItemResponse, 0, len(items))
	for _, m := range items {
		out = append(out, toMenuResponse(m))
	}
	return out, nil
}

// GetMenu obtiene un plato.
func (uc *MenuUseCase) GetMenu(ctx context.Context, id int64) (*dto.MenuItemResponse, error) {
	m, err := uc.menus.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	out := toMenuResponse(m)
	return &out, nil
}

// CreateMenu crea un plato.
func (uc *MenuUseCase) CreateMenu(ctx context.Context, in dto.MenuItemRequest) (*dto.MenuItemResponse, error) {
	m := &entity.MenuItem{}
	if err := applyMenu(m, in); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	m.CreatedAt, m.UpdatedAt = now, now
	if err := uc.menus.Create(ctx, m); err != nil {
		return nil, err
	}
	out := toMenuResponse(m)
	return &out, nil
}

// UpdateMenu reemplaza los datos del plato. Si el plato tiene receta, su costo
// se recalcula desde ella (también tras un cambio de porciones) y el costo
// enviado se ignora; los platos que lo usan como ingrediente compuesto se recostean.
func (uc *MenuUseCase) UpdateMenu(ctx context.Context, id int64, in dto.MenuItemRequest) (*dto.MenuItemResponse, error) {
	var out dto.MenuItemResponse
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		m, err := r.Menu.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
		if err := applyMenu(m, in); err != nil {
			return err
		}
		m.UpdatedAt = time.Now().UTC()
		if err := r.Menu.Update(ctx, m); err != nil {
			return err
		}
		resolver, _, err := loadResolver(ctx, r)
		if err != nil {
			return err
		}
		if err := refreshMenuCosts(ctx, r, resolver, 0); err != nil {
			return err
		}
		if m, err = r.Menu.GetByID(ctx, id); err != nil {
			return err
		}
		out = toMenuResponse(m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteMenu elimina el plato junto con sus líneas de receta y recostea los
// platos que lo usaban como ingrediente compuesto (ese ingrediente pasa a costo 0).
func (uc *MenuUseCase) DeleteMenu(ctx context.Context, id int64) error {
	return uc.txRunner.Run(ctx, func(r repository.Repos) error {
		ok, err := r.Menu.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotFound
		}
		if err := r.Recipes.DeleteByMenu(ctx, id); err != nil {
			return err
		}
		resolver, _, err := loadResolver(ctx, r)
		if err != nil {
			return err
		}
		return refreshMenuCosts(ctx, r, resolver, 0)
	})
}

func applyMenu(m *entity.MenuItem, in dto.MenuItemRequest) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Invalid("name", "es obligatorio")
	}
	if in.Price.IsNegative() {
		return domain.Invalid("price", "no puede ser negativo")
	}
	if in.Cost.IsNegative() {
		return domain.Invalid("cost", "no puede ser negativo")
	}
	if in.Portions < 0 {
		return domain.Invalid("portions", "no puede ser negativo")
	}
	m.Name = name
	m.Price = in.Price
	m.Cost = in.Cost
	m.RecipeType = strings.TrimSpace(in.RecipeType)
	if m.RecipeType == "" {
		m.RecipeType = DefaultRecipeType
	}
	m.Category = strings.TrimSpace(in.Category)
	m.Portions = in.Portions
	if m.Portions == 0 {
		m.Portions = 1
	}
	m.Description = in.Description
	return nil
}

// GetRecipe devuelve las líneas de receta de un plato con sus costos.
func (uc *MenuUseCase) GetRecipe(ctx context.Context, menuID int64) (*dto.RecipeResponse, error) {
	m, err := uc.menus.GetByID(ctx, menuID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	resolver, names, err := loadResolver(ctx, repository.Repos{Menu: uc.menus, Ingredients: uc.ingreds, Recipes: uc.recipes})
	if err != nil {
		return nil, err
	}
	rc, err := resolver.MenuCost(menuID)
	if err != nil {
		return nil, err
	}
	return toRecipeResponse(menuID, rc, names), nil
}

// SaveRecipe reemplaza las líneas de receta del plato y guarda el costo por
// porción resultante en menu.cost, en una sola transacción.
func (uc *MenuUseCase) SaveRecipe(ctx context.Context, in dto.SaveRecipeRequest) (*dto.RecipeResponse, error) {
	if in.MenuID <= 0 {
		return nil, domain.Invalid("menu_id", "es obligatorio")
	}
	lines := make([]*entity.RecipeLine, 0, len(in.Ingredients))
	for _, l := range in.Ingredients {
		if l.IngredientID <= 0 {
			return nil, domain.Invalid("ingredient_id", "es obligatorio")
		}
		if !l.Quantity.IsPositive() {
			return nil, domain.Invalid("quantity", "debe ser mayor que cero")
		}
		lines = append(lines, &entity.RecipeLine{
			MenuID:       in.MenuID,
			IngredientID: l.IngredientID,
			Quantity:     l.Quantity,
			Unit:         strings.TrimSpace(l.Unit),
		})
	}

	var out *dto.RecipeResponse
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		m, err := r.Menu.GetByID(ctx, in.MenuID)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
		resolver, names, err := loadResolver(ctx, r)
		if err != nil {
			return err
		}
		values := make([]entity.RecipeLine, len(lines))
		for i, l := range lines {
			if _, ok := names[l.IngredientID]; !ok {
				return domain.Invalid("ingredient_id", "el ingrediente no existe")
			}
			values[i] = *l
		}
		rc, err := resolver.WithLines(in.MenuID, values).MenuCost(in.MenuID)
		if err != nil {
			return err
		}
		if err := r.Recipes.ReplaceForMenu(ctx, in.MenuID, lines); err != nil {
			return err
		}
		for i := range rc.Lines {
			rc.Lines[i].Line.ID = lines[i].ID
		}
		if err := r.Menu.UpdateCost(ctx, in.MenuID, rc.PerPortion.Round(4)); err != nil {
			return err
		}
		if err := refreshMenuCosts(ctx, r, resolver, in.MenuID); err != nil {
			return err
		}
		out = toRecipeResponse(in.MenuID, rc, names)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// loadResolver carga ingredientes, platos y recetas completos. names indexa los ingredientes por id.
func loadResolver(ctx context.Context, r repository.Repos) (*inventory.CostResolver, map[int64]string, error) {
	ings, err := r.Ingredients.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	menus, err := r.Menu.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	lines, err := r.Recipes.ListAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	names := make(map[int64]string, len(ings))
	ingVals := make([]entity.Ingredient, len(ings))
	for i, in := range ings {
		ingVals[i] = *in
		names[in.ID] = in.Name
	}
	menuVals := make([]entity.MenuItem, len(menus))
	for i, m := range menus {
		menuVals[i] = *m
	}
	lineVals := make([]entity.RecipeLine, len(lines))
	for i, l := range lines {
		lineVals[i] = *l
	}
	return inventory.NewCostResolver(ingVals, menuVals, lineVals), names, nil
}

// refreshMenuCosts recalcula menu.cost de los platos con receta (salvo skip).
// Los platos cuya receta ya no puede costearse conservan su costo.
func refreshMenuCosts(ctx context.Context, r repository.Repos, resolver *inventory.CostResolver, skip int64) error {
	lines, err := r.Recipes.ListAll(ctx)
	if err != nil {
		return err
	}
	seen := map[int64]bool{skip: true}
	for _, l := range lines {
		if seen[l.MenuID] {
			continue
		}
		seen[l.MenuID] = true
		rc, err := resolver.MenuCost(l.MenuID)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		if err := r.Menu.UpdateCost(ctx, l.MenuID, rc.PerPortion.Round(4)); err != nil {
			return err
		}
	}
	return nil
}

func toMenuResponse(m *entity.MenuItem) dto.MenuItemResponse {
	return dto.MenuItemResponse{
		ID:           m.ID,
		Name:         m.Name,
		Price:        m.Price,
		Cost:         m.Cost,
		RecipeType:   m.RecipeType,
		Category:     m.Category,
		Portions:     m.Portions,
		Description:  m.Description,
		ProfitMargin: m.ProfitMargin(),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toRecipeResponse(menuID int64, rc inventory.RecipeCost, names map[int64]string) *dto.RecipeResponse {
	out := &dto.RecipeResponse{
		MenuID:         menuID,
		Lines:          make([]dto.RecipeLineResponse, 0, len(rc.Lines)),
		TotalCost:      rc.Total.Round(4),
		CostPerPortion: rc.PerPortion.Round(4),
	}
	for _, lc := range rc.Lines {
		out.Lines = append(out.Lines, dto.RecipeLineResponse{
			ID:             lc.Line.ID,
			IngredientID:   lc.Line.IngredientID,
			IngredientName: names[lc.Line.IngredientID],
			Quantity:       lc.Line.Quantity,
			Unit:           lc.Line.Unit,
			UnitCost:       lc.UnitCost.Round(4),
			LineCost:       lc.Cost.Round(4),
		})
	}
	return out
}
