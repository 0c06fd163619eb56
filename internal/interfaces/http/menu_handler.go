package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/foodtruck-api/internal/application/dto"
	"github.com/jhoicas/foodtruck-api/internal/application/usecase"
)

// MenuHandler platos, ingredientes y recetas.
type MenuHandler struct {
	uc *usecase.MenuUseCase
}

// NewMenuHandler construye el handler.
func NewMenuHandler(uc *usecase.MenuUseCase) *MenuHandler {
	return &MenuHandler{uc: uc}
}

// ListMenu godoc
// @Summary      Listar menú
// @Tags         menu
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.MenuItemResponse
// @Router       /api/menu [get]
func (h *MenuHandler) ListMenu(c *fiber.Ctx) error {
	out, err := h.uc.ListMenu(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetMenu godoc
// @Summary      Obtener plato
// @Tags         menu
// @Security     Bearer
// @Produce      json
// @Param        id   path      int  true  "ID"
// @Success      200  {object}  dto.MenuItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/menu/{id} [get]
func (h *MenuHandler) GetMenu(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return missingID(c)
	}
	out, err := h.uc.GetMenu(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateMenu godoc
// @Summary      Crear plato
// @Tags         menu
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.MenuItemRequest  true  "name, price, cost, recipe_type, category, portions"
// @Success      201   {object}  dto.MenuItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/menu [post]
func (h *MenuHandler) CreateMenu(c *fiber.Ctx) error {
	var in dto.MenuItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateMenu(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateMenu godoc
// @Summary      Actualizar plato
// @Tags         menu
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      int                  true  "ID"
// @Param        body  body      dto.MenuItemRequest  true  "plato"
// @Success      200   {object}  dto.MenuItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/menu/{id} [put]
func (h *MenuHandler) UpdateMenu(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return missingID(c)
	}
	var in dto.MenuItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateMenu(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteMenu godoc
// @Summary      Eliminar plato
// @Description  Elimina también las líneas de su receta.
// @Tags         menu
// @Security     Bearer
// @Produce      json
// @Param        id   path      int  true  "ID"
// @Success      200  {object}  dto.DeletedResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/menu/{id} [delete]
func (h *MenuHandler) DeleteMenu(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return missingID(c)
	}
	if err := h.uc.DeleteMenu(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DeletedResponse{Deleted: true, ID: id})
}

// ListIngredients godoc
// @Summary      Listar ingredientes
// @Tags         ingredients
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.IngredientResponse
// @Router       /api/ingredients [get]
func (h *MenuHandler) ListIngredients(c *fiber.Ctx) error {
	out, err := h.uc.ListIngredients(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetIngredient godoc
// @Summary      Obtener ingrediente
// @Tags         ingredients
// @Security     Bearer
// @Produce      json
// @Param        id   path      int  true  "ID"
// @Success      200  {object}  dto.IngredientResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ingredients/{id} [get]
func (h *MenuHandler) GetIngredient(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return missingID(c)
	}
	out, err := h.uc.GetIngredient(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateIngredient godoc
// @Summary      Crear ingrediente
// @Tags         ingredients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.IngredientRequest  true  "name, cost, unit, servings, is_compound, recipe_menu_id"
// @Success      201   {object}  dto.IngredientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ingredients [post]
func (h *MenuHandler) CreateIngredient(c *fiber.Ctx) error {
	var in dto.IngredientRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateIngredient(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateIngredient godoc
// @Summary      Actualizar ingrediente
// @Description  Recalcula el costo de los platos que lo usan.
// @Tags         ingredients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      int                    true  "ID"
// @Param        body  body      dto.IngredientRequest  true  "ingrediente"
// @Success      200   {object}  dto.IngredientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ingredients/{id} [put]
func (h *MenuHandler) UpdateIngredient(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return missingID(c)
	}
	var in dto.IngredientRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateIngredient(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteIngredient godoc
// @Summary      Eliminar ingrediente
// @Description  Elimina en cascada los artículos de inventario vinculados y las líneas de receta que lo usan.
// @Tags         ingredients
// @Security     Bearer
// @Produce      json
// @Param        id   path      int  true  "ID"
// @Success      200  {object}  dto.IngredientDeleteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ingredients/{id} [delete]
func (h *MenuHandler) DeleteIngredient(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return missingID(c)
	}
	out, err := h.uc.DeleteIngredient(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetRecipe godoc
// @Summary      Receta de un plato
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        menuId  path      int  true  "ID del plato"
// @Success      200     {object}  dto.RecipeResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/recipes/{menuId} [get]
func (h *MenuHandler) GetRecipe(c *fiber.Ctx) error {
	id, ok := paramID(c, "menuId")
	if !ok {
		return missingID(c)
	}
	out, err := h.uc.GetRecipe(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SaveRecipe godoc
// @Summary      Guardar receta
// @Description  Reemplaza las líneas del plato y guarda el costo por porción en menu.cost.
// @Tags         recipes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.SaveRecipeRequest  true  "menu_id, ingredients"
// @Success      200   {object}  dto.RecipeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/recipes [post]
func (h *MenuHandler) SaveRecipe(c *fiber.Ctx) error {
	var in dto.SaveRecipeRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.SaveRecipe(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
