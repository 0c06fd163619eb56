package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/foodtruck-api/internal/application/dto"
	"github.com/jhoicas/foodtruck-api/internal/application/inventory"
)

// InventoryHandler maneja artículos de inventario, el libro de stock y la reposición.
type InventoryHandler struct {
	ledger        *inventory.LedgerUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.LedgerUseCase, replenishment *inventory.ReplenishmentUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, replenishment: replenishment}
}

// List godoc
// @Summary      Listar inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.InventoryItemResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	out, err := h.ledger.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener artículo de inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path      int  true  "ID"
// @Success      200  {object}  dto.InventoryItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [get]
func (h *InventoryHandler) Get(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return missingID(c)
	}
	out, err := h.ledger.Get(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear artículo de inventario
// @Description  name y unit son obligatorios salvo que venga ingredient_id. Un stock inicial distinto de cero genera un registro "initial" en el historial.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateInventoryRequest  true  "artículo"
// @Success      201   {object}  dto.InventoryItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.ledger.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar artículo de inventario
// @Description  Un cambio de current_stock pasa por el libro de stock (change_type por defecto "adjustment").
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      int                         true  "ID"
// @Param        body  body      dto.UpdateInventoryRequest  true  "campos"
// @Success      200   {object}  dto.InventoryItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [put]
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return missingID(c)
	}
	var in dto.UpdateInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.ledger.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar artículo de inventario
// @Description  El historial del artículo se conserva.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path      int  true  "ID"
// @Success      200  {object}  dto.DeletedResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [delete]
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return missingID(c)
	}
	if err := h.ledger.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DeletedResponse{Deleted: true, ID: id})
}

// Adjust godoc
// @Summary      Ajustar stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      int                     true  "ID"
// @Param        body  body      dto.AdjustStockRequest  true  "delta, change_type, notes, unit_cost (entradas)"
// @Success      200   {object}  dto.AdjustStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return missingID(c)
	}
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.ledger.Adjust(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetReplenishmentList godoc
// @Summary      Artículos bajo mínimo
// @Description  Artículos con current_stock < min_stock, con la cantidad sugerida de pedido, ordenados por déficit.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockItemDTO
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	out, err := h.replenishment.LowStock(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de movimientos de stock
// @Description  También disponible como /api/inventory-transactions. Más recientes primero.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        inventory_id  query     int     false  "artículo"
// @Param        start         query     string  false  "YYYY-MM-DD"
// @Param        end           query     string  false  "YYYY-MM-DD (inclusivo)"
// @Param        limit         query     int     false  "límite"
// @Param        offset        query     int     false  "desplazamiento"
// @Success      200  {array}   dto.InventoryHistoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory-history [get]
func (h *InventoryHandler) History(c *fiber.Ctx) error {
	q, err := historyQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	if raw := c.Query("inventory_id"); raw != "" {
		id := int64(c.QueryInt("inventory_id", 0))
		if id <= 0 {
			return respondError(c, fiber.StatusBadRequest, "VALIDATION", "inventory_id inválido")
		}
		q.InventoryID = id
	}
	return h.history(c, q)
}

// ItemHistory godoc
// @Summary      Historial de un artículo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path      int  true  "ID"
// @Success      200  {array}   dto.InventoryHistoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/history [get]
func (h *InventoryHandler) ItemHistory(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return missingID(c)
	}
	q, err := historyQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	q.InventoryID = id
	return h.history(c, q)
}

func (h *InventoryHandler) history(c *fiber.Ctx, q dto.HistoryQuery) error {
	out, err := h.ledger.History(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func historyQuery(c *fiber.Ctx) (dto.HistoryQuery, error) {
	start, end, err := queryRange(c)
	if err != nil {
		return dto.HistoryQuery{}, err
	}
	return dto.HistoryQuery{Start: start, End: end, PageRequest: pageQuery(c)}, nil
}
