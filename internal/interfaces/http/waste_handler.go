package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/foodtruck-api/internal/application/dto"
	"github.com/jhoicas/foodtruck-api/internal/application/inventory"
)

// WasteHandler registro de mermas.
type WasteHandler struct {
	uc *inventory.WasteUseCase
}

// NewWasteHandler construye el handler.
func NewWasteHandler(uc *inventory.WasteUseCase) *WasteHandler {
	return &WasteHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar merma
// @Description  Descuenta amount del stock y deja el movimiento en el historial.
// @Tags         waste
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateWasteRequest  true  "inventory_id, amount, reason"
// @Success      201   {object}  dto.WasteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/waste-log [post]
func (h *WasteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWasteRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Record(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar mermas
// @Tags         waste
// @Security     Bearer
// @Produce      json
// @Param        start  query     string  false  "YYYY-MM-DD"
// @Param        end    query     string  false  "YYYY-MM-DD (inclusivo)"
// @Success      200    {array}   dto.WasteResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/waste-log [get]
func (h *WasteHandler) List(c *fiber.Ctx) error {
	start, end, err := queryRange(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), start, end)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener merma
// @Tags         waste
// @Security     Bearer
// @Produce      json
// @Param        id   path      int  true  "ID"
// @Success      200  {object}  dto.WasteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/waste-log/{id} [get]
func (h *WasteHandler) Get(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return missingID(c)
	}
	out, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
