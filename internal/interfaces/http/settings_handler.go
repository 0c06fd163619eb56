package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/foodtruck-api/internal/application/dto"
	"github.com/jhoicas/foodtruck-api/internal/application/usecase"
)

// SettingsHandler preferencias clave/valor y datos del negocio.
type SettingsHandler struct {
	uc *usecase.SettingsUseCase
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(uc *usecase.SettingsUseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// All godoc
// @Summary      Todas las preferencias
// @Description  Incluye los valores por defecto de las claves no guardadas.
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/settings [get]
func (h *SettingsHandler) All(c *fiber.Ctx) error {
	out, err := h.uc.All(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener preferencia
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Param        key  path      string  true  "clave"
// @Success      200  {object}  dto.SettingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/settings/{key} [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("key"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Set godoc
// @Summary      Guardar preferencia
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.SettingRequest  true  "key, value"
// @Success      200   {object}  dto.SettingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/settings [post]
func (h *SettingsHandler) Set(c *fiber.Ctx) error {
	var in dto.SettingRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Set(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SetBulk godoc
// @Summary      Guardar varias preferencias
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      map[string]interface{}  true  "clave: valor"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/settings/bulk [post]
func (h *SettingsHandler) SetBulk(c *fiber.Ctx) error {
	var in map[string]any
	if err := c.BodyParser(&in); err != nil || in == nil {
		return invalidBody(c)
	}
	out, err := h.uc.SetBulk(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar preferencia
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Param        key  path      string  true  "clave"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/settings/{key} [delete]
func (h *SettingsHandler) Delete(c *fiber.Ctx) error {
	key := c.Params("key")
	if err := h.uc.Delete(c.UserContext(), key); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "preferencia eliminada: " + key})
}

// BusinessInfo godoc
// @Summary      Datos del negocio
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.BusinessInfoResponse
// @Router       /api/business-info [get]
func (h *SettingsHandler) BusinessInfo(c *fiber.Ctx) error {
	out, err := h.uc.BusinessInfo(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SaveBusinessInfo godoc
// @Summary      Guardar datos del negocio
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.BusinessInfoRequest  true  "datos"
// @Success      200   {object}  dto.BusinessInfoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/business-info [post]
func (h *SettingsHandler) SaveBusinessInfo(c *fiber.Ctx) error {
	var in dto.BusinessInfoRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.SaveBusinessInfo(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
