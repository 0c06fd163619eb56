package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/foodtruck-api/internal/application/dto"
	"github.com/jhoicas/foodtruck-api/internal/application/usecase"
)

// ReportHandler reportes de consumo y mermas.
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// InventoryUsage godoc
// @Summary      Consumo de inventario
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start  query     string  false  "YYYY-MM-DD (por defecto hace 30 días)"
// @Param        end    query     string  false  "YYYY-MM-DD (inclusivo, por defecto hoy)"
// @Success      200    {object}  dto.InventoryUsageReport
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/reports/inventory-usage [get]
func (h *ReportHandler) InventoryUsage(c *fiber.Ctx) error {
	var q dto.ReportQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.InventoryUsage(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Waste godoc
// @Summary      Mermas por artículo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start  query     string  false  "YYYY-MM-DD"
// @Param        end    query     string  false  "YYYY-MM-DD (inclusivo)"
// @Success      200    {object}  dto.WasteReport
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/reports/waste [get]
func (h *ReportHandler) Waste(c *fiber.Ctx) error {
	var q dto.ReportQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Waste(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar reporte
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        report  path      string  true   "inventory-usage | waste"
// @Param        format  query     string  false  "pdf | xlsx"
// @Param        start   query     string  false  "YYYY-MM-DD"
// @Param        end     query     string  false  "YYYY-MM-DD (inclusivo)"
// @Success      200     {file}    file
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/reports/{report}/export [get]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	var q dto.ReportQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidBody(c)
	}
	file, err := h.uc.Export(c.UserContext(), c.Params("report"), c.Query("format"), q)
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment(file.Filename)
	c.Set(fiber.HeaderContentType, file.ContentType)
	return c.Send(file.Data)
}
