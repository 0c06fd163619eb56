package http

import (
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/foodtruck-api/internal/application/usecase"
	"github.com/jhoicas/foodtruck-api/internal/domain"
)

// BackupHandler descarga y restauración de la base de datos (solo admin).
type BackupHandler struct {
	uc       *usecase.BackupUseCase
	maxBytes int64
}

// NewBackupHandler construye el handler. maxBytes 0 no limita el tamaño del archivo.
func NewBackupHandler(uc *usecase.BackupUseCase, maxBytes int64) *BackupHandler {
	return &BackupHandler{uc: uc, maxBytes: maxBytes}
}

// Download godoc
// @Summary      Descargar copia de seguridad
// @Description  Instantánea consistente de la base SQLite.
// @Tags         backup
// @Security     Bearer
// @Produce      application/octet-stream
// @Success      200  {file}    file
// @Failure      501  {object}  dto.ErrorResponse
// @Router       /api/backup/download [get]
func (h *BackupHandler) Download(c *fiber.Ctx) error {
	path, name, err := h.uc.Snapshot(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	defer h.uc.Cleanup(path)
	// Se lee completo: el temporal se borra al salir del handler.
	data, err := os.ReadFile(path)
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment(name)
	c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
	return c.Send(data)
}

// Restore godoc
// @Summary      Restaurar copia de seguridad
// @Description  Reemplaza todas las tablas con el contenido del archivo subido.
// @Tags         backup
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "archivo .db"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      413   {object}  dto.ErrorResponse
// @Failure      501   {object}  dto.ErrorResponse
// @Router       /api/backup/restore [post]
func (h *BackupHandler) Restore(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "VALIDATION", "campo file requerido")
	}
	if h.maxBytes > 0 && fh.Size > h.maxBytes {
		return writeError(c, domain.ErrFileTooLarge)
	}
	src, err := fh.Open()
	if err != nil {
		return writeError(c, err)
	}
	defer src.Close()

	counts, err := h.uc.Restore(c.UserContext(), src)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"restored": true, "tables": counts})
}
