package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/foodtruck-api/internal/application/dto"
	"github.com/jhoicas/foodtruck-api/internal/application/usecase"
)

// FileHandler subida de archivos y metadatos.
type FileHandler struct {
	uc *usecase.FileUseCase
}

// NewFileHandler construye el handler.
func NewFileHandler(uc *usecase.FileUseCase) *FileHandler {
	return &FileHandler{uc: uc}
}

// Upload godoc
// @Summary      Subir archivo
// @Description  Guarda el archivo como <unix-millis>_<nombre> y lo publica bajo /uploads/.
// @Tags         files
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file          formData  file    true   "archivo"
// @Param        category      formData  string  false  "categoría"
// @Param        description   formData  string  false  "descripción"
// @Param        related_type  formData  string  false  "tipo de registro relacionado"
// @Param        related_id    formData  int     false  "id del registro relacionado"
// @Success      201  {object}  dto.FileResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      413  {object}  dto.ErrorResponse
// @Failure      415  {object}  dto.ErrorResponse
// @Router       /upload [post]
func (h *FileHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "VALIDATION", "campo file requerido")
	}
	in := dto.UploadRequest{
		OriginalName: fh.Filename,
		Size:         fh.Size,
		Category:     c.FormValue("category"),
		Description:  c.FormValue("description"),
		RelatedType:  c.FormValue("related_type"),
	}
	if raw := c.FormValue("related_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return respondError(c, fiber.StatusBadRequest, "VALIDATION", "related_id inválido")
		}
		in.RelatedID = &id
	}
	src, err := fh.Open()
	if err != nil {
		return writeError(c, err)
	}
	defer src.Close()

	out, err := h.uc.Upload(c.UserContext(), in, src)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar archivos
// @Tags         files
// @Security     Bearer
// @Produce      json
// @Param        category  query  string  false  "filtrar por categoría"
// @Success      200  {array}  dto.FileResponse
// @Router       /api/files [get]
func (h *FileHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("category"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener archivo
// @Tags         files
// @Security     Bearer
// @Produce      json
// @Param        id   path      int  true  "ID"
// @Success      200  {object}  dto.FileResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/files/{id} [get]
func (h *FileHandler) Get(c *fiber.Ctx) error {
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

// Create godoc
// @Summary      Registrar metadatos de archivo
// @Description  Para archivos ya presentes en el directorio de subidas.
// @Tags         files
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.FileMetadataRequest  true  "filename, path, ..."
// @Success      201   {object}  dto.FileResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/files [post]
func (h *FileHandler) Create(c *fiber.Ctx) error {
	var in dto.FileMetadataRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar metadatos de archivo
// @Tags         files
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      int                      true  "ID"
// @Param        body  body      dto.FileMetadataRequest  true  "metadatos"
// @Success      200   {object}  dto.FileResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/files/{id} [put]
func (h *FileHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return missingID(c)
	}
	var in dto.FileMetadataRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar archivo
// @Description  Borra el registro y el archivo en disco.
// @Tags         files
// @Security     Bearer
// @Produce      json
// @Param        id   path      int  true  "ID"
// @Success      200  {object}  dto.DeletedResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/files/{id} [delete]
func (h *FileHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return missingID(c)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DeletedResponse{Deleted: true, ID: id})
}
