package http

import (
	"bytes"
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/foodtruck-api/internal/application/dto"
	"github.com/jhoicas/foodtruck-api/internal/application/usecase"
	"github.com/jhoicas/foodtruck-api/internal/domain/schema"
)

// RecordHandler CRUD genérico de los recursos declarados en el registro de tablas,
// más archivado de eventos y catering e historial de contactos.
type RecordHandler struct {
	records  *usecase.RecordUseCase
	archive  *usecase.ArchiveUseCase
	contacts *usecase.ContactUseCase
}

// NewRecordHandler construye el handler.
func NewRecordHandler(records *usecase.RecordUseCase, archive *usecase.ArchiveUseCase, contacts *usecase.ContactUseCase) *RecordHandler {
	return &RecordHandler{records: records, archive: archive, contacts: contacts}
}

// Register monta /<route> y, si la tabla es archivable, /archived-<route> bajo r.
func (h *RecordHandler) Register(r fiber.Router, t schema.Table) {
	g := r.Group("/" + t.Route)
	g.Get("/", h.list(t))
	g.Post("/", h.create(t))
	g.Get("/:id", h.get(t))
	g.Put("/:id", h.update(t))
	g.Delete("/:id", h.delete(t))

	if _, ok := t.Archive(); !ok {
		return
	}
	g.Post("/:id/archive", h.archiveRow(t))
	a := r.Group("/archived-" + t.Route)
	a.Get("/", h.listArchived(t))
	a.Get("/:id", h.getArchived(t))
	a.Post("/:id/restore", h.restore(t))
	a.Delete("/:id", h.deleteArchived(t))
}

// decodeObject decodifica un objeto JSON conservando los números como json.Number.
func decodeObject(c *fiber.Ctx) (map[string]any, bool) {
	dec := json.NewDecoder(bytes.NewReader(c.Body()))
	dec.UseNumber()
	var body map[string]any
	if err := dec.Decode(&body); err != nil || body == nil {
		return nil, false
	}
	return body, true
}

func (h *RecordHandler) list(t schema.Table) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := h.records.List(c.UserContext(), t, pageQuery(c))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}

func (h *RecordHandler) get(t schema.Table) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return missingID(c)
		}
		out, err := h.records.Get(c.UserContext(), t, id)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}

func (h *RecordHandler) create(t schema.Table) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body, ok := decodeObject(c)
		if !ok {
			return invalidBody(c)
		}
		out, err := h.records.Create(c.UserContext(), t, body)
		if err != nil {
			return writeError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(out)
	}
}

func (h *RecordHandler) update(t schema.Table) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return missingID(c)
		}
		body, ok := decodeObject(c)
		if !ok {
			return invalidBody(c)
		}
		out, err := h.records.Update(c.UserContext(), t, id, body)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}

func (h *RecordHandler) delete(t schema.Table) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return missingID(c)
		}
		if err := h.records.Delete(c.UserContext(), t, id); err != nil {
			return writeError(c, err)
		}
		return c.JSON(dto.DeletedResponse{Deleted: true, ID: id})
	}
}

func (h *RecordHandler) archiveRow(t schema.Table) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return missingID(c)
		}
		out, err := h.archive.Archive(c.UserContext(), t, id)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}

func (h *RecordHandler) listArchived(t schema.Table) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := h.archive.ListArchived(c.UserContext(), t)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}

func (h *RecordHandler) getArchived(t schema.Table) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return missingID(c)
		}
		out, err := h.archive.GetArchived(c.UserContext(), t, id)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}

func (h *RecordHandler) restore(t schema.Table) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return missingID(c)
		}
		out, err := h.archive.Restore(c.UserContext(), t, id)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}

func (h *RecordHandler) deleteArchived(t schema.Table) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return missingID(c)
		}
		if err := h.archive.DeleteArchived(c.UserContext(), t, id); err != nil {
			return writeError(c, err)
		}
		return c.JSON(dto.DeletedResponse{Deleted: true, ID: id})
	}
}

// ContactHistory godoc
// @Summary      Historial de un contacto
// @Description  Eventos y catering (vivos y archivados) cuyo contact_id coincide.
// @Tags         contacts
// @Security     Bearer
// @Produce      json
// @Param        id   path      int  true  "ID"
// @Success      200  {object}  dto.ContactHistoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/contacts/{id}/history [get]
func (h *RecordHandler) ContactHistory(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return missingID(c)
	}
	out, err := h.contacts.History(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
