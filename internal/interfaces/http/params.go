package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/foodtruck-api/internal/application/dto"
	"github.com/jhoicas/foodtruck-api/internal/domain"
)

const dateLayout = "2006-01-02"

// paramID lee el parámetro de ruta name como id positivo.
func paramID(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func missingID(c *fiber.Ctx) error {
	return respondError(c, fiber.StatusBadRequest, "MISSING_ID", "id requerido")
}

// queryDate interpreta un parámetro YYYY-MM-DD opcional.
func queryDate(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, domain.Invalid(key, "formato esperado YYYY-MM-DD")
	}
	return &t, nil
}

// queryRange lee start y end (inclusivo) y devuelve el intervalo [start, end+1d).
func queryRange(c *fiber.Ctx) (start, end *time.Time, err error) {
	if start, err = queryDate(c, "start"); err != nil {
		return nil, nil, err
	}
	if end, err = queryDate(c, "end"); err != nil {
		return nil, nil, err
	}
	if end != nil {
		next := end.AddDate(0, 0, 1)
		end = &next
	}
	if start != nil && end != nil && !start.Before(*end) {
		return nil, nil, domain.Invalid("start", "debe ser anterior o igual a end")
	}
	return start, end, nil
}

func pageQuery(c *fiber.Ctx) dto.PageRequest {
	p := dto.PageRequest{Limit: c.QueryInt("limit", 0), Offset: c.QueryInt("offset", 0)}
	p.DefaultPage()
	return p
}
