package usecase

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/foodtruck-api/internal/domain"
	"github.com/jhoicas/foodtruck-api/internal/domain/entity"
	"github.com/jhoicas/foodtruck-api/internal/domain/schema"
)

// buildRecord valida body contra las columnas de t y devuelve la fila a escribir.
// Campos desconocidos se ignoran. Los ausentes toman el valor por defecto (o NULL);
// en creación las columnas AutoNow reciben now y en actualización no se tocan.
func buildRecord(t schema.Table, body map[string]any, now time.Time, creating bool) (entity.Record, error) {
	rec := entity.Record{}
	for _, c := range t.Columns {
		if c.AutoNow {
			if creating {
				rec[c.Name] = now
			}
			continue
		}
		raw, present := body[c.Name]
		if !present || raw == nil {
			if c.Default != nil {
				rec[c.Name] = c.Default
				continue
			}
			if c.Required {
				return nil, domain.Invalid(c.Name, "es obligatorio")
			}
			rec[c.Name] = nil
			continue
		}
		v, err := coerce(c, raw)
		if err != nil {
			return nil, err
		}
		if v == nil && c.Required {
			return nil, domain.Invalid(c.Name, "es obligatorio")
		}
		if v == nil && c.Default != nil {
			v = c.Default
		}
		rec[c.Name] = v
	}
	return rec, nil
}

func coerce(c schema.Column, raw any) (any, error) {
	mismatch := func() error {
		return domain.Invalid(c.Name, "se esperaba "+c.Type.String())
	}
	switch c.Type {
	case schema.Text:
		switch x := raw.(type) {
		case string:
			if strings.TrimSpace(x) == "" && c.Required {
				return nil, nil
			}
			return x, nil
		case json.Number:
			return x.String(), nil
		case float64:
			return strconv.FormatFloat(x, 'f', -1, 64), nil
		case bool:
			return strconv.FormatBool(x), nil
		}
		return nil, mismatch()

	case schema.Integer:
		switch x := raw.(type) {
		case json.Number:
			if n, err := x.Int64(); err == nil {
				return n, nil
			}
			return nil, mismatch()
		case float64:
			if x != math.Trunc(x) {
				return nil, mismatch()
			}
			return int64(x), nil
		case int64:
			return x, nil
		case int:
			return int64(x), nil
		case string:
			if strings.TrimSpace(x) == "" {
				return nil, nil
			}
			n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
			if err != nil {
				return nil, mismatch()
			}
			return n, nil
		}
		return nil, mismatch()

	case schema.Real:
		switch x := raw.(type) {
		case json.Number:
			f, err := x.Float64()
			if err != nil {
				return nil, mismatch()
			}
			return f, nil
		case float64:
			return x, nil
		case int64:
			return float64(x), nil
		case int:
			return float64(x), nil
		case string:
			if strings.TrimSpace(x) == "" {
				return nil, nil
			}
			f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
			if err != nil {
				return nil, mismatch()
			}
			return f, nil
		}
		return nil, mismatch()

	case schema.Bool:
		switch x := raw.(type) {
		case bool:
			return x, nil
		case json.Number:
			switch x.String() {
			case "0":
				return false, nil
			case "1":
				return true, nil
			}
		case float64:
			if x == 0 || x == 1 {
				return x == 1, nil
			}
		case string:
			b, err := strconv.ParseBool(strings.TrimSpace(x))
			if err == nil {
				return b, nil
			}
		}
		return nil, mismatch()

	case schema.Timestamp:
		switch x := raw.(type) {
		case time.Time:
			return x.UTC(), nil
		case string:
			if strings.TrimSpace(x) == "" {
				return nil, nil
			}
			for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04", "2006-01-02"} {
				if ts, err := time.Parse(layout, strings.TrimSpace(x)); err == nil {
					return ts.UTC(), nil
				}
			}
		}
		return nil, mismatch()
	}
	return nil, fmt.Errorf("tipo de columna desconocido %v", c.Type)
}
