package dto

import "github.com/shopspring/decimal"

func init() {
	// Cantidades y montos viajan como números JSON, no como strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage normaliza Limit/Offset. Limit 0 significa sin límite.
func (p *PageRequest) DefaultPage() {
	if p.Limit < 0 {
		p.Limit = 0
	}
	if p.Limit > 1000 {
		p.Limit = 1000
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple para acciones sin cuerpo propio.
type MessageResponse struct {
	Message string `json:"message"`
}

// DeletedResponse respuesta de DELETE.
type DeletedResponse struct {
	Deleted bool  `json:"deleted"`
	ID      int64 `json:"id"`
}
