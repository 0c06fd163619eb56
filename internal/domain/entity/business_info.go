package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BusinessInfo datos únicos del negocio (fila singleton).
type BusinessInfo struct {
	BusinessName  string
	Phone         string
	Email         string
	Website       string
	Address       string
	Facebook      string
	Instagram     string
	LogoPath      string
	DefaultMargin decimal.Decimal
	UpdatedAt     time.Time
}

// Setting par clave/valor de configuración del cliente.
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
