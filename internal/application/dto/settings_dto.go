package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettingRequest body para POST /api/settings. Value que no sea string se guarda como JSON.
type SettingRequest struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// SettingResponse par clave/valor.
type SettingResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// BusinessInfoRequest body para POST /api/business-info.
type BusinessInfoRequest struct {
	BusinessName  string           `json:"business_name"`
	Phone         string           `json:"phone"`
	Email         string           `json:"email"`
	Website       string           `json:"website"`
	Address       string           `json:"address"`
	Facebook      string           `json:"facebook"`
	Instagram     string           `json:"instagram"`
	LogoPath      string           `json:"logo_path"`
	DefaultMargin *decimal.Decimal `json:"default_margin,omitempty"`
}

// BusinessInfoResponse datos del negocio.
type BusinessInfoResponse struct {
	BusinessName  string          `json:"business_name"`
	Phone         string          `json:"phone"`
	Email         string          `json:"email"`
	Website       string          `json:"website"`
	Address       string          `json:"address"`
	Facebook      string          `json:"facebook"`
	Instagram     string          `json:"instagram"`
	LogoPath      string          `json:"logo_path"`
	DefaultMargin decimal.Decimal `json:"default_margin"`
	UpdatedAt     *time.Time      `json:"updated_at,omitempty"`
}
