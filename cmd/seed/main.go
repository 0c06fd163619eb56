// seed carga eventos y pedidos de catering de ejemplo a través de la API REST.
//
// Uso: go run ./cmd/seed [url-base]
// Por defecto usa http://localhost:<HTTP_PORT>. Con AUTH_REQUIRED=true inicia sesión
// con ADMIN_USERNAME / ADMIN_PASSWORD (mismo .env que el servidor).
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jhoicas/foodtruck-api/internal/application/dto"
	"github.com/jhoicas/foodtruck-api/pkg/config"
	"github.com/jhoicas/foodtruck-api/pkg/logger"
)

type sample struct {
	path string
	body map[string]any
}

var samples = []sample{
	{"/api/events", map[string]any{
		"name": "Downtown Food Festival", "type": "Festival", "location": "Main Street",
		"date": "2025-01-22", "time": "10am-6pm", "fee": 150.00, "status": "Applied",
		"notes": "Popular festival with good foot traffic",
	}},
	{"/api/events", map[string]any{
		"name": "Farmers Market", "type": "Farmers Market", "location": "City Park",
		"date": "2025-01-26", "time": "8am-2pm", "fee": 75.00, "status": "Accepted",
		"notes": "Weekly market, regular customers",
	}},
	{"/api/catering", map[string]any{
		"client": "ABC Corp", "date": "2025-01-20", "guests": 50, "price": 2500.00,
		"status": "Booked", "deposit": 500.00, "setup_time": "2", "notes": "Corporate lunch event",
	}},
	{"/api/catering", map[string]any{
		"client": "Johnson Wedding", "date": "2025-01-25", "guests": 120, "price": 4800.00,
		"status": "Quote Sent", "deposit": 0, "setup_time": "3", "notes": "Outdoor wedding reception",
	}},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Named("seed")

	baseURL := fmt.Sprintf("http://localhost:%d", cfg.HTTP.Port)
	if len(os.Args) > 1 {
		baseURL = os.Args[1]
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetHeader("Content-Type", "application/json")

	if cfg.Auth.Required {
		var login dto.LoginResponse
		resp, err := client.R().
			SetBody(dto.LoginRequest{Username: cfg.Auth.AdminUsername, Password: cfg.Auth.AdminPassword}).
			SetResult(&login).
			Post("/api/login")
		if err != nil || resp.IsError() {
			log.Fatal().Err(err).Str("body", responseText(resp)).Msg("login")
		}
		client.SetAuthToken(login.Token)
	}

	var failed int
	for i, s := range samples {
		var created map[string]any
		resp, err := client.R().SetBody(s.body).SetResult(&created).Post(s.path)
		if err != nil || resp.IsError() {
			failed++
			log.Error().Err(err).Int("n", i+1).Str("path", s.path).Str("body", responseText(resp)).Msg("no se pudo crear")
			continue
		}
		log.Info().Int("n", i+1).Str("path", s.path).Interface("id", created["id"]).Msg("creado")
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func responseText(resp *resty.Response) string {
	if resp == nil {
		return ""
	}
	return resp.String()
}
