package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/foodtruck-api/internal/application/auth"
	"github.com/jhoicas/foodtruck-api/internal/application/inventory"
	"github.com/jhoicas/foodtruck-api/internal/application/usecase"
	"github.com/jhoicas/foodtruck-api/internal/domain/schema"
	"github.com/jhoicas/foodtruck-api/internal/infrastructure/storage"
)

// Pinger comprueba la conexión a la base de datos.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger        *inventory.LedgerUseCase
	Replenishment *inventory.ReplenishmentUseCase
	Waste         *inventory.WasteUseCase
	Reports       *usecase.ReportUseCase
	Menu          *usecase.MenuUseCase
	Records       *usecase.RecordUseCase
	Archive       *usecase.ArchiveUseCase
	Contacts      *usecase.ContactUseCase
	Settings      *usecase.SettingsUseCase
	Files         *usecase.FileUseCase
	Users         *usecase.UserUseCase
	Backup        *usecase.BackupUseCase
	AuthUC        *auth.AuthUseCase
	DB            Pinger

	JWTSecret     string
	AuthRequired  bool
	ServiceName   string
	UploadDir     string
	StaticDir     string
	IndexHTMLPath string

	// MaxRestoreBytes tamaño máximo de la copia a restaurar (0 = sin límite propio).
	MaxRestoreBytes int64
}

// Router registra las rutas de la API, las subidas y el cliente estático.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", healthHandler(deps))

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Users)
	api.Post("/login", authHandler.Login)

	// Rutas protegidas (Bearer Token cuando AUTH_REQUIRED=true)
	var protected fiber.Router = api
	adminOnly := func(c *fiber.Ctx) error { return c.Next() }
	if deps.AuthRequired {
		protected = api.Group("/", AuthMiddleware(deps.JWTSecret))
		adminOnly = RequireRole(RoleAdmin)
	}
	protected.Get("/me", authHandler.Me)

	// Inventario y libro de stock
	inventoryHandler := NewInventoryHandler(deps.Ledger, deps.Replenishment)
	inv := protected.Group("/inventory")
	inv.Get("/", inventoryHandler.List)
	inv.Get("/low-stock", inventoryHandler.GetReplenishmentList)
	inv.Post("/", inventoryHandler.Create)
	inv.Get("/:id", inventoryHandler.Get)
	inv.Put("/:id", inventoryHandler.Update)
	inv.Delete("/:id", inventoryHandler.Delete)
	inv.Post("/:id/adjust", inventoryHandler.Adjust)
	inv.Get("/:id/history", inventoryHandler.ItemHistory)
	protected.Get("/inventory-history", inventoryHandler.History)
	protected.Get("/inventory-transactions", inventoryHandler.History)

	// Mermas
	wasteHandler := NewWasteHandler(deps.Waste)
	waste := protected.Group("/waste-log")
	waste.Get("/", wasteHandler.List)
	waste.Post("/", wasteHandler.Create)
	waste.Get("/:id", wasteHandler.Get)

	// Reportes
	reportHandler := NewReportHandler(deps.Reports)
	reports := protected.Group("/reports")
	reports.Get("/inventory-usage", reportHandler.InventoryUsage)
	reports.Get("/waste", reportHandler.Waste)
	reports.Get("/:report/export", reportHandler.Export)

	// Menú, ingredientes y recetas
	menuHandler := NewMenuHandler(deps.Menu)
	menu := protected.Group("/menu")
	menu.Get("/", menuHandler.ListMenu)
	menu.Post("/", menuHandler.CreateMenu)
	menu.Get("/:id", menuHandler.GetMenu)
	menu.Put("/:id", menuHandler.UpdateMenu)
	menu.Delete("/:id", menuHandler.DeleteMenu)
	ingredients := protected.Group("/ingredients")
	ingredients.Get("/", menuHandler.ListIngredients)
	ingredients.Post("/", menuHandler.CreateIngredient)
	ingredients.Get("/:id", menuHandler.GetIngredient)
	ingredients.Put("/:id", menuHandler.UpdateIngredient)
	ingredients.Delete("/:id", menuHandler.DeleteIngredient)
	protected.Get("/recipes/:menuId", menuHandler.GetRecipe)
	protected.Post("/recipes", menuHandler.SaveRecipe)

	// Recursos genéricos, archivado e historial de contactos
	recordHandler := NewRecordHandler(deps.Records, deps.Archive, deps.Contacts)
	protected.Get("/contacts/:id/history", recordHandler.ContactHistory)
	for _, t := range schema.Generic() {
		recordHandler.Register(protected, t)
	}

	// Preferencias y datos del negocio
	settingsHandler := NewSettingsHandler(deps.Settings)
	settings := protected.Group("/settings")
	settings.Get("/", settingsHandler.All)
	settings.Post("/", settingsHandler.Set)
	settings.Post("/bulk", settingsHandler.SetBulk)
	settings.Get("/:key", settingsHandler.Get)
	settings.Delete("/:key", settingsHandler.Delete)
	protected.Get("/business-info", settingsHandler.BusinessInfo)
	protected.Post("/business-info", settingsHandler.SaveBusinessInfo)

	// Archivos
	fileHandler := NewFileHandler(deps.Files)
	files := protected.Group("/files")
	files.Get("/", fileHandler.List)
	files.Post("/", fileHandler.Create)
	files.Get("/:id", fileHandler.Get)
	files.Put("/:id", fileHandler.Update)
	files.Delete("/:id", fileHandler.Delete)
	if deps.AuthRequired {
		app.Post("/upload", AuthMiddleware(deps.JWTSecret), fileHandler.Upload)
	} else {
		app.Post("/upload", fileHandler.Upload)
	}

	// Usuarios (admin)
	userHandler := NewUserHandler(deps.Users)
	users := protected.Group("/users", adminOnly)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Copias de seguridad (admin)
	backupHandler := NewBackupHandler(deps.Backup, deps.MaxRestoreBytes)
	backup := protected.Group("/backup", adminOnly)
	backup.Get("/download", backupHandler.Download)
	backup.Post("/restore", backupHandler.Restore)

	// Rutas /api sin handler responden 404 JSON en lugar de caer al cliente estático.
	api.Use(func(c *fiber.Ctx) error {
		return respondError(c, fiber.StatusNotFound, "NOT_FOUND", "ruta no encontrada")
	})

	if deps.UploadDir != "" {
		app.Static(strings.TrimSuffix(storage.PublicPrefix, "/"), deps.UploadDir)
	}
	if deps.IndexHTMLPath != "" {
		app.Get("/", func(c *fiber.Ctx) error { return c.SendFile(deps.IndexHTMLPath) })
	}
	if deps.StaticDir != "" {
		app.Static("/", deps.StaticDir)
	}
}

func healthHandler(deps RouterDeps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.DB != nil {
			if err := deps.DB.PingContext(c.UserContext()); err != nil {
				requestLogger(c).Error().Err(err).Msg("health: ping a la base de datos")
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"status": "degraded", "service": deps.ServiceName, "db": "error",
				})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName, "db": "ok"})
	}
}
