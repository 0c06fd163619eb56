package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/foodtruck-api/internal/application/auth"
	"github.com/jhoicas/foodtruck-api/internal/application/inventory"
	"github.com/jhoicas/foodtruck-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/foodtruck-api/internal/infrastructure/pdf"
	"github.com/jhoicas/foodtruck-api/internal/infrastructure/spreadsheet"
	"github.com/jhoicas/foodtruck-api/internal/infrastructure/sqlstore"
	"github.com/jhoicas/foodtruck-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/foodtruck-api/internal/interfaces/http"
	"github.com/jhoicas/foodtruck-api/pkg/config"
	"github.com/jhoicas/foodtruck-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	db, err := sqlstore.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a la base de datos")
	}
	defer db.Close()

	if err := sqlstore.Migrate(ctx, db, log.Named("migrate")); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	repos := db.Repos()
	txRunner := sqlstore.NewTxRunner(db)
	userRepo := sqlstore.NewUserRepository(db.DB)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if err := authUC.EnsureAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword, log.Named("auth")); err != nil {
		log.Fatal().Err(err).Msg("crear administrador inicial")
	}

	uploads, err := storage.NewDiskStore(cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("directorio de subidas")
	}

	ledgerUC := inventory.NewLedgerUseCase(txRunner, repos.Inventory, repos.History, repos.Ingredients)
	replenishmentUC := inventory.NewReplenishmentUseCase(repos.Inventory)
	wasteUC := inventory.NewWasteUseCase(txRunner, repos.Waste)
	settingsUC := usecase.NewSettingsUseCase(sqlstore.NewSettingsRepository(db.DB), sqlstore.NewBusinessInfoRepository(db.DB))

	// Exportación de reportes: PDF (maroto) y XLSX (excelize)
	reportUC := usecase.NewReportUseCase(
		sqlstore.NewReportRepository(db.DB), settingsUC,
		infrapdf.NewMarotoReportGenerator(), spreadsheet.NewExcelExporter(),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    cfg.Storage.BodyLimit(),
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Named("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Food Truck API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ledger:        ledgerUC,
		Replenishment: replenishmentUC,
		Waste:         wasteUC,
		Reports:       reportUC,
		Menu:          usecase.NewMenuUseCase(txRunner, repos.Menu, repos.Ingredients, repos.Recipes),
		Records:       usecase.NewRecordUseCase(repos.Records),
		Archive:       usecase.NewArchiveUseCase(txRunner, repos.Records),
		Contacts:      usecase.NewContactUseCase(repos.Records),
		Settings:      settingsUC,
		Files:         usecase.NewFileUseCase(sqlstore.NewFileRepository(db.DB), uploads, log.Named("files")),
		Users:         usecase.NewUserUseCase(userRepo),
		Backup:        usecase.NewBackupUseCase(db, os.TempDir(), log.Named("backup"), settingsUC),
		AuthUC:        authUC,
		DB:            db,
		JWTSecret:     cfg.JWT.Secret,
		AuthRequired:  cfg.Auth.Required,
		ServiceName:   cfg.App.Name,
		UploadDir:     uploads.Dir(),
		StaticDir:     cfg.HTTP.StaticDir,
		IndexHTMLPath: cfg.HTTP.IndexHTMLPath,

		MaxRestoreBytes: int64(cfg.Storage.MaxRestoreBytes),
	})

	go func() {
		addr := cfg.HTTP.Addr()
		var err error
		if fileExists(cfg.HTTP.TLSCertFile) && fileExists(cfg.HTTP.TLSKeyFile) {
			log.Info().Str("addr", addr).Msg("escuchando HTTPS")
			err = app.ListenTLS(addr, cfg.HTTP.TLSCertFile, cfg.HTTP.TLSKeyFile)
		} else {
			log.Info().Str("addr", addr).Msg("certificados no encontrados, escuchando HTTP")
			err = app.Listen(addr)
		}
		if err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}
