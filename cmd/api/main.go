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

	"github.com/tu-usuario/gestion-compras/internal/application/auth"
	"github.com/tu-usuario/gestion-compras/internal/application/usecase"
	"github.com/tu-usuario/gestion-compras/internal/infrastructure/gcs"
	"github.com/tu-usuario/gestion-compras/internal/infrastructure/ocr"
	infrapdf "github.com/tu-usuario/gestion-compras/internal/infrastructure/pdf"
	"github.com/tu-usuario/gestion-compras/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/gestion-compras/internal/interfaces/http"
	"github.com/tu-usuario/gestion-compras/pkg/config"
	"github.com/tu-usuario/gestion-compras/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	orderRepo := postgres.NewPurchaseOrderRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	orderUC := usecase.NewOrderUseCase(orderRepo)
	invoiceUC := usecase.NewInvoiceUseCase(invoiceRepo, orderRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Bucket de documentos adjuntos (PDF/imagen)
	storage, err := gcs.NewDocumentStore(ctx, cfg.Storage.Bucket, cfg.Storage.CredentialsJSON)
	if err != nil {
		log.Fatal().Err(err).Msg("cliente de Cloud Storage")
	}
	defer storage.Close()

	// OCR: extracción de campos de documentos escaneados
	extractor, err := ocr.NewVisionExtractor(ctx, cfg.Storage.CredentialsJSON)
	if err != nil {
		log.Fatal().Err(err).Msg("cliente de Cloud Vision")
	}
	defer extractor.Close()

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Gestión de Compras API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		OrderUC:     orderUC,
		InvoiceUC:   invoiceUC,
		AuthUC:      authUC,
		Storage:     storage,
		Extractor:   extractor,
		PDF:         pdfGenerator,
		JWTSecret:   cfg.JWT.Secret,
		MaxUploadMB: cfg.Storage.MaxUploadMB,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
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
