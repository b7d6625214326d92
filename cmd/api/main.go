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

	"github.com/spekmx/cotizador-api/internal/application/auth"
	"github.com/spekmx/cotizador-api/internal/application/quotation"
	"github.com/spekmx/cotizador-api/internal/application/usecase"
	infraai "github.com/spekmx/cotizador-api/internal/infrastructure/ai"
	infrapdf "github.com/spekmx/cotizador-api/internal/infrastructure/pdf"
	"github.com/spekmx/cotizador-api/internal/infrastructure/postgres"
	httpRouter "github.com/spekmx/cotizador-api/internal/interfaces/http"
	"github.com/spekmx/cotizador-api/pkg/config"
	"github.com/spekmx/cotizador-api/pkg/jwt"
	"github.com/spekmx/cotizador-api/pkg/logger"
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

	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	profileRepo := postgres.NewCompanyProfileRepository(pool)
	quotationRepo := postgres.NewQuotationRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	jwtMgr := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)
	authUC := auth.NewUseCase(userRepo, jwtMgr)

	quotationUC := quotation.NewUseCase(txRunner, quotationRepo, profileRepo)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	renderUC := quotation.NewRenderUseCase(quotationUC, pdfGenerator)
	customerUC := quotation.NewCustomerUseCase(customerRepo)
	companyUC := usecase.NewCompanyUseCase(txRunner, profileRepo)
	dashboardUC := usecase.NewDashboardUseCase(dashboardRepo)

	anthropicSvc := infraai.NewAnthropicService(cfg.AI.APIKey, cfg.AI.Model)
	aiUC := usecase.NewAIUseCase(anthropicSvc)

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
		Title:    "Cotizador API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		QuotationUC: quotationUC,
		RenderUC:    renderUC,
		CustomerUC:  customerUC,
		CompanyUC:   companyUC,
		DashboardUC: dashboardUC,
		AIUC:        aiUC,
		AIEnabled:   anthropicSvc.Enabled(),
		JWTManager:  jwtMgr,
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
