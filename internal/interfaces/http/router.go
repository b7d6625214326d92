package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spekmx/cotizador-api/internal/application/auth"
	"github.com/spekmx/cotizador-api/internal/application/quotation"
	"github.com/spekmx/cotizador-api/internal/application/usecase"
	"github.com/spekmx/cotizador-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	QuotationUC *quotation.UseCase
	RenderUC    *quotation.RenderUseCase
	CustomerUC  *quotation.CustomerUseCase
	CompanyUC   *usecase.CompanyUseCase
	DashboardUC *usecase.DashboardUseCase
	AIUC        *usecase.AIUseCase
	AIEnabled   bool
	JWTManager  *jwt.Manager
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTManager))

	// Quotations (protegido)
	quotations := protected.Group("/quotations")
	quotationHandler := NewQuotationHandler(deps.QuotationUC, deps.RenderUC)
	quotations.Get("/generate-number", quotationHandler.GenerateNumber)
	quotations.Post("/", quotationHandler.Create)
	quotations.Get("/", quotationHandler.List)
	quotations.Get("/:id", quotationHandler.GetByID)
	quotations.Put("/:id", quotationHandler.Update)
	quotations.Patch("/:id/status", quotationHandler.ChangeStatus)
	quotations.Delete("/:id", quotationHandler.Delete)
	quotations.Get("/:id/preview", quotationHandler.Preview)
	quotations.Get("/:id/print", quotationHandler.Print)
	quotations.Get("/:id/pdf", quotationHandler.DownloadPDF)

	// Customers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Company profiles (protegido)
	companies := protected.Group("/company-profiles")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Post("/", companyHandler.Create)
	companies.Get("/", companyHandler.List)
	companies.Get("/default", companyHandler.GetDefault)
	companies.Put("/:id", companyHandler.Update)
	companies.Delete("/:id", companyHandler.Delete)

	// Dashboard (protegido)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Summary)

	// AI (protegido)
	aiHandler := NewAIHandler(deps.AIUC, deps.AIEnabled)
	protected.Post("/ai/describe", aiHandler.GenerateDescription)
}
