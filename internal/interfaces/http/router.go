package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ox-dashboard/internal/application/auth"
	"github.com/jhoicas/ox-dashboard/internal/application/session"
	"github.com/jhoicas/ox-dashboard/internal/application/usecase"
	"github.com/jhoicas/ox-dashboard/internal/domain/entity"
	"github.com/jhoicas/ox-dashboard/internal/infrastructure/metrics"
	"github.com/jhoicas/ox-dashboard/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Registry  *session.Registry
	Session   SessionConfig
	AuthUC    *auth.AuthUseCase
	CompanyUC *usecase.CompanyUseCase
	ProductUC *usecase.ProductUseCase
	CatalogUC *usecase.CatalogUseCase
	Metrics   *metrics.Prom // opcional
	Logger    *logger.Logger
}

// Router registra las pantallas, la API JSON y los guards.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}

	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
		app.Get("/metrics", deps.Metrics.Handler())
	}
	app.Use(RequestLogger(log))

	web := app.Group("/", SessionMiddleware(deps.Registry, deps.Session, log))

	dashboardHandler := NewDashboardHandler()
	authHandler := NewAuthHandler(deps.AuthUC, deps.Registry, log.Named("auth"))
	companyHandler := NewCompanyHandler(deps.CompanyUC, log.Named("company"))
	productHandler := NewProductHandler(deps.ProductUC, deps.CatalogUC, log.Named("products"))

	// Públicas
	web.Get("/", dashboardHandler.Home)
	web.Get("/login", authHandler.LoginPage)
	web.Post("/login", authHandler.BeginLogin)
	web.Post("/login/verify", authHandler.Verify)
	web.Post("/logout", authHandler.Logout)

	// Requieren sesión. Los guards van por ruta o por prefijo: un Use("/") alcanzaría a
	// todas las rutas registradas después.
	requireAuth := RequireAuth()
	web.Get("/dashboard", requireAuth, dashboardHandler.Dashboard)
	web.Get("/register", requireAuth, companyHandler.RegisterPage)
	web.Post("/register", requireAuth, companyHandler.Register)

	// Solo admin
	admin := web.Group("/companies", requireAuth, RequireRole(entity.RoleAdmin))
	admin.Get("/", companyHandler.CompaniesPage)
	admin.Post("/delete", companyHandler.Delete)

	// Requieren empresa vinculada
	products := web.Group("/products", requireAuth, RequireCompany())
	products.Get("/", productHandler.Page)
	products.Get("/export.pdf", productHandler.ExportPDF)

	// API JSON (misma cookie de sesión)
	api := web.Group("/api")
	api.Get("/session", authHandler.Session)
	api.Get("/products", requireAuth, RequireCompany(), productHandler.List)
}
