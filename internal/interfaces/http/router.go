package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/ecommerce-api/internal/application/analytics"
	"github.com/jhoicas/ecommerce-api/internal/application/auth"
	"github.com/jhoicas/ecommerce-api/internal/application/ordering"
	"github.com/jhoicas/ecommerce-api/internal/application/usecase"
	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-api/internal/infrastructure/ratelimit"
	"github.com/jhoicas/ecommerce-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CategoryUC  *usecase.CategoryUseCase
	ProductUC   *usecase.ProductUseCase
	CartUC      *usecase.CartUseCase
	OrderUC     *ordering.OrderUseCase
	DashboardUC *appanalytics.DashboardUseCase
	Customers   customerResolver
	AuthLimiter ratelimit.Limiter // nil = sin rate limit
	JWTSecret   string
	Log         *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api")
	authn := AuthMiddleware(deps.JWTSecret)
	admin := RequireRole(entity.RoleAdmin)
	customer := RequireCustomer(deps.Customers, log)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC, log)
	authGroup := api.Group("/auth")
	limited := RateLimit(deps.AuthLimiter, log)
	authGroup.Post("/register", limited, authHandler.Register)
	authGroup.Post("/login", limited, authHandler.Login)
	authGroup.Post("/refresh", limited, authHandler.Refresh)
	authGroup.Post("/logout", limited, authHandler.Logout)
	authGroup.Post("/logout-all", authn, authHandler.LogoutAll)
	authGroup.Get("/me", authn, authHandler.Me)

	// Categories (lectura pública, escritura ADMIN)
	categoryHandler := NewCategoryHandler(deps.CategoryUC, log)
	categories := api.Group("/categories")
	categories.Get("/", categoryHandler.List)
	categories.Get("/pagination", categoryHandler.Paginate)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Post("/", authn, admin, categoryHandler.Create)
	categories.Patch("/:id", authn, admin, categoryHandler.Update)
	categories.Delete("/:id", authn, admin, categoryHandler.Delete)

	// Products (lectura pública, escritura ADMIN)
	productHandler := NewProductHandler(deps.ProductUC, log)
	products := api.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/pagination", productHandler.Paginate)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", authn, admin, productHandler.Create)
	products.Patch("/:id", authn, admin, productHandler.Update)
	products.Delete("/:id", authn, admin, productHandler.Delete)

	// Cart (cliente autenticado)
	cartHandler := NewCartHandler(deps.CartUC, log)
	cart := api.Group("/cart", authn, customer)
	cart.Get("/", cartHandler.Get)
	cart.Delete("/", cartHandler.Clear)
	cart.Post("/items", cartHandler.AddItem)
	cart.Patch("/items/:productId", cartHandler.UpdateItem)
	cart.Delete("/items/:productId", cartHandler.RemoveItem)

	// Orders
	orderHandler := NewOrderHandler(deps.OrderUC, log)
	orders := api.Group("/orders", authn)
	orders.Post("/", customer, orderHandler.Create)
	orders.Get("/my", customer, orderHandler.FindMy)
	orders.Get("/pagination", admin, orderHandler.Paginate)
	orders.Get("/:id", OptionalCustomer(deps.Customers, log), orderHandler.GetByID)
	orders.Get("/:id/receipt", OptionalCustomer(deps.Customers, log), orderHandler.Receipt)
	orders.Patch("/:id/status", admin, orderHandler.UpdateStatus)
	orders.Patch("/:id/cancel", customer, orderHandler.Cancel)

	// Admin
	if deps.DashboardUC != nil {
		dashboardHandler := NewDashboardHandler(deps.DashboardUC, log)
		api.Get("/admin/dashboard", authn, admin, dashboardHandler.GetSummary)
	}
}
