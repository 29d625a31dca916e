package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/auth"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/catalog"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/checkout"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/dashboard"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/dto"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/invoice"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/provisioning"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/store"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain/entity"
)

// RouterDeps dependencies of the router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	CatalogUC      *catalog.CatalogUseCase
	CheckoutUC     *checkout.CheckoutUseCase
	InvoiceUC      *invoice.InvoiceUseCase
	StoreUC        *store.StoreUseCase
	DashboardUC    *dashboard.DashboardUseCase
	ProvisioningUC *provisioning.ProvisioningUseCase
	// Limiter guards sign-in and provisioning; nil disables limiting.
	Limiter   Limiter
	JWTSecret string
	Log       zerolog.Logger
}

// AppConfig Fiber app settings.
type AppConfig struct {
	Name         string
	AllowOrigins string
}

// NewApp builds the Fiber app with the middleware every route shares.
func NewApp(cfg AppConfig, log zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	})
	app.Use(recover.New())
	app.Use(RequestLogger(log))
	origins := cfg.AllowOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Authorization, Content-Type, X-Client-Info, Apikey",
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
	}))
	return app
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	requireAuth := AuthMiddleware(deps.JWTSecret)
	limited := RateLimit(deps.Limiter, deps.Log, nil)

	// Provisioning keeps its own URL and {"error"} bodies.
	provisioningHandler := NewProvisioningHandler(deps.ProvisioningUC, deps.JWTSecret)
	app.All("/create-store-owner",
		RateLimit(deps.Limiter, deps.Log, func(c *fiber.Ctx) error {
			return errorBody(c, fiber.StatusTooManyRequests, "Too many requests")
		}),
		provisioningHandler.CreateStoreOwner,
	)

	api := app.Group("/api")

	// Auth (public except session)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/signup", authHandler.SignUp)
	authGroup.Post("/signin", limited, authHandler.SignIn)
	authGroup.Get("/session", requireAuth, authHandler.Session)

	// Stores
	storeHandler := NewStoreHandler(deps.StoreUC)
	productHandler := NewProductHandler(deps.CatalogUC)
	saleHandler := NewSaleHandler(deps.CheckoutUC)
	stores := api.Group("/stores", requireAuth)
	stores.Get("/", RequireRole(entity.RoleAdmin), storeHandler.List)
	stores.Get("/mine", storeHandler.Mine)
	stores.Patch("/:id/deactivate", RequireRole(entity.RoleAdmin), storeHandler.Deactivate)
	stores.Patch("/:id/activate", RequireRole(entity.RoleAdmin), storeHandler.Activate)

	// Catalog of a store
	stores.Get("/:storeID/products", productHandler.List)
	stores.Get("/:storeID/products/sellable", productHandler.Sellable)
	stores.Post("/:storeID/products", productHandler.Create)
	stores.Post("/:storeID/products/quick", productHandler.QuickAdd)

	// Checkout and history
	stores.Post("/:storeID/sales", saleHandler.Complete)
	stores.Get("/:storeID/sales", saleHandler.List)

	products := api.Group("/products", requireAuth)
	products.Get("/:id", productHandler.GetByID)
	products.Patch("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Invoices
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	sales := api.Group("/sales", requireAuth)
	sales.Get("/:id/invoice", invoiceHandler.Invoice)
	sales.Get("/:id/invoice.pdf", invoiceHandler.PDF)
	sales.Get("/:id/receipt", invoiceHandler.Receipt)

	// Dashboards
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dash := api.Group("/dashboard", requireAuth)
	dash.Get("/store", dashboardHandler.Store)
	dash.Get("/admin", RequireRole(entity.RoleAdmin), dashboardHandler.Admin)

	api.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "route not found"})
	})
}
