package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/AppHatchery-01/kirana-pos-easy/docs"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/access"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/auth"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/catalog"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/checkout"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/dashboard"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/invoice"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/provisioning"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/store"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/infrastructure/metrics"
	infrapdf "github.com/AppHatchery-01/kirana-pos-easy/internal/infrastructure/pdf"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/infrastructure/postgres"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/infrastructure/ratelimit"
	httpRouter "github.com/AppHatchery-01/kirana-pos-easy/internal/interfaces/http"
	"github.com/AppHatchery-01/kirana-pos-easy/pkg/config"
	"github.com/AppHatchery-01/kirana-pos-easy/pkg/logger"
)

// @title                       Kirana POS API
// @version                     1.0
// @description                 Point of sale backend for kirana stores: catalog, checkout, GST invoices and store onboarding.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	storeRepo := postgres.NewStoreRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	m := metrics.New()
	guard := access.NewGuard(roleRepo, storeRepo)

	authUC := auth.NewAuthUseCase(userRepo, roleRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	catalogUC := catalog.NewCatalogUseCase(productRepo, guard)
	checkoutUC := checkout.NewCheckoutUseCase(productRepo, saleRepo, guard, txRunner, m, log.Component("checkout"))
	invoiceUC := invoice.NewInvoiceUseCase(saleRepo, storeRepo, guard, infrapdf.NewMarotoPDFGenerator())
	storeUC := store.NewStoreUseCase(storeRepo, guard, log.Component("stores"))
	dashboardUC := dashboard.NewDashboardUseCase(storeRepo, productRepo, saleRepo, guard)
	provisioningUC := provisioning.NewProvisioningUseCase(authUC, storeRepo, roleRepo, m, log.Component("provisioning"))

	// Rate limiting needs Redis; without it requests pass through.
	var limiter httpRouter.Limiter
	if client := ratelimit.NewClient(ctx, cfg.Redis, log.Component("ratelimit")); client != nil {
		defer client.Close()
		limiter = ratelimit.New(client, cfg.RateLimit.PerMinute, "kirana:ratelimit")
	}

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:         cfg.App.Name,
		AllowOrigins: cfg.HTTP.AllowOrigins,
	}, log.Component("http"))

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    docs.SwaggerInfo.Title,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	if cfg.Metrics.Enabled {
		app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		CatalogUC:      catalogUC,
		CheckoutUC:     checkoutUC,
		InvoiceUC:      invoiceUC,
		StoreUC:        storeUC,
		DashboardUC:    dashboardUC,
		ProvisioningUC: provisioningUC,
		Limiter:        limiter,
		JWTSecret:      cfg.JWT.Secret,
		Log:            log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), httpRouter.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
