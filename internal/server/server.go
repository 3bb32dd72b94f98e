package server

import (
	"context"
	"fmt"

	"wfxshop/internal/config"
	"wfxshop/internal/handlers"
	"wfxshop/internal/metrics"
	"wfxshop/internal/repositories"
	"wfxshop/internal/services"
	"wfxshop/internal/web"
	"wfxshop/pkg/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// Server owns the HTTP surface and the connections behind it.
type Server struct {
	echo *echo.Echo
	pool *pgxpool.Pool
	cfg  *config.Config
}

// New boots the storefront in order: database creation when asked for,
// connection pool, schema migration, asset store, catalog seed, and
// finally the Echo instance with its routes. Any failure aborts the
// boot; there is no partially started server.
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	if cfg.Database.Create {
		if err := database.EnsureDatabase(ctx, cfg.Database.MaintenanceDSN(), cfg.Database.Name); err != nil {
			return nil, fmt.Errorf("ensure database: %w", err)
		}
	}

	pool, err := database.NewPool(ctx, cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if cfg.Database.Migrate {
		if err := database.Migrate(cfg.Database.DSN()); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate database: %w", err)
		}
	}

	var assetsSvc services.MinioService
	if cfg.Assets.Enabled() {
		assetsSvc, err = services.NewMinioService(
			cfg.Assets.Endpoint,
			cfg.Assets.AccessKey,
			cfg.Assets.SecretKey,
			cfg.Assets.Region,
			cfg.Assets.UseSSL,
		)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("init asset store: %w", err)
		}
		if err := assetsSvc.EnsureBucketExists(ctx, cfg.Assets.Bucket); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ensure asset bucket: %w", err)
		}
		if err := assetsSvc.SyncDir(ctx, cfg.Assets.Bucket, cfg.Assets.LocalDir); err != nil {
			// Pages fall back to the static route, so a sync failure
			// is not fatal.
			zap.S().Warnw("sync product assets failed", "error", err)
		}
	}

	productRepo := repositories.NewProductRepo(pool)
	orderRepo := repositories.NewOrderRepo(pool)

	catalogSvc := services.NewCatalogService(productRepo)
	orderSvc := services.NewOrderService(orderRepo, productRepo, cfg.Checkout.TrustClientPrice)

	if err := catalogSvc.SeedIfEmpty(ctx, cfg.Seed); err != nil {
		pool.Close()
		return nil, fmt.Errorf("seed catalog: %w", err)
	}

	images := handlers.NewImageResolver(assetsSvc, cfg.Assets.Bucket)

	healthHandlers := handlers.NewHealthHandlers(pool)
	pageHandlers := handlers.NewPageHandlers(catalogSvc, images)
	orderHandlers := handlers.NewOrderHandlers(orderSvc)
	productHandlers := handlers.NewProductHandlers(catalogSvc, images)

	e := echo.New()
	e.HideBanner = true
	e.Renderer = web.NewRenderer()

	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())
	e.Use(metrics.Middleware())

	e.GET("/healthz", healthHandlers.HealthCheck)
	e.GET("/readyz", healthHandlers.ReadinessCheck)

	e.GET("/", pageHandlers.Landing)
	e.GET("/products", pageHandlers.Products)
	e.GET("/cart", pageHandlers.Cart)
	e.GET("/checkout", pageHandlers.CheckoutForm)
	e.POST("/checkout", orderHandlers.SubmitCheckout)
	e.GET("/orders/:reference", orderHandlers.OrderDetail)
	e.GET("/orders/:reference/receipt.pdf", orderHandlers.Receipt)

	e.GET("/api/v1/products", productHandlers.ListProducts)
	e.GET("/api/v1/products/:id", productHandlers.GetProduct)

	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	e.Static("/static", cfg.Assets.LocalDir)

	return &Server{
		echo: e,
		pool: pool,
		cfg:  cfg,
	}, nil
}

// Start serves HTTP and blocks until Shutdown is called.
func (s *Server) Start() error {
	return s.echo.Start(fmt.Sprintf(":%d", s.cfg.Port))
}

// Shutdown drains in-flight requests and closes the database pool.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.echo.Shutdown(ctx)
	s.pool.Close()
	return err
}
