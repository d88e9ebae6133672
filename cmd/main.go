package main

import (
	"hanouti-api/internal/handler"
	mid "hanouti-api/internal/middleware"
	"hanouti-api/pkg/cache"
	"hanouti-api/pkg/config"
	"hanouti-api/pkg/database"
	"hanouti-api/pkg/jwtutil"
	"hanouti-api/pkg/logger"
	"hanouti-api/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration (reads .env when present)
	appConfig, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting hanouti-api",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	db, err := database.New(appConfig)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer database.Close(db)
	log.Info("Database connection established")

	// Initialize listing cache (optional; nil when REDIS_ADDR unset)
	listCache, err := cache.New(appConfig)
	if err != nil {
		log.Fatal("Failed to initialize Redis cache", zap.Error(err))
	}
	if listCache != nil {
		defer listCache.Close()
		log.Info("Redis listing cache enabled", zap.String("addr", appConfig.Redis.Addr))
	}

	// Session tokens for the admin back-office
	jwt := jwtutil.New(&appConfig.JWT)

	// Bootstrap admin account
	if err := handler.SeedAdmin(db, appConfig, log); err != nil {
		log.Fatal("Failed to seed admin account", zap.Error(err))
	}

	// Handlers
	categoryHandler := handler.NewCategoryHandler(db, listCache)
	productHandler := handler.NewProductHandler(db, appConfig.Store)
	orderHandler := handler.NewOrderHandler(db)
	homepageHandler := handler.NewHomepageHandler(db, listCache)
	contactHandler := handler.NewContactHandler(db)
	authHandler := handler.NewAuthHandler(db, jwt, appConfig)

	// Initialize Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics and health endpoints
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/health", handler.HealthCheck)

	// Public storefront API
	api := e.Group("/api")
	api.GET("/categories", categoryHandler.ListPublic)
	api.GET("/categories/:slug", categoryHandler.GetBySlug)
	api.GET("/products", productHandler.ListPublic)
	api.GET("/products/:slug", productHandler.GetBySlug)
	api.POST("/orders", orderHandler.Create)
	api.POST("/orders/lookup", orderHandler.Lookup)
	api.GET("/homepage", homepageHandler.GetPublic)
	api.POST("/contact", contactHandler.Create)
	api.POST("/admin/login", authHandler.Login)
	api.POST("/admin/logout", authHandler.Logout)

	// Admin back-office API
	admin := e.Group("/api/admin", mid.AdminAuth(jwt, appConfig.JWT.CookieName))
	admin.GET("/categories", categoryHandler.ListAdmin)
	admin.POST("/categories", categoryHandler.Create)
	admin.PUT("/categories/:id", categoryHandler.Update)
	admin.DELETE("/categories/:id", categoryHandler.Delete)
	admin.GET("/products", productHandler.ListAdmin)
	admin.POST("/products", productHandler.Create)
	admin.PUT("/products/:id", productHandler.Update)
	admin.DELETE("/products/:id", productHandler.Delete)
	admin.GET("/orders", orderHandler.ListAdmin)
	admin.GET("/orders/:id", orderHandler.GetAdmin)
	admin.PATCH("/orders/:id", orderHandler.UpdateStatus)
	admin.GET("/homepage", homepageHandler.ListAdmin)
	admin.PUT("/homepage/:section", homepageHandler.Upsert)
	admin.GET("/messages", contactHandler.ListAdmin)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
