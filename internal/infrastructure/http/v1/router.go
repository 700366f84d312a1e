// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"stocktrack/internal/domain/auth"
	"stocktrack/internal/domain/inventory"
	"stocktrack/internal/domain/sales"
	"stocktrack/internal/infrastructure/http/v1/handlers"
	"stocktrack/internal/infrastructure/http/v1/middleware"
	"stocktrack/internal/infrastructure/storage/postgres"
	"stocktrack/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Pool is the database connection pool (for health checks)
	Pool *postgres.Pool

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// AuthService for signup and login endpoints
	AuthService *auth.Service

	// InventoryService for stock item endpoints
	InventoryService *inventory.Service

	// SaleLedger records and lists sales
	SaleLedger *sales.Ledger

	// StatsAggregator computes sales statistics
	StatsAggregator *sales.Aggregator
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	base := handlers.NewBaseHandler()

	// Public auth endpoints
	authHandler := handlers.NewAuthHandler(base, cfg.AuthService)
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/signup", authHandler.Signup)
		authGroup.POST("/login", authHandler.Login)
	}

	// Protected endpoints
	protected := router.Group("")
	protected.Use(middleware.Auth(cfg.JWTValidator))

	inventoryHandler := handlers.NewInventoryHandler(base, cfg.InventoryService)
	inventories := protected.Group("/inventories")
	{
		inventories.GET("", middleware.RequireOperation(auth.OpInventoryRead), inventoryHandler.List)
		inventories.POST("", middleware.RequireOperation(auth.OpInventoryWrite), inventoryHandler.Create)
		inventories.PUT("/:id", middleware.RequireOperation(auth.OpInventoryWrite), inventoryHandler.Update)
		inventories.DELETE("/:id", middleware.RequireOperation(auth.OpInventoryDelete), inventoryHandler.Delete)
	}

	salesHandler := handlers.NewSalesHandler(base, cfg.SaleLedger, cfg.StatsAggregator)
	salesGroup := protected.Group("/sales")
	{
		salesGroup.GET("", middleware.RequireOperation(auth.OpSaleRead), salesHandler.List)
		salesGroup.POST("", middleware.RequireOperation(auth.OpSaleCreate), salesHandler.Record)
		salesGroup.GET("/stats", middleware.RequireOperation(auth.OpStatsRead), salesHandler.Stats)
	}

	return router
}
