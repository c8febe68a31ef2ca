package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/shelfmetrics/retail-optimizer/internal/api/handlers"
	"github.com/shelfmetrics/retail-optimizer/internal/api/middleware"
	"github.com/shelfmetrics/retail-optimizer/internal/config"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Stores         *handlers.StoreHandler
	Products       *handlers.ProductHandler
	Inventory      *handlers.InventoryHandler
	Sales          *handlers.SalesHandler
	Optimization   *handlers.OptimizationHandler
	PurchaseOrders *handlers.PurchaseOrderHandler
	Forecasts      *handlers.ForecastHandler
	Calendar       *handlers.CalendarHandler
}

// NewRouter wires the HTTP surface. Everything under /api/v1 requires a valid
// bearer token; /health does not.
func NewRouter(cfg *config.Config, verifier middleware.TokenVerifier, h Handlers) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	router := gin.New()
	router.Use(middleware.RequestLogger(), middleware.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	v1.Use(middleware.Auth(verifier))

	stores := v1.Group("/stores")
	{
		stores.POST("", h.Stores.Create)
		stores.GET("", h.Stores.List)
		stores.GET("/:id", h.Stores.Get)
		stores.PUT("/:id", h.Stores.Update)
		stores.DELETE("/:id", h.Stores.Delete)

		stores.GET("/:id/inventory", h.Inventory.ListByStore)
		stores.PUT("/:id/inventory", h.Inventory.Upsert)
		stores.GET("/:id/inventory/low-stock", h.Inventory.ListLowStock)
		stores.GET("/:id/inventory/:productId", h.Inventory.Get)
		stores.POST("/:id/inventory/adjust", h.Inventory.AdjustStock)
		stores.POST("/:id/inventory/reserve", h.Inventory.ReserveStock)

		stores.GET("/:id/sales", h.Sales.ListByStore)
		stores.GET("/:id/sales/summary", h.Sales.DailySummary)

		stores.GET("/:id/optimization", h.Optimization.Optimize)

		stores.GET("/:id/purchase-orders", h.PurchaseOrders.ListByStore)
		stores.POST("/:id/purchase-orders", h.PurchaseOrders.Create)
		stores.POST("/:id/purchase-orders/draft", h.PurchaseOrders.GenerateDraft)

		stores.POST("/:id/products/:productId/forecast", h.Forecasts.Generate)
		stores.GET("/:id/products/:productId/forecast", h.Forecasts.List)
	}

	products := v1.Group("/products")
	{
		products.POST("", h.Products.Create)
		products.GET("", h.Products.List)
		products.GET("/:id", h.Products.Get)
		products.GET("/sku/:sku", h.Products.GetBySKU)
		products.PUT("/:id", h.Products.Update)
		products.DELETE("/:id", h.Products.Delete)
	}

	sales := v1.Group("/sales")
	{
		sales.POST("", h.Sales.Record)
		sales.DELETE("/:id", h.Sales.Delete)
	}

	orders := v1.Group("/purchase-orders")
	{
		orders.GET("/:id", h.PurchaseOrders.Get)
		orders.POST("/:id/transition", h.PurchaseOrders.Transition)
		orders.DELETE("/:id", h.PurchaseOrders.Delete)
	}

	promotions := v1.Group("/promotions")
	{
		promotions.POST("", h.Calendar.CreatePromotion)
		promotions.GET("", h.Calendar.ListPromotions)
		promotions.GET("/:id", h.Calendar.GetPromotion)
		promotions.PUT("/:id", h.Calendar.UpdatePromotion)
		promotions.DELETE("/:id", h.Calendar.DeletePromotion)
	}

	holidays := v1.Group("/holidays")
	{
		holidays.POST("", h.Calendar.CreateHoliday)
		holidays.GET("", h.Calendar.ListHolidays)
		holidays.PUT("/:id", h.Calendar.UpdateHoliday)
		holidays.DELETE("/:id", h.Calendar.DeleteHoliday)
	}

	return router
}
