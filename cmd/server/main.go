package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shelfmetrics/retail-optimizer/internal/api"
	"github.com/shelfmetrics/retail-optimizer/internal/api/handlers"
	"github.com/shelfmetrics/retail-optimizer/internal/api/middleware"
	"github.com/shelfmetrics/retail-optimizer/internal/cache"
	"github.com/shelfmetrics/retail-optimizer/internal/config"
	"github.com/shelfmetrics/retail-optimizer/internal/forecast"
	"github.com/shelfmetrics/retail-optimizer/internal/optimize"
	"github.com/shelfmetrics/retail-optimizer/internal/repository/postgres"
	"github.com/shelfmetrics/retail-optimizer/internal/service"
	"github.com/shelfmetrics/retail-optimizer/internal/storage"
	"github.com/shelfmetrics/retail-optimizer/pkg/logger"
)

func main() {
	cfg := config.Load()

	if cfg.Auth.JWTSecret == "" {
		logger.Log.Fatal().Msg("AUTH_JWT_SECRET is required")
	}

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	storeRepo := postgres.NewStoreRepository(db.DB)
	productRepo := postgres.NewProductRepository(db.DB)
	salesRepo := postgres.NewSalesRepository(db.DB)
	inventoryRepo := postgres.NewInventoryRepository(db.DB)
	orderRepo := postgres.NewPurchaseOrderRepository(db)
	promotionRepo := postgres.NewPromotionRepository(db.DB)
	holidayRepo := postgres.NewHolidayRepository(db.DB)
	forecastRepo := postgres.NewForecastRepository(db)

	reportCache, err := cache.NewReportCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("report cache unavailable, running without cache")
		reportCache = cache.NewNoopReportCache()
	}

	var archive storage.ObjectStorage = storage.Noop{}
	if cfg.Storage.Enabled {
		archive, err = storage.NewMinioStorage(cfg.Storage)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("object storage unavailable, running without snapshot archive")
			archive = storage.Noop{}
		}
	}

	engine := optimize.NewEngine(storeRepo, inventoryRepo, productRepo, salesRepo, optimize.EngineConfig{
		OrderingCost:      cfg.Optimization.OrderingCost,
		HoldingCostRate:   cfg.Optimization.HoldingCostRate,
		DefaultUnitCost:   cfg.Optimization.DefaultUnitCost,
		CategoryUnitCosts: cfg.Optimization.CategoryUnitCosts,
	})

	optimizationSvc := service.NewOptimizationService(engine, reportCache, archive)
	storeSvc := service.NewStoreService(storeRepo)
	catalogSvc := service.NewCatalogService(productRepo)
	inventorySvc := service.NewInventoryService(inventoryRepo, productRepo, storeRepo, optimizationSvc)
	salesSvc := service.NewSalesService(salesRepo, inventoryRepo, productRepo, storeRepo, optimizationSvc)
	orderSvc := service.NewPurchaseOrderService(orderRepo, productRepo, inventoryRepo, storeRepo, optimizationSvc)
	calendarSvc := service.NewCalendarService(promotionRepo, holidayRepo)

	var forecaster forecast.Forecaster = forecast.BaselineForecaster{}
	if cfg.Forecast.ModelURL != "" {
		forecaster = forecast.NewModelClient(cfg.Forecast)
	}
	forecastSvc := forecast.NewService(storeRepo, salesRepo, holidayRepo, promotionRepo, forecastRepo, forecaster)

	router := api.NewRouter(cfg, middleware.NewHMACVerifier(cfg.Auth.JWTSecret), api.Handlers{
		Stores:         handlers.NewStoreHandler(storeSvc),
		Products:       handlers.NewProductHandler(catalogSvc),
		Inventory:      handlers.NewInventoryHandler(inventorySvc),
		Sales:          handlers.NewSalesHandler(salesSvc),
		Optimization:   handlers.NewOptimizationHandler(optimizationSvc, cfg.Optimization),
		PurchaseOrders: handlers.NewPurchaseOrderHandler(orderSvc, cfg.Optimization),
		Forecasts:      handlers.NewForecastHandler(forecastSvc),
		Calendar:       handlers.NewCalendarHandler(calendarSvc),
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Log.Error().Err(err).Msg("forced shutdown")
	}

	logger.Log.Info().Msg("server stopped")
}
