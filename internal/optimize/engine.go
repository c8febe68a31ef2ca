package optimize

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/shelfmetrics/retail-optimizer/internal/domain"
)

// stockDaysCap is reported when a product has no demand signal
const stockDaysCap = 999

// Collaborator interfaces consumed by the engine. The repository layer
// satisfies these; tests inject fakes.

type StoreReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Store, error)
}

type InventoryReader interface {
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]domain.InventoryPosition, error)
}

type ProductReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
}

type SalesReader interface {
	ListByProductStore(ctx context.Context, productID, storeID uuid.UUID, since time.Time) ([]domain.SalesObservation, error)
}

// EngineConfig carries the cost knobs and run limits for the engine.
type EngineConfig struct {
	OrderingCost      float64
	HoldingCostRate   float64
	DefaultUnitCost   float64
	CategoryUnitCosts map[string]float64
	HistoryWindowDays int
	MaxConcurrency    int
}

// Engine converts raw sales history and current stock levels into actionable
// purchasing recommendations for a store. Each run is an independent,
// synchronous, side-effect-free computation over a snapshot of the data.
type Engine struct {
	stores    StoreReader
	inventory InventoryReader
	products  ProductReader
	sales     SalesReader
	cfg       EngineConfig
}

func NewEngine(stores StoreReader, inventory InventoryReader, products ProductReader, sales SalesReader, cfg EngineConfig) *Engine {
	if cfg.OrderingCost <= 0 {
		cfg.OrderingCost = DefaultOrderingCost
	}
	if cfg.HoldingCostRate <= 0 {
		cfg.HoldingCostRate = DefaultHoldingCostRate
	}
	if cfg.DefaultUnitCost <= 0 {
		cfg.DefaultUnitCost = DefaultUnitCost
	}
	if cfg.HistoryWindowDays <= 0 {
		cfg.HistoryWindowDays = 90
	}
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = 8
	}

	return &Engine{
		stores:    stores,
		inventory: inventory,
		products:  products,
		sales:     sales,
		cfg:       cfg,
	}
}

// Optimize produces an OptimizationReport for the store. The caller identity
// is checked against the store owner before any data is read. Per-product
// failures (missing catalog entry, unreadable sales history) never fail the
// whole report; only authorization and store-level not-found conditions do.
func (e *Engine) Optimize(ctx context.Context, storeID, caller uuid.UUID, params domain.OptimizationParameters) (*domain.OptimizationReport, error) {
	if params.LeadTimeDays <= 0 {
		params.LeadTimeDays = 7
	}
	if params.ServiceLevel <= 0 || params.ServiceLevel >= 1 {
		params.ServiceLevel = 0.95
	}

	store, err := e.stores.GetByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("store %s: %w", storeID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("resolve store %s: %w", storeID, err)
	}
	if store.OwnerID != caller {
		return nil, fmt.Errorf("store %s: %w", storeID, domain.ErrForbidden)
	}

	positions, err := e.inventory.ListByStore(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("load inventory for store %s: %w", storeID, err)
	}
	if len(positions) == 0 {
		return nil, fmt.Errorf("no inventory for store %s: %w", storeID, domain.ErrNotFound)
	}

	since := time.Now().UTC().AddDate(0, 0, -e.cfg.HistoryWindowDays)

	// Per-product metrics are independent: fan out, then collect by index so
	// the input order is preserved. Order matters downstream: ABC ties keep
	// stable relative order, and identical inputs must yield identical reports.
	results := make([]*domain.ProductOptimizationMetric, len(positions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.MaxConcurrency)

	for i, pos := range positions {
		g.Go(func() error {
			metric, err := e.buildMetric(gctx, pos, params, since)
			if err != nil {
				log.Warn().
					Err(err).
					Str("product_id", pos.ProductID.String()).
					Str("store_id", storeID.String()).
					Msg("skipping product in optimization report")
				return nil
			}
			results[i] = metric
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	metrics := make([]domain.ProductOptimizationMetric, 0, len(results))
	for _, m := range results {
		if m != nil {
			metrics = append(metrics, *m)
		}
	}

	// ABC needs the complete revenue distribution, so it runs once over the
	// full batch after the fan-in.
	ClassifyABC(metrics)

	var totalRevenue float64
	for i := range metrics {
		totalRevenue += metrics[i].AnnualRevenue
	}

	return &domain.OptimizationReport{
		StoreID:            storeID,
		TotalProducts:      len(metrics),
		Metrics:            metrics,
		ABCSummary:         SummarizeABC(metrics),
		TotalAnnualRevenue: round2(totalRevenue),
	}, nil
}

// buildMetric computes the full metric record for one inventory position.
// A missing catalog entry skips the row; a failed sales read degrades to an
// empty history rather than failing.
func (e *Engine) buildMetric(ctx context.Context, pos domain.InventoryPosition, params domain.OptimizationParameters, since time.Time) (*domain.ProductOptimizationMetric, error) {
	product, err := e.products.GetByID(ctx, pos.ProductID)
	if err != nil {
		return nil, fmt.Errorf("resolve product: %w", err)
	}

	history, err := e.sales.ListByProductStore(ctx, pos.ProductID, pos.StoreID, since)
	if err != nil {
		log.Warn().
			Err(err).
			Str("product_id", pos.ProductID.String()).
			Msg("sales history unavailable, treating as zero demand")
		history = nil
	}

	stats := EstimateDemand(history)
	unitCost := e.resolveUnitCost(product)

	var safetyStock, reorderPoint, orderQty int
	if stats.AvgDailyDemand > 0 {
		safetyStock = SafetyStock(stats.DemandStdDev, params.LeadTimeDays, params.ServiceLevel)
		reorderPoint = ReorderPoint(stats.AvgDailyDemand, params.LeadTimeDays, safetyStock)
		orderQty = EOQ(stats.AnnualizedDemand, domain.CostParameters{
			OrderingCost:    e.cfg.OrderingCost,
			HoldingCostRate: e.cfg.HoldingCostRate,
			UnitCost:        unitCost,
		})
	}

	unitPrice := unitCost * 1.5 // assumed markup when no list price is known
	if p, _ := product.Price.Float64(); p > 0 {
		unitPrice = p
	}

	annualRevenue := stats.AnnualizedDemand * unitPrice

	stockDays := float64(stockDaysCap)
	if stats.AvgDailyDemand > 0 {
		stockDays = float64(pos.QuantityOnHand) / stats.AvgDailyDemand
	}

	return &domain.ProductOptimizationMetric{
		ProductID:           product.ID,
		ProductName:         product.Name,
		Category:            product.Category,
		CurrentStock:        pos.QuantityOnHand,
		AvgDailyDemand:      round2(stats.AvgDailyDemand),
		DemandStdDev:        round2(stats.DemandStdDev),
		SafetyStock:         safetyStock,
		ReorderPoint:        reorderPoint,
		RecommendedOrderQty: orderQty,
		AnnualRevenue:       round2(annualRevenue),
		StockDays:           round1(stockDays),
		Status:              StockStatus(pos.QuantityOnHand, reorderPoint, safetyStock),
	}, nil
}

// resolveUnitCost prefers the product's own cost, then its category default,
// then the global default.
func (e *Engine) resolveUnitCost(product *domain.Product) float64 {
	if product.Cost.Valid {
		if c, _ := product.Cost.Decimal.Float64(); c > 0 {
			return c
		}
	}
	if c, ok := e.cfg.CategoryUnitCosts[product.Category]; ok && c > 0 {
		return c
	}
	return e.cfg.DefaultUnitCost
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
