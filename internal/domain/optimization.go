package domain

import "github.com/google/uuid"

// Stock status labels, evaluated against the computed thresholds
const (
	StatusCritical = "Critical"
	StatusLow      = "Low - Order Now"
	StatusModerate = "Moderate"
	StatusHealthy  = "Healthy"
)

// ABC classification tiers
const (
	ABCClassA = "A"
	ABCClassB = "B"
	ABCClassC = "C"
)

// DemandStatistics is derived per product/store from a sales history window.
// The standard deviation is never degenerate: when the observed value is
// undefined or below 1.0 it is replaced with max(1.0, 20% of the mean).
type DemandStatistics struct {
	AvgDailyDemand   float64 `json:"avg_daily_demand"`
	DemandStdDev     float64 `json:"demand_std_dev"`
	AnnualizedDemand float64 `json:"annualized_demand"`
}

// OptimizationParameters are the caller-supplied knobs for one optimization run
type OptimizationParameters struct {
	LeadTimeDays int     `json:"lead_time_days"`
	ServiceLevel float64 `json:"service_level"`
}

// DefaultOptimizationParameters returns the engine defaults: a week of lead
// time at a 95% service level.
func DefaultOptimizationParameters() OptimizationParameters {
	return OptimizationParameters{LeadTimeDays: 7, ServiceLevel: 0.95}
}

// CostParameters feed the EOQ calculation
type CostParameters struct {
	OrderingCost    float64 `json:"ordering_cost"`
	HoldingCostRate float64 `json:"holding_cost_rate"`
	UnitCost        float64 `json:"unit_cost"`
}

// ProductOptimizationMetric is the per-product output record of one run.
// Recomputed fresh on every run, never persisted as authoritative state.
type ProductOptimizationMetric struct {
	ProductID           uuid.UUID `json:"product_id"`
	ProductName         string    `json:"product_name"`
	Category            string    `json:"category"`
	CurrentStock        int       `json:"current_stock"`
	AvgDailyDemand      float64   `json:"avg_daily_demand"`
	DemandStdDev        float64   `json:"demand_std_dev"`
	SafetyStock         int       `json:"safety_stock"`
	ReorderPoint        int       `json:"reorder_point"`
	RecommendedOrderQty int       `json:"recommended_order_qty"`
	AnnualRevenue       float64   `json:"annual_revenue"`
	StockDays           float64   `json:"stock_days"`
	ABCClassification   string    `json:"abc_classification"`
	Status              string    `json:"status"`
}

// ABCSummary holds per-tier product counts for one report
type ABCSummary struct {
	A int `json:"A"`
	B int `json:"B"`
	C int `json:"C"`
}

// OptimizationReport aggregates a store's metrics. Constructed, returned,
// discarded; stateless per call.
type OptimizationReport struct {
	StoreID            uuid.UUID                   `json:"store_id"`
	TotalProducts      int                         `json:"total_products"`
	Metrics            []ProductOptimizationMetric `json:"metrics"`
	ABCSummary         ABCSummary                  `json:"abc_summary"`
	TotalAnnualRevenue float64                     `json:"total_annual_revenue"`
}
