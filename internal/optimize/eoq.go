package optimize

import (
	"math"

	"github.com/shelfmetrics/retail-optimizer/internal/domain"
)

// Default cost knobs for the EOQ formula.
const (
	DefaultOrderingCost    = 50.0
	DefaultHoldingCostRate = 0.25
	DefaultUnitCost        = 10.0
)

// DefaultCostParameters returns the standard cost assumptions used when a
// product carries no cost information of its own.
func DefaultCostParameters() domain.CostParameters {
	return domain.CostParameters{
		OrderingCost:    DefaultOrderingCost,
		HoldingCostRate: DefaultHoldingCostRate,
		UnitCost:        DefaultUnitCost,
	}
}

// EOQ computes the Economic Order Quantity:
//
//	EOQ = sqrt((2 * D * S) / H)
//
// where D is annualized demand, S the fixed cost per order and H the annual
// holding cost per unit (unit cost * holding rate). Zero or negative demand
// returns 0 (no reorder is economically justified absent demand). A
// non-positive unit cost falls back to the default rather than dividing by
// zero.
func EOQ(annualDemand float64, costs domain.CostParameters) int {
	if annualDemand <= 0 {
		return 0
	}

	if costs.OrderingCost <= 0 {
		costs.OrderingCost = DefaultOrderingCost
	}
	if costs.HoldingCostRate <= 0 {
		costs.HoldingCostRate = DefaultHoldingCostRate
	}
	if costs.UnitCost <= 0 {
		costs.UnitCost = DefaultUnitCost
	}

	holdingCost := costs.UnitCost * costs.HoldingCostRate
	eoq := math.Sqrt((2 * annualDemand * costs.OrderingCost) / holdingCost)

	return int(math.Ceil(eoq))
}
