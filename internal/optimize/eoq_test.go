package optimize_test

import (
	"testing"

	"github.com/shelfmetrics/retail-optimizer/internal/domain"
	"github.com/shelfmetrics/retail-optimizer/internal/optimize"
)

func TestEOQ(t *testing.T) {
	tests := []struct {
		name   string
		demand float64
		costs  domain.CostParameters
		want   int
	}{
		{
			name:   "zero demand returns zero",
			demand: 0,
			costs:  optimize.DefaultCostParameters(),
			want:   0,
		},
		{
			name:   "negative demand returns zero",
			demand: -100,
			costs:  optimize.DefaultCostParameters(),
			want:   0,
		},
		{
			// ceil(sqrt((2*7300*50)/2.5)) = ceil(540.37) = 541
			name:   "closed form round trip",
			demand: 7300,
			costs:  domain.CostParameters{OrderingCost: 50, HoldingCostRate: 0.25, UnitCost: 10},
			want:   541,
		},
		{
			// h = 20*0.25 = 5; ceil(sqrt(2*1000*50/5)) = ceil(141.42) = 142
			name:   "higher unit cost shrinks batch",
			demand: 1000,
			costs:  domain.CostParameters{OrderingCost: 50, HoldingCostRate: 0.25, UnitCost: 20},
			want:   142,
		},
		{
			// zero unit cost falls back to the default instead of dividing by zero
			name:   "zero unit cost guarded",
			demand: 7300,
			costs:  domain.CostParameters{OrderingCost: 50, HoldingCostRate: 0.25, UnitCost: 0},
			want:   541,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := optimize.EOQ(tt.demand, tt.costs); got != tt.want {
				t.Errorf("EOQ(%v, %+v) = %d, want %d", tt.demand, tt.costs, got, tt.want)
			}
		})
	}
}

func TestEOQ_NonNegative(t *testing.T) {
	demands := []float64{0, 1, 10, 1000, 1e6}
	for _, d := range demands {
		if got := optimize.EOQ(d, optimize.DefaultCostParameters()); got < 0 {
			t.Errorf("EOQ(%v) = %d, want non-negative", d, got)
		}
	}
}
