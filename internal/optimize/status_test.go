package optimize_test

import (
	"testing"

	"github.com/shelfmetrics/retail-optimizer/internal/domain"
	"github.com/shelfmetrics/retail-optimizer/internal/optimize"
)

func TestStockStatus_BoundaryExactness(t *testing.T) {
	const (
		safetyStock  = 10
		reorderPoint = 20
	)

	tests := []struct {
		stock int
		want  string
	}{
		{0, domain.StatusCritical},
		{10, domain.StatusCritical},
		{11, domain.StatusLow},
		{20, domain.StatusLow},
		{21, domain.StatusModerate},
		{30, domain.StatusModerate}, // 30 == 20*1.5
		{31, domain.StatusHealthy},
		{100, domain.StatusHealthy},
	}

	for _, tt := range tests {
		if got := optimize.StockStatus(tt.stock, reorderPoint, safetyStock); got != tt.want {
			t.Errorf("StockStatus(%d, %d, %d) = %q, want %q", tt.stock, reorderPoint, safetyStock, got, tt.want)
		}
	}
}

func TestStockStatus_ZeroThresholds(t *testing.T) {
	// products with no demand signal carry zero thresholds: empty stock is
	// critical, anything on hand is healthy
	if got := optimize.StockStatus(0, 0, 0); got != domain.StatusCritical {
		t.Errorf("StockStatus(0, 0, 0) = %q, want Critical", got)
	}
	if got := optimize.StockStatus(5, 0, 0); got != domain.StatusHealthy {
		t.Errorf("StockStatus(5, 0, 0) = %q, want Healthy", got)
	}
}
