package optimize_test

import (
	"math"
	"testing"
	"time"

	"github.com/shelfmetrics/retail-optimizer/internal/domain"
	"github.com/shelfmetrics/retail-optimizer/internal/optimize"
)

func obs(day string, qty int) domain.SalesObservation {
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	return domain.SalesObservation{Quantity: qty, OccurredAt: t}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestEstimateDemand_NoObservations(t *testing.T) {
	stats := optimize.EstimateDemand(nil)

	if stats.AvgDailyDemand != 0 || stats.DemandStdDev != 0 || stats.AnnualizedDemand != 0 {
		t.Errorf("expected zero statistics for empty history, got %+v", stats)
	}
}

func TestEstimateDemand_SingleObservationFallback(t *testing.T) {
	stats := optimize.EstimateDemand([]domain.SalesObservation{obs("2026-03-01", 10)})

	if !almostEqual(stats.AvgDailyDemand, 10) {
		t.Errorf("avg daily demand = %v, want 10", stats.AvgDailyDemand)
	}
	// std undefined with one data point: falls back to max(1.0, 10*0.2)
	if !almostEqual(stats.DemandStdDev, 2.0) {
		t.Errorf("demand std dev = %v, want 2.0", stats.DemandStdDev)
	}
	if !almostEqual(stats.AnnualizedDemand, 3650) {
		t.Errorf("annualized demand = %v, want 3650", stats.AnnualizedDemand)
	}
}

func TestEstimateDemand_MultiDay(t *testing.T) {
	history := []domain.SalesObservation{
		obs("2026-01-01", 4),
		obs("2026-01-02", 6),
		obs("2026-01-03", 8),
	}

	stats := optimize.EstimateDemand(history)

	if !almostEqual(stats.AvgDailyDemand, 6) {
		t.Errorf("avg daily demand = %v, want 6", stats.AvgDailyDemand)
	}
	// sample std of [4 6 8] is exactly 2
	if !almostEqual(stats.DemandStdDev, 2) {
		t.Errorf("demand std dev = %v, want 2", stats.DemandStdDev)
	}
	if !almostEqual(stats.AnnualizedDemand, 6*365) {
		t.Errorf("annualized demand = %v, want %v", stats.AnnualizedDemand, 6.0*365)
	}
}

func TestEstimateDemand_SameDayObservationsAggregate(t *testing.T) {
	history := []domain.SalesObservation{
		obs("2026-01-01", 3),
		obs("2026-01-01", 2),
		obs("2026-01-02", 5),
	}

	stats := optimize.EstimateDemand(history)

	// 10 units over 2 calendar days
	if !almostEqual(stats.AvgDailyDemand, 5) {
		t.Errorf("avg daily demand = %v, want 5", stats.AvgDailyDemand)
	}
	// daily totals [5 5]: observed std 0 floors to max(1.0, 5*0.2) = 1.0
	if !almostEqual(stats.DemandStdDev, 1.0) {
		t.Errorf("demand std dev = %v, want 1.0", stats.DemandStdDev)
	}
}

func TestEstimateDemand_GapDaysCountTowardSpan(t *testing.T) {
	history := []domain.SalesObservation{
		obs("2026-01-01", 10),
		obs("2026-01-05", 10),
	}

	stats := optimize.EstimateDemand(history)

	// 20 units over a 5 day span
	if !almostEqual(stats.AvgDailyDemand, 4) {
		t.Errorf("avg daily demand = %v, want 4", stats.AvgDailyDemand)
	}
}

func TestEstimateDemand_LowStdFloorsToTwentyPercentOfMean(t *testing.T) {
	// daily totals [20 20 21]: observed std ~0.577, below the 1.0 floor, and
	// 20% of the mean exceeds 1.0, so the floor is avg*0.2
	history := []domain.SalesObservation{
		obs("2026-01-01", 20),
		obs("2026-01-02", 20),
		obs("2026-01-03", 21),
	}

	stats := optimize.EstimateDemand(history)

	want := stats.AvgDailyDemand * 0.2
	if !almostEqual(stats.DemandStdDev, want) {
		t.Errorf("demand std dev = %v, want %v", stats.DemandStdDev, want)
	}
}
