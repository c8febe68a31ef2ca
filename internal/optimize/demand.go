package optimize

import (
	"math"
	"time"

	"github.com/shelfmetrics/retail-optimizer/internal/domain"
)

const daysPerYear = 365

// EstimateDemand derives average daily demand and its variability from a
// window of sales history for one product/store pair. The estimator is
// window-agnostic: it spans whatever range the observations cover.
//
// With zero observations every statistic is zero and the caller must treat
// the product as non-orderable. The standard deviation is floored at
// max(1.0, 20% of the mean) so the safety-stock math never sees a
// degenerate spread.
func EstimateDemand(history []domain.SalesObservation) domain.DemandStatistics {
	if len(history) == 0 {
		return domain.DemandStatistics{}
	}

	var (
		totalQty int
		first    time.Time
		last     time.Time
		daily    = make(map[string]float64)
	)

	for i, obs := range history {
		day := obs.OccurredAt.UTC().Truncate(24 * time.Hour)
		if i == 0 || day.Before(first) {
			first = day
		}
		if i == 0 || day.After(last) {
			last = day
		}
		totalQty += obs.Quantity
		daily[day.Format("2006-01-02")] += float64(obs.Quantity)
	}

	daysSpanned := int(last.Sub(first).Hours()/24) + 1
	if daysSpanned < 1 {
		daysSpanned = 1
	}

	avg := float64(totalQty) / float64(daysSpanned)
	std := sampleStdDev(daily)
	if math.IsNaN(std) || std < 1.0 {
		std = math.Max(1.0, avg*0.2)
	}

	return domain.DemandStatistics{
		AvgDailyDemand:   avg,
		DemandStdDev:     std,
		AnnualizedDemand: avg * daysPerYear,
	}
}

// sampleStdDev computes the sample standard deviation over per-day quantity
// totals. Returns NaN when fewer than two daily buckets exist.
func sampleStdDev(daily map[string]float64) float64 {
	n := len(daily)
	if n < 2 {
		return math.NaN()
	}

	var sum float64
	for _, qty := range daily {
		sum += qty
	}
	mean := sum / float64(n)

	var sqDiff float64
	for _, qty := range daily {
		d := qty - mean
		sqDiff += d * d
	}

	return math.Sqrt(sqDiff / float64(n-1))
}
