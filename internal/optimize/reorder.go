package optimize

import "math"

// Z-scores for the supported service levels. Any other level falls back to
// the 0.95 value; this is a deliberate simplification, not interpolation.
var zScores = map[float64]float64{
	0.90:  1.28,
	0.95:  1.65,
	0.99:  2.33,
	0.999: 3.09,
}

const defaultZScore = 1.65

// ZScore resolves a target service level to its Z-score.
func ZScore(serviceLevel float64) float64 {
	if z, ok := zScores[serviceLevel]; ok {
		return z
	}
	return defaultZScore
}

// SafetyStock computes the buffer stock needed to absorb demand variability
// during the lead time:
//
//	Safety Stock = Z * sigma * sqrt(L)
//
// The result is rounded up so rounding never under-provisions.
func SafetyStock(demandStdDev float64, leadTimeDays int, serviceLevel float64) int {
	z := ZScore(serviceLevel)
	raw := z * demandStdDev * math.Sqrt(float64(leadTimeDays))
	return int(math.Ceil(raw))
}

// ReorderPoint computes the stock level that should trigger a new purchase
// order:
//
//	ROP = (Average Daily Demand * Lead Time) + Safety Stock
//
// By construction the result is always >= the safety stock.
func ReorderPoint(avgDailyDemand float64, leadTimeDays int, safetyStock int) int {
	raw := avgDailyDemand*float64(leadTimeDays) + float64(safetyStock)
	return int(math.Ceil(raw))
}
