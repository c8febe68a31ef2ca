package optimize

import (
	"sort"

	"github.com/shelfmetrics/retail-optimizer/internal/domain"
)

// ABC cumulative-revenue cutoffs (classic Pareto segmentation)
const (
	abcCutoffA = 80.0
	abcCutoffB = 95.0
)

// ClassifyABC assigns each metric an A/B/C tier by its contribution to total
// annual revenue: products within the top 80% of cumulative revenue are A,
// within 95% are B, the rest C. Classification needs the whole set, so it
// runs as a single batch pass after all per-product metrics are collected.
//
// Ties in annual revenue keep their relative order from the input slice.
// When total revenue is zero (or negative) every product is classified C
// instead of dividing by zero.
func ClassifyABC(metrics []domain.ProductOptimizationMetric) {
	if len(metrics) == 0 {
		return
	}

	var total float64
	for i := range metrics {
		total += metrics[i].AnnualRevenue
	}

	if total <= 0 {
		for i := range metrics {
			metrics[i].ABCClassification = domain.ABCClassC
		}
		return
	}

	order := make([]int, len(metrics))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return metrics[order[a]].AnnualRevenue > metrics[order[b]].AnnualRevenue
	})

	var cumulative float64
	for _, idx := range order {
		cumulative += metrics[idx].AnnualRevenue
		pct := (cumulative / total) * 100

		switch {
		case pct <= abcCutoffA:
			metrics[idx].ABCClassification = domain.ABCClassA
		case pct <= abcCutoffB:
			metrics[idx].ABCClassification = domain.ABCClassB
		default:
			metrics[idx].ABCClassification = domain.ABCClassC
		}
	}
}

// SummarizeABC counts products per tier.
func SummarizeABC(metrics []domain.ProductOptimizationMetric) domain.ABCSummary {
	var summary domain.ABCSummary
	for i := range metrics {
		switch metrics[i].ABCClassification {
		case domain.ABCClassA:
			summary.A++
		case domain.ABCClassB:
			summary.B++
		case domain.ABCClassC:
			summary.C++
		}
	}
	return summary
}
