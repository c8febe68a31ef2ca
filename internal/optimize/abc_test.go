package optimize_test

import (
	"testing"

	"github.com/shelfmetrics/retail-optimizer/internal/domain"
	"github.com/shelfmetrics/retail-optimizer/internal/optimize"
)

func metricsWithRevenue(revenues ...float64) []domain.ProductOptimizationMetric {
	metrics := make([]domain.ProductOptimizationMetric, len(revenues))
	for i, r := range revenues {
		metrics[i].AnnualRevenue = r
	}
	return metrics
}

func TestClassifyABC_ParetoCutoffs(t *testing.T) {
	// cumulative percentages: 80 -> A, 95 -> B, 100 -> C
	metrics := metricsWithRevenue(800, 150, 50)

	optimize.ClassifyABC(metrics)

	want := []string{"A", "B", "C"}
	for i, m := range metrics {
		if m.ABCClassification != want[i] {
			t.Errorf("metric %d classified %q, want %q", i, m.ABCClassification, want[i])
		}
	}
}

func TestClassifyABC_UnsortedInput(t *testing.T) {
	// classification ranks by revenue regardless of input order
	metrics := metricsWithRevenue(50, 800, 150)

	optimize.ClassifyABC(metrics)

	want := []string{"C", "A", "B"}
	for i, m := range metrics {
		if m.ABCClassification != want[i] {
			t.Errorf("metric %d classified %q, want %q", i, m.ABCClassification, want[i])
		}
	}
}

func TestClassifyABC_EveryProductLabeled(t *testing.T) {
	metrics := metricsWithRevenue(500, 300, 120, 60, 15, 5)

	optimize.ClassifyABC(metrics)

	summary := optimize.SummarizeABC(metrics)
	if total := summary.A + summary.B + summary.C; total != len(metrics) {
		t.Errorf("summary counts sum to %d, want %d", total, len(metrics))
	}
	for i, m := range metrics {
		if m.ABCClassification == "" {
			t.Errorf("metric %d left unclassified", i)
		}
	}
}

func TestClassifyABC_ZeroRevenueFallback(t *testing.T) {
	metrics := metricsWithRevenue(0, 0, 0, 0, 0)

	optimize.ClassifyABC(metrics)

	for i, m := range metrics {
		if m.ABCClassification != domain.ABCClassC {
			t.Errorf("metric %d classified %q, want C", i, m.ABCClassification)
		}
	}

	summary := optimize.SummarizeABC(metrics)
	if summary.C != 5 || summary.A != 0 || summary.B != 0 {
		t.Errorf("summary = %+v, want all 5 in C", summary)
	}
}

func TestClassifyABC_TiesKeepInputOrder(t *testing.T) {
	metrics := metricsWithRevenue(100, 100, 100, 100)
	for i := range metrics {
		metrics[i].ProductName = string(rune('a' + i))
	}

	optimize.ClassifyABC(metrics)

	// cumulative pct at equal revenue: 25, 50, 75 -> A; 100 -> C.
	// Ranking is stable, so the tier boundary falls on the last input element.
	want := []string{"A", "A", "A", "C"}
	for i, m := range metrics {
		if m.ABCClassification != want[i] {
			t.Errorf("metric %q classified %q, want %q", m.ProductName, m.ABCClassification, want[i])
		}
	}
}

func TestClassifyABC_EmptySet(t *testing.T) {
	var metrics []domain.ProductOptimizationMetric
	optimize.ClassifyABC(metrics) // must not panic

	summary := optimize.SummarizeABC(metrics)
	if summary.A != 0 || summary.B != 0 || summary.C != 0 {
		t.Errorf("summary = %+v, want zeroes", summary)
	}
}
