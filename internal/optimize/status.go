package optimize

import "github.com/shelfmetrics/retail-optimizer/internal/domain"

// moderateBand widens the reorder point into the "order soon" zone
const moderateBand = 1.5

// StockStatus maps current stock against the computed thresholds to a
// discrete status label. First match wins.
func StockStatus(currentStock, reorderPoint, safetyStock int) string {
	switch {
	case currentStock <= safetyStock:
		return domain.StatusCritical
	case currentStock <= reorderPoint:
		return domain.StatusLow
	case float64(currentStock) <= float64(reorderPoint)*moderateBand:
		return domain.StatusModerate
	default:
		return domain.StatusHealthy
	}
}
