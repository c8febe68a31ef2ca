package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shelfmetrics/retail-optimizer/internal/config"
	"github.com/shelfmetrics/retail-optimizer/internal/domain"
	"github.com/shelfmetrics/retail-optimizer/internal/service"
)

type OptimizationHandler struct {
	optimization *service.OptimizationService
	defaults     config.OptimizationConfig
}

func NewOptimizationHandler(optimization *service.OptimizationService, defaults config.OptimizationConfig) *OptimizationHandler {
	return &OptimizationHandler{optimization: optimization, defaults: defaults}
}

// Optimize computes the reorder report for a store. Lead time and service
// level come from query parameters, falling back to configured defaults.
func (h *OptimizationHandler) Optimize(c *gin.Context) {
	callerID, ok := caller(c)
	if !ok {
		return
	}
	storeID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	params := domain.OptimizationParameters{
		LeadTimeDays: intQuery(c, "lead_time_days", h.defaults.LeadTimeDays),
		ServiceLevel: floatQuery(c, "service_level", h.defaults.ServiceLevel),
	}

	report, err := h.optimization.OptimizeStore(c.Request.Context(), storeID, callerID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
