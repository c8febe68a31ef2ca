package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shelfmetrics/retail-optimizer/internal/forecast"
)

type ForecastHandler struct {
	forecasts *forecast.Service
}

func NewForecastHandler(forecasts *forecast.Service) *ForecastHandler {
	return &ForecastHandler{forecasts: forecasts}
}

// Generate rolls the demand model forward for one product/store pair and
// stores the result.
func (h *ForecastHandler) Generate(c *gin.Context) {
	callerID, ok := caller(c)
	if !ok {
		return
	}
	storeID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	productID, ok := uuidParam(c, "productId")
	if !ok {
		return
	}

	forecasts, err := h.forecasts.ForecastProduct(c.Request.Context(), productID, storeID, callerID, intQuery(c, "horizon_days", 7))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"forecasts": forecasts, "count": len(forecasts)})
}

func (h *ForecastHandler) List(c *gin.Context) {
	storeID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	productID, ok := uuidParam(c, "productId")
	if !ok {
		return
	}

	forecasts, err := h.forecasts.ListForecasts(c.Request.Context(), productID, storeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"forecasts": forecasts, "count": len(forecasts)})
}
