package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shelfmetrics/retail-optimizer/internal/domain"
	"github.com/shelfmetrics/retail-optimizer/internal/service"
)

type SalesHandler struct {
	sales *service.SalesService
}

func NewSalesHandler(sales *service.SalesService) *SalesHandler {
	return &SalesHandler{sales: sales}
}

type recordSaleRequest struct {
	ProductID  uuid.UUID       `json:"product_id" binding:"required"`
	StoreID    uuid.UUID       `json:"store_id" binding:"required"`
	Quantity   int             `json:"quantity" binding:"required"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	OccurredAt time.Time       `json:"occurred_at"`
}

func (h *SalesHandler) Record(c *gin.Context) {
	callerID, ok := caller(c)
	if !ok {
		return
	}

	var req recordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sale := &domain.SalesObservation{
		ProductID:  req.ProductID,
		StoreID:    req.StoreID,
		Quantity:   req.Quantity,
		UnitPrice:  req.UnitPrice,
		OccurredAt: req.OccurredAt,
	}
	if err := h.sales.Record(c.Request.Context(), sale, callerID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sale)
}

func (h *SalesHandler) ListByStore(c *gin.Context) {
	callerID, ok := caller(c)
	if !ok {
		return
	}
	storeID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	since := time.Now().UTC().AddDate(0, 0, -intQuery(c, "days", 30))
	limit, offset := pagination(c)

	sales, err := h.sales.ListByStore(c.Request.Context(), storeID, callerID, since, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sales": sales, "count": len(sales)})
}

func (h *SalesHandler) DailySummary(c *gin.Context) {
	callerID, ok := caller(c)
	if !ok {
		return
	}
	storeID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	summary, err := h.sales.DailySummary(c.Request.Context(), storeID, callerID, intQuery(c, "days", 30))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary, "count": len(summary)})
}

func (h *SalesHandler) Delete(c *gin.Context) {
	callerID, ok := caller(c)
	if !ok {
		return
	}
	saleID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.sales.Delete(c.Request.Context(), saleID, callerID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
