package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shelfmetrics/retail-optimizer/internal/config"
	"github.com/shelfmetrics/retail-optimizer/internal/domain"
	"github.com/shelfmetrics/retail-optimizer/internal/service"
)

type PurchaseOrderHandler struct {
	orders   *service.PurchaseOrderService
	defaults config.OptimizationConfig
}

func NewPurchaseOrderHandler(orders *service.PurchaseOrderService, defaults config.OptimizationConfig) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{orders: orders, defaults: defaults}
}

// GenerateDraft turns the current optimization report into a draft order for
// everything flagged Critical or Low.
func (h *PurchaseOrderHandler) GenerateDraft(c *gin.Context) {
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

	po, err := h.orders.GenerateDraft(c.Request.Context(), storeID, callerID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, po)
}

type orderLineRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

type createOrderRequest struct {
	Lines []orderLineRequest `json:"lines" binding:"required"`
}

func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	callerID, ok := caller(c)
	if !ok {
		return
	}
	storeID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	po := &domain.PurchaseOrder{StoreID: storeID}
	for _, line := range req.Lines {
		po.Lines = append(po.Lines, domain.PurchaseOrderLine{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitCost:  line.UnitCost,
		})
	}

	if err := h.orders.Create(c.Request.Context(), po, callerID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, po)
}

func (h *PurchaseOrderHandler) Get(c *gin.Context) {
	callerID, ok := caller(c)
	if !ok {
		return
	}
	orderID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	po, err := h.orders.Get(c.Request.Context(), orderID, callerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": po, "total": po.Total()})
}

func (h *PurchaseOrderHandler) ListByStore(c *gin.Context) {
	callerID, ok := caller(c)
	if !ok {
		return
	}
	storeID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	limit, offset := pagination(c)
	orders, err := h.orders.ListByStore(c.Request.Context(), storeID, callerID, c.Query("status"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
}

type transitionRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *PurchaseOrderHandler) Transition(c *gin.Context) {
	callerID, ok := caller(c)
	if !ok {
		return
	}
	orderID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	po, err := h.orders.Transition(c.Request.Context(), orderID, callerID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, po)
}

func (h *PurchaseOrderHandler) Delete(c *gin.Context) {
	callerID, ok := caller(c)
	if !ok {
		return
	}
	orderID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.orders.Delete(c.Request.Context(), orderID, callerID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
