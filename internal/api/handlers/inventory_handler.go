package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shelfmetrics/retail-optimizer/internal/domain"
	"github.com/shelfmetrics/retail-optimizer/internal/service"
)

type InventoryHandler struct {
	inventory *service.InventoryService
}

func NewInventoryHandler(inventory *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

type upsertInventoryRequest struct {
	ProductID        uuid.UUID `json:"product_id" binding:"required"`
	QuantityOnHand   int       `json:"quantity_on_hand"`
	ReservedQuantity int       `json:"reserved_quantity"`
}

func (h *InventoryHandler) Upsert(c *gin.Context) {
	callerID, ok := caller(c)
	if !ok {
		return
	}
	storeID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req upsertInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	position := &domain.InventoryPosition{
		ProductID:        req.ProductID,
		StoreID:          storeID,
		QuantityOnHand:   req.QuantityOnHand,
		ReservedQuantity: req.ReservedQuantity,
	}
	if err := h.inventory.Upsert(c.Request.Context(), position, callerID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, position)
}

func (h *InventoryHandler) ListByStore(c *gin.Context) {
	callerID, ok := caller(c)
	if !ok {
		return
	}
	storeID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	positions, err := h.inventory.ListByStore(c.Request.Context(), storeID, callerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"inventory": positions, "count": len(positions)})
}

func (h *InventoryHandler) Get(c *gin.Context) {
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

	position, err := h.inventory.Get(c.Request.Context(), productID, storeID, callerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, position)
}

type adjustStockRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Delta     int       `json:"delta" binding:"required"`
}

func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	callerID, ok := caller(c)
	if !ok {
		return
	}
	storeID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req adjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	position, err := h.inventory.AdjustStock(c.Request.Context(), req.ProductID, storeID, callerID, req.Delta)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, position)
}

type reserveStockRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required"`
}

func (h *InventoryHandler) ReserveStock(c *gin.Context) {
	callerID, ok := caller(c)
	if !ok {
		return
	}
	storeID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req reserveStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	position, err := h.inventory.ReserveStock(c.Request.Context(), req.ProductID, storeID, callerID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, position)
}

func (h *InventoryHandler) ListLowStock(c *gin.Context) {
	callerID, ok := caller(c)
	if !ok {
		return
	}
	storeID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	positions, err := h.inventory.ListLowStock(c.Request.Context(), storeID, callerID, intQuery(c, "threshold", 10))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"inventory": positions, "count": len(positions)})
}
