package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shelfmetrics/retail-optimizer/internal/domain"
	"github.com/shelfmetrics/retail-optimizer/internal/service"
)

type StoreHandler struct {
	stores *service.StoreService
}

func NewStoreHandler(stores *service.StoreService) *StoreHandler {
	return &StoreHandler{stores: stores}
}

type storeRequest struct {
	Name    string `json:"name" binding:"required"`
	Market  string `json:"market"`
	Address string `json:"address"`
}

func (h *StoreHandler) Create(c *gin.Context) {
	callerID, ok := caller(c)
	if !ok {
		return
	}

	var req storeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	store := &domain.Store{
		Name:    req.Name,
		Market:  req.Market,
		Address: req.Address,
	}
	if err := h.stores.Create(c.Request.Context(), store, callerID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, store)
}

func (h *StoreHandler) Get(c *gin.Context) {
	callerID, ok := caller(c)
	if !ok {
		return
	}
	storeID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	store, err := h.stores.Get(c.Request.Context(), storeID, callerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, store)
}

func (h *StoreHandler) List(c *gin.Context) {
	callerID, ok := caller(c)
	if !ok {
		return
	}

	limit, offset := pagination(c)
	stores, err := h.stores.ListOwned(c.Request.Context(), callerID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stores": stores, "count": len(stores)})
}

func (h *StoreHandler) Update(c *gin.Context) {
	callerID, ok := caller(c)
	if !ok {
		return
	}
	storeID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req storeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	store := &domain.Store{
		ID:       storeID,
		Name:     req.Name,
		Market:   req.Market,
		Address:  req.Address,
		IsActive: true,
	}
	if err := h.stores.Update(c.Request.Context(), store, callerID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, store)
}

func (h *StoreHandler) Delete(c *gin.Context) {
	callerID, ok := caller(c)
	if !ok {
		return
	}
	storeID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.stores.Delete(c.Request.Context(), storeID, callerID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
