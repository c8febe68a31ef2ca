package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/shelfmetrics/retail-optimizer/internal/domain"
	"github.com/shelfmetrics/retail-optimizer/internal/service"
)

type ProductHandler struct {
	catalog *service.CatalogService
}

func NewProductHandler(catalog *service.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

type productRequest struct {
	SKU      string           `json:"sku" binding:"required"`
	Name     string           `json:"name" binding:"required"`
	Category string           `json:"category"`
	Price    decimal.Decimal  `json:"price"`
	Cost     *decimal.Decimal `json:"cost"`
}

func (req productRequest) toDomain() *domain.Product {
	product := &domain.Product{
		SKU:      req.SKU,
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
	}
	if req.Cost != nil {
		product.Cost = decimal.NewNullDecimal(*req.Cost)
	}
	return product
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := req.toDomain()
	if err := h.catalog.Create(c.Request.Context(), product); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Get(c *gin.Context) {
	productID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	product, err := h.catalog.Get(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) GetBySKU(c *gin.Context) {
	product, err := h.catalog.GetBySKU(c.Request.Context(), c.Param("sku"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) List(c *gin.Context) {
	limit, offset := pagination(c)

	products, err := h.catalog.List(c.Request.Context(), c.Query("category"), c.Query("search"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

func (h *ProductHandler) Update(c *gin.Context) {
	productID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := req.toDomain()
	product.ID = productID
	if err := h.catalog.Update(c.Request.Context(), product); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	productID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalog.Delete(c.Request.Context(), productID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
