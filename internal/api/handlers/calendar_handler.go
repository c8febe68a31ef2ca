package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shelfmetrics/retail-optimizer/internal/domain"
	"github.com/shelfmetrics/retail-optimizer/internal/service"
)

type CalendarHandler struct {
	calendar *service.CalendarService
}

func NewCalendarHandler(calendar *service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendar: calendar}
}

type promotionRequest struct {
	Name        string      `json:"name" binding:"required"`
	ProductIDs  []uuid.UUID `json:"product_ids"`
	StoreIDs    []uuid.UUID `json:"store_ids"`
	DiscountPct float64     `json:"discount_pct" binding:"required"`
	StartsAt    time.Time   `json:"starts_at" binding:"required"`
	EndsAt      time.Time   `json:"ends_at" binding:"required"`
	IsActive    *bool       `json:"is_active"`
}

func (req promotionRequest) toDomain() *domain.Promotion {
	promo := &domain.Promotion{
		Name:        req.Name,
		ProductIDs:  req.ProductIDs,
		StoreIDs:    req.StoreIDs,
		DiscountPct: req.DiscountPct,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		IsActive:    true,
	}
	if req.IsActive != nil {
		promo.IsActive = *req.IsActive
	}
	return promo
}

func (h *CalendarHandler) CreatePromotion(c *gin.Context) {
	var req promotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	promo := req.toDomain()
	if err := h.calendar.CreatePromotion(c.Request.Context(), promo); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, promo)
}

func (h *CalendarHandler) GetPromotion(c *gin.Context) {
	promoID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	promo, err := h.calendar.GetPromotion(c.Request.Context(), promoID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, promo)
}

func (h *CalendarHandler) ListPromotions(c *gin.Context) {
	if c.Query("store_id") != "" {
		storeID, err := uuid.Parse(c.Query("store_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid store_id"})
			return
		}

		limit, offset := pagination(c)
		promos, err := h.calendar.ListPromotionsByStore(c.Request.Context(), storeID, limit, offset)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"promotions": promos, "count": len(promos)})
		return
	}

	promos, err := h.calendar.ListActivePromotions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"promotions": promos, "count": len(promos)})
}

func (h *CalendarHandler) UpdatePromotion(c *gin.Context) {
	promoID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req promotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	promo := req.toDomain()
	promo.ID = promoID
	if err := h.calendar.UpdatePromotion(c.Request.Context(), promo); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, promo)
}

func (h *CalendarHandler) DeletePromotion(c *gin.Context) {
	promoID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.calendar.DeletePromotion(c.Request.Context(), promoID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

type holidayRequest struct {
	Name      string    `json:"name" binding:"required"`
	Market    string    `json:"market" binding:"required"`
	Date      time.Time `json:"date" binding:"required"`
	EventType string    `json:"event_type"`
}

func (h *CalendarHandler) CreateHoliday(c *gin.Context) {
	var req holidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	holiday := &domain.Holiday{
		Name:      req.Name,
		Market:    req.Market,
		Date:      req.Date,
		EventType: req.EventType,
	}
	if err := h.calendar.CreateHoliday(c.Request.Context(), holiday); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, holiday)
}

func (h *CalendarHandler) ListHolidays(c *gin.Context) {
	limit, offset := pagination(c)

	holidays, err := h.calendar.ListHolidays(c.Request.Context(), c.Query("market"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"holidays": holidays, "count": len(holidays)})
}

func (h *CalendarHandler) UpdateHoliday(c *gin.Context) {
	holidayID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req holidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	holiday := &domain.Holiday{
		ID:        holidayID,
		Name:      req.Name,
		Market:    req.Market,
		Date:      req.Date,
		EventType: req.EventType,
	}
	if err := h.calendar.UpdateHoliday(c.Request.Context(), holiday); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, holiday)
}

func (h *CalendarHandler) DeleteHoliday(c *gin.Context) {
	holidayID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.calendar.DeleteHoliday(c.Request.Context(), holidayID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
