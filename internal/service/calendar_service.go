package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shelfmetrics/retail-optimizer/internal/domain"
	"github.com/shelfmetrics/retail-optimizer/internal/repository"
)

// CalendarService manages the demand calendar: promotions and holidays that
// the forecaster uses as signals.
type CalendarService struct {
	promotions repository.PromotionRepository
	holidays   repository.HolidayRepository
}

func NewCalendarService(promotions repository.PromotionRepository, holidays repository.HolidayRepository) *CalendarService {
	return &CalendarService{promotions: promotions, holidays: holidays}
}

func (s *CalendarService) CreatePromotion(ctx context.Context, promo *domain.Promotion) error {
	if strings.TrimSpace(promo.Name) == "" {
		return fmt.Errorf("promotion name is required: %w", domain.ErrValidation)
	}
	if promo.DiscountPct <= 0 || promo.DiscountPct > 100 {
		return fmt.Errorf("discount must be in (0, 100]: %w", domain.ErrValidation)
	}
	if !promo.EndsAt.After(promo.StartsAt) {
		return fmt.Errorf("promotion must end after it starts: %w", domain.ErrValidation)
	}
	return s.promotions.Create(ctx, promo)
}

func (s *CalendarService) GetPromotion(ctx context.Context, id uuid.UUID) (*domain.Promotion, error) {
	return s.promotions.GetByID(ctx, id)
}

func (s *CalendarService) ListActivePromotions(ctx context.Context) ([]domain.Promotion, error) {
	return s.promotions.ListActive(ctx, time.Now().UTC())
}

func (s *CalendarService) ListPromotionsByStore(ctx context.Context, storeID uuid.UUID, limit, offset int) ([]domain.Promotion, error) {
	return s.promotions.ListByStore(ctx, storeID, limit, offset)
}

func (s *CalendarService) UpdatePromotion(ctx context.Context, promo *domain.Promotion) error {
	if !promo.EndsAt.After(promo.StartsAt) {
		return fmt.Errorf("promotion must end after it starts: %w", domain.ErrValidation)
	}
	return s.promotions.Update(ctx, promo)
}

func (s *CalendarService) DeletePromotion(ctx context.Context, id uuid.UUID) error {
	return s.promotions.Delete(ctx, id)
}

func (s *CalendarService) CreateHoliday(ctx context.Context, holiday *domain.Holiday) error {
	if strings.TrimSpace(holiday.Name) == "" {
		return fmt.Errorf("holiday name is required: %w", domain.ErrValidation)
	}
	if strings.TrimSpace(holiday.Market) == "" {
		return fmt.Errorf("holiday market is required: %w", domain.ErrValidation)
	}
	if holiday.Date.IsZero() {
		return fmt.Errorf("holiday date is required: %w", domain.ErrValidation)
	}
	return s.holidays.Create(ctx, holiday)
}

func (s *CalendarService) GetHoliday(ctx context.Context, id uuid.UUID) (*domain.Holiday, error) {
	return s.holidays.GetByID(ctx, id)
}

func (s *CalendarService) ListHolidays(ctx context.Context, market string, limit, offset int) ([]domain.Holiday, error) {
	return s.holidays.ListByMarket(ctx, market, limit, offset)
}

func (s *CalendarService) UpdateHoliday(ctx context.Context, holiday *domain.Holiday) error {
	return s.holidays.Update(ctx, holiday)
}

func (s *CalendarService) DeleteHoliday(ctx context.Context, id uuid.UUID) error {
	return s.holidays.Delete(ctx, id)
}
