package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shelfmetrics/retail-optimizer/internal/domain"
	"github.com/shelfmetrics/retail-optimizer/internal/repository"
	"github.com/shelfmetrics/retail-optimizer/pkg/logger"
)

// SalesService records sale events and decrements stock as a side effect.
// Sales are append-only: once recorded they are never edited, only deleted
// for correction.
type SalesService struct {
	sales     repository.SalesRepository
	inventory repository.InventoryRepository
	products  repository.ProductRepository
	stores    repository.StoreRepository
	reports   *OptimizationService
}

func NewSalesService(
	sales repository.SalesRepository,
	inventory repository.InventoryRepository,
	products repository.ProductRepository,
	stores repository.StoreRepository,
	reports *OptimizationService,
) *SalesService {
	return &SalesService{
		sales:     sales,
		inventory: inventory,
		products:  products,
		stores:    stores,
		reports:   reports,
	}
}

func (s *SalesService) Record(ctx context.Context, sale *domain.SalesObservation, caller uuid.UUID) error {
	if sale.Quantity <= 0 {
		return fmt.Errorf("sale quantity must be positive: %w", domain.ErrValidation)
	}

	store, err := s.stores.GetByID(ctx, sale.StoreID)
	if err != nil {
		return err
	}
	if store.OwnerID != caller {
		return fmt.Errorf("store %s: %w", sale.StoreID, domain.ErrForbidden)
	}

	product, err := s.products.GetByID(ctx, sale.ProductID)
	if err != nil {
		return err
	}

	if sale.UnitPrice.IsZero() {
		sale.UnitPrice = product.Price
	}
	if sale.OccurredAt.IsZero() {
		sale.OccurredAt = time.Now().UTC()
	}

	if err := s.sales.Create(ctx, sale); err != nil {
		return err
	}

	// Stock follows the sale; a missing inventory row is not an error, the
	// sale is still the source of truth for demand history.
	if _, err := s.inventory.AdjustStock(ctx, sale.ProductID, sale.StoreID, -sale.Quantity); err != nil && !errors.Is(err, domain.ErrNotFound) {
		logger.Log.Warn().
			Err(err).
			Str("product_id", sale.ProductID.String()).
			Str("store_id", sale.StoreID.String()).
			Msg("stock decrement failed after sale")
	}

	s.reports.InvalidateStore(ctx, sale.StoreID)
	return nil
}

func (s *SalesService) ListByStore(ctx context.Context, storeID, caller uuid.UUID, since time.Time, limit, offset int) ([]domain.SalesObservation, error) {
	if err := s.authorizeStore(ctx, storeID, caller); err != nil {
		return nil, err
	}
	return s.sales.ListByStore(ctx, storeID, since, limit, offset)
}

func (s *SalesService) ListByProduct(ctx context.Context, productID, storeID, caller uuid.UUID, since time.Time) ([]domain.SalesObservation, error) {
	if err := s.authorizeStore(ctx, storeID, caller); err != nil {
		return nil, err
	}
	return s.sales.ListByProductStore(ctx, productID, storeID, since)
}

// DailySummary aggregates store-wide quantity and revenue over the trailing
// window, one row per calendar day.
func (s *SalesService) DailySummary(ctx context.Context, storeID, caller uuid.UUID, days int) ([]domain.DailySalesSummary, error) {
	if err := s.authorizeStore(ctx, storeID, caller); err != nil {
		return nil, err
	}
	if days <= 0 {
		days = 30
	}
	return s.sales.SummaryByDay(ctx, storeID, days)
}

func (s *SalesService) Delete(ctx context.Context, id, caller uuid.UUID) error {
	sale, err := s.sales.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeStore(ctx, sale.StoreID, caller); err != nil {
		return err
	}

	if err := s.sales.Delete(ctx, id); err != nil {
		return err
	}

	s.reports.InvalidateStore(ctx, sale.StoreID)
	return nil
}

func (s *SalesService) authorizeStore(ctx context.Context, storeID, caller uuid.UUID) error {
	store, err := s.stores.GetByID(ctx, storeID)
	if err != nil {
		return err
	}
	if store.OwnerID != caller {
		return fmt.Errorf("store %s: %w", storeID, domain.ErrForbidden)
	}
	return nil
}
