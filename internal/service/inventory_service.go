package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/shelfmetrics/retail-optimizer/internal/domain"
	"github.com/shelfmetrics/retail-optimizer/internal/repository"
)

// InventoryService guards inventory writes with store ownership checks and
// keeps the report cache honest by invalidating it after every mutation.
type InventoryService struct {
	inventory repository.InventoryRepository
	products  repository.ProductRepository
	stores    repository.StoreRepository
	reports   *OptimizationService
}

func NewInventoryService(
	inventory repository.InventoryRepository,
	products repository.ProductRepository,
	stores repository.StoreRepository,
	reports *OptimizationService,
) *InventoryService {
	return &InventoryService{
		inventory: inventory,
		products:  products,
		stores:    stores,
		reports:   reports,
	}
}

func (s *InventoryService) Upsert(ctx context.Context, position *domain.InventoryPosition, caller uuid.UUID) error {
	if position.QuantityOnHand < 0 {
		return fmt.Errorf("quantity on hand cannot be negative: %w", domain.ErrValidation)
	}
	if position.ReservedQuantity < 0 {
		return fmt.Errorf("reserved quantity cannot be negative: %w", domain.ErrValidation)
	}

	if err := s.authorizeStore(ctx, position.StoreID, caller); err != nil {
		return err
	}
	if _, err := s.products.GetByID(ctx, position.ProductID); err != nil {
		return err
	}

	if err := s.inventory.Upsert(ctx, position); err != nil {
		return err
	}

	s.reports.InvalidateStore(ctx, position.StoreID)
	return nil
}

func (s *InventoryService) Get(ctx context.Context, productID, storeID, caller uuid.UUID) (*domain.InventoryPosition, error) {
	if err := s.authorizeStore(ctx, storeID, caller); err != nil {
		return nil, err
	}
	return s.inventory.GetByProductStore(ctx, productID, storeID)
}

func (s *InventoryService) ListByStore(ctx context.Context, storeID, caller uuid.UUID) ([]domain.InventoryPosition, error) {
	if err := s.authorizeStore(ctx, storeID, caller); err != nil {
		return nil, err
	}
	return s.inventory.ListByStore(ctx, storeID)
}

// AdjustStock applies a signed delta to on-hand stock, flooring at zero.
func (s *InventoryService) AdjustStock(ctx context.Context, productID, storeID, caller uuid.UUID, delta int) (*domain.InventoryPosition, error) {
	if delta == 0 {
		return nil, fmt.Errorf("adjustment delta cannot be zero: %w", domain.ErrValidation)
	}
	if err := s.authorizeStore(ctx, storeID, caller); err != nil {
		return nil, err
	}

	position, err := s.inventory.AdjustStock(ctx, productID, storeID, delta)
	if err != nil {
		return nil, err
	}

	s.reports.InvalidateStore(ctx, storeID)
	return position, nil
}

// ReserveStock holds quantity against available stock; fails with ErrConflict
// when not enough is available.
func (s *InventoryService) ReserveStock(ctx context.Context, productID, storeID, caller uuid.UUID, qty int) (*domain.InventoryPosition, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("reservation quantity must be positive: %w", domain.ErrValidation)
	}
	if err := s.authorizeStore(ctx, storeID, caller); err != nil {
		return nil, err
	}

	position, err := s.inventory.ReserveStock(ctx, productID, storeID, qty)
	if err != nil {
		return nil, err
	}

	s.reports.InvalidateStore(ctx, storeID)
	return position, nil
}

func (s *InventoryService) ListLowStock(ctx context.Context, storeID, caller uuid.UUID, threshold int) ([]domain.InventoryPosition, error) {
	if err := s.authorizeStore(ctx, storeID, caller); err != nil {
		return nil, err
	}
	if threshold < 0 {
		threshold = 0
	}
	return s.inventory.ListLowStock(ctx, storeID, threshold)
}

func (s *InventoryService) authorizeStore(ctx context.Context, storeID, caller uuid.UUID) error {
	store, err := s.stores.GetByID(ctx, storeID)
	if err != nil {
		return err
	}
	if store.OwnerID != caller {
		return fmt.Errorf("store %s: %w", storeID, domain.ErrForbidden)
	}
	return nil
}
