package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/shelfmetrics/retail-optimizer/internal/domain"
	"github.com/shelfmetrics/retail-optimizer/internal/repository"
)

type StoreService struct {
	stores repository.StoreRepository
}

func NewStoreService(stores repository.StoreRepository) *StoreService {
	return &StoreService{stores: stores}
}

func (s *StoreService) Create(ctx context.Context, store *domain.Store, caller uuid.UUID) error {
	if strings.TrimSpace(store.Name) == "" {
		return fmt.Errorf("store name is required: %w", domain.ErrValidation)
	}

	store.OwnerID = caller
	store.IsActive = true
	return s.stores.Create(ctx, store)
}

// Get returns the store only when the caller owns it.
func (s *StoreService) Get(ctx context.Context, id, caller uuid.UUID) (*domain.Store, error) {
	store, err := s.stores.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if store.OwnerID != caller {
		return nil, fmt.Errorf("store %s: %w", id, domain.ErrForbidden)
	}
	return store, nil
}

func (s *StoreService) ListOwned(ctx context.Context, caller uuid.UUID, limit, offset int) ([]domain.Store, error) {
	return s.stores.ListByOwner(ctx, caller, limit, offset)
}

func (s *StoreService) Update(ctx context.Context, store *domain.Store, caller uuid.UUID) error {
	existing, err := s.Get(ctx, store.ID, caller)
	if err != nil {
		return err
	}

	store.OwnerID = existing.OwnerID
	return s.stores.Update(ctx, store)
}

func (s *StoreService) Delete(ctx context.Context, id, caller uuid.UUID) error {
	if _, err := s.Get(ctx, id, caller); err != nil {
		return err
	}
	return s.stores.Delete(ctx, id)
}
