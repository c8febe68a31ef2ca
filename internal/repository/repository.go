package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/shelfmetrics/retail-optimizer/internal/domain"
)

type StoreRepository interface {
	Create(ctx context.Context, store *domain.Store) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Store, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]domain.Store, error)
	Update(ctx context.Context, store *domain.Store) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	GetBySKU(ctx context.Context, sku string) (*domain.Product, error)
	List(ctx context.Context, category, search string, limit, offset int) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type SalesRepository interface {
	Create(ctx context.Context, sale *domain.SalesObservation) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SalesObservation, error)
	ListByProductStore(ctx context.Context, productID, storeID uuid.UUID, since time.Time) ([]domain.SalesObservation, error)
	ListByStore(ctx context.Context, storeID uuid.UUID, since time.Time, limit, offset int) ([]domain.SalesObservation, error)
	SummaryByDay(ctx context.Context, storeID uuid.UUID, days int) ([]domain.DailySalesSummary, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type InventoryRepository interface {
	Upsert(ctx context.Context, position *domain.InventoryPosition) error
	GetByProductStore(ctx context.Context, productID, storeID uuid.UUID) (*domain.InventoryPosition, error)
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]domain.InventoryPosition, error)
	AdjustStock(ctx context.Context, productID, storeID uuid.UUID, delta int) (*domain.InventoryPosition, error)
	ReserveStock(ctx context.Context, productID, storeID uuid.UUID, qty int) (*domain.InventoryPosition, error)
	ListLowStock(ctx context.Context, storeID uuid.UUID, threshold int) ([]domain.InventoryPosition, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PurchaseOrderRepository interface {
	Create(ctx context.Context, po *domain.PurchaseOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PurchaseOrder, error)
	GetByNumber(ctx context.Context, number string) (*domain.PurchaseOrder, error)
	ListByStore(ctx context.Context, storeID uuid.UUID, status string, limit, offset int) ([]domain.PurchaseOrder, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type PromotionRepository interface {
	Create(ctx context.Context, promo *domain.Promotion) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Promotion, error)
	ListActive(ctx context.Context, at time.Time) ([]domain.Promotion, error)
	ListByStore(ctx context.Context, storeID uuid.UUID, limit, offset int) ([]domain.Promotion, error)
	Update(ctx context.Context, promo *domain.Promotion) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type HolidayRepository interface {
	Create(ctx context.Context, holiday *domain.Holiday) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Holiday, error)
	ListByMarket(ctx context.Context, market string, limit, offset int) ([]domain.Holiday, error)
	ListByDateRange(ctx context.Context, market string, from, to time.Time) ([]domain.Holiday, error)
	Update(ctx context.Context, holiday *domain.Holiday) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ForecastRepository interface {
	SaveBatch(ctx context.Context, forecasts []domain.Forecast) error
	ListByProductStore(ctx context.Context, productID, storeID uuid.UUID, from time.Time) ([]domain.Forecast, error)
}
