package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shelfmetrics/retail-optimizer/internal/domain"
)

// In-memory repository fakes shared by the service tests.

type memStoreRepo struct {
	mu     sync.Mutex
	stores map[uuid.UUID]domain.Store
}

func newMemStoreRepo() *memStoreRepo {
	return &memStoreRepo{stores: make(map[uuid.UUID]domain.Store)}
}

func (r *memStoreRepo) Create(ctx context.Context, store *domain.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if store.ID == uuid.Nil {
		store.ID = uuid.New()
	}
	r.stores[store.ID] = *store
	return nil
}

func (r *memStoreRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	store, ok := r.stores[id]
	if !ok {
		return nil, fmt.Errorf("store %s: %w", id, domain.ErrNotFound)
	}
	return &store, nil
}

func (r *memStoreRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]domain.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Store
	for _, store := range r.stores {
		if store.OwnerID == ownerID {
			out = append(out, store)
		}
	}
	return out, nil
}

func (r *memStoreRepo) Update(ctx context.Context, store *domain.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.stores[store.ID]; !ok {
		return fmt.Errorf("store %s: %w", store.ID, domain.ErrNotFound)
	}
	r.stores[store.ID] = *store
	return nil
}

func (r *memStoreRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.stores[id]; !ok {
		return fmt.Errorf("store %s: %w", id, domain.ErrNotFound)
	}
	delete(r.stores, id)
	return nil
}

type memProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]domain.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[uuid.UUID]domain.Product)}
}

func (r *memProductRepo) Create(ctx context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	for _, existing := range r.products {
		if existing.SKU == product.SKU {
			return fmt.Errorf("sku %s: %w", product.SKU, domain.ErrConflict)
		}
	}
	r.products[product.ID] = *product
	return nil
}

func (r *memProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}
	return &product, nil
}

func (r *memProductRepo) GetBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, product := range r.products {
		if product.SKU == sku {
			return &product, nil
		}
	}
	return nil, fmt.Errorf("sku %s: %w", sku, domain.ErrNotFound)
}

func (r *memProductRepo) List(ctx context.Context, category, search string, limit, offset int) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Product
	for _, product := range r.products {
		if category != "" && product.Category != category {
			continue
		}
		out = append(out, product)
	}
	return out, nil
}

func (r *memProductRepo) Update(ctx context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[product.ID]; !ok {
		return fmt.Errorf("product %s: %w", product.ID, domain.ErrNotFound)
	}
	r.products[product.ID] = *product
	return nil
}

func (r *memProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}

type posKey struct {
	productID uuid.UUID
	storeID   uuid.UUID
}

type memInventoryRepo struct {
	mu        sync.Mutex
	positions map[posKey]domain.InventoryPosition
}

func newMemInventoryRepo() *memInventoryRepo {
	return &memInventoryRepo{positions: make(map[posKey]domain.InventoryPosition)}
}

func (r *memInventoryRepo) Upsert(ctx context.Context, position *domain.InventoryPosition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if position.ID == uuid.Nil {
		position.ID = uuid.New()
	}
	r.positions[posKey{position.ProductID, position.StoreID}] = *position
	return nil
}

func (r *memInventoryRepo) GetByProductStore(ctx context.Context, productID, storeID uuid.UUID) (*domain.InventoryPosition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	position, ok := r.positions[posKey{productID, storeID}]
	if !ok {
		return nil, fmt.Errorf("inventory: %w", domain.ErrNotFound)
	}
	return &position, nil
}

func (r *memInventoryRepo) ListByStore(ctx context.Context, storeID uuid.UUID) ([]domain.InventoryPosition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.InventoryPosition
	for _, position := range r.positions {
		if position.StoreID == storeID {
			out = append(out, position)
		}
	}
	return out, nil
}

func (r *memInventoryRepo) AdjustStock(ctx context.Context, productID, storeID uuid.UUID, delta int) (*domain.InventoryPosition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := posKey{productID, storeID}
	position, ok := r.positions[key]
	if !ok {
		return nil, fmt.Errorf("inventory: %w", domain.ErrNotFound)
	}
	position.QuantityOnHand += delta
	if position.QuantityOnHand < 0 {
		position.QuantityOnHand = 0
	}
	r.positions[key] = position
	return &position, nil
}

func (r *memInventoryRepo) ReserveStock(ctx context.Context, productID, storeID uuid.UUID, qty int) (*domain.InventoryPosition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := posKey{productID, storeID}
	position, ok := r.positions[key]
	if !ok {
		return nil, fmt.Errorf("inventory: %w", domain.ErrNotFound)
	}
	if position.QuantityOnHand-position.ReservedQuantity < qty {
		return nil, fmt.Errorf("insufficient stock: %w", domain.ErrConflict)
	}
	position.ReservedQuantity += qty
	r.positions[key] = position
	return &position, nil
}

func (r *memInventoryRepo) ListLowStock(ctx context.Context, storeID uuid.UUID, threshold int) ([]domain.InventoryPosition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.InventoryPosition
	for _, position := range r.positions {
		if position.StoreID == storeID && position.QuantityOnHand <= threshold {
			out = append(out, position)
		}
	}
	return out, nil
}

func (r *memInventoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, position := range r.positions {
		if position.ID == id {
			delete(r.positions, key)
			return nil
		}
	}
	return fmt.Errorf("inventory %s: %w", id, domain.ErrNotFound)
}

type memSalesRepo struct {
	mu    sync.Mutex
	sales map[uuid.UUID]domain.SalesObservation
	reads int
}

func newMemSalesRepo() *memSalesRepo {
	return &memSalesRepo{sales: make(map[uuid.UUID]domain.SalesObservation)}
}

func (r *memSalesRepo) Create(ctx context.Context, sale *domain.SalesObservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	r.sales[sale.ID] = *sale
	return nil
}

func (r *memSalesRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.SalesObservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sale, ok := r.sales[id]
	if !ok {
		return nil, fmt.Errorf("sale %s: %w", id, domain.ErrNotFound)
	}
	return &sale, nil
}

func (r *memSalesRepo) ListByProductStore(ctx context.Context, productID, storeID uuid.UUID, since time.Time) ([]domain.SalesObservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reads++
	var out []domain.SalesObservation
	for _, sale := range r.sales {
		if sale.ProductID == productID && sale.StoreID == storeID && !sale.OccurredAt.Before(since) {
			out = append(out, sale)
		}
	}
	return out, nil
}

func (r *memSalesRepo) ListByStore(ctx context.Context, storeID uuid.UUID, since time.Time, limit, offset int) ([]domain.SalesObservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.SalesObservation
	for _, sale := range r.sales {
		if sale.StoreID == storeID && !sale.OccurredAt.Before(since) {
			out = append(out, sale)
		}
	}
	return out, nil
}

func (r *memSalesRepo) SummaryByDay(ctx context.Context, storeID uuid.UUID, days int) ([]domain.DailySalesSummary, error) {
	return nil, nil
}

func (r *memSalesRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sales[id]; !ok {
		return fmt.Errorf("sale %s: %w", id, domain.ErrNotFound)
	}
	delete(r.sales, id)
	return nil
}

type memOrderRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]domain.PurchaseOrder
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: make(map[uuid.UUID]domain.PurchaseOrder)}
}

func (r *memOrderRepo) Create(ctx context.Context, po *domain.PurchaseOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if po.ID == uuid.Nil {
		po.ID = uuid.New()
	}
	r.orders[po.ID] = *po
	return nil
}

func (r *memOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	po, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("purchase order %s: %w", id, domain.ErrNotFound)
	}
	return &po, nil
}

func (r *memOrderRepo) GetByNumber(ctx context.Context, number string) (*domain.PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, po := range r.orders {
		if po.Number == number {
			return &po, nil
		}
	}
	return nil, fmt.Errorf("purchase order %s: %w", number, domain.ErrNotFound)
}

func (r *memOrderRepo) ListByStore(ctx context.Context, storeID uuid.UUID, status string, limit, offset int) ([]domain.PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.PurchaseOrder
	for _, po := range r.orders {
		if po.StoreID != storeID {
			continue
		}
		if status != "" && po.Status != status {
			continue
		}
		out = append(out, po)
	}
	return out, nil
}

func (r *memOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	po, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("purchase order %s: %w", id, domain.ErrNotFound)
	}
	po.Status = status
	r.orders[id] = po
	return nil
}

func (r *memOrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return fmt.Errorf("purchase order %s: %w", id, domain.ErrNotFound)
	}
	delete(r.orders, id)
	return nil
}

// memReportCache is a map-backed cache.ReportCache for asserting hit/miss
// behavior.
type memReportCache struct {
	mu      sync.Mutex
	entries map[string]*domain.OptimizationReport
}

func newMemReportCache() *memReportCache {
	return &memReportCache{entries: make(map[string]*domain.OptimizationReport)}
}

func (c *memReportCache) key(storeID uuid.UUID, params domain.OptimizationParameters) string {
	return fmt.Sprintf("%s:%d:%.3f", storeID, params.LeadTimeDays, params.ServiceLevel)
}

func (c *memReportCache) Get(ctx context.Context, storeID uuid.UUID, params domain.OptimizationParameters) (*domain.OptimizationReport, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	report, ok := c.entries[c.key(storeID, params)]
	return report, ok, nil
}

func (c *memReportCache) Set(ctx context.Context, storeID uuid.UUID, params domain.OptimizationParameters, report *domain.OptimizationReport) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[c.key(storeID, params)] = report
	return nil
}

func (c *memReportCache) InvalidateStore(ctx context.Context, storeID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := storeID.String() + ":"
	for key := range c.entries {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(c.entries, key)
		}
	}
	return nil
}

func (c *memReportCache) InvalidateAll(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*domain.OptimizationReport)
	return nil
}

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func isValidation(err error) bool { return errors.Is(err, domain.ErrValidation) }
