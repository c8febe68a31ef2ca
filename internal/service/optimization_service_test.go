package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/shelfmetrics/retail-optimizer/internal/domain"
	"github.com/shelfmetrics/retail-optimizer/internal/optimize"
	"github.com/shelfmetrics/retail-optimizer/internal/service"
	"github.com/shelfmetrics/retail-optimizer/internal/storage"
)

type fixture struct {
	owner     uuid.UUID
	stranger  uuid.UUID
	store     *domain.Store
	stores    *memStoreRepo
	products  *memProductRepo
	inventory *memInventoryRepo
	sales     *memSalesRepo
	orders    *memOrderRepo
	cache     *memReportCache

	optimization *service.OptimizationService
	inventorySvc *service.InventoryService
	salesSvc     *service.SalesService
	orderSvc     *service.PurchaseOrderService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		owner:     uuid.New(),
		stranger:  uuid.New(),
		stores:    newMemStoreRepo(),
		products:  newMemProductRepo(),
		inventory: newMemInventoryRepo(),
		sales:     newMemSalesRepo(),
		orders:    newMemOrderRepo(),
		cache:     newMemReportCache(),
	}

	f.store = &domain.Store{Name: "Downtown", OwnerID: f.owner, Market: "ID", IsActive: true}
	if err := f.stores.Create(context.Background(), f.store); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	engine := optimize.NewEngine(f.stores, f.inventory, f.products, f.sales, optimize.EngineConfig{})
	f.optimization = service.NewOptimizationService(engine, f.cache, storage.Noop{})
	f.inventorySvc = service.NewInventoryService(f.inventory, f.products, f.stores, f.optimization)
	f.salesSvc = service.NewSalesService(f.sales, f.inventory, f.products, f.stores, f.optimization)
	f.orderSvc = service.NewPurchaseOrderService(f.orders, f.products, f.inventory, f.stores, f.optimization)

	return f
}

// addProduct seeds a product with stock and a flat daily sales history.
func (f *fixture) addProduct(t *testing.T, name string, price string, stock, dailyQty, historyDays int) uuid.UUID {
	t.Helper()

	product := &domain.Product{
		SKU:      "SKU-" + uuid.NewString()[:8],
		Name:     name,
		Category: "General",
		Price:    mustDecimal(price),
	}
	if err := f.products.Create(context.Background(), product); err != nil {
		t.Fatalf("seed product: %v", err)
	}

	err := f.inventory.Upsert(context.Background(), &domain.InventoryPosition{
		ProductID:      product.ID,
		StoreID:        f.store.ID,
		QuantityOnHand: stock,
	})
	if err != nil {
		t.Fatalf("seed inventory: %v", err)
	}

	now := time.Now().UTC()
	for i := 1; i <= historyDays; i++ {
		err := f.sales.Create(context.Background(), &domain.SalesObservation{
			ProductID:  product.ID,
			StoreID:    f.store.ID,
			Quantity:   dailyQty,
			UnitPrice:  product.Price,
			OccurredAt: now.AddDate(0, 0, -i),
		})
		if err != nil {
			t.Fatalf("seed sale: %v", err)
		}
	}

	return product.ID
}

func TestOptimizeStoreServesSecondCallFromCache(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "Widget", "12.50", 100, 5, 30)

	params := domain.DefaultOptimizationParameters()

	first, err := f.optimization.OptimizeStore(t.Context(), f.store.ID, f.owner, params)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	readsAfterFirst := f.sales.reads

	second, err := f.optimization.OptimizeStore(t.Context(), f.store.ID, f.owner, params)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if f.sales.reads != readsAfterFirst {
		t.Errorf("expected cached report, but sales were re-read (%d -> %d)", readsAfterFirst, f.sales.reads)
	}
	if first.TotalProducts != second.TotalProducts {
		t.Errorf("cached report differs: %d vs %d products", first.TotalProducts, second.TotalProducts)
	}
}

func TestInventoryWriteInvalidatesCachedReport(t *testing.T) {
	f := newFixture(t)
	productID := f.addProduct(t, "Widget", "12.50", 100, 5, 30)

	params := domain.DefaultOptimizationParameters()
	if _, err := f.optimization.OptimizeStore(t.Context(), f.store.ID, f.owner, params); err != nil {
		t.Fatalf("prime cache: %v", err)
	}

	if _, err := f.inventorySvc.AdjustStock(t.Context(), productID, f.store.ID, f.owner, -10); err != nil {
		t.Fatalf("adjust stock: %v", err)
	}

	readsBefore := f.sales.reads
	report, err := f.optimization.OptimizeStore(t.Context(), f.store.ID, f.owner, params)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if f.sales.reads == readsBefore {
		t.Error("expected recompute after inventory write, report served from cache")
	}
	if report.Metrics[0].CurrentStock != 90 {
		t.Errorf("expected current stock 90 after adjustment, got %d", report.Metrics[0].CurrentStock)
	}
}

func TestOptimizeStoreForbiddenForNonOwner(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "Widget", "12.50", 100, 5, 30)

	_, err := f.optimization.OptimizeStore(t.Context(), f.store.ID, f.stranger, domain.DefaultOptimizationParameters())
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRecordSaleDecrementsStock(t *testing.T) {
	f := newFixture(t)
	productID := f.addProduct(t, "Widget", "12.50", 100, 0, 0)

	sale := &domain.SalesObservation{
		ProductID: productID,
		StoreID:   f.store.ID,
		Quantity:  3,
	}
	if err := f.salesSvc.Record(t.Context(), sale, f.owner); err != nil {
		t.Fatalf("record sale: %v", err)
	}

	position, err := f.inventory.GetByProductStore(t.Context(), productID, f.store.ID)
	if err != nil {
		t.Fatalf("get inventory: %v", err)
	}
	if position.QuantityOnHand != 97 {
		t.Errorf("expected 97 on hand after sale, got %d", position.QuantityOnHand)
	}
	if !sale.UnitPrice.Equal(mustDecimal("12.50")) {
		t.Errorf("expected unit price defaulted from catalog, got %s", sale.UnitPrice)
	}
}

func TestRecordSaleRejectsNonPositiveQuantity(t *testing.T) {
	f := newFixture(t)
	productID := f.addProduct(t, "Widget", "12.50", 100, 0, 0)

	sale := &domain.SalesObservation{ProductID: productID, StoreID: f.store.ID, Quantity: 0}
	if err := f.salesSvc.Record(t.Context(), sale, f.owner); !isValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestReserveStockInsufficientIsConflict(t *testing.T) {
	f := newFixture(t)
	productID := f.addProduct(t, "Widget", "12.50", 5, 0, 0)

	_, err := f.inventorySvc.ReserveStock(t.Context(), productID, f.store.ID, f.owner, 10)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestUpsertRejectsNegativeQuantities(t *testing.T) {
	f := newFixture(t)
	productID := f.addProduct(t, "Widget", "12.50", 5, 0, 0)

	err := f.inventorySvc.Upsert(t.Context(), &domain.InventoryPosition{
		ProductID:      productID,
		StoreID:        f.store.ID,
		QuantityOnHand: -1,
	}, f.owner)
	if !isValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
