package service_test

import (
	"errors"
	"testing"

	"github.com/shelfmetrics/retail-optimizer/internal/domain"
)

func TestGenerateDraftOrdersLowProducts(t *testing.T) {
	f := newFixture(t)

	// 5/day over 30 days, 10 on hand: well under the reorder point.
	lowID := f.addProduct(t, "Low Widget", "12.50", 10, 5, 30)
	// Same demand with 500 on hand stays healthy and must not appear.
	f.addProduct(t, "Healthy Widget", "12.50", 500, 5, 30)

	po, err := f.orderSvc.GenerateDraft(t.Context(), f.store.ID, f.owner, domain.DefaultOptimizationParameters())
	if err != nil {
		t.Fatalf("generate draft: %v", err)
	}

	if po.Status != domain.POStatusDraft {
		t.Errorf("expected draft status, got %s", po.Status)
	}
	if po.Number == "" {
		t.Error("expected a generated order number")
	}
	if len(po.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(po.Lines))
	}
	if po.Lines[0].ProductID != lowID {
		t.Errorf("expected line for low product, got %s", po.Lines[0].ProductID)
	}
	if po.Lines[0].Quantity <= 0 {
		t.Errorf("expected positive recommended quantity, got %d", po.Lines[0].Quantity)
	}
}

func TestGenerateDraftNothingToOrder(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "Healthy Widget", "12.50", 500, 5, 30)

	_, err := f.orderSvc.GenerateDraft(t.Context(), f.store.ID, f.owner, domain.DefaultOptimizationParameters())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound when nothing needs reordering, got %v", err)
	}
}

func TestPurchaseOrderLifecycle(t *testing.T) {
	f := newFixture(t)
	productID := f.addProduct(t, "Widget", "12.50", 10, 0, 0)

	po := &domain.PurchaseOrder{
		StoreID: f.store.ID,
		Lines: []domain.PurchaseOrderLine{
			{ProductID: productID, Quantity: 40, UnitCost: mustDecimal("8.00")},
		},
	}
	if err := f.orderSvc.Create(t.Context(), po, f.owner); err != nil {
		t.Fatalf("create: %v", err)
	}

	for _, target := range []string{domain.POStatusPending, domain.POStatusOrdered, domain.POStatusReceived} {
		updated, err := f.orderSvc.Transition(t.Context(), po.ID, f.owner, target)
		if err != nil {
			t.Fatalf("transition to %s: %v", target, err)
		}
		if updated.Status != target {
			t.Errorf("expected status %s, got %s", target, updated.Status)
		}
	}

	// Receipt books the line quantity into stock.
	position, err := f.inventory.GetByProductStore(t.Context(), productID, f.store.ID)
	if err != nil {
		t.Fatalf("get inventory: %v", err)
	}
	if position.QuantityOnHand != 50 {
		t.Errorf("expected 50 on hand after receipt, got %d", position.QuantityOnHand)
	}
}

func TestPurchaseOrderIllegalTransition(t *testing.T) {
	f := newFixture(t)
	productID := f.addProduct(t, "Widget", "12.50", 10, 0, 0)

	po := &domain.PurchaseOrder{
		StoreID: f.store.ID,
		Lines:   []domain.PurchaseOrderLine{{ProductID: productID, Quantity: 5, UnitCost: mustDecimal("8.00")}},
	}
	if err := f.orderSvc.Create(t.Context(), po, f.owner); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := f.orderSvc.Transition(t.Context(), po.ID, f.owner, domain.POStatusReceived); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict skipping straight to received, got %v", err)
	}

	if _, err := f.orderSvc.Transition(t.Context(), po.ID, f.owner, domain.POStatusCancelled); err != nil {
		t.Fatalf("cancel from draft: %v", err)
	}
	if _, err := f.orderSvc.Transition(t.Context(), po.ID, f.owner, domain.POStatusPending); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict reviving a cancelled order, got %v", err)
	}
}

func TestPurchaseOrderDeleteOnlyDrafts(t *testing.T) {
	f := newFixture(t)
	productID := f.addProduct(t, "Widget", "12.50", 10, 0, 0)

	po := &domain.PurchaseOrder{
		StoreID: f.store.ID,
		Lines:   []domain.PurchaseOrderLine{{ProductID: productID, Quantity: 5, UnitCost: mustDecimal("8.00")}},
	}
	if err := f.orderSvc.Create(t.Context(), po, f.owner); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.orderSvc.Transition(t.Context(), po.ID, f.owner, domain.POStatusPending); err != nil {
		t.Fatalf("transition: %v", err)
	}

	if err := f.orderSvc.Delete(t.Context(), po.ID, f.owner); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict deleting a pending order, got %v", err)
	}
}

func TestPurchaseOrderForbiddenForNonOwner(t *testing.T) {
	f := newFixture(t)
	productID := f.addProduct(t, "Widget", "12.50", 10, 0, 0)

	po := &domain.PurchaseOrder{
		StoreID: f.store.ID,
		Lines:   []domain.PurchaseOrderLine{{ProductID: productID, Quantity: 5, UnitCost: mustDecimal("8.00")}},
	}
	if err := f.orderSvc.Create(t.Context(), po, f.stranger); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
