package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shelfmetrics/retail-optimizer/internal/domain"
	"github.com/shelfmetrics/retail-optimizer/internal/repository"
	"github.com/shelfmetrics/retail-optimizer/pkg/logger"
)

// Legal purchase order status transitions. Cancellation is allowed until the
// order is received.
var poTransitions = map[string][]string{
	domain.POStatusDraft:   {domain.POStatusPending, domain.POStatusCancelled},
	domain.POStatusPending: {domain.POStatusOrdered, domain.POStatusCancelled},
	domain.POStatusOrdered: {domain.POStatusReceived, domain.POStatusCancelled},
}

type PurchaseOrderService struct {
	orders    repository.PurchaseOrderRepository
	products  repository.ProductRepository
	inventory repository.InventoryRepository
	stores    repository.StoreRepository
	optimizer *OptimizationService
}

func NewPurchaseOrderService(
	orders repository.PurchaseOrderRepository,
	products repository.ProductRepository,
	inventory repository.InventoryRepository,
	stores repository.StoreRepository,
	optimizer *OptimizationService,
) *PurchaseOrderService {
	return &PurchaseOrderService{
		orders:    orders,
		products:  products,
		inventory: inventory,
		stores:    stores,
		optimizer: optimizer,
	}
}

// GenerateDraft runs the optimization report and turns every product flagged
// Critical or Low into a draft order line sized at the recommended quantity.
// Returns ErrNotFound when nothing needs reordering.
func (s *PurchaseOrderService) GenerateDraft(ctx context.Context, storeID, caller uuid.UUID, params domain.OptimizationParameters) (*domain.PurchaseOrder, error) {
	report, err := s.optimizer.OptimizeStore(ctx, storeID, caller, params)
	if err != nil {
		return nil, err
	}

	var lines []domain.PurchaseOrderLine
	for _, metric := range report.Metrics {
		if metric.Status != domain.StatusCritical && metric.Status != domain.StatusLow {
			continue
		}

		qty := metric.RecommendedOrderQty
		if qty <= 0 {
			qty = metric.ReorderPoint - metric.CurrentStock
		}
		if qty <= 0 {
			continue
		}

		unitCost, err := s.resolveLineCost(ctx, metric.ProductID)
		if err != nil {
			logger.Log.Warn().
				Err(err).
				Str("product_id", metric.ProductID.String()).
				Msg("skipping draft line, product unavailable")
			continue
		}

		lines = append(lines, domain.PurchaseOrderLine{
			ProductID: metric.ProductID,
			Quantity:  qty,
			UnitCost:  unitCost,
		})
	}

	if len(lines) == 0 {
		return nil, fmt.Errorf("no products need reordering for store %s: %w", storeID, domain.ErrNotFound)
	}

	po := &domain.PurchaseOrder{
		Number:  generateOrderNumber(),
		StoreID: storeID,
		Status:  domain.POStatusDraft,
		Lines:   lines,
	}

	if err := s.orders.Create(ctx, po); err != nil {
		return nil, err
	}
	return po, nil
}

func (s *PurchaseOrderService) Create(ctx context.Context, po *domain.PurchaseOrder, caller uuid.UUID) error {
	if err := s.authorizeStore(ctx, po.StoreID, caller); err != nil {
		return err
	}
	if len(po.Lines) == 0 {
		return fmt.Errorf("purchase order needs at least one line: %w", domain.ErrValidation)
	}
	for _, line := range po.Lines {
		if line.Quantity <= 0 {
			return fmt.Errorf("line quantity must be positive: %w", domain.ErrValidation)
		}
		if line.UnitCost.LessThan(decimal.Zero) {
			return fmt.Errorf("line unit cost cannot be negative: %w", domain.ErrValidation)
		}
	}

	if po.Number == "" {
		po.Number = generateOrderNumber()
	}
	po.Status = domain.POStatusDraft
	return s.orders.Create(ctx, po)
}

func (s *PurchaseOrderService) Get(ctx context.Context, id, caller uuid.UUID) (*domain.PurchaseOrder, error) {
	po, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeStore(ctx, po.StoreID, caller); err != nil {
		return nil, err
	}
	return po, nil
}

func (s *PurchaseOrderService) ListByStore(ctx context.Context, storeID, caller uuid.UUID, status string, limit, offset int) ([]domain.PurchaseOrder, error) {
	if err := s.authorizeStore(ctx, storeID, caller); err != nil {
		return nil, err
	}
	return s.orders.ListByStore(ctx, storeID, status, limit, offset)
}

// Transition moves an order along the draft → pending → ordered → received
// path. Receiving an order books its lines into inventory.
func (s *PurchaseOrderService) Transition(ctx context.Context, id, caller uuid.UUID, target string) (*domain.PurchaseOrder, error) {
	target = strings.ToLower(strings.TrimSpace(target))

	po, err := s.Get(ctx, id, caller)
	if err != nil {
		return nil, err
	}

	if !transitionAllowed(po.Status, target) {
		return nil, fmt.Errorf("cannot move order %s from %s to %s: %w", po.Number, po.Status, target, domain.ErrConflict)
	}

	if err := s.orders.UpdateStatus(ctx, id, target); err != nil {
		return nil, err
	}
	po.Status = target

	if target == domain.POStatusReceived {
		s.receiveLines(ctx, po)
	}

	return po, nil
}

func (s *PurchaseOrderService) Delete(ctx context.Context, id, caller uuid.UUID) error {
	po, err := s.Get(ctx, id, caller)
	if err != nil {
		return err
	}
	if po.Status != domain.POStatusDraft {
		return fmt.Errorf("only draft orders can be deleted: %w", domain.ErrConflict)
	}
	return s.orders.Delete(ctx, id)
}

// receiveLines books received quantities into stock. Partial failures are
// logged, not fatal; the order status already moved.
func (s *PurchaseOrderService) receiveLines(ctx context.Context, po *domain.PurchaseOrder) {
	for _, line := range po.Lines {
		if _, err := s.inventory.AdjustStock(ctx, line.ProductID, po.StoreID, line.Quantity); err != nil {
			logger.Log.Warn().
				Err(err).
				Str("product_id", line.ProductID.String()).
				Str("po_number", po.Number).
				Msg("stock increment failed on receipt")
		}
	}
	s.optimizer.InvalidateStore(ctx, po.StoreID)
}

func (s *PurchaseOrderService) resolveLineCost(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return decimal.Zero, err
	}
	if product.Cost.Valid && product.Cost.Decimal.GreaterThan(decimal.Zero) {
		return product.Cost.Decimal, nil
	}
	return product.Price, nil
}

func (s *PurchaseOrderService) authorizeStore(ctx context.Context, storeID, caller uuid.UUID) error {
	store, err := s.stores.GetByID(ctx, storeID)
	if err != nil {
		return err
	}
	if store.OwnerID != caller {
		return fmt.Errorf("store %s: %w", storeID, domain.ErrForbidden)
	}
	return nil
}

func transitionAllowed(from, to string) bool {
	for _, allowed := range poTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func generateOrderNumber() string {
	suffix := strings.ToUpper(uuid.NewString()[:8])
	return fmt.Sprintf("PO-%s-%s", time.Now().UTC().Format("20060102"), suffix)
}
