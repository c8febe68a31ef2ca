package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Store represents a store location owned by a single user
type Store struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	OwnerID   uuid.UUID `json:"owner_id" db:"owner_id"`
	Market    string    `json:"market" db:"market"`
	Address   string    `json:"address" db:"address"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Product represents a catalog entry
type Product struct {
	ID        uuid.UUID           `json:"id" db:"id"`
	SKU       string              `json:"sku" db:"sku"`
	Name      string              `json:"name" db:"name"`
	Category  string              `json:"category" db:"category"`
	Price     decimal.Decimal     `json:"price" db:"price"`
	Cost      decimal.NullDecimal `json:"cost" db:"cost"`
	CreatedAt time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt time.Time           `json:"updated_at" db:"updated_at"`
}

// SalesObservation is one historical sale event. Immutable once recorded.
type SalesObservation struct {
	ID         uuid.UUID       `json:"id" db:"id"`
	ProductID  uuid.UUID       `json:"product_id" db:"product_id"`
	StoreID    uuid.UUID       `json:"store_id" db:"store_id"`
	Quantity   int             `json:"quantity" db:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price" db:"unit_price"`
	OccurredAt time.Time       `json:"occurred_at" db:"occurred_at"`
}

// DailySalesSummary aggregates quantity and revenue per calendar day
type DailySalesSummary struct {
	Day      time.Time       `json:"day" db:"day"`
	Quantity int             `json:"quantity" db:"quantity"`
	Revenue  decimal.Decimal `json:"revenue" db:"revenue"`
}

// InventoryPosition is the current on-hand state for a (product, store) pair.
// AvailableQuantity is always derived, never stored.
type InventoryPosition struct {
	ID               uuid.UUID `json:"id" db:"id"`
	ProductID        uuid.UUID `json:"product_id" db:"product_id"`
	StoreID          uuid.UUID `json:"store_id" db:"store_id"`
	QuantityOnHand   int       `json:"quantity_on_hand" db:"quantity_on_hand"`
	ReservedQuantity int       `json:"reserved_quantity" db:"reserved_quantity"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// AvailableQuantity returns on-hand stock minus reservations.
func (p InventoryPosition) AvailableQuantity() int {
	return p.QuantityOnHand - p.ReservedQuantity
}

// Purchase order statuses
const (
	POStatusDraft     = "draft"
	POStatusPending   = "pending"
	POStatusOrdered   = "ordered"
	POStatusReceived  = "received"
	POStatusCancelled = "cancelled"
)

// PurchaseOrder represents an order placed against a supplier for one store
type PurchaseOrder struct {
	ID        uuid.UUID           `json:"id" db:"id"`
	Number    string              `json:"number" db:"number"`
	StoreID   uuid.UUID           `json:"store_id" db:"store_id"`
	Status    string              `json:"status" db:"status"`
	Lines     []PurchaseOrderLine `json:"lines" db:"-"`
	CreatedAt time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt time.Time           `json:"updated_at" db:"updated_at"`
}

// PurchaseOrderLine is a single product line on a purchase order
type PurchaseOrderLine struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	PurchaseOrderID uuid.UUID       `json:"purchase_order_id" db:"purchase_order_id"`
	ProductID       uuid.UUID       `json:"product_id" db:"product_id"`
	Quantity        int             `json:"quantity" db:"quantity"`
	UnitCost        decimal.Decimal `json:"unit_cost" db:"unit_cost"`
}

// Total sums quantity times unit cost across all lines.
func (po PurchaseOrder) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range po.Lines {
		total = total.Add(line.UnitCost.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// Promotion represents a time-bound discount on a set of products/stores
type Promotion struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	Name        string      `json:"name" db:"name"`
	ProductIDs  []uuid.UUID `json:"product_ids" db:"-"`
	StoreIDs    []uuid.UUID `json:"store_ids" db:"-"`
	DiscountPct float64     `json:"discount_pct" db:"discount_pct"`
	StartsAt    time.Time   `json:"starts_at" db:"starts_at"`
	EndsAt      time.Time   `json:"ends_at" db:"ends_at"`
	IsActive    bool        `json:"is_active" db:"is_active"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
}

// ActiveOn reports whether the promotion covers the given day.
func (p Promotion) ActiveOn(day time.Time) bool {
	return p.IsActive && !day.Before(p.StartsAt) && !day.After(p.EndsAt)
}

// Holiday represents a calendar event that shifts demand in a market
type Holiday struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Market    string    `json:"market" db:"market"`
	Date      time.Time `json:"date" db:"date"`
	EventType string    `json:"event_type" db:"event_type"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Forecast is one predicted demand quantity for a product/store/day
type Forecast struct {
	ID                uuid.UUID `json:"id" db:"id"`
	ProductID         uuid.UUID `json:"product_id" db:"product_id"`
	StoreID           uuid.UUID `json:"store_id" db:"store_id"`
	Day               time.Time `json:"day" db:"day"`
	PredictedQuantity int       `json:"predicted_quantity" db:"predicted_quantity"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}
