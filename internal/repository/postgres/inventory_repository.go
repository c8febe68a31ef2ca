package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/shelfmetrics/retail-optimizer/internal/domain"
	"github.com/shelfmetrics/retail-optimizer/internal/repository"
)

type inventoryRepository struct {
	db *sqlx.DB
}

func NewInventoryRepository(db *sqlx.DB) repository.InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) Upsert(ctx context.Context, position *domain.InventoryPosition) error {
	if position.ID == uuid.Nil {
		position.ID = uuid.New()
	}
	position.UpdatedAt = time.Now().UTC()

	// product+store is the stable join key for inventory rows
	query := `
		INSERT INTO inventory (id, product_id, store_id, quantity_on_hand, reserved_quantity, updated_at)
		VALUES (:id, :product_id, :store_id, :quantity_on_hand, :reserved_quantity, :updated_at)
		ON CONFLICT (product_id, store_id) DO UPDATE
		SET quantity_on_hand = EXCLUDED.quantity_on_hand,
		    reserved_quantity = EXCLUDED.reserved_quantity,
		    updated_at = EXCLUDED.updated_at
	`

	if _, err := r.db.NamedExecContext(ctx, query, position); err != nil {
		return fmt.Errorf("error upserting inventory: %w", err)
	}
	return nil
}

func (r *inventoryRepository) GetByProductStore(ctx context.Context, productID, storeID uuid.UUID) (*domain.InventoryPosition, error) {
	query := `
		SELECT id, product_id, store_id, quantity_on_hand, reserved_quantity, updated_at
		FROM inventory
		WHERE product_id = $1 AND store_id = $2
	`

	var position domain.InventoryPosition
	if err := r.db.GetContext(ctx, &position, query, productID, storeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("inventory for product %s in store %s: %w", productID, storeID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("error getting inventory: %w", err)
	}

	return &position, nil
}

func (r *inventoryRepository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]domain.InventoryPosition, error) {
	query := `
		SELECT id, product_id, store_id, quantity_on_hand, reserved_quantity, updated_at
		FROM inventory
		WHERE store_id = $1
		ORDER BY product_id
	`

	var positions []domain.InventoryPosition
	if err := r.db.SelectContext(ctx, &positions, query, storeID); err != nil {
		return nil, fmt.Errorf("error listing inventory: %w", err)
	}

	return positions, nil
}

func (r *inventoryRepository) AdjustStock(ctx context.Context, productID, storeID uuid.UUID, delta int) (*domain.InventoryPosition, error) {
	// floor at zero so a concurrent oversell cannot drive stock negative
	query := `
		UPDATE inventory
		SET quantity_on_hand = GREATEST(quantity_on_hand + $3, 0),
		    updated_at = NOW()
		WHERE product_id = $1 AND store_id = $2
		RETURNING id, product_id, store_id, quantity_on_hand, reserved_quantity, updated_at
	`

	var position domain.InventoryPosition
	if err := r.db.GetContext(ctx, &position, query, productID, storeID, delta); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("inventory for product %s in store %s: %w", productID, storeID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("error adjusting stock: %w", err)
	}

	return &position, nil
}

func (r *inventoryRepository) ReserveStock(ctx context.Context, productID, storeID uuid.UUID, qty int) (*domain.InventoryPosition, error) {
	query := `
		UPDATE inventory
		SET reserved_quantity = reserved_quantity + $3,
		    updated_at = NOW()
		WHERE product_id = $1 AND store_id = $2
		  AND quantity_on_hand - reserved_quantity >= $3
		RETURNING id, product_id, store_id, quantity_on_hand, reserved_quantity, updated_at
	`

	var position domain.InventoryPosition
	if err := r.db.GetContext(ctx, &position, query, productID, storeID, qty); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("insufficient available stock for product %s in store %s: %w", productID, storeID, domain.ErrConflict)
		}
		return nil, fmt.Errorf("error reserving stock: %w", err)
	}

	return &position, nil
}

func (r *inventoryRepository) ListLowStock(ctx context.Context, storeID uuid.UUID, threshold int) ([]domain.InventoryPosition, error) {
	query := `
		SELECT id, product_id, store_id, quantity_on_hand, reserved_quantity, updated_at
		FROM inventory
		WHERE store_id = $1 AND quantity_on_hand - reserved_quantity <= $2
		ORDER BY quantity_on_hand - reserved_quantity
	`

	var positions []domain.InventoryPosition
	if err := r.db.SelectContext(ctx, &positions, query, storeID, threshold); err != nil {
		return nil, fmt.Errorf("error listing low stock: %w", err)
	}

	return positions, nil
}

func (r *inventoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM inventory WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting inventory: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("inventory %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
