package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/shelfmetrics/retail-optimizer/internal/domain"
	"github.com/shelfmetrics/retail-optimizer/internal/repository"
)

type purchaseOrderRepository struct {
	db *DB
}

func NewPurchaseOrderRepository(db *DB) repository.PurchaseOrderRepository {
	return &purchaseOrderRepository{db: db}
}

func (r *purchaseOrderRepository) Create(ctx context.Context, po *domain.PurchaseOrder) error {
	if po.ID == uuid.Nil {
		po.ID = uuid.New()
	}
	if po.Status == "" {
		po.Status = domain.POStatusDraft
	}
	now := time.Now().UTC()
	po.CreatedAt = now
	po.UpdatedAt = now

	// header and lines are written atomically
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		headerQuery := `
			INSERT INTO purchase_orders (id, number, store_id, status, created_at, updated_at)
			VALUES (:id, :number, :store_id, :status, :created_at, :updated_at)
		`
		if _, err := tx.NamedExecContext(ctx, headerQuery, po); err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
				return fmt.Errorf("purchase order number %s: %w", po.Number, domain.ErrConflict)
			}
			return fmt.Errorf("error creating purchase order: %w", err)
		}

		lineQuery := `
			INSERT INTO purchase_order_lines (id, purchase_order_id, product_id, quantity, unit_cost)
			VALUES (:id, :purchase_order_id, :product_id, :quantity, :unit_cost)
		`
		for i := range po.Lines {
			if po.Lines[i].ID == uuid.Nil {
				po.Lines[i].ID = uuid.New()
			}
			po.Lines[i].PurchaseOrderID = po.ID
			if _, err := tx.NamedExecContext(ctx, lineQuery, po.Lines[i]); err != nil {
				return fmt.Errorf("error creating purchase order line: %w", err)
			}
		}
		return nil
	})
}

func (r *purchaseOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PurchaseOrder, error) {
	query := `
		SELECT id, number, store_id, status, created_at, updated_at
		FROM purchase_orders
		WHERE id = $1
	`

	var po domain.PurchaseOrder
	if err := r.db.GetContext(ctx, &po, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("purchase order %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("error getting purchase order: %w", err)
	}

	if err := r.loadLines(ctx, &po); err != nil {
		return nil, err
	}
	return &po, nil
}

func (r *purchaseOrderRepository) GetByNumber(ctx context.Context, number string) (*domain.PurchaseOrder, error) {
	query := `
		SELECT id, number, store_id, status, created_at, updated_at
		FROM purchase_orders
		WHERE number = $1
	`

	var po domain.PurchaseOrder
	if err := r.db.GetContext(ctx, &po, query, number); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("purchase order number %s: %w", number, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("error getting purchase order by number: %w", err)
	}

	if err := r.loadLines(ctx, &po); err != nil {
		return nil, err
	}
	return &po, nil
}

func (r *purchaseOrderRepository) ListByStore(ctx context.Context, storeID uuid.UUID, status string, limit, offset int) ([]domain.PurchaseOrder, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT id, number, store_id, status, created_at, updated_at
		FROM purchase_orders
		WHERE store_id = $1
	`

	args := []interface{}{storeID}
	argCounter := 2

	var conditions []string
	if status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argCounter))
		args = append(args, status)
		argCounter++
	}
	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argCounter, argCounter+1)
	args = append(args, limit, offset)

	var orders []domain.PurchaseOrder
	if err := r.db.SelectContext(ctx, &orders, query, args...); err != nil {
		return nil, fmt.Errorf("error listing purchase orders: %w", err)
	}

	for i := range orders {
		if err := r.loadLines(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *purchaseOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `
		UPDATE purchase_orders
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("error updating purchase order status: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("purchase order %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *purchaseOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM purchase_order_lines WHERE purchase_order_id = $1`, id); err != nil {
			return fmt.Errorf("error deleting purchase order lines: %w", err)
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM purchase_orders WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("error deleting purchase order: %w", err)
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			return fmt.Errorf("purchase order %s: %w", id, domain.ErrNotFound)
		}
		return nil
	})
}

func (r *purchaseOrderRepository) loadLines(ctx context.Context, po *domain.PurchaseOrder) error {
	query := `
		SELECT id, purchase_order_id, product_id, quantity, unit_cost
		FROM purchase_order_lines
		WHERE purchase_order_id = $1
		ORDER BY id
	`

	if err := r.db.SelectContext(ctx, &po.Lines, query, po.ID); err != nil {
		return fmt.Errorf("error loading purchase order lines: %w", err)
	}
	return nil
}
