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

type salesRepository struct {
	db *sqlx.DB
}

func NewSalesRepository(db *sqlx.DB) repository.SalesRepository {
	return &salesRepository{db: db}
}

func (r *salesRepository) Create(ctx context.Context, sale *domain.SalesObservation) error {
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	if sale.OccurredAt.IsZero() {
		sale.OccurredAt = time.Now().UTC()
	}

	query := `
		INSERT INTO sales (id, product_id, store_id, quantity, unit_price, occurred_at)
		VALUES (:id, :product_id, :store_id, :quantity, :unit_price, :occurred_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, sale); err != nil {
		return fmt.Errorf("error creating sale: %w", err)
	}
	return nil
}

func (r *salesRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SalesObservation, error) {
	query := `
		SELECT id, product_id, store_id, quantity, unit_price, occurred_at
		FROM sales
		WHERE id = $1
	`

	var sale domain.SalesObservation
	if err := r.db.GetContext(ctx, &sale, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("sale %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("error getting sale: %w", err)
	}

	return &sale, nil
}

func (r *salesRepository) ListByProductStore(ctx context.Context, productID, storeID uuid.UUID, since time.Time) ([]domain.SalesObservation, error) {
	query := `
		SELECT id, product_id, store_id, quantity, unit_price, occurred_at
		FROM sales
		WHERE product_id = $1 AND store_id = $2 AND occurred_at >= $3
		ORDER BY occurred_at
	`

	var sales []domain.SalesObservation
	if err := r.db.SelectContext(ctx, &sales, query, productID, storeID, since); err != nil {
		return nil, fmt.Errorf("error listing sales for product: %w", err)
	}

	return sales, nil
}

func (r *salesRepository) ListByStore(ctx context.Context, storeID uuid.UUID, since time.Time, limit, offset int) ([]domain.SalesObservation, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT id, product_id, store_id, quantity, unit_price, occurred_at
		FROM sales
		WHERE store_id = $1 AND occurred_at >= $2
		ORDER BY occurred_at DESC
		LIMIT $3 OFFSET $4
	`

	var sales []domain.SalesObservation
	if err := r.db.SelectContext(ctx, &sales, query, storeID, since, limit, offset); err != nil {
		return nil, fmt.Errorf("error listing sales for store: %w", err)
	}

	return sales, nil
}

func (r *salesRepository) SummaryByDay(ctx context.Context, storeID uuid.UUID, days int) ([]domain.DailySalesSummary, error) {
	if days <= 0 {
		days = 30
	}

	query := `
		SELECT
			date_trunc('day', occurred_at) AS day,
			COALESCE(SUM(quantity), 0) AS quantity,
			COALESCE(SUM(quantity * unit_price), 0) AS revenue
		FROM sales
		WHERE store_id = $1 AND occurred_at >= (current_date - ($2 || ' days')::interval)
		GROUP BY date_trunc('day', occurred_at)
		ORDER BY day
	`

	var summaries []domain.DailySalesSummary
	if err := r.db.SelectContext(ctx, &summaries, query, storeID, days); err != nil {
		return nil, fmt.Errorf("error summarizing sales: %w", err)
	}

	return summaries, nil
}

func (r *salesRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting sale: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("sale %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
