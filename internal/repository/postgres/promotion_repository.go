package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/shelfmetrics/retail-optimizer/internal/domain"
	"github.com/shelfmetrics/retail-optimizer/internal/repository"
)

type promotionRepository struct {
	db *sqlx.DB
}

func NewPromotionRepository(db *sqlx.DB) repository.PromotionRepository {
	return &promotionRepository{db: db}
}

// promotionRow maps the flat table shape; product/store id arrays are stored
// as postgres uuid[] columns.
type promotionRow struct {
	ID          uuid.UUID      `db:"id"`
	Name        string         `db:"name"`
	ProductIDs  pq.StringArray `db:"product_ids"`
	StoreIDs    pq.StringArray `db:"store_ids"`
	DiscountPct float64        `db:"discount_pct"`
	StartsAt    time.Time      `db:"starts_at"`
	EndsAt      time.Time      `db:"ends_at"`
	IsActive    bool           `db:"is_active"`
	CreatedAt   time.Time      `db:"created_at"`
}

func (row promotionRow) toDomain() (domain.Promotion, error) {
	promo := domain.Promotion{
		ID:          row.ID,
		Name:        row.Name,
		DiscountPct: row.DiscountPct,
		StartsAt:    row.StartsAt,
		EndsAt:      row.EndsAt,
		IsActive:    row.IsActive,
		CreatedAt:   row.CreatedAt,
	}

	for _, raw := range row.ProductIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return domain.Promotion{}, fmt.Errorf("invalid product id %q in promotion %s: %w", raw, row.ID, err)
		}
		promo.ProductIDs = append(promo.ProductIDs, id)
	}
	for _, raw := range row.StoreIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return domain.Promotion{}, fmt.Errorf("invalid store id %q in promotion %s: %w", raw, row.ID, err)
		}
		promo.StoreIDs = append(promo.StoreIDs, id)
	}
	return promo, nil
}

func uuidsToStrings(ids []uuid.UUID) pq.StringArray {
	out := make(pq.StringArray, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func (r *promotionRepository) Create(ctx context.Context, promo *domain.Promotion) error {
	if promo.ID == uuid.Nil {
		promo.ID = uuid.New()
	}
	promo.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO promotions (id, name, product_ids, store_ids, discount_pct, starts_at, ends_at, is_active, created_at)
		VALUES ($1, $2, $3::uuid[], $4::uuid[], $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		promo.ID, promo.Name, uuidsToStrings(promo.ProductIDs), uuidsToStrings(promo.StoreIDs),
		promo.DiscountPct, promo.StartsAt, promo.EndsAt, promo.IsActive, promo.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating promotion: %w", err)
	}
	return nil
}

func (r *promotionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Promotion, error) {
	query := `
		SELECT id, name, product_ids, store_ids, discount_pct, starts_at, ends_at, is_active, created_at
		FROM promotions
		WHERE id = $1
	`

	var row promotionRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("promotion %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("error getting promotion: %w", err)
	}

	promo, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	return &promo, nil
}

func (r *promotionRepository) ListActive(ctx context.Context, at time.Time) ([]domain.Promotion, error) {
	query := `
		SELECT id, name, product_ids, store_ids, discount_pct, starts_at, ends_at, is_active, created_at
		FROM promotions
		WHERE is_active = true AND starts_at <= $1 AND ends_at >= $1
		ORDER BY starts_at
	`

	return r.selectPromotions(ctx, query, at)
}

func (r *promotionRepository) ListByStore(ctx context.Context, storeID uuid.UUID, limit, offset int) ([]domain.Promotion, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT id, name, product_ids, store_ids, discount_pct, starts_at, ends_at, is_active, created_at
		FROM promotions
		WHERE $1::text = ANY(store_ids::text[]) OR cardinality(store_ids) = 0
		ORDER BY starts_at DESC
		LIMIT $2 OFFSET $3
	`

	return r.selectPromotions(ctx, query, storeID.String(), limit, offset)
}

func (r *promotionRepository) Update(ctx context.Context, promo *domain.Promotion) error {
	query := `
		UPDATE promotions
		SET name = $2, product_ids = $3::uuid[], store_ids = $4::uuid[],
		    discount_pct = $5, starts_at = $6, ends_at = $7, is_active = $8
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		promo.ID, promo.Name, uuidsToStrings(promo.ProductIDs), uuidsToStrings(promo.StoreIDs),
		promo.DiscountPct, promo.StartsAt, promo.EndsAt, promo.IsActive)
	if err != nil {
		return fmt.Errorf("error updating promotion: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("promotion %s: %w", promo.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *promotionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM promotions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting promotion: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("promotion %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *promotionRepository) selectPromotions(ctx context.Context, query string, args ...interface{}) ([]domain.Promotion, error) {
	var rows []promotionRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("error listing promotions: %w", err)
	}

	promos := make([]domain.Promotion, 0, len(rows))
	for _, row := range rows {
		promo, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		promos = append(promos, promo)
	}
	return promos, nil
}
