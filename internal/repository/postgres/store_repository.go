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

type storeRepository struct {
	db *sqlx.DB
}

func NewStoreRepository(db *sqlx.DB) repository.StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) Create(ctx context.Context, store *domain.Store) error {
	if store.ID == uuid.Nil {
		store.ID = uuid.New()
	}
	now := time.Now().UTC()
	store.CreatedAt = now
	store.UpdatedAt = now

	query := `
		INSERT INTO stores (id, name, owner_id, market, address, is_active, created_at, updated_at)
		VALUES (:id, :name, :owner_id, :market, :address, :is_active, :created_at, :updated_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, store); err != nil {
		return fmt.Errorf("error creating store: %w", err)
	}
	return nil
}

func (r *storeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Store, error) {
	query := `
		SELECT id, name, owner_id, market, address, is_active, created_at, updated_at
		FROM stores
		WHERE id = $1
	`

	var store domain.Store
	if err := r.db.GetContext(ctx, &store, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("store %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("error getting store: %w", err)
	}

	return &store, nil
}

func (r *storeRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]domain.Store, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT id, name, owner_id, market, address, is_active, created_at, updated_at
		FROM stores
		WHERE owner_id = $1 AND is_active = true
		ORDER BY created_at
		LIMIT $2 OFFSET $3
	`

	var stores []domain.Store
	if err := r.db.SelectContext(ctx, &stores, query, ownerID, limit, offset); err != nil {
		return nil, fmt.Errorf("error listing stores: %w", err)
	}

	return stores, nil
}

func (r *storeRepository) Update(ctx context.Context, store *domain.Store) error {
	store.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE stores
		SET name = :name, market = :market, address = :address,
		    is_active = :is_active, updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, store)
	if err != nil {
		return fmt.Errorf("error updating store: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("store %s: %w", store.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *storeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM stores WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting store: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("store %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
