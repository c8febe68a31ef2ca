package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/shelfmetrics/retail-optimizer/internal/domain"
	"github.com/shelfmetrics/retail-optimizer/internal/repository"
)

type forecastRepository struct {
	db *DB
}

func NewForecastRepository(db *DB) repository.ForecastRepository {
	return &forecastRepository{db: db}
}

func (r *forecastRepository) SaveBatch(ctx context.Context, forecasts []domain.Forecast) error {
	if len(forecasts) == 0 {
		return nil
	}

	query := `
		INSERT INTO forecasts (id, product_id, store_id, day, predicted_quantity, created_at)
		VALUES (:id, :product_id, :store_id, :day, :predicted_quantity, :created_at)
		ON CONFLICT (product_id, store_id, day) DO UPDATE
		SET predicted_quantity = EXCLUDED.predicted_quantity,
		    created_at = EXCLUDED.created_at
	`

	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		now := time.Now().UTC()
		for i := range forecasts {
			if forecasts[i].ID == uuid.Nil {
				forecasts[i].ID = uuid.New()
			}
			forecasts[i].CreatedAt = now
			if _, err := tx.NamedExecContext(ctx, query, forecasts[i]); err != nil {
				return fmt.Errorf("error saving forecast: %w", err)
			}
		}
		return nil
	})
}

func (r *forecastRepository) ListByProductStore(ctx context.Context, productID, storeID uuid.UUID, from time.Time) ([]domain.Forecast, error) {
	query := `
		SELECT id, product_id, store_id, day, predicted_quantity, created_at
		FROM forecasts
		WHERE product_id = $1 AND store_id = $2 AND day >= $3
		ORDER BY day
	`

	var forecasts []domain.Forecast
	if err := r.db.SelectContext(ctx, &forecasts, query, productID, storeID, from); err != nil {
		return nil, fmt.Errorf("error listing forecasts: %w", err)
	}

	return forecasts, nil
}
