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

type holidayRepository struct {
	db *sqlx.DB
}

func NewHolidayRepository(db *sqlx.DB) repository.HolidayRepository {
	return &holidayRepository{db: db}
}

func (r *holidayRepository) Create(ctx context.Context, holiday *domain.Holiday) error {
	if holiday.ID == uuid.Nil {
		holiday.ID = uuid.New()
	}
	holiday.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO holidays (id, name, market, date, event_type, created_at)
		VALUES (:id, :name, :market, :date, :event_type, :created_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, holiday); err != nil {
		return fmt.Errorf("error creating holiday: %w", err)
	}
	return nil
}

func (r *holidayRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Holiday, error) {
	query := `
		SELECT id, name, market, date, event_type, created_at
		FROM holidays
		WHERE id = $1
	`

	var holiday domain.Holiday
	if err := r.db.GetContext(ctx, &holiday, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("holiday %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("error getting holiday: %w", err)
	}

	return &holiday, nil
}

func (r *holidayRepository) ListByMarket(ctx context.Context, market string, limit, offset int) ([]domain.Holiday, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT id, name, market, date, event_type, created_at
		FROM holidays
		WHERE market = $1
		ORDER BY date
		LIMIT $2 OFFSET $3
	`

	var holidays []domain.Holiday
	if err := r.db.SelectContext(ctx, &holidays, query, market, limit, offset); err != nil {
		return nil, fmt.Errorf("error listing holidays: %w", err)
	}

	return holidays, nil
}

func (r *holidayRepository) ListByDateRange(ctx context.Context, market string, from, to time.Time) ([]domain.Holiday, error) {
	query := `
		SELECT id, name, market, date, event_type, created_at
		FROM holidays
		WHERE market = $1 AND date >= $2 AND date <= $3
		ORDER BY date
	`

	var holidays []domain.Holiday
	if err := r.db.SelectContext(ctx, &holidays, query, market, from, to); err != nil {
		return nil, fmt.Errorf("error listing holidays by date range: %w", err)
	}

	return holidays, nil
}

func (r *holidayRepository) Update(ctx context.Context, holiday *domain.Holiday) error {
	query := `
		UPDATE holidays
		SET name = :name, market = :market, date = :date, event_type = :event_type
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, holiday)
	if err != nil {
		return fmt.Errorf("error updating holiday: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("holiday %s: %w", holiday.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *holidayRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting holiday: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("holiday %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
