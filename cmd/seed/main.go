package main

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/urfave/cli/v2"

	"github.com/shelfmetrics/retail-optimizer/internal/config"
	"github.com/shelfmetrics/retail-optimizer/pkg/logger"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS stores (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		owner_id UUID NOT NULL,
		market TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY,
		sku TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		price NUMERIC(12,2) NOT NULL DEFAULT 0,
		cost NUMERIC(12,2),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS sales (
		id UUID PRIMARY KEY,
		product_id UUID NOT NULL REFERENCES products(id),
		store_id UUID NOT NULL REFERENCES stores(id),
		quantity INTEGER NOT NULL,
		unit_price NUMERIC(12,2) NOT NULL DEFAULT 0,
		occurred_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_product_store_time ON sales (product_id, store_id, occurred_at)`,
	`CREATE TABLE IF NOT EXISTS inventory (
		id UUID PRIMARY KEY,
		product_id UUID NOT NULL REFERENCES products(id),
		store_id UUID NOT NULL REFERENCES stores(id),
		quantity_on_hand INTEGER NOT NULL DEFAULT 0,
		reserved_quantity INTEGER NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (product_id, store_id)
	)`,
	`CREATE TABLE IF NOT EXISTS purchase_orders (
		id UUID PRIMARY KEY,
		number TEXT NOT NULL UNIQUE,
		store_id UUID NOT NULL REFERENCES stores(id),
		status TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS purchase_order_lines (
		id UUID PRIMARY KEY,
		purchase_order_id UUID NOT NULL REFERENCES purchase_orders(id) ON DELETE CASCADE,
		product_id UUID NOT NULL REFERENCES products(id),
		quantity INTEGER NOT NULL,
		unit_cost NUMERIC(12,2) NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS promotions (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		product_ids UUID[] NOT NULL DEFAULT '{}',
		store_ids UUID[] NOT NULL DEFAULT '{}',
		discount_pct DOUBLE PRECISION NOT NULL,
		starts_at TIMESTAMPTZ NOT NULL,
		ends_at TIMESTAMPTZ NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS holidays (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		market TEXT NOT NULL,
		date DATE NOT NULL,
		event_type TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS forecasts (
		id UUID PRIMARY KEY,
		product_id UUID NOT NULL REFERENCES products(id),
		store_id UUID NOT NULL REFERENCES stores(id),
		day DATE NOT NULL,
		predicted_quantity INTEGER NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (product_id, store_id, day)
	)`,
}

func main() {
	app := &cli.App{
		Name:  "seed",
		Usage: "initialize the database schema and load sample data",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "sample-data", Usage: "load a demo store with products and sales history"},
			&cli.IntFlag{Name: "history-days", Value: 90, Usage: "days of sales history to generate"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("seed failed")
	}
}

func run(c *cli.Context) error {
	cfg := config.Load()

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.Database.User, cfg.Database.Password, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.DBName, cfg.Database.SSLMode)

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	ctx := c.Context
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	logger.Log.Info().Msg("schema applied")

	if c.Bool("sample-data") {
		if err := loadSampleData(ctx, db, c.Int("history-days")); err != nil {
			return err
		}
		logger.Log.Info().Msg("sample data loaded")
	}

	return nil
}

type sampleProduct struct {
	sku      string
	name     string
	category string
	price    float64
	cost     float64
	stock    int
	dailyAvg float64
}

func loadSampleData(ctx context.Context, db *sql.DB, historyDays int) error {
	ownerID := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	storeID := uuid.New()

	_, err := db.ExecContext(ctx,
		`INSERT INTO stores (id, name, owner_id, market, address) VALUES ($1, $2, $3, $4, $5)`,
		storeID, "Demo Store", ownerID, "ID", "Jl. Sudirman 1, Jakarta")
	if err != nil {
		return fmt.Errorf("insert store: %w", err)
	}

	products := []sampleProduct{
		{"ELEC-001", "Wireless Earbuds", "Electronics", 149.99, 95, 40, 3.2},
		{"ELEC-002", "USB-C Charger", "Electronics", 24.99, 12, 15, 6.5},
		{"CLTH-001", "Cotton T-Shirt", "Clothing", 19.99, 7.5, 120, 8.0},
		{"CLTH-002", "Denim Jacket", "Clothing", 79.99, 38, 12, 0.8},
		{"FOOD-001", "Arabica Coffee 250g", "Food", 11.50, 5.2, 60, 12.0},
		{"FOOD-002", "Dark Chocolate Bar", "Food", 4.25, 1.8, 8, 9.5},
	}

	rng := rand.New(rand.NewSource(42))
	now := time.Now().UTC()

	for _, p := range products {
		productID := uuid.New()
		_, err := db.ExecContext(ctx,
			`INSERT INTO products (id, sku, name, category, price, cost) VALUES ($1, $2, $3, $4, $5, $6)`,
			productID, p.sku, p.name, p.category, p.price, p.cost)
		if err != nil {
			return fmt.Errorf("insert product %s: %w", p.sku, err)
		}

		_, err = db.ExecContext(ctx,
			`INSERT INTO inventory (id, product_id, store_id, quantity_on_hand) VALUES ($1, $2, $3, $4)`,
			uuid.New(), productID, storeID, p.stock)
		if err != nil {
			return fmt.Errorf("insert inventory %s: %w", p.sku, err)
		}

		for day := 1; day <= historyDays; day++ {
			qty := poissonish(rng, p.dailyAvg)
			if qty == 0 {
				continue
			}
			occurred := now.AddDate(0, 0, -day).Add(time.Duration(rng.Intn(12)+8) * time.Hour)
			_, err := db.ExecContext(ctx,
				`INSERT INTO sales (id, product_id, store_id, quantity, unit_price, occurred_at) VALUES ($1, $2, $3, $4, $5, $6)`,
				uuid.New(), productID, storeID, qty, p.price, occurred)
			if err != nil {
				return fmt.Errorf("insert sale %s: %w", p.sku, err)
			}
		}
	}

	holidays := []struct {
		name string
		date time.Time
	}{
		{"New Year", time.Date(now.Year()+1, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{"Idul Fitri", time.Date(now.Year()+1, time.March, 20, 0, 0, 0, 0, time.UTC)},
		{"Independence Day", time.Date(now.Year()+1, time.August, 17, 0, 0, 0, 0, time.UTC)},
		{"Christmas", time.Date(now.Year(), time.December, 25, 0, 0, 0, 0, time.UTC)},
	}
	for _, h := range holidays {
		_, err := db.ExecContext(ctx,
			`INSERT INTO holidays (id, name, market, date, event_type) VALUES ($1, $2, $3, $4, $5)`,
			uuid.New(), h.name, "ID", h.date, "public")
		if err != nil {
			return fmt.Errorf("insert holiday %s: %w", h.name, err)
		}
	}

	return nil
}

// poissonish draws a small non-negative integer around the mean. Good enough
// for demo sales volumes without pulling in a stats package.
func poissonish(rng *rand.Rand, mean float64) int {
	value := mean + rng.NormFloat64()*mean*0.4
	if value < 0 {
		return 0
	}
	return int(value + 0.5)
}
