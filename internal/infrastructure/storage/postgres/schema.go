package postgres

import (
	"context"
	"fmt"
)

// schemaStatements creates the three tables the service owns.
// quantity_on_hand carries a CHECK constraint as a second line of
// defense behind the conditional decrement.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS stock_items (
		id                UUID PRIMARY KEY,
		name              TEXT NOT NULL,
		category          TEXT NOT NULL,
		unit_price        NUMERIC(15,2) NOT NULL CHECK (unit_price >= 0),
		quantity_on_hand  INTEGER NOT NULL CHECK (quantity_on_hand >= 0),
		reorder_threshold INTEGER NOT NULL CHECK (reorder_threshold >= 0),
		description       TEXT,
		image_url         TEXT,
		created_at        TIMESTAMPTZ NOT NULL,
		updated_at        TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sale_records (
		id                 UUID PRIMARY KEY,
		item_id            UUID NOT NULL REFERENCES stock_items (id),
		quantity           INTEGER NOT NULL CHECK (quantity >= 1),
		unit_price_at_sale NUMERIC(15,2) NOT NULL CHECK (unit_price_at_sale >= 0),
		total              NUMERIC(15,2) NOT NULL,
		customer_name      TEXT,
		customer_email     TEXT,
		customer_phone     TEXT,
		sold_at            TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sale_records_sold_at ON sale_records (sold_at)`,
	`CREATE INDEX IF NOT EXISTS idx_sale_records_item_id ON sale_records (item_id)`,
}

// EnsureSchema creates the tables if they do not exist.
func EnsureSchema(ctx context.Context, pool *Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
