package config

import (
	"context"
	"database/sql"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL,
		balance INTEGER NOT NULL DEFAULT 1000,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS artworks (
		id SERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		data TEXT NOT NULL,
		price INTEGER NOT NULL,
		owner_id INTEGER NOT NULL REFERENCES users(id),
		is_private BOOLEAN NOT NULL DEFAULT FALSE,
		signature TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	// artwork_id carries no foreign key: transaction rows are an append-only
	// history and must outlive the artwork they reference.
	`CREATE TABLE IF NOT EXISTS transactions (
		id SERIAL PRIMARY KEY,
		buyer_id INTEGER NOT NULL REFERENCES users(id),
		seller_id INTEGER NOT NULL REFERENCES users(id),
		artwork_id INTEGER NOT NULL,
		amount INTEGER NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS artwork_settings (
		id SERIAL PRIMARY KEY,
		artwork_id INTEGER NOT NULL REFERENCES artworks(id) ON DELETE CASCADE,
		settings_data TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_artworks_owner ON artworks(owner_id)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_buyer ON transactions(buyer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_seller ON transactions(seller_id)`,
}

// createTables creates the schema on startup if it does not exist yet.
func createTables(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
