package db

import (
	"fmt"
	"log"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL,
		first_name TEXT NOT NULL,
		is_staff BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS collections (
		id SERIAL PRIMARY KEY,
		name VARCHAR(30) UNIQUE NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id SERIAL PRIMARY KEY,
		collection_id INTEGER NOT NULL REFERENCES collections(id) ON DELETE CASCADE,
		name VARCHAR(50) NOT NULL,
		price INTEGER NOT NULL CHECK (price >= 1)
	)`,
	`CREATE TABLE IF NOT EXISTS inventories (
		id SERIAL PRIMARY KEY,
		product_id INTEGER UNIQUE NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		total_quantity INTEGER NOT NULL CHECK (total_quantity >= 1),
		available_quantity INTEGER NOT NULL CHECK (available_quantity >= 0)
	)`,
	`CREATE TABLE IF NOT EXISTS carts (
		id SERIAL PRIMARY KEY,
		user_id INTEGER UNIQUE REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS cart_items (
		id SERIAL PRIMARY KEY,
		cart_id INTEGER NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
		product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		quantity INTEGER NOT NULL CHECK (quantity >= 0),
		UNIQUE (cart_id, product_id)
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		payment_status VARCHAR(10) NOT NULL,
		order_status VARCHAR(10) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	// order_items keeps product_id without a foreign key and snapshots the
	// product name and price, so orders survive catalog deletions.
	`CREATE TABLE IF NOT EXISTS order_items (
		id SERIAL PRIMARY KEY,
		order_id INTEGER NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		product_id INTEGER NOT NULL,
		product_name VARCHAR(50) NOT NULL,
		price INTEGER NOT NULL,
		quantity INTEGER NOT NULL CHECK (quantity >= 0)
	)`,
}

// Migrate applies the schema. Every statement is idempotent, so running it
// on every startup is safe.
func Migrate(database *PostgresDB) error {
	for _, stmt := range schema {
		if _, err := database.Conn.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	log.Println("✅ Database schema up to date")
	return nil
}
