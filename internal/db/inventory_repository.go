package db

import (
	"database/sql"
	"fmt"

	"github.com/vyavasthita/ecommerce/internal/models"
)

// InventoryRepository is the stock ledger: one row per product tracking the
// total and the currently reservable quantity. Reserve and Release run on
// the caller's transaction so a ledger mutation commits or rolls back
// together with the cart or order mutation that triggered it.
type InventoryRepository struct {
	db *sql.DB
}

func NewInventoryRepository(database *PostgresDB) *InventoryRepository {
	return &InventoryRepository{db: database.Conn}
}

// Reserve grants min(requested, available) for the product, decrements the
// available quantity by the grant and returns it. The inventory row is
// locked for the duration of tx.
func (r *InventoryRepository) Reserve(tx *sql.Tx, productID, requested int) (int, error) {
	var available int
	err := tx.QueryRow(
		`SELECT available_quantity FROM inventories WHERE product_id = $1 FOR UPDATE`,
		productID,
	).Scan(&available)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, fmt.Errorf("%w: no inventory for product %d", ErrNotFound, productID)
		}
		return 0, fmt.Errorf("failed to read inventory: %w", err)
	}

	granted := requested
	if granted > available {
		granted = available
	}

	if granted > 0 {
		_, err = tx.Exec(
			`UPDATE inventories SET available_quantity = available_quantity - $1 WHERE product_id = $2`,
			granted, productID,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to reserve stock: %w", err)
		}
	}

	return granted, nil
}

// Release returns qty units to the available pool, clamped at
// total_quantity since the table carries no stored upper-bound constraint.
func (r *InventoryRepository) Release(tx *sql.Tx, productID, qty int) error {
	result, err := tx.Exec(
		`UPDATE inventories
		 SET available_quantity = LEAST(available_quantity + $1, total_quantity)
		 WHERE product_id = $2`,
		qty, productID,
	)
	if err != nil {
		return fmt.Errorf("failed to release stock: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("%w: no inventory for product %d", ErrNotFound, productID)
	}

	return nil
}

// GetAll returns all inventory rows with product and collection names
func (r *InventoryRepository) GetAll() ([]models.Inventory, error) {
	query := `
		SELECT i.id, p.name, c.name, i.total_quantity, i.available_quantity
		FROM inventories i
		JOIN products p ON p.id = i.product_id
		JOIN collections c ON c.id = p.collection_id
		ORDER BY i.id
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventories: %w", err)
	}
	defer rows.Close()

	inventories := []models.Inventory{}
	for rows.Next() {
		var inv models.Inventory
		err := rows.Scan(&inv.ID, &inv.Product.Name, &inv.Product.Collection.Name,
			&inv.TotalQuantity, &inv.AvailableQuantity)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory: %w", err)
		}
		inventories = append(inventories, inv)
	}

	return inventories, rows.Err()
}

// GetByID returns a single inventory row
func (r *InventoryRepository) GetByID(id int) (*models.Inventory, error) {
	query := `
		SELECT i.id, p.name, c.name, i.total_quantity, i.available_quantity
		FROM inventories i
		JOIN products p ON p.id = i.product_id
		JOIN collections c ON c.id = p.collection_id
		WHERE i.id = $1
	`

	var inv models.Inventory
	err := r.db.QueryRow(query, id).
		Scan(&inv.ID, &inv.Product.Name, &inv.Product.Collection.Name,
			&inv.TotalQuantity, &inv.AvailableQuantity)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}

	return &inv, nil
}

// Create opens the ledger for a product; everything starts available.
func (r *InventoryRepository) Create(req models.CreateInventoryRequest) (*models.Inventory, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM inventories WHERE product_id = $1)`, req.ProductID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check inventory: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: product %d already has inventory", ErrDuplicate, req.ProductID)
	}

	var id int
	err = r.db.QueryRow(
		`INSERT INTO inventories (product_id, total_quantity, available_quantity)
		 VALUES ($1, $2, $2) RETURNING id`,
		req.ProductID, req.TotalQuantity,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create inventory: %w", err)
	}

	return r.GetByID(id)
}

// Update sets the total and available quantities (staff operation)
func (r *InventoryRepository) Update(id int, req models.UpdateInventoryRequest) error {
	if req.AvailableQuantity > req.TotalQuantity {
		return fmt.Errorf("%w: available quantity exceeds total", ErrInvalidInput)
	}

	result, err := r.db.Exec(
		`UPDATE inventories SET total_quantity = $1, available_quantity = $2 WHERE id = $3`,
		req.TotalQuantity, req.AvailableQuantity, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update inventory: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes an inventory row
func (r *InventoryRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM inventories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete inventory: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
