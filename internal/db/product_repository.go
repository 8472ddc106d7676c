package db

import (
	"database/sql"
	"fmt"

	"github.com/vyavasthita/ecommerce/internal/models"
)

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(database *PostgresDB) *ProductRepository {
	return &ProductRepository{db: database.Conn}
}

// GetAll returns all products with their collection
func (r *ProductRepository) GetAll() ([]models.Product, error) {
	query := `
		SELECT p.id, p.name, p.price, c.id, c.name
		FROM products p
		JOIN collections c ON c.id = p.collection_id
		ORDER BY p.id
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Collection.ID, &p.Collection.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

// GetByID returns a single product
func (r *ProductRepository) GetByID(id int) (*models.Product, error) {
	query := `
		SELECT p.id, p.name, p.price, c.id, c.name
		FROM products p
		JOIN collections c ON c.id = p.collection_id
		WHERE p.id = $1
	`

	var p models.Product
	err := r.db.QueryRow(query, id).
		Scan(&p.ID, &p.Name, &p.Price, &p.Collection.ID, &p.Collection.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &p, nil
}

// Create inserts a new product
func (r *ProductRepository) Create(req models.ProductRequest) (*models.Product, error) {
	query := `
		INSERT INTO products (collection_id, name, price)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int
	err := r.db.QueryRow(query, req.CollectionID, req.Name, req.Price).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return r.GetByID(id)
}

// Update replaces a product's collection, name and price
func (r *ProductRepository) Update(id int, req models.ProductRequest) error {
	query := `UPDATE products SET collection_id = $1, name = $2, price = $3 WHERE id = $4`

	result, err := r.db.Exec(query, req.CollectionID, req.Name, req.Price, id)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a product. Inventory and cart items cascade away; order
// items keep their snapshotted copy.
func (r *ProductRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
