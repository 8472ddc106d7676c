package db

import (
	"database/sql"
	"fmt"

	"github.com/vyavasthita/ecommerce/internal/models"
)

type CollectionRepository struct {
	db *sql.DB
}

func NewCollectionRepository(database *PostgresDB) *CollectionRepository {
	return &CollectionRepository{db: database.Conn}
}

// GetAll returns all collections
func (r *CollectionRepository) GetAll() ([]models.Collection, error) {
	rows, err := r.db.Query(`SELECT id, name FROM collections ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query collections: %w", err)
	}
	defer rows.Close()

	collections := []models.Collection{}
	for rows.Next() {
		var c models.Collection
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan collection: %w", err)
		}
		collections = append(collections, c)
	}

	return collections, rows.Err()
}

// GetByID returns a single collection
func (r *CollectionRepository) GetByID(id int) (*models.Collection, error) {
	var c models.Collection
	err := r.db.QueryRow(`SELECT id, name FROM collections WHERE id = $1`, id).Scan(&c.ID, &c.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}

	return &c, nil
}

// Create inserts a new collection. The name must be one of the category codes.
func (r *CollectionRepository) Create(name string) (*models.Collection, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM collections WHERE name = $1)`, name).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check collection: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: collection %q already exists", ErrDuplicate, name)
	}

	var c models.Collection
	err = r.db.QueryRow(`INSERT INTO collections (name) VALUES ($1) RETURNING id, name`, name).
		Scan(&c.ID, &c.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}

	return &c, nil
}

// Update renames a collection
func (r *CollectionRepository) Update(id int, name string) error {
	result, err := r.db.Exec(`UPDATE collections SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		return fmt.Errorf("failed to update collection: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a collection; its products cascade away with it.
func (r *CollectionRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM collections WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
