package db

import (
	"database/sql"
	"fmt"

	"github.com/vyavasthita/ecommerce/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(database *PostgresDB) *UserRepository {
	return &UserRepository{db: database.Conn}
}

// Create inserts a new user. The password must already be hashed.
func (r *UserRepository) Create(user *models.User) error {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, user.Email).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check user: %w", err)
	}
	if exists {
		return fmt.Errorf("%w: email already registered", ErrDuplicate)
	}

	query := `
		INSERT INTO users (email, password, first_name, is_staff)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err = r.db.QueryRow(query, user.Email, user.Password, user.FirstName, user.IsStaff).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByEmail returns the user with the given email
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	query := `SELECT id, email, password, first_name, is_staff, created_at FROM users WHERE email = $1`

	var u models.User
	err := r.db.QueryRow(query, email).
		Scan(&u.ID, &u.Email, &u.Password, &u.FirstName, &u.IsStaff, &u.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &u, nil
}
