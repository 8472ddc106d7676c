package db

import (
	"database/sql"
	"fmt"

	"github.com/vyavasthita/ecommerce/internal/models"
)

// CartRepository owns carts and cart items. Every item mutation pairs a
// ledger call with the cart write inside one transaction, so a reservation
// can never persist without its item and vice versa.
type CartRepository struct {
	db  *sql.DB
	inv *InventoryRepository
}

func NewCartRepository(database *PostgresDB, inv *InventoryRepository) *CartRepository {
	return &CartRepository{db: database.Conn, inv: inv}
}

// CreateCart creates the user's cart. A user can hold at most one.
func (r *CartRepository) CreateCart(userID int) (*models.Cart, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM carts WHERE user_id = $1)`, userID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check cart: %w", err)
	}
	if exists {
		return nil, ErrDuplicateCart
	}

	cart := models.Cart{UserID: &userID, CartItems: []models.CartItem{}}
	err = r.db.QueryRow(
		`INSERT INTO carts (user_id) VALUES ($1) RETURNING id, created_at`,
		userID,
	).Scan(&cart.ID, &cart.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}

	return &cart, nil
}

// GetCarts returns carts with their items; userID narrows the result to one
// user's cart, nil returns all carts (staff view).
func (r *CartRepository) GetCarts(userID *int) ([]models.Cart, error) {
	query := `
		SELECT c.id, c.created_at, c.user_id, u.email
		FROM carts c
		LEFT JOIN users u ON u.id = c.user_id
	`
	var (
		rows *sql.Rows
		err  error
	)
	if userID != nil {
		rows, err = r.db.Query(query+` WHERE c.user_id = $1`, *userID)
	} else {
		rows, err = r.db.Query(query + ` ORDER BY c.id`)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query carts: %w", err)
	}
	defer rows.Close()

	carts := []models.Cart{}
	for rows.Next() {
		var (
			cart  models.Cart
			uid   sql.NullInt64
			email sql.NullString
		)
		if err := rows.Scan(&cart.ID, &cart.CreatedAt, &uid, &email); err != nil {
			return nil, fmt.Errorf("failed to scan cart: %w", err)
		}
		if uid.Valid {
			id := int(uid.Int64)
			cart.UserID = &id
		}
		if email.Valid {
			cart.User = &email.String
		}
		carts = append(carts, cart)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate carts: %w", err)
	}

	for i := range carts {
		items, total, err := r.GetItems(carts[i].ID)
		if err != nil {
			return nil, err
		}
		carts[i].CartItems = items
		carts[i].TotalCartValue = total
	}

	return carts, nil
}

// GetCartOwner returns the owning user id of a cart (nil for anonymous carts)
func (r *CartRepository) GetCartOwner(cartID int) (*int, error) {
	var uid sql.NullInt64
	err := r.db.QueryRow(`SELECT user_id FROM carts WHERE id = $1`, cartID).Scan(&uid)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get cart owner: %w", err)
	}

	if !uid.Valid {
		return nil, nil
	}
	id := int(uid.Int64)
	return &id, nil
}

// GetItems returns a cart's items with computed prices plus the cart total
func (r *CartRepository) GetItems(cartID int) ([]models.CartItem, int, error) {
	query := `
		SELECT ci.id, p.id, p.name, p.price, ci.quantity
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.id
	`

	rows, err := r.db.Query(query, cartID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	items := []models.CartItem{}
	total := 0
	for rows.Next() {
		var item models.CartItem
		err := rows.Scan(&item.ID, &item.Product.ID, &item.Product.Name,
			&item.Product.Price, &item.Quantity)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan cart item: %w", err)
		}
		item.ItemPrice = item.Quantity * item.Product.Price
		total += item.ItemPrice
		items = append(items, item)
	}

	return items, total, rows.Err()
}

// AddItem reserves stock for the product and adds the granted quantity to
// the cart. The request is clamped to availability: asking for 15 with 10
// in stock yields an item quantity of 10 and empties the ledger. A repeat
// add for the same product grows the existing row instead of creating a
// second one.
func (r *CartRepository) AddItem(cartID, productID, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	granted, err := r.inv.Reserve(tx, productID, quantity)
	if err != nil {
		return nil, err
	}

	var item models.CartItem
	err = tx.QueryRow(
		`INSERT INTO cart_items (cart_id, product_id, quantity) VALUES ($1, $2, $3)
		 ON CONFLICT (cart_id, product_id)
		 DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		 RETURNING id, quantity`,
		cartID, productID, granted,
	).Scan(&item.ID, &item.Quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert cart item: %w", err)
	}

	err = tx.QueryRow(`SELECT id, name, price FROM products WHERE id = $1`, productID).
		Scan(&item.Product.ID, &item.Product.Name, &item.Product.Price)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	item.ItemPrice = item.Quantity * item.Product.Price

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &item, nil
}

// UpdateItem reserves the requested quantity (clamped to availability) and
// adds the grant to the item's current quantity. The addition is
// deliberate: the quantity field is a delta on top of what is already in
// the cart, not an absolute replacement.
func (r *CartRepository) UpdateItem(cartID, itemID, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var productID int
	err = tx.QueryRow(
		`SELECT product_id FROM cart_items WHERE id = $1 AND cart_id = $2 FOR UPDATE`,
		itemID, cartID,
	).Scan(&productID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get cart item: %w", err)
	}

	granted, err := r.inv.Reserve(tx, productID, quantity)
	if err != nil {
		return nil, err
	}

	var item models.CartItem
	item.ID = itemID
	err = tx.QueryRow(
		`UPDATE cart_items SET quantity = quantity + $1 WHERE id = $2 RETURNING quantity`,
		granted, itemID,
	).Scan(&item.Quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}

	err = tx.QueryRow(`SELECT id, name, price FROM products WHERE id = $1`, productID).
		Scan(&item.Product.ID, &item.Product.Name, &item.Product.Price)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	item.ItemPrice = item.Quantity * item.Product.Price

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &item, nil
}

// RemoveItem releases the item's whole quantity back to the ledger and
// deletes the row
func (r *CartRepository) RemoveItem(cartID, itemID int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var (
		productID int
		quantity  int
	)
	err = tx.QueryRow(
		`SELECT product_id, quantity FROM cart_items WHERE id = $1 AND cart_id = $2 FOR UPDATE`,
		itemID, cartID,
	).Scan(&productID, &quantity)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get cart item: %w", err)
	}

	if err := r.inv.Release(tx, productID, quantity); err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM cart_items WHERE id = $1`, itemID); err != nil {
		return fmt.Errorf("failed to delete cart item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// DeleteCart drops the user's cart and its items. Reserved stock is NOT
// returned to the ledger here; RemoveItem is the only releasing path. That
// asymmetry mirrors the checkout flow, where disposal must not resurrect
// sold stock.
func (r *CartRepository) DeleteCart(userID int) error {
	var cartID int
	err := r.db.QueryRow(`SELECT id FROM carts WHERE user_id = $1`, userID).Scan(&cartID)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get cart: %w", err)
	}

	if _, err := r.db.Exec(`DELETE FROM carts WHERE id = $1`, cartID); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}

	return nil
}

// DeleteCartByID removes a cart by id; used by the cart-disposal subscriber
// after order creation
func (r *CartRepository) DeleteCartByID(cartID int) error {
	result, err := r.db.Exec(`DELETE FROM carts WHERE id = $1`, cartID)
	if err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
