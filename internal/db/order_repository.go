package db

import (
	"database/sql"
	"fmt"

	"github.com/vyavasthita/ecommerce/internal/models"
)

var validPaymentStatuses = map[string]bool{
	models.PaymentUnsuccessful: true,
	models.PaymentSuccessful:   true,
}

var validOrderStatuses = map[string]bool{
	models.OrderInProgress: true,
	models.OrderCompleted:  true,
	models.OrderCancelled:  true,
}

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(database *PostgresDB) *OrderRepository {
	return &OrderRepository{db: database.Conn}
}

// Create snapshots the user's cart into a new order inside one transaction:
// insert the order row, copy every cart item into order_items with the
// product name and price frozen in. Ledger reservations stay decremented —
// the stock is sold now. Returns the order and the source cart id so the
// caller can signal disposal after commit.
func (r *OrderRepository) Create(userID int, paymentStatus, orderStatus string) (*models.Order, int, error) {
	if !validPaymentStatuses[paymentStatus] {
		return nil, 0, fmt.Errorf("%w: invalid payment status %q", ErrInvalidInput, paymentStatus)
	}
	if !validOrderStatuses[orderStatus] {
		return nil, 0, fmt.Errorf("%w: invalid order status %q", ErrInvalidInput, orderStatus)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	order := models.Order{
		UserID:        userID,
		PaymentStatus: paymentStatus,
		OrderStatus:   orderStatus,
		OrderItems:    []models.OrderItem{},
	}
	err = tx.QueryRow(
		`INSERT INTO orders (user_id, payment_status, order_status)
		 VALUES ($1, $2, $3) RETURNING id, created_at`,
		userID, paymentStatus, orderStatus,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to insert order: %w", err)
	}

	var cartID int
	err = tx.QueryRow(`SELECT id FROM carts WHERE user_id = $1`, userID).Scan(&cartID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, 0, fmt.Errorf("%w: user has no cart", ErrNotFound)
		}
		return nil, 0, fmt.Errorf("failed to get cart: %w", err)
	}

	rows, err := tx.Query(
		`SELECT ci.product_id, p.name, p.price, ci.quantity
		 FROM cart_items ci
		 JOIN products p ON p.id = ci.product_id
		 WHERE ci.cart_id = $1
		 ORDER BY ci.id`,
		cartID,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query cart items: %w", err)
	}

	for rows.Next() {
		var item models.OrderItem
		err := rows.Scan(&item.Product.ID, &item.Product.Name, &item.Product.Price, &item.Quantity)
		if err != nil {
			rows.Close()
			return nil, 0, fmt.Errorf("failed to scan cart item: %w", err)
		}
		order.OrderItems = append(order.OrderItems, item)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, 0, fmt.Errorf("failed to iterate cart items: %w", err)
	}
	rows.Close()

	for i := range order.OrderItems {
		item := &order.OrderItems[i]
		err = tx.QueryRow(
			`INSERT INTO order_items (order_id, product_id, product_name, price, quantity)
			 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			order.ID, item.Product.ID, item.Product.Name, item.Product.Price, item.Quantity,
		).Scan(&item.ID)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &order, cartID, nil
}

// GetAll returns orders; userID narrows to one user's orders, nil returns
// everything (staff view)
func (r *OrderRepository) GetAll(userID *int) ([]models.Order, error) {
	query := `
		SELECT o.id, o.created_at, u.email, o.payment_status, o.order_status, o.user_id
		FROM orders o
		JOIN users u ON u.id = o.user_id
	`
	var (
		rows *sql.Rows
		err  error
	)
	if userID != nil {
		rows, err = r.db.Query(query+` WHERE o.user_id = $1 ORDER BY o.id DESC`, *userID)
	} else {
		rows, err = r.db.Query(query + ` ORDER BY o.id DESC`)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		err := rows.Scan(&o.ID, &o.CreatedAt, &o.User, &o.PaymentStatus, &o.OrderStatus, &o.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}

	return orders, rows.Err()
}

// GetByID returns a single order with its items
func (r *OrderRepository) GetByID(id int) (*models.Order, error) {
	query := `
		SELECT o.id, o.created_at, u.email, o.payment_status, o.order_status, o.user_id
		FROM orders o
		JOIN users u ON u.id = o.user_id
		WHERE o.id = $1
	`

	var order models.Order
	err := r.db.QueryRow(query, id).
		Scan(&order.ID, &order.CreatedAt, &order.User, &order.PaymentStatus,
			&order.OrderStatus, &order.UserID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	items, err := r.GetItems(id)
	if err != nil {
		return nil, err
	}
	order.OrderItems = items

	return &order, nil
}

// GetItems returns the snapshotted items of an order
func (r *OrderRepository) GetItems(orderID int) ([]models.OrderItem, error) {
	query := `
		SELECT id, product_id, product_name, price, quantity
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var item models.OrderItem
		err := rows.Scan(&item.ID, &item.Product.ID, &item.Product.Name,
			&item.Product.Price, &item.Quantity)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// UpdatePaymentStatus updates only the payment status (staff operation)
func (r *OrderRepository) UpdatePaymentStatus(id int, status string) error {
	if !validPaymentStatuses[status] {
		return fmt.Errorf("%w: invalid payment status %q", ErrInvalidInput, status)
	}

	result, err := r.db.Exec(`UPDATE orders SET payment_status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes an order and its items
func (r *OrderRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
