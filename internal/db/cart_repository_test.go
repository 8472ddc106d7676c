package db

import (
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newCartRepo(t *testing.T) (*CartRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	repo := &CartRepository{db: conn, inv: &InventoryRepository{db: conn}}
	return repo, mock, func() { conn.Close() }
}

func TestCreateCart_Success(t *testing.T) {
	repo, mock, closeFn := newCartRepo(t)
	defer closeFn()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM carts WHERE user_id = $1)`)).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO carts (user_id) VALUES ($1) RETURNING id, created_at`)).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(12, time.Now()))

	cart, err := repo.CreateCart(3)
	if err != nil {
		t.Fatalf("CreateCart failed: %v", err)
	}
	if cart.ID != 12 || len(cart.CartItems) != 0 {
		t.Fatalf("unexpected cart: %+v", cart)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateCart_Duplicate(t *testing.T) {
	repo, mock, closeFn := newCartRepo(t)
	defer closeFn()

	// existing cart: no INSERT may run, the cart stays untouched
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM carts WHERE user_id = $1)`)).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	if _, err := repo.CreateCart(3); !errors.Is(err, ErrDuplicateCart) {
		t.Fatalf("expected ErrDuplicateCart, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAddItem_ClampsToAvailability(t *testing.T) {
	repo, mock, closeFn := newCartRepo(t)
	defer closeFn()

	// Inventory(available=10), request 15 -> item quantity 10, availability 0
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT available_quantity FROM inventories WHERE product_id = $1 FOR UPDATE`)).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"available_quantity"}).AddRow(10))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE inventories SET available_quantity = available_quantity - $1 WHERE product_id = $2`)).
		WithArgs(10, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO cart_items (cart_id, product_id, quantity) VALUES ($1, $2, $3) ON CONFLICT (cart_id, product_id) DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity RETURNING id, quantity`)).
		WithArgs(1, 7, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "quantity"}).AddRow(21, 10))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, price FROM products WHERE id = $1`)).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price"}).AddRow(7, "Keyboard", 40))
	mock.ExpectCommit()

	item, err := repo.AddItem(1, 7, 15)
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if item.Quantity != 10 {
		t.Fatalf("expected clamped quantity 10, got %d", item.Quantity)
	}
	if item.ItemPrice != 400 {
		t.Fatalf("expected item price 400, got %d", item.ItemPrice)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAddItem_SameProductGrowsExistingRow(t *testing.T) {
	repo, mock, closeFn := newCartRepo(t)
	defer closeFn()

	// second add of product 7: the upsert lands on the existing row and the
	// stored quantity is the sum of grants, never a second row
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT available_quantity FROM inventories WHERE product_id = $1 FOR UPDATE`)).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"available_quantity"}).AddRow(5))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE inventories SET available_quantity = available_quantity - $1 WHERE product_id = $2`)).
		WithArgs(3, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO cart_items (cart_id, product_id, quantity) VALUES ($1, $2, $3) ON CONFLICT (cart_id, product_id) DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity RETURNING id, quantity`)).
		WithArgs(1, 7, 3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "quantity"}).AddRow(21, 13))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, price FROM products WHERE id = $1`)).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price"}).AddRow(7, "Keyboard", 40))
	mock.ExpectCommit()

	item, err := repo.AddItem(1, 7, 3)
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if item.ID != 21 || item.Quantity != 13 {
		t.Fatalf("unexpected item: %+v", item)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAddItem_NoInventoryRollsBack(t *testing.T) {
	repo, mock, closeFn := newCartRepo(t)
	defer closeFn()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT available_quantity FROM inventories WHERE product_id = $1 FOR UPDATE`)).
		WithArgs(99).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	if _, err := repo.AddItem(1, 99, 2); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateItem_AddsClampedDelta(t *testing.T) {
	repo, mock, closeFn := newCartRepo(t)
	defer closeFn()

	// item holds 10, availability is 5; update with quantity 5 reserves the
	// remaining 5 and the item grows to 15 (additive, not an absolute set)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT product_id FROM cart_items WHERE id = $1 AND cart_id = $2 FOR UPDATE`)).
		WithArgs(21, 1).
		WillReturnRows(sqlmock.NewRows([]string{"product_id"}).AddRow(7))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT available_quantity FROM inventories WHERE product_id = $1 FOR UPDATE`)).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"available_quantity"}).AddRow(5))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE inventories SET available_quantity = available_quantity - $1 WHERE product_id = $2`)).
		WithArgs(5, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE cart_items SET quantity = quantity + $1 WHERE id = $2 RETURNING quantity`)).
		WithArgs(5, 21).
		WillReturnRows(sqlmock.NewRows([]string{"quantity"}).AddRow(15))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, price FROM products WHERE id = $1`)).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price"}).AddRow(7, "Keyboard", 40))
	mock.ExpectCommit()

	item, err := repo.UpdateItem(1, 21, 5)
	if err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}
	if item.Quantity != 15 {
		t.Fatalf("expected additive quantity 15, got %d", item.Quantity)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRemoveItem_ReleasesFullQuantity(t *testing.T) {
	repo, mock, closeFn := newCartRepo(t)
	defer closeFn()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT product_id, quantity FROM cart_items WHERE id = $1 AND cart_id = $2 FOR UPDATE`)).
		WithArgs(21, 1).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "quantity"}).AddRow(7, 4))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE inventories SET available_quantity = LEAST(available_quantity + $1, total_quantity) WHERE product_id = $2`)).
		WithArgs(4, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM cart_items WHERE id = $1`)).
		WithArgs(21).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.RemoveItem(1, 21); err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteCart_KeepsReservations(t *testing.T) {
	repo, mock, closeFn := newCartRepo(t)
	defer closeFn()

	// no inventory statement may appear here: deleting a cart does not
	// hand reserved stock back
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM carts WHERE user_id = $1`)).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM carts WHERE id = $1`)).
		WithArgs(12).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteCart(3); err != nil {
		t.Fatalf("DeleteCart failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteCart_NoCart(t *testing.T) {
	repo, mock, closeFn := newCartRepo(t)
	defer closeFn()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM carts WHERE user_id = $1`)).
		WithArgs(3).
		WillReturnError(sql.ErrNoRows)

	if err := repo.DeleteCart(3); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
