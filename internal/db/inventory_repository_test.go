package db

import (
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/vyavasthita/ecommerce/internal/models"
)

func TestReserve_ClampsToAvailable(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer conn.Close()

	inv := &InventoryRepository{db: conn}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT available_quantity FROM inventories WHERE product_id = $1 FOR UPDATE`)).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"available_quantity"}).AddRow(10))
	// granted is the full availability, not the requested 15
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE inventories SET available_quantity = available_quantity - $1 WHERE product_id = $2`)).
		WithArgs(10, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	tx, err := conn.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	granted, err := inv.Reserve(tx, 7, 15)
	if err != nil {
		t.Fatalf("Reserve failed: %v", err)
	}
	if granted != 10 {
		t.Fatalf("expected granted 10, got %d", granted)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReserve_NothingAvailable(t *testing.T) {
	conn, mock, _ := sqlmock.New()
	defer conn.Close()

	inv := &InventoryRepository{db: conn}

	mock.ExpectBegin()
	// zero availability: no UPDATE should be issued at all
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT available_quantity FROM inventories WHERE product_id = $1 FOR UPDATE`)).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"available_quantity"}).AddRow(0))

	tx, _ := conn.Begin()

	granted, err := inv.Reserve(tx, 7, 3)
	if err != nil {
		t.Fatalf("Reserve failed: %v", err)
	}
	if granted != 0 {
		t.Fatalf("expected granted 0, got %d", granted)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReserve_MissingInventory(t *testing.T) {
	conn, mock, _ := sqlmock.New()
	defer conn.Close()

	inv := &InventoryRepository{db: conn}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT available_quantity FROM inventories WHERE product_id = $1 FOR UPDATE`)).
		WithArgs(99).
		WillReturnError(sql.ErrNoRows)

	tx, _ := conn.Begin()

	if _, err := inv.Reserve(tx, 99, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRelease_ClampsAtTotal(t *testing.T) {
	conn, mock, _ := sqlmock.New()
	defer conn.Close()

	inv := &InventoryRepository{db: conn}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE inventories SET available_quantity = LEAST(available_quantity + $1, total_quantity) WHERE product_id = $2`)).
		WithArgs(4, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	tx, _ := conn.Begin()

	if err := inv.Release(tx, 7, 4); err != nil {
		t.Fatalf("Release failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRelease_MissingInventory(t *testing.T) {
	conn, mock, _ := sqlmock.New()
	defer conn.Close()

	inv := &InventoryRepository{db: conn}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE inventories SET available_quantity = LEAST(available_quantity + $1, total_quantity) WHERE product_id = $2`)).
		WithArgs(4, 99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	tx, _ := conn.Begin()

	if err := inv.Release(tx, 99, 4); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInventoryUpdate_RejectsAvailableAboveTotal(t *testing.T) {
	conn, mock, _ := sqlmock.New()
	defer conn.Close()

	inv := &InventoryRepository{db: conn}

	// invalid input, no DB calls expected
	err := inv.Update(1, models.UpdateInventoryRequest{TotalQuantity: 5, AvailableQuantity: 9})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
