package models

import "time"

const (
	PaymentUnsuccessful = "unsucc"
	PaymentSuccessful   = "succ"

	OrderInProgress = "inp"
	OrderCompleted  = "comp"
	OrderCancelled  = "can"
)

type Order struct {
	ID            int         `json:"id"`
	CreatedAt     time.Time   `json:"created_at"`
	User          string      `json:"user"`
	PaymentStatus string      `json:"payment_status"`
	OrderStatus   string      `json:"order_status"`
	OrderItems    []OrderItem `json:"orderitems"`

	UserID int `json:"-"`
}

// OrderItem carries the product detail snapshotted at order creation, so
// order history stays readable after a product leaves the catalog.
type OrderItem struct {
	ID       int            `json:"id"`
	Product  ProductSummary `json:"product"`
	Quantity int            `json:"quantity"`
}

type CreateOrderRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
	OrderStatus   string `json:"order_status" binding:"required"`
}

type UpdateOrderRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}
