package models

import "time"

type Cart struct {
	ID             int        `json:"id"`
	CreatedAt      time.Time  `json:"created_at"`
	User           *string    `json:"user"`
	CartItems      []CartItem `json:"cartitems"`
	TotalCartValue int        `json:"total_cart_value"`

	UserID *int `json:"-"`
}

type CartItem struct {
	ID       int            `json:"id"`
	Product  ProductSummary `json:"product"`
	Quantity int            `json:"quantity"`
	// ItemPrice is quantity x unit price, computed at read time.
	ItemPrice int `json:"item_price"`
}

type AddCartItemRequest struct {
	ProductID int `json:"product_id" binding:"required"`
	Quantity  int `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}
