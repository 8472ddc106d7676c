package models

type Inventory struct {
	ID                int              `json:"id"`
	Product           InventoryProduct `json:"product"`
	TotalQuantity     int              `json:"total_quantity"`
	AvailableQuantity int              `json:"available_quantity"`
}

type InventoryProduct struct {
	Name       string              `json:"name"`
	Collection InventoryCollection `json:"collection"`
}

type InventoryCollection struct {
	Name string `json:"name"`
}

type CreateInventoryRequest struct {
	ProductID     int `json:"product_id" binding:"required"`
	TotalQuantity int `json:"total_quantity" binding:"required,min=1"`
}

type UpdateInventoryRequest struct {
	TotalQuantity     int `json:"total_quantity" binding:"required,min=1"`
	AvailableQuantity int `json:"available_quantity" binding:"min=0"`
}
