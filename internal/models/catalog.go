package models

type Collection struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Category codes: Elec=Electronics, Food=Food, Fa=Fashion, Gro=Grocery,
// Spo=Sports, Bo=Books, Ent=Entertainment.
var validCollectionNames = map[string]bool{
	"Elec": true,
	"Food": true,
	"Fa":   true,
	"Gro":  true,
	"Spo":  true,
	"Bo":   true,
	"Ent":  true,
}

func IsValidCollectionName(name string) bool {
	return validCollectionNames[name]
}

type CollectionRequest struct {
	Name string `json:"name" binding:"required"`
}

type Product struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	Price      int        `json:"price"`
	Collection Collection `json:"collection"`
}

// ProductSummary is the embedded product shape used by cart and order items.
type ProductSummary struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
}

type ProductRequest struct {
	CollectionID int    `json:"collection_id" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Price        int    `json:"price" binding:"required,min=1"`
}
