package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vyavasthita/ecommerce/internal/db"
	"github.com/vyavasthita/ecommerce/internal/models"
)

// InventoryHandler exposes the stock ledger. All routes are staff-only via
// the access policy.
type InventoryHandler struct {
	repo *db.InventoryRepository
}

func NewInventoryHandler(repo *db.InventoryRepository) *InventoryHandler {
	return &InventoryHandler{repo: repo}
}

// List returns all inventory rows
func (h *InventoryHandler) List(c *gin.Context) {
	inventories, err := h.repo.GetAll()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, inventories)
}

// Get returns a single inventory row
func (h *InventoryHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	inventory, err := h.repo.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, inventory)
}

// Create opens the ledger for a product
func (h *InventoryHandler) Create(c *gin.Context) {
	var req models.CreateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inventory, err := h.repo.Create(req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, inventory)
}

// Update sets total and available quantities
func (h *InventoryHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.repo.Update(id, req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "inventory updated"})
}

// Delete removes an inventory row
func (h *InventoryHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.repo.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "inventory deleted"})
}
