package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vyavasthita/ecommerce/internal/db"
	"github.com/vyavasthita/ecommerce/internal/models"
)

type CollectionHandler struct {
	repo *db.CollectionRepository
}

func NewCollectionHandler(repo *db.CollectionRepository) *CollectionHandler {
	return &CollectionHandler{repo: repo}
}

// List returns all collections
func (h *CollectionHandler) List(c *gin.Context) {
	collections, err := h.repo.GetAll()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, collections)
}

// Get returns a single collection
func (h *CollectionHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	collection, err := h.repo.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, collection)
}

// Create adds a collection (staff)
func (h *CollectionHandler) Create(c *gin.Context) {
	var req models.CollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.IsValidCollectionName(req.Name) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid collection name"})
		return
	}

	collection, err := h.repo.Create(req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, collection)
}

// Update renames a collection (staff)
func (h *CollectionHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.CollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.IsValidCollectionName(req.Name) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid collection name"})
		return
	}

	if err := h.repo.Update(id, req.Name); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "collection updated"})
}

// Delete removes a collection and its products (staff)
func (h *CollectionHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.repo.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "collection deleted"})
}
