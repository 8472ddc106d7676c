package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vyavasthita/ecommerce/internal/db"
)

// respondError maps repository errors onto the API error taxonomy:
// NotFound → 404, duplicate cart → 422, other duplicates and bad input →
// 400, anything else → 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, db.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, db.ErrDuplicateCart):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Duplicate cart can not be created."})
	case errors.Is(err, db.ErrDuplicate), errors.Is(err, db.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}
