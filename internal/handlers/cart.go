package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vyavasthita/ecommerce/internal/auth"
	"github.com/vyavasthita/ecommerce/internal/db"
	"github.com/vyavasthita/ecommerce/internal/models"
)

type CartHandler struct {
	carts *db.CartRepository
}

func NewCartHandler(carts *db.CartRepository) *CartHandler {
	return &CartHandler{carts: carts}
}

// List returns the caller's cart; staff see every cart
func (h *CartHandler) List(c *gin.Context) {
	claims := auth.ClaimsFrom(c)

	var userID *int
	if claims.Role != auth.RoleStaff {
		userID = &claims.UserID
	}

	carts, err := h.carts.GetCarts(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, carts)
}

// Create opens a cart for the caller; at most one per user
func (h *CartHandler) Create(c *gin.Context) {
	claims := auth.ClaimsFrom(c)

	cart, err := h.carts.CreateCart(claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	cart.User = &claims.Email

	c.JSON(http.StatusCreated, cart)
}

// Delete drops the caller's cart. Reserved stock is not released; see
// CartRepository.DeleteCart.
func (h *CartHandler) Delete(c *gin.Context) {
	claims := auth.ClaimsFrom(c)

	if err := h.carts.DeleteCart(claims.UserID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "cart deleted"})
}

// cartForRequest resolves the :cart_id parameter and enforces ownership:
// non-staff callers may only touch their own cart.
func (h *CartHandler) cartForRequest(c *gin.Context) (int, bool) {
	cartID, ok := pathID(c, "cart_id")
	if !ok {
		return 0, false
	}

	ownerID, err := h.carts.GetCartOwner(cartID)
	if err != nil {
		respondError(c, err)
		return 0, false
	}

	claims := auth.ClaimsFrom(c)
	if claims.Role != auth.RoleStaff {
		if ownerID == nil || *ownerID != claims.UserID {
			c.JSON(http.StatusForbidden, gin.H{"error": "not your cart"})
			return 0, false
		}
	}

	return cartID, true
}

// ListItems returns the cart's items with per-item and total prices
func (h *CartHandler) ListItems(c *gin.Context) {
	cartID, ok := h.cartForRequest(c)
	if !ok {
		return
	}

	items, total, err := h.carts.GetItems(cartID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cartitems": items, "total_cart_value": total})
}

// AddItem reserves stock and puts the granted quantity in the cart
func (h *CartHandler) AddItem(c *gin.Context) {
	cartID, ok := h.cartForRequest(c)
	if !ok {
		return
	}

	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.carts.AddItem(cartID, req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// UpdateItem reserves the clamped quantity and adds it to the item
func (h *CartHandler) UpdateItem(c *gin.Context) {
	cartID, ok := h.cartForRequest(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.carts.UpdateItem(cartID, itemID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// RemoveItem releases the item's stock and deletes it
func (h *CartHandler) RemoveItem(c *gin.Context) {
	cartID, ok := h.cartForRequest(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.carts.RemoveItem(cartID, itemID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "cart item removed"})
}
