package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vyavasthita/ecommerce/internal/auth"
	"github.com/vyavasthita/ecommerce/internal/db"
	"github.com/vyavasthita/ecommerce/internal/events"
	"github.com/vyavasthita/ecommerce/internal/models"
)

type OrderHandler struct {
	orders *db.OrderRepository
	bus    *events.Bus
}

func NewOrderHandler(orders *db.OrderRepository, bus *events.Bus) *OrderHandler {
	return &OrderHandler{orders: orders, bus: bus}
}

// List returns the caller's orders; staff see all orders
func (h *OrderHandler) List(c *gin.Context) {
	claims := auth.ClaimsFrom(c)

	var userID *int
	if claims.Role != auth.RoleStaff {
		userID = &claims.UserID
	}

	orders, err := h.orders.GetAll(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

// orderForRequest loads the order named by the :id path parameter and
// hides other users' orders from non-staff callers.
func (h *OrderHandler) orderForRequest(c *gin.Context) (*models.Order, bool) {
	id, ok := pathID(c, "id")
	if !ok {
		return nil, false
	}

	order, err := h.orders.GetByID(id)
	if err != nil {
		respondError(c, err)
		return nil, false
	}

	claims := auth.ClaimsFrom(c)
	if claims.Role != auth.RoleStaff && order.UserID != claims.UserID {
		c.JSON(http.StatusNotFound, gin.H{"error": db.ErrNotFound.Error()})
		return nil, false
	}

	return order, true
}

// Get returns a single order with its snapshotted items
func (h *OrderHandler) Get(c *gin.Context) {
	order, ok := h.orderForRequest(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, order)
}

// Create snapshots the caller's cart into an order, then signals cart
// disposal. The disposal runs outside the order transaction: a subscriber
// failure leaves the cart behind but never the order.
func (h *OrderHandler) Create(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	claims := auth.ClaimsFrom(c)

	order, cartID, err := h.orders.Create(claims.UserID, req.PaymentStatus, req.OrderStatus)
	if err != nil {
		respondError(c, err)
		return
	}
	order.User = claims.Email

	h.bus.Publish(events.CartDisposal, models.CartDisposalEvent{CartID: cartID})
	log.Printf("✅ Order #%d created from cart %d", order.ID, cartID)

	c.JSON(http.StatusCreated, order)
}

// UpdatePayment updates only the payment status (staff)
func (h *OrderHandler) UpdatePayment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.orders.UpdatePaymentStatus(id, req.PaymentStatus); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "payment status updated"})
}

// Delete removes an order (staff)
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.orders.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "order deleted"})
}

// ListItems returns the snapshotted items of an order
func (h *OrderHandler) ListItems(c *gin.Context) {
	order, ok := h.orderForRequest(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, order.OrderItems)
}

// GetItem returns one snapshotted order item
func (h *OrderHandler) GetItem(c *gin.Context) {
	order, ok := h.orderForRequest(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "item_id")
	if !ok {
		return
	}

	for _, item := range order.OrderItems {
		if item.ID == itemID {
			c.JSON(http.StatusOK, item)
			return
		}
	}

	c.JSON(http.StatusNotFound, gin.H{"error": db.ErrNotFound.Error()})
}
