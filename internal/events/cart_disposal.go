package events

import (
	"fmt"
	"log"

	"github.com/vyavasthita/ecommerce/internal/db"
	"github.com/vyavasthita/ecommerce/internal/models"
)

// CartDisposer deletes a cart once its order has been placed. It runs
// outside the order transaction, so there is a short window where the order
// exists while the source cart is still around; a disposal failure leaves
// the cart behind without affecting the order.
type CartDisposer struct {
	carts *db.CartRepository
}

func NewCartDisposer(carts *db.CartRepository) *CartDisposer {
	return &CartDisposer{carts: carts}
}

// HandleCartDisposal consumes cart.disposal events
func (d *CartDisposer) HandleCartDisposal(event interface{}) error {
	ev, ok := event.(models.CartDisposalEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload %T", event)
	}

	if err := d.carts.DeleteCartByID(ev.CartID); err != nil {
		return fmt.Errorf("failed to dispose cart %d: %w", ev.CartID, err)
	}

	log.Printf("🗑️ Disposed cart %d after order creation", ev.CartID)
	return nil
}
