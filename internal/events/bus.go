package events

import (
	"log"
	"sync"
)

// Topic names
const CartDisposal = "cart.disposal"

type Handler func(event interface{}) error

// Bus is a small in-process event queue. Publish dispatches to subscribers
// synchronously on the caller's goroutine, right after the caller's
// transaction has committed. Handler failures are logged and swallowed:
// delivery is fire-and-forget, the publishing request must not fail because
// a subscriber did.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]Handler)}
}

// Subscribe registers a handler for a topic
func (b *Bus) Subscribe(topic string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = append(b.handlers[topic], h)
}

// Publish delivers the event to every subscriber of the topic
func (b *Bus) Publish(topic string, event interface{}) {
	b.mu.RLock()
	handlers := b.handlers[topic]
	b.mu.RUnlock()

	for _, h := range handlers {
		if err := h(event); err != nil {
			log.Printf("⚠️ Event handler failed for %s: %v", topic, err)
		}
	}
}
