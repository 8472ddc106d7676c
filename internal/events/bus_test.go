package events

import (
	"errors"
	"testing"
)

func TestPublish_DeliversToSubscribersInOrder(t *testing.T) {
	bus := NewBus()

	var got []string
	bus.Subscribe("topic", func(event interface{}) error {
		got = append(got, "first:"+event.(string))
		return nil
	})
	bus.Subscribe("topic", func(event interface{}) error {
		got = append(got, "second:"+event.(string))
		return nil
	})

	bus.Publish("topic", "payload")

	if len(got) != 2 || got[0] != "first:payload" || got[1] != "second:payload" {
		t.Fatalf("unexpected deliveries: %v", got)
	}
}

func TestPublish_SwallowsHandlerErrors(t *testing.T) {
	bus := NewBus()

	var delivered int
	bus.Subscribe("topic", func(event interface{}) error {
		return errors.New("subscriber broke")
	})
	bus.Subscribe("topic", func(event interface{}) error {
		delivered++
		return nil
	})

	// a failing subscriber never stops the later ones
	bus.Publish("topic", nil)

	if delivered != 1 {
		t.Fatalf("expected later handler to run, delivered=%d", delivered)
	}
}

func TestPublish_NoSubscribers(t *testing.T) {
	bus := NewBus()

	// must be a no-op, not a panic
	bus.Publish("nobody-listens", 42)
}

func TestPublish_TopicIsolation(t *testing.T) {
	bus := NewBus()

	var calls int
	bus.Subscribe("a", func(event interface{}) error {
		calls++
		return nil
	})

	bus.Publish("b", nil)

	if calls != 0 {
		t.Fatalf("handler for topic a received topic b event")
	}
}
