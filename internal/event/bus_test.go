package event

import (
	"testing"
	"time"
)

func TestInMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewInMemoryBus()
	got := make(chan Event, 1)

	bus.Subscribe(EventResolveCompleted, func(e Event) {
		got <- e
	})
	bus.Publish(EventResolveCompleted, "payload")

	select {
	case e := <-got:
		if e.Type != EventResolveCompleted || e.Payload != "payload" {
			t.Fatalf("received %+v", e)
		}
	case <-time.After(time.Second):
		t.Fatal("handler never invoked")
	}
}

func TestInMemoryBus_TopicIsolation(t *testing.T) {
	bus := NewInMemoryBus()
	got := make(chan Event, 1)

	bus.Subscribe(EventResolveFailed, func(e Event) {
		got <- e
	})
	bus.Publish(EventResolveCompleted, "wrong topic")

	select {
	case e := <-got:
		t.Fatalf("handler received event from another topic: %+v", e)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestInMemoryBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryBus()
	got := make(chan Event, 1)

	id := bus.Subscribe(EventCookieUpdated, func(e Event) {
		got <- e
	})
	bus.Unsubscribe(EventCookieUpdated, id)
	bus.Publish(EventCookieUpdated, "bilibili")

	select {
	case e := <-got:
		t.Fatalf("handler invoked after unsubscribe: %+v", e)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestInMemoryBus_MultipleSubscribers(t *testing.T) {
	bus := NewInMemoryBus()
	got := make(chan Event, 2)

	bus.Subscribe(EventResolveCompleted, func(e Event) { got <- e })
	bus.Subscribe(EventResolveCompleted, func(e Event) { got <- e })
	bus.Publish(EventResolveCompleted, nil)

	for i := 0; i < 2; i++ {
		select {
		case <-got:
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d never invoked", i)
		}
	}
}
