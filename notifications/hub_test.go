package notifications

import (
	"testing"
	"time"
)

func TestHubRegisterDeliverUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send:   make(chan []byte, 10),
		UserID: "u1",
	}

	hub.register <- client

	payload := []byte(`{"id":"n1","user_id":"u1","notification_type":"day_of_morning"}`)
	hub.Deliver("u1", payload)

	select {
	case got := <-client.Send:
		if string(got) != string(payload) {
			t.Fatalf("expected %s, got %s", payload, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for delivery")
	}

	// deliveries for other users must not reach this client
	hub.Deliver("someone-else", []byte(`{}`))
	select {
	case got := <-client.Send:
		t.Fatalf("unexpected delivery: %s", got)
	case <-time.After(100 * time.Millisecond):
	}

	hub.unregister <- client
}

// A client whose Send buffer overflows is dropped during delivery and its
// channel closed; unregistering it afterwards must be a no-op, not a second
// close.
func TestHubSlowClientUnregisterAfterDrop(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send:   make(chan []byte, 1),
		UserID: "u1",
	}
	hub.register <- client

	// first delivery fills the buffer, second overflows and drops the client
	hub.Deliver("u1", []byte(`{"id":"n1"}`))
	hub.Deliver("u1", []byte(`{"id":"n2"}`))

	deadline := time.After(1 * time.Second)
	for {
		select {
		case _, ok := <-client.Send:
			if !ok {
				// channel closed by the hub; readPump would now unregister
				hub.unregister <- client

				// hub must still be alive and serving other clients
				other := &Client{Send: make(chan []byte, 10), UserID: "u2"}
				hub.register <- other
				hub.Deliver("u2", []byte(`{"id":"n3"}`))
				select {
				case <-other.Send:
				case <-time.After(1 * time.Second):
					t.Fatal("hub stopped delivering after dropped client was unregistered")
				}
				return
			}
		case <-deadline:
			t.Fatal("timeout waiting for slow client to be dropped")
		}
	}
}
