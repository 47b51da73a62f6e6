package hub

import (
	"encoding/json"
	"testing"
)

func TestNotifyDeliversToAllStreams(t *testing.T) {
	h := NewHub()
	first := make(Client, 1)
	second := make(Client, 1)
	h.Subscribe(1, first)
	h.Subscribe(1, second)

	h.Notify(1, Event{Type: "notification", Payload: map[string]string{"message": "hi"}})

	for _, client := range []Client{first, second} {
		select {
		case raw := <-client:
			var event Event
			if err := json.Unmarshal(raw, &event); err != nil {
				t.Fatalf("delivered payload is not JSON: %v", err)
			}
			if event.Type != "notification" {
				t.Errorf("event type = %q, want notification", event.Type)
			}
		default:
			t.Fatal("stream received nothing")
		}
	}
}

func TestNotifyOtherUserReceivesNothing(t *testing.T) {
	h := NewHub()
	client := make(Client, 1)
	h.Subscribe(1, client)

	h.Notify(2, Event{Type: "notification"})

	select {
	case <-client:
		t.Fatal("user 1 received user 2's event")
	default:
	}
}

func TestUnsubscribeClosesStream(t *testing.T) {
	h := NewHub()
	client := make(Client, 1)
	h.Subscribe(1, client)
	h.Unsubscribe(1, client)

	if _, open := <-client; open {
		t.Fatal("channel still open after unsubscribe")
	}

	// Notifying after the last stream is gone must not panic.
	h.Notify(1, Event{Type: "notification"})
}

func TestNotifySkipsFullStream(t *testing.T) {
	h := NewHub()
	client := make(Client, 1)
	h.Subscribe(1, client)

	h.Notify(1, Event{Type: "notification"})
	h.Notify(1, Event{Type: "notification"}) // buffer full, must not block

	if len(client) != 1 {
		t.Errorf("buffered %d events, want 1", len(client))
	}
}
