package events

import (
	"encoding/json"
	"testing"
)

func TestHubPublishSubscribe(t *testing.T) {
	h := NewHub()
	ch := h.Subscribe()

	h.Publish("one")
	if got := <-ch; got != "one" {
		t.Fatalf("got %q", got)
	}

	h.Unsubscribe(ch)
	// Publishing after unsubscribe must not panic.
	h.Publish("two")
}

func TestHubDropsWhenSlow(t *testing.T) {
	h := NewHub()
	ch := h.Subscribe()
	defer h.Unsubscribe(ch)

	// Overfill the subscriber buffer; extra events are dropped, publish
	// never blocks.
	for i := 0; i < 100; i++ {
		h.Publish("evt")
	}
	if len(ch) != cap(ch) {
		t.Fatalf("buffered = %d, want %d", len(ch), cap(ch))
	}
}

func TestMakeEvent(t *testing.T) {
	raw := MakeEvent("req-1", "search_completed", map[string]int{"count": 3})

	var e Event
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		t.Fatal(err)
	}
	if e.Type != "search_completed" || e.RequestID != "req-1" {
		t.Fatalf("event = %+v", e)
	}
	var data map[string]int
	if err := json.Unmarshal(e.Data, &data); err != nil || data["count"] != 3 {
		t.Fatalf("data = %s", e.Data)
	}
	if e.At.IsZero() {
		t.Fatal("timestamp missing")
	}
}
