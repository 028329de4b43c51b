package notifications

import (
	"testing"
	"time"
)

// TestHubPublishSubscribe checks delivery and expiry stamping.
func TestHubPublishSubscribe(t *testing.T) {
	hub := NewHub(5 * time.Second)

	ch, unsubscribe := hub.Subscribe()
	defer unsubscribe()

	hub.Publish(Event{Type: "parser_unreachable", Message: "Failed to connect to server"})

	select {
	case event := <-ch:
		if event.Type != "parser_unreachable" {
			t.Fatalf("expected event type parser_unreachable, got %s", event.Type)
		}
		if event.Timestamp.IsZero() {
			t.Fatal("expected timestamp to be set")
		}
		if got := event.ExpiresAt.Sub(event.Timestamp); got != 5*time.Second {
			t.Fatalf("expected 5s expiry window, got %s", got)
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected event to be delivered")
	}
}

// TestHubUnsubscribe checks the channel closes after unsubscribing.
func TestHubUnsubscribe(t *testing.T) {
	hub := NewHub(time.Second)

	ch, unsubscribe := hub.Subscribe()
	unsubscribe()

	if _, ok := <-ch; ok {
		t.Fatal("expected channel to be closed")
	}
}

// TestHubSlowSubscriberDoesNotBlock checks the non-blocking fan-out.
func TestHubSlowSubscriberDoesNotBlock(t *testing.T) {
	hub := NewHub(time.Second)

	_, unsubscribe := hub.Subscribe()
	defer unsubscribe()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.Publish(Event{Type: "ledger_updated"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected publishing to a full subscriber to not block")
	}
}
