package dashboard

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"softwaresur_backend/platform/logger"
)

func TestFeed_SubscriberReceivesChanges(t *testing.T) {
	feed := NewFeed(logger.New("test"))
	ch, cancel := feed.Subscribe()
	defer cancel()

	change := Change{Type: ChangeSubmitted, QuoteID: uuid.New(), TrackingID: "SS-000001", At: time.Now()}
	feed.Publish(change)

	select {
	case got := <-ch:
		if got.TrackingID != change.TrackingID || got.Type != ChangeSubmitted {
			t.Fatalf("received %+v, want %+v", got, change)
		}
	case <-time.After(time.Second):
		t.Fatalf("subscriber did not receive the change")
	}
}

func TestFeed_CancelStopsDelivery(t *testing.T) {
	feed := NewFeed(logger.New("test"))
	ch, cancel := feed.Subscribe()

	cancel()
	if feed.SubscriberCount() != 0 {
		t.Fatalf("cancel must remove the subscriber")
	}

	// Channel is closed after cancel.
	if _, ok := <-ch; ok {
		t.Fatalf("channel must be closed after cancel")
	}

	// Publishing after cancel must not panic.
	feed.Publish(Change{Type: ChangeDeleted, QuoteID: uuid.New(), At: time.Now()})
}

func TestFeed_CancelIsIdempotent(t *testing.T) {
	feed := NewFeed(logger.New("test"))
	_, cancel := feed.Subscribe()

	cancel()
	cancel()
}

func TestFeed_SlowSubscriberDoesNotBlockPublish(t *testing.T) {
	feed := NewFeed(logger.New("test"))
	_, cancel := feed.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		// Publish far more than the buffer holds without draining.
		for i := 0; i < subscriberBuffer*3; i++ {
			feed.Publish(Change{Type: ChangeUpdated, QuoteID: uuid.New(), At: time.Now()})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Publish blocked on a slow subscriber")
	}
}

func TestFeed_IndependentSubscribers(t *testing.T) {
	feed := NewFeed(logger.New("test"))
	first, cancelFirst := feed.Subscribe()
	second, cancelSecond := feed.Subscribe()
	defer cancelSecond()

	cancelFirst()
	feed.Publish(Change{Type: ChangeSubmitted, QuoteID: uuid.New(), TrackingID: "SS-000009", At: time.Now()})

	select {
	case got := <-second:
		if got.TrackingID != "SS-000009" {
			t.Fatalf("second subscriber received %+v", got)
		}
	case <-time.After(time.Second):
		t.Fatalf("remaining subscriber must keep receiving changes")
	}

	if _, ok := <-first; ok {
		t.Fatalf("cancelled subscriber channel must be closed")
	}
}
