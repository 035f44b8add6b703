package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"softwaresur_backend/internal/events"
	"softwaresur_backend/platform/logger"
)

// Change is a dashboard feed entry describing a quote request mutation.
type Change struct {
	Type       string    `json:"type"`
	QuoteID    uuid.UUID `json:"quoteId"`
	TrackingID string    `json:"trackingId,omitempty"`
	Status     string    `json:"status,omitempty"`
	At         time.Time `json:"at"`
}

const (
	ChangeSubmitted = "submitted"
	ChangeUpdated   = "updated"
	ChangeDeleted   = "deleted"
)

const subscriberBuffer = 16

// Feed fans quote request changes out to dashboard subscribers. Slow
// subscribers drop changes rather than stall the publisher; the
// dashboard reloads its listing on reconnect anyway.
type Feed struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan Change
	log    *logger.Logger
}

func NewFeed(log *logger.Logger) *Feed {
	return &Feed{
		subs: make(map[int]chan Change),
		log:  log,
	}
}

// Subscribe registers a feed listener. The returned cancel func is safe
// to call more than once.
func (f *Feed) Subscribe() (<-chan Change, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.nextID
	f.nextID++
	ch := make(chan Change, subscriberBuffer)
	f.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			delete(f.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers a change to every subscriber without blocking.
func (f *Feed) Publish(change Change) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for id, ch := range f.subs {
		select {
		case ch <- change:
		default:
			f.log.Warn("dashboard subscriber lagging, dropping change", "subscriber", id)
		}
	}
}

// SubscriberCount reports the number of live subscribers.
func (f *Feed) SubscriberCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

// RegisterHandlers subscribes the feed to the domain event bus.
func (f *Feed) RegisterHandlers(bus events.Bus) {
	bus.Subscribe("quotes.request.submitted", events.HandlerFunc(func(ctx context.Context, e events.Event) error {
		if ev, ok := e.(events.QuoteRequestSubmitted); ok {
			f.Publish(Change{
				Type:       ChangeSubmitted,
				QuoteID:    ev.QuoteID,
				TrackingID: ev.TrackingID,
				Status:     "pendiente",
				At:         ev.OccurredAt(),
			})
		}
		return nil
	}))

	bus.Subscribe("quotes.request.updated", events.HandlerFunc(func(ctx context.Context, e events.Event) error {
		if ev, ok := e.(events.QuoteRequestUpdated); ok {
			f.Publish(Change{
				Type:       ChangeUpdated,
				QuoteID:    ev.QuoteID,
				TrackingID: ev.TrackingID,
				Status:     ev.Status,
				At:         ev.OccurredAt(),
			})
		}
		return nil
	}))

	bus.Subscribe("quotes.request.deleted", events.HandlerFunc(func(ctx context.Context, e events.Event) error {
		if ev, ok := e.(events.QuoteRequestDeleted); ok {
			f.Publish(Change{
				Type:    ChangeDeleted,
				QuoteID: ev.QuoteID,
				At:      ev.OccurredAt(),
			})
		}
		return nil
	}))
}
