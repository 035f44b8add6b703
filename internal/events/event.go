// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"softwaresur_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
	InMemoryBus = events.InMemoryBus
)

// Re-export platform functions
var (
	NewBaseEvent   = events.NewBaseEvent
	NewInMemoryBus = events.NewInMemoryBus
)

// =============================================================================
// Quote Request Domain Events
// =============================================================================

// QuoteRequestSubmitted is published when a visitor submits a new quote request
// through the public contact form. The notification module and the admin
// dashboard feed both subscribe to it.
type QuoteRequestSubmitted struct {
	BaseEvent
	QuoteID         uuid.UUID `json:"quoteId"`
	TrackingID      string    `json:"trackingId"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	ServiceInterest string    `json:"serviceInterest,omitempty"`
	Message         string    `json:"message"`
}

func (e QuoteRequestSubmitted) EventName() string { return "quotes.request.submitted" }

// QuoteRequestUpdated is published when an administrator mutates a quote
// request (status change, response, notes).
type QuoteRequestUpdated struct {
	BaseEvent
	QuoteID    uuid.UUID `json:"quoteId"`
	TrackingID string    `json:"trackingId"`
	Status     string    `json:"status"`
	ActorID    uuid.UUID `json:"actorId"`
}

func (e QuoteRequestUpdated) EventName() string { return "quotes.request.updated" }

// QuoteRequestDeleted is published when an administrator deletes a quote request.
type QuoteRequestDeleted struct {
	BaseEvent
	QuoteID uuid.UUID `json:"quoteId"`
	ActorID uuid.UUID `json:"actorId"`
}

func (e QuoteRequestDeleted) EventName() string { return "quotes.request.deleted" }
