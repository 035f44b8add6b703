package events

import (
	"context"
	"sync"

	"softwaresur_backend/platform/logger"
)

// InMemoryBus is an in-process implementation of Bus.
// Publish dispatches to each handler in its own goroutine; handler errors are
// logged and never reach the publisher, so a failing subscriber cannot break
// the operation that raised the event.
type InMemoryBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	log      *logger.Logger
}

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return &InMemoryBus{
		handlers: make(map[string][]Handler),
		log:      log,
	}
}

// Subscribe registers a handler for the given event name.
func (b *InMemoryBus) Subscribe(eventName string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventName] = append(b.handlers[eventName], handler)
}

// Publish dispatches the event to all registered handlers asynchronously.
// The passed context is not propagated to handlers: the publishing request
// may complete (and its context be cancelled) before handlers run.
func (b *InMemoryBus) Publish(_ context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.EventName()]))
	copy(handlers, b.handlers[event.EventName()])
	b.mu.RUnlock()

	for _, h := range handlers {
		go func(h Handler) {
			if err := h.Handle(context.Background(), event); err != nil {
				b.log.Error("event handler failed",
					"event", event.EventName(),
					"error", err,
				)
			}
		}(h)
	}
}

// PublishSync dispatches the event and waits for all handlers.
// The first handler error is returned.
func (b *InMemoryBus) PublishSync(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.EventName()]))
	copy(handlers, b.handlers[event.EventName()])
	b.mu.RUnlock()

	var firstErr error
	for _, h := range handlers {
		if err := h.Handle(ctx, event); err != nil {
			b.log.Error("event handler failed",
				"event", event.EventName(),
				"error", err,
			)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Compile-time check that InMemoryBus implements Bus.
var _ Bus = (*InMemoryBus)(nil)
