// Package outbox defines the event fanout ports. The checkout flow publishes
// through Publisher; infrastructure decides whether that means the in-memory
// bus or an AMQP exchange.
package outbox

import "context"

// Event is any domain event identified by name (e.g. "order.created").
type Event interface {
	EventName() string
}

// Handler processes one delivered event.
type Handler func(ctx context.Context, e Event) error

// Publisher delivers events to interested subscribers.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Subscriber registers a handler for an event name.
type Subscriber interface {
	Subscribe(eventName string, h Handler)
}
