package models

import (
	"context"
	"encoding/json"
	"time"
)

// Event is the unit published on the EventBus after a todo mutation.
type Event struct {
	ID        string            `json:"id"`
	Type      string            `json:"type"`
	Timestamp time.Time         `json:"timestamp"`
	Payload   json.RawMessage   `json:"payload"`
	Metadata  map[string]string `json:"metadata"`
}

// Message is a raw pub/sub frame carried by the underlying transport.
type Message struct {
	UUID     string
	Payload  []byte
	Metadata map[string]string
}

type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// EventHandler processes events delivered by a subscription.
type EventHandler func(ctx context.Context, event Event) error

// SubscriptionID identifies a specific event handler subscription for removal.
type SubscriptionID uint64

type EventSubscriber interface {
	Subscribe(eventType string, handler EventHandler) (SubscriptionID, error)
	Unsubscribe(eventType string, id SubscriptionID)
	Close() error
}

// PubSub abstracts the transport under the EventBus so the domain stays
// independent of Watermill.
type PubSub interface {
	Publish(ctx context.Context, topic string, msg *Message) error

	// Subscribe returns a channel that receives messages from the topic.
	// The channel is closed when the subscription is cancelled.
	Subscribe(ctx context.Context, topic string) (<-chan *Message, error)

	Close() error
}

// EventBus combines publisher and subscriber functionality.
type EventBus interface {
	EventPublisher
	EventSubscriber
}
