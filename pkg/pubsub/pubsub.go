package pubsub

import (
	"context"
	"encoding/json"
)

// Topic names used by the web layer
const (
	TopicGraph = "graph" // Graph document loads and reloads
)

// Event represents a pub/sub event
type Event struct {
	Topic   string          `json:"topic"`   // Subscription topic
	Type    string          `json:"type"`    // Event type (e.g., "loaded", "reloaded", "diff")
	Data    json.RawMessage `json:"data"`    // Event payload
	Version int             `json:"version"` // Version number for ordering
}

// Subscription represents a client subscription to a topic
type Subscription interface {
	// Topic returns the subscription topic
	Topic() string

	// Events returns a channel for receiving events
	Events() <-chan Event

	// Close closes the subscription
	Close() error
}

// Publisher manages pub/sub subscriptions and event publishing
type Publisher interface {
	// Subscribe creates a new subscription to a topic.
	// Context cancellation will close the subscription.
	Subscribe(ctx context.Context, topic string) (Subscription, error)

	// Publish sends an event to all subscribers of a topic
	Publish(topic string, eventType string, data interface{}) error

	// Close shuts down the publisher and all subscriptions
	Close() error
}

// GraphStatus summarizes the currently loaded graph document
type GraphStatus struct {
	Forms  int  `json:"forms"`  // Number of forms in the graph
	Edges  int  `json:"edges"`  // Number of declared dependency edges
	Cycles int  `json:"cycles"` // Number of dependency cycles found
	Loaded bool `json:"loaded"` // False until the first document load succeeds
}
