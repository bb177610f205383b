package eventbus

import "time"

// Event is an inbound message describing a reservation lifecycle
// transition, as published by the ingestion transport.
type Event struct {
	Type      string            `json:"type"`
	Timestamp time.Time         `json:"timestamp"`
	Payload   map[string]string `json:"payload"`
}

// Listener is a function that handles an event.
type Listener func(Event)
