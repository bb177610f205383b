// Package eventbus provides an in-memory, asynchronous event bus that
// decouples event ingestion from notification dispatch. Events are queued
// on a buffered channel and drained by a worker pool; each event is
// broadcast to every subscribed listener.
package eventbus

import (
	"log/slog"
	"sync"
	"time"
)

const (
	defaultWorkers    = 3
	defaultBufferSize = 256
)

// EventBus is the interface for publishing events and managing subscribers.
type EventBus interface {
	// Publish enqueues an event with the given type and payload. It never
	// blocks: if the buffer is full, the event is dropped with a warning.
	Publish(eventType string, payload map[string]string)

	// Subscribe registers a listener that will be called for every
	// published event. Subscribe must be called before the first Publish;
	// behavior is undefined if called after Close.
	Subscribe(listener Listener)

	// Close stops accepting new events and waits for the workers to drain
	// the queue.
	Close()
}

type inMemoryBus struct {
	ch        chan Event
	listeners []Listener
	mu        sync.RWMutex
	wg        sync.WaitGroup
	logger    *slog.Logger
}

// New creates an in-memory EventBus with the given number of worker
// goroutines. If workers is <= 0, defaultWorkers is used.
func New(workers int, logger *slog.Logger) EventBus {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if logger == nil {
		logger = slog.Default()
	}
	b := &inMemoryBus{
		ch:     make(chan Event, defaultBufferSize),
		logger: logger,
	}
	for i := 0; i < workers; i++ {
		b.wg.Add(1)
		go func() {
			defer b.wg.Done()
			for e := range b.ch {
				b.dispatch(e)
			}
		}()
	}
	return b
}

// dispatch broadcasts the event to all listeners, isolating each listener
// with panic recovery so one bad subscriber cannot take down the workers.
func (b *inMemoryBus) dispatch(e Event) {
	b.mu.RLock()
	listeners := make([]Listener, len(b.listeners))
	copy(listeners, b.listeners)
	b.mu.RUnlock()

	for _, l := range listeners {
		func() {
			defer func() {
				if r := recover(); r != nil {
					b.logger.Error("event listener panicked",
						slog.String("event_type", e.Type),
						slog.Any("panic", r),
					)
				}
			}()
			l(e)
		}()
	}
}

func (b *inMemoryBus) Publish(eventType string, payload map[string]string) {
	e := Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	}

	select {
	case b.ch <- e:
	default:
		b.logger.Warn("event buffer full, dropping event", slog.String("event_type", eventType))
	}
}

func (b *inMemoryBus) Subscribe(listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, listener)
}

func (b *inMemoryBus) Close() {
	close(b.ch)
	b.wg.Wait()
}
