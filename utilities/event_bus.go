package utilities

import "sync"

// EventHandler receives the payload published with an event.
type EventHandler func(payload interface{})

// EventBus is a minimal in-process pub/sub used to decouple the scoring
// engine from side effects like report regeneration. Handlers run in their
// own goroutines; publishers never block on them.
type EventBus struct {
	mu       sync.RWMutex
	handlers map[string][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{handlers: make(map[string][]EventHandler)}
}

// Subscribe registers a handler for the named event. Handlers cannot be
// removed; subscription happens once at startup.
func (eb *EventBus) Subscribe(event string, handler EventHandler) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.handlers[event] = append(eb.handlers[event], handler)
}

// Publish delivers the payload to every handler of the event, each on its
// own goroutine. Events with no subscribers are dropped silently.
func (eb *EventBus) Publish(event string, payload interface{}) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	for _, handler := range eb.handlers[event] {
		go handler(payload)
	}
}

// GlobalEventBus is the shared instance the services publish on.
var GlobalEventBus = NewEventBus()
