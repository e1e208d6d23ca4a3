package utilities

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventBusDeliversToAllHandlers(t *testing.T) {
	bus := NewEventBus()

	var (
		mu       sync.Mutex
		received []interface{}
	)
	done := make(chan struct{}, 2)
	handler := func(payload interface{}) {
		mu.Lock()
		received = append(received, payload)
		mu.Unlock()
		done <- struct{}{}
	}
	bus.Subscribe("tema.completado", handler)
	bus.Subscribe("tema.completado", handler)

	bus.Publish("tema.completado", 42)

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("handler was not invoked")
		}
	}
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []interface{}{42, 42}, received)
}

func TestEventBusDropsUnsubscribedEvents(t *testing.T) {
	bus := NewEventBus()
	assert.NotPanics(t, func() { bus.Publish("sin_suscriptores", nil) })
}
