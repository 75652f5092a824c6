package event

import (
	"reflect"
	"sync"
)

// Bus is a double-buffered event bus. Events emitted during a tick are
// delivered by the next DispatchAll, after SwapBuffers; the game loop calls
// both at the end of every tick so subscribers only ever observe completed
// ticks.
type Bus struct {
	mu       sync.Mutex // only protects handler registration
	front    map[reflect.Type][]any
	back     map[reflect.Type][]any
	handlers map[reflect.Type][]any
	order    []reflect.Type
}

func NewBus() *Bus {
	return &Bus{
		front:    make(map[reflect.Type][]any),
		back:     make(map[reflect.Type][]any),
		handlers: make(map[reflect.Type][]any),
	}
}

// Emit queues an event into the back buffer.
func Emit[T any](b *Bus, event T) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if _, ok := b.back[t]; !ok {
		if _, seen := b.front[t]; !seen {
			b.order = append(b.order, t)
		}
	}
	b.back[t] = append(b.back[t], event)
}

// Subscribe registers a typed handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.handlers[t] = append(b.handlers[t], fn)
}

// SwapBuffers rotates back→front and clears the new back buffer.
func (b *Bus) SwapBuffers() {
	b.front, b.back = b.back, b.front
	for k := range b.back {
		b.back[k] = b.back[k][:0]
	}
}

// DispatchAll delivers all front-buffer events to their subscribed handlers.
// Event types are delivered in the order the bus first saw them.
func (b *Bus) DispatchAll() {
	b.mu.Lock()
	handlers := make(map[reflect.Type][]any, len(b.handlers))
	for t, hs := range b.handlers {
		handlers[t] = hs
	}
	b.mu.Unlock()

	for _, t := range b.order {
		for _, ev := range b.front[t] {
			for _, h := range handlers[t] {
				// Safe because Subscribe and Emit use the same type key.
				callHandler(h, ev)
			}
		}
	}
}

// Pending returns the number of events waiting in the back buffer.
func (b *Bus) Pending() int {
	n := 0
	for _, evs := range b.back {
		n += len(evs)
	}
	return n
}

func callHandler(handler any, event any) {
	reflect.ValueOf(handler).Call([]reflect.Value{reflect.ValueOf(event)})
}
