package event

import (
	"fmt"
	"sync/atomic"
)

// Bus delivers lifecycle events to plugins in registration order.
// A Bus is not safe for concurrent registration and delivery; the editor
// serializes both on its owner's goroutine.
type Bus struct {
	plugins []any

	eventsInformed   atomic.Uint64
	handlersExecuted atomic.Uint64
	handlerErrors    atomic.Uint64
}

// NewBus creates a bus holding plugins in the given order.
func NewBus(plugins ...any) (*Bus, error) {
	b := &Bus{}
	for _, p := range plugins {
		if err := b.Register(p); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Register appends a plugin. Plugins registered later receive events later.
func (b *Bus) Register(p any) error {
	if p == nil {
		return ErrNilPlugin
	}
	b.plugins = append(b.plugins, p)
	return nil
}

// Plugins returns a copy of the registered plugins in order.
func (b *Bus) Plugins() []any {
	out := make([]any, len(b.plugins))
	copy(out, b.plugins)
	return out
}

// Len returns the number of registered plugins.
func (b *Bus) Len() int {
	return len(b.plugins)
}

// Stats returns current bus statistics.
func (b *Bus) Stats() Stats {
	return Stats{
		Plugins:          len(b.plugins),
		EventsInformed:   b.eventsInformed.Load(),
		HandlersExecuted: b.handlersExecuted.Load(),
		HandlerErrors:    b.handlerErrors.Load(),
	}
}

// Inform calls fn for every registered plugin implementing T, in
// registration order. Plugins that do not implement T are skipped. The first
// error aborts delivery to the remaining plugins and is returned as a
// *HandlerError. Panics are not recovered.
func Inform[T any](b *Bus, name Name, fn func(T) error) error {
	if fn == nil {
		return ErrNilHandler
	}
	b.eventsInformed.Add(1)

	for i, p := range b.plugins {
		target, ok := p.(T)
		if !ok {
			continue
		}
		b.handlersExecuted.Add(1)
		if err := fn(target); err != nil {
			b.handlerErrors.Add(1)
			return &HandlerError{
				Event:  name,
				Plugin: describe(p),
				Index:  i,
				Err:    err,
			}
		}
	}
	return nil
}

// First returns the first registered plugin implementing T.
func First[T any](b *Bus) (T, bool) {
	for _, p := range b.plugins {
		if target, ok := p.(T); ok {
			return target, true
		}
	}
	var zero T
	return zero, false
}

// Named is implemented by plugins that report a display name.
type Named interface {
	Name() string
}

func describe(p any) string {
	if n, ok := p.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", p)
}
