package event

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// Dismisser broadcasts a dismiss signal to subscribed editors. It is safe
// for concurrent use.
type Dismisser struct {
	mu   sync.Mutex
	subs map[uuid.UUID]func() error
	// order keeps broadcast order stable across runs.
	order []uuid.UUID
}

// NewDismisser creates an empty dismiss broadcaster.
func NewDismisser() *Dismisser {
	return &Dismisser{subs: make(map[uuid.UUID]func() error)}
}

var (
	defaultDismisser     *Dismisser
	defaultDismisserOnce sync.Once
)

// Default returns the process-wide dismiss broadcaster.
func Default() *Dismisser {
	defaultDismisserOnce.Do(func() {
		defaultDismisser = NewDismisser()
	})
	return defaultDismisser
}

// Subscribe registers hide under id, replacing any previous subscription
// with the same id. The returned function unsubscribes; calling it more than
// once is harmless.
func (d *Dismisser) Subscribe(id uuid.UUID, hide func() error) (unsubscribe func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.subs[id]; !exists {
		d.order = append(d.order, id)
	}
	d.subs[id] = hide

	return func() { d.Unsubscribe(id) }
}

// Unsubscribe removes the subscription for id.
func (d *Dismisser) Unsubscribe(id uuid.UUID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.subs[id]; !exists {
		return
	}
	delete(d.subs, id)
	for i, o := range d.order {
		if o == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of subscribers.
func (d *Dismisser) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.subs)
}

// Broadcast calls every subscriber in subscription order. All subscribers
// are called even if some fail; their errors are joined.
func (d *Dismisser) Broadcast() error {
	d.mu.Lock()
	hides := make([]func() error, 0, len(d.order))
	for _, id := range d.order {
		hides = append(hides, d.subs[id])
	}
	d.mu.Unlock()

	var errs []error
	for _, hide := range hides {
		if err := hide(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
