package history

import (
	"errors"
	"fmt"

	"github.com/dshills/blockmark/internal/logging"
)

// DefaultKey is the record key used when none is configured.
const DefaultKey = "blockmark"

// Durable is a history persisted to a KV after every mutating call.
type Durable struct {
	mem *Memory
	kv  KV
	key string
	log *logging.Logger
}

// DurableOption configures a Durable history.
type DurableOption func(*durableConfig)

type durableConfig struct {
	key        string
	maxEntries int
	logger     *logging.Logger
}

// WithKey sets the record key.
func WithKey(key string) DurableOption {
	return func(c *durableConfig) {
		if key != "" {
			c.key = key
		}
	}
}

// WithMaxEntries bounds the number of snapshots kept.
func WithMaxEntries(n int) DurableOption {
	return func(c *durableConfig) {
		c.maxEntries = n
	}
}

// WithLogger sets the logger used to report unreadable persisted state.
func WithLogger(l *logging.Logger) DurableOption {
	return func(c *durableConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewDurable creates a history backed by kv and loads any state stored under
// its key. Unreadable state is logged and ignored.
func NewDurable(kv KV, opts ...DurableOption) *Durable {
	cfg := durableConfig{
		key:    DefaultKey,
		logger: logging.Nop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	d := &Durable{
		mem: NewMemory(cfg.maxEntries),
		kv:  kv,
		key: cfg.key,
		log: cfg.logger.WithComponent("history").WithField("key", cfg.key),
	}
	d.load()
	return d
}

func (d *Durable) load() {
	snap, err := ReadRecord(d.kv, d.key)
	switch {
	case errors.Is(err, ErrNotFound):
		return
	case err != nil:
		d.log.Warn("ignoring persisted history: %v", err)
		return
	}
	d.mem.Restore(snap)
	d.log.Debug("restored %d entries", len(snap.Entries))
}

func (d *Durable) save() error {
	data, err := EncodeRecord(d.mem.Snapshot())
	if err != nil {
		return err
	}
	if err := d.kv.Put(d.key, data); err != nil {
		return fmt.Errorf("persist history %s: %w", d.key, err)
	}
	return nil
}

// Init implements Store. When entries were restored from the KV the current
// entry is returned and markup is ignored.
func (d *Durable) Init(markup string) (string, error) {
	if current, ok := d.mem.Current(); ok {
		return current, nil
	}
	s, err := d.mem.Init(markup)
	if err != nil {
		return "", err
	}
	return s, d.save()
}

// Push implements Store.
func (d *Durable) Push(markup string) error {
	if err := d.mem.Push(markup); err != nil {
		return err
	}
	return d.save()
}

// Undo implements Store.
func (d *Durable) Undo() (string, error) {
	s, err := d.mem.Undo()
	if err != nil {
		return "", err
	}
	return s, d.save()
}

// Redo implements Store.
func (d *Durable) Redo() (string, error) {
	s, err := d.mem.Redo()
	if err != nil {
		return "", err
	}
	return s, d.save()
}

// Snapshot returns a copy of the current state.
func (d *Durable) Snapshot() Snapshot {
	return d.mem.Snapshot()
}

// Key returns the record key.
func (d *Durable) Key() string {
	return d.key
}
