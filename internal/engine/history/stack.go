package history

import "sync"

// DefaultMaxEntries is the number of snapshots kept when no bound is given.
const DefaultMaxEntries = 50

// Store is the contract shared by all history backends.
type Store interface {
	// Init records markup as the first entry and returns it, unless the
	// store already holds entries, in which case the current entry is
	// returned instead.
	Init(markup string) (string, error)

	// Push discards entries after the pointer, appends markup and moves the
	// pointer to it.
	Push(markup string) error

	// Undo moves the pointer back by one, never below 1, and returns the
	// entry at the pointer.
	Undo() (string, error)

	// Redo moves the pointer forward by one, never past the last entry, and
	// returns the entry at the pointer.
	Redo() (string, error)
}

// Snapshot is the complete state of a history sequence.
type Snapshot struct {
	Pointer int
	Entries []string
}

// Memory is an in-process history.
type Memory struct {
	mu sync.Mutex

	pointer    int
	entries    []string
	maxEntries int
}

// NewMemory creates an empty history keeping at most maxEntries snapshots.
// A non-positive maxEntries selects DefaultMaxEntries.
func NewMemory(maxEntries int) *Memory {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Memory{maxEntries: maxEntries}
}

// Init implements Store.
func (m *Memory) Init(markup string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.entries) > 0 {
		return m.entries[m.pointer-1], nil
	}
	m.pushLocked(markup)
	return markup, nil
}

// Push implements Store.
func (m *Memory) Push(markup string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pushLocked(markup)
	return nil
}

func (m *Memory) pushLocked(markup string) {
	m.entries = append(m.entries[:m.pointer:m.pointer], markup)
	m.pointer++

	if excess := len(m.entries) - m.maxEntries; excess > 0 {
		m.entries = m.entries[excess:]
		m.pointer -= excess
	}
}

// Undo implements Store.
func (m *Memory) Undo() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.entries) == 0 {
		return "", ErrNoHistory
	}
	if m.pointer > 1 {
		m.pointer--
	}
	return m.entries[m.pointer-1], nil
}

// Redo implements Store.
func (m *Memory) Redo() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.entries) == 0 {
		return "", ErrNoHistory
	}
	if m.pointer < len(m.entries) {
		m.pointer++
	}
	return m.entries[m.pointer-1], nil
}

// Current returns the entry at the pointer.
func (m *Memory) Current() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.entries) == 0 {
		return "", false
	}
	return m.entries[m.pointer-1], true
}

// CanUndo reports whether Undo would move the pointer.
func (m *Memory) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pointer > 1
}

// CanRedo reports whether Redo would move the pointer.
func (m *Memory) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pointer < len(m.entries)
}

// Len returns the number of entries.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// MaxEntries returns the bound on the number of entries.
func (m *Memory) MaxEntries() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxEntries
}

// Snapshot returns a copy of the current state.
func (m *Memory) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := make([]string, len(m.entries))
	copy(entries, m.entries)
	return Snapshot{Pointer: m.pointer, Entries: entries}
}

// Restore replaces the state with s. The pointer is clamped into range and
// the oldest entries beyond the bound are dropped.
func (m *Memory) Restore(s Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append([]string(nil), s.Entries...)
	m.pointer = s.Pointer

	switch {
	case len(m.entries) == 0:
		m.pointer = 0
	case m.pointer < 1:
		m.pointer = 1
	case m.pointer > len(m.entries):
		m.pointer = len(m.entries)
	}

	if excess := len(m.entries) - m.maxEntries; excess > 0 {
		m.entries = m.entries[excess:]
		m.pointer -= excess
		if m.pointer < 1 {
			m.pointer = 1
		}
	}
}
