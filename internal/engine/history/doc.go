// Package history provides linear undo/redo over full-document snapshots.
//
// A history is an ordered sequence of markup snapshots plus a pointer to the
// current one. The pointer is 1-based: after the first entry is recorded it
// is 1, and it never drops below 1 again.
//
//	h := history.NewMemory(50)
//	h.Init("v1")   // [v1], pointer 1
//	h.Push("v2")   // [v1 v2], pointer 2
//	h.Undo()       // returns "v1", pointer 1
//	h.Push("v3")   // [v1 v3], pointer 2 (v2 is discarded)
//
// # Backends
//
// Memory keeps the sequence in process. Durable wraps a Memory and writes the
// whole sequence to a KV after every mutating call, so a later session can
// resume where the last one stopped:
//
//	kv, err := history.OpenBolt("history.db")
//	h := history.NewDurable(kv, history.WithKey("notes.md"))
//
// Persisted state that cannot be read or parsed is treated as an empty
// history; the failure is logged, never returned.
//
// # Bounds
//
// Undo and Redo clamp instead of failing. Before the first entry exists both
// return ErrNoHistory.
package history
