// Package editor implements the block document: markup split into blocks,
// one block edited at a time, and the full document reassembled from its
// blocks.
//
// # Blocks
//
// An Editor owns its blocks in an arena keyed by BlockID and keeps document
// order in a separate slice. A Block never holds pointers to its
// neighbours; Prev and Next look the block up in the owning Editor.
//
// # Edit Sessions
//
// At most one block is in edit mode. StartEditing ends any open session
// first. When a session ends the block's markup is split again: the first
// piece stays in the block, further pieces become new blocks after it, and
// an empty block is removed. If the text changed during the session the
// editor emits a single markupChange event carrying the joined markup and
// the HTML rendered from it.
//
// # Plugins
//
// Plugins are values implementing any of the capability interfaces in
// plugin.go. They are informed in registration order; option callbacks
// (Options.OnMarkupChange and friends) are wrapped in a FuncPlugin that is
// registered last.
//
// # Concurrency
//
// An Editor is not safe for concurrent use. Hosts call it from a single
// event loop.
package editor
