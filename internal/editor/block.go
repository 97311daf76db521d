package editor

import (
	"fmt"
	"strings"
)

// BlockID identifies a block within one Editor. IDs are never reused.
type BlockID uint64

// String returns the ID in the form used by hosts, e.g. "block-3".
func (id BlockID) String() string {
	return fmt.Sprintf("block-%d", id)
}

// Block is one editable unit of markup and its rendered HTML.
//
// SetMarkup does not render; HTML is recomputed when the block's edit
// session ends and may be stale until then.
type Block struct {
	id     BlockID
	editor *Editor

	markup string
	html   string

	// committed is the markup when the current edit session started, or at
	// the end of the last one.
	committed string

	// cursor is a byte offset into markup.
	cursor int
}

// ID returns the block's identity.
func (b *Block) ID() BlockID {
	return b.id
}

// Markup returns the block's current markup.
func (b *Block) Markup() string {
	return b.markup
}

// SetMarkup replaces the block's markup without rendering it. The cursor is
// clamped to the new text.
func (b *Block) SetMarkup(markup string) {
	b.markup = markup
	b.SetCursor(b.cursor)
}

// HTML returns the block's rendered display form.
func (b *Block) HTML() string {
	return b.html
}

// Committed returns the markup the current edit session started from, or
// the markup at the end of the last session.
func (b *Block) Committed() string {
	return b.committed
}

// Dirty reports whether the markup differs from the committed markup, i.e.
// whether the open session has a net change.
func (b *Block) Dirty() bool {
	return b.markup != b.committed
}

// Cursor returns the cursor as a byte offset into the markup.
func (b *Block) Cursor() int {
	return b.cursor
}

// SetCursor moves the cursor, clamped to the markup.
func (b *Block) SetCursor(offset int) {
	b.cursor = max(0, min(offset, len(b.markup)))
}

// InsertAtCursor inserts s at the cursor and moves the cursor past it.
func (b *Block) InsertAtCursor(s string) {
	var sb strings.Builder
	sb.Grow(len(b.markup) + len(s))
	sb.WriteString(b.markup[:b.cursor])
	sb.WriteString(s)
	sb.WriteString(b.markup[b.cursor:])
	b.markup = sb.String()
	b.cursor += len(s)
}

// Editing reports whether the block is in edit mode.
func (b *Block) Editing() bool {
	return b.editor != nil && b.editor.active == b
}

// Attached reports whether the block is part of its editor's document.
func (b *Block) Attached() bool {
	return b.editor != nil && b.editor.indexOf(b) >= 0
}

// Edit starts an edit session on the block.
func (b *Block) Edit() error {
	return b.editor.StartEditing(b)
}

// Prev returns the preceding block, or nil.
func (b *Block) Prev() *Block {
	return b.editor.sibling(b, -1)
}

// Next returns the following block, or nil.
func (b *Block) Next() *Block {
	return b.editor.sibling(b, +1)
}
