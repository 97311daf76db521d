// Package host is the interactive terminal front end for an editor.
//
// The document is shown as a list of blocks. Outside edit mode each block
// shows a plain text preview of its rendered HTML and the arrow keys move
// the selection; Enter edits the selected block. In edit mode the block's
// markup is shown raw, keys first go through the editor's hotkeys, and the
// remaining keys edit the text.
package host
