// Package plugin provides the built-in editor plugins.
//
// Each plugin implements the capability interfaces from package editor that
// it needs and is registered through editor.Options.Plugins:
//
//   - UndoRedo records every markup change in a history.Store and restores
//     snapshots on Undo and Redo.
//   - ContentGuard tracks whether the document has unsaved changes.
//   - FileAdapter loads the document from a file and writes it back on
//     change, optionally reloading when the file changes on disk.
//   - HTTPAdapter loads the document with a GET and posts changes as a form.
//   - TemplateAdapter writes the rendered document into an element of an
//     HTML template.
//   - EventLogger logs every lifecycle event.
//
// Lua plugins live in the lua subpackage; Discover finds their scripts.
package plugin
