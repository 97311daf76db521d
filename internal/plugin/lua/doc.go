// Package lua runs editor plugins written in Lua.
//
// A script is loaded into a sandboxed gopher-lua state and opts in to
// lifecycle events by defining global functions:
//
//	function onMarkupChange(markup, html)
//	    blockmark.log("document is now " .. #markup .. " bytes")
//	end
//
// Recognized globals are onGetMarkup, onPreInit, onPostInit,
// onPreStartEditing, onPostStartEditing, onPreStopEditing,
// onPostStopEditing and onMarkupChange. Block handlers receive a table with
// id, markup, html and editing fields.
//
// # The blockmark Module
//
// Scripts reach the editor through the global blockmark table:
//
//	blockmark.full_markup()    -- joined markup
//	blockmark.set_markup(s)    -- replace the document
//	blockmark.hide_editor()    -- end the open edit session
//	blockmark.block_count()    -- number of blocks
//	blockmark.log(msg)         -- write to the editor log
//
// # Sandbox
//
// Only the base, table, string and math libraries are opened. dofile,
// loadfile, load and loadstring are removed and require is limited to
// built-in modules. Each call runs under an execution timeout.
package lua
