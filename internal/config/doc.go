// Package config loads blockmark settings.
//
// Settings come from, in increasing precedence: built-in defaults, a TOML
// or YAML file chosen by extension, and BLOCKMARK_ environment variables.
// The merged result is decoded into a Config and validated.
//
//	[log]
//	level = "debug"
//
//	[history]
//	backend = "bolt"
//	path = "~/.local/state/blockmark/history.db"
//
//	[hotkeys]
//	move-up = "Ctrl+k"
//	remove-block = ""        # unbind
package config
