package config

import (
	"errors"
	"slices"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/blockmark/internal/input/key"
	"github.com/dshills/blockmark/internal/logging"
	"github.com/dshills/blockmark/internal/renderer"
)

// Validate checks every setting and returns all problems joined.
func (c *Config) Validate() error {
	var errs []error
	add := func(path string, value any, msg string) {
		errs = append(errs, &ValidationError{Path: path, Value: value, Message: msg})
	}

	if _, ok := logging.ParseLevel(c.Log.Level); !ok {
		add("log.level", c.Log.Level, "want debug, info, warn or error")
	}

	if !slices.Contains(renderer.Names(), c.Renderer.Name) {
		add("renderer.name", c.Renderer.Name, "unknown renderer")
	}

	switch c.History.Backend {
	case BackendMemory:
	case BackendBolt:
		if c.History.Path == "" {
			add("history.path", c.History.Path, "required by the bolt backend")
		}
	default:
		add("history.backend", c.History.Backend, "want memory or bolt")
	}
	if c.History.MaxEntries < 0 {
		add("history.max_entries", c.History.MaxEntries, "must not be negative")
	}
	for path, chord := range map[string]string{"history.undo": c.History.Undo, "history.redo": c.History.Redo} {
		if chord == "" {
			continue
		}
		if _, err := key.Parse(chord); err != nil {
			add(path, chord, err.Error())
		}
	}

	f := c.Plugins.File
	if f.Watch && f.HTML {
		add("plugins.file.watch", f.Watch, "cannot watch a file receiving HTML output")
	}
	if f.Watch && f.Path == "" {
		add("plugins.file.watch", f.Watch, "requires plugins.file.path")
	}

	if t := c.Plugins.HTTP.Timeout; t != "" {
		if d, err := time.ParseDuration(t); err != nil || d < 0 {
			add("plugins.http.timeout", t, "want a non-negative duration such as 10s")
		}
	}

	tpl := c.Plugins.Template
	if tpl.Path != "" && (tpl.Selector == "" || tpl.Output == "") {
		add("plugins.template", tpl.Path, "selector and output are required")
	}

	if _, err := c.BuildHotKeys(); err != nil {
		add("hotkeys", c.HotKeys, err.Error())
	}

	for path, hex := range map[string]string{
		"theme.background":   c.Theme.Background,
		"theme.foreground":   c.Theme.Foreground,
		"theme.accent":       c.Theme.Accent,
		"theme.muted":        c.Theme.Muted,
		"theme.active_block": c.Theme.ActiveBlock,
	} {
		if hex == "" {
			continue
		}
		if _, err := colorful.Hex(hex); err != nil {
			add(path, hex, "want a #rrggbb color")
		}
	}

	return errors.Join(errs...)
}
