package editor

import (
	"github.com/dshills/blockmark/internal/event"
	"github.com/dshills/blockmark/internal/logging"
	"github.com/dshills/blockmark/internal/renderer"
)

// Options configures an Editor.
type Options struct {
	// Markup is the initial document text. A MarkupGetter plugin overrides
	// it.
	Markup string

	// OnMarkupChange, OnPreInit and OnPostInit are wrapped in a FuncPlugin
	// registered after Plugins.
	OnMarkupChange func(fullMarkup, fullHTML string) error
	OnPreInit      func(container string, opts *Options) error
	OnPostInit     func(fullMarkup, fullHTML string) error

	// Renderer converts markup to HTML and may override split and join.
	// Defaults to GFM Markdown.
	Renderer renderer.Renderer

	// Plugins are informed in order.
	Plugins []any

	// HotKeys are tested in order while a block is being edited. Defaults
	// to DefaultHotKeys. A non-nil empty slice disables hotkeys.
	HotKeys []HotKey

	// Logger defaults to a no-op logger.
	Logger *logging.Logger

	// Dismisser defaults to event.Default.
	Dismisser *event.Dismisser
}

func (o *Options) applyDefaults() {
	if o.Renderer == nil {
		o.Renderer = renderer.NewMarkdown(renderer.DefaultOptions())
	}
	if o.HotKeys == nil {
		o.HotKeys = DefaultHotKeys()
	}
	if o.Logger == nil {
		o.Logger = logging.Nop()
	}
	if o.Dismisser == nil {
		o.Dismisser = event.Default()
	}
}

func (o *Options) funcPlugin() FuncPlugin {
	return FuncPlugin{
		PreInit:      o.OnPreInit,
		PostInit:     o.OnPostInit,
		MarkupChange: o.OnMarkupChange,
	}
}
