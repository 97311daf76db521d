package renderer

import (
	"fmt"
	"sort"

	"github.com/dshills/blockmark/internal/engine/split"
)

// Renderer converts markup into its display form.
type Renderer interface {
	// Render returns the HTML for markup.
	Render(markup string) (string, error)
}

// Splitter is implemented by renderers that override the default block
// split policy.
type Splitter interface {
	Split(markup string) []string
}

// Joiner is implemented by renderers that override the default block join
// policy.
type Joiner interface {
	Join(blocks []string) string
}

// Func adapts a plain function to the Renderer interface.
type Func func(markup string) (string, error)

// Render implements Renderer.
func (f Func) Render(markup string) (string, error) {
	return f(markup)
}

// Split partitions markup into blocks using r's policy if it has one.
func Split(r Renderer, markup string) []string {
	if s, ok := r.(Splitter); ok {
		return s.Split(markup)
	}
	return split.Split(markup)
}

// Join reassembles blocks using r's policy if it has one.
func Join(r Renderer, blocks []string) string {
	if j, ok := r.(Joiner); ok {
		return j.Join(blocks)
	}
	return split.Join(blocks)
}

// Renderer names accepted by New.
const (
	NameMarkdown       = "markdown"
	NameFencedMarkdown = "markdown-fenced"
	NamePlain          = "plain"
)

// Factory builds a renderer.
type Factory func(opts Options) Renderer

var factories = map[string]Factory{
	NameMarkdown:       func(opts Options) Renderer { return NewMarkdown(opts) },
	NameFencedMarkdown: func(opts Options) Renderer { return NewFencedMarkdown(opts) },
	NamePlain:          func(Options) Renderer { return NewPlain() },
}

// Options configures the built-in renderers.
type Options struct {
	// UnsafeHTML passes raw HTML in markup through to the output.
	UnsafeHTML bool

	// GFM enables GitHub Flavored Markdown extensions (tables,
	// strikethrough, autolinks, task lists).
	GFM bool
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{GFM: true}
}

// New returns the built-in renderer registered under name.
func New(name string, opts Options) (Renderer, error) {
	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRenderer, name)
	}
	return f(opts), nil
}

// Names returns the sorted names of the built-in renderers.
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
