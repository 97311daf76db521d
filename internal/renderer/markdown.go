package renderer

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/dshills/blockmark/internal/engine/split"
)

// Markdown renders CommonMark through goldmark.
type Markdown struct {
	md goldmark.Markdown
}

// NewMarkdown creates a Markdown renderer.
func NewMarkdown(opts Options) *Markdown {
	var gmOpts []goldmark.Option
	if opts.GFM {
		gmOpts = append(gmOpts, goldmark.WithExtensions(extension.GFM))
	}
	if opts.UnsafeHTML {
		gmOpts = append(gmOpts, goldmark.WithRendererOptions(gmhtml.WithUnsafe()))
	}
	return &Markdown{md: goldmark.New(gmOpts...)}
}

// Render implements Renderer.
func (m *Markdown) Render(markup string) (string, error) {
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(markup), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// FencedMarkdown is Markdown whose split policy keeps ~~~ fenced regions
// inside a single block.
type FencedMarkdown struct {
	*Markdown
}

// NewFencedMarkdown creates a FencedMarkdown renderer.
func NewFencedMarkdown(opts Options) *FencedMarkdown {
	return &FencedMarkdown{Markdown: NewMarkdown(opts)}
}

// Split implements Splitter.
func (m *FencedMarkdown) Split(markup string) []string {
	return split.SplitFenced(markup)
}
