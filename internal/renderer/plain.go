package renderer

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dshills/blockmark/internal/engine/split"
)

// Plain renders markup as escaped text. Each block becomes a paragraph and
// single newlines become line breaks.
type Plain struct{}

// NewPlain creates a Plain renderer.
func NewPlain() *Plain {
	return &Plain{}
}

// Render implements Renderer.
func (Plain) Render(markup string) (string, error) {
	var sb strings.Builder
	for _, block := range split.Split(markup) {
		if block == "" {
			continue
		}
		if err := html.Render(&sb, paragraph(block)); err != nil {
			return "", err
		}
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

// paragraph builds a <p> node for block, with <br> between lines.
func paragraph(block string) *html.Node {
	p := &html.Node{Type: html.ElementNode, Data: "p", DataAtom: atom.P}
	for i, line := range strings.Split(block, "\n") {
		if i > 0 {
			p.AppendChild(&html.Node{Type: html.ElementNode, Data: "br", DataAtom: atom.Br})
		}
		if line != "" {
			p.AppendChild(&html.Node{Type: html.TextNode, Data: line})
		}
	}
	return p
}
