package plugin

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// TemplateAdapter writes the rendered document into the element of an HTML
// template matched by a CSS selector, replacing its children, and saves the
// result to an output file.
type TemplateAdapter struct {
	template []byte
	selector cascadia.Sel
	output   string
}

// NewTemplateAdapter parses the selector and reads the template file.
func NewTemplateAdapter(templatePath, selector, output string) (*TemplateAdapter, error) {
	data, err := os.ReadFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	return NewTemplateAdapterFromBytes(data, selector, output)
}

// NewTemplateAdapterFromBytes creates an adapter over an in-memory
// template.
func NewTemplateAdapterFromBytes(template []byte, selector, output string) (*TemplateAdapter, error) {
	sel, err := cascadia.Parse(selector)
	if err != nil {
		return nil, fmt.Errorf("parse selector %q: %w", selector, err)
	}
	return &TemplateAdapter{template: template, selector: sel, output: output}, nil
}

// Name implements event.Named.
func (a *TemplateAdapter) Name() string { return "template:" + a.output }

// OnPostInit implements editor.PostIniter.
func (a *TemplateAdapter) OnPostInit(_, fullHTML string) error {
	return a.writeFile(fullHTML)
}

// OnMarkupChange implements editor.MarkupChanger.
func (a *TemplateAdapter) OnMarkupChange(_, fullHTML string) error {
	return a.writeFile(fullHTML)
}

func (a *TemplateAdapter) writeFile(fullHTML string) error {
	var buf bytes.Buffer
	if err := a.Render(&buf, fullHTML); err != nil {
		return err
	}
	if err := os.WriteFile(a.output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", a.output, err)
	}
	return nil
}

// Render writes the template with fullHTML placed inside the first element
// matching the selector.
func (a *TemplateAdapter) Render(w io.Writer, fullHTML string) error {
	doc, err := html.Parse(bytes.NewReader(a.template))
	if err != nil {
		return fmt.Errorf("parse template: %w", err)
	}

	target := cascadia.Query(doc, a.selector)
	if target == nil {
		return ErrNoMatch
	}

	nodes, err := html.ParseFragment(strings.NewReader(fullHTML), target)
	if err != nil {
		return fmt.Errorf("parse document html: %w", err)
	}

	for c := target.FirstChild; c != nil; {
		next := c.NextSibling
		target.RemoveChild(c)
		c = next
	}
	for _, n := range nodes {
		target.AppendChild(n)
	}

	return html.Render(w, doc)
}
