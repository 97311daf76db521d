package renderer

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMarkdownRender(t *testing.T) {
	r := NewMarkdown(DefaultOptions())

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"hard break", "Hello  \n**Tom**", "<p>Hello<br>\n<strong>Tom</strong></p>\n"},
		{"heading", "# Hello", "<h1>Hello</h1>\n"},
		{"indented code", "a\n\n    Hello", "<p>a</p>\n<pre><code>Hello\n</code></pre>\n"},
		{"fenced code escapes", "~~~\n<script>log('bla');</script>\n~~~", "<pre><code>&lt;script&gt;log('bla');&lt;/script&gt;\n</code></pre>\n"},
		{"inline code escapes", "`<script></script>`", "<p><code>&lt;script&gt;&lt;/script&gt;</code></p>\n"},
		{"raw html omitted", "<script></script>", "<!-- raw HTML omitted -->\n"},
		{"strikethrough", "~~gone~~", "<p><del>gone</del></p>\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Render(tt.in)
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Render(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMarkdownUnsafeHTML(t *testing.T) {
	r := NewMarkdown(Options{UnsafeHTML: true})
	got, err := r.Render("<script></script>")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if got != "<script></script>\n" {
		t.Errorf("Render = %q", got)
	}
}

func TestPlainRender(t *testing.T) {
	got, err := NewPlain().Render("a<b>\nc\n\n\n\nd")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	want := "<p>a&lt;b&gt;<br/>c</p>\n<p>d</p>\n"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}

	got, err = NewPlain().Render("")
	if err != nil || got != "" {
		t.Errorf("Render(\"\") = %q, %v", got, err)
	}
}

func TestSplitPolicy(t *testing.T) {
	in := "~~~\r\n\n...\n\r\n~~~"

	if diff := cmp.Diff([]string{"~~~", "...", "~~~"}, Split(NewMarkdown(DefaultOptions()), in)); diff != "" {
		t.Errorf("Markdown split mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"~~~\n\n...\n\n~~~"}, Split(NewFencedMarkdown(DefaultOptions()), in)); diff != "" {
		t.Errorf("FencedMarkdown split mismatch (-want +got):\n%s", diff)
	}
}

type pipeJoiner struct{ Func }

func (pipeJoiner) Join(blocks []string) string { return strings.Join(blocks, "|") }

func TestJoinPolicy(t *testing.T) {
	blocks := []string{"a", "b"}
	if got := Join(NewPlain(), blocks); got != "a\n\nb" {
		t.Errorf("default Join = %q", got)
	}
	if got := Join(pipeJoiner{}, blocks); got != "a|b" {
		t.Errorf("custom Join = %q", got)
	}
}

func TestFunc(t *testing.T) {
	boom := errors.New("boom")
	r := Func(func(string) (string, error) { return "", boom })
	if _, err := r.Render("x"); !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
}

func TestNew(t *testing.T) {
	for _, name := range Names() {
		r, err := New(name, DefaultOptions())
		if err != nil {
			t.Fatalf("New(%q) failed: %v", name, err)
		}
		if r == nil {
			t.Fatalf("New(%q) returned nil", name)
		}
	}

	if _, err := New("wiki", DefaultOptions()); !errors.Is(err, ErrUnknownRenderer) {
		t.Errorf("err = %v, want ErrUnknownRenderer", err)
	}

	if diff := cmp.Diff([]string{NameMarkdown, NameFencedMarkdown, NamePlain}, Names()); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}
}
