package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/blockmark/internal/config"
	"github.com/dshills/blockmark/internal/engine/history"
)

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.md")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunSplit(t *testing.T) {
	doc := writeDoc(t, "# A\n\n\n\nb\n~~~\nx\n\ny\n~~~")

	cfg := config.Default()
	cfg.Renderer.Name = "markdown-fenced"

	var out bytes.Buffer
	if err := runSplit(cfg, []string{doc}, &out); err != nil {
		t.Fatalf("runSplit failed: %v", err)
	}
	want := "--- block 0 ---\n# A\n--- block 1 ---\nb\n~~~\nx\n\ny\n~~~\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestRunRender(t *testing.T) {
	doc := writeDoc(t, "# Title\n\ntext")

	var out bytes.Buffer
	if err := runRender(config.Default(), []string{doc}, &out); err != nil {
		t.Fatalf("runRender failed: %v", err)
	}
	if !strings.Contains(out.String(), "<h1>Title</h1>") || !strings.Contains(out.String(), "<p>text</p>") {
		t.Errorf("output = %q", out.String())
	}

	if err := runRender(config.Default(), []string{filepath.Join(t.TempDir(), "none.md")}, &out); err == nil {
		t.Error("missing file should fail")
	}
}

func TestRunHistory(t *testing.T) {
	cfg := config.Default()
	if err := runHistory(cfg, nil, &bytes.Buffer{}); err == nil {
		t.Error("memory backend should fail")
	}

	cfg.History.Backend = config.BackendBolt
	cfg.History.Path = filepath.Join(t.TempDir(), "history.db")

	kv, err := history.OpenBolt(cfg.History.Path)
	if err != nil {
		t.Fatalf("OpenBolt failed: %v", err)
	}
	store := history.NewDurable(kv)
	if _, err := store.Init("one"); err != nil {
		t.Fatal(err)
	}
	if err := store.Push("two"); err != nil {
		t.Fatal(err)
	}
	if err := kv.Close(); err != nil {
		t.Fatal(err)
	}

	var keys bytes.Buffer
	if err := runHistory(cfg, nil, &keys); err != nil {
		t.Fatalf("runHistory failed: %v", err)
	}
	if keys.String() != history.DefaultKey+"\n" {
		t.Errorf("keys = %q", keys.String())
	}

	var rec bytes.Buffer
	if err := runHistory(cfg, []string{history.DefaultKey}, &rec); err != nil {
		t.Fatalf("runHistory failed: %v", err)
	}
	for _, want := range []string{`"pointer": 2`, `"one"`, `"two"`} {
		if !strings.Contains(rec.String(), want) {
			t.Errorf("record %q missing %s", rec.String(), want)
		}
	}

	if err := runHistory(cfg, []string{"unknown"}, &bytes.Buffer{}); err == nil {
		t.Error("unknown key should fail")
	}
}
