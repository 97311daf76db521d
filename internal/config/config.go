package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/blockmark/internal/config/loader"
	"github.com/dshills/blockmark/internal/editor"
	"github.com/dshills/blockmark/internal/engine/history"
	"github.com/dshills/blockmark/internal/input/key"
	"github.com/dshills/blockmark/internal/logging"
	"github.com/dshills/blockmark/internal/renderer"
)

// History backends.
const (
	BackendMemory = "memory"
	BackendBolt   = "bolt"
)

// Config holds every blockmark setting.
type Config struct {
	Log      LogConfig         `toml:"log"`
	Renderer RendererConfig    `toml:"renderer"`
	History  HistoryConfig     `toml:"history"`
	Plugins  PluginsConfig     `toml:"plugins"`
	HotKeys  map[string]string `toml:"hotkeys"`
	Theme    ThemeConfig       `toml:"theme"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `toml:"level"`
	// File receives log output. Empty logs to stderr in batch commands and
	// discards output in the interactive editor.
	File string `toml:"file"`
}

// RendererConfig selects and configures the renderer.
type RendererConfig struct {
	Name       string `toml:"name"`
	UnsafeHTML bool   `toml:"unsafe_html"`
	GFM        bool   `toml:"gfm"`
}

// HistoryConfig configures undo history.
type HistoryConfig struct {
	Backend    string `toml:"backend"`
	Path       string `toml:"path"`
	Key        string `toml:"key"`
	MaxEntries int    `toml:"max_entries"`
	Undo       string `toml:"undo"`
	Redo       string `toml:"redo"`
}

// PluginsConfig enables the bundled plugins.
type PluginsConfig struct {
	ContentGuard bool           `toml:"content_guard"`
	LogEvents    bool           `toml:"log_events"`
	File         FileConfig     `toml:"file"`
	HTTP         HTTPConfig     `toml:"http"`
	Template     TemplateConfig `toml:"template"`
	Lua          LuaConfig      `toml:"lua"`
}

// FileConfig configures the file adapter. An empty Path disables it.
type FileConfig struct {
	Path  string `toml:"path"`
	HTML  bool   `toml:"html"`
	Watch bool   `toml:"watch"`
}

// HTTPConfig configures the HTTP adapter. It is enabled when either URL is
// set.
type HTTPConfig struct {
	GetURL  string `toml:"get_url"`
	PostURL string `toml:"post_url"`
	Timeout string `toml:"timeout"`
}

// TemplateConfig configures the HTML template adapter. An empty Path
// disables it.
type TemplateConfig struct {
	Path     string `toml:"path"`
	Selector string `toml:"selector"`
	Output   string `toml:"output"`
}

// LuaConfig lists the Lua scripts to load.
type LuaConfig struct {
	// Paths are searched for scripts. Empty uses the default paths.
	Paths   []string `toml:"paths"`
	Scripts []string `toml:"scripts"`
}

// ThemeConfig holds hex colors for the terminal editor.
type ThemeConfig struct {
	Background  string `toml:"background"`
	Foreground  string `toml:"foreground"`
	Accent      string `toml:"accent"`
	Muted       string `toml:"muted"`
	ActiveBlock string `toml:"active_block"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		Renderer: RendererConfig{
			Name: renderer.NameMarkdown,
			GFM:  true,
		},
		History: HistoryConfig{
			Backend:    BackendMemory,
			Key:        history.DefaultKey,
			MaxEntries: history.DefaultMaxEntries,
			Undo:       "Ctrl+z",
			Redo:       "Ctrl+y",
		},
		Plugins: PluginsConfig{
			ContentGuard: true,
			HTTP:         HTTPConfig{Timeout: "10s"},
		},
		Theme: ThemeConfig{
			Background:  "#1e1e2e",
			Foreground:  "#cdd6f4",
			Accent:      "#89b4fa",
			Muted:       "#6c7086",
			ActiveBlock: "#313244",
		},
	}
}

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	fs        loader.FileSystem
	envPrefix string
}

// WithFS reads the configuration file from fsys.
func WithFS(fsys loader.FileSystem) Option {
	return func(o *loadOptions) {
		o.fs = fsys
	}
}

// WithEnvPrefix changes the environment variable prefix. An empty prefix
// disables environment overrides.
func WithEnvPrefix(prefix string) Option {
	return func(o *loadOptions) {
		o.envPrefix = prefix
	}
}

// Load builds the configuration from the defaults, the file at path and
// the environment, then validates it. An empty path skips the file; a
// path that doesn't exist is an error.
func Load(path string, opts ...Option) (*Config, error) {
	o := loadOptions{fs: loader.DefaultFS(), envPrefix: loader.DefaultEnvPrefix}
	for _, opt := range opts {
		opt(&o)
	}

	merged := make(map[string]any)
	if path != "" {
		fileMap, err := loader.ForPath(o.fs, path).Load()
		if err != nil {
			return nil, err
		}
		if fileMap == nil {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		merged = loader.DeepMerge(merged, fileMap)
	}
	if o.envPrefix != "" {
		envMap, err := loader.NewEnvLoader(o.envPrefix).Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, envMap)
	}

	cfg := Default()
	if err := cfg.decode(merged); err != nil {
		return nil, fmt.Errorf("load %s: %w", displayPath(path), err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode applies settings over c. Unknown settings are rejected.
func (c *Config) decode(settings map[string]any) error {
	if len(settings) == 0 {
		return nil
	}
	data, err := toml.Marshal(settings)
	if err != nil {
		return err
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("unknown settings:\n%s", strict.String())
		}
		return err
	}
	return nil
}

// normalize expands "~" in paths and accepts underscores in hotkey names,
// which environment variables cannot avoid.
func (c *Config) normalize() {
	c.Log.File = expandHome(c.Log.File)
	c.History.Path = expandHome(c.History.Path)
	c.Plugins.File.Path = expandHome(c.Plugins.File.Path)
	c.Plugins.Template.Path = expandHome(c.Plugins.Template.Path)
	c.Plugins.Template.Output = expandHome(c.Plugins.Template.Output)
	for i, p := range c.Plugins.Lua.Paths {
		c.Plugins.Lua.Paths[i] = expandHome(p)
	}

	if len(c.HotKeys) > 0 {
		hotkeys := make(map[string]string, len(c.HotKeys))
		for name, chord := range c.HotKeys {
			hotkeys[strings.ReplaceAll(name, "_", "-")] = chord
		}
		c.HotKeys = hotkeys
	}
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func displayPath(path string) string {
	if path == "" {
		return "environment"
	}
	return path
}

// DefaultDir returns the user configuration directory.
func DefaultDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "blockmark")
	}
	return filepath.Join(".", ".blockmark")
}

// Find returns the first existing config file in dir, checking
// config.toml, config.yaml and config.yml. It returns "" when none exists.
func Find(dir string) string {
	for _, name := range []string{"config.toml", "config.yaml", "config.yml"} {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// LogLevel returns the configured log level.
func (c *Config) LogLevel() logging.Level {
	level, _ := logging.ParseLevel(c.Log.Level)
	return level
}

// NewRenderer builds the configured renderer.
func (c *Config) NewRenderer() (renderer.Renderer, error) {
	return renderer.New(c.Renderer.Name, renderer.Options{
		UnsafeHTML: c.Renderer.UnsafeHTML,
		GFM:        c.Renderer.GFM,
	})
}

// BuildHotKeys returns the standard hotkeys with the configured bindings
// applied.
func (c *Config) BuildHotKeys() ([]editor.HotKey, error) {
	return editor.Bind(editor.DefaultHotKeys(), c.HotKeys)
}

// UndoRedoChords returns the parsed undo and redo chords. A chord that is
// unset reports ok false.
func (c *Config) UndoRedoChords() (undo, redo key.Event, ok bool) {
	if c.History.Undo == "" || c.History.Redo == "" {
		return key.Event{}, key.Event{}, false
	}
	undo, err := key.Parse(c.History.Undo)
	if err != nil {
		return key.Event{}, key.Event{}, false
	}
	redo, err = key.Parse(c.History.Redo)
	if err != nil {
		return key.Event{}, key.Event{}, false
	}
	return undo, redo, true
}

// HTTPTimeout returns the parsed HTTP timeout, zero when unset.
func (c *Config) HTTPTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Plugins.HTTP.Timeout)
	return d
}
