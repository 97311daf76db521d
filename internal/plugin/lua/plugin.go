package lua

import (
	"fmt"
	"path/filepath"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/blockmark/internal/editor"
	"github.com/dshills/blockmark/internal/logging"
)

// Handler globals a script may define.
const (
	fnGetMarkup        = "onGetMarkup"
	fnPreInit          = "onPreInit"
	fnPostInit         = "onPostInit"
	fnPreStartEditing  = "onPreStartEditing"
	fnPostStartEditing = "onPostStartEditing"
	fnPreStopEditing   = "onPreStopEditing"
	fnPostStopEditing  = "onPostStopEditing"
	fnMarkupChange     = "onMarkupChange"
)

// ModuleName is the global table scripts use to reach the editor.
const ModuleName = "blockmark"

// Plugin is an editor plugin backed by a Lua script.
type Plugin struct {
	name   string
	state  *State
	editor *editor.Editor
	log    *logging.Logger

	// calling is set while a handler runs; events raised by the script's
	// own editor calls are not delivered back to it.
	calling bool
}

// Option configures a Plugin.
type Option func(*pluginConfig)

type pluginConfig struct {
	logger    *logging.Logger
	stateOpts []StateOption
}

// WithLogger sets the logger behind blockmark.log.
func WithLogger(l *logging.Logger) Option {
	return func(c *pluginConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithStateOptions passes options to the underlying State.
func WithStateOptions(opts ...StateOption) Option {
	return func(c *pluginConfig) {
		c.stateOpts = append(c.stateOpts, opts...)
	}
}

// Load runs the script at path and returns the plugin it defines. The
// plugin is named after the file, or after its directory for init.lua and
// plugin.lua entry points.
func Load(path string, opts ...Option) (*Plugin, error) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if name == "init" || name == "plugin" {
		name = filepath.Base(filepath.Dir(path))
	}
	return load(name, opts, func(s *State) error { return s.DoFile(path) })
}

// LoadString runs code as a script named name.
func LoadString(name, code string, opts ...Option) (*Plugin, error) {
	return load(name, opts, func(s *State) error { return s.DoString(code) })
}

func load(name string, opts []Option, run func(*State) error) (*Plugin, error) {
	cfg := pluginConfig{logger: logging.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &Plugin{
		name:  name,
		state: NewState(cfg.stateOpts...),
		log:   cfg.logger.WithComponent("lua").WithField("script", name),
	}
	p.state.RegisterModule(ModuleName, p.module())

	if err := run(p.state); err != nil {
		_ = p.state.Close()
		return nil, fmt.Errorf("load lua plugin %s: %w", name, err)
	}
	return p, nil
}

// Name implements event.Named.
func (p *Plugin) Name() string {
	return "lua:" + p.name
}

// Registration returns the value to register with the editor. It supplies
// the initial markup only when the script defines onGetMarkup.
func (p *Plugin) Registration() any {
	if p.state.HasFunction(fnGetMarkup) {
		return &markupPlugin{Plugin: p}
	}
	return p
}

// Close releases the Lua state.
func (p *Plugin) Close() error {
	return p.state.Close()
}

// SetEditor implements editor.EditorSetter.
func (p *Plugin) SetEditor(e *editor.Editor) {
	p.editor = e
}

// OnPreInit implements editor.PreIniter. A string returned by the script
// replaces the initial markup.
func (p *Plugin) OnPreInit(container string, opts *editor.Options) error {
	ret, err := p.call(fnPreInit, lua.LString(container), lua.LString(opts.Markup))
	if err != nil {
		return err
	}
	if s, ok := ret.(lua.LString); ok {
		opts.Markup = string(s)
	}
	return nil
}

// OnPostInit implements editor.PostIniter.
func (p *Plugin) OnPostInit(fullMarkup, fullHTML string) error {
	_, err := p.call(fnPostInit, lua.LString(fullMarkup), lua.LString(fullHTML))
	return err
}

// OnPreStartEditing implements editor.PreStartEditinger.
func (p *Plugin) OnPreStartEditing(b *editor.Block) error {
	return p.callBlock(fnPreStartEditing, b)
}

// OnPostStartEditing implements editor.PostStartEditinger.
func (p *Plugin) OnPostStartEditing(b *editor.Block) error {
	return p.callBlock(fnPostStartEditing, b)
}

// OnPreStopEditing implements editor.PreStopEditinger.
func (p *Plugin) OnPreStopEditing(b *editor.Block) error {
	return p.callBlock(fnPreStopEditing, b)
}

// OnPostStopEditing implements editor.PostStopEditinger.
func (p *Plugin) OnPostStopEditing(b *editor.Block) error {
	return p.callBlock(fnPostStopEditing, b)
}

// OnMarkupChange implements editor.MarkupChanger.
func (p *Plugin) OnMarkupChange(fullMarkup, fullHTML string) error {
	_, err := p.call(fnMarkupChange, lua.LString(fullMarkup), lua.LString(fullHTML))
	return err
}

type markupPlugin struct {
	*Plugin
}

// OnGetMarkup implements editor.MarkupGetter.
func (p *markupPlugin) OnGetMarkup() (string, error) {
	ret, err := p.call(fnGetMarkup)
	if err != nil {
		return "", err
	}
	if ret.Type() != lua.LTString {
		return "", fmt.Errorf("%s: %s must return a string, got %s", p.Name(), fnGetMarkup, ret.Type())
	}
	return ret.String(), nil
}

// call invokes fn if the script defines it and returns its first result.
func (p *Plugin) call(fn string, args ...lua.LValue) (lua.LValue, error) {
	if p.calling || !p.state.HasFunction(fn) {
		return lua.LNil, nil
	}
	p.calling = true
	ret, err := p.state.Call(fn, args...)
	p.calling = false
	if err != nil {
		return lua.LNil, fmt.Errorf("%s: %s: %w", p.Name(), fn, err)
	}
	if len(ret) == 0 {
		return lua.LNil, nil
	}
	return ret[0], nil
}

func (p *Plugin) callBlock(fn string, b *editor.Block) error {
	if p.calling || !p.state.HasFunction(fn) {
		return nil
	}
	_, err := p.call(fn, p.blockTable(b))
	return err
}

func (p *Plugin) blockTable(b *editor.Block) *lua.LTable {
	L := p.state.L
	t := L.NewTable()
	t.RawSetString("id", lua.LNumber(b.ID()))
	t.RawSetString("markup", lua.LString(b.Markup()))
	t.RawSetString("html", lua.LString(b.HTML()))
	t.RawSetString("editing", lua.LBool(b.Editing()))
	return t
}

func (p *Plugin) module() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"full_markup": func(L *lua.LState) int {
			e := p.mustEditor(L)
			L.Push(lua.LString(e.FullMarkup()))
			return 1
		},
		"set_markup": func(L *lua.LState) int {
			e := p.mustEditor(L)
			if err := e.SetMarkup(L.CheckString(1)); err != nil {
				L.RaiseError("%v", err)
			}
			return 0
		},
		"hide_editor": func(L *lua.LState) int {
			e := p.mustEditor(L)
			if err := e.HideEditor(); err != nil {
				L.RaiseError("%v", err)
			}
			return 0
		},
		"block_count": func(L *lua.LState) int {
			e := p.mustEditor(L)
			L.Push(lua.LNumber(e.Len()))
			return 1
		},
		"log": func(L *lua.LState) int {
			p.log.Info("%s", L.CheckString(1))
			return 0
		},
	}
}

func (p *Plugin) mustEditor(L *lua.LState) *editor.Editor {
	if p.editor == nil {
		L.RaiseError("%v", ErrNoEditor)
	}
	return p.editor
}
