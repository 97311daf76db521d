package editor

// Plugin capabilities. A plugin implements any subset; the editor informs
// every plugin implementing a capability, in registration order.

// EditorSetter receives the editor once during initialization.
type EditorSetter interface {
	SetEditor(e *Editor)
}

// MarkupGetter supplies the initial markup in place of Options.Markup.
// Only the first registered MarkupGetter is consulted.
type MarkupGetter interface {
	OnGetMarkup() (string, error)
}

// PreIniter is informed before the initial markup is loaded. It may modify
// the options; Markup, Renderer and HotKeys are read again afterwards.
type PreIniter interface {
	OnPreInit(container string, opts *Options) error
}

// PostIniter is informed once the initial markup is loaded.
type PostIniter interface {
	OnPostInit(fullMarkup, fullHTML string) error
}

// PreStartEditinger is informed before a block enters edit mode.
type PreStartEditinger interface {
	OnPreStartEditing(b *Block) error
}

// PostStartEditinger is informed after a block enters edit mode.
type PostStartEditinger interface {
	OnPostStartEditing(b *Block) error
}

// PreStopEditinger is informed when an edit session starts to end.
type PreStopEditinger interface {
	OnPreStopEditing(b *Block) error
}

// PostStopEditinger is informed once an edit session has ended.
type PostStopEditinger interface {
	OnPostStopEditing(b *Block) error
}

// MarkupChanger is informed when an edit session changed the document.
type MarkupChanger interface {
	OnMarkupChange(fullMarkup, fullHTML string) error
}

// FuncPlugin adapts host callbacks to plugin capabilities. Nil fields are
// skipped.
type FuncPlugin struct {
	PreInit      func(container string, opts *Options) error
	PostInit     func(fullMarkup, fullHTML string) error
	MarkupChange func(fullMarkup, fullHTML string) error
}

// Name implements event.Named.
func (FuncPlugin) Name() string { return "options" }

// OnPreInit implements PreIniter.
func (p FuncPlugin) OnPreInit(container string, opts *Options) error {
	if p.PreInit == nil {
		return nil
	}
	return p.PreInit(container, opts)
}

// OnPostInit implements PostIniter.
func (p FuncPlugin) OnPostInit(fullMarkup, fullHTML string) error {
	if p.PostInit == nil {
		return nil
	}
	return p.PostInit(fullMarkup, fullHTML)
}

// OnMarkupChange implements MarkupChanger.
func (p FuncPlugin) OnMarkupChange(fullMarkup, fullHTML string) error {
	if p.MarkupChange == nil {
		return nil
	}
	return p.MarkupChange(fullMarkup, fullHTML)
}

func (p FuncPlugin) empty() bool {
	return p.PreInit == nil && p.PostInit == nil && p.MarkupChange == nil
}
