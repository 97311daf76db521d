package editor

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/dshills/blockmark/internal/event"
	"github.com/dshills/blockmark/internal/logging"
	"github.com/dshills/blockmark/internal/renderer"
)

// Editor is a document made of blocks.
type Editor struct {
	id        uuid.UUID
	container string

	renderer renderer.Renderer
	hotkeys  []HotKey
	bus      *event.Bus
	log      *logging.Logger

	dismisser   *event.Dismisser
	unsubscribe func()

	blocks map[BlockID]*Block
	order  []BlockID
	nextID BlockID
	active *Block

	closed bool
}

// New creates an editor for container, loads the initial markup and
// subscribes it to the dismiss broadcaster.
//
// Initialization runs in this order: the first MarkupGetter supplies the
// markup, every EditorSetter receives the editor, preInit is emitted, the
// markup is loaded, and postInit is emitted with the joined markup and its
// HTML.
func New(container string, opts Options) (*Editor, error) {
	opts.applyDefaults()

	plugins := slices.Clone(opts.Plugins)
	if fp := opts.funcPlugin(); !fp.empty() {
		plugins = append(plugins, fp)
	}
	bus, err := event.NewBus(plugins...)
	if err != nil {
		return nil, fmt.Errorf("register plugins: %w", err)
	}

	e := &Editor{
		id:        uuid.New(),
		container: container,
		renderer:  opts.Renderer,
		hotkeys:   opts.HotKeys,
		bus:       bus,
		dismisser: opts.Dismisser,
		blocks:    make(map[BlockID]*Block),
	}
	e.log = opts.Logger.WithComponent("editor").WithField("editor", e.id.String())

	if getter, ok := event.First[MarkupGetter](bus); ok {
		markup, err := getter.OnGetMarkup()
		if err != nil {
			return nil, &event.HandlerError{Event: event.GetMarkup, Plugin: fmt.Sprintf("%T", getter), Err: err}
		}
		opts.Markup = markup
	}

	if err := event.Inform(bus, event.SetEditor, func(p EditorSetter) error {
		p.SetEditor(e)
		return nil
	}); err != nil {
		return nil, err
	}

	if err := event.Inform(bus, event.PreInit, func(p PreIniter) error {
		return p.OnPreInit(container, &opts)
	}); err != nil {
		return nil, err
	}
	if opts.Renderer != nil {
		e.renderer = opts.Renderer
	}
	if opts.HotKeys != nil {
		e.hotkeys = opts.HotKeys
	}

	if err := e.SetMarkup(opts.Markup); err != nil {
		return nil, err
	}

	fullHTML, err := e.FullHTML()
	if err != nil {
		return nil, err
	}
	if err := event.Inform(bus, event.PostInit, func(p PostIniter) error {
		return p.OnPostInit(e.FullMarkup(), fullHTML)
	}); err != nil {
		return nil, err
	}

	e.unsubscribe = e.dismisser.Subscribe(e.id, e.HideEditor)
	e.log.Debug("initialized %q with %d blocks", container, len(e.order))
	return e, nil
}

// ID returns the editor's identity.
func (e *Editor) ID() uuid.UUID {
	return e.id
}

// Container returns the container name the editor was created for.
func (e *Editor) Container() string {
	return e.container
}

// Renderer returns the active renderer.
func (e *Editor) Renderer() renderer.Renderer {
	return e.renderer
}

// SetRenderer replaces the renderer. Existing block HTML is kept until each
// block's next session end.
func (e *Editor) SetRenderer(r renderer.Renderer) {
	if r != nil {
		e.renderer = r
	}
}

// HotKeys returns the hotkey table in priority order.
func (e *Editor) HotKeys() []HotKey {
	return slices.Clone(e.hotkeys)
}

// Bus returns the plugin bus.
func (e *Editor) Bus() *event.Bus {
	return e.bus
}

// Close ends any open session and unsubscribes from the dismiss
// broadcaster. Calling Close more than once is harmless.
func (e *Editor) Close() error {
	if e.closed {
		return nil
	}
	err := e.HideEditor()
	if e.unsubscribe != nil {
		e.unsubscribe()
	}
	e.closed = true
	return err
}

// Len returns the number of blocks in the document.
func (e *Editor) Len() int {
	return len(e.order)
}

// Blocks returns the document's blocks in order.
func (e *Editor) Blocks() []*Block {
	out := make([]*Block, len(e.order))
	for i, id := range e.order {
		out[i] = e.blocks[id]
	}
	return out
}

// Block returns the attached block with the given id.
func (e *Editor) Block(id BlockID) (*Block, bool) {
	b, ok := e.blocks[id]
	return b, ok
}

// Active returns the block being edited, or nil.
func (e *Editor) Active() *Block {
	return e.active
}

// SetMarkup replaces the whole document. No session is ended and no
// markupChange is emitted; a block being edited is discarded.
func (e *Editor) SetMarkup(markup string) error {
	if e.closed {
		return ErrClosed
	}

	pieces := renderer.Split(e.renderer, markup)
	created := make([]*Block, 0, len(pieces))
	for _, piece := range pieces {
		b, err := e.CreateBlock(piece)
		if err != nil {
			return err
		}
		created = append(created, b)
	}

	e.active = nil
	clear(e.blocks)
	e.order = e.order[:0]
	for _, b := range created {
		e.attach(b, len(e.order))
	}
	return nil
}

// CreateBlock returns a detached block holding text. The HTML is rendered
// unless given. Attach the block with InsertAfter or Append.
func (e *Editor) CreateBlock(text string, html ...string) (*Block, error) {
	var rendered string
	if len(html) > 0 {
		rendered = html[0]
	} else {
		var err error
		if rendered, err = e.renderer.Render(text); err != nil {
			return nil, fmt.Errorf("render block: %w", err)
		}
	}

	b := &Block{
		id:        e.nextID,
		editor:    e,
		markup:    text,
		html:      rendered,
		committed: text,
	}
	e.nextID++
	return b, nil
}

// InsertAfter attaches b directly after anchor.
func (e *Editor) InsertAfter(anchor, b *Block) error {
	if err := e.checkDetached(b); err != nil {
		return err
	}
	i := e.indexOf(anchor)
	if i < 0 {
		return fmt.Errorf("insert after %v: %w", anchor.ID(), ErrBlockNotFound)
	}
	e.attach(b, i+1)
	return nil
}

// Append attaches b at the end of the document.
func (e *Editor) Append(b *Block) error {
	if err := e.checkDetached(b); err != nil {
		return err
	}
	e.attach(b, len(e.order))
	return nil
}

// FullMarkup joins every block's markup in document order.
func (e *Editor) FullMarkup() string {
	parts := make([]string, len(e.order))
	for i, id := range e.order {
		parts[i] = e.blocks[id].markup
	}
	return renderer.Join(e.renderer, parts)
}

// FullHTML renders the joined markup as one document.
func (e *Editor) FullHTML() (string, error) {
	out, err := e.renderer.Render(e.FullMarkup())
	if err != nil {
		return "", fmt.Errorf("render document: %w", err)
	}
	return out, nil
}

// HideEditor ends the open edit session, if any.
func (e *Editor) HideEditor() error {
	if e.active == nil {
		return nil
	}
	return e.StopEditing(e.active)
}

// StartEditing puts b in edit mode, ending any other session first.
// Starting a session on the block already being edited does nothing.
func (e *Editor) StartEditing(b *Block) error {
	if e.closed {
		return ErrClosed
	}
	if b == nil || b.editor != e {
		return ErrForeignBlock
	}
	if e.active == b {
		return nil
	}
	if err := e.HideEditor(); err != nil {
		return err
	}
	if e.indexOf(b) < 0 {
		return fmt.Errorf("start editing %v: %w", b.id, ErrBlockNotFound)
	}

	if err := event.Inform(e.bus, event.PreStartEditing, func(p PreStartEditinger) error {
		return p.OnPreStartEditing(b)
	}); err != nil {
		return err
	}
	b.committed = b.markup
	e.active = b
	e.log.Debug("editing %v", b.id)
	return event.Inform(e.bus, event.PostStartEditing, func(p PostStartEditinger) error {
		return p.OnPostStartEditing(b)
	})
}

// StopEditing ends b's edit session. It does nothing unless b is being
// edited.
//
// The block's markup is split again. An empty block is removed; otherwise
// the first piece stays in b and each further piece becomes a new block
// after the previous one. When the markup differs from the markup at the
// start of the session, markupChange is emitted once.
func (e *Editor) StopEditing(b *Block) error {
	if b == nil || e.active != b {
		return nil
	}
	e.active = nil

	if err := event.Inform(e.bus, event.PreStopEditing, func(p PreStopEditinger) error {
		return p.OnPreStopEditing(b)
	}); err != nil {
		return err
	}

	text := b.markup
	if text == "" {
		e.detach(b)
		e.log.Debug("removed empty %v", b.id)
	} else if err := e.resplit(b, text); err != nil {
		return err
	}

	changed := text != b.committed
	b.committed = b.markup

	if changed {
		fullHTML, err := e.FullHTML()
		if err != nil {
			return err
		}
		if err := event.Inform(e.bus, event.MarkupChange, func(p MarkupChanger) error {
			return p.OnMarkupChange(e.FullMarkup(), fullHTML)
		}); err != nil {
			return err
		}
	}

	return event.Inform(e.bus, event.PostStopEditing, func(p PostStopEditinger) error {
		return p.OnPostStopEditing(b)
	})
}

// resplit renders every piece before mutating the document so a renderer
// failure leaves it untouched.
func (e *Editor) resplit(b *Block, text string) error {
	pieces := renderer.Split(e.renderer, text)
	if len(pieces) == 0 {
		pieces = []string{""}
	}

	html := make([]string, len(pieces))
	for i, piece := range pieces {
		out, err := e.renderer.Render(piece)
		if err != nil {
			return fmt.Errorf("render block: %w", err)
		}
		html[i] = out
	}

	b.markup, b.html = pieces[0], html[0]
	b.SetCursor(b.cursor)

	anchor := b
	for i := 1; i < len(pieces); i++ {
		nb, _ := e.CreateBlock(pieces[i], html[i])
		if err := e.InsertAfter(anchor, nb); err != nil {
			return err
		}
		anchor = nb
	}
	if len(pieces) > 1 {
		e.log.Debug("split %v into %d blocks", b.id, len(pieces))
	}
	return nil
}

func (e *Editor) checkDetached(b *Block) error {
	if e.closed {
		return ErrClosed
	}
	if b == nil || b.editor != e {
		return ErrForeignBlock
	}
	if _, ok := e.blocks[b.id]; ok {
		return fmt.Errorf("%v: %w", b.id, ErrBlockAttached)
	}
	return nil
}

func (e *Editor) attach(b *Block, at int) {
	e.blocks[b.id] = b
	e.order = slices.Insert(e.order, at, b.id)
}

func (e *Editor) detach(b *Block) {
	if i := e.indexOf(b); i >= 0 {
		e.order = slices.Delete(e.order, i, i+1)
	}
	delete(e.blocks, b.id)
}

func (e *Editor) indexOf(b *Block) int {
	if b == nil || b.editor != e {
		return -1
	}
	if cur, ok := e.blocks[b.id]; !ok || cur != b {
		return -1
	}
	return slices.Index(e.order, b.id)
}

func (e *Editor) sibling(b *Block, delta int) *Block {
	i := e.indexOf(b)
	if i < 0 {
		return nil
	}
	j := i + delta
	if j < 0 || j >= len(e.order) {
		return nil
	}
	return e.blocks[e.order[j]]
}
