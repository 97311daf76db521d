package host

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/blockmark/internal/editor"
	"github.com/dshills/blockmark/internal/event"
	"github.com/dshills/blockmark/internal/input/key"
	"github.com/dshills/blockmark/internal/logging"
)

// Guard reports unsaved changes before quitting.
type Guard interface {
	Check() error
}

// History steps through document snapshots.
type History interface {
	Undo() error
	Redo() error
}

// Options configures a Host.
type Options struct {
	Theme  *Theme
	Logger *logging.Logger

	// Guard, when set, makes the first quit request with unsaved changes
	// only warn.
	Guard Guard

	// History enables UndoKey and RedoKey outside edit mode.
	History History
	UndoKey key.Event
	RedoKey key.Event

	// QuitKey defaults to Ctrl+q.
	QuitKey key.Event

	// Dismisser is broadcast when the terminal loses focus, ending the
	// edit sessions of every editor subscribed to it. Without one only
	// this host's editor is hidden.
	Dismisser *event.Dismisser
}

// Host runs an editor on a tcell screen.
type Host struct {
	screen tcell.Screen
	editor *editor.Editor
	theme  Theme
	log    *logging.Logger

	guard   Guard
	history History
	undoKey key.Event
	redoKey key.Event
	quitKey key.Event
	dismiss *event.Dismisser

	selected    int
	top         int
	status      string
	confirmQuit bool
	quit        bool
	initialized bool
}

type reloadEvent struct {
	markup string
}

type stopEvent struct{}

// New creates a host for e drawing on screen.
func New(screen tcell.Screen, e *editor.Editor, opts Options) *Host {
	h := &Host{
		screen:  screen,
		editor:  e,
		theme:   DefaultTheme(),
		log:     logging.Nop(),
		guard:   opts.Guard,
		history: opts.History,
		undoKey: opts.UndoKey,
		redoKey: opts.RedoKey,
		quitKey: opts.QuitKey,
		dismiss: opts.Dismisser,
	}
	if opts.Theme != nil {
		h.theme = *opts.Theme
	}
	if opts.Logger != nil {
		h.log = opts.Logger.WithComponent("host")
	}
	if h.quitKey == (key.Event{}) {
		h.quitKey = key.MustParse("Ctrl+q")
	}
	return h
}

// Init initializes the screen. Run calls it when needed.
func (h *Host) Init() error {
	if h.initialized {
		return nil
	}
	if err := h.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	h.screen.SetStyle(h.theme.Text)
	h.screen.EnableFocus()
	h.initialized = true
	return nil
}

// Run draws the document and handles events until the user quits. The
// screen is finalized on return.
func (h *Host) Run() error {
	if err := h.Init(); err != nil {
		return err
	}
	defer h.screen.Fini()

	for !h.quit {
		h.Draw()
		ev := h.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if err := h.HandleEvent(ev); err != nil {
			h.log.Warn("%v", err)
		}
	}
	return nil
}

// Reload replaces the document from another goroutine, e.g. a file watcher.
// Any open edit session is discarded.
func (h *Host) Reload(markup string) {
	if err := h.screen.PostEvent(tcell.NewEventInterrupt(reloadEvent{markup: markup})); err != nil {
		h.log.Warn("reload dropped: %v", err)
	}
}

// Stop ends Run from another goroutine, e.g. a signal handler. The open
// edit session is committed and the content guard is not consulted.
func (h *Host) Stop() {
	if err := h.screen.PostEvent(tcell.NewEventInterrupt(stopEvent{})); err != nil {
		h.log.Warn("stop dropped: %v", err)
	}
}

// Selected returns the index of the selected block.
func (h *Host) Selected() int {
	return h.selected
}

// Status returns the status line message.
func (h *Host) Status() string {
	return h.status
}

// Quitting reports whether the user has asked to quit.
func (h *Host) Quitting() bool {
	return h.quit
}

// HandleEvent processes one screen event. Errors are also shown on the
// status line.
func (h *Host) HandleEvent(ev tcell.Event) error {
	var err error
	switch ev := ev.(type) {
	case *tcell.EventResize:
		h.screen.Sync()
	case *tcell.EventFocus:
		if !ev.Focused {
			err = h.dismissAll()
		}
	case *tcell.EventInterrupt:
		switch data := ev.Data().(type) {
		case reloadEvent:
			err = h.reload(data.markup)
		case stopEvent:
			err = h.editor.HideEditor()
			h.quit = true
		}
	case *tcell.EventKey:
		if k, ok := ConvertKey(ev); ok {
			err = h.handleKey(k)
		}
	}
	if err != nil {
		h.status = err.Error()
	}
	return err
}

func (h *Host) dismissAll() error {
	var err error
	if h.dismiss != nil {
		err = h.dismiss.Broadcast()
	} else {
		err = h.editor.HideEditor()
	}
	h.syncSelection()
	return err
}

func (h *Host) reload(markup string) error {
	if err := h.editor.SetMarkup(markup); err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	h.clampSelection()
	h.status = "reloaded from disk"
	return nil
}

func (h *Host) handleKey(k key.Event) error {
	if k.Matches(h.quitKey) {
		return h.requestQuit()
	}
	h.confirmQuit = false
	h.status = ""

	if b := h.editor.Active(); b != nil {
		handled, err := h.editor.HandleKey(k)
		h.syncSelection()
		if handled || err != nil {
			return err
		}
		h.editText(b, k)
		return nil
	}
	return h.navigate(k)
}

func (h *Host) requestQuit() error {
	if err := h.editor.HideEditor(); err != nil {
		return err
	}
	h.syncSelection()
	if h.guard != nil && !h.confirmQuit {
		if err := h.guard.Check(); err != nil {
			h.confirmQuit = true
			h.status = "unsaved changes, press " + h.quitKey.String() + " again to quit"
			return nil
		}
	}
	h.quit = true
	return nil
}

func (h *Host) navigate(k key.Event) error {
	switch {
	case h.history != nil && h.undoKey != (key.Event{}) && k.Matches(h.undoKey):
		err := h.history.Undo()
		h.clampSelection()
		return err
	case h.history != nil && h.redoKey != (key.Event{}) && k.Matches(h.redoKey):
		err := h.history.Redo()
		h.clampSelection()
		return err
	}

	switch k.Key {
	case key.KeyUp:
		h.selected--
	case key.KeyDown:
		h.selected++
	case key.KeyHome, key.KeyPageUp:
		h.selected = 0
	case key.KeyEnd, key.KeyPageDown:
		h.selected = h.editor.Len() - 1
	case key.KeyEnter:
		return h.editSelected()
	case key.KeyRune:
		if !k.IsChar() {
			return nil
		}
		switch k.Rune {
		case 'k':
			h.selected--
		case 'j':
			h.selected++
		case 'e', 'i':
			return h.editSelected()
		case 'o':
			return h.openBlock()
		}
	}
	h.clampSelection()
	return nil
}

func (h *Host) editSelected() error {
	blocks := h.editor.Blocks()
	if len(blocks) == 0 {
		return h.openBlock()
	}
	h.clampSelection()
	b := blocks[h.selected]
	if err := b.Edit(); err != nil {
		return err
	}
	b.SetCursor(len(b.Markup()))
	return nil
}

// openBlock inserts an empty block after the selection and edits it.
func (h *Host) openBlock() error {
	nb, err := h.editor.CreateBlock("", "")
	if err != nil {
		return err
	}
	blocks := h.editor.Blocks()
	if len(blocks) == 0 {
		err = h.editor.Append(nb)
	} else {
		h.clampSelection()
		err = h.editor.InsertAfter(blocks[h.selected], nb)
	}
	if err != nil {
		return err
	}
	if err := nb.Edit(); err != nil {
		return err
	}
	h.syncSelection()
	return nil
}

func (h *Host) editText(b *editor.Block, k key.Event) {
	s, pos := b.Markup(), b.Cursor()

	if k.IsChar() {
		b.InsertAtCursor(string(k.Rune))
		return
	}
	if k.Modifiers != key.ModNone {
		return
	}

	switch k.Key {
	case key.KeyEnter:
		b.InsertAtCursor("\n")
	case key.KeyBackspace:
		if pos > 0 {
			from := prevGrapheme(s, pos)
			b.SetMarkup(deleteRange(s, from, pos))
			b.SetCursor(from)
		}
	case key.KeyDelete:
		if pos < len(s) {
			b.SetMarkup(deleteRange(s, pos, nextGrapheme(s, pos)))
			b.SetCursor(pos)
		}
	case key.KeyLeft:
		b.SetCursor(prevGrapheme(s, pos))
	case key.KeyRight:
		b.SetCursor(nextGrapheme(s, pos))
	case key.KeyUp:
		b.SetCursor(lineUp(s, pos))
	case key.KeyDown:
		b.SetCursor(lineDown(s, pos))
	case key.KeyHome:
		b.SetCursor(lineStart(s, pos))
	case key.KeyEnd:
		b.SetCursor(lineEnd(s, pos))
	}
}

// syncSelection selects the block being edited, if any.
func (h *Host) syncSelection() {
	if active := h.editor.Active(); active != nil {
		for i, b := range h.editor.Blocks() {
			if b == active {
				h.selected = i
				return
			}
		}
	}
	h.clampSelection()
}

func (h *Host) clampSelection() {
	h.selected = max(0, min(h.selected, h.editor.Len()-1))
}

// row is one screen line of the block list.
type row struct {
	text   string
	block  int
	style  tcell.Style
	active bool
}

// Draw renders the document and the status line.
func (h *Host) Draw() {
	width, height := h.screen.Size()
	h.screen.Fill(' ', h.theme.Text)
	bodyHeight := height - 1
	textWidth := width - 2

	rows, cursorRow, cursorCol := h.layout(textWidth)

	target := -1
	for i, r := range rows {
		if r.block == h.selected {
			target = i
			break
		}
	}
	if cursorRow >= 0 {
		target = cursorRow
	}
	if target >= 0 {
		if target < h.top {
			h.top = target
		} else if target >= h.top+bodyHeight {
			h.top = target - bodyHeight + 1
		}
	}
	h.top = max(0, min(h.top, len(rows)-1))

	for y := 0; y < bodyHeight && h.top+y < len(rows); y++ {
		r := rows[h.top+y]
		if r.block < 0 {
			continue
		}
		if r.active {
			for x := 0; x < width; x++ {
				h.screen.SetContent(x, y, ' ', nil, r.style)
			}
		}
		if r.block == h.selected {
			h.screen.SetContent(0, y, '▌', nil, h.theme.Accent)
		}
		drawString(h.screen, 2, y, width, r.text, r.style)
	}

	if cursorRow >= h.top && cursorRow < h.top+bodyHeight && cursorCol+2 < width {
		h.screen.ShowCursor(cursorCol+2, cursorRow-h.top)
	} else {
		h.screen.HideCursor()
	}

	h.drawStatus(width, height-1)
	h.screen.Show()
}

// layout returns the rows of the block list and, in edit mode, the cursor
// position in rows and display columns.
func (h *Host) layout(width int) (rows []row, cursorRow, cursorCol int) {
	cursorRow = -1
	active := h.editor.Active()

	for i, b := range h.editor.Blocks() {
		if i > 0 {
			rows = append(rows, row{block: -1})
		}

		if b == active {
			markup, pos := b.Markup(), b.Cursor()
			cursorRow = len(rows) + strings.Count(markup[:pos], "\n")
			cursorCol = column(markup, pos)
			for _, line := range strings.Split(markup, "\n") {
				rows = append(rows, row{text: line, block: i, style: h.theme.Active, active: true})
			}
			continue
		}

		lines := previewText(b.HTML())
		if len(lines) == 0 {
			rows = append(rows, row{text: "(empty)", block: i, style: h.theme.Muted})
			continue
		}
		for _, line := range lines {
			for _, piece := range wrap(line, width) {
				rows = append(rows, row{text: piece, block: i, style: h.theme.Text})
			}
		}
	}
	return rows, cursorRow, cursorCol
}

func (h *Host) drawStatus(width, y int) {
	for x := 0; x < width; x++ {
		h.screen.SetContent(x, y, ' ', nil, h.theme.Status)
	}

	mode := "VIEW"
	if h.editor.Active() != nil {
		mode = "EDIT"
	}
	left := fmt.Sprintf(" %s  block %d/%d", mode, min(h.selected+1, h.editor.Len()), h.editor.Len())
	if h.status != "" {
		left += "  " + h.status
	}
	drawString(h.screen, 0, y, width, left, h.theme.Status)
}

// drawString draws s from column x, clipped at maxX, one grapheme cluster
// per cell group. It returns the column after the last drawn cluster.
func drawString(s tcell.Screen, x, y, maxX int, text string, style tcell.Style) int {
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		w := g.Width()
		if w == 0 {
			continue
		}
		if x+w > maxX {
			break
		}
		runes := g.Runes()
		s.SetContent(x, y, runes[0], runes[1:], style)
		x += w
	}
	return x
}
