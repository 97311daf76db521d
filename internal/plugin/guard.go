package plugin

// ContentGuard tracks unsaved changes so a host can ask before quitting.
type ContentGuard struct {
	enabled bool
	dirty   bool
}

// NewContentGuard creates an enabled guard.
func NewContentGuard() *ContentGuard {
	return &ContentGuard{enabled: true}
}

// Name implements event.Named.
func (*ContentGuard) Name() string { return "content-guard" }

// OnMarkupChange implements editor.MarkupChanger.
func (g *ContentGuard) OnMarkupChange(string, string) error {
	g.dirty = true
	return nil
}

// Enable turns the guard on.
func (g *ContentGuard) Enable() { g.enabled = true }

// Disable turns the guard off, e.g. while the host saves and exits.
func (g *ContentGuard) Disable() { g.enabled = false }

// MarkSaved clears the unsaved flag.
func (g *ContentGuard) MarkSaved() { g.dirty = false }

// Dirty reports whether the guard is enabled and changes are unsaved.
func (g *ContentGuard) Dirty() bool {
	return g.enabled && g.dirty
}

// Check returns ErrUnsavedChanges when Dirty.
func (g *ContentGuard) Check() error {
	if g.Dirty() {
		return ErrUnsavedChanges
	}
	return nil
}
