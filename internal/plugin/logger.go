package plugin

import (
	"github.com/dshills/blockmark/internal/editor"
	"github.com/dshills/blockmark/internal/event"
	"github.com/dshills/blockmark/internal/logging"
)

// EventLogger logs every lifecycle event at debug level.
type EventLogger struct {
	log *logging.Logger
}

// NewEventLogger creates an EventLogger writing to l.
func NewEventLogger(l *logging.Logger) *EventLogger {
	if l == nil {
		l = logging.Nop()
	}
	return &EventLogger{log: l.WithComponent("events")}
}

// Name implements event.Named.
func (*EventLogger) Name() string { return "event-logger" }

// OnPreInit implements editor.PreIniter.
func (l *EventLogger) OnPreInit(container string, opts *editor.Options) error {
	l.log.WithField("event", event.PreInit).Debug("container %q, %d bytes", container, len(opts.Markup))
	return nil
}

// OnPostInit implements editor.PostIniter.
func (l *EventLogger) OnPostInit(fullMarkup, fullHTML string) error {
	l.document(event.PostInit, fullMarkup, fullHTML)
	return nil
}

// OnPreStartEditing implements editor.PreStartEditinger.
func (l *EventLogger) OnPreStartEditing(b *editor.Block) error {
	l.block(event.PreStartEditing, b)
	return nil
}

// OnPostStartEditing implements editor.PostStartEditinger.
func (l *EventLogger) OnPostStartEditing(b *editor.Block) error {
	l.block(event.PostStartEditing, b)
	return nil
}

// OnPreStopEditing implements editor.PreStopEditinger.
func (l *EventLogger) OnPreStopEditing(b *editor.Block) error {
	l.block(event.PreStopEditing, b)
	return nil
}

// OnPostStopEditing implements editor.PostStopEditinger.
func (l *EventLogger) OnPostStopEditing(b *editor.Block) error {
	l.block(event.PostStopEditing, b)
	return nil
}

// OnMarkupChange implements editor.MarkupChanger.
func (l *EventLogger) OnMarkupChange(fullMarkup, fullHTML string) error {
	l.document(event.MarkupChange, fullMarkup, fullHTML)
	return nil
}

func (l *EventLogger) document(name event.Name, markup, html string) {
	l.log.WithField("event", name).Debug("markup %d bytes, html %d bytes", len(markup), len(html))
}

func (l *EventLogger) block(name event.Name, b *editor.Block) {
	l.log.WithFields(map[string]any{
		"event": name,
		"block": b.ID().String(),
	}).Debug("%d bytes", len(b.Markup()))
}
