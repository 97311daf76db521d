package event

// Name identifies a lifecycle event.
type Name string

// Lifecycle events, in the order an editor first emits them.
const (
	SetEditor        Name = "setEditor"
	GetMarkup        Name = "onGetMarkup"
	PreInit          Name = "preInit"
	PostInit         Name = "postInit"
	PreStartEditing  Name = "preStartEditing"
	PostStartEditing Name = "postStartEditing"
	PreStopEditing   Name = "preStopEditing"
	PostStopEditing  Name = "postStopEditing"
	MarkupChange     Name = "markupChange"
)

// HotKey labels errors returned by hotkey actions. It is not a lifecycle
// event and plugins never receive it.
const HotKey Name = "hotkey"

// Names lists every lifecycle event.
func Names() []Name {
	return []Name{
		SetEditor, GetMarkup, PreInit, PostInit,
		PreStartEditing, PostStartEditing,
		PreStopEditing, PostStopEditing,
		MarkupChange,
	}
}

// String returns the event name.
func (n Name) String() string {
	return string(n)
}

// Stats contains bus statistics.
type Stats struct {
	// Plugins is the number of registered plugins.
	Plugins int

	// EventsInformed is the number of Inform calls.
	EventsInformed uint64

	// HandlersExecuted is the number of handler invocations.
	HandlersExecuted uint64

	// HandlerErrors is the number of handlers that returned an error.
	HandlerErrors uint64
}
