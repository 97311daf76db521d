// Package event provides the plugin notification bus used by the editor.
//
// A Bus holds plugins in registration order. Plugins are plain values that
// opt in to lifecycle events by implementing small capability interfaces;
// Inform walks the plugins, calling the handler for each one that
// implements the requested capability:
//
//	err := event.Inform(bus, event.MarkupChange, func(p MarkupChanger) error {
//	    return p.OnMarkupChange(markup, html)
//	})
//
// Delivery is synchronous and ordered. The first handler error stops
// delivery and is returned wrapped in a *HandlerError.
//
// # Dismiss Broadcast
//
// A Dismisser fans a single "dismiss" signal out to every subscribed editor
// so that all active edit sessions close at once. Default returns the
// process-wide instance; NewDismisser builds an isolated one for tests or
// embedded hosts.
package event
