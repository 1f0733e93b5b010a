package event

import "github.com/IlyaYakubovichh/Gojo/internal/core/assert"

// WindowScopedEvent is an event kind that reports its source window.
type WindowScopedEvent interface {
	Event
	WindowScoped
}

// WindowFilter returns a handler that forwards to fn only for events from
// target.
func WindowFilter[E WindowScopedEvent](target WindowID, fn func(E)) func(E) {
	return func(e E) {
		if e.WindowID() == target {
			fn(e)
		}
	}
}

// AddWindowListener registers fn for events of kind E coming from target.
func AddWindowListener[E WindowScopedEvent](d *Dispatcher, target WindowID, fn func(E)) {
	assert.That(d.log, fn != nil, category, "attempting to add an empty window callback")
	if fn == nil {
		return
	}
	AddListener(d, WindowFilter(target, fn))
}

// WindowOf extracts the source window of e if its kind carries one.
func WindowOf(e Event) (WindowID, bool) {
	if ws, ok := e.(WindowScoped); ok {
		return ws.WindowID(), true
	}
	return 0, false
}
