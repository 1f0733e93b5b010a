package event

// Listener is a type-erased event handler. Execute runs the wrapped handler
// only for events of the kind the listener was built for; any other event is
// ignored, so a listener stored under the wrong tag is harmless.
type Listener interface {
	Execute(e Event)
	Tag() Type
}

type typedListener[E Event] struct {
	tag Type
	fn  func(E)
}

// Wrap adapts a handler for kind E into a Listener. A nil fn yields nil.
func Wrap[E Event](fn func(E)) Listener {
	if fn == nil {
		return nil
	}
	return &typedListener[E]{tag: TypeOf[E](), fn: fn}
}

func (l *typedListener[E]) Tag() Type { return l.tag }

func (l *typedListener[E]) Execute(e Event) {
	if e == nil || e.Type() != l.tag {
		return
	}
	typed, ok := e.(E)
	if !ok {
		return
	}
	l.fn(typed)
}

type erasedListener struct {
	tag Type
	fn  func(Event)
}

// Erased builds a Listener for tag whose handler receives the event without
// a downcast. Used by sinks that treat every kind uniformly (scripting,
// journal). The tag check still applies. A nil fn yields nil.
func Erased(tag Type, fn func(Event)) Listener {
	if fn == nil {
		return nil
	}
	return &erasedListener{tag: tag, fn: fn}
}

func (l *erasedListener) Tag() Type { return l.tag }

func (l *erasedListener) Execute(e Event) {
	if e == nil || e.Type() != l.tag {
		return
	}
	l.fn(e)
}
