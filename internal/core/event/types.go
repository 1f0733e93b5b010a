// Package event is the engine's typed event core: the closed set of event
// kinds, the type-erased listener wrapper, and the Dispatcher that delivers
// events immediately or through a deferred queue drained by the main loop.
package event

import "fmt"

// Type is the discriminator of a concrete event kind.
type Type uint8

const (
	TypeNone Type = iota

	// Keyboard
	TypeKeyReleased
	TypeKeyPressed
	TypeKeyTyped

	// Mouse
	TypeMouseButtonPressed
	TypeMouseButtonReleased
	TypeMouseMoved
	TypeMouseScrolled

	// Window
	TypeWindowClose
	TypeWindowResize
	TypeWindowMoved
	TypeWindowFocus
	TypeWindowLostFocus

	typeCount
)

var typeNames = [typeCount]string{
	TypeNone:                "None",
	TypeKeyReleased:         "KeyReleased",
	TypeKeyPressed:          "KeyPressed",
	TypeKeyTyped:            "KeyTyped",
	TypeMouseButtonPressed:  "MouseButtonPressed",
	TypeMouseButtonReleased: "MouseButtonReleased",
	TypeMouseMoved:          "MouseMoved",
	TypeMouseScrolled:       "MouseScrolled",
	TypeWindowClose:         "WindowClose",
	TypeWindowResize:        "WindowResize",
	TypeWindowMoved:         "WindowMoved",
	TypeWindowFocus:         "WindowFocus",
	TypeWindowLostFocus:     "WindowLostFocus",
}

func (t Type) String() string {
	if t < typeCount {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// Valid reports whether t names a concrete event kind.
func (t Type) Valid() bool { return t > TypeNone && t < typeCount }

// Types returns every concrete event kind in declaration order.
func Types() []Type {
	out := make([]Type, 0, typeCount-1)
	for t := TypeNone + 1; t < typeCount; t++ {
		out = append(out, t)
	}
	return out
}

// ParseType looks a kind up by its String() name.
func ParseType(name string) (Type, bool) {
	for t := TypeNone + 1; t < typeCount; t++ {
		if typeNames[t] == name {
			return t, true
		}
	}
	return TypeNone, false
}

// WindowID identifies the logical window an event came from.
type WindowID uint32

// Event is implemented by every concrete event kind. Kinds are immutable
// value types; Type must return the same constant for every value of a kind,
// including the zero value.
type Event interface {
	Type() Type
	String() string
}

// WindowScoped is the capability of events that carry a source window.
type WindowScoped interface {
	WindowID() WindowID
}

// TypeOf returns the static tag of kind E.
func TypeOf[E Event]() Type {
	var zero E
	return zero.Type()
}
