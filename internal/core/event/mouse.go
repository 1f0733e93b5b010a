package event

import "fmt"

// MouseMoved fires when the cursor moves inside a window.
type MouseMoved struct {
	windowID WindowID
	x, y     float32
}

func NewMouseMoved(id WindowID, x, y float32) MouseMoved {
	return MouseMoved{windowID: id, x: x, y: y}
}

func (MouseMoved) Type() Type           { return TypeMouseMoved }
func (e MouseMoved) WindowID() WindowID { return e.windowID }
func (e MouseMoved) X() float32         { return e.x }
func (e MouseMoved) Y() float32         { return e.y }

func (e MouseMoved) String() string {
	return fmt.Sprintf("MouseMoved: ID[%d] Pos[%g, %g]", e.windowID, e.x, e.y)
}

// MouseScrolled fires on wheel movement.
type MouseScrolled struct {
	windowID         WindowID
	xOffset, yOffset float32
}

func NewMouseScrolled(id WindowID, xOffset, yOffset float32) MouseScrolled {
	return MouseScrolled{windowID: id, xOffset: xOffset, yOffset: yOffset}
}

func (MouseScrolled) Type() Type           { return TypeMouseScrolled }
func (e MouseScrolled) WindowID() WindowID { return e.windowID }
func (e MouseScrolled) XOffset() float32   { return e.xOffset }
func (e MouseScrolled) YOffset() float32   { return e.yOffset }

func (e MouseScrolled) String() string {
	return fmt.Sprintf("MouseScrolled: ID[%d] Offset[%g, %g]", e.windowID, e.xOffset, e.yOffset)
}

type mouseButtonEvent struct {
	windowID WindowID
	button   int
}

func (e mouseButtonEvent) WindowID() WindowID { return e.windowID }
func (e mouseButtonEvent) Button() int        { return e.button }

// MouseButtonPressed fires when a mouse button goes down.
type MouseButtonPressed struct{ mouseButtonEvent }

func NewMouseButtonPressed(id WindowID, button int) MouseButtonPressed {
	return MouseButtonPressed{mouseButtonEvent{windowID: id, button: button}}
}

func (MouseButtonPressed) Type() Type { return TypeMouseButtonPressed }

func (e MouseButtonPressed) String() string {
	return fmt.Sprintf("MouseButtonPressed: ID[%d] Button[%d]", e.windowID, e.button)
}

// MouseButtonReleased fires when a mouse button goes up.
type MouseButtonReleased struct{ mouseButtonEvent }

func NewMouseButtonReleased(id WindowID, button int) MouseButtonReleased {
	return MouseButtonReleased{mouseButtonEvent{windowID: id, button: button}}
}

func (MouseButtonReleased) Type() Type { return TypeMouseButtonReleased }

func (e MouseButtonReleased) String() string {
	return fmt.Sprintf("MouseButtonReleased: ID[%d] Button[%d]", e.windowID, e.button)
}
