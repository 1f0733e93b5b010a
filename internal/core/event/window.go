package event

import "fmt"

type windowEvent struct {
	windowID WindowID
}

func (e windowEvent) WindowID() WindowID { return e.windowID }

// WindowResize fires after a window's size changed.
type WindowResize struct {
	windowEvent
	width, height int
}

func NewWindowResize(id WindowID, width, height int) WindowResize {
	return WindowResize{windowEvent: windowEvent{id}, width: width, height: height}
}

func (WindowResize) Type() Type    { return TypeWindowResize }
func (e WindowResize) Width() int  { return e.width }
func (e WindowResize) Height() int { return e.height }

func (e WindowResize) String() string {
	return fmt.Sprintf("WindowResize: ID[%d] Size[%d - %d]", e.windowID, e.width, e.height)
}

// WindowClose fires when a window is asked to close.
type WindowClose struct{ windowEvent }

func NewWindowClose(id WindowID) WindowClose { return WindowClose{windowEvent{id}} }

func (WindowClose) Type() Type { return TypeWindowClose }

func (e WindowClose) String() string { return fmt.Sprintf("WindowClose: ID[%d]", e.windowID) }

// WindowFocus fires when a window gains input focus.
type WindowFocus struct{ windowEvent }

func NewWindowFocus(id WindowID) WindowFocus { return WindowFocus{windowEvent{id}} }

func (WindowFocus) Type() Type { return TypeWindowFocus }

func (e WindowFocus) String() string { return fmt.Sprintf("WindowFocus: ID[%d]", e.windowID) }

// WindowLostFocus fires when a window loses input focus.
type WindowLostFocus struct{ windowEvent }

func NewWindowLostFocus(id WindowID) WindowLostFocus { return WindowLostFocus{windowEvent{id}} }

func (WindowLostFocus) Type() Type { return TypeWindowLostFocus }

func (e WindowLostFocus) String() string {
	return fmt.Sprintf("WindowLostFocus: ID[%d]", e.windowID)
}

// WindowMoved fires when a window's position changed.
type WindowMoved struct {
	windowEvent
	x, y int
}

func NewWindowMoved(id WindowID, x, y int) WindowMoved {
	return WindowMoved{windowEvent: windowEvent{id}, x: x, y: y}
}

func (WindowMoved) Type() Type { return TypeWindowMoved }
func (e WindowMoved) X() int   { return e.x }
func (e WindowMoved) Y() int   { return e.y }

func (e WindowMoved) String() string {
	return fmt.Sprintf("WindowMoved: ID[%d] Moved[%d, %d]", e.windowID, e.x, e.y)
}
