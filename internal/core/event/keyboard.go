package event

import "fmt"

type keyEvent struct {
	windowID WindowID
	keyCode  int
}

func (e keyEvent) WindowID() WindowID { return e.windowID }
func (e keyEvent) KeyCode() int       { return e.keyCode }

// KeyReleased fires when a key is released.
type KeyReleased struct{ keyEvent }

func NewKeyReleased(id WindowID, keyCode int) KeyReleased {
	return KeyReleased{keyEvent{windowID: id, keyCode: keyCode}}
}

func (KeyReleased) Type() Type { return TypeKeyReleased }

func (e KeyReleased) String() string {
	return fmt.Sprintf("KeyReleased: ID[%d] Key[%d]", e.windowID, e.keyCode)
}

// KeyPressed fires when a key is pressed or auto-repeats.
type KeyPressed struct{ keyEvent }

func NewKeyPressed(id WindowID, keyCode int) KeyPressed {
	return KeyPressed{keyEvent{windowID: id, keyCode: keyCode}}
}

func (KeyPressed) Type() Type { return TypeKeyPressed }

func (e KeyPressed) String() string {
	return fmt.Sprintf("KeyPressed: ID[%d] Key[%d]", e.windowID, e.keyCode)
}

// KeyTyped carries a typed character (text input). KeyCode is the code point.
type KeyTyped struct{ keyEvent }

func NewKeyTyped(id WindowID, keyCode int) KeyTyped {
	return KeyTyped{keyEvent{windowID: id, keyCode: keyCode}}
}

func (KeyTyped) Type() Type { return TypeKeyTyped }

func (e KeyTyped) String() string {
	return fmt.Sprintf("KeyTyped: ID[%d] Key[%d]", e.windowID, e.keyCode)
}
