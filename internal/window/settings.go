// Package window is the platform layer: it owns tcell screens, one per
// logical window, and translates their native events into engine events.
//
// Each window runs a pump goroutine that only forwards raw tcell events over
// a channel. Translation and delivery happen in Manager.PollEvents on the
// main loop goroutine, so the event core is never touched concurrently.
package window

import (
	"errors"

	"github.com/IlyaYakubovichh/Gojo/internal/core/event"
	"github.com/IlyaYakubovichh/Gojo/internal/data"
	"github.com/gdamore/tcell/v2"
)

// ID identifies a window. It is the same value carried by window-scoped events.
type ID = event.WindowID

// Settings describe a window. On a terminal, sizes and positions are in cells.
type Settings struct {
	XPos   uint16
	YPos   uint16
	Width  uint16
	Height uint16
	Title  string
}

func DefaultSettings() Settings {
	return Settings{XPos: 50, YPos: 50, Width: 800, Height: 600, Title: "GojoWindow"}
}

// FromEntry converts a window table entry.
func FromEntry(e data.WindowEntry) Settings {
	return Settings{XPos: e.XPos, YPos: e.YPos, Width: e.Width, Height: e.Height, Title: e.Title}
}

var (
	// ErrManagerNotInitialized is returned by CreateWindow when the backend
	// is unavailable or already shut down.
	ErrManagerNotInitialized = errors.New("window manager is not initialized")

	// ErrCreationFailed is returned when the native screen cannot be opened.
	ErrCreationFailed = errors.New("window creation failed")

	// ErrScreenInUse is returned when an exclusive backend already has a
	// live window.
	ErrScreenInUse = errors.New("screen already owned by another window")
)

// ScreenFactory opens the native surface backing a window.
type ScreenFactory func() (tcell.Screen, error)

// TerminalScreen opens the process's controlling terminal.
func TerminalScreen() (tcell.Screen, error) {
	return tcell.NewScreen()
}

// SimulationScreen opens an in-memory screen; used headless and in tests.
func SimulationScreen() (tcell.Screen, error) {
	return tcell.NewSimulationScreen("UTF-8"), nil
}

// ExclusiveScreen reports whether a screen setting names a single shared
// device, so that at most one window may be live on it. Every terminal
// window would otherwise open the same controlling tty.
func ExclusiveScreen(name string) bool {
	return name == "terminal"
}

// ScreenFor maps the [window] screen setting to a factory.
func ScreenFor(name string) (ScreenFactory, bool) {
	switch name {
	case "terminal":
		return TerminalScreen, true
	case "simulation":
		return SimulationScreen, true
	}
	return nil, false
}
