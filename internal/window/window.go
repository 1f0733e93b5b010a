package window

import (
	"unicode"

	"github.com/IlyaYakubovichh/Gojo/internal/core/event"
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

const pumpBuffer = 256

// Window is one logical window backed by a tcell screen.
type Window struct {
	id       ID
	settings Settings
	screen   tcell.Screen
	deliver  func(event.Event)
	log      *zap.Logger

	raw  chan tcell.Event
	quit chan struct{}
	done chan struct{}

	buttons     tcell.ButtonMask
	mouseX      int
	mouseY      int
	hasMouse    bool
	shouldClose bool
}

func newWindow(id ID, settings Settings, screen tcell.Screen, deliver func(event.Event), log *zap.Logger) (*Window, error) {
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.EnableFocus()

	w := &Window{
		id:       id,
		settings: settings,
		screen:   screen,
		deliver:  deliver,
		log:      log,
		raw:      make(chan tcell.Event, pumpBuffer),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go w.pump()
	return w, nil
}

// pump forwards native events until the screen is finalized.
func (w *Window) pump() {
	defer close(w.done)
	for {
		ev := w.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case w.raw <- ev:
		case <-w.quit:
			return
		}
	}
}

// poll translates and delivers up to max pending native events.
func (w *Window) poll(max int) int {
	n := 0
	for n < max {
		select {
		case ev := <-w.raw:
			n++
			for _, e := range w.translate(ev) {
				w.deliver(e)
			}
		default:
			return n
		}
	}
	return n
}

// translate maps one native event to engine events and updates the
// window's tracked state. Terminals report no key releases, so KeyReleased
// is never produced here.
func (w *Window) translate(ev tcell.Event) []event.Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		if isInterrupt(e) {
			w.shouldClose = true
			return []event.Event{event.NewWindowClose(w.id)}
		}
		out := []event.Event{event.NewKeyPressed(w.id, KeyCode(e))}
		if e.Key() == tcell.KeyRune {
			out = append(out, event.NewKeyTyped(w.id, int(e.Rune())))
		}
		return out

	case *tcell.EventMouse:
		return w.translateMouse(e)

	case *tcell.EventResize:
		width, height := e.Size()
		w.settings.Width = uint16(width)
		w.settings.Height = uint16(height)
		return []event.Event{event.NewWindowResize(w.id, width, height)}

	case *tcell.EventFocus:
		if e.Focused {
			return []event.Event{event.NewWindowFocus(w.id)}
		}
		return []event.Event{event.NewWindowLostFocus(w.id)}
	}
	return nil
}

const buttonBits = tcell.Button1 | tcell.Button2 | tcell.Button3 | tcell.Button4 |
	tcell.Button5 | tcell.Button6 | tcell.Button7 | tcell.Button8

func (w *Window) translateMouse(e *tcell.EventMouse) []event.Event {
	var out []event.Event
	x, y := e.Position()
	if !w.hasMouse || x != w.mouseX || y != w.mouseY {
		w.hasMouse = true
		w.mouseX, w.mouseY = x, y
		out = append(out, event.NewMouseMoved(w.id, float32(x), float32(y)))
	}

	btns := e.Buttons()
	switch {
	case btns&tcell.WheelUp != 0:
		out = append(out, event.NewMouseScrolled(w.id, 0, 1))
	case btns&tcell.WheelDown != 0:
		out = append(out, event.NewMouseScrolled(w.id, 0, -1))
	case btns&tcell.WheelLeft != 0:
		out = append(out, event.NewMouseScrolled(w.id, -1, 0))
	case btns&tcell.WheelRight != 0:
		out = append(out, event.NewMouseScrolled(w.id, 1, 0))
	}

	// Button1 is primary (0), Button2 secondary (1), Button3 middle (2).
	now := btns & buttonBits
	for i := 0; i < 8; i++ {
		bit := tcell.Button1 << i
		switch {
		case now&bit != 0 && w.buttons&bit == 0:
			out = append(out, event.NewMouseButtonPressed(w.id, i))
		case now&bit == 0 && w.buttons&bit != 0:
			out = append(out, event.NewMouseButtonReleased(w.id, i))
		}
	}
	w.buttons = now
	return out
}

func isInterrupt(e *tcell.EventKey) bool {
	if e.Key() == tcell.KeyCtrlC {
		return true
	}
	return e.Key() == tcell.KeyRune && e.Modifiers()&tcell.ModCtrl != 0 && unicode.ToLower(e.Rune()) == 'c'
}

// KeyCode returns the engine key code of a key event: the upper-case code
// point for printable keys, the tcell key value otherwise.
func KeyCode(e *tcell.EventKey) int {
	if e.Key() == tcell.KeyRune {
		return int(unicode.ToUpper(e.Rune()))
	}
	return int(e.Key())
}

// SetPosition records a new window position and reports it.
func (w *Window) SetPosition(x, y uint16) {
	w.settings.XPos, w.settings.YPos = x, y
	w.deliver(event.NewWindowMoved(w.id, int(x), int(y)))
}

// RequestClose asks the window to close, reporting WindowClose. The window
// is erased on the next cleanup.
func (w *Window) RequestClose() {
	w.shouldClose = true
	w.deliver(event.NewWindowClose(w.id))
}

func (w *Window) ShouldClose() bool {
	return w.shouldClose
}

func (w *Window) ID() ID {
	return w.id
}

func (w *Window) Title() string {
	return w.settings.Title
}

func (w *Window) Settings() Settings {
	return w.settings
}

// Resolution returns the last known width and height.
func (w *Window) Resolution() (uint16, uint16) { return w.settings.Width, w.settings.Height }

// Screen exposes the backing surface for rendering.
func (w *Window) Screen() tcell.Screen { return w.screen }

// destroy stops the pump and releases the screen.
func (w *Window) destroy() {
	close(w.quit)
	w.screen.Fini()
	<-w.done
}
