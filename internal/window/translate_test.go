package window

import (
	"reflect"
	"testing"

	"github.com/IlyaYakubovichh/Gojo/internal/core/event"
	"github.com/gdamore/tcell/v2"
)

func newBareWindow(id ID) *Window {
	return &Window{id: id, settings: DefaultSettings(), deliver: func(event.Event) {}}
}

func TestTranslate_Keys(t *testing.T) {
	w := newBareWindow(3)

	tests := []struct {
		name string
		in   *tcell.EventKey
		want []event.Event
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone),
			[]event.Event{event.NewKeyPressed(3, 'A'), event.NewKeyTyped(3, 'a')}},
		{"digit", tcell.NewEventKey(tcell.KeyRune, '7', tcell.ModNone),
			[]event.Event{event.NewKeyPressed(3, '7'), event.NewKeyTyped(3, '7')}},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone),
			[]event.Event{event.NewKeyPressed(3, int(tcell.KeyEnter))}},
		{"arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone),
			[]event.Event{event.NewKeyPressed(3, int(tcell.KeyUp))}},
	}
	for _, tt := range tests {
		got := w.translate(tt.in)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
	if w.ShouldClose() {
		t.Error("plain keys must not close the window")
	}
}

func TestTranslate_CtrlCCloses(t *testing.T) {
	w := newBareWindow(1)
	got := w.translate(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl))
	if !reflect.DeepEqual(got, []event.Event{event.NewWindowClose(1)}) {
		t.Errorf("got %v", got)
	}
	if !w.ShouldClose() {
		t.Error("expected should-close after Ctrl-C")
	}
}

func TestTranslate_MouseButtonsAreEdgeDetected(t *testing.T) {
	w := newBareWindow(2)

	got := w.translate(tcell.NewEventMouse(4, 5, tcell.Button1, tcell.ModNone))
	want := []event.Event{event.NewMouseMoved(2, 4, 5), event.NewMouseButtonPressed(2, 0)}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("press: got %v, want %v", got, want)
	}

	// Held button at the same position reports nothing.
	if got := w.translate(tcell.NewEventMouse(4, 5, tcell.Button1, tcell.ModNone)); len(got) != 0 {
		t.Errorf("hold: got %v", got)
	}

	got = w.translate(tcell.NewEventMouse(6, 5, tcell.Button2, tcell.ModNone))
	want = []event.Event{
		event.NewMouseMoved(2, 6, 5),
		event.NewMouseButtonReleased(2, 0),
		event.NewMouseButtonPressed(2, 1),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("swap: got %v, want %v", got, want)
	}

	got = w.translate(tcell.NewEventMouse(6, 5, tcell.ButtonNone, tcell.ModNone))
	if !reflect.DeepEqual(got, []event.Event{event.NewMouseButtonReleased(2, 1)}) {
		t.Errorf("release: got %v", got)
	}
}

func TestTranslate_Wheel(t *testing.T) {
	w := newBareWindow(1)
	w.translate(tcell.NewEventMouse(0, 0, tcell.ButtonNone, tcell.ModNone))

	tests := []struct {
		mask tcell.ButtonMask
		want event.Event
	}{
		{tcell.WheelUp, event.NewMouseScrolled(1, 0, 1)},
		{tcell.WheelDown, event.NewMouseScrolled(1, 0, -1)},
		{tcell.WheelLeft, event.NewMouseScrolled(1, -1, 0)},
		{tcell.WheelRight, event.NewMouseScrolled(1, 1, 0)},
	}
	for _, tt := range tests {
		got := w.translate(tcell.NewEventMouse(0, 0, tt.mask, tcell.ModNone))
		if !reflect.DeepEqual(got, []event.Event{tt.want}) {
			t.Errorf("mask %v: got %v, want %v", tt.mask, got, tt.want)
		}
	}
}

func TestTranslate_ResizeUpdatesSettings(t *testing.T) {
	w := newBareWindow(5)
	got := w.translate(tcell.NewEventResize(120, 40))
	if !reflect.DeepEqual(got, []event.Event{event.NewWindowResize(5, 120, 40)}) {
		t.Errorf("got %v", got)
	}
	if width, height := w.Resolution(); width != 120 || height != 40 {
		t.Errorf("resolution = %dx%d", width, height)
	}
}

func TestTranslate_Focus(t *testing.T) {
	w := newBareWindow(1)
	if got := w.translate(tcell.NewEventFocus(true)); !reflect.DeepEqual(got, []event.Event{event.NewWindowFocus(1)}) {
		t.Errorf("focus: got %v", got)
	}
	if got := w.translate(tcell.NewEventFocus(false)); !reflect.DeepEqual(got, []event.Event{event.NewWindowLostFocus(1)}) {
		t.Errorf("lost focus: got %v", got)
	}
}

func TestTranslate_UnknownIgnored(t *testing.T) {
	w := newBareWindow(1)
	if got := w.translate(tcell.NewEventInterrupt(nil)); got != nil {
		t.Errorf("got %v", got)
	}
}

func TestWindow_MoveAndRequestClose(t *testing.T) {
	var got []event.Event
	w := &Window{id: 9, settings: DefaultSettings(), deliver: func(e event.Event) { got = append(got, e) }}

	w.SetPosition(10, 20)
	w.RequestClose()

	want := []event.Event{event.NewWindowMoved(9, 10, 20), event.NewWindowClose(9)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if s := w.Settings(); s.XPos != 10 || s.YPos != 20 {
		t.Errorf("position not recorded: %+v", s)
	}
	if !w.ShouldClose() {
		t.Error("expected should-close")
	}
}
