package scripting

import (
	"fmt"

	"github.com/IlyaYakubovichh/Gojo/internal/core/event"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// api builds the gojo table for a VM under construction.
//
//	gojo.on(kind, fn)              handle every event of kind
//	gojo.on_window(id, kind, fn)   handle events of kind from window id
//	gojo.emit(kind, fields)        dispatch immediately
//	gojo.enqueue(kind, fields)     queue for the next drain
//	gojo.log(msg)
func (e *Engine) api(st *state) *lua.LTable {
	t := st.vm.NewTable()
	st.vm.SetFuncs(t, map[string]lua.LGFunction{
		"on": func(L *lua.LState) int {
			tag := checkKind(L, 1)
			e.subscribe(st, tag, handler{fn: L.CheckFunction(2)})
			return 0
		},
		"on_window": func(L *lua.LState) int {
			id := event.WindowID(L.CheckInt(1))
			tag := checkKind(L, 2)
			e.subscribe(st, tag, handler{fn: L.CheckFunction(3), window: id, scoped: true})
			return 0
		},
		"emit": func(L *lua.LState) int {
			e.dispatcher.DispatchEvent(checkEvent(L))
			return 0
		},
		"enqueue": func(L *lua.LState) int {
			e.dispatcher.EnqueueEvent(checkEvent(L))
			return 0
		},
		"log": func(L *lua.LState) int {
			e.log.Info(L.CheckString(1), zap.String("source", "lua"))
			return 0
		},
	})
	return t
}

func checkKind(L *lua.LState, n int) event.Type {
	name := L.CheckString(n)
	tag, ok := event.ParseType(name)
	if !ok {
		L.ArgError(n, "unknown event kind "+name)
	}
	return tag
}

func checkEvent(L *lua.LState) event.Event {
	tag := checkKind(L, 1)
	fields := L.OptTable(2, L.NewTable())
	ev, err := eventFromTable(tag, fields)
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
	return ev
}

// eventTable converts an event into the table handed to Lua handlers.
func eventTable(L *lua.LState, ev event.Event) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("type", lua.LString(ev.Type().String()))
	t.RawSetString("text", lua.LString(ev.String()))
	if id, ok := event.WindowOf(ev); ok {
		t.RawSetString("window_id", lua.LNumber(id))
	}

	switch e := ev.(type) {
	case interface{ KeyCode() int }:
		t.RawSetString("key", lua.LNumber(e.KeyCode()))
	case interface{ Button() int }:
		t.RawSetString("button", lua.LNumber(e.Button()))
	case event.MouseMoved:
		t.RawSetString("x", lua.LNumber(e.X()))
		t.RawSetString("y", lua.LNumber(e.Y()))
	case event.MouseScrolled:
		t.RawSetString("x", lua.LNumber(e.XOffset()))
		t.RawSetString("y", lua.LNumber(e.YOffset()))
	case event.WindowResize:
		t.RawSetString("width", lua.LNumber(e.Width()))
		t.RawSetString("height", lua.LNumber(e.Height()))
	case event.WindowMoved:
		t.RawSetString("x", lua.LNumber(e.X()))
		t.RawSetString("y", lua.LNumber(e.Y()))
	}
	return t
}

// eventFromTable builds an event of the given kind from script fields.
// Missing fields read as zero.
func eventFromTable(tag event.Type, t *lua.LTable) (event.Event, error) {
	id := event.WindowID(lInt(t, "window_id"))
	switch tag {
	case event.TypeKeyReleased:
		return event.NewKeyReleased(id, lInt(t, "key")), nil
	case event.TypeKeyPressed:
		return event.NewKeyPressed(id, lInt(t, "key")), nil
	case event.TypeKeyTyped:
		return event.NewKeyTyped(id, lInt(t, "key")), nil
	case event.TypeMouseButtonPressed:
		return event.NewMouseButtonPressed(id, lInt(t, "button")), nil
	case event.TypeMouseButtonReleased:
		return event.NewMouseButtonReleased(id, lInt(t, "button")), nil
	case event.TypeMouseMoved:
		return event.NewMouseMoved(id, lFloat(t, "x"), lFloat(t, "y")), nil
	case event.TypeMouseScrolled:
		return event.NewMouseScrolled(id, lFloat(t, "x"), lFloat(t, "y")), nil
	case event.TypeWindowClose:
		return event.NewWindowClose(id), nil
	case event.TypeWindowResize:
		return event.NewWindowResize(id, lInt(t, "width"), lInt(t, "height")), nil
	case event.TypeWindowMoved:
		return event.NewWindowMoved(id, lInt(t, "x"), lInt(t, "y")), nil
	case event.TypeWindowFocus:
		return event.NewWindowFocus(id), nil
	case event.TypeWindowLostFocus:
		return event.NewWindowLostFocus(id), nil
	}
	return nil, fmt.Errorf("cannot build event of kind %s", tag)
}

// --- Lua helpers ---

// lInt reads an integer field from a Lua table.
func lInt(t *lua.LTable, key string) int {
	return int(lua.LVAsNumber(t.RawGetString(key)))
}

// lFloat reads a float field from a Lua table.
func lFloat(t *lua.LTable, key string) float32 {
	return float32(lua.LVAsNumber(t.RawGetString(key)))
}
