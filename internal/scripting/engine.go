// Package scripting hosts the Lua layer. Scripts subscribe to engine events
// through the gojo API table and may emit events back into the dispatcher.
package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/IlyaYakubovichh/Gojo/internal/core/event"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// APIVersion is exposed to scripts as the API_VERSION global.
const APIVersion = 1

type handler struct {
	fn     *lua.LFunction
	window event.WindowID
	scoped bool
}

// state is one loaded VM with the handlers its scripts registered.
type state struct {
	vm       *lua.LState
	handlers map[event.Type][]handler
}

func (s *state) count() int {
	n := 0
	for _, hs := range s.handlers {
		n += len(hs)
	}
	return n
}

// Engine wraps a gopher-lua VM bound to an event dispatcher.
// Single-goroutine access only (main loop). Reload swaps the VM.
type Engine struct {
	dir        string
	dispatcher *event.Dispatcher
	cur        *state
	bridged    map[event.Type]bool
	reloads    int
	log        *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from dir.
func NewEngine(dir string, d *event.Dispatcher, log *zap.Logger) (*Engine, error) {
	e := &Engine{
		dir:        dir,
		dispatcher: d,
		bridged:    make(map[event.Type]bool),
		log:        log.Named("Scripting"),
	}
	st, err := e.newState()
	if err != nil {
		return nil, err
	}
	e.cur = st
	e.log.Info("scripts loaded", zap.String("dir", dir), zap.Int("handlers", st.count()))
	return e, nil
}

func (e *Engine) newState() (*state, error) {
	st := &state{
		vm:       lua.NewState(),
		handlers: make(map[event.Type][]handler),
	}
	st.vm.SetGlobal("API_VERSION", lua.LNumber(APIVersion))
	st.vm.SetGlobal("gojo", e.api(st))

	if err := e.loadTree(st.vm); err != nil {
		st.vm.Close()
		return nil, err
	}
	return st, nil
}

// loadTree loads core scripts first, then top-level scripts, then every
// other subdirectory in name order.
func (e *Engine) loadTree(vm *lua.LState) error {
	corePath := filepath.Join(e.dir, "core")
	if err := e.loadDir(vm, corePath); err != nil {
		return fmt.Errorf("load core scripts: %w", err)
	}
	if err := e.loadDir(vm, e.dir); err != nil {
		return fmt.Errorf("load scripts: %w", err)
	}

	entries, err := os.ReadDir(e.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if !entry.IsDir() || entry.Name() == "core" {
			continue
		}
		if err := e.loadDir(vm, filepath.Join(e.dir, entry.Name())); err != nil {
			return fmt.Errorf("load %s scripts: %w", entry.Name(), err)
		}
	}
	return nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(vm *lua.LState, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// subscribe records a Lua handler and makes sure exactly one Go listener
// forwards that kind into the engine. Go listeners outlive reloads.
func (e *Engine) subscribe(st *state, tag event.Type, h handler) {
	st.handlers[tag] = append(st.handlers[tag], h)
	if e.bridged[tag] {
		return
	}
	e.dispatcher.AddListener(tag, event.Erased(tag, e.handle))
	e.bridged[tag] = true
}

// handle runs the current VM's handlers for ev. A failing handler is logged
// and does not stop the others.
func (e *Engine) handle(ev event.Event) {
	st := e.cur
	if st == nil {
		return
	}
	hs := st.handlers[ev.Type()]
	if len(hs) == 0 {
		return
	}
	id, scoped := event.WindowOf(ev)
	for _, h := range hs {
		if h.scoped && (!scoped || id != h.window) {
			continue
		}
		// Each handler gets its own table; edits never leak to the next one.
		if err := st.vm.CallByParam(lua.P{
			Fn:      h.fn,
			NRet:    0,
			Protect: true,
		}, eventTable(st.vm, ev)); err != nil {
			e.log.Error("lua handler error", zap.Stringer("event", ev), zap.Error(err))
		}
	}
}

// Reload builds a fresh VM from disk and swaps it in. On failure the
// previous scripts stay active.
func (e *Engine) Reload() error {
	st, err := e.newState()
	if err != nil {
		e.log.Error("script reload failed, keeping previous scripts", zap.Error(err))
		return err
	}
	if e.cur != nil {
		e.cur.vm.Close()
	}
	e.cur = st
	e.reloads++
	e.log.Info("scripts reloaded", zap.Int("handlers", st.count()), zap.Int("reloads", e.reloads))
	return nil
}

// DoString runs a chunk in the current VM.
func (e *Engine) DoString(src string) error {
	if e.cur == nil {
		return fmt.Errorf("scripting engine is shut down")
	}
	return e.cur.vm.DoString(src)
}

// HandlerCount returns the number of Lua handlers for a kind.
func (e *Engine) HandlerCount(tag event.Type) int {
	if e.cur == nil {
		return 0
	}
	return len(e.cur.handlers[tag])
}

func (e *Engine) Reloads() int {
	return e.reloads
}

// Shutdown closes the Lua VM. Bridged Go listeners stay registered and
// become no-ops.
func (e *Engine) Shutdown() {
	if e.cur != nil {
		e.cur.vm.Close()
		e.cur = nil
	}
	e.log.Info("ShutDown complete")
}
