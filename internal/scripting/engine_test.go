package scripting

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/IlyaYakubovichh/Gojo/internal/core/event"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func writeScript(t *testing.T, dir, rel, src string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newTestEngine(t *testing.T, dir string) (*Engine, *event.Dispatcher, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core)
	d := event.NewDispatcher(log, event.Options{})
	e, err := NewEngine(dir, d, log)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	t.Cleanup(e.Shutdown)
	return e, d, logs
}

func global(e *Engine, name string) lua.LValue {
	return e.cur.vm.GetGlobal(name)
}

func TestEngine_APIVersionAndLoadOrder(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "core/a.lua", `order = "core"`)
	writeScript(t, dir, "main.lua", `order = order .. ",top"`)
	writeScript(t, dir, "ui/b.lua", `order = order .. ",ui"`)

	e, _, _ := newTestEngine(t, dir)
	if v := global(e, "API_VERSION"); v != lua.LNumber(APIVersion) {
		t.Errorf("API_VERSION = %v", v)
	}
	if v := global(e, "order"); v.String() != "core,top,ui" {
		t.Errorf("load order = %v", v)
	}
}

func TestEngine_MissingDirIsEmpty(t *testing.T) {
	e, _, _ := newTestEngine(t, filepath.Join(t.TempDir(), "absent"))
	if n := e.HandlerCount(event.TypeKeyPressed); n != 0 {
		t.Errorf("handlers = %d", n)
	}
}

func TestEngine_HandlerReceivesFields(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "keys.lua", `
gojo.on("KeyPressed", function(ev)
  last_type = ev.type
  last_key = ev.key
  last_window = ev.window_id
  last_text = ev.text
end)
gojo.on("WindowResize", function(ev)
  area = ev.width * ev.height
end)`)

	e, d, _ := newTestEngine(t, dir)
	d.DispatchEvent(event.NewKeyPressed(4, 65))
	d.DispatchEvent(event.NewWindowResize(4, 10, 20))

	if global(e, "last_type").String() != "KeyPressed" {
		t.Errorf("type = %v", global(e, "last_type"))
	}
	if global(e, "last_key") != lua.LNumber(65) || global(e, "last_window") != lua.LNumber(4) {
		t.Errorf("key/window = %v/%v", global(e, "last_key"), global(e, "last_window"))
	}
	if global(e, "last_text").String() != event.NewKeyPressed(4, 65).String() {
		t.Errorf("text = %v", global(e, "last_text"))
	}
	if global(e, "area") != lua.LNumber(200) {
		t.Errorf("area = %v", global(e, "area"))
	}
}

func TestEngine_HandlersGetIndependentTables(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "k.lua", `
gojo.on("KeyPressed", function(ev) ev.key = 0; ev.window_id = 99 end)
gojo.on("KeyPressed", function(ev) seen_key = ev.key; seen_window = ev.window_id end)`)

	e, d, _ := newTestEngine(t, dir)
	d.DispatchEvent(event.NewKeyPressed(3, 65))

	if global(e, "seen_key") != lua.LNumber(65) || global(e, "seen_window") != lua.LNumber(3) {
		t.Errorf("second handler saw key=%v window=%v", global(e, "seen_key"), global(e, "seen_window"))
	}
}

func TestEngine_OnWindowFilters(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "w.lua", `
hits = 0
gojo.on_window(1, "WindowFocus", function(ev) hits = hits + 1 end)`)

	e, d, _ := newTestEngine(t, dir)
	d.DispatchEvent(event.NewWindowFocus(1))
	d.DispatchEvent(event.NewWindowFocus(2))
	d.DispatchEvent(event.NewWindowFocus(1))

	if global(e, "hits") != lua.LNumber(2) {
		t.Errorf("hits = %v", global(e, "hits"))
	}
}

func TestEngine_EmitAndEnqueue(t *testing.T) {
	e, d, _ := newTestEngine(t, t.TempDir())

	var got []event.MouseMoved
	event.AddListener(d, func(m event.MouseMoved) { got = append(got, m) })

	if err := e.DoString(`gojo.emit("MouseMoved", {window_id = 2, x = 1.5, y = 3})`); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if len(got) != 1 || got[0] != event.NewMouseMoved(2, 1.5, 3) {
		t.Fatalf("emitted %v", got)
	}

	if err := e.DoString(`gojo.enqueue("WindowClose", {window_id = 3})`); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if d.QueueLen() != 1 {
		t.Errorf("queue len = %d", d.QueueLen())
	}
}

func TestEngine_UnknownKindFailsLoad(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "bad.lua", `gojo.on("Teleport", function() end)`)

	d := event.NewDispatcher(zap.NewNop(), event.Options{})
	if _, err := NewEngine(dir, d, zap.NewNop()); err == nil {
		t.Fatal("expected load error for unknown kind")
	}
}

func TestEngine_HandlerErrorDoesNotStopOthers(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "h.lua", `
gojo.on("KeyTyped", function(ev) error("boom") end)
gojo.on("KeyTyped", function(ev) survived = true end)`)

	e, d, logs := newTestEngine(t, dir)
	d.DispatchEvent(event.NewKeyTyped(1, 'x'))

	if global(e, "survived") != lua.LTrue {
		t.Error("second handler did not run")
	}
	if logs.FilterMessage("lua handler error").Len() != 1 {
		t.Error("expected handler error to be logged")
	}
}

func TestEngine_ReloadSwapsHandlersWithoutDuplicates(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "k.lua", `gojo.on("KeyPressed", function(ev) version = 1 end)`)

	e, d, _ := newTestEngine(t, dir)
	if d.ListenerCount(event.TypeKeyPressed) != 1 {
		t.Fatalf("listeners = %d", d.ListenerCount(event.TypeKeyPressed))
	}

	writeScript(t, dir, "k.lua", `
calls = 0
gojo.on("KeyPressed", function(ev) version = 2; calls = calls + 1 end)`)
	if err := e.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	d.DispatchEvent(event.NewKeyPressed(1, 1))

	if global(e, "version") != lua.LNumber(2) || global(e, "calls") != lua.LNumber(1) {
		t.Errorf("version/calls = %v/%v", global(e, "version"), global(e, "calls"))
	}
	if d.ListenerCount(event.TypeKeyPressed) != 1 {
		t.Errorf("go listeners duplicated: %d", d.ListenerCount(event.TypeKeyPressed))
	}
	if e.Reloads() != 1 {
		t.Errorf("reloads = %d", e.Reloads())
	}
}

func TestEngine_FailedReloadKeepsPrevious(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "k.lua", `gojo.on("KeyPressed", function(ev) alive = true end)`)

	e, d, _ := newTestEngine(t, dir)
	writeScript(t, dir, "k.lua", `this is not lua`)
	if err := e.Reload(); err == nil {
		t.Fatal("expected reload error")
	}

	d.DispatchEvent(event.NewKeyPressed(1, 1))
	if global(e, "alive") != lua.LTrue {
		t.Error("previous scripts should stay active")
	}
}

func TestEngine_ShutdownMakesBridgeNoop(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "k.lua", `gojo.on("KeyPressed", function(ev) end)`)

	e, d, _ := newTestEngine(t, dir)
	e.Shutdown()
	d.DispatchEvent(event.NewKeyPressed(1, 1))
	if err := e.DoString(`x = 1`); err == nil {
		t.Error("expected error after shutdown")
	}
}

func TestWatcher_ReportsLuaChanges(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "core/init.lua", `x = 1`)

	w, err := NewWatcher(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Shutdown()

	writeScript(t, dir, "core/init.lua", `x = 2`)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if name, ok := w.Changed(); ok {
			if filepath.Base(name) != "init.lua" {
				t.Errorf("changed = %s", name)
			}
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("no change reported")
}

func TestWatcher_WatchesDirectoriesCreatedLater(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Shutdown()

	sub := filepath.Join(dir, "ui")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	// The new directory is added asynchronously; keep touching a script in
	// it until a change from inside it is reported.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		writeScript(t, dir, "ui/panel.lua", `x = 1`)
		time.Sleep(20 * time.Millisecond)
		if name, ok := w.Changed(); ok {
			if filepath.Dir(name) != sub && name != sub {
				t.Fatalf("changed = %s, want something under %s", name, sub)
			}
			return
		}
	}
	t.Fatal("no change reported for a script in a new directory")
}
