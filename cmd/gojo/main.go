package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/IlyaYakubovichh/Gojo/internal/config"
	"github.com/IlyaYakubovichh/Gojo/internal/core/event"
	"github.com/IlyaYakubovichh/Gojo/internal/core/lifecycle"
	coresys "github.com/IlyaYakubovichh/Gojo/internal/core/system"
	"github.com/IlyaYakubovichh/Gojo/internal/data"
	"github.com/IlyaYakubovichh/Gojo/internal/journal"
	"github.com/IlyaYakubovichh/Gojo/internal/logging"
	"github.com/IlyaYakubovichh/Gojo/internal/persist"
	"github.com/IlyaYakubovichh/Gojo/internal/scripting"
	"github.com/IlyaYakubovichh/Gojo/internal/system"
	"github.com/IlyaYakubovichh/Gojo/internal/window"
	"go.uber.org/zap"
	"golang.org/x/text/width"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(name string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	title := name + "  v0.1.0"
	pad := 41 - displayWidth(title)
	if pad < 0 {
		pad = 0
	}
	fmt.Printf("\033[36;1m  │\033[0m %s%s \033[36;1m│\033[0m\n", title, strings.Repeat(" ", pad))
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
}

// displayWidth counts terminal columns; wide and fullwidth runes take two.
func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

func printSection(title string) {
	lineLen := 46 - displayWidth(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - displayWidth(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Engine ─────────────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/engine.toml"
	if p := os.Getenv("GOJO_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err = config.Default(), nil
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger and subsystem registry
	root, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	reg := lifecycle.NewRegistry(root)
	defer reg.ShutDownAll()

	logs, err := lifecycle.StartUp(reg, func() (*logging.Manager, error) {
		return logging.NewManager(root), nil
	})
	if err != nil {
		return err
	}
	log := logs.Category("Engine")

	printBanner(cfg.Engine.Name)

	// 3. Event core
	printSection("Events")
	mode, _ := event.ParseMode(cfg.Engine.DispatchMode)
	events, err := lifecycle.StartUp(reg, func() (*event.Dispatcher, error) {
		return event.NewDispatcher(logs.Root(), event.Options{
			QueueWarnThreshold: cfg.Engine.QueueWarnThreshold,
		}), nil
	})
	if err != nil {
		return err
	}
	printOK(fmt.Sprintf("dispatch mode %s", mode))

	// 4. Scripts subscribe before any window produces events
	var (
		scripts *scripting.Engine
		watcher *scripting.Watcher
	)
	if cfg.Scripting.Enabled {
		printSection("Scripting")
		scripts, err = lifecycle.StartUp(reg, func() (*scripting.Engine, error) {
			return scripting.NewEngine(cfg.Scripting.Dir, events, logs.Root())
		})
		if err != nil {
			return err
		}
		for _, t := range event.Types() {
			if n := scripts.HandlerCount(t); n > 0 {
				printStat(t.String()+" handlers", n)
			}
		}
		if cfg.Scripting.HotReload {
			watcher, err = lifecycle.StartUp(reg, func() (*scripting.Watcher, error) {
				return scripting.NewWatcher(cfg.Scripting.Dir, logs.Root())
			})
			if err != nil {
				// Hot reload is a convenience; run without it.
				log.Warn("script hot reload disabled", zap.Error(err))
				watcher = nil
			} else {
				printOK("hot reload watching " + cfg.Scripting.Dir)
			}
		}
	}

	// 5. Journal
	var recorder *journal.Recorder
	if cfg.Journal.Enabled {
		printSection("Journal")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		db, err := lifecycle.StartUp(reg, func() (*persist.DB, error) {
			return persist.NewDB(ctx, cfg.Journal, logs.Category("Persist"))
		})
		if err != nil {
			return err
		}
		version, err := persist.RunMigrations(ctx, db.Pool, logs.Category("Persist"))
		if err != nil {
			return err
		}
		printStat("schema version", int(version))

		recorder, err = lifecycle.StartUp(reg, func() (*journal.Recorder, error) {
			return journal.NewRecorder(events, persist.NewJournalRepo(db), cfg.Journal.MaxBuffered, logs.Root()), nil
		})
		if err != nil {
			return err
		}
		printOK("session " + recorder.Session())
	}

	// 6. Windows
	printSection("Windows")
	screens, _ := window.ScreenFor(cfg.Window.Screen)
	windows, err := lifecycle.StartUp(reg, func() (*window.Manager, error) {
		return window.NewManager(events.Submitter(mode), logs.Root(), window.Options{
			Screens:   screens,
			Exclusive: window.ExclusiveScreen(cfg.Window.Screen),
		}), nil
	})
	if err != nil {
		return err
	}
	event.AddListener(events, windows.HandleClose)

	settings, err := windowSettings(cfg.Window.Table)
	if err != nil {
		return err
	}
	if window.ExclusiveScreen(cfg.Window.Screen) && len(settings) > 1 {
		return fmt.Errorf("window table %s lists %d windows; the terminal screen supports one", cfg.Window.Table, len(settings))
	}
	printStat("windows", len(settings))
	for _, s := range settings {
		if _, err := windows.CreateWindow(s); err != nil {
			return fmt.Errorf("create window: %w", err)
		}
	}

	// 7. Systems
	runner := coresys.NewRunner(logs.Root(), cfg.Engine.TickRate)
	runner.Register(system.NewWindowPollSystem(windows, logs.Category("Systems")))
	runner.Register(system.NewEventDrainSystem(events))
	if watcher != nil {
		runner.Register(system.NewScriptReloadSystem(watcher, scripts, logs.Category("Systems")))
	}
	if recorder != nil {
		runner.Register(system.NewJournalFlushSystem(recorder, cfg.Journal.FlushEvery))
	}
	runner.Register(system.NewWindowCleanupSystem(windows))

	// 8. Main loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Engine.TickRate)
	defer ticker.Stop()

	printReady(fmt.Sprintf("main loop (tick: %s, systems: %d)", cfg.Engine.TickRate, runner.Len()))
	fmt.Println()

	for {
		select {
		case <-ticker.C:
			runner.Tick(cfg.Engine.TickRate)
			if windows.AreAllWindowsClosed() {
				log.Info("all windows closed")
				return nil
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			windows.CloseAllWindows()
			return nil
		}
	}
}

// windowSettings reads the window table. A missing table opens one window
// with default settings.
func windowSettings(path string) ([]window.Settings, error) {
	table, err := data.LoadWindowTable(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []window.Settings{window.DefaultSettings()}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load window table: %w", err)
	}
	out := make([]window.Settings, 0, table.Count())
	for _, e := range table.All() {
		out = append(out, window.FromEntry(e))
	}
	return out, nil
}
