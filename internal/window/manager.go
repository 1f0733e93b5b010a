package window

import (
	"fmt"

	"github.com/IlyaYakubovichh/Gojo/internal/core/assert"
	"github.com/IlyaYakubovichh/Gojo/internal/core/event"
	"go.uber.org/zap"
)

const defaultMaxEventsPerPoll = 256

// Options tune a Manager.
type Options struct {
	// Screens opens the surface behind each new window. Nil leaves the
	// manager uninitialized.
	Screens ScreenFactory
	// MaxEventsPerPoll caps native events translated per window per poll.
	MaxEventsPerPoll int
	// Exclusive limits the manager to one live window.
	Exclusive bool
}

// Manager owns every live window. All methods must be called from the main
// loop goroutine.
type Manager struct {
	windows     map[ID]*Window
	order       []ID
	counter     uint32
	initialized bool
	screens     ScreenFactory
	deliver     func(event.Event)
	maxPerPoll  int
	exclusive   bool
	log         *zap.Logger
}

// NewManager creates a window manager that hands translated events to
// deliver. Use Dispatcher.Submitter to pick immediate or deferred delivery.
func NewManager(deliver func(event.Event), log *zap.Logger, opts Options) *Manager {
	log = log.Named("WindowManager")
	if opts.MaxEventsPerPoll <= 0 {
		opts.MaxEventsPerPoll = defaultMaxEventsPerPoll
	}
	m := &Manager{
		windows:    make(map[ID]*Window),
		screens:    opts.Screens,
		deliver:    deliver,
		maxPerPoll: opts.MaxEventsPerPoll,
		exclusive:  opts.Exclusive,
		log:        log,
	}
	if opts.Screens == nil || deliver == nil {
		log.Error("window backend unavailable")
		return m
	}
	m.initialized = true
	return m
}

// CreateWindow opens a window and returns its id. Ids are never reused,
// including ids consumed by failed attempts.
func (m *Manager) CreateWindow(settings Settings) (ID, error) {
	assert.That(m.log, settings.Width > 0 && settings.Height > 0, "WindowManager",
		"window dimensions must be positive")

	if !m.initialized {
		m.log.Error("window manager is not initialized", zap.String("title", settings.Title))
		return 0, ErrManagerNotInitialized
	}
	if m.exclusive && len(m.windows) > 0 {
		m.log.Error("screen is exclusive and already in use", zap.String("title", settings.Title))
		return 0, ErrScreenInUse
	}

	m.counter++
	id := ID(m.counter)

	screen, err := m.screens()
	if err != nil {
		m.log.Error("failed to create window", zap.String("title", settings.Title), zap.Error(err))
		return 0, fmt.Errorf("%w: %q: %v", ErrCreationFailed, settings.Title, err)
	}
	w, err := newWindow(id, settings, screen, m.deliver, m.log)
	if err != nil {
		m.log.Error("failed to create window", zap.String("title", settings.Title), zap.Error(err))
		return 0, fmt.Errorf("%w: %q: %v", ErrCreationFailed, settings.Title, err)
	}

	m.windows[id] = w
	m.order = append(m.order, id)
	m.log.Info("window created",
		zap.String("title", settings.Title),
		zap.Uint32("id", uint32(id)),
		zap.Uint16("width", settings.Width),
		zap.Uint16("height", settings.Height),
	)
	return id, nil
}

// OnUpdate polls every window and then erases the ones asked to close.
func (m *Manager) OnUpdate() {
	if !m.initialized {
		return
	}
	m.PollEvents()
	m.CleanupClosedWindows()
}

// PollEvents translates pending native events of every window, in window
// creation order, and returns how many native events were consumed.
func (m *Manager) PollEvents() int {
	n := 0
	for _, id := range m.order {
		n += m.windows[id].poll(m.maxPerPoll)
	}
	return n
}

// CleanupClosedWindows destroys windows flagged to close.
func (m *Manager) CleanupClosedWindows() int {
	kept := m.order[:0]
	erased := 0
	for _, id := range m.order {
		w := m.windows[id]
		if !w.ShouldClose() {
			kept = append(kept, id)
			continue
		}
		w.destroy()
		delete(m.windows, id)
		erased++
		m.log.Info("window erased", zap.String("title", w.Title()), zap.Uint32("id", uint32(id)))
	}
	m.order = kept
	return erased
}

// CloseAllWindows flags every window to close. No events are emitted.
func (m *Manager) CloseAllWindows() {
	for _, w := range m.windows {
		w.shouldClose = true
	}
}

// HandleClose is a WindowClose listener: a close reported by any producer,
// scripts included, flags the target window. Unknown ids are ignored since
// the window may already be erased.
func (m *Manager) HandleClose(e event.WindowClose) {
	if w, ok := m.windows[e.WindowID()]; ok {
		w.shouldClose = true
	}
}

func (m *Manager) AreAllWindowsClosed() bool {
	return len(m.windows) == 0
}

// GetWindowByID returns nil, with a warning, for unknown ids.
func (m *Manager) GetWindowByID(id ID) *Window {
	w, ok := m.windows[id]
	if !ok {
		m.log.Warn("window not found", zap.Uint32("id", uint32(id)))
		return nil
	}
	return w
}

// Windows returns live windows in creation order.
func (m *Manager) Windows() []*Window {
	out := make([]*Window, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.windows[id])
	}
	return out
}

func (m *Manager) Count() int {
	return len(m.windows)
}

func (m *Manager) Initialized() bool {
	return m.initialized
}

// Shutdown closes every window and marks the manager uninitialized.
func (m *Manager) Shutdown() {
	m.CloseAllWindows()
	m.CleanupClosedWindows()
	m.initialized = false
	m.log.Info("ShutDown complete")
}
