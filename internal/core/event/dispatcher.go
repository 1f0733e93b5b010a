package event

import (
	"github.com/IlyaYakubovichh/Gojo/internal/core/assert"
	"go.uber.org/zap"
)

const category = "EventManager"

// Mode selects how producers hand events to the Dispatcher.
type Mode int

const (
	// ModeImmediate runs listeners at the point of submission.
	ModeImmediate Mode = iota
	// ModeDeferred queues events until the next DispatchEventsInQueue.
	ModeDeferred
)

func (m Mode) String() string {
	switch m {
	case ModeImmediate:
		return "immediate"
	case ModeDeferred:
		return "deferred"
	default:
		return "unknown"
	}
}

// ParseMode accepts "immediate" or "deferred".
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "immediate":
		return ModeImmediate, true
	case "deferred":
		return ModeDeferred, true
	}
	return ModeImmediate, false
}

// Options tunes a Dispatcher.
type Options struct {
	// QueueWarnThreshold logs a warning once the queue grows past this many
	// events without a drain. 0 disables the warning.
	QueueWarnThreshold int
}

// Stats are cumulative dispatcher counters.
type Stats struct {
	Dispatched uint64 // DispatchEvent calls, immediate or from a drain
	Unheard    uint64 // dispatches that found no listener
	Enqueued   uint64
	Drained    uint64
	Listeners  int
}

// Dispatcher owns the listener registry and the deferred queue.
//
// Listeners are append-only: once added they live as long as the
// Dispatcher. Not safe for concurrent use; every method is expected to run
// on the main loop goroutine.
type Dispatcher struct {
	listeners map[Type][]Listener
	queue     Queue
	opts      Options
	warned    bool
	stats     Stats
	log       *zap.Logger
}

func NewDispatcher(log *zap.Logger, opts Options) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{
		listeners: make(map[Type][]Listener, typeCount),
		opts:      opts,
		log:       log.Named(category),
	}
}

// AddListener takes ownership of l and appends it to tag's listeners.
// The same handler added twice runs twice.
func (d *Dispatcher) AddListener(tag Type, l Listener) {
	assert.That(d.log, l != nil, category, "cannot add nil listener")
	assert.That(d.log, tag.Valid(), category, "cannot add listener for invalid event type "+tag.String())
	if l == nil {
		return
	}
	d.listeners[tag] = append(d.listeners[tag], l)
	d.stats.Listeners++
	d.log.Debug("listener added", zap.Stringer("event", tag))
}

// DispatchEvent runs e's listeners now, in registration order, on the
// calling goroutine.
func (d *Dispatcher) DispatchEvent(e Event) {
	assert.That(d.log, e != nil, category, "cannot dispatch nil event")
	if e == nil {
		return
	}
	d.stats.Dispatched++

	listeners := d.listeners[e.Type()]
	if len(listeners) == 0 {
		d.stats.Unheard++
		d.log.Warn("no listeners found", zap.Stringer("event", e.Type()))
		return
	}
	for _, l := range listeners {
		if l == nil {
			d.log.Error("encountered nil listener during dispatch", zap.Stringer("event", e.Type()))
			continue
		}
		l.Execute(e)
	}
}

// EnqueueEvent appends e to the deferred queue.
func (d *Dispatcher) EnqueueEvent(e Event) {
	assert.That(d.log, e != nil, category, "cannot enqueue nil event")
	if e == nil {
		return
	}
	d.queue.Push(e)
	d.stats.Enqueued++

	if t := d.opts.QueueWarnThreshold; t > 0 && !d.warned && d.queue.Len() > t {
		d.warned = true
		d.log.Warn("event queue is growing without a drain",
			zap.Int("queued", d.queue.Len()),
			zap.Int("threshold", t),
		)
	}
}

// DispatchEventsInQueue delivers, in FIFO order, exactly the events that
// were queued when the call began. Events enqueued by listeners during the
// drain stay queued for the next call. A listener may drain again; the
// outer drain then stops once the queue runs dry.
func (d *Dispatcher) DispatchEventsInQueue() {
	n := d.queue.Len()
	if n == 0 {
		return
	}
	for i := 0; i < n && d.queue.Len() > 0; i++ {
		e := d.queue.Pop()
		assert.That(d.log, e != nil, category, "nil event in queue")
		d.DispatchEvent(e)
		d.stats.Drained++
	}
	if d.queue.Len() <= d.opts.QueueWarnThreshold {
		d.warned = false
	}
}

// Submit routes e through the immediate or deferred path.
func (d *Dispatcher) Submit(mode Mode, e Event) {
	if mode == ModeDeferred {
		d.EnqueueEvent(e)
		return
	}
	d.DispatchEvent(e)
}

// Submitter returns a function bound to one delivery mode, for producers
// that should not know which mode the engine runs in.
func (d *Dispatcher) Submitter(mode Mode) func(Event) {
	if mode == ModeDeferred {
		return d.EnqueueEvent
	}
	return d.DispatchEvent
}

func (d *Dispatcher) QueueLen() int { return d.queue.Len() }

func (d *Dispatcher) ListenerCount(tag Type) int { return len(d.listeners[tag]) }

func (d *Dispatcher) Stats() Stats { return d.stats }

// Shutdown drops queued events that were never drained.
func (d *Dispatcher) Shutdown() {
	if n := d.queue.Len(); n > 0 {
		d.log.Warn("discarding undelivered events", zap.Int("queued", n))
		d.queue.Clear()
	}
	d.log.Info("EventManager ShutDown complete")
}

// AddListener registers fn for every event of kind E.
func AddListener[E Event](d *Dispatcher, fn func(E)) {
	assert.That(d.log, fn != nil, category, "attempting to add an empty event callback")
	if fn == nil {
		return
	}
	d.AddListener(TypeOf[E](), Wrap(fn))
}

// Enqueue queues a copy of e.
func Enqueue[E Event](d *Dispatcher, e E) {
	d.EnqueueEvent(e)
}
