// Package journal records every dispatched event and periodically writes
// them to a persistent sink. It observes dispatch only and never alters it.
package journal

import (
	"context"
	"time"

	"github.com/IlyaYakubovichh/Gojo/internal/core/event"
	"github.com/IlyaYakubovichh/Gojo/internal/persist"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EntryWriter persists a batch atomically. persist.JournalRepo implements it.
type EntryWriter interface {
	WriteBatch(ctx context.Context, entries []persist.JournalEntry) error
}

const shutdownFlushTimeout = 5 * time.Second

// Recorder buffers one entry per dispatched event.
type Recorder struct {
	session string
	seq     int64
	buf     []persist.JournalEntry
	max     int
	dropped uint64
	full    bool
	writer  EntryWriter
	now     func() time.Time
	log     *zap.Logger
}

// NewRecorder registers a listener for every event kind on d. maxBuffered
// caps unflushed entries; events beyond the cap are counted and dropped
// from the journal only.
func NewRecorder(d *event.Dispatcher, w EntryWriter, maxBuffered int, log *zap.Logger) *Recorder {
	r := &Recorder{
		session: uuid.NewString(),
		max:     maxBuffered,
		writer:  w,
		now:     time.Now,
		log:     log.Named("Journal"),
	}
	for _, t := range event.Types() {
		d.AddListener(t, event.Erased(t, r.record))
	}
	r.log.Info("journal recording", zap.String("session", r.session))
	return r
}

func (r *Recorder) record(e event.Event) {
	r.seq++
	if r.max > 0 && len(r.buf) >= r.max {
		r.dropped++
		if !r.full {
			r.full = true
			r.log.Warn("journal buffer full, dropping entries", zap.Int("max_buffered", r.max))
		}
		return
	}
	id, _ := event.WindowOf(e)
	r.buf = append(r.buf, persist.JournalEntry{
		Session:  r.session,
		Seq:      r.seq,
		Kind:     e.Type().String(),
		WindowID: uint32(id),
		Text:     e.String(),
		At:       r.now(),
	})
}

// Flush writes buffered entries. On failure the batch is kept for the next
// attempt and the error is returned.
func (r *Recorder) Flush(ctx context.Context) error {
	if len(r.buf) == 0 {
		return nil
	}
	if err := r.writer.WriteBatch(ctx, r.buf); err != nil {
		r.log.Warn("journal flush failed", zap.Int("pending", len(r.buf)), zap.Error(err))
		return err
	}
	r.log.Debug("journal flushed", zap.Int("entries", len(r.buf)))
	r.buf = r.buf[:0]
	r.full = false
	return nil
}

func (r *Recorder) Session() string {
	return r.session
}

// Pending returns the number of unflushed entries.
func (r *Recorder) Pending() int {
	return len(r.buf)
}

func (r *Recorder) Dropped() uint64 {
	return r.dropped
}

// Shutdown makes a final flush attempt.
func (r *Recorder) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownFlushTimeout)
	defer cancel()
	if err := r.Flush(ctx); err != nil {
		r.log.Error("final journal flush failed", zap.Int("lost", len(r.buf)))
	}
	r.log.Info("ShutDown complete", zap.Uint64("dropped", r.dropped))
}
