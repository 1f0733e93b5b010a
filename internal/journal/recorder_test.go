package journal

import (
	"context"
	"errors"
	"testing"

	"github.com/IlyaYakubovichh/Gojo/internal/core/event"
	"github.com/IlyaYakubovichh/Gojo/internal/persist"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type fakeWriter struct {
	batches [][]persist.JournalEntry
	err     error
}

func (w *fakeWriter) WriteBatch(_ context.Context, entries []persist.JournalEntry) error {
	if w.err != nil {
		return w.err
	}
	w.batches = append(w.batches, append([]persist.JournalEntry(nil), entries...))
	return nil
}

func newTestRecorder(max int) (*Recorder, *event.Dispatcher, *fakeWriter) {
	d := event.NewDispatcher(zap.NewNop(), event.Options{})
	w := &fakeWriter{}
	return NewRecorder(d, w, max, zap.NewNop()), d, w
}

func TestRecorder_RecordsEveryKind(t *testing.T) {
	r, d, w := newTestRecorder(0)
	if _, err := uuid.Parse(r.Session()); err != nil {
		t.Fatalf("session is not a uuid: %v", err)
	}
	for _, tag := range event.Types() {
		if d.ListenerCount(tag) != 1 {
			t.Errorf("%s: listeners = %d", tag, d.ListenerCount(tag))
		}
	}

	d.DispatchEvent(event.NewKeyPressed(2, 65))
	d.EnqueueEvent(event.NewMouseScrolled(0, 0, 1))
	d.DispatchEventsInQueue()

	if err := r.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if len(w.batches) != 1 || len(w.batches[0]) != 2 {
		t.Fatalf("batches = %v", w.batches)
	}
	first, second := w.batches[0][0], w.batches[0][1]
	if first.Kind != "KeyPressed" || first.WindowID != 2 || first.Seq != 1 || first.Text != event.NewKeyPressed(2, 65).String() {
		t.Errorf("first = %+v", first)
	}
	if second.Kind != "MouseScrolled" || second.Seq != 2 || second.Session != r.Session() {
		t.Errorf("second = %+v", second)
	}
	if r.Pending() != 0 {
		t.Errorf("pending = %d", r.Pending())
	}
}

func TestRecorder_FailedFlushRetainsBatch(t *testing.T) {
	r, d, w := newTestRecorder(0)
	d.DispatchEvent(event.NewWindowClose(1))

	w.err = errors.New("db down")
	if err := r.Flush(context.Background()); err == nil {
		t.Fatal("expected flush error")
	}
	if r.Pending() != 1 {
		t.Fatalf("pending = %d", r.Pending())
	}

	w.err = nil
	d.DispatchEvent(event.NewWindowFocus(1))
	if err := r.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if len(w.batches) != 1 || len(w.batches[0]) != 2 {
		t.Errorf("batches = %v", w.batches)
	}
}

func TestRecorder_BufferCapDropsJournalOnly(t *testing.T) {
	r, d, _ := newTestRecorder(2)
	delivered := 0
	event.AddListener(d, func(event.KeyTyped) { delivered++ })

	for i := 0; i < 5; i++ {
		d.DispatchEvent(event.NewKeyTyped(1, 'a'))
	}
	if delivered != 5 {
		t.Errorf("dispatch affected by journal: delivered = %d", delivered)
	}
	if r.Pending() != 2 || r.Dropped() != 3 {
		t.Errorf("pending/dropped = %d/%d", r.Pending(), r.Dropped())
	}
}

func TestRecorder_ShutdownFlushes(t *testing.T) {
	r, d, w := newTestRecorder(0)
	d.DispatchEvent(event.NewWindowLostFocus(3))
	r.Shutdown()
	if len(w.batches) != 1 {
		t.Errorf("batches = %d", len(w.batches))
	}
}

func TestRecorder_EmptyFlushIsNoop(t *testing.T) {
	r, _, w := newTestRecorder(0)
	if err := r.Flush(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(w.batches) != 0 {
		t.Error("empty flush must not write")
	}
}
