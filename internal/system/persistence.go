package system

import (
	"context"
	"time"

	coresys "github.com/IlyaYakubovichh/Gojo/internal/core/system"
)

// Flusher is satisfied by *journal.Recorder.
type Flusher interface {
	Flush(ctx context.Context) error
}

// JournalFlushSystem periodically writes the event journal. Phase PostUpdate.
type JournalFlushSystem struct {
	journal   Flusher
	tickCount int
	interval  int // flush every N ticks
	timeout   time.Duration
}

func NewJournalFlushSystem(journal Flusher, intervalTicks int) *JournalFlushSystem {
	if intervalTicks <= 0 {
		intervalTicks = 1
	}
	return &JournalFlushSystem{journal: journal, interval: intervalTicks, timeout: 5 * time.Second}
}

func (s *JournalFlushSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *JournalFlushSystem) Update(_ time.Duration) {
	s.tickCount++
	if s.tickCount < s.interval {
		return
	}
	s.tickCount = 0

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	// Failures are logged by the recorder; the batch stays buffered.
	_ = s.journal.Flush(ctx)
}
