package system

import (
	"sort"
	"time"

	"go.uber.org/zap"
)

const overrunLogInterval = time.Second

// RunnerStats are cumulative tick counters.
type RunnerStats struct {
	Ticks    uint64
	Overruns uint64        // ticks that took longer than the budget
	LastTick time.Duration // wall time of the most recent Tick
}

// Runner executes systems in phase order each tick. Systems sharing a phase
// run in registration order. A tick slower than the budget is counted and
// reported, at most once per second, with the slowest phase.
type Runner struct {
	systems []System
	sorted  bool
	budget  time.Duration
	stats   RunnerStats
	lastLog time.Time
	log     *zap.Logger
}

// NewRunner creates a runner. budget is usually the tick rate; 0 disables
// overrun detection.
func NewRunner(log *zap.Logger, budget time.Duration) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		systems: make([]System, 0, 8),
		budget:  budget,
		log:     log.Named("Runner"),
	}
}

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
}

func (r *Runner) Tick(dt time.Duration) {
	r.ensureSorted()

	start := time.Now()
	var (
		slowest     Phase
		slowestTook time.Duration
		phaseStart  = start
	)
	for i, s := range r.systems {
		s.Update(dt)
		last := i == len(r.systems)-1
		if last || r.systems[i+1].Phase() != s.Phase() {
			now := time.Now()
			if took := now.Sub(phaseStart); took > slowestTook {
				slowest, slowestTook = s.Phase(), took
			}
			phaseStart = now
		}
	}

	r.stats.Ticks++
	r.stats.LastTick = time.Since(start)
	if r.budget <= 0 || r.stats.LastTick <= r.budget {
		return
	}
	r.stats.Overruns++
	if time.Since(r.lastLog) < overrunLogInterval {
		return
	}
	r.lastLog = time.Now()
	r.log.Warn("tick over budget",
		zap.Duration("took", r.stats.LastTick),
		zap.Duration("budget", r.budget),
		zap.Stringer("slowest_phase", slowest),
		zap.Duration("slowest_took", slowestTook),
		zap.Uint64("overruns", r.stats.Overruns),
	)
}

// TickPhase runs only the systems of one phase, e.g. to pump input between
// full ticks.
func (r *Runner) TickPhase(phase Phase, dt time.Duration) {
	r.ensureSorted()
	for _, s := range r.systems {
		if s.Phase() == phase {
			s.Update(dt)
		}
	}
}

// Len returns the number of registered systems.
func (r *Runner) Len() int { return len(r.systems) }

func (r *Runner) Stats() RunnerStats { return r.stats }

func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.systems, func(i, j int) bool {
			return r.systems[i].Phase() < r.systems[j].Phase()
		})
		r.sorted = true
	}
}
