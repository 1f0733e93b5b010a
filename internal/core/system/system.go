package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput      Phase = iota // 0: pump platform events into the event core
	PhasePreUpdate               // 1: drain the deferred event queue
	PhaseUpdate                  // 2: engine logic, script reloads
	PhasePostUpdate              // 3: journal flush, diagnostics
	PhaseCleanup                 // 4: erase closed windows
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhasePreUpdate:
		return "pre-update"
	case PhaseUpdate:
		return "update"
	case PhasePostUpdate:
		return "post-update"
	case PhaseCleanup:
		return "cleanup"
	}
	return "unknown"
}

// System is the interface every main-loop system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
