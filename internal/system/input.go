// Package system holds the engine's per-tick systems. Each one adapts a
// subsystem to the phase-ordered runner in internal/core/system.
package system

import (
	"time"

	coresys "github.com/IlyaYakubovichh/Gojo/internal/core/system"
	"go.uber.org/zap"
)

// EventPoller is satisfied by *window.Manager.
type EventPoller interface {
	PollEvents() int
}

// WindowPollSystem translates pending native window events. Depending on the
// dispatch mode they are delivered at once or queued. Phase Input.
type WindowPollSystem struct {
	windows EventPoller
	log     *zap.Logger
}

func NewWindowPollSystem(windows EventPoller, log *zap.Logger) *WindowPollSystem {
	return &WindowPollSystem{windows: windows, log: log}
}

func (s *WindowPollSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *WindowPollSystem) Update(_ time.Duration) {
	if n := s.windows.PollEvents(); n > 0 {
		s.log.Debug("polled window events", zap.Int("count", n))
	}
}
