package system

import (
	"time"

	coresys "github.com/IlyaYakubovichh/Gojo/internal/core/system"
)

// WindowCloser is satisfied by *window.Manager.
type WindowCloser interface {
	CleanupClosedWindows() int
}

// WindowCleanupSystem destroys windows asked to close during the tick.
// Phase Cleanup.
type WindowCleanupSystem struct {
	windows WindowCloser
}

func NewWindowCleanupSystem(windows WindowCloser) *WindowCleanupSystem {
	return &WindowCleanupSystem{windows: windows}
}

func (s *WindowCleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *WindowCleanupSystem) Update(_ time.Duration) {
	s.windows.CleanupClosedWindows()
}
