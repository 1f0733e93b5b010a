package system

import (
	"time"

	coresys "github.com/IlyaYakubovichh/Gojo/internal/core/system"
	"go.uber.org/zap"
)

// ChangeSource is satisfied by *scripting.Watcher.
type ChangeSource interface {
	Changed() (string, bool)
}

// Reloader is satisfied by *scripting.Engine.
type Reloader interface {
	Reload() error
}

// ScriptReloadSystem reloads scripts after they change on disk. Reloads run
// on the main loop so Lua never executes concurrently with dispatch.
// Phase Update.
type ScriptReloadSystem struct {
	changes ChangeSource
	scripts Reloader
	log     *zap.Logger
}

func NewScriptReloadSystem(changes ChangeSource, scripts Reloader, log *zap.Logger) *ScriptReloadSystem {
	return &ScriptReloadSystem{changes: changes, scripts: scripts, log: log}
}

func (s *ScriptReloadSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *ScriptReloadSystem) Update(_ time.Duration) {
	name, ok := s.changes.Changed()
	if !ok {
		return
	}
	s.log.Info("script changed, reloading", zap.String("file", name))
	// Engine.Reload logs its own failure and keeps the old VM.
	_ = s.scripts.Reload()
}
