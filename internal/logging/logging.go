// Package logging builds the engine's zap logger and the lifecycle-managed
// log subsystem that hands out per-category loggers.
package logging

import (
	"github.com/IlyaYakubovichh/Gojo/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a logger from the [logging] config section. An unknown level
// falls back to info.
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if cfg.Output != "" {
		zapCfg.OutputPaths = []string{cfg.Output}
		zapCfg.ErrorOutputPaths = []string{cfg.Output}
	}

	return zapCfg.Build()
}

// Manager is the log subsystem. It is the first subsystem started and the
// last one shut down, so every other subsystem can log during its own
// start and teardown.
type Manager struct {
	root *zap.Logger
}

func NewManager(root *zap.Logger) *Manager {
	if root == nil {
		root = zap.NewNop()
	}
	return &Manager{root: root}
}

// Root returns the uncategorised logger.
func (m *Manager) Root() *zap.Logger { return m.root }

// Category returns a logger whose entries are tagged with name, e.g.
// "WindowManager" or "Scripting".
func (m *Manager) Category(name string) *zap.Logger { return m.root.Named(name) }

// Shutdown flushes buffered entries. Sync errors on terminals (EINVAL on
// stdout) are expected and ignored.
func (m *Manager) Shutdown() {
	m.root.Named("LogManager").Info("ShutDown complete")
	_ = m.root.Sync()
}
