package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/IlyaYakubovichh/Gojo/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		cfg  config.LoggingConfig
		want zapcore.Level
	}{
		{config.LoggingConfig{Level: "debug", Format: "console"}, zapcore.DebugLevel},
		{config.LoggingConfig{Level: "warn", Format: "json"}, zapcore.WarnLevel},
		{config.LoggingConfig{Level: "nonsense", Format: "console"}, zapcore.InfoLevel},
	}
	for _, tt := range tests {
		log, err := New(tt.cfg)
		if err != nil {
			t.Fatalf("New(%+v) failed: %v", tt.cfg, err)
		}
		if !log.Core().Enabled(tt.want) {
			t.Errorf("%+v: level %s should be enabled", tt.cfg, tt.want)
		}
		if tt.want > zapcore.DebugLevel && log.Core().Enabled(tt.want-1) {
			t.Errorf("%+v: level %s should be disabled", tt.cfg, tt.want-1)
		}
	}
}

func TestManager_Category(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	m := NewManager(zap.New(core))

	m.Category("WindowManager").Info("window created")
	m.Shutdown()

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].LoggerName != "WindowManager" {
		t.Errorf("LoggerName = %q", entries[0].LoggerName)
	}
	if entries[1].LoggerName != "LogManager" || entries[1].Message != "ShutDown complete" {
		t.Errorf("unexpected shutdown entry %+v", entries[1])
	}
}

func TestNewManager_NilRoot(t *testing.T) {
	m := NewManager(nil)
	m.Category("x").Info("dropped")
	if m.Root() == nil {
		t.Error("Root() must never be nil")
	}
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gojo.log")
	log, err := New(config.LoggingConfig{Level: "info", Format: "json", Output: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Info("to file")
	_ = log.Sync()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(raw), "to file") {
		t.Errorf("log file missing entry: %q", raw)
	}
}
