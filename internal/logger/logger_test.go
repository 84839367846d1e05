package logger

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitCreatesLogDirectory(t *testing.T) {
	dir := t.TempDir()

	if err := Init(Config{Debug: false, ConfigDir: dir}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after Init")
	}

	if _, err := os.Stat(filepath.Join(dir, "logs")); err != nil {
		t.Errorf("log directory not created: %v", err)
	}
}

func TestPackageHelpersSafeBeforeInit(t *testing.T) {
	saved := Logger
	Logger = nil
	defer func() { Logger = saved }()

	// Must not panic with a nil global logger.
	Debug("debug message")
	Info("info message", "key", "value")
	Warn("warn message")
	Error("error message")
}
