package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_NoSinkIsNop(t *testing.T) {
	logger, err := New(Options{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if logger.Core().Enabled(0) {
		t.Error("expected a disabled core")
	}
}

func TestNew_FileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "alchemyrand.log")

	logger, err := New(Options{File: path, Level: "debug"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Debug("captured ingredient effects")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	if !strings.Contains(string(data), "captured ingredient effects") {
		t.Errorf("expected entry in log, got %s", data)
	}
}

func TestNew_BadLevel(t *testing.T) {
	if _, err := New(Options{Console: true, Level: "loud"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
