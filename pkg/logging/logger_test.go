package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestNewWithoutPathIsNop(t *testing.T) {
	logger, err := New("", "debug")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if logger.Core().Enabled(-1) {
		t.Error("no-op logger reports debug enabled")
	}
}

func TestNewWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "cmenu.log")

	logger, err := New(path, "debug")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Debug("menu selection")
	if err := logger.Sync(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var entry map[string]interface{}
	if err := json.Unmarshal(data, &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, data)
	}
	if entry["msg"] != "menu selection" {
		t.Errorf("msg = %v, want %q", entry["msg"], "menu selection")
	}
	if _, ok := entry["ts"]; !ok {
		t.Error("missing ts field")
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "x.log"), "loud"); err == nil {
		t.Error("New() expected error for invalid level")
	}
}
