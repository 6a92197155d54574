package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg, err := loadDefaultConfig()
	if err != nil {
		t.Fatalf("loadDefaultConfig() error = %v", err)
	}
	if cfg.Menu.Title == "" {
		t.Error("default title is empty")
	}
	if cfg.Menu.StartIndex != 1 {
		t.Errorf("StartIndex = %d, want 1", cfg.Menu.StartIndex)
	}
	if len(cfg.Menu.Items) != 3 {
		t.Fatalf("Items = %d, want 3", len(cfg.Menu.Items))
	}
	last := cfg.Menu.Items[2]
	if last.Key == nil || *last.Key != 9 {
		t.Errorf("last item key = %v, want 9", last.Key)
	}
	if last.Action["type"] != "echo" {
		t.Errorf("last item action type = %v, want echo", last.Action["type"])
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), `
log_level = "debug"

[menu]
title = "Tools"
start_index = 3
pause_after_action = false

[[menu.items]]
name = "Uptime"
[menu.items.action]
type = "exec"
command = "uptime"
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.Menu.Title != "Tools" {
		t.Errorf("Title = %q, want Tools", cfg.Menu.Title)
	}
	if cfg.Menu.StartIndex != 3 {
		t.Errorf("StartIndex = %d, want 3", cfg.Menu.StartIndex)
	}
	if cfg.Menu.PauseAfterAction {
		t.Error("PauseAfterAction = true, want false")
	}
	if cfg.Menu.ExitLabel != "Back to Previous Menu" {
		t.Errorf("ExitLabel = %q, want default", cfg.Menu.ExitLabel)
	}
	if len(cfg.Menu.Items) != 1 || cfg.Menu.Items[0].Name != "Uptime" {
		t.Errorf("Items = %+v, want single Uptime item", cfg.Menu.Items)
	}
}

func TestLoadFileErrors(t *testing.T) {
	if _, err := LoadFile("/nonexistent/config.toml"); err == nil {
		t.Error("LoadFile() expected error for missing file")
	}

	path := writeFile(t, t.TempDir(), "[menu\ntitle=")
	if _, err := LoadFile(path); err == nil {
		t.Error("LoadFile() expected error for invalid TOML")
	}
}

func TestLoadUsesUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "cmenu")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, dir, "[menu]\nexit_label = \"Quit\"\n")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Menu.ExitLabel != "Quit" {
		t.Errorf("ExitLabel = %q, want Quit", cfg.Menu.ExitLabel)
	}
	if len(cfg.Menu.Items) != 3 {
		t.Errorf("Items = %d, want defaults kept", len(cfg.Menu.Items))
	}
}

func TestLoadFallsBackOnBrokenUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "cmenu")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, dir, "not toml = = =")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Menu.Title != "Main Menu" {
		t.Errorf("Title = %q, want default", cfg.Menu.Title)
	}
}

func TestInitUserConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if err := InitUserConfig(); err != nil {
		t.Fatalf("InitUserConfig() error = %v", err)
	}
	data, err := os.ReadFile(GetUserConfigPath())
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != GetDefaultConfigContent() {
		t.Error("written config differs from the embedded default")
	}

	if err := InitUserConfig(); err == nil {
		t.Error("InitUserConfig() expected error when config exists")
	}
}
