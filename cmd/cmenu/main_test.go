package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if out != "cmenu version "+version+"\n" {
		t.Errorf("output = %q", out)
	}
}

func TestRenderCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.toml")
	content := `
[menu]
title = "Tools"
exit_label = "Quit"

[[menu.items]]
name = "A"
key = 5

[[menu.items]]
name = "B"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "--config", path, "render", "Pick one")
	if err != nil {
		t.Fatalf("render error = %v", err)
	}
	want := "Tools\n5 - A\n1 - B\n0 - Quit\nPick one\n\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestRenderCommandMissingConfig(t *testing.T) {
	if _, err := execute(t, "--config", "/nonexistent/menu.toml", "render"); err == nil {
		t.Error("expected error for missing config")
	}
}

func TestInitCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	out, err := execute(t, "init")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Config initialized at:") {
		t.Errorf("output = %q", out)
	}
	if _, err := execute(t, "init"); err == nil {
		t.Error("second init expected to fail")
	}
}
