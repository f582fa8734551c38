package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !cfg.TelemetryEnabled() || !cfg.MarkdownEnabled() {
		t.Fatalf("telemetry and markdown should default on")
	}
	if cfg.Dialog.Label != DefaultDialogLabel || cfg.Dialog.AcceptText != DefaultDialogAcceptText {
		t.Fatalf("unexpected dialog defaults: %+v", cfg.Dialog)
	}
	if cfg.View.Width != DefaultViewWidth || cfg.State.File != DefaultStateFile || cfg.Telemetry.File != DefaultTelemetryFile {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileNameYAML, strings.Join([]string{
		"telemetry:",
		"  enabled: false",
		"dialog:",
		"  label: \"Ref:\"",
		"view:",
		"  markdown: false",
		"  width: 100",
	}, "\n"))
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.TelemetryEnabled() || cfg.MarkdownEnabled() {
		t.Fatalf("expected telemetry and markdown disabled")
	}
	if cfg.Dialog.Label != "Ref:" || cfg.Dialog.AcceptText != DefaultDialogAcceptText || cfg.View.Width != 100 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadTOMLFallback(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileNameTOML, strings.Join([]string{
		"[dialog]",
		"accept_text = \"Show\"",
		"[state]",
		"file = \"/var/tmp/oc.db\"",
	}, "\n"))
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Dialog.AcceptText != "Show" || cfg.State.File != "/var/tmp/oc.db" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadPrefersYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileNameYAML, "dialog:\n  label: yaml\n")
	writeFile(t, dir, FileNameTOML, "[dialog]\nlabel = \"toml\"\n")
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Dialog.Label != "yaml" {
		t.Fatalf("label = %q, want yaml", cfg.Dialog.Label)
	}
}

func TestLoadRejectsNarrowWidth(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileNameYAML, "view:\n  width: 5\n")
	if _, err := Load(dir); err == nil || !strings.Contains(err.Error(), "view.width") {
		t.Fatalf("expected width error, got %v", err)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileNameYAML, "dialog: [unterminated\n")
	if _, err := Load(dir); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoadRequiresRoot(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error")
	}
}
