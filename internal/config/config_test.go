package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"listkeep/internal/listview"
)

func TestLoadFrom_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage.Backend != "sqlite" || cfg.Storage.Key != "items" {
		t.Fatalf("unexpected storage defaults: %#v", cfg.Storage)
	}
	if !cfg.WatchEnabled() || !cfg.MouseEnabled() {
		t.Fatal("expected watch and mouse enabled by default")
	}
	if cfg.Input.CharLimit != 200 {
		t.Fatalf("char limit = %d", cfg.Input.CharLimit)
	}
	opts := cfg.ControllerOptions()
	if opts.Trim || !opts.RecheckDuplicatesOnEdit || opts.FilterMode != listview.FilterSubstring {
		t.Fatalf("unexpected controller options %#v", opts)
	}
}

func TestLoadFrom_PartialFileKeepsOtherDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
storage:
  backend: file
  dir: ~/lists
  watch: false
input:
  trim: true
  recheck_duplicates_on_edit: false
filter:
  mode: fuzzy
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Backend != "file" || cfg.Storage.Key != "items" {
		t.Fatalf("storage = %#v", cfg.Storage)
	}
	if strings.HasPrefix(cfg.Storage.Dir, "~") || !strings.HasSuffix(cfg.Storage.Dir, "lists") {
		t.Fatalf("expected expanded dir, got %q", cfg.Storage.Dir)
	}
	if cfg.WatchEnabled() {
		t.Fatal("expected watch disabled")
	}
	opts := cfg.ControllerOptions()
	if !opts.Trim || opts.RecheckDuplicatesOnEdit || opts.FilterMode != listview.FilterFuzzy {
		t.Fatalf("unexpected controller options %#v", opts)
	}
	if cfg.UI.Glyphs != "unicode" || cfg.Log.Level != "info" {
		t.Fatalf("defaults lost: %#v %#v", cfg.UI, cfg.Log)
	}
}

func TestLoadFrom_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "backend", content: "storage:\n  backend: redis\n", wantErr: "storage.backend"},
		{name: "filter", content: "filter:\n  mode: regex\n", wantErr: "filter.mode"},
		{name: "glyphs", content: "ui:\n  glyphs: emoji\n", wantErr: "ui.glyphs"},
		{name: "level", content: "log:\n  level: trace\n", wantErr: "log.level"},
		{name: "yaml", content: "storage: [\n", wantErr: "parsing config"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := LoadFrom(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Storage.Backend = "file"
	cfg.Filter.Mode = "fuzzy"
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Storage.Backend != "file" || got.Filter.Mode != "fuzzy" {
		t.Fatalf("round trip lost values: %#v", got)
	}
}

func TestPath_EnvOverride(t *testing.T) {
	t.Setenv("LISTKEEP_CONFIG", "/tmp/custom.yaml")
	if Path() != "/tmp/custom.yaml" {
		t.Fatalf("path = %q", Path())
	}
	t.Setenv("LISTKEEP_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if want := filepath.Join("/xdg", "listkeep", "config.yaml"); Path() != want {
		t.Fatalf("path = %q, want %q", Path(), want)
	}
}
