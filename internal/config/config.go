// Package config loads listkeep's settings.
//
// Configuration follows the XDG Base Directory layout:
//   - Config: ~/.config/listkeep/config.yaml (LISTKEEP_CONFIG overrides the path)
//   - Data:   ~/.local/share/listkeep/ (storage files)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"listkeep/internal/listview"
	"listkeep/internal/storage"
)

const appName = "listkeep"

type StorageConfig struct {
	Backend string `yaml:"backend,omitempty" json:"backend,omitempty"` // sqlite, file, memory
	Dir     string `yaml:"dir,omitempty" json:"dir,omitempty"`
	Key     string `yaml:"key,omitempty" json:"key,omitempty"`
	// Watch reloads the list when another process changes storage.
	Watch *bool `yaml:"watch,omitempty" json:"watch,omitempty"`
}

type InputConfig struct {
	Trim                    bool  `yaml:"trim,omitempty" json:"trim,omitempty"`
	RecheckDuplicatesOnEdit *bool `yaml:"recheck_duplicates_on_edit,omitempty" json:"recheck_duplicates_on_edit,omitempty"`
	CharLimit               int   `yaml:"char_limit,omitempty" json:"char_limit,omitempty"`
}

type FilterConfig struct {
	Mode string `yaml:"mode,omitempty" json:"mode,omitempty"` // substring, fuzzy
}

type UIConfig struct {
	Glyphs string `yaml:"glyphs,omitempty" json:"glyphs,omitempty"` // unicode, ascii
	Mouse  *bool  `yaml:"mouse,omitempty" json:"mouse,omitempty"`
}

type LogConfig struct {
	Path  string `yaml:"path,omitempty" json:"path,omitempty"`
	Level string `yaml:"level,omitempty" json:"level,omitempty"` // debug, info, warn, error
}

// Config is the top-level configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage,omitempty" json:"storage,omitempty"`
	Input   InputConfig   `yaml:"input,omitempty" json:"input,omitempty"`
	Filter  FilterConfig  `yaml:"filter,omitempty" json:"filter,omitempty"`
	UI      UIConfig      `yaml:"ui,omitempty" json:"ui,omitempty"`
	Log     LogConfig     `yaml:"log,omitempty" json:"log,omitempty"`
}

func boolPtr(b bool) *bool { return &b }

// Default returns a Config with every field set.
func Default() Config {
	return Config{
		Storage: StorageConfig{
			Backend: storage.BackendSQLite,
			Dir:     DataDir(),
			Key:     storage.DefaultKey,
			Watch:   boolPtr(true),
		},
		Input: InputConfig{
			RecheckDuplicatesOnEdit: boolPtr(true),
			CharLimit:               200,
		},
		Filter: FilterConfig{Mode: string(listview.FilterSubstring)},
		UI:     UIConfig{Glyphs: "unicode", Mouse: boolPtr(true)},
		Log:    LogConfig{Level: "info"},
	}
}

// ConfigDir returns the XDG config directory for listkeep.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// DataDir returns the XDG data directory for listkeep.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", appName)
}

// Path returns the config file location.
func Path() string {
	if v := strings.TrimSpace(os.Getenv("LISTKEEP_CONFIG")); v != "" {
		return v
	}
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file at Path. A missing file yields Default.
func Load() (Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads config from a specific path. A missing file yields Default.
func LoadFrom(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	cfg.fillDefaults()
	cfg.Storage.Dir = expandHome(cfg.Storage.Dir)
	cfg.Log.Path = expandHome(cfg.Log.Path)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// fillDefaults restores defaults for fields a config file set to zero values.
func (c *Config) fillDefaults() {
	d := Default()
	if strings.TrimSpace(c.Storage.Backend) == "" {
		c.Storage.Backend = d.Storage.Backend
	}
	if strings.TrimSpace(c.Storage.Dir) == "" {
		c.Storage.Dir = d.Storage.Dir
	}
	if strings.TrimSpace(c.Storage.Key) == "" {
		c.Storage.Key = d.Storage.Key
	}
	if c.Storage.Watch == nil {
		c.Storage.Watch = d.Storage.Watch
	}
	if c.Input.RecheckDuplicatesOnEdit == nil {
		c.Input.RecheckDuplicatesOnEdit = d.Input.RecheckDuplicatesOnEdit
	}
	if c.Input.CharLimit <= 0 {
		c.Input.CharLimit = d.Input.CharLimit
	}
	if strings.TrimSpace(c.Filter.Mode) == "" {
		c.Filter.Mode = d.Filter.Mode
	}
	if strings.TrimSpace(c.UI.Glyphs) == "" {
		c.UI.Glyphs = d.UI.Glyphs
	}
	if c.UI.Mouse == nil {
		c.UI.Mouse = d.UI.Mouse
	}
	if strings.TrimSpace(c.Log.Level) == "" {
		c.Log.Level = d.Log.Level
	}
}

// Validate rejects unknown enum values.
func (c Config) Validate() error {
	switch strings.ToLower(c.Storage.Backend) {
	case storage.BackendSQLite, storage.BackendFile, storage.BackendMemory:
	default:
		return fmt.Errorf("storage.backend: unknown backend %q", c.Storage.Backend)
	}
	if _, err := listview.ParseFilterMode(c.Filter.Mode); err != nil {
		return fmt.Errorf("filter.mode: %w", err)
	}
	switch strings.ToLower(c.UI.Glyphs) {
	case "unicode", "utf8", "ascii":
	default:
		return fmt.Errorf("ui.glyphs: unknown glyph set %q", c.UI.Glyphs)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}
	return nil
}

// WatchEnabled reports the effective storage.watch value.
func (c Config) WatchEnabled() bool {
	return c.Storage.Watch == nil || *c.Storage.Watch
}

// MouseEnabled reports the effective ui.mouse value.
func (c Config) MouseEnabled() bool {
	return c.UI.Mouse == nil || *c.UI.Mouse
}

// ControllerOptions maps the input and filter sections onto listview options.
func (c Config) ControllerOptions() listview.Options {
	mode, _ := listview.ParseFilterMode(c.Filter.Mode)
	return listview.Options{
		Trim:                    c.Input.Trim,
		RecheckDuplicatesOnEdit: c.Input.RecheckDuplicatesOnEdit == nil || *c.Input.RecheckDuplicatesOnEdit,
		FilterMode:              mode,
	}
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
