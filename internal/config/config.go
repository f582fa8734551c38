package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	FileNameYAML = "config.yaml"
	FileNameTOML = "config.toml"
)

const (
	DefaultDialogLabel      = "Commit sha or ref:"
	DefaultDialogAcceptText = "Open commit"
	DefaultTelemetryFile    = "telemetry.jsonl"
	DefaultStateFile        = "state.db"
	DefaultViewWidth        = 80
	minViewWidth            = 20
)

type Config struct {
	Telemetry TelemetryConfig `yaml:"telemetry" toml:"telemetry"`
	Dialog    DialogConfig    `yaml:"dialog" toml:"dialog"`
	View      ViewConfig      `yaml:"view" toml:"view"`
	State     StateConfig     `yaml:"state" toml:"state"`
}

type TelemetryConfig struct {
	Enabled *bool  `yaml:"enabled" toml:"enabled"`
	File    string `yaml:"file" toml:"file"`
}

type DialogConfig struct {
	Label      string `yaml:"label" toml:"label"`
	AcceptText string `yaml:"accept_text" toml:"accept_text"`
}

type ViewConfig struct {
	Markdown *bool `yaml:"markdown" toml:"markdown"`
	Width    int   `yaml:"width" toml:"width"`
}

type StateConfig struct {
	File string `yaml:"file" toml:"file"`
}

func Default() Config {
	var cfg Config
	cfg.applyDefaults()
	return cfg
}

// Load reads config.yaml from rootDir, falling back to config.toml. A missing
// file yields the defaults.
func Load(rootDir string) (Config, error) {
	if strings.TrimSpace(rootDir) == "" {
		return Config{}, fmt.Errorf("root directory is required")
	}
	var cfg Config
	path, data, err := readFirst(rootDir, FileNameYAML, FileNameTOML)
	if err != nil {
		return Config{}, err
	}
	switch filepath.Ext(path) {
	case ".yaml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func readFirst(rootDir string, names ...string) (string, []byte, error) {
	for _, name := range names {
		path := filepath.Join(rootDir, name)
		data, err := os.ReadFile(path)
		if err == nil {
			return path, data, nil
		}
		if !os.IsNotExist(err) {
			return "", nil, err
		}
	}
	return "", nil, nil
}

func (c Config) validate() error {
	if c.View.Width != 0 && c.View.Width < minViewWidth {
		return fmt.Errorf("view.width must be at least %d, got %d", minViewWidth, c.View.Width)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Telemetry.Enabled == nil {
		c.Telemetry.Enabled = boolPtr(true)
	}
	if strings.TrimSpace(c.Telemetry.File) == "" {
		c.Telemetry.File = DefaultTelemetryFile
	}
	if strings.TrimSpace(c.Dialog.Label) == "" {
		c.Dialog.Label = DefaultDialogLabel
	}
	if strings.TrimSpace(c.Dialog.AcceptText) == "" {
		c.Dialog.AcceptText = DefaultDialogAcceptText
	}
	if c.View.Markdown == nil {
		c.View.Markdown = boolPtr(true)
	}
	if c.View.Width == 0 {
		c.View.Width = DefaultViewWidth
	}
	if strings.TrimSpace(c.State.File) == "" {
		c.State.File = DefaultStateFile
	}
}

func (c Config) TelemetryEnabled() bool {
	return c.Telemetry.Enabled == nil || *c.Telemetry.Enabled
}

func (c Config) MarkdownEnabled() bool {
	return c.View.Markdown == nil || *c.View.Markdown
}

func boolPtr(v bool) *bool {
	return &v
}

// Marshal renders cfg as config.yaml content.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
