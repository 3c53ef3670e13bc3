// Package config loads tmpl configuration from file and environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/opencode-ai/tmpl/internal/logging"
	"github.com/opencode-ai/tmpl/internal/shell"
	"github.com/opencode-ai/tmpl/internal/styles"
	"github.com/opencode-ai/tmpl/internal/templates"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. TMPL_LOGGING_LEVEL.
const EnvPrefix = "TMPL"

// Config is the full tmpl configuration.
type Config struct {
	Templates TemplatesConfig `mapstructure:"templates"`
	Shell     ShellConfig     `mapstructure:"shell"`
	Render    RenderConfig    `mapstructure:"render"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	UI        UIConfig        `mapstructure:"ui"`
}

// TemplatesConfig controls template discovery.
type TemplatesConfig struct {
	// Dirs are searched after ./templates and before the user directory.
	Dirs      []string `mapstructure:"dirs"`
	Extension string   `mapstructure:"extension"`
}

// ShellConfig selects the shell used for command references.
type ShellConfig struct {
	Path string   `mapstructure:"path"`
	Args []string `mapstructure:"args"`
}

// RenderConfig tunes the substitution engine.
type RenderConfig struct {
	// MaxExpansions bounds substitutions per pass; 0 is unbounded.
	MaxExpansions int `mapstructure:"max_expansions"`
}

// LoggingConfig controls diagnostic output on stderr.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// UIConfig controls human-readable output.
type UIConfig struct {
	Theme string `mapstructure:"theme"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Templates: TemplatesConfig{
			Extension: templates.DefaultExtension,
		},
		Shell: ShellConfig{
			Path: shell.DefaultShell,
			Args: []string{"-c"},
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
		UI: UIConfig{
			Theme: "default",
		},
	}
}

// DefaultConfigDir returns the user configuration directory for tmpl.
func DefaultConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "tmpl")
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".config", "tmpl")
	}
	return ""
}

// Load reads configuration from path, or from the default config directory
// when path is empty. A missing default file is not an error; a missing
// explicit file is.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir := DefaultConfigDir(); dir != "" {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("templates.dirs", cfg.Templates.Dirs)
	v.SetDefault("templates.extension", cfg.Templates.Extension)
	v.SetDefault("shell.path", cfg.Shell.Path)
	v.SetDefault("shell.args", cfg.Shell.Args)
	v.SetDefault("render.max_expansions", cfg.Render.MaxExpansions)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("ui.theme", cfg.UI.Theme)
}

// Validate checks the configuration for values the rest of tmpl cannot use.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Shell.Path) == "" {
		return fmt.Errorf("shell.path is required")
	}
	ext := c.Templates.Extension
	if ext == "" || !strings.HasPrefix(ext, ".") {
		return fmt.Errorf("templates.extension must start with '.', got %q", ext)
	}
	if c.Render.MaxExpansions < 0 {
		return fmt.Errorf("render.max_expansions must not be negative")
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	if _, ok := styles.Themes[c.UI.Theme]; !ok {
		return fmt.Errorf("unknown ui.theme %q", c.UI.Theme)
	}
	return nil
}
