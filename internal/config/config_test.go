package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	yaml := `templates:
  dirs:
    - /srv/templates
  extension: .tpl
shell:
  path: /bin/bash
  args: ["-eu", "-c"]
render:
  max_expansions: 50
logging:
  level: debug
  format: json
ui:
  theme: high-contrast
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []string{"/srv/templates"}, cfg.Templates.Dirs)
	require.Equal(t, ".tpl", cfg.Templates.Extension)
	require.Equal(t, "/bin/bash", cfg.Shell.Path)
	require.Equal(t, []string{"-eu", "-c"}, cfg.Shell.Args)
	require.Equal(t, 50, cfg.Render.MaxExpansions)
	require.Equal(t, "debug", cfg.Logging.Level)
	require.Equal(t, "json", cfg.Logging.Format)
	require.Equal(t, "high-contrast", cfg.UI.Theme)
}

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, DefaultConfig().Shell.Path, cfg.Shell.Path)
	require.Equal(t, ".template", cfg.Templates.Extension)
	require.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("TMPL_LOGGING_LEVEL", "info")
	t.Setenv("TMPL_RENDER_MAX_EXPANSIONS", "7")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "info", cfg.Logging.Level)
	require.Equal(t, 7, cfg.Render.MaxExpansions)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty shell", func(c *Config) { c.Shell.Path = " " }},
		{"extension without dot", func(c *Config) { c.Templates.Extension = "template" }},
		{"negative expansions", func(c *Config) { c.Render.MaxExpansions = -1 }},
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }},
		{"bad theme", func(c *Config) { c.UI.Theme = "neon" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
