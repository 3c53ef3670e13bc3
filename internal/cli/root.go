// Package cli provides the tmpl command-line interface.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/opencode-ai/tmpl/internal/config"
	"github.com/opencode-ai/tmpl/internal/logging"
	"github.com/opencode-ai/tmpl/internal/templates"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Version is set at build time.
var Version = "0.1.0"

var (
	cfgFile        string
	logLevel       string
	logFormat      string
	noColor        bool
	nonInteractive bool

	appConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "tmpl",
	Short: "Render text templates with parameters and shell commands",
	Long: `tmpl renders a template file by substituting $:(name) parameter
references and $:{"command"} shell command references.

Each template starts with a header describing its parameters, terminated
by a line of dashes. Run 'tmpl show <template>' to see a template's
parameters and 'tmpl render <template> name:value ...' to render it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default $XDG_CONFIG_HOME/tmpl/config.yaml)")
	flags.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&logFormat, "log-format", "", "log format: console or json")
	flags.BoolVar(&noColor, "no-color", false, "disable colored output")
	flags.BoolVar(&nonInteractive, "non-interactive", false, "never prompt for input")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", templates.ErrInvalidArgument, err)
	})
}

// Execute runs the root command.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with the given context.
func ExecuteContext(ctx context.Context) error {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")
	return rootCmd.ExecuteContext(ctx)
}

func initConfig() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logging.Init(logging.Config{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		NoColor: noColor || !term.IsTerminal(int(os.Stderr.Fd())),
	}); err != nil {
		return err
	}

	appConfig = cfg
	logger := logging.Component("cli")
	logger.Debug().
		Str("config", cfgFile).
		Strs("template_dirs", cfg.Templates.Dirs).
		Msg("configuration loaded")
	return nil
}

// GetConfig returns the loaded configuration, or defaults before loading.
func GetConfig() *config.Config {
	if appConfig == nil {
		return config.DefaultConfig()
	}
	return appConfig
}

func searchPaths(cfg *config.Config) []string {
	workDir, err := os.Getwd()
	if err != nil {
		workDir = ""
	}
	return templates.TemplateSearchPaths(workDir, cfg.Templates.Dirs)
}

func findTemplate(name string) (*templates.Template, error) {
	cfg := GetConfig()
	return templates.FindTemplate(name, searchPaths(cfg), cfg.Templates.Extension)
}
