package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/opencode-ai/tmpl/internal/config"
	"github.com/opencode-ai/tmpl/internal/logging"
	"github.com/opencode-ai/tmpl/internal/shell"
	"github.com/opencode-ai/tmpl/internal/templates"
	"github.com/spf13/cobra"
)

var (
	renderOutput        string
	renderInteractive   bool
	renderMaxExpansions int
)

// newExecutor builds the command executor; tests replace it.
var newExecutor = func(cfg *config.Config) templates.Executor {
	return &shell.LocalExecutor{
		Shell: cfg.Shell.Path,
		Args:  cfg.Shell.Args,
		Stdin: os.Stdin,
	}
}

// newPrompter builds the interactive prompter; tests replace it.
var newPrompter = func() Prompter {
	return &surveyPrompter{}
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "write rendered text to a file instead of stdout")
	renderCmd.Flags().BoolVarP(&renderInteractive, "interactive", "i", false, "prompt for parameters not given as arguments")
	renderCmd.Flags().IntVar(&renderMaxExpansions, "max-expansions", -1, "fail after this many substitutions in one pass (0 = unbounded, default from config)")

	// Everything after the template name is a parameter, even "-x".
	renderCmd.Flags().SetInterspersed(false)
}

var renderCmd = &cobra.Command{
	Use:   "render [flags] <template> [name:value | name: value]...",
	Short: "Render a template",
	Long: `Render a template to stdout.

Parameters are given as name:value, or as name: followed by the value in
the next argument. Choice parameters take the index of the option.
Flags go before the template name; every argument after it is a parameter,
so values may start with a dash.

Command references run in a shell after all parameters are substituted;
their stdout replaces the reference whatever their exit status.`,
	Example: `  # Render with defaults
  tmpl render greeting

  # Override a text parameter and pick the third option of a choice
  tmpl render greeting name:Ada greeting:2

  # Values with spaces use the two-argument form
  tmpl render greeting name: "Ada Lovelace"

  # Prompt for every parameter
  tmpl render --interactive -o README.md readme`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return templates.ErrNoTemplate
		}
		return runRender(cmd.Context(), cmd.OutOrStdout(), args[0], args[1:])
	},
}

func runRender(ctx context.Context, out io.Writer, name string, tokens []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := GetConfig()
	logger := logging.Component("cli")

	tmpl, err := findTemplate(name)
	if err != nil {
		return err
	}
	logger.Debug().Str("template", tmpl.Name).Str("source", tmpl.Source).Msg("template loaded")

	overrides, err := ParseOverrideArgs(tokens)
	if err != nil {
		return err
	}
	if _, err := templates.ResolveOverrides(tmpl.Header, overrides); err != nil {
		return err
	}

	if renderInteractive {
		if IsNonInteractive() {
			return fmt.Errorf("%w: --interactive requires a terminal", templates.ErrInvalidArgument)
		}
		overrides, err = promptOverrides(ctx, newPrompter(), tmpl.Header, overrides)
		if err != nil {
			return err
		}
	}

	resolved, err := templates.ResolveOverrides(tmpl.Header, overrides)
	if err != nil {
		return err
	}

	maxExpansions := cfg.Render.MaxExpansions
	if renderMaxExpansions >= 0 {
		maxExpansions = renderMaxExpansions
	}
	renderer := templates.NewRenderer(newExecutor(cfg),
		templates.WithLogger(logging.Component("renderer")),
		templates.WithMaxExpansions(maxExpansions),
	)

	text, err := renderer.Render(ctx, tmpl, resolved)
	if err != nil {
		return err
	}

	if renderOutput != "" {
		if err := os.WriteFile(renderOutput, []byte(text), 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	if _, err := io.WriteString(out, text); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
