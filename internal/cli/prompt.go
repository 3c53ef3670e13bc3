package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/opencode-ai/tmpl/internal/templates"
)

// ErrPromptAborted is returned when the user interrupts a prompt.
var ErrPromptAborted = errors.New("prompt aborted")

// SelectConfig configures a single-choice prompt.
type SelectConfig struct {
	Message      string
	Options      []string
	DefaultIndex int
	Help         string
}

// InputConfig configures a text prompt.
type InputConfig struct {
	Message string
	Default string
	Help    string
}

// Prompter asks the user for parameter values.
type Prompter interface {
	Select(ctx context.Context, cfg SelectConfig) (int, error)
	Input(ctx context.Context, cfg InputConfig) (string, error)
}

// promptOverrides asks for every parameter without an override, in
// declaration order, and returns the given overrides followed by the answers.
// Choice parameters without options have nothing to ask.
func promptOverrides(ctx context.Context, prompter Prompter, header *templates.Header, given []templates.Override) ([]templates.Override, error) {
	seen := make(map[string]struct{}, len(given))
	for _, override := range given {
		seen[override.Name] = struct{}{}
	}

	result := append([]templates.Override{}, given...)
	for _, name := range header.Names() {
		if _, ok := seen[name]; ok {
			continue
		}
		param, _ := header.Lookup(name)
		help := ""
		if param.Comment != nil {
			help = *param.Comment
		}

		switch param.Kind {
		case templates.KindChoice:
			if len(param.Options) == 0 {
				continue
			}
			index, err := prompter.Select(ctx, SelectConfig{
				Message: name,
				Options: param.Options,
				Help:    help,
			})
			if err != nil {
				return nil, fmt.Errorf("prompt %q: %w", name, err)
			}
			result = append(result, templates.Override{Name: name, Value: strconv.Itoa(index)})

		default:
			value, err := prompter.Input(ctx, InputConfig{
				Message: name,
				Default: param.Default,
				Help:    help,
			})
			if err != nil {
				return nil, fmt.Errorf("prompt %q: %w", name, err)
			}
			result = append(result, templates.Override{Name: name, Value: value})
		}
	}

	return result, nil
}

type surveyPrompter struct{}

func (p *surveyPrompter) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	prompt := &survey.Select{
		Message: cfg.Message,
		Options: cfg.Options,
		Help:    cfg.Help,
	}
	if cfg.DefaultIndex >= 0 && cfg.DefaultIndex < len(cfg.Options) {
		prompt.Default = cfg.DefaultIndex
	}
	var index int
	if err := survey.AskOne(prompt, &index); err != nil {
		return 0, translateSurveyErr(err)
	}
	return index, nil
}

func (p *surveyPrompter) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	prompt := &survey.Input{
		Message: cfg.Message,
		Default: cfg.Default,
		Help:    cfg.Help,
	}
	var out string
	if err := survey.AskOne(prompt, &out); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrPromptAborted
	}
	return err
}
