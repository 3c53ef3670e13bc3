package templates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Executor runs shell commands for command references.
type Executor interface {
	Exec(ctx context.Context, cmd string) (stdout, stderr []byte, err error)
}

// Renderer substitutes parameter and command references in template bodies.
type Renderer struct {
	grammar       *Grammar
	exec          Executor
	logger        zerolog.Logger
	maxExpansions int
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithLogger sets the renderer logger.
func WithLogger(logger zerolog.Logger) RendererOption {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// WithMaxExpansions bounds the substitutions a single pass may perform.
// Zero means unbounded: a self-referential value then never terminates.
func WithMaxExpansions(n int) RendererOption {
	return func(r *Renderer) {
		r.maxExpansions = n
	}
}

// NewRenderer creates a renderer that runs commands through exec.
func NewRenderer(exec Executor, opts ...RendererOption) *Renderer {
	r := &Renderer{
		grammar: defaultGrammar,
		exec:    exec,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RenderText parses raw template text, validates overrides against its
// header, and returns the fully substituted body.
func (r *Renderer) RenderText(ctx context.Context, raw string, overrides []Override) (string, error) {
	tmpl, err := r.grammar.Parse("", raw)
	if err != nil {
		return "", err
	}
	resolved, err := ResolveOverrides(tmpl.Header, overrides)
	if err != nil {
		return "", err
	}
	return r.Render(ctx, tmpl, resolved)
}

// Render expands every parameter reference in the body, then every command
// reference. Overrides are normally produced by ResolveOverrides; a choice
// override that is not a valid index fails with ErrInvalidArgument when its
// parameter is referenced.
func (r *Renderer) Render(ctx context.Context, tmpl *Template, overrides Overrides) (string, error) {
	if tmpl == nil {
		return "", fmt.Errorf("template is required")
	}

	run := *r
	run.logger = r.logger.With().
		Str("run_id", uuid.NewString()).
		Str("template", tmpl.Name).
		Logger()

	body, err := run.ExpandParameters(tmpl.Header, tmpl.Body, overrides)
	if err != nil {
		return "", err
	}
	return run.ExpandCommands(ctx, body)
}

// ExpandParameters replaces the leftmost parameter reference and rescans the
// result until none is left, so values containing references expand too.
func (r *Renderer) ExpandParameters(header *Header, body string, overrides Overrides) (string, error) {
	for count := 1; ; count++ {
		loc := r.grammar.parameterRef.FindStringSubmatchIndex(body)
		if loc == nil {
			return body, nil
		}
		if err := r.checkLimit(count); err != nil {
			return "", err
		}

		name := body[loc[4]:loc[5]]
		param, ok := header.Lookup(name)
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrUndefinedVariable, name)
		}
		override, overridden := overrides[name]
		value, err := param.Value(override, overridden)
		if err != nil {
			return "", err
		}

		r.logger.Debug().
			Str("parameter", name).
			Bool("override", overridden).
			Int("offset", loc[2]).
			Msg("substituting parameter")

		body = body[:loc[2]] + value + body[loc[3]:]
	}
}

// ExpandCommands runs the leftmost command reference, splices its stdout in
// place, and rescans. Exit status and stderr never fail the pass.
func (r *Renderer) ExpandCommands(ctx context.Context, body string) (string, error) {
	for count := 1; ; count++ {
		loc := r.grammar.commandRef.FindStringSubmatchIndex(body)
		if loc == nil {
			return body, nil
		}
		if err := r.checkLimit(count); err != nil {
			return "", err
		}
		if r.exec == nil {
			return "", fmt.Errorf("%w: no executor configured", ErrCommandStart)
		}

		command := body[loc[4]:loc[5]]
		started := time.Now()
		stdout, stderr, err := r.exec.Exec(ctx, command)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}

		event := r.logger.Debug()
		if err != nil {
			var exitErr exitCoder
			if !errors.As(err, &exitErr) {
				return "", fmt.Errorf("%w: %q: %v", ErrCommandStart, command, err)
			}
			event = event.Int("exit_code", exitErr.ExitCode())
		}
		event.
			Str("command", command).
			Int("stdout_bytes", len(stdout)).
			Int("stderr_bytes", len(stderr)).
			Dur("duration", time.Since(started)).
			Msg("command executed")

		body = body[:loc[2]] + string(stdout) + body[loc[3]:]
	}
}

// exitCoder is satisfied by *exec.ExitError: the command ran and exited.
type exitCoder interface {
	ExitCode() int
}

func (r *Renderer) checkLimit(count int) error {
	if r.maxExpansions > 0 && count > r.maxExpansions {
		return fmt.Errorf("%w: more than %d substitutions in one pass", ErrExpansionLimit, r.maxExpansions)
	}
	return nil
}
