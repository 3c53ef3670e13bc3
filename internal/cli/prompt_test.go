package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/opencode-ai/tmpl/internal/templates"
	"github.com/stretchr/testify/require"
)

type fakePrompter struct {
	selects map[string]int
	inputs  map[string]string
	asked   []string
	err     error
}

func (f *fakePrompter) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	f.asked = append(f.asked, cfg.Message)
	if f.err != nil {
		return 0, f.err
	}
	return f.selects[cfg.Message], nil
}

func (f *fakePrompter) Input(ctx context.Context, cfg InputConfig) (string, error) {
	f.asked = append(f.asked, cfg.Message)
	if f.err != nil {
		return "", f.err
	}
	if value, ok := f.inputs[cfg.Message]; ok {
		return value, nil
	}
	return cfg.Default, nil
}

func TestPromptOverrides(t *testing.T) {
	header, err := templates.ParseHeader(`name : "world"
greeting : ["Hi", "Hey"]
empty : []
title : "Dr"
`)
	require.NoError(t, err)

	prompter := &fakePrompter{
		selects: map[string]int{"greeting": 1},
		inputs:  map[string]string{"name": "Ada"},
	}
	given := []templates.Override{{Name: "title", Value: "Prof"}}

	got, err := promptOverrides(context.Background(), prompter, header, given)
	require.NoError(t, err)
	require.Equal(t, []string{"name", "greeting"}, prompter.asked)
	require.Equal(t, []templates.Override{
		{Name: "title", Value: "Prof"},
		{Name: "name", Value: "Ada"},
		{Name: "greeting", Value: "1"},
	}, got)

	resolved, err := templates.ResolveOverrides(header, got)
	require.NoError(t, err)
	require.Equal(t, "1", resolved["greeting"])
}

func TestPromptOverridesAborted(t *testing.T) {
	header, err := templates.ParseHeader(`name : "world"`)
	require.NoError(t, err)

	prompter := &fakePrompter{err: translateSurveyErr(terminal.InterruptErr)}
	_, err = promptOverrides(context.Background(), prompter, header, nil)
	if !errors.Is(err, ErrPromptAborted) {
		t.Fatalf("promptOverrides() error = %v, want ErrPromptAborted", err)
	}
}

func TestTranslateSurveyErr(t *testing.T) {
	other := errors.New("broken terminal")
	require.Equal(t, other, translateSurveyErr(other))
	require.ErrorIs(t, translateSurveyErr(terminal.InterruptErr), ErrPromptAborted)
}
