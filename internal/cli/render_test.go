package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/opencode-ai/tmpl/internal/config"
	"github.com/opencode-ai/tmpl/internal/templates"
	"github.com/stretchr/testify/require"
)

type fakeExecutor struct {
	outputs map[string]string
	calls   []string
}

func (f *fakeExecutor) Exec(ctx context.Context, cmd string) ([]byte, []byte, error) {
	f.calls = append(f.calls, cmd)
	return []byte(f.outputs[cmd]), nil, nil
}

const demoTemplate = `"A demo"; core
name : "world"; who to greet
greeting : ["Hi", "Hello", "Hey"]; pick one
---
$:(greeting) $:(name)! $:{"date"}
`

// setupCLI isolates a test in a temporary working directory holding
// templates/demo.template, with user config and home pointing elsewhere.
func setupCLI(t *testing.T) (string, *fakeExecutor) {
	t.Helper()

	work := t.TempDir()
	t.Chdir(work)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("TMPL_NON_INTERACTIVE", "1")

	dir := filepath.Join(work, "templates")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "demo.template"), []byte(demoTemplate), 0644))

	exec := &fakeExecutor{outputs: map[string]string{"date": "today"}}
	prevExecutor := newExecutor
	newExecutor = func(cfg *config.Config) templates.Executor { return exec }

	t.Cleanup(func() {
		newExecutor = prevExecutor
		cfgFile, logLevel, logFormat = "", "", ""
		noColor, nonInteractive = false, false
		renderOutput, renderInteractive, renderMaxExpansions = "", false, -1
		showFormat, listFormat = FormatText, FormatText
		appConfig = nil
	})

	return work, exec
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := ExecuteContext(context.Background())
	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	_, exec := setupCLI(t)

	out, err := runCLI(t, "render", "demo", "name:custom", "greeting:", "2")
	require.NoError(t, err)
	require.Equal(t, "Hey custom! today\n", out)
	require.Equal(t, []string{"date"}, exec.calls)
}

func TestRenderCommandDefaults(t *testing.T) {
	setupCLI(t)

	out, err := runCLI(t, "render", "demo")
	require.NoError(t, err)
	require.Equal(t, "Hi world! today\n", out)
}

func TestRenderCommandDashValues(t *testing.T) {
	setupCLI(t)

	out, err := runCLI(t, "render", "demo", "name:", "-x")
	require.NoError(t, err)
	require.Equal(t, "Hi -x! today\n", out)

	out, err = runCLI(t, "render", "demo", "name:", "--help")
	require.NoError(t, err)
	require.Equal(t, "Hi --help! today\n", out)
}

func TestRenderCommandDebugLogging(t *testing.T) {
	setupCLI(t)

	out, err := runCLI(t, "--log-level", "debug", "--log-format", "json", "render", "demo")
	require.NoError(t, err)
	require.Equal(t, "Hi world! today\n", out)
}

func TestRenderCommandOutputFile(t *testing.T) {
	work, _ := setupCLI(t)
	target := filepath.Join(work, "out.txt")

	out, err := runCLI(t, "render", "-o", target, "demo")
	require.NoError(t, err)
	require.Empty(t, out)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	require.Equal(t, "Hi world! today\n", string(data))
}

func TestRenderCommandFailures(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"no template", []string{"render"}, ExitNoTemplate},
		{"unknown template", []string{"render", "missing"}, ExitFileNotFound},
		{"choice out of range", []string{"render", "demo", "greeting:5"}, ExitInvalidArgument},
		{"choice not a number", []string{"render", "demo", "greeting:Hey"}, ExitInvalidArgument},
		{"undefined parameter", []string{"render", "demo", "nope:1"}, ExitUndefinedParameter},
		{"malformed override", []string{"render", "demo", "custom"}, ExitInvalidArgument},
		{"interactive without terminal", []string{"render", "--interactive", "demo"}, ExitInvalidArgument},
		{"unknown flag", []string{"render", "--bogus", "demo"}, ExitInvalidArgument},
		{"flag after template is a malformed parameter", []string{"render", "demo", "--bogus"}, ExitInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, exec := setupCLI(t)
			_, err := runCLI(t, tt.args...)
			require.Error(t, err)
			require.Equal(t, tt.code, ExitCode(err), "error: %v", err)
			require.Empty(t, exec.calls)
		})
	}
}

func TestRenderCommandUndefinedVariable(t *testing.T) {
	work, _ := setupCLI(t)
	path := filepath.Join(work, "templates", "broken.template")
	require.NoError(t, os.WriteFile(path, []byte("---\n$:(missing)\n"), 0644))

	out, err := runCLI(t, "render", "broken")
	require.Equal(t, ExitUndefinedVariable, ExitCode(err))
	require.Empty(t, out)
}

func TestRenderCommandMaxExpansions(t *testing.T) {
	work, _ := setupCLI(t)
	path := filepath.Join(work, "templates", "loop.template")
	require.NoError(t, os.WriteFile(path, []byte("loop : \"$:(loop)\"\n---\n$:(loop)"), 0644))

	_, err := runCLI(t, "render", "--max-expansions", "10", "loop")
	require.Equal(t, ExitExpansionLimit, ExitCode(err))
}

func TestRenderCommandDirectPath(t *testing.T) {
	work, _ := setupCLI(t)

	out, err := runCLI(t, "render", filepath.Join(work, "templates", "demo.template"), "name:path")
	require.NoError(t, err)
	require.Equal(t, "Hi path! today\n", out)
}

func TestVersionCommand(t *testing.T) {
	setupCLI(t)

	out, err := runCLI(t, "version")
	require.NoError(t, err)
	require.Equal(t, "tmpl "+Version+"\n", out)
}
