// Package shell runs commands in a subordinate shell process.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
)

// DefaultShell is used when no shell is configured.
const DefaultShell = "/bin/sh"

// Executor runs shell commands.
type Executor interface {
	// Exec runs a command and returns its stdout and stderr output.
	Exec(ctx context.Context, cmd string) (stdout, stderr []byte, err error)
}

// LocalExecutor runs commands through a local shell, as in `sh -c <cmd>`.
type LocalExecutor struct {
	// Shell is the shell binary (defaults to DefaultShell when unset).
	Shell string

	// Args precede the command text (defaults to "-c" when nil).
	Args []string

	// Env is the command environment. Nil inherits the current process environment.
	Env []string

	// Dir is the working directory. Empty uses the current directory.
	Dir string

	// Stdin is connected to the command. Nil reads from the null device.
	Stdin io.Reader
}

// NewLocalExecutor creates an executor for the given shell and arguments.
func NewLocalExecutor(shell string, args ...string) *LocalExecutor {
	return &LocalExecutor{Shell: shell, Args: args}
}

// Exec runs cmd and waits for it to exit. Both output streams are drained
// before Exec returns. A command that exits non-zero yields an *exec.ExitError
// alongside whatever it wrote.
func (e *LocalExecutor) Exec(ctx context.Context, cmd string) (stdout, stderr []byte, err error) {
	shell := e.Shell
	if shell == "" {
		shell = DefaultShell
	}
	args := e.Args
	if args == nil {
		args = []string{"-c"}
	}

	argv := make([]string, 0, len(args)+1)
	argv = append(argv, args...)
	argv = append(argv, cmd)

	command := exec.CommandContext(ctx, shell, argv...)
	command.Env = e.Env
	if command.Env == nil {
		command.Env = os.Environ()
	}
	command.Dir = e.Dir
	command.Stdin = e.Stdin

	var outBuf, errBuf bytes.Buffer
	command.Stdout = &outBuf
	command.Stderr = &errBuf

	err = command.Run()
	return outBuf.Bytes(), errBuf.Bytes(), err
}

// ExitCode extracts the exit status from an Exec error: 0 for nil, the
// process status for an exit error, and -1 when the command never ran.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
