package cli

import (
	"errors"

	"github.com/opencode-ai/tmpl/internal/templates"
)

// Exit statuses, one per failure kind.
const (
	ExitOK                 = 0
	ExitFailure            = 1
	ExitNoTemplate         = 2
	ExitFileNotFound       = 3
	ExitNoHeader           = 4
	ExitUndefinedVariable  = 5
	ExitInvalidData        = 6
	ExitInvalidArgument    = 7
	ExitUndefinedParameter = 8
	ExitExpansionLimit     = 9
	ExitCommandStart       = 10
)

var exitCodes = []struct {
	err  error
	code int
}{
	{templates.ErrNoTemplate, ExitNoTemplate},
	{templates.ErrTemplateNotFound, ExitFileNotFound},
	{templates.ErrNoHeader, ExitNoHeader},
	{templates.ErrUndefinedVariable, ExitUndefinedVariable},
	{templates.ErrInvalidData, ExitInvalidData},
	{templates.ErrInvalidArgument, ExitInvalidArgument},
	{templates.ErrUndefinedParameter, ExitUndefinedParameter},
	{templates.ErrExpansionLimit, ExitExpansionLimit},
	{templates.ErrCommandStart, ExitCommandStart},
}

// ExitCode maps an error returned by Execute to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	for _, entry := range exitCodes {
		if errors.Is(err, entry.err) {
			return entry.code
		}
	}
	return ExitFailure
}
