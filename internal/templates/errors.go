package templates

import "errors"

// Template errors. Every failure returned by this package wraps exactly one
// of these, so callers can classify with errors.Is.
var (
	ErrNoTemplate         = errors.New("template name must be specified")
	ErrTemplateNotFound   = errors.New("template not found")
	ErrNoHeader           = errors.New("template does not contain a header")
	ErrInvalidData        = errors.New("invalid data")
	ErrUndefinedVariable  = errors.New("undefined parameter referenced")
	ErrUndefinedParameter = errors.New("parameter does not exist")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrExpansionLimit     = errors.New("expansion limit exceeded")
	ErrCommandStart       = errors.New("failed to start command")
)
