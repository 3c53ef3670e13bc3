package cli

import (
	"fmt"
	"strings"

	"github.com/opencode-ai/tmpl/internal/templates"
)

// ParseOverrideArgs parses positional parameter tokens. A token is either
// "name:value", or "name:" with the value in the following token. The value
// of the two-token form is taken verbatim; the one-token form is trimmed.
func ParseOverrideArgs(tokens []string) ([]templates.Override, error) {
	overrides := make([]templates.Override, 0, len(tokens))

	pending := ""
	hasPending := false
	for _, token := range tokens {
		if hasPending {
			overrides = append(overrides, templates.Override{Name: pending, Value: token})
			hasPending = false
			continue
		}

		if strings.HasSuffix(token, ":") {
			pending = strings.TrimSpace(strings.TrimSuffix(token, ":"))
			if pending == "" {
				return nil, fmt.Errorf("%w: parameter name is not specified for %q", templates.ErrInvalidArgument, token)
			}
			hasPending = true
			continue
		}

		name, value, found := strings.Cut(token, ":")
		name = strings.TrimSpace(name)
		if !found || name == "" {
			return nil, fmt.Errorf("%w: parameter name is not specified for %q", templates.ErrInvalidArgument, token)
		}
		overrides = append(overrides, templates.Override{Name: name, Value: strings.TrimSpace(value)})
	}

	if hasPending {
		return nil, fmt.Errorf("%w: missing value for parameter %q", templates.ErrInvalidArgument, pending)
	}

	return overrides, nil
}
