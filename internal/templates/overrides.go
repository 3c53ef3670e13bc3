package templates

import (
	"fmt"
	"strconv"
)

// Override is a caller-supplied value for a declared parameter. For a choice
// parameter Value is a decimal index into the options; for a text parameter
// it is the literal replacement.
type Override struct {
	Name  string
	Value string
}

// Overrides maps parameter names to validated raw override values.
type Overrides map[string]string

// ResolveOverrides validates overrides against the header in the order given
// and returns them keyed by name. A later override of the same name wins.
func ResolveOverrides(header *Header, overrides []Override) (Overrides, error) {
	resolved := make(Overrides, len(overrides))
	for _, override := range overrides {
		if err := CheckOverride(header, override.Name, override.Value); err != nil {
			return nil, err
		}
		resolved[override.Name] = override.Value
	}
	return resolved, nil
}

// CheckOverride validates a single override against the header.
func CheckOverride(header *Header, name, value string) error {
	param, ok := header.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUndefinedParameter, name)
	}
	_, err := param.Value(value, true)
	return err
}

// parseIndex accepts only ASCII decimal digits. Values too large for an int
// are reported as out of range rather than malformed.
func parseIndex(value string) (int, error) {
	if value == "" {
		return 0, strconv.ErrSyntax
	}
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	index, err := strconv.Atoi(value)
	if err != nil {
		// only overflow is possible here
		return int(^uint(0) >> 1), nil
	}
	return index, nil
}
