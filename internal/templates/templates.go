// Package templates provides template loading, header parsing, and rendering.
package templates

import "fmt"

// Template represents a single template file.
type Template struct {
	Name   string
	Header *Header
	Body   string
	Source string // file path or "builtin"
}

// Header is the self-describing section at the top of a template.
type Header struct {
	Description string
	Parameters  map[string]*Parameter

	// order holds parameter names in first-declaration order.
	order []string
}

// ParameterKind distinguishes free-text parameters from choice lists.
type ParameterKind string

const (
	KindText   ParameterKind = "text"
	KindChoice ParameterKind = "choice"
)

// Parameter describes a declared template parameter.
//
// Default is only meaningful for KindText and Options only for KindChoice.
// Comment is nil when the declaration carries no comment, which is distinct
// from an empty comment.
type Parameter struct {
	Name    string
	Kind    ParameterKind
	Default string
	Options []string
	Comment *string
}

// Names returns parameter names in declaration order. A redeclared name keeps
// the position of its first declaration.
func (h *Header) Names() []string {
	if h == nil {
		return nil
	}
	names := make([]string, len(h.order))
	copy(names, h.order)
	return names
}

// Lookup returns the named parameter.
func (h *Header) Lookup(name string) (*Parameter, bool) {
	if h == nil {
		return nil, false
	}
	param, ok := h.Parameters[name]
	return param, ok
}

func (h *Header) declare(param *Parameter) {
	if h.Parameters == nil {
		h.Parameters = make(map[string]*Parameter)
	}
	if _, exists := h.Parameters[param.Name]; !exists {
		h.order = append(h.order, param.Name)
	}
	h.Parameters[param.Name] = param
}

// DefaultValue is the value substituted when no override is supplied: the
// text default, the first option, or "" for an empty choice list.
func (p *Parameter) DefaultValue() string {
	switch p.Kind {
	case KindChoice:
		if len(p.Options) == 0 {
			return ""
		}
		return p.Options[0]
	default:
		return p.Default
	}
}

// Value resolves the parameter against an override. A choice override must
// be a decimal index into the options.
func (p *Parameter) Value(override string, ok bool) (string, error) {
	if !ok {
		return p.DefaultValue(), nil
	}
	if p.Kind != KindChoice {
		return override, nil
	}
	index, err := parseIndex(override)
	if err != nil {
		return "", fmt.Errorf("%w: the value of %q, %q, is not a decimal", ErrInvalidArgument, p.Name, override)
	}
	if index >= len(p.Options) {
		return "", fmt.Errorf("%w: %q index out of range: %s", ErrInvalidArgument, p.Name, override)
	}
	return p.Options[index], nil
}
