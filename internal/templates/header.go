package templates

import (
	"fmt"
	"regexp"
	"strings"
)

// quotedChars matches the inside of a double-quoted string. Only \" is an
// escape; any other backslash is an ordinary character, so "C:\" is the
// string C:\.
const quotedChars = `(?:\\"|[^"])`

// Grammar holds the compiled patterns for the template header and the
// reference syntax in the body. A Grammar is immutable and safe to share.
type Grammar struct {
	separator *regexp.Regexp
	property  *regexp.Regexp
	text      *regexp.Regexp
	array     *regexp.Regexp
	quoted    *regexp.Regexp

	parameterRef *regexp.Regexp
	commandRef   *regexp.Regexp
}

// NewGrammar compiles the template grammar.
func NewGrammar() *Grammar {
	return &Grammar{
		separator: regexp.MustCompile(`(?m)^-+\r?(?:\n|\z)`),
		property:  regexp.MustCompile(`^\s*((?:\\.|[^:\\])+?)\s*:\s*(.+?)\s*$`),
		text:      regexp.MustCompile(`^"(` + quotedChars + `*)"(?:\s*;\s*(.*?))?\s*$`),
		array: regexp.MustCompile(`^\[\s*((?:"` + quotedChars + `*"\s*,\s*)*(?:"` + quotedChars + `*")?)\s*\]` +
			`(?:\s*;\s*(.*?))?\s*$`),
		quoted: regexp.MustCompile(`^` + quotedChars + `*$`),

		// The reference itself is group 1; the optional guard character in
		// front of it is matched but never replaced.
		parameterRef: regexp.MustCompile(`(?:^|[^$])(\$:\(([^)\n]+)\))`),
		commandRef:   regexp.MustCompile(`(?:^|[^$])(\$:\{\s*"(` + quotedChars + `+)"\s*\})`),
	}
}

var defaultGrammar = NewGrammar()

// Parse splits raw template text into header and body and parses the header.
func Parse(name, raw string) (*Template, error) {
	return defaultGrammar.Parse(name, raw)
}

// SplitHeader separates the header from the body at the first dash-only line.
func SplitHeader(raw string) (header, body string, err error) {
	return defaultGrammar.SplitHeader(raw)
}

// ParseHeader parses header text into a parameter schema.
func ParseHeader(raw string) (*Header, error) {
	return defaultGrammar.ParseHeader(raw)
}

// Parse splits raw template text into header and body and parses the header.
func (g *Grammar) Parse(name, raw string) (*Template, error) {
	rawHeader, body, err := g.SplitHeader(raw)
	if err != nil {
		return nil, err
	}
	header, err := g.ParseHeader(rawHeader)
	if err != nil {
		return nil, err
	}
	return &Template{
		Name:   name,
		Header: header,
		Body:   body,
	}, nil
}

// SplitHeader separates the header from the body. The first line made only
// of dashes terminates the header and belongs to neither part.
func (g *Grammar) SplitHeader(raw string) (header, body string, err error) {
	loc := g.separator.FindStringIndex(raw)
	if loc == nil {
		return "", "", ErrNoHeader
	}
	return raw[:loc[0]], raw[loc[1]:], nil
}

// ParseHeader parses header text into a parameter schema.
//
// The first line holding only a quoted string is the description. Every
// other line of the form `name : value` declares a parameter; lines without
// a colon are ignored. A name declared twice keeps the last declaration.
func (g *Grammar) ParseHeader(raw string) (*Header, error) {
	header := &Header{Parameters: make(map[string]*Parameter)}
	lines := strings.Split(raw, "\n")

	descriptionLine := -1
	for i, line := range lines {
		match := g.text.FindStringSubmatch(strings.TrimSpace(line))
		if match == nil {
			continue
		}
		header.Description = match[1]
		descriptionLine = i
		break
	}

	for i, line := range lines {
		if i == descriptionLine {
			continue
		}
		match := g.property.FindStringSubmatch(strings.TrimSuffix(line, "\r"))
		if match == nil {
			continue
		}
		param, err := g.parseParameter(match[1], match[2])
		if err != nil {
			return nil, fmt.Errorf("header line %d: %w", i+1, err)
		}
		header.declare(param)
	}

	return header, nil
}

func (g *Grammar) parseParameter(name, value string) (*Parameter, error) {
	if loc := g.array.FindStringSubmatchIndex(value); loc != nil {
		options, ok := g.splitOptions(value[loc[2]:loc[3]])
		if !ok {
			return nil, fmt.Errorf("%w: parameter %q: malformed option list %s", ErrInvalidData, name, value)
		}
		return &Parameter{
			Name:    name,
			Kind:    KindChoice,
			Options: options,
			Comment: optionalGroup(value, loc, 2),
		}, nil
	}

	if loc := g.text.FindStringSubmatchIndex(value); loc != nil {
		return &Parameter{
			Name:    name,
			Kind:    KindText,
			Default: value[loc[2]:loc[3]],
			Comment: optionalGroup(value, loc, 2),
		}, nil
	}

	return nil, fmt.Errorf("%w: parameter %q: %s is neither a quoted string nor an array", ErrInvalidData, name, value)
}

// splitOptions splits the inside of an array into its items. Each item ends
// at the first closing quote that leaves a well-formed remainder, so both
// ["C:\", "D:\"] and ["say \"hi\""] split as written.
func (g *Grammar) splitOptions(s string) ([]string, bool) {
	s = strings.TrimLeft(s, headerSpace)
	if s == "" {
		return []string{}, true
	}
	if s[0] != '"' {
		return nil, false
	}
	for end := 1; end < len(s); end++ {
		if s[end] != '"' || !g.quoted.MatchString(s[1:end]) {
			continue
		}
		rest := strings.TrimLeft(s[end+1:], headerSpace)
		if rest == "" {
			return []string{s[1:end]}, true
		}
		if rest[0] != ',' {
			continue
		}
		if tail, ok := g.splitOptions(rest[1:]); ok {
			return append([]string{s[1:end]}, tail...), true
		}
	}
	return nil, false
}

// headerSpace is the set matched by \s in the grammar patterns.
const headerSpace = " \t\n\f\r"

// optionalGroup returns submatch n of loc, or nil when the group did not
// participate in the match.
func optionalGroup(s string, loc []int, n int) *string {
	start, end := loc[2*n], loc[2*n+1]
	if start < 0 {
		return nil
	}
	text := s[start:end]
	return &text
}
