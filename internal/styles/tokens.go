// Package styles provides lipgloss themes for human-readable output.
package styles

// ThemeTokens defines the semantic color roles used when printing.
type ThemeTokens struct {
	Text      string
	TextMuted string
	Accent    string
	Warning   string
	Error     string
}

// Theme bundles a palette with a name.
type Theme struct {
	Name   string
	Tokens ThemeTokens
}

// Themes lists available palettes by name.
var Themes = map[string]Theme{
	"default":       DefaultTheme,
	"high-contrast": HighContrastTheme,
}
