package styles

import "github.com/charmbracelet/lipgloss"

// Styles contains lipgloss styles derived from theme tokens.
type Styles struct {
	Theme   Theme
	Title   lipgloss.Style
	Name    lipgloss.Style
	Text    lipgloss.Style
	Muted   lipgloss.Style
	Accent  lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// ForTheme builds styles for the named theme, falling back to the default.
func ForTheme(name string) Styles {
	theme, ok := Themes[name]
	if !ok {
		theme = DefaultTheme
	}
	return BuildStyles(theme)
}

// BuildStyles converts theme tokens into lipgloss styles.
func BuildStyles(theme Theme) Styles {
	tokens := theme.Tokens

	return Styles{
		Theme:   theme,
		Title:   lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Text)).Bold(true),
		Name:    lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Accent)).Bold(true),
		Text:    lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Text)),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.TextMuted)),
		Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Accent)),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Warning)),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Error)),
	}
}

// Plain returns styles that render text unchanged, for pipes and --no-color.
func Plain() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Theme:   Theme{Name: "plain"},
		Title:   plain,
		Name:    plain,
		Text:    plain,
		Muted:   plain,
		Accent:  plain,
		Warning: plain,
		Error:   plain,
	}
}
