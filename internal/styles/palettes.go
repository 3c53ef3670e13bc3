package styles

// DefaultTheme is the baseline palette.
var DefaultTheme = Theme{
	Name: "default",
	Tokens: ThemeTokens{
		Text:      "#E6EDF3",
		TextMuted: "#8B9AAE",
		Accent:    "#5B8DEF",
		Warning:   "#D29922",
		Error:     "#F85149",
	},
}

// HighContrastTheme favors legibility over subtlety.
var HighContrastTheme = Theme{
	Name: "high-contrast",
	Tokens: ThemeTokens{
		Text:      "#FFFFFF",
		TextMuted: "#C0C0C0",
		Accent:    "#00D7FF",
		Warning:   "#FFD700",
		Error:     "#FF5F5F",
	},
}
