package renderer

import "github.com/charmbracelet/lipgloss"

// Theme holds the styles for the answer pane.
type Theme struct {
	Title    lipgloss.Style
	Answer   lipgloss.Style
	Error    lipgloss.Style
	Notice   lipgloss.Style
	Rank     lipgloss.Style
	Source   lipgloss.Style
	Meta     lipgloss.Style
	Match    lipgloss.Style
	Excerpt  lipgloss.Style
	MoreNote lipgloss.Style

	// Confidence badges, one per level so each reads distinctly.
	ConfidenceHigh    lipgloss.Style
	ConfidenceMedium  lipgloss.Style
	ConfidenceLow     lipgloss.Style
	ConfidenceUnknown lipgloss.Style
}

// DefaultTheme returns the default theme.
func DefaultTheme() *Theme {
	return &Theme{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("179")).
			Bold(true),

		Answer: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Bold(true),

		Notice: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true),

		Rank: lipgloss.NewStyle().
			Foreground(lipgloss.Color("236")).
			Background(lipgloss.Color("203")).
			Bold(true).
			Padding(0, 1),

		Source: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true),

		Meta: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),

		Match: lipgloss.NewStyle().
			Foreground(lipgloss.Color("236")).
			Background(lipgloss.Color("179")).
			Bold(true).
			Padding(0, 1),

		Excerpt: lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Italic(true).
			PaddingLeft(2),

		MoreNote: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true),

		ConfidenceHigh: lipgloss.NewStyle().
			Foreground(lipgloss.Color("236")).
			Background(lipgloss.Color("42")).
			Bold(true).
			Padding(0, 1),

		ConfidenceMedium: lipgloss.NewStyle().
			Foreground(lipgloss.Color("236")).
			Background(lipgloss.Color("179")).
			Bold(true).
			Padding(0, 1),

		ConfidenceLow: lipgloss.NewStyle().
			Foreground(lipgloss.Color("236")).
			Background(lipgloss.Color("203")).
			Bold(true).
			Padding(0, 1),

		ConfidenceUnknown: lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Background(lipgloss.Color("240")).
			Padding(0, 1),
	}
}
