package tui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Help     lipgloss.Style
	Card     lipgloss.Style
	Toast    lipgloss.Style
	Banner   lipgloss.Style

	LightSquare  lipgloss.Style
	DarkSquare   lipgloss.Style
	CursorSquare lipgloss.Style
	Selected     lipgloss.Style
	Target       lipgloss.Style
	LastMove     lipgloss.Style
	WhitePiece   lipgloss.Color
	BlackPiece   lipgloss.Color
}

func DefaultTheme() Theme {
	return Theme{
		Title:    lipgloss.NewStyle().Bold(true),
		Subtitle: lipgloss.NewStyle().Faint(true),
		Help:     lipgloss.NewStyle().Faint(true),
		Card: lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")),
		Toast:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Banner: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),

		LightSquare:  lipgloss.NewStyle().Background(lipgloss.Color("180")),
		DarkSquare:   lipgloss.NewStyle().Background(lipgloss.Color("137")),
		CursorSquare: lipgloss.NewStyle().Background(lipgloss.Color("33")),
		Selected:     lipgloss.NewStyle().Background(lipgloss.Color("71")),
		Target:       lipgloss.NewStyle().Background(lipgloss.Color("108")),
		LastMove:     lipgloss.NewStyle().Background(lipgloss.Color("143")),
		WhitePiece:   lipgloss.Color("231"),
		BlackPiece:   lipgloss.Color("16"),
	}
}
