package ui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Header       lipgloss.Style
	SectionTitle lipgloss.Style
	Accent       lipgloss.Style
	Success      lipgloss.Style
	Warn         lipgloss.Style
	Error        lipgloss.Style
	Muted        lipgloss.Style
	Border       lipgloss.Style
	Button       lipgloss.Style
	ButtonActive lipgloss.Style
}

func DefaultTheme() Theme {
	return Theme{
		Header:       lipgloss.NewStyle().Bold(true),
		SectionTitle: lipgloss.NewStyle().Bold(true),
		Accent:       lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Warn:         lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Muted:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1),
		Button:       lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("8")),
		ButtonActive: lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6")),
	}
}
