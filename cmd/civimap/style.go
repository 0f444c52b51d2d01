package main

import "github.com/charmbracelet/lipgloss"

var (
	styleBanner   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	styleTerm     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	styleSeverity = map[string]lipgloss.Style{
		"low":    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		"medium": lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		"high":   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
	}
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	styleDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func renderSeverity(level string) string {
	if s, ok := styleSeverity[level]; ok {
		return s.Render("[" + level + "]")
	}
	return "[" + level + "]"
}
