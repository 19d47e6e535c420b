package ui

import "github.com/charmbracelet/lipgloss"

// ------- Lip Gloss styles shared with the interactive mode -------
var (
	TitleStyle   = lipgloss.NewStyle().Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	PendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	AccentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	MutedStyle   = lipgloss.NewStyle().Faint(true)
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	SelectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	DoneStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	HelpStyle     = lipgloss.NewStyle().Faint(true)
	OverdueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	HighStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	MediumPriStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	LowStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// PriorityStyle maps a priority name to its lipgloss style.
func PriorityStyle(priority string) lipgloss.Style {
	switch priority {
	case "High":
		return HighStyle
	case "Low":
		return LowStyle
	default:
		return MediumPriStyle
	}
}
