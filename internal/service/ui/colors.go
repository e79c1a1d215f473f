package ui

import "github.com/charmbracelet/lipgloss"

// ANSI palette colours so the UI follows the user's terminal theme.
var (
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).MarginBottom(1)
	UsageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	DescStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	FlagStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	ErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	MutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	HeadingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)
	SelectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)

	PanelStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
	FocusedPanelStyle = PanelStyle.BorderForeground(lipgloss.Color("5"))

	ButtonStyle         = lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("4"))
	NewFactButtonStyle  = ButtonStyle.Background(lipgloss.Color("2"))
	DisabledButtonStyle = ButtonStyle.Foreground(lipgloss.Color("7")).Background(lipgloss.Color("8"))
)
