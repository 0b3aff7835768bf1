package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	headingStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	scoreStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	barFull      = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	barEmpty     = lipgloss.NewStyle().Foreground(lipgloss.Color("237"))
	summaryBox   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1)
)
