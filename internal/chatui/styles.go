package chatui

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary = lipgloss.Color("255")
	ColorAccent  = lipgloss.Color("39")
	ColorSuccess = lipgloss.Color("42")
	ColorError   = lipgloss.Color("196")
	ColorWarning = lipgloss.Color("214")
	ColorDim     = lipgloss.Color("240")
)

var (
	StyleDimmed  = lipgloss.NewStyle().Foreground(ColorDim)
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	StylePrompt  = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	StyleUser    = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	StyleBot     = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleSystem  = lipgloss.NewStyle().Italic(true).Foreground(ColorWarning)
	StyleError   = lipgloss.NewStyle().Bold(true).Foreground(ColorError)
	StyleDialect = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent).Padding(0, 1)
	StyleOption  = lipgloss.NewStyle().Foreground(ColorDim).Padding(0, 1)
)
