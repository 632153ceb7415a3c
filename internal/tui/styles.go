package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha.
var (
	colText     = lipgloss.Color("#cdd6f4")
	colSubtext  = lipgloss.Color("#a6adc8")
	colSurface  = lipgloss.Color("#45475a")
	colLavender = lipgloss.Color("#b4befe")
	colGreen    = lipgloss.Color("#a6e3a1")
	colPeach    = lipgloss.Color("#fab387")
	colYellow   = lipgloss.Color("#f9e2af")
	colRed      = lipgloss.Color("#f38ba8")
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colLavender)
	clockStyle   = lipgloss.NewStyle().Bold(true).Foreground(colText).Padding(1, 0)
	reachedStyle = clockStyle.Foreground(colGreen)
	mutedStyle   = lipgloss.NewStyle().Foreground(colSubtext)
	stateStyle   = lipgloss.NewStyle().Foreground(colPeach)
	errorStyle   = lipgloss.NewStyle().Foreground(colRed)
	frameStyle   = lipgloss.NewStyle().Padding(1, 2)

	cellStyle    = lipgloss.NewStyle().Width(4).Align(lipgloss.Center)
	outsideStyle = cellStyle.Foreground(colSurface)
	headerStyle  = cellStyle.Foreground(colSubtext)
	normalStyle  = cellStyle.Foreground(colText)
	luxuryStyle  = cellStyle.Foreground(colPeach)
	goldenStyle  = cellStyle.Bold(true).Foreground(colYellow)
	failedStyle  = cellStyle.Foreground(colRed)
	todayStyle   = lipgloss.NewStyle().Underline(true)
)
