package ui

import (
	"enbyscan/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	ColorBase    = lipgloss.Color("#1D1D22")
	ColorSurface = lipgloss.Color("#2A2A33")
	ColorMuted   = lipgloss.Color("#7E7E8C")
	ColorText    = lipgloss.Color("#D6D6E0")
	ColorAccent  = lipgloss.Color("#A08FC0")
	ColorGreen   = lipgloss.Color("#a6e3a1")
	ColorRed     = lipgloss.Color("#f38ba8")
	ColorGrey    = lipgloss.Color("#9399b2")
	ColorYellow  = lipgloss.Color("#f9e2af")
)

// Styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			Padding(0, 1)

	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true).
				Padding(0, 1).
				Background(ColorSurface)

	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(ColorBase).
				Background(ColorAccent).
				Bold(false)

	NormalRowStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(ColorMuted)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Padding(0, 1)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	PanelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(ColorMuted).
			Padding(1, 2)

	BreadcrumbStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	BreadcrumbActiveStyle = lipgloss.NewStyle().
				Foreground(ColorAccent)

	EmptyStateStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true).
			Padding(2, 4)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	nonbinaryStyle = lipgloss.NewStyle().Foreground(ColorGreen)
	missingStyle   = lipgloss.NewStyle().Foreground(ColorGrey)
	wrongStyle     = lipgloss.NewStyle().Foreground(ColorRed)
)

// statusStyle maps a cell status to the same colors the HTML report uses.
func statusStyle(s model.CellStatus) lipgloss.Style {
	switch s {
	case model.StatusNonBinary:
		return nonbinaryStyle
	case model.StatusWrong:
		return wrongStyle
	default:
		return missingStyle
	}
}
