package tui

import "github.com/charmbracelet/lipgloss"

// Palette shared across dashboard views.
var (
	ColorHeader    = lipgloss.Color("39")  // blue
	ColorLabel     = lipgloss.Color("245") // gray
	ColorValue     = lipgloss.Color("252") // near-white
	ColorMuted     = lipgloss.Color("240")
	ColorGain      = lipgloss.Color("42") // green
	ColorLoss      = lipgloss.Color("196")
	ColorHighlight = lipgloss.Color("214") // orange
)

// Styles shared across dashboard views.
var (
	HeaderStyle = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	LabelStyle  = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle  = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	MutedStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
	GainStyle   = lipgloss.NewStyle().Foreground(ColorGain).Bold(true)
	LossStyle   = lipgloss.NewStyle().Foreground(ColorLoss).Bold(true)
	ErrorStyle  = lipgloss.NewStyle().Foreground(ColorLoss)
	SelectStyle = lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1)
)

// ChangeStyle picks the gain or loss style for a signed change value.
func ChangeStyle(change float64) lipgloss.Style {
	if change < 0 {
		return LossStyle
	}
	return GainStyle
}
