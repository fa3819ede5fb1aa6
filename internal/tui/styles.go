package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/chargewatch/chargewatch/internal/alert"
)

var (
	colorDim    = lipgloss.AdaptiveColor{Light: "242", Dark: "240"}
	colorGreen  = lipgloss.AdaptiveColor{Light: "28", Dark: "40"}
	colorRed    = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
	colorYellow = lipgloss.AdaptiveColor{Light: "136", Dark: "220"}
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorGreen).MarginBottom(1)
	labelStyle = lipgloss.NewStyle().Foreground(colorDim).Width(12)
	logStyle   = lipgloss.NewStyle().Foreground(colorDim)
	flashStyle = lipgloss.NewStyle().Italic(true).Foreground(colorYellow)
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
)

func decisionColor(d alert.Decision) lipgloss.Style {
	switch d {
	case alert.FullUnplugRequest, alert.LowChargeRequest:
		return lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	case alert.AlmostFull:
		return lipgloss.NewStyle().Foreground(colorYellow)
	case alert.Unavailable:
		return lipgloss.NewStyle().Foreground(colorDim)
	default:
		return lipgloss.NewStyle().Foreground(colorGreen)
	}
}
