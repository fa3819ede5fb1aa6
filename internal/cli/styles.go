package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/chargewatch/chargewatch/internal/alert"
)

// Adaptive colors for terminal output.
var (
	colorWhite  = lipgloss.AdaptiveColor{Light: "0", Dark: "15"}
	colorDim    = lipgloss.AdaptiveColor{Light: "242", Dark: "240"}
	colorGreen  = lipgloss.AdaptiveColor{Light: "28", Dark: "40"}
	colorRed    = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
	colorYellow = lipgloss.AdaptiveColor{Light: "136", Dark: "220"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "30", Dark: "45"}
)

// Semantic styles for CLI output.
var (
	styleBrand   = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	styleVersion = lipgloss.NewStyle().Foreground(colorCyan)
	styleLabel   = lipgloss.NewStyle().Foreground(colorDim)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarning = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	styleError   = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	styleHint    = lipgloss.NewStyle().Foreground(colorDim)
)

// decisionStyle colors a decision by urgency.
func decisionStyle(d alert.Decision) lipgloss.Style {
	switch d {
	case alert.FullUnplugRequest, alert.LowChargeRequest:
		return styleError
	case alert.AlmostFull:
		return styleWarning
	case alert.Unavailable:
		return styleHint
	default:
		return styleSuccess
	}
}
