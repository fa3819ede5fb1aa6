// Package tui implements the live "chargewatch watch" view.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chargewatch/chargewatch/internal/activitylog"
	"github.com/chargewatch/chargewatch/internal/battery"
	"github.com/chargewatch/chargewatch/internal/models"
	"github.com/chargewatch/chargewatch/internal/pause"
)

// Run launches the live view until the user quits.
func Run(settings *models.Settings) error {
	model := NewModel(Deps{
		Reader:     battery.NewSystem(),
		Pause:      pause.NewController(settings.PauseFile),
		Log:        activitylog.NewStore(settings.LogDir),
		Thresholds: settings.Thresholds(),
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
