package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chargewatch/chargewatch/internal/activitylog"
	"github.com/chargewatch/chargewatch/internal/alert"
	"github.com/chargewatch/chargewatch/internal/battery"
	"github.com/chargewatch/chargewatch/internal/models"
	"github.com/chargewatch/chargewatch/internal/pause"
)

const (
	refreshInterval = 5 * time.Second
	shortPause      = 5 * time.Minute
	logTail         = 8
)

// Deps are the collaborators the view reads from and writes to.
type Deps struct {
	Reader     battery.Reader
	Pause      *pause.Controller
	Log        *activitylog.Store
	Thresholds models.Thresholds
	Now        func() time.Time
}

// snapshotMsg carries one refresh of everything on screen.
type snapshotMsg struct {
	reading *models.Reading
	readErr error
	pause   string
	lines   []string
}

type tickMsg time.Time

// Model is the bubbletea model for the live view.
type Model struct {
	deps Deps
	help help.Model

	snapshot snapshotMsg
	loaded   bool
	flash    string
	width    int
}

// NewModel creates the view model.
func NewModel(deps Deps) Model {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return Model{deps: deps, help: help.New()}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.refresh(), scheduleTick())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.refresh(), scheduleTick())

	case snapshotMsg:
		m.snapshot = msg
		m.loaded = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Refresh):
			return m, m.refresh()
		case key.Matches(msg, keys.Pause):
			m.flash = m.apply("Paused for 5 minutes", func() error { return m.deps.Pause.PauseFor(shortPause) })
			return m, m.refresh()
		case key.Matches(msg, keys.PauseUntil):
			m.flash = m.apply("Paused until the charger is connected", m.deps.Pause.PauseUntilCharging)
			return m, m.refresh()
		case key.Matches(msg, keys.Resume):
			m.flash = m.apply("Monitoring resumed", m.deps.Pause.Resume)
			return m, m.refresh()
		}
	}
	return m, nil
}

func (m Model) apply(done string, fn func() error) string {
	if err := fn(); err != nil {
		return "Error: " + err.Error()
	}
	return done
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("ChargeWatch"))
	b.WriteString("\n")

	if !m.loaded {
		b.WriteString("Reading battery...\n")
		return b.String()
	}

	s := m.snapshot
	decision := alert.Evaluate(s.reading, m.deps.Thresholds)

	batteryText := "unavailable"
	if s.reading != nil {
		batteryText = s.reading.String()
	} else if s.readErr != nil {
		batteryText = s.readErr.Error()
	}

	rows := []string{
		row("Battery", batteryText),
		row("Condition", decisionColor(decision).Render(decision.String())),
		row("Thresholds", fmt.Sprintf("min %d%%, max %d%%", m.deps.Thresholds.Minimum, m.deps.Thresholds.Maximum)),
		row("Alerts", s.pause),
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))
	b.WriteString("\n\n")

	logText := "No activity logged today."
	if len(s.lines) > 0 {
		logText = strings.Join(s.lines, "\n")
	}
	b.WriteString(boxStyle.Render(logStyle.Render(logText)))
	b.WriteString("\n")

	if m.flash != "" {
		b.WriteString(flashStyle.Render(m.flash))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(keys))
	return b.String()
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value)
}

func (m Model) refresh() tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		var msg snapshotMsg
		msg.reading, msg.readErr = deps.Reader.Read()

		state, err := deps.Pause.Load()
		if err != nil {
			msg.pause = "Monitoring (pause record unreadable)"
		} else {
			msg.pause = state.Describe(deps.Now())
		}

		lines, err := deps.Log.ReadDay(deps.Log.Today(), activitylog.DefaultLabel)
		if err == nil {
			if len(lines) > logTail {
				lines = lines[len(lines)-logTail:]
			}
			msg.lines = lines
		}
		return msg
	}
}

func scheduleTick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
