// Package meterui renders a live level meter and playback position in the
// terminal.
package meterui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cwbudde/algo-audition/measure/level"
)

// DefaultInterval is the refresh period of the display.
const DefaultInterval = 50 * time.Millisecond

var (
	ColorOrange = lipgloss.Color("#DDA036")
	ColorGray   = lipgloss.Color("#9A9EA0")
	ColorRed    = lipgloss.Color("#E95420")
)

// Source is the playback state shown by the model.
type Source interface {
	Progress() float64
	Finished() bool
	Stop()
}

// Meter reports the current level in dBFS.
type Meter interface {
	PeakDB() float64
}

type tickMsg time.Time

// Model is a bubbletea model that follows one playback session. It quits
// when the source finishes or the user presses q.
type Model struct {
	title    string
	src      Source
	meter    Meter
	interval time.Duration

	levelBar progress.Model
	posBar   progress.Model
	width    int

	peakDB    float64
	position  float64
	done      bool
	cancelled bool
}

// New returns a model for src and meter.
func New(title string, src Source, meter Meter) *Model {
	return &Model{
		title:    title,
		src:      src,
		meter:    meter,
		interval: DefaultInterval,
		levelBar: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		posBar:   progress.New(progress.WithSolidFill(string(ColorOrange))),
		peakDB:   level.DefaultFloorDB,
	}
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the refresh timer.
func (m *Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles messages for the meter.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		w := msg.Width - 24
		if w < 10 {
			w = 10
		}
		m.levelBar.Width = w
		m.posBar.Width = w
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.src.Stop()
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		}
		return m, nil

	case tickMsg:
		m.peakDB = m.meter.PeakDB()
		m.position = m.src.Progress()

		if m.src.Finished() {
			m.done = true
			return m, tea.Quit
		}
		return m, m.tick()
	}

	return m, nil
}

// Done reports whether the session ended.
func (m *Model) Done() bool { return m.done }

// Cancelled reports whether the user stopped playback.
func (m *Model) Cancelled() bool { return m.cancelled }

// levelFraction maps dBFS onto [0,1] over the meter's range.
func levelFraction(db float64) float64 {
	f := (db - level.DefaultFloorDB) / -level.DefaultFloorDB
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}

// View renders the meter.
func (m *Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(ColorOrange).
		Bold(true)

	labelStyle := lipgloss.NewStyle().
		Foreground(ColorGray).
		Width(6)

	valueStyle := lipgloss.NewStyle()
	if m.peakDB > -1 {
		valueStyle = valueStyle.Foreground(ColorRed).Bold(true)
	}

	hintStyle := lipgloss.NewStyle().
		Foreground(ColorGray)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render(m.title),
		"",
		labelStyle.Render("level")+m.levelBar.ViewAs(levelFraction(m.peakDB))+" "+
			valueStyle.Render(fmt.Sprintf("%6.1f dBFS", m.peakDB)),
		labelStyle.Render("pos")+m.posBar.ViewAs(m.position),
		"",
		hintStyle.Render("Press q to stop"),
	)
}
