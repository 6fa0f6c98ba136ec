// Package meter provides the Bubbletea gain reduction meter of dyncomp.
package meter

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Reading is one meter update.
type Reading struct {
	GainReductionDB float64
	InputDB         float64
	OutputDB        float64
}

// Source produces the next reading. ok is false once the source is
// exhausted.
type Source func() (r Reading, ok bool)

// TickMsg asks the model to pull the next reading.
type TickMsg time.Time

// DoneMsg reports that the source is exhausted.
type DoneMsg struct{}

const (
	// historyLen is the number of readings kept for the reduction trace.
	historyLen = 48

	floorDB = -60.0
)

// Model is the Bubbletea model of the meter view.
type Model struct {
	Title    string
	Interval time.Duration

	source Source

	Current Reading
	// PeakReductionDB is the deepest reduction seen so far.
	PeakReductionDB float64
	History         []float64

	Width int
	Done  bool
}

// NewModel returns a meter model polling source every interval.
func NewModel(title string, interval time.Duration, source Source) Model {
	return Model{
		Title:    title,
		Interval: interval,
		source:   source,
		Current:  Reading{InputDB: floorDB, OutputDB: floorDB},
		History:  make([]float64, 0, historyLen),
		Width:    60,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tick(m.Interval)
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles key presses, resizes and ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = max(msg.Width, 20)

	case TickMsg:
		r, ok := m.source()
		if !ok {
			m.Done = true
			return m, func() tea.Msg { return DoneMsg{} }
		}

		m = m.push(r)

		return m, tick(m.Interval)

	case DoneMsg:
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) push(r Reading) Model {
	m.Current = r
	m.PeakReductionDB = min(m.PeakReductionDB, r.GainReductionDB)

	if len(m.History) == historyLen {
		m.History = append(m.History[:0], m.History[1:]...)
	}

	m.History = append(m.History, r.GainReductionDB)

	return m
}

// View renders the meter.
func (m Model) View() string {
	return render(m)
}
