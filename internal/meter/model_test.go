package meter

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func sliceSource(readings ...Reading) Source {
	return func() (Reading, bool) {
		if len(readings) == 0 {
			return Reading{}, false
		}

		r := readings[0]
		readings = readings[1:]

		return r, true
	}
}

func TestUpdate_TickPullsReading(t *testing.T) {
	m := NewModel("test", time.Millisecond, sliceSource(
		Reading{GainReductionDB: -3, InputDB: -6, OutputDB: -9},
		Reading{GainReductionDB: -1, InputDB: -20, OutputDB: -21},
	))

	next, cmd := m.Update(TickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("tick must schedule the next tick")
	}

	next, _ = next.(Model).Update(TickMsg(time.Now()))
	got := next.(Model)

	if got.Current.GainReductionDB != -1 || got.PeakReductionDB != -3 || len(got.History) != 2 {
		t.Fatalf("model %+v", got)
	}
}

func TestUpdate_SourceExhausted(t *testing.T) {
	m := NewModel("test", time.Millisecond, sliceSource())

	next, cmd := m.Update(TickMsg(time.Now()))
	if !next.(Model).Done {
		t.Fatal("model not done")
	}

	if _, ok := cmd().(DoneMsg); !ok {
		t.Fatal("expected DoneMsg")
	}

	if _, cmd := next.Update(DoneMsg{}); cmd == nil {
		t.Fatal("DoneMsg must quit")
	}
}

func TestUpdate_Quit(t *testing.T) {
	m := NewModel("test", time.Millisecond, sliceSource())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q must quit")
	}

	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}

func TestHistoryIsBounded(t *testing.T) {
	m := NewModel("test", time.Millisecond, nil)
	for i := range 2 * historyLen {
		m = m.push(Reading{GainReductionDB: -float64(i)})
	}

	if len(m.History) != historyLen || m.History[historyLen-1] != -float64(2*historyLen-1) {
		t.Fatalf("history len %d, last %v", len(m.History), m.History[len(m.History)-1])
	}
}

func TestBars(t *testing.T) {
	if got := LevelBar(-30, 10); got != "█████░░░░░" {
		t.Errorf("LevelBar(-30) = %q", got)
	}

	if got := LevelBar(-90, 4); got != "░░░░" {
		t.Errorf("LevelBar(-90) = %q", got)
	}

	if got := ReductionBar(-6, 8); got != "░░░░░░██" {
		t.Errorf("ReductionBar(-6) = %q", got)
	}

	if got := Trace([]float64{0, -24, -12}); got != " █▄" {
		t.Errorf("Trace = %q", got)
	}
}

func TestView(t *testing.T) {
	m := NewModel("Bus compressor", time.Millisecond, nil)
	m = m.push(Reading{GainReductionDB: -4.5, InputDB: -3, OutputDB: -7.5})

	v := m.View()
	for _, want := range []string{"Bus compressor", "Reduction", "-4.5 dB", "q to quit"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q:\n%s", want, v)
		}
	}
}
