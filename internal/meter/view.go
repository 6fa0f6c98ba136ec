package meter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cwbudde/algo-dynamics/internal/cli"
)

// traceLevels maps reduction depth to block glyphs, shallow to deep.
var traceLevels = []rune(" ▁▂▃▄▅▆▇█")

func render(m Model) string {
	barWidth := max(m.Width-24, 10)

	var b strings.Builder

	b.WriteString(cli.TitleStyle.Render(m.Title))
	b.WriteString("\n")

	b.WriteString(row("Input", m.Current.InputDB, LevelBar(m.Current.InputDB, barWidth), cli.LevelStyle))
	b.WriteString(row("Output", m.Current.OutputDB, LevelBar(m.Current.OutputDB, barWidth), cli.LevelStyle))
	b.WriteString(row("Reduction", m.Current.GainReductionDB,
		ReductionBar(m.Current.GainReductionDB, barWidth), cli.ReductionStyle))

	b.WriteString("\n")
	b.WriteString(cli.KeyStyle.Render("Trace  "))
	b.WriteString(cli.ReductionStyle.Render(Trace(m.History)))
	b.WriteString("\n")

	b.WriteString(cli.KeyStyle.Render(fmt.Sprintf("Peak reduction %s dB", cli.FormatMetric(m.PeakReductionDB, 1))))
	b.WriteString("\n\n")

	status := "q to quit"
	if m.Done {
		status = "done"
	}

	b.WriteString(cli.SubtitleStyle.Render(status))
	b.WriteString("\n")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#888888")).
		Padding(0, 1)

	return box.Render(b.String())
}

func row(label string, db float64, bar string, style lipgloss.Style) string {
	if db >= 0 && label != "Reduction" {
		style = cli.ClipStyle
	}

	return fmt.Sprintf("%s %s %s\n",
		cli.KeyStyle.Render(fmt.Sprintf("%-9s", label)),
		style.Render(bar),
		cli.ValueStyle.Render(fmt.Sprintf("%7s dB", cli.FormatMetric(db, 1))))
}

// LevelBar renders a level in dBFS as a left-anchored bar from floorDB to
// 0 dB.
func LevelBar(db float64, width int) string {
	filled := fill((db-floorDB)/-floorDB, width)

	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// ReductionBar renders gain reduction as a bar growing from the right, the
// way hardware reduction meters fall from 0 dB. Full scale is 24 dB.
func ReductionBar(db float64, width int) string {
	filled := fill(-db/24, width)

	return strings.Repeat("░", width-filled) + strings.Repeat("█", filled)
}

// Trace renders a reduction history, one glyph per reading. Full scale is
// 24 dB.
func Trace(history []float64) string {
	var b strings.Builder

	top := len(traceLevels) - 1
	for _, db := range history {
		b.WriteRune(traceLevels[fill(-db/24, top)])
	}

	return b.String()
}

func fill(fraction float64, width int) int {
	n := int(fraction*float64(width) + 0.5)

	return min(max(n, 0), width)
}
