// Package cli holds the terminal styling and output helpers of dyncomp.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	primaryColor = lipgloss.Color("#D97706") // amber, like a VU needle
	accentColor  = lipgloss.Color("#0EA5E9")
	mutedColor   = lipgloss.Color("#888888")
	textColor    = lipgloss.Color("#FFFFFF")
	alertColor   = lipgloss.Color("#DC2626")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(alertColor)

	KeyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	// ReductionStyle colours gain reduction readouts and meter bars.
	ReductionStyle = lipgloss.NewStyle().
			Foreground(primaryColor)

	// LevelStyle colours signal level readouts and meter bars.
	LevelStyle = lipgloss.NewStyle().
			Foreground(accentColor)

	// ClipStyle marks levels at or above full scale.
	ClipStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(alertColor)
)

// PrintVersion prints version information.
func PrintVersion(w io.Writer, version string) {
	fmt.Fprintln(w, TitleStyle.Render("dyncomp"))
	fmt.Fprintf(w, "%s %s\n", KeyStyle.Render("Version:"), ValueStyle.Render(version))
}

// PrintTitle prints a section title with an optional subtitle.
func PrintTitle(w io.Writer, title, subtitle string) {
	fmt.Fprintln(w, TitleStyle.Render(title))

	if subtitle != "" {
		fmt.Fprintln(w, SubtitleStyle.Render(subtitle))
		fmt.Fprintln(w)
	}
}

// PrintKV prints an aligned key/value line.
func PrintKV(w io.Writer, key string, value any) {
	fmt.Fprintf(w, "%s %s\n", KeyStyle.Render(fmt.Sprintf("%-18s", key+":")), ValueStyle.Render(fmt.Sprint(value)))
}

// PrintError prints an error message to stderr.
func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorStyle.Render("Error:"), message)
}
