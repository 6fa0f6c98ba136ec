package cli

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
)

// Custom help styles
var (
	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Italic(true).
			MarginBottom(1)

	helpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(accentColor).
				MarginTop(1)

	helpCommandStyle = lipgloss.NewStyle().
				Foreground(primaryColor).
				Bold(true)

	helpFlagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#16A34A")).
			Bold(true)

	helpDefaultStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Italic(true)
)

// StyledHelpPrinter renders kong help with lipgloss styling. It lists the
// subcommands of the selected node and its flags with their defaults.
func StyledHelpPrinter(description string) kong.HelpPrinter {
	return func(options kong.HelpOptions, ctx *kong.Context) error {
		node := ctx.Selected()
		if node == nil {
			node = ctx.Model.Node
		}

		var sb strings.Builder

		sb.WriteString(helpTitleStyle.Render(ctx.Model.Name))
		sb.WriteString("\n")

		desc := description
		if node != ctx.Model.Node && node.Help != "" {
			desc = node.Help
		}

		sb.WriteString(helpDescStyle.Render(desc))
		sb.WriteString("\n")

		sb.WriteString(helpSectionStyle.Render("Usage:"))
		sb.WriteString("\n  ")
		sb.WriteString(node.Summary())
		sb.WriteString("\n")

		if cmds := commands(node); len(cmds) > 0 {
			sb.WriteString("\n")
			sb.WriteString(helpSectionStyle.Render("Commands:"))
			sb.WriteString("\n")

			for _, c := range cmds {
				sb.WriteString("  ")
				sb.WriteString(helpCommandStyle.Render(fmt.Sprintf("%-10s", c.name)))
				sb.WriteString("  ")
				sb.WriteString(c.help)
				sb.WriteString("\n")
			}
		}

		if flags := flagList(node); len(flags) > 0 {
			sb.WriteString("\n")
			sb.WriteString(helpSectionStyle.Render("Flags:"))
			sb.WriteString("\n")

			for _, f := range flags {
				sb.WriteString("  ")
				sb.WriteString(helpFlagStyle.Render(f.flags))

				if f.help != "" {
					sb.WriteString("  ")
					sb.WriteString(f.help)
				}

				if f.defaultVal != "" {
					sb.WriteString(" ")
					sb.WriteString(helpDefaultStyle.Render("(default: " + f.defaultVal + ")"))
				}

				sb.WriteString("\n")
			}
		}

		sb.WriteString("\n")
		fmt.Fprint(ctx.Stdout, sb.String())

		return nil
	}
}

type entry struct {
	name string
	help string
}

type flagEntry struct {
	flags      string
	help       string
	defaultVal string
}

func commands(node *kong.Node) []entry {
	var out []entry

	for _, child := range node.Children {
		if child.Hidden {
			continue
		}

		out = append(out, entry{name: child.Name, help: child.Help})
	}

	return out
}

func flagList(node *kong.Node) []flagEntry {
	flags := []flagEntry{{
		flags: "-h, --help",
		help:  "Show context-sensitive help.",
	}}

	for _, group := range node.AllFlags(true) {
		for _, f := range group {
			if f.Name == "help" {
				continue
			}

			flagStr := "--" + f.Name
			if f.Short != 0 {
				flagStr = fmt.Sprintf("-%c, --%s", f.Short, f.Name)
			}

			if !f.IsBool() {
				placeholder := f.PlaceHolder
				if placeholder == "" {
					placeholder = f.Name
				}

				flagStr += "=" + strings.ToUpper(placeholder)
			}

			flags = append(flags, flagEntry{
				flags:      flagStr,
				help:       f.Help,
				defaultVal: f.Default,
			})
		}
	}

	return flags
}
