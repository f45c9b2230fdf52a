package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles styles + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Title, Muted, Accent, Success, Error, Pending, Selected lipgloss.Style
	Border                                                  lipgloss.Border
	BorderColor                                             lipgloss.TerminalColor
	SymOK, SymFail, SymCursor, SymFile                      string
}

var current = classic()

func classic() Theme {
	return Theme{
		Title:       lipgloss.NewStyle().Bold(true),
		Muted:       lipgloss.NewStyle().Faint(true),
		Accent:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Pending:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Selected:    lipgloss.NewStyle().Bold(true).Reverse(true),
		Border:      lipgloss.RoundedBorder(),
		BorderColor: lipgloss.Color("8"),
		SymOK:       "✔", SymFail: "✖", SymCursor: "> ", SymFile: "▪",
	}
}

func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		t := classic()
		t.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
		t.Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
		t.Pending = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
		t.BorderColor = lipgloss.Color("13")
		t.SymFile = "◼"
		current = t
	case "mono":
		plain := lipgloss.NewStyle()
		current = Theme{
			Title: plain, Muted: plain, Accent: plain, Success: plain,
			Error: plain, Pending: plain, Selected: plain,
			Border:      lipgloss.NormalBorder(),
			BorderColor: lipgloss.NoColor{},
			SymOK:       "ok", SymFail: "x", SymCursor: "> ", SymFile: "-",
		}
	default: // classic
		current = classic()
	}
}

// Expose what renderers need
func Current() Theme { return current }
