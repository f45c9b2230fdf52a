package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PanelString frames lines in the current theme's border.
func PanelString(lines ...string) string {
	t := Current()
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// Panel prints a framed box to stdout.
func Panel(lines ...string) { fmt.Println(PanelString(lines...)) }

func OK(msg string) {
	t := Current()
	fmt.Println(t.Success.Render(t.SymOK + " " + msg))
}

func Fail(msg string) {
	t := Current()
	fmt.Fprintln(os.Stderr, t.Error.Render(t.SymFail+" "+msg))
}
