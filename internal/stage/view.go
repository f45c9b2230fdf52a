package stage

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/todo-upload/internal/ui"
)

func (w *Widget) View() string {
	t := ui.Current()
	var b strings.Builder

	if !w.open {
		b.WriteString(t.Muted.Render("file staging closed"))
		return b.String()
	}

	fmt.Fprintf(&b, "%s %s\n", t.Title.Render("Files"), t.Muted.Render(fmt.Sprintf("(%d)", len(w.files))))
	if len(w.files) == 0 {
		b.WriteString(t.Muted.Render("  no files staged") + "\n")
	}
	nameWidth := 0
	for _, f := range w.files {
		nameWidth = max(nameWidth, lipgloss.Width(f.Name))
	}
	for i, f := range w.files {
		prefix := "  "
		if i == w.cursor && !w.control.Prompting() {
			prefix = t.Selected.Render(t.SymCursor)
		}
		name := f.Name + strings.Repeat(" ", nameWidth-lipgloss.Width(f.Name))
		meta := t.Muted.Render(fmt.Sprintf("%8s  %s", f.HumanSize(), f.MIMEType))
		fmt.Fprintf(&b, "%s%s %s  %s\n", prefix, t.Accent.Render(t.SymFile), name, meta)
	}

	if w.control.Prompting() {
		b.WriteString("\n" + t.Pending.Render("Choose a file") + "\n")
		b.WriteString(w.control.picker.View() + "\n")
	}
	if w.err != nil {
		b.WriteString(t.Error.Render(t.SymFail+" "+w.err.Error()) + "\n")
	}

	if w.control.Prompting() {
		b.WriteString(w.help.View(promptKeys{w.keys}))
	} else {
		b.WriteString(w.help.View(w.keys))
	}
	return b.String()
}
