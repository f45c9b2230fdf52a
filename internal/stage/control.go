package stage

import (
	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todo-upload/internal/model"
)

// Selection is what one file-selection event yields, in chooser order.
type Selection []model.StagedFile

// Control is the file-selection surface behind the widget: a filepicker
// prompt plus the files held from the latest selection event.
type Control struct {
	picker    filepicker.Model
	files     []model.StagedFile
	prompting bool
}

func newControl(dir string, allowed []string, showHidden bool) *Control {
	fp := filepicker.New()
	if dir != "" {
		fp.CurrentDirectory = dir
	}
	fp.AllowedTypes = allowed
	fp.ShowHidden = showHidden
	fp.DirAllowed = false
	fp.FileAllowed = true
	return &Control{picker: fp}
}

// Files returns the files held from the last selection event.
func (c *Control) Files() []model.StagedFile {
	return append([]model.StagedFile(nil), c.files...)
}

func (c *Control) Len() int { return len(c.files) }

// Prompting reports whether the picker is on screen.
func (c *Control) Prompting() bool { return c.prompting }

// Reset empties the control so the same file can be chosen again.
func (c *Control) Reset() {
	c.files = nil
	c.picker.Path = ""
}

func (c *Control) hold(sel Selection) {
	c.files = append([]model.StagedFile(nil), sel...)
}

func (c *Control) prompt() tea.Cmd {
	c.prompting = true
	return c.picker.Init()
}

func (c *Control) dismiss() { c.prompting = false }
