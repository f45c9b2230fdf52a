package stage

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todo-upload/internal/logging"
	"github.com/idilsaglam/todo-upload/internal/model"
)

// SelectMsg feeds one file-selection event into the widget.
type SelectMsg struct {
	Selection Selection
}

// StageErrMsg reports a chosen path that could not be staged.
type StageErrMsg struct {
	Err error
}

// pickedMsg is the staged result of a picker choice, tagged with the
// session it was made in.
type pickedMsg struct {
	gen int
	sel Selection
	err error
}

// Widget keeps the ordered list of files a user has staged.
//
// It has two states. While open it accepts Add and Remove. Closing it
// (SetOpen(false)) empties the list and resets the Control; while closed
// every mutation is ignored. Reopening needs no special action.
type Widget struct {
	open         bool
	files        []model.StagedFile
	control      *Control
	onFileChange func([]model.StagedFile)

	gen    int // bumped on close; stale picks are dropped
	cursor int
	err    error
	keys   KeyMap
	help   help.Model
	log    *logging.Logger
}

type Option func(*widgetOptions)

type widgetOptions struct {
	dir        string
	allowed    []string
	showHidden bool
	log        *logging.Logger
}

// WithDirectory sets where the picker starts browsing.
func WithDirectory(dir string) Option { return func(o *widgetOptions) { o.dir = dir } }

// WithAllowedTypes limits selectable files by extension, e.g. ".png".
func WithAllowedTypes(exts ...string) Option {
	return func(o *widgetOptions) { o.allowed = exts }
}

func WithShowHidden(show bool) Option { return func(o *widgetOptions) { o.showHidden = show } }

func WithLogger(l *logging.Logger) Option { return func(o *widgetOptions) { o.log = l } }

// New creates a widget. onFileChange may be nil.
func New(open bool, onFileChange func([]model.StagedFile), opts ...Option) *Widget {
	o := widgetOptions{dir: ".", log: logging.Discard()}
	for _, fn := range opts {
		fn(&o)
	}
	return &Widget{
		open:         open,
		control:      newControl(o.dir, o.allowed, o.showHidden),
		onFileChange: onFileChange,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		log:          o.log,
	}
}

// SetOpen is the transition handler for the visible input.
func (w *Widget) SetOpen(visible bool) {
	if visible == w.open {
		return
	}
	w.open = visible
	if visible {
		return
	}
	w.gen++
	w.files = nil
	w.cursor = 0
	w.err = nil
	w.control.Reset()
	w.control.dismiss()
	w.log.Debug("staging closed")
}

func (w *Widget) IsOpen() bool { return w.open }

// RequestAdd opens the file-selection prompt.
func (w *Widget) RequestAdd() tea.Cmd {
	if !w.open {
		return nil
	}
	w.err = nil
	return w.control.prompt()
}

// Add appends the first file of sel and returns the full list. An empty
// selection leaves everything untouched and notifies nobody.
func (w *Widget) Add(sel Selection) []model.StagedFile {
	if !w.open || len(sel) == 0 {
		return w.Files()
	}
	w.control.hold(sel)
	w.files = append(w.files, sel[0])
	w.err = nil
	w.log.Debug("file staged", "name", sel[0].Name, "count", len(w.files))
	return w.notify()
}

// Remove drops the file at index. Out-of-range indexes change nothing,
// but the Control is reset either way.
func (w *Widget) Remove(index int) []model.StagedFile {
	w.control.Reset()
	if !w.open || index < 0 || index >= len(w.files) {
		return w.Files()
	}
	name := w.files[index].Name
	next := make([]model.StagedFile, 0, len(w.files)-1)
	next = append(next, w.files[:index]...)
	w.files = append(next, w.files[index+1:]...)
	if w.cursor >= len(w.files) && w.cursor > 0 {
		w.cursor = len(w.files) - 1
	}
	w.log.Debug("file removed", "name", name, "count", len(w.files))
	return w.notify()
}

// Files returns a copy of the staged list.
func (w *Widget) Files() []model.StagedFile {
	return append([]model.StagedFile(nil), w.files...)
}

func (w *Widget) Control() *Control { return w.control }

func (w *Widget) Err() error { return w.err }

func (w *Widget) notify() []model.StagedFile {
	out := w.Files()
	if w.onFileChange != nil {
		w.onFileChange(w.Files())
	}
	return out
}

func (w *Widget) Init() tea.Cmd { return nil }

func (w *Widget) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case SelectMsg:
		w.Add(msg.Selection)
		return nil
	case pickedMsg:
		if msg.gen != w.gen {
			w.log.Debug("stale pick dropped")
			return nil
		}
		if msg.err != nil {
			return w.Update(StageErrMsg{Err: msg.err})
		}
		w.Add(msg.sel)
		return nil
	case StageErrMsg:
		w.err = msg.Err
		w.log.WithError(msg.Err).Warn("stage failed")
		return nil
	case tea.WindowSizeMsg:
		w.help.Width = msg.Width
		var cmd tea.Cmd
		w.control.picker, cmd = w.control.picker.Update(msg)
		return cmd
	}
	if !w.open {
		return nil
	}
	if w.control.Prompting() {
		return w.updatePrompt(msg)
	}

	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(k, w.keys.Add):
		return w.RequestAdd()
	case key.Matches(k, w.keys.Remove):
		w.Remove(w.cursor)
	case key.Matches(k, w.keys.Up):
		if w.cursor > 0 {
			w.cursor--
		}
	case key.Matches(k, w.keys.Down):
		if w.cursor < len(w.files)-1 {
			w.cursor++
		}
	}
	return nil
}

func (w *Widget) updatePrompt(msg tea.Msg) tea.Cmd {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, w.keys.Cancel) {
		w.control.dismiss()
		return nil
	}
	var cmd tea.Cmd
	w.control.picker, cmd = w.control.picker.Update(msg)
	if ok, path := w.control.picker.DidSelectFile(msg); ok {
		w.control.dismiss()
		return tea.Batch(cmd, stageCmd(path, w.gen))
	}
	if ok, path := w.control.picker.DidSelectDisabledFile(msg); ok {
		w.err = fmt.Errorf("%s: file type not allowed", filepath.Base(path))
	}
	return cmd
}

// stageCmd reads the chosen path off the event loop.
func stageCmd(path string, gen int) tea.Cmd {
	return func() tea.Msg {
		f, err := model.StageFromPath(path)
		if err != nil {
			return pickedMsg{gen: gen, err: err}
		}
		return pickedMsg{gen: gen, sel: Selection{f}}
	}
}
