package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todo-upload/internal/logging"
	"github.com/idilsaglam/todo-upload/internal/model"
	"github.com/idilsaglam/todo-upload/internal/mutation"
	"github.com/idilsaglam/todo-upload/internal/stage"
	"github.com/idilsaglam/todo-upload/internal/ui"
)

type keyMap struct {
	Submit  key.Binding
	Toggle  key.Binding
	Dismiss key.Binding
	Quit    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding  { return []key.Binding{k.Submit, k.Toggle, k.Quit} }
func (k keyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp(), {k.Dismiss}} }

func defaultKeys() keyMap {
	return keyMap{
		Submit:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "submit todo")),
		Toggle:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open/close files")),
		Dismiss: key.NewBinding(key.WithKeys("enter", "esc"), key.WithHelp("enter", "dismiss")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Page is the demo screen: a submit button for a fixed todo above the
// file-staging widget.
type Page struct {
	ctx      context.Context
	todo     model.Todo
	mutation *mutation.Mutation
	widget   *stage.Widget
	keys     keyMap
	help     help.Model
	log      *logging.Logger

	alert     string // modal message; blocks other keys while set
	alertErr  bool
	lastFiles []model.StagedFile
	width     int
}

// New builds a page. Submits run under ctx and are not cancelled when
// the page quits.
func New(ctx context.Context, m *mutation.Mutation, open bool, log *logging.Logger, opts ...stage.Option) *Page {
	if log == nil {
		log = logging.Discard()
	}
	p := &Page{
		ctx:      ctx,
		todo:     model.DemoTodo,
		mutation: m,
		keys:     defaultKeys(),
		help:     help.New(),
		log:      log,
	}
	opts = append(opts, stage.WithLogger(log))
	p.widget = stage.New(open, p.onFileChange, opts...)
	return p
}

func (p *Page) Widget() *stage.Widget { return p.widget }

// LastFiles is the list most recently reported by the widget.
func (p *Page) LastFiles() []model.StagedFile { return p.lastFiles }

// Alert returns the modal message, if any.
func (p *Page) Alert() (string, bool) { return p.alert, p.alertErr }

func (p *Page) onFileChange(files []model.StagedFile) {
	p.lastFiles = files
	p.log.Info("file change", "files", model.Names(files))
}

func (p *Page) onSuccess() {
	p.alert, p.alertErr = "Success!", false
}

func (p *Page) onError() {
	p.alert, p.alertErr = "Failed!", true
}

func (p *Page) submit() tea.Cmd {
	return p.mutation.Submit(p.ctx, mutation.Params{
		Todo:      p.todo,
		OnSuccess: p.onSuccess,
		OnError:   p.onError,
	})
}

func (p *Page) Init() tea.Cmd { return p.widget.Init() }

func (p *Page) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.help.Width = msg.Width
		return p, p.widget.Update(msg)

	case mutation.SettledMsg:
		p.mutation.Settle(msg)
		return p, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return p, tea.Quit
		}
		if p.alert != "" {
			if key.Matches(msg, p.keys.Dismiss) {
				p.alert = ""
			}
			return p, nil
		}
		if p.widget.Control().Prompting() {
			return p, p.widget.Update(msg)
		}
		switch {
		case key.Matches(msg, p.keys.Quit):
			return p, tea.Quit
		case key.Matches(msg, p.keys.Submit):
			return p, p.submit()
		case key.Matches(msg, p.keys.Toggle):
			p.widget.SetOpen(!p.widget.IsOpen())
			return p, nil
		}
	}
	return p, p.widget.Update(msg)
}

func (p *Page) View() string {
	t := ui.Current()
	if p.alert != "" {
		style := t.Success
		if p.alertErr {
			style = t.Error
		}
		return ui.PanelString(style.Render(p.alert), "", t.Muted.Render("press enter"))
	}

	wire := model.ToRequestModel(p.todo)
	var b strings.Builder
	b.WriteString(t.Title.Render("Hello World!!") + "\n\n")
	fmt.Fprintf(&b, "%s todo #%d %s\n", t.Accent.Render("[s]"), wire.ID, t.Muted.Render("("+wire.FullName+")"))
	fmt.Fprintf(&b, "success: %t", p.mutation.IsSuccess())
	if n := p.mutation.InFlight(); n > 0 {
		b.WriteString("  " + t.Pending.Render(fmt.Sprintf("%d pending", n)))
	}
	b.WriteString("\n")

	rule := 40
	if p.width > 8 {
		rule = p.width - 8
	}
	b.WriteString(t.Muted.Render(strings.Repeat("─", rule)) + "\n")
	b.WriteString(p.widget.View() + "\n")
	b.WriteString(p.help.View(p.keys))

	return ui.PanelString(b.String())
}

// Run starts the page in the alternate screen and returns it once the
// user quits.
func Run(p *Page, opts ...tea.ProgramOption) (*Page, error) {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	final, err := tea.NewProgram(p, opts...).Run()
	if err != nil {
		return nil, err
	}
	fp, ok := final.(*Page)
	if !ok {
		return p, nil
	}
	return fp, nil
}
